package out

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"hyprfocus/internal/modules/certauthority/domain"
	caout "hyprfocus/internal/modules/certauthority/port/out"
)

// OpenSSLToolkit drives the openssl command line. Inputs are staged in a
// private temp directory that is removed after each step.
type OpenSSLToolkit struct {
	binary string
}

func NewOpenSSLToolkit(binary string) caout.Toolkit {
	if binary == "" {
		binary = "openssl"
	}
	return &OpenSSLToolkit{binary: binary}
}

func (t *OpenSSLToolkit) GenerateKey(ctx context.Context) ([]byte, error) {
	return t.run(ctx, "", "genrsa", fmt.Sprint(domain.KeyBits))
}

func (t *OpenSSLToolkit) SelfSign(ctx context.Context, keyPEM []byte, subject domain.Subject, validity time.Duration) ([]byte, error) {
	dir, cleanup, err := stage(map[string][]byte{"ca.key": keyPEM})
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return t.run(ctx, dir, "req", "-x509", "-new", "-nodes", "-key", "ca.key", "-sha256",
		"-days", days(validity), "-subj", subject.Slash())
}

func (t *OpenSSLToolkit) CreateCSR(ctx context.Context, keyPEM []byte, subject domain.Subject, sans []string) ([]byte, error) {
	dir, cleanup, err := stage(map[string][]byte{
		"server.key":             keyPEM,
		string(domain.SANConfig): []byte(SANConfig(subject, sans)),
	})
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return t.run(ctx, dir, "req", "-new", "-key", "server.key", "-config", string(domain.SANConfig))
}

func (t *OpenSSLToolkit) SignCSR(ctx context.Context, csrPEM, caCertPEM, caKeyPEM []byte, validity time.Duration, sans []string) ([]byte, error) {
	dir, cleanup, err := stage(map[string][]byte{
		"server.csr":             csrPEM,
		"ca.pem":                 caCertPEM,
		"ca.key":                 caKeyPEM,
		string(domain.SANConfig): []byte(SANConfig(domain.LeafSubject, sans)),
	})
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return t.run(ctx, dir, "x509", "-req", "-in", "server.csr", "-CA", "ca.pem", "-CAkey", "ca.key",
		"-CAcreateserial", "-CAserial", "ca.srl", "-days", days(validity), "-sha256",
		"-extensions", "req_ext", "-extfile", string(domain.SANConfig))
}

// SANConfig renders the openssl request configuration. Alternative names
// are numbered sequentially from 1.
func SANConfig(subject domain.Subject, sans []string) string {
	var b strings.Builder
	b.WriteString("[req]\ndefault_bits = 2048\nprompt = no\ndefault_md = sha256\n")
	b.WriteString("distinguished_name = dn\nreq_extensions = req_ext\n\n[dn]\n")
	fmt.Fprintf(&b, "C=%s\nST=%s\nL=%s\nO=%s\nCN=%s\n", subject.Country, subject.Province, subject.Locality, subject.Organization, subject.CommonName)
	b.WriteString("\n[req_ext]\nsubjectAltName = @alt_names\n\n[alt_names]\n")
	for i, name := range sans {
		fmt.Fprintf(&b, "DNS.%d = %s\n", i+1, name)
	}
	return b.String()
}

func (t *OpenSSLToolkit) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("openssl %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func stage(files map[string][]byte) (string, func(), error) {
	dir, err := os.MkdirTemp("", "hyprfocus-ca-*")
	if err != nil {
		return "", nil, fmt.Errorf("create staging dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("stage %s: %w", name, err)
		}
	}
	return dir, cleanup, nil
}

func days(d time.Duration) string {
	return fmt.Sprint(int(d.Hours() / 24))
}
