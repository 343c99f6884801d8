package out_test

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"os/exec"
	"strings"
	"testing"
	"time"

	caout "hyprfocus/internal/modules/certauthority/adapter/out"
	"hyprfocus/internal/modules/certauthority/domain"
)

func TestSANConfigNumbersSequentially(t *testing.T) {
	t.Parallel()
	cfg := caout.SANConfig(domain.LeafSubject, []string{"a.io", "www.a.io", "b.io"})
	for _, want := range []string{"DNS.1 = a.io\n", "DNS.2 = www.a.io\n", "DNS.3 = b.io\n", "CN=FocusMode\n"} {
		if !strings.Contains(cfg, want) {
			t.Fatalf("config missing %q:\n%s", want, cfg)
		}
	}
}

func TestOpenSSLToolkitSignsLeaf(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("openssl"); err != nil {
		t.Skip("openssl not installed")
	}
	ctx := context.Background()
	tk := caout.NewOpenSSLToolkit("")
	caKey, err := tk.GenerateKey(ctx)
	if err != nil {
		t.Fatalf("generate ca key: %v", err)
	}
	caCert, err := tk.SelfSign(ctx, caKey, domain.RootSubject, domain.RootValidity)
	if err != nil {
		t.Fatalf("self sign: %v", err)
	}
	leafKey, err := tk.GenerateKey(ctx)
	if err != nil {
		t.Fatalf("generate leaf key: %v", err)
	}
	sans := domain.SANs([]string{"example.com"})
	csr, err := tk.CreateCSR(ctx, leafKey, domain.LeafSubject, sans)
	if err != nil {
		t.Fatalf("csr: %v", err)
	}
	cert, err := tk.SignCSR(ctx, csr, caCert, caKey, 30*24*time.Hour, sans)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	block, _ := pem.Decode(cert)
	if block == nil {
		t.Fatalf("no pem output")
	}
	leaf, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatalf("parse leaf: %v", err)
	}
	if len(leaf.DNSNames) != 2 {
		t.Fatalf("unexpected SANs %v", leaf.DNSNames)
	}
}
