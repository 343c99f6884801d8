package domain

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"strings"
	"time"
)

const (
	KeyBits      = 2048
	RootValidity = 3650 * 24 * time.Hour
	LeafValidity = 365 * 24 * time.Hour
)

// Artifact names one file of the CA directory.
type Artifact string

const (
	RootKey   Artifact = "myCA.key"
	RootCert  Artifact = "myCA.pem"
	LeafKey   Artifact = "server.key"
	Bundle    Artifact = "server.pem"
	LeafCSR   Artifact = "server.csr"
	LeafCert  Artifact = "server.crt"
	SANConfig Artifact = "san.cnf"
)

// Transient artifacts exist only while a leaf is being issued.
var Transient = []Artifact{LeafCSR, LeafCert, SANConfig}

type Subject struct {
	Country      string
	Province     string
	Locality     string
	Organization string
	CommonName   string
}

var (
	RootSubject = Subject{Country: "US", Province: "Focus", Locality: "OS", Organization: "HyprFocus Root", CommonName: "HyprFocus CA"}
	LeafSubject = Subject{Country: "US", Province: "Focus", Locality: "Land", Organization: "HyprFocus", CommonName: "FocusMode"}
)

func (s Subject) Name() pkix.Name {
	return pkix.Name{
		Country:      []string{s.Country},
		Province:     []string{s.Province},
		Locality:     []string{s.Locality},
		Organization: []string{s.Organization},
		CommonName:   s.CommonName,
	}
}

// Slash renders the subject in the "/C=../CN=.." form used by openssl -subj.
func (s Subject) Slash() string {
	return fmt.Sprintf("/C=%s/ST=%s/L=%s/O=%s/CN=%s", s.Country, s.Province, s.Locality, s.Organization, s.CommonName)
}

// SANs lists every requested domain followed by its synthesized www.
// variant, in request order and without duplicates. An empty request is
// issued for localhost.
func SANs(domains []string) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, raw := range domains {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		add(name)
		if !strings.HasPrefix(name, "www.") {
			add("www." + name)
		}
	}
	if len(out) == 0 {
		return []string{"localhost"}
	}
	return out
}

// BundlePEM concatenates the leaf key and certificate, key first.
func BundlePEM(keyPEM, certPEM []byte) []byte {
	out := make([]byte, 0, len(keyPEM)+len(certPEM)+1)
	out = append(out, keyPEM...)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return append(out, certPEM...)
}

// CertInfo describes an issued certificate.
type CertInfo struct {
	Subject  string
	DNSNames []string
	NotAfter time.Time
}

// Describe reads the first certificate found in data.
func Describe(data []byte) (CertInfo, error) {
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			return CertInfo{}, fmt.Errorf("no certificate in pem data")
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return CertInfo{}, fmt.Errorf("parse certificate: %w", err)
		}
		return CertInfo{Subject: cert.Subject.CommonName, DNSNames: cert.DNSNames, NotAfter: cert.NotAfter}, nil
	}
}
