package out

import (
	"crypto/tls"
	"fmt"
	"os"
	"sync"
	"time"

	denyout "hyprfocus/internal/modules/denypage/port/out"
	apperrors "hyprfocus/internal/platform/errors"
)

// FileCertificate serves a combined key+cert PEM bundle and reloads it
// whenever the file's modification time changes, so a freshly issued leaf is
// picked up without restarting the server.
type FileCertificate struct {
	path string

	mu      sync.Mutex
	cert    *tls.Certificate
	modTime time.Time
}

func NewFileCertificate(path string) denyout.CertificateSource {
	return &FileCertificate{path: path}
}

func (f *FileCertificate) Available() error {
	_, err := f.load()
	return err
}

func (f *FileCertificate) GetCertificate(_ *tls.ClientHelloInfo) (*tls.Certificate, error) {
	return f.load()
}

func (f *FileCertificate) load() (*tls.Certificate, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTLSUnavailable, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cert != nil && info.ModTime().Equal(f.modTime) {
		return f.cert, nil
	}
	cert, err := tls.LoadX509KeyPair(f.path, f.path)
	if err != nil {
		if f.cert != nil {
			// A bundle caught mid-write keeps serving the previous one.
			return f.cert, nil
		}
		return nil, fmt.Errorf("%w: load %s: %v", apperrors.ErrTLSUnavailable, f.path, err)
	}
	f.cert = &cert
	f.modTime = info.ModTime()
	return f.cert, nil
}
