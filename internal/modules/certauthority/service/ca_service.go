package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hyprfocus/internal/modules/certauthority/domain"
	caout "hyprfocus/internal/modules/certauthority/port/out"
	apperrors "hyprfocus/internal/platform/errors"
	"hyprfocus/internal/platform/logging"
)

type CAService struct {
	toolkit caout.Toolkit
	store   caout.ArtifactStore
	logger  *slog.Logger
}

func NewCAService(toolkit caout.Toolkit, store caout.ArtifactStore, logger *slog.Logger) *CAService {
	return &CAService{toolkit: toolkit, store: store, logger: logging.OrDiscard(logger)}
}

// Issued is the result of a leaf issuance.
type Issued struct {
	SANs   []string
	Bundle string
	Root   string
	Info   domain.CertInfo
}

// EnsureRoot creates the root key and self-signed certificate when absent.
// A new key always gets a new certificate.
func (s *CAService) EnsureRoot(ctx context.Context) (bool, error) {
	created := false
	key, err := s.store.Load(ctx, domain.RootKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		key, err = s.toolkit.GenerateKey(ctx)
		if err != nil {
			return false, toolkitErr("generate root key", err)
		}
		if err := s.store.Save(ctx, domain.RootKey, key, true); err != nil {
			return false, err
		}
		if err := s.store.Remove(ctx, domain.RootCert); err != nil {
			return false, err
		}
		created = true
	} else if err != nil {
		return false, err
	}

	_, err = s.store.Load(ctx, domain.RootCert)
	if errors.Is(err, apperrors.ErrNotFound) {
		cert, err := s.toolkit.SelfSign(ctx, key, domain.RootSubject, domain.RootValidity)
		if err != nil {
			return false, toolkitErr("self-sign root", err)
		}
		if err := s.store.Save(ctx, domain.RootCert, cert, false); err != nil {
			return false, err
		}
		s.logger.Info("root certificate created", "path", s.store.Path(domain.RootCert))
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return created, nil
}

// Issue signs a leaf certificate for domains with the root and writes the
// key+certificate bundle. The leaf key is generated once and reused.
func (s *CAService) Issue(ctx context.Context, domains []string) (Issued, error) {
	if _, err := s.EnsureRoot(ctx); err != nil {
		return Issued{}, err
	}
	rootKey, err := s.store.Load(ctx, domain.RootKey)
	if err != nil {
		return Issued{}, err
	}
	rootCert, err := s.store.Load(ctx, domain.RootCert)
	if err != nil {
		return Issued{}, err
	}
	leafKey, err := s.store.Load(ctx, domain.LeafKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		leafKey, err = s.toolkit.GenerateKey(ctx)
		if err != nil {
			return Issued{}, toolkitErr("generate leaf key", err)
		}
		if err := s.store.Save(ctx, domain.LeafKey, leafKey, true); err != nil {
			return Issued{}, err
		}
	} else if err != nil {
		return Issued{}, err
	}

	defer func() {
		if err := s.store.Remove(context.WithoutCancel(ctx), domain.Transient...); err != nil {
			s.logger.Warn("remove transient artifacts", "error", err)
		}
	}()

	sans := domain.SANs(domains)
	csr, err := s.toolkit.CreateCSR(ctx, leafKey, domain.LeafSubject, sans)
	if err != nil {
		return Issued{}, toolkitErr("create csr", err)
	}
	if err := s.store.Save(ctx, domain.LeafCSR, csr, false); err != nil {
		return Issued{}, err
	}
	cert, err := s.toolkit.SignCSR(ctx, csr, rootCert, rootKey, domain.LeafValidity, sans)
	if err != nil {
		return Issued{}, toolkitErr("sign csr", err)
	}
	if err := s.store.Save(ctx, domain.LeafCert, cert, false); err != nil {
		return Issued{}, err
	}
	if err := s.store.Save(ctx, domain.Bundle, domain.BundlePEM(leafKey, cert), true); err != nil {
		return Issued{}, err
	}
	info, err := domain.Describe(cert)
	if err != nil {
		return Issued{}, toolkitErr("inspect leaf", err)
	}
	s.logger.Info("leaf certificate issued", "sans", len(sans), "bundle", s.store.Path(domain.Bundle))
	return Issued{SANs: sans, Bundle: s.store.Path(domain.Bundle), Root: s.store.Path(domain.RootCert), Info: info}, nil
}

// Status reports what is currently on disk without creating anything.
type Status struct {
	Root       string
	RootInfo   *domain.CertInfo
	Bundle     string
	BundleInfo *domain.CertInfo
}

func (s *CAService) Status(ctx context.Context) (Status, error) {
	out := Status{Root: s.store.Path(domain.RootCert), Bundle: s.store.Path(domain.Bundle)}
	for _, item := range []struct {
		name   domain.Artifact
		target **domain.CertInfo
	}{{domain.RootCert, &out.RootInfo}, {domain.Bundle, &out.BundleInfo}} {
		data, err := s.store.Load(ctx, item.name)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return Status{}, err
		}
		info, err := domain.Describe(data)
		if err != nil {
			return Status{}, fmt.Errorf("describe %s: %w", item.name, err)
		}
		*item.target = &info
	}
	return out, nil
}

func toolkitErr(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrTLSUnavailable, step, err)
}
