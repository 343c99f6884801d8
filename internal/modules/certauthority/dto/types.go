package dto

import "time"

type RootOutput struct {
	Created  bool
	RootPath string
}

type IssueInput struct {
	Domains []string
}

type IssueOutput struct {
	SANs       []string
	BundlePath string
	RootPath   string
	NotAfter   time.Time
}

type StatusOutput struct {
	RootPath     string
	RootPresent  bool
	RootNotAfter time.Time
	BundlePath   string
	BundleSANs   []string
	BundleExpiry time.Time
}
