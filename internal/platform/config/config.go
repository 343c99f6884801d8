package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

const defaultAdSource = "https://raw.githubusercontent.com/StevenBlack/hosts/master/hosts"

// Config holds every filesystem location and listen address hyprfocus uses.
type Config struct {
	HomeDir     string
	HostsPath   string
	SessionPath string
	EventLog    string
	ConfigDir   string
	StateDir    string
	CertsDir    string
	TimerPath   string
	AdSourceURL string
	HTTPAddr    string
	HTTPSAddr   string
}

func (c Config) SettingsPath() string { return filepath.Join(c.ConfigDir, "hyprfocus.yaml") }
func (c Config) AdCachePath() string  { return filepath.Join(c.ConfigDir, "adblock_list.txt") }
func (c Config) StatusPath() string   { return filepath.Join(c.StateDir, "status.json") }
func (c Config) DBPath() string       { return filepath.Join(c.StateDir, "hyprfocus.db") }
func (c Config) LogDir() string       { return filepath.Join(c.StateDir, "logs") }

// New resolves the default layout under homeDir and applies HYPRFOCUS_*
// environment overrides. An empty homeDir resolves the invoking user's home,
// which under sudo is the home of $SUDO_USER rather than root's.
func New(homeDir string) (Config, error) {
	if homeDir == "" {
		resolved, err := invokingHome()
		if err != nil {
			return Config{}, err
		}
		homeDir = resolved
	}
	if homeDir == "" {
		return Config{}, fmt.Errorf("home directory is required")
	}
	configDir := filepath.Join(homeDir, ".config", "hypr")
	cfg := Config{
		HomeDir:     homeDir,
		HostsPath:   "/etc/hosts",
		SessionPath: "/tmp/sddm_session.json",
		EventLog:    filepath.Join(homeDir, "session_logs.jsonl"),
		ConfigDir:   configDir,
		StateDir:    filepath.Join(homeDir, ".local", "state", "hyprfocus"),
		CertsDir:    filepath.Join(configDir, "scripts", "certs"),
		TimerPath:   "/tmp/session_timer",
		AdSourceURL: defaultAdSource,
		HTTPAddr:    ":80",
		HTTPSAddr:   ":443",
	}
	overrides := []struct {
		env    string
		target *string
	}{
		{"HYPRFOCUS_HOSTS", &cfg.HostsPath},
		{"HYPRFOCUS_SESSION_FILE", &cfg.SessionPath},
		{"HYPRFOCUS_EVENT_LOG", &cfg.EventLog},
		{"HYPRFOCUS_CONFIG_DIR", &cfg.ConfigDir},
		{"HYPRFOCUS_STATE_DIR", &cfg.StateDir},
		{"HYPRFOCUS_CERTS_DIR", &cfg.CertsDir},
		{"HYPRFOCUS_TIMER_FILE", &cfg.TimerPath},
		{"HYPRFOCUS_AD_SOURCE", &cfg.AdSourceURL},
		{"HYPRFOCUS_HTTP_ADDR", &cfg.HTTPAddr},
		{"HYPRFOCUS_HTTPS_ADDR", &cfg.HTTPSAddr},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
	return cfg, nil
}

func invokingHome() (string, error) {
	if name := os.Getenv("SUDO_USER"); name != "" && os.Geteuid() == 0 {
		if u, err := user.Lookup(name); err == nil && u.HomeDir != "" {
			return u.HomeDir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home, nil
}
