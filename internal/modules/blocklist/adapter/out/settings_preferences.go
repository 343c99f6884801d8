package out

import (
	"context"

	blocklistout "hyprfocus/internal/modules/blocklist/port/out"
	"hyprfocus/internal/platform/settings"
)

// SettingsPreferences stores the ad_blocking flag in the shared settings
// document, which the session controller reads when a session starts.
type SettingsPreferences struct {
	store *settings.FileStore
}

func NewSettingsPreferences(store *settings.FileStore) blocklistout.Preferences {
	return &SettingsPreferences{store: store}
}

func (p *SettingsPreferences) SetAdBlocking(_ context.Context, enabled bool) error {
	return p.store.Update(func(cfg *settings.Settings) error {
		cfg.AdBlocking = enabled
		return nil
	})
}
