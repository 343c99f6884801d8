package out

import (
	"context"

	blocklistdto "hyprfocus/internal/modules/blocklist/dto"
	blocklistin "hyprfocus/internal/modules/blocklist/port/in"
	sessionout "hyprfocus/internal/modules/session/port/out"
)

// Blocker applies session blocks through the blocklist module.
type Blocker struct {
	blocklist blocklistin.Usecase
}

func NewBlocker(blocklist blocklistin.Usecase) sessionout.Blocker {
	return &Blocker{blocklist: blocklist}
}

func (b *Blocker) Block(ctx context.Context, domains []string) error {
	_, err := b.blocklist.BlockGoal(ctx, blocklistdto.BlockInput{Domains: domains})
	return err
}

func (b *Blocker) Clear(ctx context.Context) error {
	return b.blocklist.ClearGoal(ctx)
}

func (b *Blocker) SetAds(ctx context.Context, enabled bool) error {
	_, err := b.blocklist.SetAds(ctx, enabled)
	return err
}
