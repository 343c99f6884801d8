package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hyprfocus/internal/modules/blocklist/domain"
	blocklistout "hyprfocus/internal/modules/blocklist/port/out"
	apperrors "hyprfocus/internal/platform/errors"
	"hyprfocus/internal/platform/logging"
)

// BlocklistService owns the read-modify-write cycle on the hosts file. It
// assumes a single writer at a time; nothing here locks across processes.
type BlocklistService struct {
	hosts  blocklistout.HostsFile
	source blocklistout.AdSource
	cache  blocklistout.AdCache
	prefs  blocklistout.Preferences
	logger *slog.Logger
}

func NewBlocklistService(hosts blocklistout.HostsFile, source blocklistout.AdSource, cache blocklistout.AdCache, prefs blocklistout.Preferences, logger *slog.Logger) *BlocklistService {
	return &BlocklistService{hosts: hosts, source: source, cache: cache, prefs: prefs, logger: logging.OrDiscard(logger)}
}

func (s *BlocklistService) BlockGoal(ctx context.Context, domains []string) (int, error) {
	rules := domain.GoalRules(domains)
	if err := s.rewrite(ctx, domain.RegionGoal, domain.Lines(rules)); err != nil {
		return 0, err
	}
	s.logger.Info("goal blocks applied", "domains", len(domains), "rules", len(rules))
	return len(rules), nil
}

func (s *BlocklistService) ClearGoal(ctx context.Context) error {
	if err := s.rewrite(ctx, domain.RegionGoal, nil); err != nil {
		return err
	}
	s.logger.Info("goal blocks cleared")
	return nil
}

// SetAds writes or removes the ad region. Enabling without a cache fetches
// the list first; if that fails the hosts file is left as it was.
func (s *BlocklistService) SetAds(ctx context.Context, enabled bool) (int, error) {
	if !enabled {
		if err := s.rewrite(ctx, domain.RegionAds, nil); err != nil {
			return 0, err
		}
		s.logger.Info("ad blocking disabled")
		return 0, nil
	}
	rules, err := s.cache.Load(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Info("ad cache missing, refreshing")
		if _, err := s.UpdateAds(ctx); err != nil {
			return 0, err
		}
		rules, err = s.cache.Load(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrAdListUnavailable, err)
	}
	if err := s.rewrite(ctx, domain.RegionAds, rules); err != nil {
		return 0, err
	}
	s.logger.Info("ad blocking enabled", "rules", len(rules))
	return len(rules), nil
}

// ToggleAds is the user-facing switch: the choice is saved first so the
// next session keeps it, then the region is written or removed.
func (s *BlocklistService) ToggleAds(ctx context.Context, enabled bool) (int, error) {
	if err := s.prefs.SetAdBlocking(ctx, enabled); err != nil {
		return 0, fmt.Errorf("save ad blocking preference: %w", err)
	}
	return s.SetAds(ctx, enabled)
}

// UpdateAds refreshes the cache from the remote source. The hosts file is
// not touched.
func (s *BlocklistService) UpdateAds(ctx context.Context) (int, error) {
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Warn("ad list fetch failed", "error", err)
		return 0, fmt.Errorf("%w: %v", domain.ErrAdListUnavailable, err)
	}
	rules := domain.FilterAdList(string(raw))
	if err := s.cache.Save(ctx, rules); err != nil {
		return 0, fmt.Errorf("save ad cache: %w", err)
	}
	s.logger.Info("ad cache updated", "rules", len(rules))
	return len(rules), nil
}

func (s *BlocklistService) Status(ctx context.Context) (domain.Status, error) {
	content, err := s.hosts.Read(ctx)
	if err != nil {
		return domain.Status{}, err
	}
	return domain.Inspect(content), nil
}

func (s *BlocklistService) rewrite(ctx context.Context, region domain.RegionID, body []string) error {
	content, err := s.hosts.Read(ctx)
	if err != nil {
		return err
	}
	next, err := domain.Rewrite(content, region, body)
	if err != nil {
		return err
	}
	if next == content {
		return nil
	}
	return s.hosts.Write(ctx, next)
}
