package domain

import (
	"fmt"
	"slices"
	"strings"

	apperrors "hyprfocus/internal/platform/errors"
)

// DefaultTheme is the theme name that means "no per-goal theme".
const DefaultTheme = "Default"

const (
	MinMinutes = 1
	MaxMinutes = 120
)

type Pomodoro struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	IntentionPopup    bool
}

// PomodoroPatch changes only the fields that are set.
type PomodoroPatch struct {
	WorkMinutes       *int
	ShortBreakMinutes *int
	LongBreakMinutes  *int
	IntentionPopup    *bool
}

func (p PomodoroPatch) Empty() bool {
	return p.WorkMinutes == nil && p.ShortBreakMinutes == nil && p.LongBreakMinutes == nil && p.IntentionPopup == nil
}

// Snapshot is the part of the settings document that describes goals and
// the pomodoro cadence.
type Snapshot struct {
	Goals            []string
	Themes           map[string]string
	Filters          map[string][]string
	Pomodoro         Pomodoro
	ShutdownFeedback bool
}

type Profile struct {
	Goal    string
	Theme   string
	Domains []string
}

func (s Snapshot) Profiles() []Profile {
	out := make([]Profile, 0, len(s.Goals))
	for _, g := range s.Goals {
		out = append(out, s.Profile(g))
	}
	return out
}

func (s Snapshot) Profile(goal string) Profile {
	theme := s.Themes[goal]
	if theme == "" {
		theme = DefaultTheme
	}
	return Profile{Goal: goal, Theme: theme, Domains: slices.Clone(s.Filters[goal])}
}

func (s Snapshot) HasGoal(goal string) bool { return slices.Contains(s.Goals, goal) }

// AddGoal appends a goal. Adding an existing goal changes nothing and
// reports false.
func (s *Snapshot) AddGoal(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: goal name is required", apperrors.ErrInvalidInput)
	}
	if s.HasGoal(name) {
		return false, nil
	}
	s.Goals = append(s.Goals, name)
	return true, nil
}

// DeleteGoal removes the goal and its theme. Its filters stay, so adding
// the goal back restores its block list.
func (s *Snapshot) DeleteGoal(name string) error {
	i := slices.Index(s.Goals, name)
	if i < 0 {
		return fmt.Errorf("%w: goal %q", apperrors.ErrNotFound, name)
	}
	s.Goals = slices.Delete(s.Goals, i, i+1)
	delete(s.Themes, name)
	return nil
}

// SetTheme assigns a theme to a goal; an empty name or DefaultTheme clears
// it.
func (s *Snapshot) SetTheme(goal, theme string) error {
	if !s.HasGoal(goal) {
		return fmt.Errorf("%w: goal %q", apperrors.ErrNotFound, goal)
	}
	theme = strings.TrimSpace(theme)
	if theme == "" || theme == DefaultTheme {
		delete(s.Themes, goal)
		return nil
	}
	if s.Themes == nil {
		s.Themes = map[string]string{}
	}
	s.Themes[goal] = theme
	return nil
}

// AddFilter adds a domain to a goal's block list. The domain is stored as
// typed apart from case and surrounding space; the www. pairing happens
// when the block is written.
func (s *Snapshot) AddFilter(goal, domain string) (bool, error) {
	if !s.HasGoal(goal) {
		return false, fmt.Errorf("%w: goal %q", apperrors.ErrNotFound, goal)
	}
	domain, err := NormalizeDomain(domain)
	if err != nil {
		return false, err
	}
	if slices.Contains(s.Filters[goal], domain) {
		return false, nil
	}
	if s.Filters == nil {
		s.Filters = map[string][]string{}
	}
	s.Filters[goal] = append(s.Filters[goal], domain)
	return true, nil
}

func (s *Snapshot) DeleteFilter(goal, domain string) error {
	domain = strings.ToLower(strings.TrimSpace(domain))
	list := s.Filters[goal]
	i := slices.Index(list, domain)
	if i < 0 {
		return fmt.Errorf("%w: %q is not blocked for %q", apperrors.ErrNotFound, domain, goal)
	}
	s.Filters[goal] = slices.Delete(list, i, i+1)
	return nil
}

func (s *Snapshot) ApplyPomodoro(p PomodoroPatch) error {
	next := s.Pomodoro
	for _, f := range []struct {
		name   string
		value  *int
		target *int
	}{
		{"work duration", p.WorkMinutes, &next.WorkMinutes},
		{"short break", p.ShortBreakMinutes, &next.ShortBreakMinutes},
		{"long break", p.LongBreakMinutes, &next.LongBreakMinutes},
	} {
		if f.value == nil {
			continue
		}
		if *f.value < MinMinutes || *f.value > MaxMinutes {
			return fmt.Errorf("%w: %s must be between %d and %d minutes", apperrors.ErrInvalidInput, f.name, MinMinutes, MaxMinutes)
		}
		*f.target = *f.value
	}
	if p.IntentionPopup != nil {
		next.IntentionPopup = *p.IntentionPopup
	}
	s.Pomodoro = next
	return nil
}

// NormalizeDomain lowercases and trims a domain and rejects anything that
// cannot be a hosts-file name.
func NormalizeDomain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimSuffix(d, ".")
	if d == "" || strings.ContainsAny(d, " \t/:#") || !strings.Contains(d, ".") {
		return "", fmt.Errorf("%w: invalid domain %q", apperrors.ErrInvalidInput, raw)
	}
	return d, nil
}
