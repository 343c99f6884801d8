package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"hyprfocus/internal/platform/lockfile"
)

// FileStore persists Settings as YAML at a fixed path.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Load returns the stored settings overlaid on Default. A missing file
// yields the defaults.
func (s *FileStore) Load() (Settings, error) {
	out := Default()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return Default(), fmt.Errorf("parse settings yaml: %w", err)
	}
	normalize(&out)
	return out, nil
}

func (s *FileStore) Save(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// Update applies fn to the current settings and saves the result while
// holding the settings lock. Nothing is written when fn fails.
func (s *FileStore) Update(fn func(*Settings) error) error {
	return lockfile.With(s.path+".lock", func() error {
		current, err := s.Load()
		if err != nil {
			return err
		}
		if err := fn(&current); err != nil {
			return err
		}
		return s.Save(current)
	})
}

func normalize(s *Settings) {
	if s.GoalThemes == nil {
		s.GoalThemes = map[string]string{}
	}
	if s.Filters == nil {
		s.Filters = map[string][]string{}
	}
	if s.CalendarEvents == nil {
		s.CalendarEvents = []CalendarEvent{}
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	def := Default().Pomodoro
	if s.Pomodoro.WorkMinutes <= 0 {
		s.Pomodoro.WorkMinutes = def.WorkMinutes
	}
	if s.Pomodoro.ShortBreakMinutes <= 0 {
		s.Pomodoro.ShortBreakMinutes = def.ShortBreakMinutes
	}
	if s.Pomodoro.LongBreakMinutes <= 0 {
		s.Pomodoro.LongBreakMinutes = def.LongBreakMinutes
	}
	if s.Collaborators.Prompter == "" {
		s.Collaborators.Prompter = PrompterTerminal
	}
}
