package out

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
	"hyprfocus/internal/platform/lockfile"
	"hyprfocus/internal/platform/logging"
)

// Older logs carry naive ISO timestamps with microseconds and no offset.
const legacyTimestamp = "2006-01-02T15:04:05.999999"

type eventRecord struct {
	Timestamp string  `json:"timestamp"`
	Type      string  `json:"type"`
	Goal      string  `json:"goal"`
	Intention string  `json:"intention"`
	Duration  *int    `json:"duration,omitempty"`
	Pomodoro  *bool   `json:"pomodoro,omitempty"`
	Rating    *int    `json:"rating,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

// JSONLEventLog appends one JSON object per line under an advisory lock.
type JSONLEventLog struct {
	path   string
	logger *slog.Logger
}

func NewJSONLEventLog(path string, logger *slog.Logger) sessionout.EventLog {
	return &JSONLEventLog{path: path, logger: logging.OrDiscard(logger)}
}

func (l *JSONLEventLog) Append(_ context.Context, e domain.Event) error {
	record := eventRecord{
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Type:      string(e.Type),
		Goal:      e.Goal,
		Intention: e.Intention,
		Duration:  e.Duration,
		Pomodoro:  e.Pomodoro,
		Rating:    e.Rating,
		Comment:   e.Comment,
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := lockfile.AppendLine(l.path, payload); err != nil {
		return fmt.Errorf("append event log: %w", err)
	}
	return nil
}

// Tail skips lines that do not decode; the log is hand-editable and has
// outlived several writers.
func (l *JSONLEventLog) Tail(_ context.Context, limit int) ([]domain.Event, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Event{}, nil
		}
		return nil, fmt.Errorf("read event log: %w", err)
	}
	events := []domain.Event{}
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		e, err := decodeEvent([]byte(text))
		if err != nil {
			l.logger.Debug("skip event log line", "line", line, "error", err)
			continue
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan event log: %w", err)
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

func decodeEvent(raw []byte) (domain.Event, error) {
	var record eventRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.Event{}, err
	}
	ts, err := ParseTimestamp(record.Timestamp)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		Timestamp: ts,
		Type:      domain.EventType(record.Type),
		Goal:      record.Goal,
		Intention: record.Intention,
		Duration:  record.Duration,
		Pomodoro:  record.Pomodoro,
		Rating:    record.Rating,
		Comment:   record.Comment,
	}, nil
}

// ParseTimestamp accepts RFC 3339 and the offset-less local form.
func ParseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(legacyTimestamp, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return ts, nil
}
