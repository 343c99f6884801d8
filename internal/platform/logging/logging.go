package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

const defaultMaxFiles = 20

// Options selects where structured logs go.
type Options struct {
	Debug    bool
	File     string
	Dir      string
	MaxFiles int
}

// Handle owns the log destination. Writer is shared with components that
// produce their own line-oriented output (the HTTP access log).
type Handle struct {
	Logger *slog.Logger
	Writer io.Writer
	Path   string
	closer io.Closer
}

func (h *Handle) Close() error {
	if h == nil || h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// New builds a JSON slog logger. Logs are discarded unless debug is enabled
// or an explicit file is given; HYPRFOCUS_DEBUG and HYPRFOCUS_LOG_FILE are
// honored so detached child processes inherit the parent's choice.
func New(opts Options) (*Handle, error) {
	if os.Getenv("HYPRFOCUS_DEBUG") == "1" {
		opts.Debug = true
	}
	if env := os.Getenv("HYPRFOCUS_LOG_FILE"); env != "" && opts.File == "" {
		opts.File = env
	}
	if env := os.Getenv("HYPRFOCUS_MAX_LOG_FILES"); env != "" && opts.MaxFiles == 0 {
		if parsed, err := strconv.Atoi(env); err == nil {
			opts.MaxFiles = parsed
		}
	}
	if opts.MaxFiles == 0 {
		opts.MaxFiles = defaultMaxFiles
	}

	if !opts.Debug && opts.File == "" {
		return &Handle{Logger: Discard(), Writer: io.Discard}, nil
	}

	path := opts.File
	if path == "" {
		if opts.Dir == "" {
			return nil, fmt.Errorf("log directory is required")
		}
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		if err := rotate(opts.Dir, opts.MaxFiles); err != nil {
			fmt.Fprintf(os.Stderr, "warning: log rotation failed: %v\n", err)
		}
		path = filepath.Join(opts.Dir, uuid.NewString()+".log")
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &Handle{Logger: logger, Writer: file, Path: path, closer: file}, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// rotate deletes the oldest .log files so that, after the next file is
// created, at most maxFiles remain.
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read log directory: %w", err)
	}
	type logFile struct {
		path string
		mod  int64
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, entry.Name()), mod: info.ModTime().UnixNano()})
	}
	if len(files) < maxFiles {
		return nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mod < files[j].mod })
	excess := len(files) - maxFiles + 1
	for i := 0; i < excess; i++ {
		if err := os.Remove(files[i].path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: remove old log %s: %v\n", files[i].path, err)
		}
	}
	return nil
}
