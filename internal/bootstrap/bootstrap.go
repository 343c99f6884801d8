package bootstrap

import (
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	blockinadapter "hyprfocus/internal/modules/blocklist/adapter/in"
	blockoutadapter "hyprfocus/internal/modules/blocklist/adapter/out"
	blockservice "hyprfocus/internal/modules/blocklist/service"
	blockusecase "hyprfocus/internal/modules/blocklist/usecase"
	calendarinadapter "hyprfocus/internal/modules/calendar/adapter/in"
	calendaroutadapter "hyprfocus/internal/modules/calendar/adapter/out"
	calendarservice "hyprfocus/internal/modules/calendar/service"
	calendarusecase "hyprfocus/internal/modules/calendar/usecase"
	cainadapter "hyprfocus/internal/modules/certauthority/adapter/in"
	caoutadapter "hyprfocus/internal/modules/certauthority/adapter/out"
	caout "hyprfocus/internal/modules/certauthority/port/out"
	caservice "hyprfocus/internal/modules/certauthority/service"
	causecase "hyprfocus/internal/modules/certauthority/usecase"
	denyinadapter "hyprfocus/internal/modules/denypage/adapter/in"
	denyoutadapter "hyprfocus/internal/modules/denypage/adapter/out"
	denyin "hyprfocus/internal/modules/denypage/port/in"
	denyservice "hyprfocus/internal/modules/denypage/service"
	denyusecase "hyprfocus/internal/modules/denypage/usecase"
	plugininadapter "hyprfocus/internal/modules/plugin/adapter/in"
	pluginoutadapter "hyprfocus/internal/modules/plugin/adapter/out"
	pluginin "hyprfocus/internal/modules/plugin/port/in"
	pluginservice "hyprfocus/internal/modules/plugin/service"
	pluginusecase "hyprfocus/internal/modules/plugin/usecase"
	preferencesinadapter "hyprfocus/internal/modules/preferences/adapter/in"
	preferencesoutadapter "hyprfocus/internal/modules/preferences/adapter/out"
	preferencesservice "hyprfocus/internal/modules/preferences/service"
	preferencesusecase "hyprfocus/internal/modules/preferences/usecase"
	sessioninadapter "hyprfocus/internal/modules/session/adapter/in"
	sessionoutadapter "hyprfocus/internal/modules/session/adapter/out"
	sessionservice "hyprfocus/internal/modules/session/service"
	sessionusecase "hyprfocus/internal/modules/session/usecase"
	statsinadapter "hyprfocus/internal/modules/stats/adapter/in"
	statsoutadapter "hyprfocus/internal/modules/stats/adapter/out"
	statsservice "hyprfocus/internal/modules/stats/service"
	statsusecase "hyprfocus/internal/modules/stats/usecase"
	"hyprfocus/internal/platform/clock"
	"hyprfocus/internal/platform/config"
	"hyprfocus/internal/platform/id"
	"hyprfocus/internal/platform/logging"
	"hyprfocus/internal/platform/settings"
	uiapp "hyprfocus/internal/ui/app"
)

const adFetchTimeout = 30 * time.Second

type App struct {
	Config   config.Config
	Settings *settings.FileStore

	SessionCLI  sessioninadapter.CLIHandler
	BlockCLI    blockinadapter.CLIHandler
	CertCLI     cainadapter.CLIHandler
	DenyPageCLI denyinadapter.CLIHandler
	CalendarCLI calendarinadapter.CLIHandler
	StatsCLI    statsinadapter.CLIHandler
	PluginCLI   plugininadapter.CLIHandler
	PrefsCLI    preferencesinadapter.CLIHandler

	closers []io.Closer
}

// Close releases the stats database.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// lateDeny lets the session controller hold the deny page before the deny
// page, which reads the session, has been built.
type lateDeny struct {
	denyin.Usecase
}

func New(cfg config.Config, log *logging.Handle) (*App, error) {
	clk := clock.SystemClock{}
	logger := log.Logger
	store := settings.NewFileStore(cfg.SettingsPath())
	prefs, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	blockUC := blockusecase.NewInteractor(blockservice.NewBlocklistService(
		blockoutadapter.NewFileHostsStore(cfg.HostsPath),
		blockoutadapter.NewHTTPAdSource(cfg.AdSourceURL, &http.Client{Timeout: adFetchTimeout}),
		blockoutadapter.NewFileAdCache(cfg.AdCachePath()),
		blockoutadapter.NewSettingsPreferences(store),
		logger.With("module", "blocklist"),
	))

	caUC := causecase.NewInteractor(caservice.NewCAService(
		certToolkit(clk),
		caoutadapter.NewFileArtifactStore(cfg.CertsDir),
		logger.With("module", "certauthority"),
	))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.ConfigDir, cfg.HomeDir),
		pluginoutadapter.NewGRPCHost(log.Writer, cfg.HomeDir),
		logger.With("module", "plugin"),
	))

	deny := &lateDeny{}
	sessionLogger := logger.With("module", "session")
	sessionSvc := sessionservice.NewSessionService(
		sessionoutadapter.NewFileDescriptorStore(cfg.SessionPath),
		sessionoutadapter.NewJSONLEventLog(cfg.EventLog, sessionLogger),
		sessionoutadapter.NewFileStatusStore(cfg.StatusPath(), cfg.TimerPath),
		clk,
		sessionLogger,
	)
	controller := sessionservice.NewController(
		sessionoutadapter.NewFileDescriptorStore(cfg.SessionPath),
		sessionoutadapter.NewJSONLEventLog(cfg.EventLog, sessionLogger),
		sessionoutadapter.NewSettingsSource(store),
		sessionoutadapter.NewFileStatusStore(cfg.StatusPath(), cfg.TimerPath),
		sessionoutadapter.NewBlocker(blockUC),
		sessionoutadapter.NewDenyServer(deny),
		collaborators(prefs.Collaborators, cfg.HomeDir, pluginUC),
		clk,
		sessionservice.DefaultControllerOptions(),
		sessionLogger,
	)
	sessionUC := sessionusecase.NewInteractor(sessionSvc, controller)

	denyUC := denyusecase.NewInteractor(denyservice.NewDenyService(
		denyoutadapter.NewSessionContext(sessionUC),
		denyoutadapter.NewFileCertificate(filepath.Join(cfg.CertsDir, "server.pem")),
		denyoutadapter.NewProcessRuntime(nil, filepath.Join(cfg.StateDir, "denypage.log")),
		denyoutadapter.NewFilePIDStore(filepath.Join(cfg.StateDir, "denypage.pid")),
		clk,
		denyservice.Options{HTTPAddr: cfg.HTTPAddr, HTTPSAddr: cfg.HTTPSAddr},
		logger.With("module", "denypage"),
	))
	deny.Usecase = denyUC

	calendarUC := calendarusecase.NewInteractor(calendarservice.NewCalendarService(
		calendaroutadapter.NewSettingsStore(store),
		calendaroutadapter.NewSessionLauncher(sessionUC),
		clk,
		id.TimeOrdered{},
		logger.With("module", "calendar"),
	))

	prefsUC := preferencesusecase.NewInteractor(preferencesservice.NewPreferencesService(
		preferencesoutadapter.NewSettingsStore(store),
		logger.With("module", "preferences"),
	))

	projector, err := statsoutadapter.NewSQLiteProjector(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("new stats projector: %w", err)
	}
	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(
		statsoutadapter.NewSessionRecords(sessionUC),
		projector,
		clk,
		logger.With("module", "stats"),
	))

	return &App{
		Config:      cfg,
		Settings:    store,
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		BlockCLI:    blockinadapter.NewCLIHandler(blockUC),
		CertCLI:     cainadapter.NewCLIHandler(caUC),
		DenyPageCLI: denyinadapter.NewCLIHandler(denyUC),
		CalendarCLI: calendarinadapter.NewCLIHandler(calendarUC),
		StatsCLI:    statsinadapter.NewCLIHandler(statsUC),
		PluginCLI:   plugininadapter.NewCLIHandler(pluginUC),
		PrefsCLI:    preferencesinadapter.NewCLIHandler(prefsUC),
		closers:     []io.Closer{projector},
	}, nil
}

// certToolkit prefers the system openssl, matching certificates issued by
// earlier installs, and falls back to crypto/x509.
func certToolkit(clk clock.Clock) caout.Toolkit {
	if path, err := exec.LookPath("openssl"); err == nil {
		return caoutadapter.NewOpenSSLToolkit(path)
	}
	return caoutadapter.NewNativeToolkit(clk)
}

func collaborators(c settings.Collaborators, home string, plugins pluginin.Usecase) sessionservice.Collaborators {
	out := sessionservice.Collaborators{
		Theme:    sessionoutadapter.NewExecThemeSwitcher(sessionoutadapter.NewCommand(c.ThemeCommand, home)),
		Notifier: sessionoutadapter.NewExecNotifier(sessionoutadapter.NewCommand(c.NotifyCommand, home)),
		Locker:   sessionoutadapter.NewExecLocker(sessionoutadapter.NewCommand(c.LockCommand, home)),
		Shutdown: sessionoutadapter.NewExecShutdown(sessionoutadapter.NewCommand(c.ShutdownCommand, home)),
	}
	switch c.Prompter {
	case settings.PrompterNone:
		out.Prompter = sessionoutadapter.NoPrompter{}
		out.Feedback = sessionoutadapter.NoPrompter{}
	case settings.PrompterPlugin:
		if c.Plugin != "" {
			p := sessionoutadapter.NewPluginCollaborators(plugins, c.Plugin)
			out.Prompter, out.Feedback = p, p
			break
		}
		fallthrough
	default:
		out.Prompter = sessionoutadapter.TerminalPrompter{}
		out.Feedback = sessionoutadapter.TerminalPrompter{}
	}
	// A named plugin also takes over notifications and theme switches.
	if c.Plugin != "" {
		p := sessionoutadapter.NewPluginCollaborators(plugins, c.Plugin)
		out.Notifier, out.Theme = p, p
	}
	return out
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.StatsCLI, app.CalendarCLI, app.BlockCLI, app.PrefsCLI, app.PluginCLI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}
