package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/menubar/internal/app"
	"github.com/atomicstack/menubar/internal/settings"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envTemplate          = "MENUBAR_TEMPLATE"
	envWidth             = "MENUBAR_WIDTH"
	envHeight            = "MENUBAR_HEIGHT"
	envTrace             = "MENUBAR_TRACE"
	envLogFile           = "MENUBAR_LOG_FILE"
	envOpenAdjacent      = "MENUBAR_OPEN_ADJACENT"
	envMnemonics         = "MENUBAR_MNEMONICS"
	envAutoHide          = "MENUBAR_AUTO_HIDE"
	envAltGivesFocus     = "MENUBAR_ALT_GIVES_FOCUS"
	envCloseOnBlur       = "MENUBAR_CLOSE_ON_BLUR"
	envControlTheme      = "MENUBAR_CONTROL_THEME"
	envHoverDelay        = "MENUBAR_HOVER_DELAY"
	envReconcileInterval = "MENUBAR_RECONCILE_INTERVAL"
	envSortLabel         = "MENUBAR_SORT_LABEL"
	envMetricsAddr       = "MENUBAR_METRICS_ADDR"
	envDispatchFile      = "MENUBAR_DISPATCH_FILE"
)

// ControlThemes lists the accepted window-control theme names. The empty name
// picks the platform default.
var ControlThemes = []string{"", "Windows 11", "Yosemite"}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	defaults := settings.Defaults()

	fs := flag.NewFlagSet("menubar", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	template := fs.String("template", envOrDefault(env, envTemplate, ""), "path to the menu template (YAML or JSON)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	openAdjacent := fs.Bool("open-adjacent", envOrBool(env, envOpenAdjacent, defaults.OpenAdjacent), "switch to a hovered label while a menu is open")
	mnemonics := fs.Bool("mnemonics", envOrBool(env, envMnemonics, defaults.Mnemonics), "underline mnemonic characters in attentive mode")
	autoHide := fs.Bool("auto-hide", envOrBool(env, envAutoHide, defaults.AutoHide), "hide the bar while no menu is open")
	// Terminals report no key releases, so a bare activation key can only be
	// useful when it focuses the bar.
	altGivesFocus := fs.Bool("alt-gives-focus", envOrBool(env, envAltGivesFocus, true), "focus the first label when the activation key is tapped")
	closeOnBlur := fs.Bool("close-on-blur", envOrBool(env, envCloseOnBlur, defaults.CloseOnBlur), "close context menus when the terminal loses focus")
	controlTheme := fs.String("control-theme", envOrDefault(env, envControlTheme, defaults.ControlTheme), "window-control theme (\"\", \"Windows 11\", \"Yosemite\")")
	hoverDelay := fs.Duration("hover-delay", envOrDuration(env, envHoverDelay, defaults.HoverDelay), "settle delay before a hovered submenu opens")
	reconcileInterval := fs.Duration("reconcile-interval", envOrDuration(env, envReconcileInterval, 100*time.Millisecond), "minimum spacing between reconciliation passes")
	sortLabel := fs.String("sort-label", envOrDefault(env, envSortLabel, "&Packages"), "top-level label whose entries are sorted by name (empty disables)")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, ""), "address for the /metrics endpoint (empty disables)")
	dispatchFile := fs.String("dispatch-file", envOrDefault(env, envDispatchFile, ""), "append activated commands as JSON lines to this file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *hoverDelay < 0 {
		return Config{}, fmt.Errorf("hover-delay must be >= 0 (got %s)", *hoverDelay)
	}
	if *reconcileInterval < 0 {
		return Config{}, fmt.Errorf("reconcile-interval must be >= 0 (got %s)", *reconcileInterval)
	}

	cfg := Config{
		App: app.Config{
			TemplatePath: *template,
			Width:        *width,
			Height:       *height,
			Menu: settings.Options{
				OpenAdjacent:  *openAdjacent,
				Mnemonics:     *mnemonics,
				AutoHide:      *autoHide,
				AltGivesFocus: *altGivesFocus,
				CloseOnBlur:   *closeOnBlur,
				ControlTheme:  *controlTheme,
				HoverDelay:    *hoverDelay,
			},
			ReconcileInterval: *reconcileInterval,
			SortLabel:         *sortLabel,
			MetricsAddr:       *metricsAddr,
			DispatchFile:      *dispatchFile,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"template":          *template,
			"width":             strconv.Itoa(*width),
			"height":            strconv.Itoa(*height),
			"trace":             strconv.FormatBool(*trace),
			"logFile":           *logFile,
			"openAdjacent":      strconv.FormatBool(*openAdjacent),
			"mnemonics":         strconv.FormatBool(*mnemonics),
			"autoHide":          strconv.FormatBool(*autoHide),
			"altGivesFocus":     strconv.FormatBool(*altGivesFocus),
			"closeOnBlur":       strconv.FormatBool(*closeOnBlur),
			"controlTheme":      *controlTheme,
			"hoverDelay":        hoverDelay.String(),
			"reconcileInterval": reconcileInterval.String(),
			"sortLabel":         *sortLabel,
			"metricsAddr":       *metricsAddr,
			"dispatchFile":      *dispatchFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.TemplatePath) == "" {
		return errors.New("a template path is required (-template or " + envTemplate + ")")
	}
	for _, name := range ControlThemes {
		if cfg.App.Menu.ControlTheme == name {
			return nil
		}
	}
	return fmt.Errorf("unknown control theme %q", cfg.App.Menu.ControlTheme)
}
