// Package app provides the application context for edge-launcher.
// It allows dependency injection for testing.
package app

import (
	"net/http"
	"time"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/system"
)

// DefaultHTTPTimeout bounds every index API and download request.
const DefaultHTTPTimeout = 2 * time.Minute

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Exec runs docker and the Edge CLI
	Exec system.CommandExecutor

	// FS is used for the device identity files
	FS system.FileSystem

	// HTTP is shared by the index API client and the Edge CLI installer
	HTTP *http.Client

	// IndexURL overrides the index API base URL for the selected network
	IndexURL string

	// FilesURL overrides the Edge CLI download base URL
	FilesURL string
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Exec = exec
	}
}

// WithFS sets a custom file system
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) {
		a.HTTP = c
	}
}

// WithIndexURL points the index API client at url
func WithIndexURL(url string) Option {
	return func(a *App) {
		a.IndexURL = url
	}
}

// WithFilesURL points the Edge CLI installer at url
func WithFilesURL(url string) Option {
	return func(a *App) {
		a.FilesURL = url
	}
}

// New creates a new App with the given options.
// Unset dependencies fall back to the system defaults.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Paths == nil {
		app.Paths = config.DefaultPaths()
	}
	if app.Exec == nil {
		app.Exec = system.DefaultExecutor()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.HTTP == nil {
		app.HTTP = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	return app
}

// LoadConfig loads the launcher config from the app's data directory.
func (a *App) LoadConfig() (*config.LauncherConfig, error) {
	return config.Load(a.Paths)
}

// SaveConfig writes cfg to the app's data directory.
func (a *App) SaveConfig(cfg *config.LauncherConfig) error {
	return config.Save(a.Paths, cfg)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
