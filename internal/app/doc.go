// Package app provides the application context for edge-launcher.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths          // Data directory layout
//	    Exec     system.CommandExecutor // docker and edge invocations
//	    FS       system.FileSystem      // Device identity files
//	    HTTP     *http.Client           // Index API and downloads
//	    IndexURL string                 // Index API override
//	    FilesURL string                 // Edge CLI download override
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(config.NewPaths(t.TempDir())),
//	    app.WithExecutor(system.NewMockExecutor()),
//	    app.WithIndexURL(server.URL),
//	)
//
// # Available Options
//
//	WithPaths(paths)      // Custom path configuration
//	WithExecutor(exec)    // Custom command executor
//	WithFS(fs)            // Custom file system
//	WithHTTPClient(c)     // Custom HTTP client
//	WithIndexURL(url)     // Index API base URL
//	WithFilesURL(url)     // Edge CLI download base URL
package app
