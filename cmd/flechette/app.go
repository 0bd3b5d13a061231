// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/flechette-insolente/flechette/internal/compiler"
	"github.com/flechette-insolente/flechette/internal/config"
	"github.com/flechette-insolente/flechette/internal/executor"
	"github.com/flechette-insolente/flechette/internal/issue"
	"github.com/flechette-insolente/flechette/internal/logging"
	"github.com/flechette-insolente/flechette/pkg/platform"
)

type (
	// ConfigProvider loads configuration for the CLI layer.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// RunnerFactory builds the runner that executes the dart-sass
	// executable at path.
	RunnerFactory func(path string, opts ...executor.Option) compiler.Runner

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App reference.
	App struct {
		Config    ConfigProvider
		NewRunner RunnerFactory
		Platform  func() platform.Build
		stdout    io.Writer
		stderr    io.Writer

		flags   rootFlags
		verbose bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		NewRunner RunnerFactory
		Platform  func() platform.Build
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// rootFlags holds the persistent flag values of one invocation.
	rootFlags struct {
		configPath string
		verbosity  int
	}

	// session is the state a command needs once configuration is loaded.
	session struct {
		cfg    *config.Config
		build  platform.Build
		logger *log.Logger
		closer io.Closer
	}
)

// NewApp creates an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		NewRunner: deps.NewRunner,
		Platform:  deps.Platform,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.NewRunner == nil {
		app.NewRunner = func(path string, opts ...executor.Option) compiler.Runner {
			return executor.New(path, opts...)
		}
	}
	if app.Platform == nil {
		app.Platform = platform.Detect
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads configuration honoring the persistent --config and
// --verbosity flags.
func (a *App) loadConfig(ctx context.Context, verbosityChanged bool) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, err
	}
	if verbosityChanged {
		cfg.Verbosity = logging.Verbosity(a.flags.verbosity)
		if err := cfg.Verbosity.Validate(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("apply --verbosity").
				WithResource(fmt.Sprint(a.flags.verbosity)).
				WithSuggestion("Pass a verbosity between 0 (silent) and 5 (debug)").
				WithIssue(issue.InvalidArgumentsId).
				Wrap(err).
				BuildError()
		}
	}
	return cfg, nil
}

// openSession loads configuration, builds the logger and resolves the
// dart-sass build for the host. The returned context carries the logger.
func (a *App) openSession(ctx context.Context, verbosityChanged bool) (context.Context, *session, error) {
	if verbosityChanged {
		a.verbose = logging.Verbosity(a.flags.verbosity) == logging.MaxVerbosity
	}
	cfg, err := a.loadConfig(ctx, verbosityChanged)
	if err != nil {
		return ctx, nil, err
	}
	a.verbose = cfg.Verbosity == logging.MaxVerbosity

	logger, closer, err := logging.New(logging.Options{
		Verbosity: cfg.Verbosity,
		Output:    a.stderr,
		File:      cfg.LogFile,
		Rotation:  logging.DefaultRotation,
	})
	if err != nil {
		return ctx, nil, issue.NewErrorContext().
			WithOperation("open log file").
			WithResource(cfg.LogFile).
			WithSuggestion("Check that the log_file directory exists and is writable").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	s := &session{cfg: cfg, build: a.Platform(), logger: logger, closer: closer}
	if cfg.Source != "" {
		logger.Debug("configuration loaded", "file", cfg.Source)
	}
	return log.WithContext(ctx, logger), s, nil
}

// compiler returns a compiler bound to the executable of the session.
func (a *App) compiler(s *session) (*compiler.Compiler, error) {
	if s.cfg.Executable == "" {
		if err := s.build.Validate(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("select dart-sass build").
				WithResource(s.build.Code()).
				WithSuggestions(
					"Set 'executable' in the configuration to a dart-sass installation",
					"Supported builds: "+strings.Join(platform.SupportedBuilds(), ", "),
				).
				WithIssue(issue.UnsupportedPlatformId).
				Wrap(err).
				BuildError()
		}
	}

	runner := a.NewRunner(
		s.cfg.ExecutablePath(s.build),
		executor.WithTimeout(s.cfg.Timeout.Duration()),
		executor.WithLogger(s.logger),
	)
	return compiler.New(runner), nil
}

// Close releases the log file of the session.
func (s *session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
