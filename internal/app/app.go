package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"log-analyzer/internal/analyzers"
	"log-analyzer/internal/generators"
	internalhttp "log-analyzer/internal/http"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/compressions"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/sources"
)

const appName = "log-analyzer"

// ReportOptions selects what the report command prints after the hourly counts.
type ReportOptions struct {
	File    string
	Summary bool
	Chart   bool
}

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	fileStorage     filestorages.FileStorage
	analysisService analyzers.AnalysisService
}

// New creates and initializes a new App instance. Logs go to logOut as JSON lines.
func New(config *configs.Config, logOut io.Writer) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	opener, err := sources.NewLogfileOpener(fileStorage, sources.Options{
		DefaultName: config.Source.FileName,
		Format:      config.Source.Format,
		Compression: compressions.Codec(config.Source.Compression),
		ExcludeBots: config.Source.ExcludeBots,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize record source: %w", err)
	}
	analysisService := analyzers.NewAnalysisService(opener, config.Analysis.BaseYear)

	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(analysisService, httpLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:          config,
		appLogger:       appLogger,
		server:          server,
		fileStorage:     fileStorage,
		analysisService: analysisService,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting %s service on port %d (log_level=%s, file_storage_root_dir=%s, source=%s)",
			appName,
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Source.FileName)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}

// Report analyzes one log file and writes the "Hr: Count" report to w, optionally
// followed by the summary and an hourly chart.
func (app *App) Report(ctx context.Context, w io.Writer, opts ReportOptions) error {
	ctx = app.withLogger(ctx, "report")

	engine, err := app.analysisService.NewEngine(ctx, opts.File)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.AnalyzeAll(ctx); err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); !ok || !svcErr.IsOutOfRange() {
			return err
		}
		loggers.Ctx(ctx).Warn().Err(err).Msg("records outside the modeled window were skipped")
	}

	if err := engine.PrintHourlyCounts(w); err != nil {
		return err
	}

	if opts.Summary {
		summary, err := engine.Summary()
		if err != nil {
			return err
		}
		summary.Source = opts.File
		if summary.Source == "" {
			summary.Source = app.config.Source.FileName
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := reports.PrintSummary(w, summary); err != nil {
			return err
		}
	}

	if opts.Chart {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := reports.PlotHourly(w, engine.HourlyCounts()); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes the raw lines of a log file to w.
func (app *App) Dump(ctx context.Context, w io.Writer, file string) error {
	return app.analysisService.Dump(app.withLogger(ctx, "dump"), file, w)
}

// GenerateOptions describes a synthetic log file. Empty File and zero Count fall back to config.
type GenerateOptions struct {
	File      string
	Count     int
	Overwrite bool
}

// Generate writes a synthetic log file into file storage.
func (app *App) Generate(ctx context.Context, opts GenerateOptions) (*generators.CreateResult, error) {
	if opts.File == "" {
		opts.File = app.config.Source.FileName
	}
	if opts.Count == 0 {
		opts.Count = app.config.Generator.Count
	}

	creator := generators.NewLogfileCreator(app.fileStorage, generators.Options{
		BaseYear:    app.config.Analysis.BaseYear,
		Seed:        uint64(app.config.Generator.Seed),
		Compression: compressions.Codec(app.config.Source.Compression),
		Overwrite:   opts.Overwrite,
	})
	return creator.Create(app.withLogger(ctx, "generator"), opts.File, opts.Count)
}

func (app *App) withLogger(ctx context.Context, component string) context.Context {
	return app.appLogger.With().Str(loggers.FieldComponent, component).Logger().WithContext(ctx)
}
