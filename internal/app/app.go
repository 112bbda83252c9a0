package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/nicholasadamou/avscan-api/internal/config"
	v1 "github.com/nicholasadamou/avscan-api/internal/controller/http/v1"
	"github.com/nicholasadamou/avscan-api/internal/scanner"
	"github.com/nicholasadamou/avscan-api/internal/upload"
	"golang.org/x/sync/errgroup"
)

const versionProbeTimeout = 5 * time.Second

type App struct {
	log     *slog.Logger
	cfg     *config.Config
	version string
}

func New(log *slog.Logger, cfg *config.Config, version string) *App {
	return &App{
		log:     log,
		cfg:     cfg,
		version: version,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting app",
		slog.String("upload_dir", a.cfg.App.UploadDirectory),
		slog.String("engine_path", a.cfg.App.EnginePath),
		slog.Duration("scan_timeout", a.cfg.App.ScanTimeout),
		slog.Int64("max_concurrent_scans", a.cfg.App.MaxConcurrentScans),
	)

	if err := os.MkdirAll(a.cfg.App.UploadDirectory, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	invoker := scanner.NewExecInvoker(a.log, a.cfg.App.EnginePath)

	engineVersion := a.probeEngineVersion(ctx, invoker)

	scanService := scanner.NewService(a.log, invoker, a.cfg.App.ScanTimeout, a.cfg.App.MaxConcurrentScans)
	store := upload.NewStore(a.log, a.cfg.App.UploadDirectory)

	info := v1.ServiceInfo{
		Name:          "avscan-api",
		Version:       a.version,
		Description:   "Scans uploaded files for malware using ClamAV",
		EnginePath:    a.cfg.App.EnginePath,
		EngineVersion: engineVersion,
		CommandLine:   scanner.CommandLine(a.cfg.App.EnginePath),
	}

	server := v1.NewServer(a.cfg.HTTP, a.log, store, scanService, info, a.cfg.App.MaxUploadSize)

	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		a.log.InfoContext(ctx, "starting http server",
			slog.String("addr", net.JoinHostPort(a.cfg.HTTP.Host, a.cfg.HTTP.Port)),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	})

	erg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "app stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "app stopped gracefully")

	return nil
}

// probeEngineVersion asks the engine for its version banner once at startup.
// The result only feeds the info endpoint, so a missing or broken engine
// degrades to "unknown" instead of failing startup.
func (a *App) probeEngineVersion(ctx context.Context, invoker *scanner.ExecInvoker) string {
	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	engineVersion, err := invoker.Version(probeCtx)
	if err != nil {
		a.log.WarnContext(ctx, "failed to probe engine version", slog.String("err", err.Error()))
		return "unknown"
	}

	a.log.InfoContext(ctx, "detected scanning engine", slog.String("engine_version", engineVersion))

	return engineVersion
}
