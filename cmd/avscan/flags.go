package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nicholasadamou/avscan-api/internal/app"
	"github.com/nicholasadamou/avscan-api/internal/config"
	"github.com/nicholasadamou/avscan-api/internal/scanner"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var version = "dev"

func cmd() *cli.Command {
	return &cli.Command{
		Name:    "avscan",
		Usage:   "ClamAV file scanning API",
		Version: version,
		Flags:   flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, ok := ctx.Value(loggerKey{}).(*slog.Logger)
			if !ok {
				return errors.New("failed to get logger from context")
			}

			cfg := config.Load(cmd)

			return app.New(log, cfg, version).Run(ctx)
		},
	}
}

func flags() []cli.Flag {
	var config string

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Validator:   validateConfig,
			Usage:       "Load configuration from `FILE`",
			Destination: &config,
		},
		&cli.StringFlag{
			Name:    "upload-dir",
			Aliases: []string{"u"},
			Usage:   "Set directory for temporary uploads",
			Value:   "uploads",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_UPLOAD_DIR"),
				yaml.YAML("app.upload_dir", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.StringFlag{
			Name:    "engine-path",
			Aliases: []string{"e"},
			Usage:   "Set path to the clamscan executable",
			Value:   scanner.DefaultEnginePath(),
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_ENGINE_PATH"),
				yaml.YAML("app.engine_path", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.DurationFlag{
			Name:    "scan-timeout",
			Aliases: []string{"t"},
			Usage:   "Set per-scan engine timeout, 0 disables",
			Value:   60 * time.Second,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_SCAN_TIMEOUT"),
				yaml.YAML("app.scan_timeout", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.IntFlag{
			Name:  "max-upload-size",
			Usage: "Set maximum upload size in bytes, 0 disables the cap",
			Value: 100 << 20,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_MAX_UPLOAD_SIZE"),
				yaml.YAML("app.max_upload_size", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.IntFlag{
			Name:  "max-concurrent-scans",
			Usage: "Set maximum simultaneous engine processes, 0 disables the cap",
			Value: 0,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_MAX_CONCURRENT_SCANS"),
				yaml.YAML("app.max_concurrent_scans", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.StringFlag{
			Name:    "http-host",
			Usage:   "Set HTTP server host",
			Value:   "localhost",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_HTTP_HOST"),
				yaml.YAML("http.host", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.StringFlag{
			Name:    "http-port",
			Usage:   "Set HTTP server port",
			Value:   "8080",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_HTTP_PORT"),
				yaml.YAML("http.port", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.DurationFlag{
			Name:    "http-idle-timeout",
			Usage:   "Set HTTP server idle timeout",
			Value:   1 * time.Minute,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_HTTP_IDLE_TIMEOUT"),
				yaml.YAML("http.idle_timeout", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.DurationFlag{
			Name:    "http-read-timeout",
			Usage:   "Set HTTP server read timeout",
			Value:   15 * time.Second,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_HTTP_READ_TIMEOUT"),
				yaml.YAML("http.read_timeout", altsrc.NewStringPtrSourcer(&config)),
			),
		},
		&cli.DurationFlag{
			// Longer than the default read timeout: the scan itself runs
			// inside the handler and counts against the write window.
			Name:    "http-write-timeout",
			Usage:   "Set HTTP server write timeout",
			Value:   2 * time.Minute,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AVSCAN_HTTP_WRITE_TIMEOUT"),
				yaml.YAML("http.write_timeout", altsrc.NewStringPtrSourcer(&config)),
			),
		},
	}
}

func validateConfig(config string) error {
	info, err := os.Stat(config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", config)
		}
		return fmt.Errorf("failed to stat %q: %w", config, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", config)
	}

	ext := filepath.Ext(info.Name())
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", config)
	}

	return nil
}
