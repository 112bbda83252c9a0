package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

type Config struct {
	App
	HTTP
}

type App struct {
	UploadDirectory    string
	EnginePath         string
	ScanTimeout        time.Duration
	MaxUploadSize      int64
	MaxConcurrentScans int64
}

type HTTP struct {
	Host         string
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load(cmd *cli.Command) *Config {
	return &Config{
		App: App{
			UploadDirectory:    cmd.String("upload-dir"),
			EnginePath:         cmd.String("engine-path"),
			ScanTimeout:        cmd.Duration("scan-timeout"),
			MaxUploadSize:      int64(cmd.Int("max-upload-size")),
			MaxConcurrentScans: int64(cmd.Int("max-concurrent-scans")),
		},
		HTTP: HTTP{
			Host:         cmd.String("http-host"),
			Port:         cmd.String("http-port"),
			IdleTimeout:  cmd.Duration("http-idle-timeout"),
			ReadTimeout:  cmd.Duration("http-read-timeout"),
			WriteTimeout: cmd.Duration("http-write-timeout"),
		},
	}
}
