package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/meepzh/cgtools/internal/app"
	"github.com/meepzh/cgtools/internal/config"
	platformconfig "github.com/meepzh/cgtools/internal/platform/config"
	"github.com/meepzh/cgtools/internal/platform/logging"
	"github.com/meepzh/cgtools/internal/scene"
)

func setupConfig() *platformconfig.Config {
	cfg, err := platformconfig.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupLogging resolves the log level and format from the layered package
// configuration, with the environment taking priority.
func setupLogging(cfg *platformconfig.Config) {
	level := cfg.LogLevel
	format := cfg.LogFormat

	layered := config.NewLayeredConfig(cfg.ConfigPackage, cfg.PackageConfigDir)
	if values, err := layered.Config("logging"); err == nil {
		if v, ok := values["level"].(string); ok && os.Getenv("LOG_LEVEL") == "" {
			level = v
		}
		if v, ok := values["format"].(string); ok && os.Getenv("LOG_FORMAT") == "" {
			format = v
		}
	}

	logging.InitLogger(level, format)
}

func main() {
	cfg := setupConfig()
	setupLogging(cfg)
	slog.Info("Fill selection demo starting", "config_package", cfg.ConfigPackage)

	// Stand up a host with a single 4x4 polygon grid
	host := scene.New()
	transform, shape := host.AddGridMesh("plane", 4, 4)
	slog.Info("Scene built", "transform", transform, "shape", shape)

	controller := app.NewController(host)

	// Cut the grid along the perimeter of a 2x2 face block
	faces := []string{
		shape + ".f[5]", shape + ".f[6]",
		shape + ".f[9]", shape + ".f[10]",
	}
	if err := host.SetSelection(faces); err != nil {
		slog.Error("Failed to select faces", "error", err)
		os.Exit(1)
	}

	if err := controller.FillSelection(); err != nil {
		slog.Error("Failed to start the fill selection", "error", err)
		os.Exit(1)
	}

	shells, err := host.UVShells(shape)
	if err != nil {
		slog.Error("Failed to list UV shells", "error", err)
		os.Exit(1)
	}
	slog.Info("Session active", "shells", len(shells))

	// Picking the shell containing one of the cut faces finalizes the
	// session through its selection-changed exit condition
	shell, err := host.ShellForFace(shape, 5)
	if err != nil {
		slog.Error("Failed to locate the UV shell", "error", err)
		os.Exit(1)
	}
	host.UserSelect(shell)
	host.Idle()

	slog.Info("Fill selection converted", "selection", host.Selection())
}
