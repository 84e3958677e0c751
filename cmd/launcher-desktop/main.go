package main

import (
	"embed"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	app := NewApp()

	isDev := os.Getenv("LAUNCHER_DEV") != "" || Version == "0.1.0-dev"

	logLevel := logger.INFO
	if isDev {
		logLevel = logger.DEBUG
	}

	startHidden := false
	if s, err := app.settings.Load(); err == nil && s.StartHidden != nil {
		startHidden = *s.StartHidden
	}

	err := wails.Run(&options.App{
		Title:  "Launcher",
		Width:  520,
		Height: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 245, G: 245, B: 245, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		StartHidden:      startHidden,
		AlwaysOnTop:      true,
		Bind: []interface{}{
			app,
		},
		LogLevel:           logLevel,
		LogLevelProduction: logger.ERROR,
		Debug: options.Debug{
			OpenInspectorOnStartup: isDev,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
