// ConfigStudio is a desktop builder for configurable 3D products:
// authors define components, options, and conditional rules, and the
// app resolves selections into a live scene preview.
//
// Build:
//   go build -o configstudio ./cmd/configstudio
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o configstudio.exe ./cmd/configstudio
//   GOOS=darwin  GOARCH=amd64 go build -o configstudio-darwin ./cmd/configstudio
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"github.com/variantly/configstudio/internal/ui"
)

func main() {
	application := app.NewWithID("com.variantly.configstudio")
	window := application.NewWindow("ConfigStudio - Product Configurator Builder")

	appUI := ui.NewApp(window)

	switch appUI.Config().Theme {
	case "light":
		application.Settings().SetTheme(ui.NewConfigStudioThemeWithVariant(theme.VariantLight))
	case "dark":
		application.Settings().SetTheme(ui.NewConfigStudioThemeWithVariant(theme.VariantDark))
	default:
		application.Settings().SetTheme(ui.NewConfigStudioTheme())
	}

	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 720))
	window.CenterOnScreen()
	window.ShowAndRun()
}
