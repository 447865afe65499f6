package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/variantly/configstudio/internal/model"
	"github.com/variantly/configstudio/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	// Theme selector
	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	autoResolveCheck := widget.NewCheck("", func(b bool) { cfg.AutoResolve = b })
	autoResolveCheck.Checked = cfg.AutoResolve

	manipulationSelect := widget.NewSelect([]string{"Visibility", "Material"}, func(selected string) {
		if selected == "Material" {
			cfg.DefaultManipulation = model.ManipulationMaterial
		} else {
			cfg.DefaultManipulation = model.ManipulationVisibility
		}
	})
	if cfg.DefaultManipulation == model.ManipulationMaterial {
		manipulationSelect.SetSelected("Material")
	} else {
		manipulationSelect.SetSelected("Visibility")
	}

	behaviorSelect := widget.NewSelect([]string{"Hide others", "Show others"}, func(selected string) {
		cfg.DefaultBehavior = parseBehaviorSelection(selected)
	})
	if cfg.DefaultBehavior == model.BehaviorShow {
		behaviorSelect.SetSelected("Show others")
	} else {
		behaviorSelect.SetSelected("Hide others")
	}

	displaySelect := widget.NewSelect([]string{"Buttons", "Dropdown", "Swatches"}, func(selected string) {
		cfg.DefaultDisplayType = parseDisplaySelection(selected)
	})
	switch cfg.DefaultDisplayType {
	case model.DisplayDropdown:
		displaySelect.SetSelected("Dropdown")
	case model.DisplaySwatches:
		displaySelect.SetSelected("Swatches")
	default:
		displaySelect.SetSelected("Buttons")
	}

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Resolve on Every Change", autoResolveCheck),
		widget.NewFormItem("Project Backups to Keep", intEntry(&cfg.MaxBackups)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Option Type", manipulationSelect),
		widget.NewFormItem("Default Behavior", behaviorSelect),
		widget.NewFormItem("Default Display", displaySelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			a.applyTheme()
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(450, 450))
	d.Show()
}

// applyTheme switches the running app to the configured theme variant.
func (a *App) applyTheme() {
	switch a.config.Theme {
	case "light":
		fyne.CurrentApp().Settings().SetTheme(NewConfigStudioThemeWithVariant(theme.VariantLight))
	case "dark":
		fyne.CurrentApp().Settings().SetTheme(NewConfigStudioThemeWithVariant(theme.VariantDark))
	default:
		fyne.CurrentApp().Settings().SetTheme(NewConfigStudioTheme())
	}
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.presets); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("configstudio-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current application settings and presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.presets = backup.Presets
					a.applyTheme()
					a.persistPresets()
					a.refreshPresetsList()
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, presets) to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
