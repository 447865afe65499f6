package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/variantly/configstudio/internal/engine"
	"github.com/variantly/configstudio/internal/export"
	"github.com/variantly/configstudio/internal/importer"
	"github.com/variantly/configstudio/internal/model"
	"github.com/variantly/configstudio/internal/project"
	"github.com/variantly/configstudio/internal/scene"
	"github.com/variantly/configstudio/internal/share"
	"github.com/variantly/configstudio/internal/ui/widgets"
)

const noneSelection = "(none)"

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	project model.Project
	library *scene.Library
	config  model.AppConfig
	history *History
	presets []project.SelectionPreset
	tabs    *container.AppTabs

	// Last resolution output, for the preview and the PDF export.
	result     engine.Result
	warnings   []string
	showHidden bool

	// UI references for dynamic updates
	optionsContainer    *fyne.Container
	componentsContainer *fyne.Container
	presetsContainer    *fyne.Container
	previewContainer    *fyne.Container
	warningsLabel       *widget.Label
}

func NewApp(window fyne.Window) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		config = model.DefaultAppConfig()
	}

	presets, _ := loadPresetsIfPresent()

	return &App{
		window:     window,
		project:    model.NewProject(),
		library:    scene.NewLibrary(),
		config:     config,
		history:    NewHistory(),
		presets:    presets,
		showHidden: true,
	}
}

func loadPresetsIfPresent() ([]project.SelectionPreset, error) {
	path, err := project.DefaultPresetsPath()
	if err != nil {
		return nil, err
	}
	return project.LoadPresets(path)
}

// Config exposes the loaded application configuration (the theme variant
// is applied by main before the window shows).
func (a *App) Config() model.AppConfig {
	return a.config
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.project = model.NewProject()
			a.library = scene.NewLibrary()
			a.history.Clear()
			a.refreshAll()
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProject()
		}),
		fyne.NewMenuItem("Open Recent...", func() {
			a.showRecentProjects()
		}),
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Options from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Options from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItem("Import Components from DXF...", func() {
			a.importDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Configuration PDF...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Preset Share Cards...", func() {
			a.exportShareCards()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Selections", func() {
			a.pushHistory("Clear Selections")
			a.project.Selections = model.SelectionState{}
			a.resolveScene()
			a.refreshOptionsList()
		}),
		fyne.NewMenuItem("Clear All Options", func() {
			a.pushHistory("Clear All Options")
			a.project.Options = nil
			a.project.Selections = model.SelectionState{}
			a.resolveScene()
			a.refreshOptionsList()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", func() {
			a.showSettingsDialog()
		}),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Resolve Scene", func() {
			a.resolveScene()
			a.tabs.SelectIndex(2) // Switch to Preview tab
		}),
		fyne.NewMenuItem("Validate Configuration", func() {
			a.showLintReport()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Share Code...", func() {
			a.showShareCodeDialog()
		}),
		fyne.NewMenuItem("Compare Presets", func() {
			a.showPresetComparison()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showImportExportDialog()
		}),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	// Set the main menu
	mainMenu := fyne.NewMainMenu(
		fileMenu,
		editMenu,
		toolsMenu,
		helpMenu,
	)
	a.window.SetMainMenu(mainMenu)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About ConfigStudio",
		"ConfigStudio — Product Configurator Builder\n\n"+
			"A cross-platform desktop application for authoring\n"+
			"configurable products: options, conditional rules, and\n"+
			"a live resolved component preview.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	// Main tabs
	optionsTab := container.NewTabItem("Options", a.buildOptionsPanel())
	componentsTab := container.NewTabItem("Components", a.buildComponentsPanel())
	previewTab := container.NewTabItem("Preview", a.buildPreviewPanel())
	presetsTab := container.NewTabItem("Presets", a.buildPresetsPanel())

	a.tabs = container.NewAppTabs(optionsTab, componentsTab, previewTab, presetsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.refreshAll()
	return a.tabs
}

func (a *App) refreshAll() {
	a.resolveScene()
	a.refreshOptionsList()
	a.refreshComponentsList()
	a.refreshPresetsList()
}

// ─── History ───────────────────────────────────────────────

// pushHistory records the current options and selections before a
// mutation is applied.
func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.project.Options, a.project.Selections, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.project.Options, a.project.Selections, "current"))
	if !ok {
		return
	}
	a.project.Options = snap.Options
	a.project.Selections = snap.Selections
	a.refreshOptionsList()
	a.resolveScene()
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.project.Options, a.project.Selections, "current"))
	if !ok {
		return
	}
	a.project.Options = snap.Options
	a.project.Selections = snap.Selections
	a.refreshOptionsList()
	a.resolveScene()
}

// ─── Options Panel ─────────────────────────────────────────

func (a *App) buildOptionsPanel() fyne.CanvasObject {
	a.optionsContainer = container.NewVBox()
	a.refreshOptionsList()

	addBtn := widget.NewButtonWithIcon("Add Option", theme.ContentAddIcon(), func() {
		a.showAddOptionDialog()
	})
	addGroupBtn := widget.NewButtonWithIcon("Add Group", theme.FolderNewIcon(), func() {
		a.showAddGroupDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Options (evaluation order)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addGroupBtn,
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.optionsContainer),
	)
}

func (a *App) refreshOptionsList() {
	if a.optionsContainer == nil {
		return
	}
	a.optionsContainer.RemoveAll()

	if len(a.project.Options) == 0 {
		a.optionsContainer.Add(widget.NewLabel("No options yet. Click 'Add Option' to begin."))
		a.optionsContainer.Refresh()
		return
	}

	// Header
	header := container.NewGridWithColumns(7,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Targets", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Selection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.optionsContainer.Add(header)
	a.optionsContainer.Add(widget.NewSeparator())

	for i := range a.project.Options {
		idx := i // capture
		opt := a.project.Options[idx]

		name := opt.Name
		if opt.IsGroup {
			name = "[Group] " + name
		} else if !a.result.Visibility.OptionVisible(opt.ID) {
			name += " (hidden)"
		}
		if opt.ConditionalLogic != nil && opt.ConditionalLogic.Enabled {
			name += " *"
		}

		row := container.NewGridWithColumns(7,
			widget.NewLabel(name),
			widget.NewLabel(a.describeOptionType(opt)),
			widget.NewLabel(strings.Join(opt.TargetComponents, ", ")),
			a.buildSelectionControl(idx),
			newIconButtonWithTooltip(theme.MoveUpIcon(), "Raise priority", func() {
				a.moveOption(idx, -1)
			}),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit option", func() {
				a.showEditOptionDialog(idx)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete option", func() {
				a.pushHistory("Delete Option")
				delete(a.project.Selections, a.project.Options[idx].ID)
				a.project.Options = append(a.project.Options[:idx], a.project.Options[idx+1:]...)
				a.refreshOptionsList()
				a.resolveScene()
			}),
		)
		a.optionsContainer.Add(row)
	}
	a.optionsContainer.Refresh()
}

func (a *App) describeOptionType(opt model.Option) string {
	if opt.IsGroup {
		return fmt.Sprintf("%d members", a.countGroupMembers(opt.ID))
	}
	return fmt.Sprintf("%s, %d values", opt.ManipulationType, len(opt.Values))
}

func (a *App) countGroupMembers(groupID string) int {
	n := 0
	for _, o := range a.project.Options {
		if o.GroupID == groupID {
			n++
		}
	}
	return n
}

// buildSelectionControl returns the per-option value picker. Groups get a
// placeholder label; they hold no selection themselves.
func (a *App) buildSelectionControl(idx int) fyne.CanvasObject {
	opt := a.project.Options[idx]
	if opt.IsGroup || len(opt.Values) == 0 {
		return widget.NewLabel("-")
	}

	names := make([]string, 0, len(opt.Values)+1)
	names = append(names, noneSelection)
	for _, v := range opt.Values {
		names = append(names, v.Name)
	}

	sel := widget.NewSelect(names, func(selected string) {
		optID := a.project.Options[idx].ID
		if selected == noneSelection {
			if _, had := a.project.Selections[optID]; !had {
				return
			}
			delete(a.project.Selections, optID)
		} else {
			var valueID string
			for _, v := range a.project.Options[idx].Values {
				if v.Name == selected {
					valueID = v.ID
					break
				}
			}
			if valueID == "" || a.project.Selections[optID] == valueID {
				return
			}
			a.project.Selections[optID] = valueID
		}
		if a.config.AutoResolve {
			a.resolveScene()
		}
	})

	current := noneSelection
	if valueID, ok := a.project.Selections[opt.ID]; ok {
		if v, found := opt.FindValue(valueID); found {
			current = v.Name
		}
	}
	sel.SetSelected(current)
	return sel
}

// moveOption shifts an option up or down the priority order.
func (a *App) moveOption(idx, delta int) {
	target := idx + delta
	if target < 0 || target >= len(a.project.Options) {
		return
	}
	a.pushHistory("Reorder Options")
	opts := a.project.Options
	opts[idx], opts[target] = opts[target], opts[idx]
	a.refreshOptionsList()
	a.resolveScene()
}

// ─── Components Panel ──────────────────────────────────────

func (a *App) buildComponentsPanel() fyne.CanvasObject {
	a.componentsContainer = container.NewVBox()
	a.refreshComponentsList()

	addBtn := widget.NewButtonWithIcon("Add Component", theme.ContentAddIcon(), func() {
		a.showAddComponentDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Scene Components", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.componentsContainer),
	)
}

func (a *App) refreshComponentsList() {
	if a.componentsContainer == nil {
		return
	}
	a.componentsContainer.RemoveAll()

	items := a.library.Items()
	if len(items) == 0 {
		a.componentsContainer.Add(widget.NewLabel("No components yet. Click 'Add Component' or import a DXF drawing."))
		a.componentsContainer.Refresh()
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Base Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Base Visible", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Outline", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.componentsContainer.Add(header)
	a.componentsContainer.Add(widget.NewSeparator())

	for _, it := range items {
		c := it.Component
		name := c.Name
		visible := "hidden"
		if c.BaseVisible {
			visible = "visible"
		}
		outline := "none"
		if len(c.Outline) > 0 {
			outline = fmt.Sprintf("%d points", len(c.Outline))
		}
		row := container.NewGridWithColumns(6,
			widget.NewLabel(name),
			widget.NewLabel(c.BaseColor),
			widget.NewLabel(visible),
			widget.NewLabel(outline),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit component", func() {
				a.showEditComponentDialog(name)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete component", func() {
				a.library.Remove(name)
				a.syncComponents()
				a.refreshComponentsList()
				a.resolveScene()
			}),
		)
		a.componentsContainer.Add(row)
	}
	a.componentsContainer.Refresh()
}

// syncComponents mirrors the live library back into the project so that
// save/load round-trips the component definitions.
func (a *App) syncComponents() {
	a.project.Components = a.library.Components()
}

// ─── Preview Panel ─────────────────────────────────────────

func (a *App) buildPreviewPanel() fyne.CanvasObject {
	a.previewContainer = container.NewStack(
		widget.NewLabel("No components yet. Add components or import a DXF drawing."),
	)
	a.warningsLabel = widget.NewLabel("")
	a.warningsLabel.Wrapping = fyne.TextWrapWord

	showHiddenCheck := widget.NewCheck("Show hidden components", func(b bool) {
		a.showHidden = b
		a.refreshPreview()
	})
	showHiddenCheck.Checked = a.showHidden

	resolveBtn := widget.NewButtonWithIcon("Resolve", theme.ViewRefreshIcon(), func() {
		a.resolveScene()
	})

	return container.NewBorder(
		container.NewHBox(resolveBtn, showHiddenCheck, layout.NewSpacer()),
		a.warningsLabel,
		nil, nil,
		a.previewContainer,
	)
}

func (a *App) refreshPreview() {
	if a.previewContainer == nil {
		return
	}
	a.previewContainer.RemoveAll()
	a.previewContainer.Add(widgets.RenderScenePreview(a.library, a.showHidden, 700, 450))
	a.previewContainer.Refresh()

	if a.warningsLabel != nil {
		if len(a.warnings) == 0 {
			a.warningsLabel.SetText("")
		} else {
			a.warningsLabel.SetText("Warnings:\n" + strings.Join(a.warnings, "\n"))
		}
	}
}

// ─── Presets Panel ─────────────────────────────────────────

func (a *App) buildPresetsPanel() fyne.CanvasObject {
	a.presetsContainer = container.NewVBox()
	a.refreshPresetsList()

	saveBtn := widget.NewButtonWithIcon("Save Current as Preset", theme.ContentAddIcon(), func() {
		a.showSavePresetDialog()
	})
	importBtn := widget.NewButtonWithIcon("Import...", theme.UploadIcon(), func() {
		a.importPreset()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Saved Presets", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			importBtn,
			saveBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.presetsContainer),
	)
}

func (a *App) refreshPresetsList() {
	if a.presetsContainer == nil {
		return
	}
	a.presetsContainer.RemoveAll()

	if len(a.presets) == 0 {
		a.presetsContainer.Add(widget.NewLabel("No presets saved yet."))
		a.presetsContainer.Refresh()
		return
	}

	for i := range a.presets {
		p := a.presets[i]
		row := container.NewGridWithColumns(5,
			widget.NewLabel(p.Name),
			widget.NewLabel(p.Description),
			widget.NewLabel(fmt.Sprintf("%d selections", len(p.Selections))),
			widget.NewButton("Apply", func() {
				a.pushHistory("Apply Preset")
				a.project.Selections = p.Selections.Clone()
				a.project.PruneSelections()
				a.refreshOptionsList()
				a.resolveScene()
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete preset", func() {
				a.presets, _ = project.RemovePreset(a.presets, p.ID)
				a.persistPresets()
				a.refreshPresetsList()
			}),
		)
		a.presetsContainer.Add(row)
	}
	a.presetsContainer.Refresh()
}

func (a *App) showSavePresetDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Preset name")

	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if strings.TrimSpace(nameEntry.Text) == "" {
				dialog.ShowError(fmt.Errorf("preset name must not be empty"), a.window)
				return
			}
			p := project.NewSelectionPreset(nameEntry.Text, a.project.Selections)
			p.Description = descEntry.Text
			a.presets = project.UpsertPreset(a.presets, p)
			a.persistPresets()
			a.refreshPresetsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 250))
	form.Show()
}

func (a *App) persistPresets() {
	path, err := project.DefaultPresetsPath()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if err := project.SavePresets(path, a.presets); err != nil {
		dialog.ShowError(err, a.window)
	}
}

func (a *App) importPreset() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		p, err := project.ImportPreset(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.presets = project.UpsertPreset(a.presets, p)
		a.persistPresets()
		a.refreshPresetsList()
	}, a.window)
}

// ─── Actions ───────────────────────────────────────────────

// resolveScene runs the engine over the current options and selections
// and folds the result onto the live components. Defaults the engine
// reports are adopted into the project selections.
func (a *App) resolveScene() {
	a.library.Reset()

	diag := &engine.Diagnostics{}
	result, merged := engine.ResolveWithDefaults(engine.Input{
		Options:    a.project.Options,
		Selections: a.project.Selections,
		Components: a.library.Snapshot(),
	}, diag)

	adopted := len(merged) != len(a.project.Selections)
	a.project.Selections = merged
	a.library.Apply(result.ComponentStates)
	a.result = result
	a.warnings = diag.Warnings

	if adopted {
		a.refreshOptionsList()
	}
	a.refreshPreview()
}

func (a *App) showLintReport() {
	issues := engine.Lint(a.project.Options, a.library.Names())
	if len(issues) == 0 {
		dialog.ShowInformation("Validation", "No issues found.", a.window)
		return
	}

	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	report := widget.NewLabel(strings.Join(lines, "\n"))
	report.Wrapping = fyne.TextWrapWord

	d := dialog.NewCustom(fmt.Sprintf("Validation — %d issue(s)", len(issues)), "Close",
		container.NewVScroll(report), a.window)
	d.Resize(fyne.NewSize(550, 400))
	d.Show()
}

func (a *App) showShareCodeDialog() {
	code := share.Encode(a.project.Options, a.project.Selections)

	codeEntry := widget.NewEntry()
	codeEntry.SetText(code)

	form := dialog.NewForm("Share Code", "Apply", "Close",
		[]*widget.FormItem{
			widget.NewFormItem("Code", codeEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			a.applyShareCode(codeEntry.Text)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 180))
	form.Show()
}

func (a *App) applyShareCode(code string) {
	decoded, err := share.Decode(strings.TrimSpace(code))
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	selections, applyWarnings := decoded.Apply(a.project.Options)
	warnings := append(decoded.Warnings, applyWarnings...)

	a.pushHistory("Apply Share Code")
	a.project.Selections = selections
	a.refreshOptionsList()
	a.resolveScene()

	if len(warnings) > 0 {
		dialog.ShowInformation("Share Code Applied",
			fmt.Sprintf("Applied with %d warning(s):\n\n%s", len(warnings), strings.Join(warnings, "\n")),
			a.window)
	}
}

func (a *App) showPresetComparison() {
	if len(a.presets) == 0 {
		dialog.ShowInformation("Compare Presets", "Save at least one preset first.", a.window)
		return
	}

	scenarios := make([]engine.ComparisonScenario, len(a.presets))
	for i, p := range a.presets {
		scenarios[i] = engine.ComparisonScenario{Name: p.Name, Selections: p.Selections}
	}

	a.library.Reset()
	results := engine.CompareScenarios(a.project.Options, a.library.Snapshot(), scenarios)
	a.library.Apply(a.result.ComponentStates)

	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "%s\n", r.Scenario.Name)
		fmt.Fprintf(&sb, "  %d visible, %d hidden, %d recolored\n", r.VisibleComponents, r.HiddenComponents, r.Recolored)
		if r.UnselectedOptions > 0 {
			fmt.Fprintf(&sb, "  %d option(s) left unselected\n", r.UnselectedOptions)
		}
		sb.WriteString("\n")
	}

	report := widget.NewLabel(sb.String())
	report.Wrapping = fyne.TextWrapWord

	d := dialog.NewCustom("Preset Comparison", "Close", container.NewVScroll(report), a.window)
	d.Resize(fyne.NewSize(550, 400))
	d.Show()
}

func (a *App) saveProject() {
	a.syncComponents()
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveProject(path, a.project, a.config.MaxBackups); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberRecent(path)
	}, a.window)
	d.SetFileName(a.project.Name + project.FileExtension)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openProjectPath(reader.URI().Path())
	}, a.window)
	d.Show()
}

func (a *App) showRecentProjects() {
	if len(a.config.RecentProjects) == 0 {
		dialog.ShowInformation("Open Recent", "No recently opened projects.", a.window)
		return
	}

	list := container.NewVBox()
	var d *dialog.CustomDialog
	for _, path := range a.config.RecentProjects {
		p := path // capture
		btn := widget.NewButton(project.DisplayName(p), func() {
			d.Hide()
			a.openProjectPath(p)
		})
		btn.Alignment = widget.ButtonAlignLeading
		list.Add(btn)
	}

	d = dialog.NewCustom("Open Recent", "Cancel", container.NewVScroll(list), a.window)
	d.Resize(fyne.NewSize(400, 300))
	d.Show()
}

func (a *App) openProjectPath(path string) {
	proj, err := project.LoadProject(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.project = proj
	a.library = scene.NewLibrary(proj.Components...)
	a.history.Clear()
	a.rememberRecent(path)
	a.refreshAll()
}

func (a *App) rememberRecent(path string) {
	a.config.AddRecentProject(path, 10)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
		// Not fatal; the project itself saved fine.
		fmt.Printf("could not save app config: %v\n", err)
	}
}

func (a *App) exportPDF() {
	if len(a.library.Items()) == 0 && len(a.project.Options) == 0 {
		dialog.ShowInformation("Nothing to export", "Add options or components first.", a.window)
		return
	}

	a.resolveScene()
	a.syncComponents()

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := export.ExportConfigurationPDF(path, a.project, a.result); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Configuration sheet saved to %s", path), a.window)
		}
	}, a.window)
	d.SetFileName(a.project.Name + ".pdf")
	d.Show()
}

func (a *App) exportShareCards() {
	if len(a.presets) == 0 {
		dialog.ShowInformation("No presets", "Save at least one preset first; each card encodes one preset.", a.window)
		return
	}

	named := make(map[string]model.SelectionState, len(a.presets))
	for _, p := range a.presets {
		named[p.Name] = p.Selections
	}
	cards := export.BuildShareCards(a.project.Options, named)

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := export.ExportShareCards(path, cards); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("%d share card(s) saved to %s", len(cards), path), a.window)
		}
	}, a.window)
	d.SetFileName("share-cards.pdf")
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportCSV(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportExcel(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importDXF() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportDXF(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	// Show errors if any
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	// Show warnings if any
	if len(result.Warnings) > 0 {
		// Just log warnings, don't block
		fmt.Printf("Import warnings: %v\n", result.Warnings)
	}

	if len(result.Options) == 0 && len(result.Components) == 0 {
		return
	}

	a.pushHistory("Import")

	if len(result.Options) > 0 {
		a.project.Options = append(a.project.Options, result.Options...)
		a.refreshOptionsList()
	}
	if len(result.Components) > 0 {
		for _, c := range result.Components {
			a.library.Add(c)
		}
		a.syncComponents()
		a.refreshComponentsList()
	}
	a.resolveScene()

	var parts []string
	if len(result.Options) > 0 {
		parts = append(parts, fmt.Sprintf("%d option(s)", len(result.Options)))
	}
	if len(result.Components) > 0 {
		parts = append(parts, fmt.Sprintf("%d component(s)", len(result.Components)))
	}
	msg := "Successfully imported " + strings.Join(parts, " and ") + "."
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}
