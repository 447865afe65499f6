package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/variantly/configstudio/internal/model"
)

// splitNames parses a comma-separated component name list.
func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ─── Option Dialogs ────────────────────────────────────────

func (a *App) showAddOptionDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Option name")
	nameEntry.SetText(fmt.Sprintf("Option %d", len(a.project.Options)+1))

	typeSelect := widget.NewSelect([]string{"Visibility", "Material"}, nil)
	if a.config.DefaultManipulation == model.ManipulationMaterial {
		typeSelect.SetSelected("Material")
	} else {
		typeSelect.SetSelected("Visibility")
	}

	displaySelect := widget.NewSelect([]string{"Buttons", "Dropdown", "Swatches"}, nil)
	displaySelect.SetSelected("Buttons")

	behaviorSelect := widget.NewSelect([]string{"Hide others", "Show others"}, nil)
	if a.config.DefaultBehavior == model.BehaviorShow {
		behaviorSelect.SetSelected("Show others")
	} else {
		behaviorSelect.SetSelected("Hide others")
	}

	targetsEntry := widget.NewEntry()
	targetsEntry.SetPlaceHolder("Comma-separated component names")

	groupSelect := a.buildGroupSelect("")

	form := dialog.NewForm("Add Option", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Type", typeSelect),
			widget.NewFormItem("Display", displaySelect),
			widget.NewFormItem("Default Behavior", behaviorSelect),
			widget.NewFormItem("Target Components", targetsEntry),
			widget.NewFormItem("Group", groupSelect),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if strings.TrimSpace(nameEntry.Text) == "" {
				dialog.ShowError(fmt.Errorf("option name must not be empty"), a.window)
				return
			}

			mt := model.ManipulationVisibility
			if typeSelect.Selected == "Material" {
				mt = model.ManipulationMaterial
			}

			a.pushHistory("Add Option")
			opt := model.NewOption(nameEntry.Text, mt)
			opt.DisplayType = parseDisplaySelection(displaySelect.Selected)
			opt.TargetComponents = splitNames(targetsEntry.Text)
			if mt == model.ManipulationVisibility {
				opt.DefaultBehavior = parseBehaviorSelection(behaviorSelect.Selected)
			}
			opt.GroupID = a.groupIDByName(groupSelect.Selected)

			a.project.Options = append(a.project.Options, opt)
			a.refreshOptionsList()
			a.resolveScene()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 400))
	form.Show()
}

func (a *App) showAddGroupDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Group name")

	form := dialog.NewForm("Add Group", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if strings.TrimSpace(nameEntry.Text) == "" {
				dialog.ShowError(fmt.Errorf("group name must not be empty"), a.window)
				return
			}
			a.pushHistory("Add Group")
			a.project.Options = append(a.project.Options, model.NewGroup(nameEntry.Text))
			a.refreshOptionsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(350, 180))
	form.Show()
}

func parseDisplaySelection(s string) model.DisplayType {
	switch s {
	case "Dropdown":
		return model.DisplayDropdown
	case "Swatches":
		return model.DisplaySwatches
	default:
		return model.DisplayButtons
	}
}

func parseBehaviorSelection(s string) model.DefaultBehavior {
	if s == "Show others" {
		return model.BehaviorShow
	}
	return model.BehaviorHide
}

// buildGroupSelect returns a dropdown of the defined groups plus a
// "(no group)" entry.
func (a *App) buildGroupSelect(currentGroupID string) *widget.Select {
	names := []string{"(no group)"}
	current := "(no group)"
	for _, o := range a.project.Options {
		if !o.IsGroup {
			continue
		}
		names = append(names, o.Name)
		if o.ID == currentGroupID {
			current = o.Name
		}
	}
	sel := widget.NewSelect(names, nil)
	sel.SetSelected(current)
	return sel
}

func (a *App) groupIDByName(name string) string {
	for _, o := range a.project.Options {
		if o.IsGroup && o.Name == name {
			return o.ID
		}
	}
	return ""
}

// showEditOptionDialog opens the full option editor window: the option's
// own fields, its rule, and a managed list of values.
func (a *App) showEditOptionDialog(idx int) {
	opt := &a.project.Options[idx]
	if opt.IsGroup {
		a.showEditGroupDialog(idx)
		return
	}

	w := fyne.CurrentApp().NewWindow("Edit Option: " + opt.Name)
	w.Resize(fyne.NewSize(650, 500))

	nameEntry := widget.NewEntry()
	nameEntry.SetText(opt.Name)

	displaySelect := widget.NewSelect([]string{"Buttons", "Dropdown", "Swatches"}, nil)
	switch opt.DisplayType {
	case model.DisplayDropdown:
		displaySelect.SetSelected("Dropdown")
	case model.DisplaySwatches:
		displaySelect.SetSelected("Swatches")
	default:
		displaySelect.SetSelected("Buttons")
	}

	behaviorSelect := widget.NewSelect([]string{"Hide others", "Show others"}, nil)
	if opt.DefaultBehavior == model.BehaviorShow {
		behaviorSelect.SetSelected("Show others")
	} else {
		behaviorSelect.SetSelected("Hide others")
	}

	targetsEntry := widget.NewEntry()
	targetsEntry.SetText(strings.Join(opt.TargetComponents, ", "))

	groupSelect := a.buildGroupSelect(opt.GroupID)

	fields := container.NewGridWithColumns(2,
		widget.NewLabel("Name"), nameEntry,
		widget.NewLabel("Display"), displaySelect,
		widget.NewLabel("Default Behavior"), behaviorSelect,
		widget.NewLabel("Target Components"), targetsEntry,
		widget.NewLabel("Group"), groupSelect,
	)

	ruleBtn := widget.NewButtonWithIcon("Option Rule...", theme.SettingsIcon(), func() {
		a.showRuleEditor(w, "Rule for "+opt.Name, opt.ConditionalLogic, func(rule *model.ConditionalLogic) {
			opt.ConditionalLogic = rule
		})
	})

	// Values list
	var valuesList *widget.List
	valuesList = widget.NewList(
		func() int {
			return len(opt.Values)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.RadioButtonIcon()),
				widget.NewLabel("Value Name"),
				layout.NewSpacer(),
				widget.NewLabel("payload"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			nameLabel := box.Objects[1].(*widget.Label)
			payloadLabel := box.Objects[3].(*widget.Label)
			v := opt.Values[id]
			name := v.Name
			if v.ConditionalLogic != nil && v.ConditionalLogic.Enabled {
				name += " *"
			}
			nameLabel.SetText(name)
			payloadLabel.SetText(describePayload(opt.ManipulationType, v))
		},
	)

	selectedValue := -1
	valuesList.OnSelected = func(id widget.ListItemID) {
		selectedValue = id
	}

	newValueBtn := widget.NewButtonWithIcon("New Value", theme.ContentAddIcon(), func() {
		a.showValueDialog(w, opt, -1, func() {
			valuesList.Refresh()
		})
	})
	editValueBtn := widget.NewButtonWithIcon("Edit Value", theme.DocumentCreateIcon(), func() {
		if selectedValue < 0 || selectedValue >= len(opt.Values) {
			dialog.ShowInformation("No Selection", "Select a value to edit.", w)
			return
		}
		a.showValueDialog(w, opt, selectedValue, func() {
			valuesList.Refresh()
		})
	})
	deleteValueBtn := widget.NewButtonWithIcon("Delete Value", theme.DeleteIcon(), func() {
		if selectedValue < 0 || selectedValue >= len(opt.Values) {
			dialog.ShowInformation("No Selection", "Select a value to delete.", w)
			return
		}
		if a.project.Selections[opt.ID] == opt.Values[selectedValue].ID {
			delete(a.project.Selections, opt.ID)
		}
		opt.Values = append(opt.Values[:selectedValue], opt.Values[selectedValue+1:]...)
		selectedValue = -1
		valuesList.UnselectAll()
		valuesList.Refresh()
	})

	saveBtn := widget.NewButtonWithIcon("Save", theme.ConfirmIcon(), func() {
		if strings.TrimSpace(nameEntry.Text) == "" {
			dialog.ShowError(fmt.Errorf("option name must not be empty"), w)
			return
		}
		opt.Name = nameEntry.Text
		opt.DisplayType = parseDisplaySelection(displaySelect.Selected)
		if opt.ManipulationType == model.ManipulationVisibility {
			opt.DefaultBehavior = parseBehaviorSelection(behaviorSelect.Selected)
		}
		opt.TargetComponents = splitNames(targetsEntry.Text)
		opt.GroupID = a.groupIDByName(groupSelect.Selected)

		a.refreshOptionsList()
		a.resolveScene()
		w.Close()
	})

	w.SetContent(container.NewBorder(
		container.NewVBox(fields, container.NewHBox(ruleBtn, layout.NewSpacer()), widget.NewSeparator()),
		container.NewHBox(newValueBtn, editValueBtn, deleteValueBtn, layout.NewSpacer(), saveBtn),
		nil, nil,
		valuesList,
	))
	w.Show()

	// Edits in this window mutate the option in place; record the state
	// before it opened so undo rolls the whole session back.
	a.pushHistory("Edit Option")
}

func (a *App) showEditGroupDialog(idx int) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Options[idx].Name)

	form := dialog.NewForm("Edit Group", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if strings.TrimSpace(nameEntry.Text) == "" {
				dialog.ShowError(fmt.Errorf("group name must not be empty"), a.window)
				return
			}
			a.pushHistory("Edit Group")
			a.project.Options[idx].Name = nameEntry.Text
			a.refreshOptionsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(350, 180))
	form.Show()
}

func describePayload(mt model.ManipulationType, v model.OptionValue) string {
	switch mt {
	case model.ManipulationMaterial:
		if v.Material != nil {
			return v.Material.Color
		}
		return "(no color)"
	default:
		if v.Visibility == nil {
			return "(defaults)"
		}
		return fmt.Sprintf("show %d, hide %d", len(v.Visibility.VisibleComponents), len(v.Visibility.HiddenComponents))
	}
}

// ─── Value Dialog ──────────────────────────────────────────

// showValueDialog adds (valueIdx < 0) or edits a value of the given
// option. The payload fields shown follow the option's manipulation type.
func (a *App) showValueDialog(parent fyne.Window, opt *model.Option, valueIdx int, onDone func()) {
	var v model.OptionValue
	title := "New Value"
	if valueIdx >= 0 {
		v = opt.Values[valueIdx]
		title = "Edit Value"
	} else {
		v = model.NewOptionValue(fmt.Sprintf("Value %d", len(opt.Values)+1))
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(v.Name)

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
	}

	colorEntry := widget.NewEntry()
	visibleEntry := widget.NewEntry()
	hiddenEntry := widget.NewEntry()

	switch opt.ManipulationType {
	case model.ManipulationMaterial:
		colorEntry.SetPlaceHolder("#rrggbb")
		if v.Material != nil {
			colorEntry.SetText(v.Material.Color)
		}
		items = append(items, widget.NewFormItem("Color", colorEntry))
	default:
		visibleEntry.SetPlaceHolder("Components forced visible")
		hiddenEntry.SetPlaceHolder("Components forced hidden")
		if v.Visibility != nil {
			visibleEntry.SetText(strings.Join(v.Visibility.VisibleComponents, ", "))
			hiddenEntry.SetText(strings.Join(v.Visibility.HiddenComponents, ", "))
		}
		items = append(items,
			widget.NewFormItem("Show", visibleEntry),
			widget.NewFormItem("Hide", hiddenEntry),
		)
	}

	rule := v.ConditionalLogic
	ruleBtn := widget.NewButton("Value Rule...", func() {
		a.showRuleEditor(parent, "Rule for "+nameEntry.Text, rule, func(r *model.ConditionalLogic) {
			rule = r
		})
	})
	items = append(items, widget.NewFormItem("Rule", ruleBtn))

	form := dialog.NewForm(title, "Save", "Cancel", items,
		func(ok bool) {
			if !ok {
				return
			}
			if strings.TrimSpace(nameEntry.Text) == "" {
				dialog.ShowError(fmt.Errorf("value name must not be empty"), parent)
				return
			}
			v.Name = nameEntry.Text
			v.ConditionalLogic = rule

			switch opt.ManipulationType {
			case model.ManipulationMaterial:
				color := strings.TrimSpace(colorEntry.Text)
				if color == "" {
					dialog.ShowError(fmt.Errorf("material values need a color"), parent)
					return
				}
				v.Material = &model.MaterialEffect{Color: color}
			default:
				visible := splitNames(visibleEntry.Text)
				hidden := splitNames(hiddenEntry.Text)
				if len(visible) == 0 && len(hidden) == 0 {
					v.Visibility = nil // fall back to the option's default behavior
				} else {
					v.Visibility = &model.VisibilityEffect{
						VisibleComponents: visible,
						HiddenComponents:  hidden,
					}
				}
			}

			if valueIdx >= 0 {
				opt.Values[valueIdx] = v
			} else {
				opt.Values = append(opt.Values, v)
			}
			onDone()
		},
		parent,
	)
	form.Resize(fyne.NewSize(450, 350))
	form.Show()
}

// ─── Rule Editor ───────────────────────────────────────────

// ruleRow is one editable condition while the rule editor is open.
type ruleRow struct {
	cond model.Condition
}

// showRuleEditor opens a window for editing a conditional rule. The
// existing rule is copied; onSave receives the replacement (nil when the
// rule was cleared).
func (a *App) showRuleEditor(parent fyne.Window, title string, existing *model.ConditionalLogic, onSave func(*model.ConditionalLogic)) {
	w := fyne.CurrentApp().NewWindow(title)
	w.Resize(fyne.NewSize(600, 400))

	enabled := false
	combinator := model.CombinatorAnd
	var rows []*ruleRow
	if existing != nil {
		enabled = existing.Enabled
		if existing.Combinator == model.CombinatorOr {
			combinator = model.CombinatorOr
		}
		for _, c := range existing.Conditions {
			rows = append(rows, &ruleRow{cond: c})
		}
	}

	enabledCheck := widget.NewCheck("Rule enabled", func(b bool) { enabled = b })
	enabledCheck.Checked = enabled

	combinatorSelect := widget.NewSelect([]string{"All conditions (AND)", "Any condition (OR)"}, func(selected string) {
		if selected == "Any condition (OR)" {
			combinator = model.CombinatorOr
		} else {
			combinator = model.CombinatorAnd
		}
	})
	if combinator == model.CombinatorOr {
		combinatorSelect.SetSelected("Any condition (OR)")
	} else {
		combinatorSelect.SetSelected("All conditions (AND)")
	}

	// Options a condition may reference: anything with values.
	var refOptions []model.Option
	for _, o := range a.project.Options {
		if !o.IsGroup && len(o.Values) > 0 {
			refOptions = append(refOptions, o)
		}
	}

	conditionsBox := container.NewVBox()
	var rebuildConditions func()
	rebuildConditions = func() {
		conditionsBox.RemoveAll()
		if len(rows) == 0 {
			conditionsBox.Add(widget.NewLabel("No conditions. An empty rule always passes."))
		}
		for i := range rows {
			row := rows[i]
			conditionsBox.Add(a.buildConditionRow(row, refOptions, func() {
				for j, r := range rows {
					if r == row {
						rows = append(rows[:j], rows[j+1:]...)
						break
					}
				}
				rebuildConditions()
			}))
		}
		conditionsBox.Refresh()
	}
	rebuildConditions()

	addBtn := widget.NewButtonWithIcon("Add Condition", theme.ContentAddIcon(), func() {
		if len(refOptions) == 0 {
			dialog.ShowInformation("No Options", "Define at least one option with values first.", w)
			return
		}
		rows = append(rows, &ruleRow{cond: model.Condition{Operator: model.OperatorEquals}})
		rebuildConditions()
	})

	clearBtn := widget.NewButton("Clear Rule", func() {
		onSave(nil)
		w.Close()
	})

	saveBtn := widget.NewButtonWithIcon("Save", theme.ConfirmIcon(), func() {
		conditions := make([]model.Condition, 0, len(rows))
		for _, r := range rows {
			if r.cond.OptionID == "" || r.cond.ValueID == "" {
				dialog.ShowError(fmt.Errorf("every condition needs an option and a value"), w)
				return
			}
			conditions = append(conditions, r.cond)
		}
		onSave(&model.ConditionalLogic{
			Enabled:    enabled,
			Combinator: combinator,
			Conditions: conditions,
		})
		w.Close()
	})

	w.SetContent(container.NewBorder(
		container.NewVBox(
			container.NewHBox(enabledCheck, layout.NewSpacer(), combinatorSelect),
			widget.NewSeparator(),
		),
		container.NewHBox(addBtn, clearBtn, layout.NewSpacer(), saveBtn),
		nil, nil,
		container.NewVScroll(conditionsBox),
	))
	w.Show()
}

// buildConditionRow renders one condition as option / operator / value
// dropdowns plus a delete button.
func (a *App) buildConditionRow(row *ruleRow, refOptions []model.Option, onDelete func()) fyne.CanvasObject {
	optionNames := make([]string, len(refOptions))
	for i, o := range refOptions {
		optionNames[i] = o.Name
	}

	valueSelect := widget.NewSelect(nil, nil)

	populateValues := func(opt model.Option) {
		names := make([]string, len(opt.Values))
		current := ""
		for i, v := range opt.Values {
			names[i] = v.Name
			if v.ID == row.cond.ValueID {
				current = v.Name
			}
		}
		valueSelect.Options = names
		valueSelect.Selected = current
		valueSelect.Refresh()
	}

	valueSelect.OnChanged = func(selected string) {
		opt, ok := model.FindOption(a.project.Options, row.cond.OptionID)
		if !ok {
			return
		}
		for _, v := range opt.Values {
			if v.Name == selected {
				row.cond.ValueID = v.ID
				return
			}
		}
	}

	optionSelect := widget.NewSelect(optionNames, func(selected string) {
		for _, o := range refOptions {
			if o.Name == selected {
				if row.cond.OptionID != o.ID {
					row.cond.OptionID = o.ID
					row.cond.ValueID = ""
				}
				populateValues(o)
				return
			}
		}
	})

	operatorSelect := widget.NewSelect([]string{"is", "is not"}, func(selected string) {
		if selected == "is not" {
			row.cond.Operator = model.OperatorNotEquals
		} else {
			row.cond.Operator = model.OperatorEquals
		}
	})
	if row.cond.Operator == model.OperatorNotEquals {
		operatorSelect.SetSelected("is not")
	} else {
		operatorSelect.SetSelected("is")
	}

	if opt, ok := model.FindOption(a.project.Options, row.cond.OptionID); ok {
		optionSelect.SetSelected(opt.Name)
		populateValues(opt)
	}

	return container.NewGridWithColumns(4,
		optionSelect,
		operatorSelect,
		valueSelect,
		newIconButtonWithTooltip(theme.DeleteIcon(), "Remove condition", onDelete),
	)
}

// ─── Component Dialogs ─────────────────────────────────────

func (a *App) showAddComponentDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Component name")
	nameEntry.SetText(fmt.Sprintf("component-%d", a.library.Len()+1))

	colorEntry := widget.NewEntry()
	colorEntry.SetText("#c8c8c8")

	visibleCheck := widget.NewCheck("", nil)
	visibleCheck.Checked = true

	xEntry := widget.NewEntry()
	xEntry.SetText("0")
	yEntry := widget.NewEntry()
	yEntry.SetText("0")
	widthEntry := widget.NewEntry()
	widthEntry.SetText("100")
	heightEntry := widget.NewEntry()
	heightEntry.SetText("100")

	form := dialog.NewForm("Add Component", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Base Color", colorEntry),
			widget.NewFormItem("Visible by Default", visibleCheck),
			widget.NewFormItem("X (mm)", xEntry),
			widget.NewFormItem("Y (mm)", yEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("component name must not be empty"), a.window)
				return
			}
			if _, exists := a.library.Get(name); exists {
				dialog.ShowError(fmt.Errorf("a component named %q already exists", name), a.window)
				return
			}
			x, _ := strconv.ParseFloat(xEntry.Text, 64)
			y, _ := strconv.ParseFloat(yEntry.Text, 64)
			width, _ := strconv.ParseFloat(widthEntry.Text, 64)
			height, _ := strconv.ParseFloat(heightEntry.Text, 64)
			if width <= 0 || height <= 0 {
				dialog.ShowError(fmt.Errorf("width and height must be > 0"), a.window)
				return
			}

			c := model.NewComponent(name)
			c.BaseColor = strings.TrimSpace(colorEntry.Text)
			c.BaseVisible = visibleCheck.Checked
			c.Outline = model.RectOutline(x, y, width, height)

			a.library.Add(c)
			a.syncComponents()
			a.refreshComponentsList()
			a.resolveScene()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 450))
	form.Show()
}

func (a *App) showEditComponentDialog(name string) {
	item, ok := a.library.Get(name)
	if !ok {
		return
	}
	c := item.Component

	nameEntry := widget.NewEntry()
	nameEntry.SetText(c.Name)

	colorEntry := widget.NewEntry()
	colorEntry.SetText(c.BaseColor)

	visibleCheck := widget.NewCheck("", nil)
	visibleCheck.Checked = c.BaseVisible

	// The outline can be an arbitrary imported polygon; only replace it
	// when the rectangle fields are actually edited.
	lo, hi := c.Outline.BoundingBox()
	outlineDirty := false
	markDirty := func(string) { outlineDirty = true }

	xEntry := widget.NewEntry()
	xEntry.SetText(fmt.Sprintf("%.1f", lo.X))
	xEntry.OnChanged = markDirty
	yEntry := widget.NewEntry()
	yEntry.SetText(fmt.Sprintf("%.1f", lo.Y))
	yEntry.OnChanged = markDirty
	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", hi.X-lo.X))
	widthEntry.OnChanged = markDirty
	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.1f", hi.Y-lo.Y))
	heightEntry.OnChanged = markDirty

	form := dialog.NewForm("Edit Component", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Base Color", colorEntry),
			widget.NewFormItem("Visible by Default", visibleCheck),
			widget.NewFormItem("X (mm)", xEntry),
			widget.NewFormItem("Y (mm)", yEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			newName := strings.TrimSpace(nameEntry.Text)
			if newName == "" {
				dialog.ShowError(fmt.Errorf("component name must not be empty"), a.window)
				return
			}
			if newName != name {
				if _, exists := a.library.Get(newName); exists {
					dialog.ShowError(fmt.Errorf("a component named %q already exists", newName), a.window)
					return
				}
			}

			c.Name = newName
			c.BaseColor = strings.TrimSpace(colorEntry.Text)
			c.BaseVisible = visibleCheck.Checked
			if outlineDirty {
				x, _ := strconv.ParseFloat(xEntry.Text, 64)
				y, _ := strconv.ParseFloat(yEntry.Text, 64)
				width, _ := strconv.ParseFloat(widthEntry.Text, 64)
				height, _ := strconv.ParseFloat(heightEntry.Text, 64)
				if width <= 0 || height <= 0 {
					dialog.ShowError(fmt.Errorf("width and height must be > 0"), a.window)
					return
				}
				c.Outline = model.RectOutline(x, y, width, height)
			}

			if newName != name {
				a.library.Remove(name)
			}
			a.library.Add(c)
			a.syncComponents()
			a.refreshComponentsList()
			a.resolveScene()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 450))
	form.Show()
}
