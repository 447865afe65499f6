package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/variantly/configstudio/internal/scene"
)

// Preview colors.
var (
	colorBackdrop = color.NRGBA{R: 245, G: 245, B: 248, A: 255} // stage background
	colorFrame    = color.NRGBA{R: 100, G: 100, B: 100, A: 255} // stage border
	colorEdge     = color.NRGBA{R: 40, G: 40, B: 40, A: 230}    // component edges
	colorHidden   = color.NRGBA{R: 170, G: 170, B: 170, A: 150} // ghosted hidden outlines
	colorLabel    = color.NRGBA{R: 50, G: 50, B: 70, A: 220}
	colorFallback = color.NRGBA{R: 200, G: 200, B: 200, A: 255} // unparseable hex colors
)

// ScenePreview is a custom Fyne widget that renders the resolved scene:
// each component's outline scaled to fit, filled with its resolved color,
// with hidden components drawn as ghosted dashed outlines.
type ScenePreview struct {
	widget.BaseWidget
	items      []*scene.Item
	showHidden bool
	maxWidth   float32
	maxHeight  float32
}

// NewScenePreview creates a preview widget over the library's live items.
func NewScenePreview(items []*scene.Item, showHidden bool, maxW, maxH float32) *ScenePreview {
	sp := &ScenePreview{
		items:      items,
		showHidden: showHidden,
		maxWidth:   maxW,
		maxHeight:  maxH,
	}
	sp.ExtendBaseWidget(sp)
	return sp
}

// SetItems swaps the rendered item set. Call Refresh afterwards.
func (sp *ScenePreview) SetItems(items []*scene.Item) {
	sp.items = items
}

// CreateRenderer implements fyne.Widget.
func (sp *ScenePreview) CreateRenderer() fyne.WidgetRenderer {
	return newScenePreviewRenderer(sp)
}

type scenePreviewRenderer struct {
	sp      *ScenePreview
	objects []fyne.CanvasObject
}

func newScenePreviewRenderer(sp *ScenePreview) *scenePreviewRenderer {
	r := &scenePreviewRenderer{sp: sp}
	r.rebuild()
	return r
}

// frame computes the drawing transform: model bounds, scale and pixel offsets.
func (r *scenePreviewRenderer) frame() (minX, minY float64, scale, offsetX, offsetY, canvasW, canvasH float32, ok bool) {
	sp := r.sp

	first := true
	var maxX, maxY float64
	for _, it := range sp.items {
		if len(it.Component.Outline) == 0 {
			continue
		}
		lo, hi := it.Component.Outline.BoundingBox()
		if first {
			minX, minY, maxX, maxY = lo.X, lo.Y, hi.X, hi.Y
			first = false
			continue
		}
		if lo.X < minX {
			minX = lo.X
		}
		if lo.Y < minY {
			minY = lo.Y
		}
		if hi.X > maxX {
			maxX = hi.X
		}
		if hi.Y > maxY {
			maxY = hi.Y
		}
	}
	if first {
		return 0, 0, 0, 0, 0, 0, 0, false
	}

	w := float32(maxX - minX)
	h := float32(maxY - minY)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	margin := float32(12)
	scaleX := (sp.maxWidth - margin*2) / w
	scaleY := (sp.maxHeight - margin*2) / h
	scale = scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 {
		scale = 1
	}

	return minX, minY, scale, margin, margin, w*scale + margin*2, h*scale + margin*2, true
}

func (r *scenePreviewRenderer) rebuild() {
	r.objects = nil

	minX, minY, scale, offsetX, offsetY, canvasW, canvasH, ok := r.frame()
	if !ok {
		return
	}

	// Stage background
	bg := canvas.NewRectangle(colorBackdrop)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	// Stage border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = colorFrame
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	// Hidden items first so visible ones draw over them
	if r.sp.showHidden {
		for _, it := range r.sp.items {
			if it.Visible || len(it.Component.Outline) == 0 {
				continue
			}
			r.drawOutline(it, minX, minY, scale, offsetX, offsetY, true)
		}
	}

	for _, it := range r.sp.items {
		if !it.Visible || len(it.Component.Outline) == 0 {
			continue
		}
		r.drawOutline(it, minX, minY, scale, offsetX, offsetY, false)
	}
}

// drawOutline renders a single component: a tinted bounding fill, the edge
// segments of its outline, and a name label when there is room.
func (r *scenePreviewRenderer) drawOutline(it *scene.Item, minX, minY float64, scale, offsetX, offsetY float32, ghosted bool) {
	outline := it.Component.Outline
	lo, hi := outline.BoundingBox()

	px := float32(lo.X-minX)*scale + offsetX
	py := float32(lo.Y-minY)*scale + offsetY
	pw := float32(hi.X-lo.X) * scale
	ph := float32(hi.Y-lo.Y) * scale

	if !ghosted {
		fill := parseHexColor(it.Color)
		fill.A = 170
		rect := canvas.NewRectangle(fill)
		rect.Resize(fyne.NewSize(pw, ph))
		rect.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, rect)
	}

	edge := colorEdge
	strokeWidth := float32(1.5)
	if ghosted {
		edge = colorHidden
		strokeWidth = 1
	}

	// Outline edges, closing back to the first vertex
	for i := range outline {
		a := outline[i]
		b := outline[(i+1)%len(outline)]
		line := canvas.NewLine(edge)
		line.StrokeWidth = strokeWidth
		line.Position1 = fyne.NewPos(float32(a.X-minX)*scale+offsetX, float32(a.Y-minY)*scale+offsetY)
		line.Position2 = fyne.NewPos(float32(b.X-minX)*scale+offsetX, float32(b.Y-minY)*scale+offsetY)
		r.objects = append(r.objects, line)
	}

	// Label (only if big enough)
	if pw > 40 && ph > 16 {
		text := it.Component.Name
		if ghosted {
			text += " (hidden)"
		}
		label := canvas.NewText(text, colorLabel)
		label.TextSize = 10
		label.Move(fyne.NewPos(px+3, py+2))
		r.objects = append(r.objects, label)
	}
}

func (r *scenePreviewRenderer) Layout(size fyne.Size)        {}
func (r *scenePreviewRenderer) Refresh()                     { r.rebuild() }
func (r *scenePreviewRenderer) Destroy()                     {}
func (r *scenePreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *scenePreviewRenderer) MinSize() fyne.Size {
	_, _, _, _, _, canvasW, canvasH, ok := r.frame()
	if !ok {
		return fyne.NewSize(100, 100)
	}
	return fyne.NewSize(canvasW, canvasH)
}

// parseHexColor turns a #rrggbb string into an NRGBA, falling back to a
// neutral gray when the string is empty or malformed.
func parseHexColor(s string) color.NRGBA {
	if len(s) != 7 || s[0] != '#' {
		return colorFallback
	}
	var vals [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[1+i*2])
		lo, ok2 := hexDigit(s[2+i*2])
		if !ok1 || !ok2 {
			return colorFallback
		}
		vals[i] = hi<<4 | lo
	}
	return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// RenderScenePreview creates a complete preview panel for a resolved scene,
// including the outline visualization and a visibility summary line.
func RenderScenePreview(lib *scene.Library, showHidden bool, maxW, maxH float32) fyne.CanvasObject {
	if lib == nil || lib.Len() == 0 {
		return widget.NewLabel("No components yet. Add components or import a DXF drawing.")
	}

	summary := widget.NewLabel(lib.Describe())
	summary.TextStyle = fyne.TextStyle{Bold: true}

	preview := NewScenePreview(lib.Items(), showHidden, maxW, maxH)

	return container.NewVScroll(container.NewVBox(summary, preview, widget.NewSeparator()))
}
