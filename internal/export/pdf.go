// Package export renders a resolved configuration to shareable file
// formats: a PDF configuration sheet and printable QR share cards.
package export

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/variantly/configstudio/internal/engine"
	"github.com/variantly/configstudio/internal/model"
	"github.com/variantly/configstudio/internal/share"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	qrSheetSize  = 30.0
)

// ExportConfigurationPDF generates a one-page PDF summarizing a resolved
// configuration: the chosen value per option, the resulting component
// states with color swatches, a scaled silhouette of the visible
// components, and a QR code carrying the share code.
func ExportConfigurationPDF(path string, p model.Project, res engine.Result) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, p.Name, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight, pageWidth-marginRight, marginTop+headerHeight)

	// QR share code in the top right corner
	code := share.Encode(p.Options, p.Selections)
	if err := drawQR(pdf, code, "qr_sheet", pageWidth-marginRight-qrSheetSize, marginTop+headerHeight+4, qrSheetSize); err != nil {
		return err
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(pageWidth-marginRight-qrSheetSize, marginTop+headerHeight+4+qrSheetSize)
	pdf.CellFormat(qrSheetSize, 4, code, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginTop + headerHeight + 6
	y = renderSelectionTable(pdf, p, res, y)
	y = renderComponentTable(pdf, p, res, y+6)
	renderSilhouette(pdf, p, res, y+6)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ConfigStudio", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// renderSelectionTable draws the option -> chosen value table and returns
// the y coordinate below it.
func renderSelectionTable(pdf *fpdf.Fpdf, p model.Project, res engine.Result, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Selections", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 60, 30}
	headers := []string{"Option", "Value", "Shown"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	row := 0
	for _, opt := range p.Options {
		if opt.IsGroup {
			continue
		}
		valueName := "-"
		if valID, ok := p.Selections[opt.ID]; ok {
			if val, found := opt.FindValue(valID); found {
				valueName = val.Name
			}
		}
		shown := "no"
		if res.Visibility.OptionVisible(opt.ID) {
			shown = "yes"
		}

		if row%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		rowData := []string{opt.Name, valueName, shown}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "L", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
		row++
	}
	return y
}

// renderComponentTable draws the resolved component states with color
// swatches and returns the y coordinate below it.
func renderComponentTable(pdf *fpdf.Fpdf, p model.Project, res engine.Result, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Components", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 9)
	for _, comp := range p.Components {
		state, ok := res.ComponentStates[comp.Name]
		if !ok {
			state = model.ComponentState{Visible: comp.BaseVisible, Color: comp.BaseColor}
		}

		// Swatch
		r, g, b := parseHexColor(state.Color)
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(marginLeft, y+0.5, 4, 4, "FD")

		label := comp.Name
		if !state.Visible {
			label += " (hidden)"
			pdf.SetTextColor(150, 150, 150)
		}
		pdf.SetXY(marginLeft+6, y)
		pdf.CellFormat(80, 5, label, "", 0, "L", false, 0, "")
		if state.Color != "" {
			pdf.SetXY(marginLeft+86, y)
			pdf.CellFormat(30, 5, state.Color, "", 0, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		y += 6
	}
	return y
}

// renderSilhouette draws the visible components' outlines, scaled to fit
// the remaining page area, filled with their resolved colors.
func renderSilhouette(pdf *fpdf.Fpdf, p model.Project, res engine.Result, y float64) {
	var visible []model.Component
	for _, comp := range p.Components {
		if len(comp.Outline) == 0 {
			continue
		}
		if state, ok := res.ComponentStates[comp.Name]; ok && !state.Visible {
			continue
		}
		visible = append(visible, comp)
	}
	if len(visible) == 0 {
		return
	}

	// Combined bounding box of the visible outlines
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, comp := range visible {
		lo, hi := comp.Outline.BoundingBox()
		minX = math.Min(minX, lo.X)
		minY = math.Min(minY, lo.Y)
		maxX = math.Max(maxX, hi.X)
		maxY = math.Max(maxY, hi.Y)
	}
	modelW := maxX - minX
	modelH := maxY - minY
	if modelW <= 0 || modelH <= 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - y - marginBottom - 8
	if drawHeight < 20 {
		return
	}
	scale := math.Min(drawWidth/modelW, drawHeight/modelH)
	offsetX := marginLeft + (drawWidth-modelW*scale)/2

	for _, comp := range visible {
		state := res.ComponentStates[comp.Name]
		r, g, b := parseHexColor(state.Color)
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetLineWidth(0.3)

		pts := make([]fpdf.PointType, len(comp.Outline))
		for i, pt := range comp.Outline {
			pts[i] = fpdf.PointType{
				X: offsetX + (pt.X-minX)*scale,
				Y: y + (pt.Y-minY)*scale,
			}
		}
		pdf.Polygon(pts, "FD")
	}
}

// drawQR renders a QR code image for the given text at the given position.
func drawQR(pdf *fpdf.Fpdf, text, imgName string, x, y, size float64) error {
	qrPNG, err := qrcode.Encode(text, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x, y, size, size, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// parseHexColor converts a #rrggbb string to RGB components. Anything
// unparseable falls back to a neutral gray so the export never fails on
// a bad color.
func parseHexColor(s string) (r, g, b int) {
	if len(s) != 7 || s[0] != '#' {
		return 200, 200, 200
	}
	rv, err1 := strconv.ParseUint(s[1:3], 16, 8)
	gv, err2 := strconv.ParseUint(s[3:5], 16, 8)
	bv, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 200, 200, 200
	}
	return int(rv), int(gv), int(bv)
}
