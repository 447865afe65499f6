package export

import (
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/variantly/configstudio/internal/model"
	"github.com/variantly/configstudio/internal/share"
)

// ShareCard is one printable card: a named configuration and its share
// code, rendered with a scannable QR.
type ShareCard struct {
	Name string
	Code string
}

// Card layout constants (3 columns, 8 rows per A4 page).
const (
	cardPageWidth  = 210.0
	cardPageHeight = 297.0
	cardMarginTop  = 12.0
	cardMarginLeft = 9.0
	cardWidth      = 64.0
	cardHeight     = 34.0
	cardCols       = 3
	cardRows       = 8
	cardsPerPage   = cardCols * cardRows
	cardQRSize     = 28.0
	cardPadding    = 2.0
)

// BuildShareCards turns named selection sets into share cards against the
// given option array.
func BuildShareCards(options []model.Option, named map[string]model.SelectionState) []ShareCard {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	cards := make([]ShareCard, 0, len(names))
	for _, name := range names {
		cards = append(cards, ShareCard{Name: name, Code: share.Encode(options, named[name])})
	}
	return cards
}

// ExportShareCards generates a PDF of QR share cards, laid out in a grid
// for printing and cutting.
func ExportShareCards(path string, cards []ShareCard) error {
	if len(cards) == 0 {
		return fmt.Errorf("no cards to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		if i%cardsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % cardsPerPage
		col := posOnPage % cardCols
		row := posOnPage / cardCols

		x := cardMarginLeft + float64(col)*cardWidth
		y := cardMarginTop + float64(row)*cardHeight

		if err := renderCard(pdf, x, y, card, i); err != nil {
			return fmt.Errorf("failed to render card %q: %w", card.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderCard draws a single share card at the given position.
func renderCard(pdf *fpdf.Fpdf, x, y float64, card ShareCard, idx int) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, cardWidth, cardHeight, "D")

	qrX := x + cardWidth - cardQRSize - cardPadding
	qrY := y + (cardHeight-cardQRSize)/2
	if err := drawQR(pdf, card.Code, fmt.Sprintf("qr_card_%d", idx), qrX, qrY, cardQRSize); err != nil {
		return err
	}

	textX := x + cardPadding
	textW := cardWidth - cardQRSize - 3*cardPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+cardPadding)

	name := card.Name
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+cardPadding+6)
	pdf.MultiCell(textW, 3, card.Code, "", "L", false)

	pdf.SetTextColor(0, 0, 0)
	return nil
}
