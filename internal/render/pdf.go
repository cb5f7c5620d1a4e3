// Package render turns a composed document model into PDF bytes. It
// is the only package that knows about the PDF library; the document
// core hands it an immutable model and a writer.
package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/maxerler/invoice-generator/internal/document"
)

const (
	pageOrientation = "P"
	pageUnit        = "mm"
	pageSize        = "A4"

	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 15.0

	// line height as a multiple of the font size
	lineSpacing = 1.3

	cellPadding = 0.8
)

// PDFRenderer renders document models as paginated A4 PDFs.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render walks the document's blocks top to bottom and writes the
// finished PDF to w. Nothing is written until the whole document has
// been laid out.
func (r *PDFRenderer) Render(doc *document.Document, w io.Writer) error {
	pdf := gofpdf.New(pageOrientation, pageUnit, pageSize, "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	for i, block := range doc.Blocks {
		if err := renderBlock(pdf, block); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}

func renderBlock(pdf *gofpdf.Fpdf, block document.Node) error {
	switch b := block.(type) {
	case *document.Text:
		renderText(pdf, b)
	case *document.Image:
		return renderImage(pdf, b)
	case *document.Rule:
		renderRule(pdf, b)
	case *document.Spacer:
		pdf.Ln(pdf.PointConvert(b.Height))
	case *document.Table:
		return renderTable(pdf, b)
	default:
		return fmt.Errorf("unknown block type %T", block)
	}
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}

func renderText(pdf *gofpdf.Fpdf, t *document.Text) {
	if t.SpacingBefore > 0 {
		pdf.Ln(pdf.PointConvert(t.SpacingBefore))
	}
	applyFont(pdf, t.Font, t.Color)
	pdf.MultiCell(0, lineHeight(pdf, t.Font), t.Content, "", "L", false)
}

// renderImage draws a standalone image at the current position,
// scaled relative to its natural size, and advances the cursor.
func renderImage(pdf *gofpdf.Fpdf, img *document.Image) error {
	w, h, err := scaledExtent(pdf, img)
	if err != nil {
		return err
	}

	printable := printableWidth(pdf)
	x := marginLeft
	switch img.Align {
	case document.AlignCenter:
		x += (printable - w) / 2
	case document.AlignRight:
		x += printable - w
	}

	y := pdf.GetY()
	pdf.ImageOptions(img.Path, x, y, w, h, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	if pdf.Err() {
		return pdf.Error()
	}
	pdf.SetY(y + h)
	return nil
}

func renderRule(pdf *gofpdf.Fpdf, r *document.Rule) {
	if r.Offset != 0 {
		pdf.Ln(pdf.PointConvert(r.Offset))
	}

	width := printableWidth(pdf) * r.WidthPercent / 100
	x := marginLeft + (printableWidth(pdf)-width)/2
	y := pdf.GetY()

	pdf.SetDrawColor(r.Color.R, r.Color.G, r.Color.B)
	pdf.SetLineWidth(pdf.PointConvert(r.Thickness))
	pdf.Line(x, y, x+width, y)
	pdf.SetY(y + 1)
}

// renderTable lays out a top-level table at the current position,
// centered within the printable width, breaking to new pages as
// needed. Header rows are repeated after every break.
func renderTable(pdf *gofpdf.Fpdf, t *document.Table) error {
	if t.SpacingBefore > 0 {
		pdf.Ln(pdf.PointConvert(t.SpacingBefore))
	}

	widthPercent := t.WidthPercent
	if widthPercent == 0 {
		widthPercent = 100
	}
	width := printableWidth(pdf) * widthPercent / 100
	x := marginLeft + (printableWidth(pdf)-width)/2

	heights, err := rowHeights(pdf, t, width)
	if err != nil {
		return err
	}

	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - marginBottom
	y := pdf.GetY()

	for i, row := range t.Rows {
		if y+heights[i] > limit {
			pdf.AddPage()
			y = marginTop
			for h := 0; h < t.HeaderRows && h < i; h++ {
				if err := drawRow(pdf, t, t.Rows[h], x, y, width, heights[h]); err != nil {
					return err
				}
				y += heights[h]
			}
		}
		if err := drawRow(pdf, t, row, x, y, width, heights[i]); err != nil {
			return err
		}
		y += heights[i]
	}

	pdf.SetY(y)
	if t.SpacingAfter > 0 {
		pdf.Ln(pdf.PointConvert(t.SpacingAfter))
	}
	return nil
}

// drawTableAt renders a nested table inside a cell box and returns
// the height used. Nested tables do not break across pages.
func drawTableAt(pdf *gofpdf.Fpdf, t *document.Table, x, y, width float64) (float64, error) {
	heights, err := rowHeights(pdf, t, width)
	if err != nil {
		return 0, err
	}
	for i, row := range t.Rows {
		if err := drawRow(pdf, t, row, x, y, width, heights[i]); err != nil {
			return 0, err
		}
		y += heights[i]
	}
	return sum(heights), nil
}

func drawRow(pdf *gofpdf.Fpdf, t *document.Table, row []document.Cell, x, y, width, height float64) error {
	widths := columnWidths(t, width)
	for c := range row {
		if err := drawCell(pdf, &row[c], x, y, widths[c], height); err != nil {
			return err
		}
		x += widths[c]
	}
	return nil
}

func drawCell(pdf *gofpdf.Fpdf, cell *document.Cell, x, y, width, height float64) error {
	switch {
	case cell.Table != nil:
		_, err := drawTableAt(pdf, cell.Table, x, y, width)
		return err
	case cell.Image != nil:
		w, h, err := scaledExtent(pdf, cell.Image)
		if err != nil {
			return err
		}
		ix := x + cellPadding
		switch cell.Image.Align {
		case document.AlignCenter:
			ix = x + (width-w)/2
		case document.AlignRight:
			ix = x + width - w - cellPadding
		}
		// center vertically within the row
		iy := y + (height-h)/2
		pdf.ImageOptions(cell.Image.Path, ix, iy, w, h, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		if pdf.Err() {
			return pdf.Error()
		}
		return nil
	default:
		applyFont(pdf, cell.Font, cell.Color)
		pdf.SetXY(x+cellPadding, y+cellPadding)
		pdf.MultiCell(width-2*cellPadding, lineHeight(pdf, cell.Font), cell.Text, "", alignString(cell.Align), false)
		return nil
	}
}

// rowHeights measures every row of a table before anything is drawn.
func rowHeights(pdf *gofpdf.Fpdf, t *document.Table, width float64) ([]float64, error) {
	widths := columnWidths(t, width)
	heights := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		for c := range row {
			h, err := cellHeight(pdf, &row[c], widths[c])
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, c, err)
			}
			if h > heights[i] {
				heights[i] = h
			}
		}
	}
	return heights, nil
}

func cellHeight(pdf *gofpdf.Fpdf, cell *document.Cell, width float64) (float64, error) {
	switch {
	case cell.Table != nil:
		heights, err := rowHeights(pdf, cell.Table, width)
		if err != nil {
			return 0, err
		}
		return sum(heights), nil
	case cell.Image != nil:
		_, h, err := scaledExtent(pdf, cell.Image)
		if err != nil {
			return 0, err
		}
		return h + 2*cellPadding, nil
	default:
		applyFont(pdf, cell.Font, cell.Color)
		lines := pdf.SplitText(cell.Text, width-2*cellPadding)
		if len(lines) == 0 {
			lines = []string{""}
		}
		return float64(len(lines))*lineHeight(pdf, cell.Font) + 2*cellPadding, nil
	}
}

func columnWidths(t *document.Table, total float64) []float64 {
	weightSum := 0
	for _, p := range t.Proportions {
		weightSum += p
	}
	widths := make([]float64, len(t.Proportions))
	for i, p := range t.Proportions {
		widths[i] = total * float64(p) / float64(weightSum)
	}
	return widths
}

// scaledExtent returns the image's drawn size: its natural extent
// scaled by the configured percentage.
func scaledExtent(pdf *gofpdf.Fpdf, img *document.Image) (w, h float64, err error) {
	info := pdf.RegisterImageOptions(img.Path, gofpdf.ImageOptions{ReadDpi: true})
	if info == nil || pdf.Err() {
		if pdf.Err() {
			return 0, 0, fmt.Errorf("image %s: %w", img.Path, pdf.Error())
		}
		return 0, 0, fmt.Errorf("image %s: not readable", img.Path)
	}
	naturalW, naturalH := info.Extent()
	scale := img.ScalePercent / 100
	return naturalW * scale, naturalH * scale, nil
}

func applyFont(pdf *gofpdf.Fpdf, font document.Font, color document.Color) {
	pdf.SetFont(font.Family, font.Style, font.Size)
	pdf.SetTextColor(color.R, color.G, color.B)
}

func lineHeight(pdf *gofpdf.Fpdf, font document.Font) float64 {
	return pdf.PointConvert(font.Size) * lineSpacing
}

func alignString(a document.Align) string {
	switch a {
	case document.AlignCenter:
		return "C"
	case document.AlignRight:
		return "R"
	default:
		return "L"
	}
}

func printableWidth(pdf *gofpdf.Fpdf) float64 {
	pageWidth, _ := pdf.GetPageSize()
	return pageWidth - marginLeft - marginRight
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
