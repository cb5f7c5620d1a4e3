// Package document implements the invoice composition core: it turns
// business records and a layout configuration into a backend-agnostic
// document model, derives the invoice identifier and output path, and
// orchestrates rendering through a pluggable backend. The package does
// no logging; every failure is returned to the caller.
package document

import "fmt"

// Align is the horizontal alignment of a cell or image.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Color is an RGB color.
type Color struct {
	R, G, B int
}

// Font specifies a font face for a text run.
type Font struct {
	Family string
	Style  string // "" (regular), "B", "I", "BI"
	Size   float64
}

// Node is a block-level element of the document model. A document is
// an ordered sequence of nodes consumed top to bottom by the renderer.
type Node interface {
	node()
}

// Text is a paragraph of text in a single font and color.
type Text struct {
	Content       string
	Font          Font
	Color         Color
	SpacingBefore float64
}

// Image is a picture placed at the current position, scaled relative
// to its natural size.
type Image struct {
	Path         string
	ScalePercent float64
	Align        Align
}

// Rule is a thin horizontal line spanning a percentage of the
// printable width.
type Rule struct {
	Thickness    float64
	WidthPercent float64
	Offset       float64
	Color        Color
}

// Spacer is vertical whitespace, height in points.
type Spacer struct {
	Height float64
}

// Cell is a single table cell. Exactly one of Text content, Image or
// Table is set; a nested table cell renders the table inside the
// cell's box.
type Cell struct {
	Text  string
	Font  Font
	Color Color
	Align Align
	Image *Image
	Table *Table
}

// Table is a grid of cells with fixed relative column widths. The
// column count is the length of Proportions; every row must have
// exactly that many cells. Borders are never drawn: the invoice layout
// is entirely border-free.
type Table struct {
	Proportions   []int
	Rows          [][]Cell
	HeaderRows    int
	WidthPercent  float64
	SpacingBefore float64
	SpacingAfter  float64
}

func (*Text) node()   {}
func (*Image) node()  {}
func (*Rule) node()   {}
func (*Spacer) node() {}
func (*Table) node()  {}

// Columns returns the table's column count.
func (t *Table) Columns() int {
	return len(t.Proportions)
}

// NewTable builds a table after checking that every row matches the
// declared column count. The model is fully formed on return; rows are
// never added to an existing table.
func NewTable(proportions []int, rows [][]Cell) (*Table, error) {
	if len(proportions) == 0 {
		return nil, fmt.Errorf("table needs at least one column")
	}
	for i, row := range rows {
		if len(row) != len(proportions) {
			return nil, fmt.Errorf("table row %d has %d cells, want %d", i, len(row), len(proportions))
		}
	}
	return &Table{Proportions: proportions, Rows: rows}, nil
}

// Document is the fully composed invoice, ready for rendering.
type Document struct {
	Blocks []Node
}
