package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/maxerler/invoice-generator/internal/config"
	"github.com/maxerler/invoice-generator/internal/models"
)

// Renderer turns a document model into final output bytes. The PDF
// implementation lives in the render package; tests substitute their
// own.
type Renderer interface {
	Render(doc *Document, w io.Writer) error
}

// Generator owns the lifecycle of a single invoice: it derives the
// identifier and file path, compiles the configured formats, builds
// the document model and hands it to the renderer. One generator per
// order; generators share no mutable state, so separate invoices can
// be generated concurrently.
type Generator struct {
	cfg             *config.InvoiceConfig
	company         models.Company
	order           models.Order
	invoiceDate     time.Time
	performanceDate time.Time
	renderer        Renderer
	formats         Formats

	id        string
	filePath  string
	generated bool
}

// NewGenerator validates the configuration and prepares a generator
// for one order. Invalid format patterns, malformed proportion arrays
// and a company with fewer than two shareholders all fail here, before
// anything is written.
func NewGenerator(cfg *config.InvoiceConfig, company models.Company, order models.Order,
	performanceDate time.Time, renderer Renderer) (*Generator, error) {

	if renderer == nil {
		return nil, ErrNilRenderer
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invoice configuration: %w", err)
	}
	if len(company.Shareholders) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrMissingShareholders, len(company.Shareholders))
	}

	formats, err := CompileFormats(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice configuration: %w", err)
	}

	id, filePath := DeriveIdentity(order.Number, order.Date, formats.Compact, cfg.OutputPath)

	return &Generator{
		cfg:             cfg,
		company:         company,
		order:           order,
		invoiceDate:     order.Date,
		performanceDate: performanceDate,
		renderer:        renderer,
		formats:         formats,
		id:              id,
		filePath:        filePath,
	}, nil
}

// Generate builds the document model, renders it and writes the
// result to the derived file path. The render output is buffered in
// full before the file is touched, so a rendering failure never leaves
// a partial file behind. Generating the same order again overwrites
// the same path.
func (g *Generator) Generate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := BuildDocument(g.cfg, g.company, g.order, g.invoiceDate, g.performanceDate, g.id, g.formats)
	if err != nil {
		return fmt.Errorf("building invoice %s: %w", g.id, err)
	}

	var buf bytes.Buffer
	if err := g.renderer.Render(doc, &buf); err != nil {
		return fmt.Errorf("rendering invoice %s: %w", g.id, err)
	}

	if dir := filepath.Dir(g.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory for invoice %s: %w", g.id, err)
		}
	}
	if err := os.WriteFile(g.filePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing invoice %s: %w", g.id, err)
	}

	g.generated = true
	return nil
}

// ID returns the invoice identifier. Calling it before a successful
// Generate is a sequencing fault and returns ErrNotGenerated.
func (g *Generator) ID() (string, error) {
	if !g.generated {
		return "", ErrNotGenerated
	}
	return g.id, nil
}

// FilePath returns the generated file's path. Calling it before a
// successful Generate is a sequencing fault and returns
// ErrNotGenerated.
func (g *Generator) FilePath() (string, error) {
	if !g.generated {
		return "", ErrNotGenerated
	}
	return g.filePath, nil
}
