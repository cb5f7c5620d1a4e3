package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxerler/invoice-generator/internal/config"
	"github.com/maxerler/invoice-generator/internal/models"
)

const fontFamily = "Helvetica"

var (
	primaryColor   = Color{0, 0, 0}
	secondaryColor = Color{128, 128, 128}
)

// Formats bundles the compiled format patterns of one invoice
// configuration.
type Formats struct {
	Currency *NumberFormat
	Quantity *NumberFormat
	Compact  *DateFormat
	Readable *DateFormat
}

// CompileFormats compiles all four configured patterns. Any syntax
// error is reported here, before a document is built.
func CompileFormats(cfg *config.InvoiceConfig) (Formats, error) {
	currency, err := CompileNumberFormat(cfg.CurrencyFormat)
	if err != nil {
		return Formats{}, fmt.Errorf("currency format: %w", err)
	}
	quantity, err := CompileNumberFormat(cfg.QuantityFormat)
	if err != nil {
		return Formats{}, fmt.Errorf("quantity format: %w", err)
	}
	compact, err := CompileDateFormat(cfg.DateFormat)
	if err != nil {
		return Formats{}, fmt.Errorf("date format: %w", err)
	}
	readable, err := CompileDateFormat(cfg.DateFormatReadable)
	if err != nil {
		return Formats{}, fmt.Errorf("readable date format: %w", err)
	}
	return Formats{Currency: currency, Quantity: quantity, Compact: compact, Readable: readable}, nil
}

// builder carries the per-invoice inputs through block construction.
type builder struct {
	cfg             *config.InvoiceConfig
	company         models.Company
	order           models.Order
	invoiceDate     time.Time
	performanceDate time.Time
	id              string
	f               Formats

	headerFont    Font
	headingFont   Font
	paragraphFont Font
	footerFont    Font
}

// BuildDocument assembles the complete invoice document model. It is a
// pure transformation: no I/O, and identical inputs produce an
// identical model. The only error path is a company with fewer than
// two shareholders, rejected before any block is built.
func BuildDocument(cfg *config.InvoiceConfig, company models.Company, order models.Order,
	invoiceDate, performanceDate time.Time, id string, f Formats) (*Document, error) {

	if len(company.Shareholders) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrMissingShareholders, len(company.Shareholders))
	}

	b := &builder{
		cfg:             cfg,
		company:         company,
		order:           order,
		invoiceDate:     invoiceDate,
		performanceDate: performanceDate,
		id:              id,
		f:               f,
		headerFont:      Font{Family: fontFamily, Size: cfg.HeaderFontSize},
		headingFont:     Font{Family: fontFamily, Size: cfg.HeadingFontSize},
		paragraphFont:   Font{Family: fontFamily, Size: cfg.ParagraphFontSize},
		footerFont:      Font{Family: fontFamily, Size: cfg.FooterFontSize},
	}

	header, err := b.buildHeader()
	if err != nil {
		return nil, err
	}
	dataBlock, err := b.buildDataBlock()
	if err != nil {
		return nil, err
	}
	productTable, err := b.buildProductTable()
	if err != nil {
		return nil, err
	}
	footer, err := b.buildFooter()
	if err != nil {
		return nil, err
	}

	shareholder := company.Shareholders[0]
	attribution := shareholder.FullName() + " (" + company.Address.Location + ", " +
		f.Readable.Format(invoiceDate) + ")"

	blocks := []Node{
		header,
		b.rule(),
		dataBlock,
		b.rule(),
		b.heading(),
		b.blankLine(),
		b.paragraph(cfg.Paragraph1 + " " + order.Customer.LastName + ","),
		b.blankLine(),
		b.paragraph(cfg.Paragraph2),
		productTable,
		b.paragraph(cfg.Paragraph3),
		&Image{Path: cfg.SignaturePath, ScalePercent: cfg.SignatureScalePercent},
		b.paragraph(attribution),
		footer,
	}

	return &Document{Blocks: blocks}, nil
}

func (b *builder) rule() *Rule {
	return &Rule{
		Thickness:    b.cfg.LineSeparatorWidth,
		WidthPercent: b.cfg.ContentWidth,
		Offset:       b.cfg.LineSeparatorOffset,
		Color:        primaryColor,
	}
}

func (b *builder) heading() *Text {
	return &Text{
		Content:       b.cfg.Heading + " " + b.id,
		Font:          b.headingFont,
		Color:         primaryColor,
		SpacingBefore: b.cfg.DefaultSpacing,
	}
}

func (b *builder) paragraph(content string) *Text {
	return &Text{Content: content, Font: b.paragraphFont, Color: primaryColor}
}

func (b *builder) blankLine() *Spacer {
	return &Spacer{Height: b.cfg.ParagraphFontSize}
}

func (b *builder) textCell(text string, font Font) Cell {
	return Cell{Text: text, Font: font, Color: primaryColor}
}

func (b *builder) emptyCell() Cell {
	return b.textCell(" ", b.paragraphFont)
}

// buildHeader returns the two-column top block: the configured header
// text on the left, a nested lettering/logo image table on the right.
func (b *builder) buildHeader() (*Table, error) {
	inner, err := NewTable(b.cfg.HeaderTableProportions, [][]Cell{{
		{Image: &Image{Path: b.cfg.LetteringPath, ScalePercent: b.cfg.LetteringScalePercent, Align: AlignCenter}},
		{Image: &Image{Path: b.cfg.LogoPath, ScalePercent: b.cfg.LogoScalePercent, Align: AlignCenter}},
	}})
	if err != nil {
		return nil, err
	}

	header, err := NewTable([]int{1, 1}, [][]Cell{{
		b.textCell(b.cfg.Header, b.headerFont),
		{Table: inner},
	}})
	if err != nil {
		return nil, err
	}
	header.WidthPercent = b.cfg.ContentWidth
	return header, nil
}

// buildDataBlock interleaves customer and company information in two
// columns; the last row nests the inner data table on the right.
func (b *builder) buildDataBlock() (*Table, error) {
	customer := b.customerInformation()
	company := b.companyInformation(b.paragraphFont, primaryColor)

	inner, err := b.buildInnerDataTable()
	if err != nil {
		return nil, err
	}

	table, err := NewTable(b.cfg.DataTableProportions, [][]Cell{
		{customer[0], company[0]},
		{customer[1], company[1]},
		{customer[2], company[2]},
		{customer[3], company[3]},
		{b.emptyCell(), company[4]},
		{b.emptyCell(), b.emptyCell()},
		{b.emptyCell(), {Table: inner}},
	})
	if err != nil {
		return nil, err
	}
	table.WidthPercent = b.cfg.ContentWidth
	table.SpacingBefore = b.cfg.DefaultSpacing
	return table, nil
}

// buildInnerDataTable holds the shareholders' contact data and the
// labeled invoice facts, all dates in the readable pattern.
func (b *builder) buildInnerDataTable() (*Table, error) {
	cfg := b.cfg
	first := b.company.Shareholders[0]
	second := b.company.Shareholders[1]

	return NewTable(cfg.InnerDataTableProportions, [][]Cell{
		{
			b.textCell(cfg.PhoneLabel+" ("+first.LastName+"):", b.paragraphFont),
			b.textCell(first.Contact.Phone, b.paragraphFont),
		},
		{
			b.textCell(cfg.PhoneLabel+" ("+second.LastName+"):", b.paragraphFont),
			b.textCell(second.Contact.Phone, b.paragraphFont),
		},
		{
			b.textCell(cfg.EmailLabel+":", b.paragraphFont),
			b.textCell(second.Contact.Email, b.paragraphFont),
		},
		{
			b.textCell(cfg.InvoiceNumberLabel+":", b.paragraphFont),
			b.textCell(b.id, b.paragraphFont),
		},
		{
			b.textCell(cfg.CustomerIDLabel+":", b.paragraphFont),
			b.textCell(fmt.Sprintf("%d", b.order.Customer.ID), b.paragraphFont),
		},
		{
			b.textCell(cfg.InvoiceDateLabel+":", b.paragraphFont),
			b.textCell(b.f.Readable.Format(b.invoiceDate), b.paragraphFont),
		},
		{
			b.textCell(cfg.PerformanceDateLabel+":", b.paragraphFont),
			b.textCell(b.f.Readable.Format(b.performanceDate), b.paragraphFont),
		},
	})
}

// buildProductTable lists every product with quantity, unit price and
// line total, then a grand-total row. The header row repeats when the
// table spans pages. An empty product list still yields the header and
// a zero total.
func (b *builder) buildProductTable() (*Table, error) {
	cfg := b.cfg

	rows := [][]Cell{{
		b.textCell(cfg.ProductDeclarationLabel, b.paragraphFont),
		b.textCell(cfg.ProductQuantityLabel, b.paragraphFont),
		b.textCell(cfg.ProductSinglePriceLabel, b.paragraphFont),
		b.textCell(cfg.ProductSumPriceLabel, b.paragraphFont),
	}}

	sum := decimal.Zero
	for _, product := range b.order.Products {
		rows = append(rows, []Cell{
			b.textCell(product.Name, b.paragraphFont),
			b.textCell(b.f.Quantity.FormatInt(product.Quantity), b.paragraphFont),
			b.textCell(b.f.Currency.Format(product.Price), b.paragraphFont),
			b.textCell(b.f.Currency.Format(product.LineTotal()), b.paragraphFont),
		})
		sum = sum.Add(product.LineTotal())
	}

	rows = append(rows, []Cell{
		b.emptyCell(),
		b.emptyCell(),
		b.textCell(cfg.ProductsSumPriceLabel+":", b.paragraphFont),
		b.textCell(b.f.Currency.Format(sum), b.paragraphFont),
	})

	table, err := NewTable([]int{1, 1, 1, 1}, rows)
	if err != nil {
		return nil, err
	}
	table.HeaderRows = 1
	table.WidthPercent = cfg.ContentWidth
	table.SpacingBefore = cfg.DefaultSpacing
	table.SpacingAfter = cfg.DefaultSpacing - 10
	return table, nil
}

// buildFooter pairs company information with right-aligned financial
// information, both in the footer font.
func (b *builder) buildFooter() (*Table, error) {
	company := b.companyInformation(b.footerFont, secondaryColor)
	financial := b.companyFinancialInformation()

	rows := make([][]Cell, len(financial))
	for i := range financial {
		financial[i].Align = AlignRight
		rows[i] = []Cell{company[i], financial[i]}
	}

	table, err := NewTable([]int{1, 1}, rows)
	if err != nil {
		return nil, err
	}
	table.WidthPercent = b.cfg.ContentWidth
	table.SpacingBefore = b.cfg.DefaultSpacing
	return table, nil
}

func (b *builder) customerInformation() []Cell {
	customer := b.order.Customer
	return []Cell{
		b.textCell(customer.FullName(), b.paragraphFont),
		b.textCell(customer.Address.Street+" "+customer.Address.StreetNumber, b.paragraphFont),
		b.textCell(customer.Address.ZipCode+" "+customer.Address.Location, b.paragraphFont),
		b.textCell(customer.Address.Country, b.paragraphFont),
	}
}

func (b *builder) companyInformation(font Font, color Color) []Cell {
	address := b.company.Address
	cells := []Cell{
		{Text: b.company.Name, Font: font, Color: color},
		{Text: b.company.Declaration, Font: font, Color: color},
		{Text: address.Street + " " + address.StreetNumber, Font: font, Color: color},
		{Text: address.ZipCode + " " + address.Location, Font: font, Color: color},
		{Text: address.Country, Font: font, Color: color},
	}
	return cells
}

func (b *builder) companyFinancialInformation() []Cell {
	cfg := b.cfg
	account := b.company.BankAccount
	cells := []Cell{
		{Text: cfg.IBANLabel + ": " + account.IBAN, Font: b.footerFont, Color: secondaryColor},
		{Text: cfg.BICLabel + ": " + account.BIC, Font: b.footerFont, Color: secondaryColor},
		{Text: cfg.BankLabel + ": " + account.BankName, Font: b.footerFont, Color: secondaryColor},
		{Text: cfg.TaxNumberLabel + ": " + b.company.TaxNumber, Font: b.footerFont, Color: secondaryColor},
	}
	return cells
}
