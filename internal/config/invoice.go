package config

import "fmt"

// tableColumns is the column count of the header, data and inner data
// tables. Every proportion array must have exactly this many entries.
const tableColumns = 2

// InvoiceConfig describes the invoice layout: output location, images,
// format patterns, fonts, spacing, table proportions and every label
// or paragraph string printed on the document. All text is used
// verbatim, so labels can be in any language.
//
// Number patterns follow the DecimalFormat-style grammar implemented
// in the document package (for example "#.##0,00 €"); date patterns
// follow the SimpleDateFormat-style grammar (for example "dd.MM.yyyy"
// for body text and "yyyyMMdd" for the invoice identifier).
type InvoiceConfig struct {
	OutputPath    string `json:"outputPath"`
	LogoPath      string `json:"logoPath"`
	LetteringPath string `json:"letteringPath"`
	SignaturePath string `json:"signaturePath"`

	LogoScalePercent      float64 `json:"logoScalePercent"`
	LetteringScalePercent float64 `json:"letteringScalePercent"`
	SignatureScalePercent float64 `json:"signatureScalePercent"`

	DateFormatReadable string `json:"dateFormatReadable"`
	DateFormat         string `json:"dateFormat"`
	CurrencyFormat     string `json:"currencyFormat"`
	QuantityFormat     string `json:"quantityFormat"`

	HeaderFontSize    float64 `json:"headerFontSize"`
	HeadingFontSize   float64 `json:"headingFontSize"`
	ParagraphFontSize float64 `json:"paragraphFontSize"`
	FooterFontSize    float64 `json:"footerFontSize"`

	ContentWidth        float64 `json:"contentWidth"`
	DefaultSpacing      float64 `json:"defaultSpacing"`
	LineSeparatorWidth  float64 `json:"lineSeparatorWidth"`
	LineSeparatorOffset float64 `json:"lineSeparatorOffset"`

	HeaderTableProportions    []int `json:"headerTableProportions"`
	DataTableProportions      []int `json:"dataTableProportions"`
	InnerDataTableProportions []int `json:"innerDataTableProportions"`

	Header  string `json:"header"`
	Heading string `json:"heading"`

	PhoneLabel           string `json:"phoneLabel"`
	EmailLabel           string `json:"emailLabel"`
	InvoiceNumberLabel   string `json:"invoiceNumberLabel"`
	CustomerIDLabel      string `json:"customerIdLabel"`
	InvoiceDateLabel     string `json:"invoiceDateLabel"`
	PerformanceDateLabel string `json:"performanceDateLabel"`

	ProductDeclarationLabel string `json:"productDeclarationLabel"`
	ProductQuantityLabel    string `json:"productQuantityLabel"`
	ProductSinglePriceLabel string `json:"productSinglePriceLabel"`
	ProductSumPriceLabel    string `json:"productSumPriceLabel"`
	ProductsSumPriceLabel   string `json:"productsSumPriceLabel"`

	IBANLabel      string `json:"ibanLabel"`
	BICLabel       string `json:"bicLabel"`
	BankLabel      string `json:"bankLabel"`
	TaxNumberLabel string `json:"taxNumberLabel"`

	Paragraph1 string `json:"paragraph1"`
	Paragraph2 string `json:"paragraph2"`
	Paragraph3 string `json:"paragraph3"`
}

// Validate validates the invoice layout configuration
func (c *InvoiceConfig) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("outputPath is required")
	}
	if c.LogoPath == "" || c.LetteringPath == "" || c.SignaturePath == "" {
		return fmt.Errorf("logoPath, letteringPath and signaturePath are required")
	}
	if c.DateFormat == "" || c.DateFormatReadable == "" {
		return fmt.Errorf("dateFormat and dateFormatReadable are required")
	}
	if c.CurrencyFormat == "" || c.QuantityFormat == "" {
		return fmt.Errorf("currencyFormat and quantityFormat are required")
	}
	for _, f := range []struct {
		name string
		size float64
	}{
		{"headerFontSize", c.HeaderFontSize},
		{"headingFontSize", c.HeadingFontSize},
		{"paragraphFontSize", c.ParagraphFontSize},
		{"footerFontSize", c.FooterFontSize},
	} {
		if f.size <= 0 {
			return fmt.Errorf("%s must be positive", f.name)
		}
	}
	if c.ContentWidth <= 0 || c.ContentWidth > 100 {
		return fmt.Errorf("contentWidth must be in (0, 100]")
	}
	for _, p := range []struct {
		name        string
		proportions []int
	}{
		{"headerTableProportions", c.HeaderTableProportions},
		{"dataTableProportions", c.DataTableProportions},
		{"innerDataTableProportions", c.InnerDataTableProportions},
	} {
		if len(p.proportions) != tableColumns {
			return fmt.Errorf("%s must have exactly %d entries, got %d", p.name, tableColumns, len(p.proportions))
		}
		for _, w := range p.proportions {
			if w <= 0 {
				return fmt.Errorf("%s entries must be positive", p.name)
			}
		}
	}
	return nil
}
