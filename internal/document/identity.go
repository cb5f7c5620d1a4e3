package document

import "time"

const fileExtension = ".pdf"

// DeriveIdentity computes the invoice identifier and the output file
// path. The identifier is the order date in the compact pattern,
// a dash, and the order number verbatim; the path is the configured
// output prefix followed by the identifier and the PDF extension.
// Deterministic: the same inputs always yield the same values, so a
// re-run overwrites the previous file instead of creating a sibling.
func DeriveIdentity(orderNumber string, orderDate time.Time, compact *DateFormat, outputPath string) (id, filePath string) {
	id = compact.Format(orderDate) + "-" + orderNumber
	filePath = outputPath + id + fileExtension
	return id, filePath
}
