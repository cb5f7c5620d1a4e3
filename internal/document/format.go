package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NumberFormat formats decimal amounts according to a DecimalFormat
// style pattern. The pattern consists of an optional literal prefix, a
// numeric core and an optional literal suffix. Within the core, '0'
// and '#' are digit placeholders and '.' or ',' act as grouping and
// decimal separators. Unlike DecimalFormat, separators are not
// locale-mapped: they appear in the output exactly as written, which
// keeps formatting independent of the host locale.
//
//	"#.##0,00 €"  -> "1.234,50 €"
//	"#,##0.00"    -> "1,234.50"
//	"0"           -> "1235"
//
// When both separator characters occur, the rightmost one is the
// decimal separator. A single separator is taken as decimal when it is
// followed only by '0' placeholders, otherwise as grouping.
type NumberFormat struct {
	pattern    string
	prefix     string
	suffix     string
	decimalSep string
	groupSep   string
	groupSize  int
	fracDigits int
}

const digitSymbols = "0#"
const separatorSymbols = ".,"

// CompileNumberFormat parses a number pattern. Patterns outside the
// supported grammar are rejected so that configuration mistakes
// surface before any document is built.
func CompileNumberFormat(pattern string) (*NumberFormat, error) {
	start := strings.IndexAny(pattern, digitSymbols)
	if start < 0 {
		return nil, fmt.Errorf("number pattern %q: no digit placeholder", pattern)
	}
	end := strings.LastIndexAny(pattern, digitSymbols)
	core := pattern[start : end+1]

	if strings.ContainsAny(core, " ") {
		return nil, fmt.Errorf("number pattern %q: numeric core must be contiguous", pattern)
	}
	for _, r := range core {
		if !strings.ContainsRune(digitSymbols+separatorSymbols, r) {
			return nil, fmt.Errorf("number pattern %q: unexpected %q in numeric core", pattern, r)
		}
	}

	f := &NumberFormat{
		pattern: pattern,
		prefix:  pattern[:start],
		suffix:  pattern[end+1:],
	}
	if err := f.parseCore(core); err != nil {
		return nil, fmt.Errorf("number pattern %q: %w", pattern, err)
	}
	return f, nil
}

func (f *NumberFormat) parseCore(core string) error {
	decimalAt := -1
	dots := strings.Count(core, ".")
	commas := strings.Count(core, ",")

	switch {
	case dots == 0 && commas == 0:
		// integer pattern, nothing to split
	case dots > 0 && commas > 0:
		// the rightmost separator character is the decimal separator
		lastDot := strings.LastIndex(core, ".")
		lastComma := strings.LastIndex(core, ",")
		if lastDot > lastComma {
			decimalAt = lastDot
			if dots > 1 {
				return fmt.Errorf("more than one decimal separator")
			}
		} else {
			decimalAt = lastComma
			if commas > 1 {
				return fmt.Errorf("more than one decimal separator")
			}
		}
	default:
		// a single separator character: decimal when followed only by
		// required digits, grouping otherwise
		last := strings.LastIndexAny(core, separatorSymbols)
		rest := core[last+1:]
		if dots+commas == 1 && strings.Count(rest, "0") == len(rest) && len(rest) > 0 {
			decimalAt = last
		}
	}

	intPart := core
	if decimalAt >= 0 {
		intPart = core[:decimalAt]
		frac := core[decimalAt+1:]
		if strings.Count(frac, "0") != len(frac) || len(frac) == 0 {
			return fmt.Errorf("fraction digits must be '0' placeholders")
		}
		f.decimalSep = string(core[decimalAt])
		f.fracDigits = len(frac)
	}

	if groupAt := strings.LastIndexAny(intPart, separatorSymbols); groupAt >= 0 {
		f.groupSep = string(intPart[groupAt])
		f.groupSize = len(intPart) - groupAt - 1
		if f.groupSize == 0 {
			return fmt.Errorf("empty grouping segment")
		}
		if f.decimalSep != "" && f.groupSep == f.decimalSep {
			return fmt.Errorf("grouping and decimal separator must differ")
		}
	}
	return nil
}

// Format renders the amount through the compiled pattern, rounding
// half away from zero to the pattern's fraction digits.
func (f *NumberFormat) Format(amount decimal.Decimal) string {
	s := amount.StringFixed(int32(f.fracDigits))

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if f.fracDigits > 0 {
		dot := strings.LastIndex(s, ".")
		intPart, fracPart = s[:dot], s[dot+1:]
	}

	if f.groupSize > 0 {
		intPart = groupDigits(intPart, f.groupSep, f.groupSize)
	}

	out := intPart
	if f.fracDigits > 0 {
		out += f.decimalSep + fracPart
	}
	return f.prefix + sign + out + f.suffix
}

// FormatInt renders a whole number through the compiled pattern.
func (f *NumberFormat) FormatInt(amount int) string {
	return f.Format(decimal.NewFromInt(int64(amount)))
}

// Pattern returns the source pattern string.
func (f *NumberFormat) Pattern() string {
	return f.pattern
}

func groupDigits(digits, sep string, size int) string {
	if len(digits) <= size {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % size
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += size {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}

// DateFormat formats dates according to a SimpleDateFormat style
// pattern. Supported fields: y (year), M (month), d (day of month),
// E (day of week), H (hour), m (minute), s (second). Literal text may
// be embedded directly or inside single quotes; '' is a literal quote.
type DateFormat struct {
	pattern string
	layout  string
}

var dateFields = map[string]string{
	"yyyy": "2006",
	"yy":   "06",
	"y":    "2006",
	"MMMM": "January",
	"MMM":  "Jan",
	"MM":   "01",
	"M":    "1",
	"dd":   "02",
	"d":    "2",
	"EEEE": "Monday",
	"EEE":  "Mon",
	"HH":   "15",
	"H":    "15",
	"mm":   "04",
	"m":    "4",
	"ss":   "05",
	"s":    "5",
}

// CompileDateFormat translates a date pattern into a Go time layout.
// Unsupported pattern letters are rejected at compile time.
func CompileDateFormat(pattern string) (*DateFormat, error) {
	var layout strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			// quoted literal; '' inside or standalone is a single quote
			j := i + 1
			for j < len(runes) && runes[j] != '\'' {
				layout.WriteRune(runes[j])
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("date pattern %q: unterminated quote", pattern)
			}
			if j == i+1 {
				layout.WriteRune('\'')
			}
			i = j + 1
		case isPatternLetter(r):
			j := i
			for j < len(runes) && runes[j] == r {
				j++
			}
			field := string(runes[i:j])
			goField, ok := dateFields[field]
			if !ok {
				return nil, fmt.Errorf("date pattern %q: unsupported field %q", pattern, field)
			}
			layout.WriteString(goField)
			i = j
		default:
			layout.WriteRune(r)
			i++
		}
	}
	return &DateFormat{pattern: pattern, layout: layout.String()}, nil
}

// Format renders the given date.
func (f *DateFormat) Format(t time.Time) string {
	return t.Format(f.layout)
}

// Pattern returns the source pattern string.
func (f *DateFormat) Pattern() string {
	return f.pattern
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
