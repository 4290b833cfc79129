package views

import "strings"

const (
	maxCardDigits   = 16
	maxExpiryDigits = 4
	maxCVVDigits    = 4
)

func digits(s string, limit int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			if b.Len() == limit {
				break
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber keeps up to 16 digits and groups them by four:
// "1234567890123456" becomes "1234 5678 9012 3456".
func FormatCardNumber(raw string) string {
	d := digits(raw, maxCardDigits)

	var b strings.Builder
	for i, r := range d {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry inserts the month/year separator once two digits are typed,
// so "12" becomes "12/" and "1230" becomes "12/30".
func FormatExpiry(raw string) string {
	d := digits(raw, maxExpiryDigits)
	if len(d) < 2 {
		return d
	}
	return d[:2] + "/" + d[2:]
}

func FormatCVV(raw string) string {
	return digits(raw, maxCVVDigits)
}
