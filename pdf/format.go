package pdf

import (
	"fmt"
	"strings"
	"time"

	"invoicehub-backend/models"
)

// FormatAmount renders a money value with two decimals and comma thousands
// separators. No currency symbol: callers prepend the euro sign at the sites
// that need it.
func FormatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// formatDate renders DD/MM/YYYY for the on-page date fields.
func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// Filename is the download name for a rendered document.
func Filename(doc *models.Document) string {
	return doc.Number + ".pdf"
}
