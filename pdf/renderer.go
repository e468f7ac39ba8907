// Package pdf renders a Document onto a single fixed-geometry A4 page.
// The same bytes back the on-screen preview, the file download, and the
// webhook attachment, so the renderer must be a pure function of
// (document, settings, logo, createdBy) apart from the printed-as footer
// timestamp.
package pdf

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/models"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin = 15.0
	lineHeight = 4.0

	// Diagonal status ribbon, top-left corner.
	ribbonLength    = 70.0
	ribbonThickness = 12.0

	// Euro sign in the cp1252 encoding used by the core fonts.
	euro = "\x80"
)

// Renderer produces the one-page document layout. Now is injectable so the
// footer timestamp can be pinned in tests.
type Renderer struct {
	Now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{Now: time.Now}
}

// Render lays out the full page and returns the PDF bytes. A missing or
// undecodable logo is logged and skipped; it never aborts generation.
func (r *Renderer) Render(doc *models.Document, settings *models.AppSettings, logo []byte, createdBy string) ([]byte, error) {
	if createdBy == "" {
		createdBy = "Admin"
	}

	f := gofpdf.New("P", "mm", "A4", "")
	f.SetCreationDate(r.Now()) // document metadata follows the injected clock
	f.SetModificationDate(r.Now())
	f.SetAutoPageBreak(false, 0)
	f.AddPage()

	pageW, pageH := f.GetPageSize()
	contentW := pageW - 2*pageMargin

	// 1. Status ribbon
	r.drawRibbon(f, doc)

	// 2. Header: title + number left, logo right
	yPos := 25.0
	title := "Invoice"
	if doc.DocumentType == models.TypeQuote {
		title = "Quote"
	}

	f.SetFont("Helvetica", "", 20)
	f.SetTextColor(0, 0, 0)
	f.Text(pageMargin, yPos, title)
	f.SetFontSize(12)
	f.Text(pageMargin, yPos+7, doc.Number)

	r.drawLogo(f, doc, logo, pageW, yPos)

	yPos += 20
	drawRule(f, yPos, pageW, 0.1)

	// 3. Address columns
	yPos = r.drawAddressBlock(f, doc, settings, title, yPos+8, contentW)

	// 4. Info strip
	drawRule(f, yPos, pageW, 0.1)
	yPos = r.drawInfoStrip(f, doc, settings, title, createdBy, yPos+6, contentW)
	drawRule(f, yPos, pageW, 0.1)

	// 5. Line-item table
	yPos = r.drawItemsTable(f, doc, yPos+10, contentW)

	// 6. VAT analysis + totals
	vatEnd := r.drawVATAnalysis(f, doc, yPos+10)
	totalsEnd := r.drawTotals(f, doc, yPos+10, pageW)

	// 7. Footer: notes, bank details, page strip
	yPos = math.Max(vatEnd, totalsEnd) + 15
	r.drawFooter(f, doc, settings, yPos, pageW, pageH)

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawRibbon paints the diagonal PAID/UNPAID banner across the top-left
// corner: a 70x12mm strip at -45 degrees with a white rotated label.
func (r *Renderer) drawRibbon(f *gofpdf.Fpdf, doc *models.Document) {
	isPaid := doc.Status == string(models.Paid)
	label := "UNPAID"
	f.SetFillColor(249, 115, 22)
	if isPaid {
		label = "PAID"
		f.SetFillColor(34, 197, 94)
	}

	angle := -45 * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)
	startX, startY := -10.0, 25.0

	p1 := gofpdf.PointType{X: startX, Y: startY}
	p2 := gofpdf.PointType{X: startX + ribbonLength*cos, Y: startY + ribbonLength*sin}
	p3 := gofpdf.PointType{X: p2.X - ribbonThickness*sin, Y: p2.Y + ribbonThickness*cos}
	p4 := gofpdf.PointType{X: p1.X - ribbonThickness*sin, Y: p1.Y + ribbonThickness*cos}
	f.Polygon([]gofpdf.PointType{p1, p2, p3, p4}, "F")

	f.SetFont("Helvetica", "B", 10)
	f.SetTextColor(255, 255, 255)
	f.TransformBegin()
	f.TransformRotate(45, 15, 15)
	f.Text(15-f.GetStringWidth(label)/2, 16, label)
	f.TransformEnd()
}

// drawLogo embeds the company logo top-right, aspect-fit into a bounded box
// so branding never dominates the page. Failures are logged and skipped.
func (r *Renderer) drawLogo(f *gofpdf.Fpdf, doc *models.Document, logo []byte, pageW, yPos float64) {
	if len(logo) == 0 {
		return
	}

	flat, ratio, err := flattenLogo(logo)
	if err != nil {
		config.LogError(config.GetLogger(), "pdf", "drawLogo", "flatten logo", doc.Number, err)
		return
	}

	maxW, maxH := 50.0, 22.0
	if doc.Company == models.CompanyMirrorzone {
		maxW = 70.0
	}
	logoW := maxW
	logoH := maxW / ratio
	if logoH > maxH {
		logoH = maxH
		logoW = maxH * ratio
	}

	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	f.RegisterImageOptionsReader("company-logo", opts, bytes.NewReader(flat))
	if f.Err() {
		config.LogError(config.GetLogger(), "pdf", "drawLogo", "register logo", doc.Number, f.Error())
		f.ClearError()
		return
	}
	f.ImageOptions("company-logo", pageW-pageMargin-logoW, yPos-10, logoW, logoH, false, opts, 0, "")
}

// drawAddressBlock writes the three 8pt columns: bill-to, deliver-to (always
// identical to bill-to; no separate shipping address exists), and the sender
// company block from settings. Returns the y position after the tallest column.
func (r *Renderer) drawAddressBlock(f *gofpdf.Fpdf, doc *models.Document, settings *models.AppSettings, title string, yPos, contentW float64) float64 {
	colW := contentW / 3

	billLines := []string{doc.CustomerName}
	for _, part := range strings.Split(doc.CustomerAddress, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		billLines = append(billLines, wrap(f, part, colW-5)...)
	}

	f.SetFont("Helvetica", "B", 8)
	f.SetTextColor(0, 0, 0)
	f.Text(pageMargin, yPos, title+" To:")

	f.SetFont("Helvetica", "", 8)
	billY := yPos + 5
	for _, l := range billLines {
		f.Text(pageMargin, billY, l)
		billY += lineHeight
	}

	col2X := pageMargin + colW
	f.SetFont("Helvetica", "B", 8)
	f.Text(col2X, yPos, "Deliver To:")
	f.SetFont("Helvetica", "", 8)
	shipY := yPos + 5
	for _, l := range billLines {
		f.Text(col2X, shipY, l)
		shipY += lineHeight
	}

	identity := settings.Identity(doc.Company)
	col3X := pageMargin + colW*2
	f.SetFont("Helvetica", "B", 8)
	f.Text(col3X, yPos, identity.Name)

	companyInfo := []string{
		identity.Address,
		"",
		"Tel: " + identity.Phone,
		"Email: " + identity.Email,
	}
	if identity.Website != "" {
		companyInfo = append(companyInfo, "Web: "+identity.Website)
	}

	f.SetFont("Helvetica", "", 8)
	compY := yPos + 5
	for _, l := range companyInfo {
		if l == "" {
			compY += lineHeight
			continue
		}
		for _, wl := range wrap(f, l, colW-5) {
			f.Text(col3X, compY, wl)
			compY += lineHeight
		}
	}

	return math.Max(billY, math.Max(shipY, compY)) + 5
}

// drawInfoStrip writes the six-column horizontal metadata band.
func (r *Renderer) drawInfoStrip(f *gofpdf.Fpdf, doc *models.Document, settings *models.AppSettings, title, createdBy string, yPos, contentW float64) float64 {
	due := "On Receipt"
	if !doc.DueDate.IsZero() {
		due = formatDate(doc.DueDate)
	}
	vatNo := settings.VATNumber
	if vatNo == "" {
		vatNo = "IE8252470Q"
	}

	cols := []struct{ label, value string }{
		{title + " Date", formatDate(doc.DateIssued)},
		{"Ref. No.", doc.Number},
		{"Account Manager", createdBy},
		{"VAT No.", vatNo},
		{"Payment Due", due},
		{"Credit Terms", "30 Days"},
	}
	colW := contentW / float64(len(cols))

	f.SetFont("Helvetica", "B", 8)
	for i, col := range cols {
		f.Text(pageMargin+float64(i)*colW, yPos, col.label)
	}
	yPos += 5
	f.SetFont("Helvetica", "", 8)
	for i, col := range cols {
		f.Text(pageMargin+float64(i)*colW, yPos, col.value)
	}
	return yPos + 5
}

// itemColumns is the fixed table geometry: description takes the remainder.
var itemColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"Description", 0, "L"},
	{"Quantity", 25, "R"},
	{"Price", 30, "R"},
	{"VAT Rate", 25, "R"},
	{"Total", 30, "R"},
}

// drawItemsTable renders the line items with a grey header band. The VAT
// rate column is a fixed display label; per-line tax is not modeled.
func (r *Renderer) drawItemsTable(f *gofpdf.Fpdf, doc *models.Document, yPos, contentW float64) float64 {
	descW := contentW
	for _, c := range itemColumns[1:] {
		descW -= c.width
	}

	// Header band
	f.SetFillColor(243, 244, 246)
	f.SetTextColor(31, 41, 55)
	f.SetFont("Helvetica", "B", 9)
	f.SetXY(pageMargin, yPos)
	for i, c := range itemColumns {
		w := c.width
		if i == 0 {
			w = descW
		}
		align := "L"
		if i > 0 {
			align = "R"
		}
		f.CellFormat(w, 9, c.header, "", 0, align+"M", true, 0, "")
	}
	yPos += 9

	f.SetTextColor(0, 0, 0)
	f.SetFont("Helvetica", "", 8)
	for _, item := range doc.Items {
		descLines := wrap(f, item.Description, descW-4)
		rowH := math.Max(8, float64(len(descLines))*lineHeight+4)

		cells := []string{
			"", // description drawn line by line below
			trimZeros(item.Quantity),
			FormatAmount(item.UnitPrice),
			"23.00%",
			FormatAmount(item.Total),
		}
		x := pageMargin
		for i, c := range itemColumns {
			w := c.width
			if i == 0 {
				w = descW
			}
			f.SetXY(x, yPos)
			f.CellFormat(w, rowH, cells[i], "", 0, c.align+"M", false, 0, "")
			x += w
		}
		textY := yPos + rowH/2 - float64(len(descLines)-1)*lineHeight/2 + 1
		for _, dl := range descLines {
			f.Text(pageMargin+2, textY, dl)
			textY += lineHeight
		}
		yPos += rowH
	}
	return yPos
}

// drawVATAnalysis renders the bordered mini-table (rate/net/vat/gross) on
// the left. Returns the y position below the table.
func (r *Renderer) drawVATAnalysis(f *gofpdf.Fpdf, doc *models.Document, yPos float64) float64 {
	f.SetFont("Helvetica", "B", 9)
	f.SetTextColor(0, 0, 0)
	f.Text(pageMargin, yPos-2, "VAT Analysis")

	headers := []string{"VAT Rate %", "Net", "VAT", "Gross"}
	values := []string{
		"23.00%",
		euro + FormatAmount(doc.Subtotal),
		euro + FormatAmount(doc.TaxAmount),
		euro + FormatAmount(doc.Total),
	}
	colW := 90.0 / float64(len(headers))

	f.SetDrawColor(229, 231, 235)
	f.SetLineWidth(0.1)

	f.SetFillColor(243, 244, 246)
	f.SetFont("Helvetica", "B", 8)
	f.SetXY(pageMargin, yPos)
	for _, h := range headers {
		f.CellFormat(colW, 7, h, "1", 0, "LM", true, 0, "")
	}
	yPos += 7

	f.SetFont("Helvetica", "", 8)
	f.SetXY(pageMargin, yPos)
	for i, v := range values {
		align := "RM"
		if i == 0 {
			align = "LM"
		}
		f.CellFormat(colW, 7, v, "1", 0, align, false, 0, "")
	}
	return yPos + 7
}

// drawTotals renders the right-hand totals block. "Total Payable" is the
// balance due, not the gross total, so an existing deposit reduces it.
func (r *Renderer) drawTotals(f *gofpdf.Fpdf, doc *models.Document, yPos, pageW float64) float64 {
	valX := pageW - pageMargin
	labX := valX - 60

	totalsY := yPos
	line := func(label, value string, bold, final bool) {
		style := ""
		size := 9.0
		if bold {
			style = "B"
			if final {
				size = 11
			}
		}
		f.SetFont("Helvetica", style, size)
		f.SetTextColor(0, 0, 0)
		f.Text(labX, totalsY+4, label)
		f.Text(valX-f.GetStringWidth(value), totalsY+4, value)
		totalsY += 6
	}

	f.SetDrawColor(209, 213, 219)
	f.SetLineWidth(0.3)
	f.Line(labX, totalsY, valX, totalsY)

	line("Total Net", euro+FormatAmount(doc.Subtotal), false, false)
	line("Total Discount", euro+FormatAmount(0), false, false)
	line("Total VAT", euro+FormatAmount(doc.TaxAmount), false, false)

	totalsY += 4
	f.Line(labX, totalsY, valX, totalsY)
	totalsY += 2
	line("Total Gross", euro+FormatAmount(doc.Total), true, false)

	totalsY += 2
	f.Line(labX, totalsY, valX, totalsY)
	totalsY += 2
	line("Less Deposit", euro+FormatAmount(doc.AmountPaid), false, false)

	totalsY += 4
	f.SetDrawColor(31, 41, 55)
	f.SetLineWidth(0.5)
	f.Line(labX, totalsY, valX, totalsY)
	totalsY += 2
	line("Total Payable", euro+FormatAmount(doc.BalanceDue), true, true)

	return totalsY
}

// drawFooter writes notes, the bank block, and the full-width page strip.
func (r *Renderer) drawFooter(f *gofpdf.Fpdf, doc *models.Document, settings *models.AppSettings, yPos, pageW, pageH float64) {
	f.SetDrawColor(229, 231, 235)
	f.SetLineWidth(0.1)
	f.Line(pageMargin, yPos, pageW-pageMargin, yPos)
	yPos += 5

	if doc.Notes != "" {
		f.SetFont("Helvetica", "B", 9)
		f.SetTextColor(0, 0, 0)
		f.Text(pageMargin, yPos, "Notes:")
		yPos += 4
		f.SetFont("Helvetica", "", 8)
		for _, l := range wrap(f, doc.Notes, 80) {
			f.Text(pageMargin, yPos, l)
			yPos += lineHeight
		}
	}

	yPos += 10
	f.SetFont("Helvetica", "B", 9)
	f.Text(pageMargin, yPos, "Bank Details")
	yPos += 5

	bank := settings.Bank(doc.Company)
	rows := []struct{ label, value string }{
		{"Account Name:", bank.AccountName},
		{"Bank Name:", bank.BankName},
		{"BIC/SWIFT:", bank.BIC},
		{"IBAN:", bank.IBAN},
	}
	f.SetFontSize(8)
	for _, row := range rows {
		f.SetFont("Helvetica", "B", 8)
		f.Text(pageMargin, yPos, row.label)
		f.SetFont("Helvetica", "", 8)
		f.Text(pageMargin+25, yPos, row.value)
		yPos += lineHeight
	}

	pageBottom := pageH - 10
	f.SetFillColor(243, 244, 246)
	f.Rect(0, pageBottom-5, pageW, 15, "F")

	f.SetTextColor(75, 85, 99)
	f.SetFont("Helvetica", "", 8)
	f.Text(pageMargin, pageBottom+2, "Printed as: "+formatDate(r.Now())+" | Page 1 of 1")
	credit := "Created by Clonmel Glass Invoice Hub"
	f.Text(pageW-pageMargin-f.GetStringWidth(credit), pageBottom+2, credit)
}

// wrap splits s into lines that fit within width at the current font.
func wrap(f *gofpdf.Fpdf, s string, width float64) []string {
	if s == "" {
		return nil
	}
	raw := f.SplitLines([]byte(s), width)
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, string(l))
	}
	return lines
}

func drawRule(f *gofpdf.Fpdf, y, pageW, thickness float64) {
	f.SetDrawColor(200, 200, 200)
	f.SetLineWidth(thickness)
	f.Line(pageMargin, y, pageW-pageMargin, y)
}

// trimZeros prints a quantity without trailing fraction noise: whole numbers
// stay whole, sqm quantities keep their fractional places.
func trimZeros(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
