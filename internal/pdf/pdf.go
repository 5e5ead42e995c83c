// Package pdf renders the single-page invoice summary offered for download.
package pdf

import (
	"fmt"
	"io"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"github.com/diewo77/faktury/internal/models"
)

// Layout in points, origin top-left. Boxes are layout guides only and are not stroked.
const (
	margin     = 72.0
	textX      = 60.0
	lineStep   = 20.0
	bodySize   = 12.0
	headSize   = 18.0
	dateLayout = "2006-01-02"

	userHeadY     = 72.0
	userBoxY      = 100.0
	userBoxH      = 80.0
	userFirstY    = 110.0
	customerHeadY = 232.0
	customerBoxY  = 260.0
	customerBoxH  = 120.0
	customerFirst = 270.0
	invoiceHeadY  = 400.0
	invoiceFirstY = 430.0

	boxX = 50.0
	boxW = 500.0
)

type line struct {
	label string
	value string
	bold  bool
}

// Filename is the attachment name of the invoice document.
func Filename(id uint) string {
	return fmt.Sprintf("invoice_%d.pdf", id)
}

// Render writes the invoice document for inv, issued by user to customer.
func Render(w io.Writer, user models.User, customer models.Customer, inv models.Invoice) error {
	doc := build(user, customer, inv)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render invoice %d: %w", inv.ID, err)
	}
	return nil
}

func build(user models.User, customer models.Customer, inv models.Invoice) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(Filename(inv.ID), true)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	heading(doc, tr, "User Details", userHeadY)
	block(doc, tr, userFirstY, partyLines(user.Fields()))

	heading(doc, tr, "Customer Details", customerHeadY)
	block(doc, tr, customerFirst, partyLines(customer.Fields()))

	heading(doc, tr, "Invoice Details", invoiceHeadY)
	block(doc, tr, invoiceFirstY, []line{
		{label: "Invoice ID", value: strconv.FormatUint(uint64(inv.ID), 10)},
		{label: "Invoice Date", value: inv.InvoiceDate.Format(dateLayout)},
		{label: "Due Date", value: inv.DueDate.Format(dateLayout), bold: true},
		{label: "Status", value: string(inv.Status)},
		{label: "Amount", value: strconv.FormatFloat(inv.Amount, 'f', 2, 64), bold: true},
	})
	return doc
}

func partyLines(f models.CustomerFields) []line {
	return []line{
		{label: "Name", value: f.Name, bold: true},
		{label: "Address", value: f.Address},
		{label: "Phone", value: f.Phone},
		{label: "Email", value: f.Email},
		{label: "ICO", value: f.ICO, bold: true},
		{label: "DICO", value: f.DICO},
	}
}

func heading(doc *gofpdf.Fpdf, tr func(string) string, text string, y float64) {
	doc.SetFont("Helvetica", "B", headSize)
	doc.SetXY(margin, y)
	doc.CellFormat(0, headSize, tr(text), "", 1, "CT", false, 0, "")
}

// block prints one line per entry starting at y, lineStep apart. Long values overflow.
func block(doc *gofpdf.Fpdf, tr func(string) string, y float64, lines []line) {
	for i, l := range lines {
		style := ""
		if l.bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, bodySize)
		doc.SetXY(textX, y+float64(i)*lineStep)
		doc.CellFormat(0, bodySize, tr(l.label+": "+l.value), "", 0, "LT", false, 0, "")
	}
}
