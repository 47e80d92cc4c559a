package receipt

import (
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/shopspring/decimal"
)

func itemQty(q int) decimal.Decimal {
	return decimal.NewFromInt(int64(q))
}

type Header struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

type Line struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// Document is the printable receipt. A value object composed from a
// completed sale at render time; rendering the same sale twice yields the
// same document.
type Document struct {
	Header      Header `json:"header"`
	ReceiptNo   string `json:"receipt_no"`
	Date        string `json:"date"`
	Cashier     string `json:"cashier"`
	MethodLabel string `json:"method_label"`
	Items       []Line `json:"items"`
	Subtotal    string `json:"subtotal"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
	CashPayment bool   `json:"cash_payment"`
	Received    string `json:"received,omitempty"`
	Change      string `json:"change,omitempty"`
}

// Render is a pure transformation from a completed sale to its document.
func Render(sale *model.CompletedSale, header Header, methodLabel string) Document {
	doc := Document{
		Header:      header,
		ReceiptNo:   sale.ReceiptNo,
		Date:        sale.CreatedAt.Format("2006-01-02 15:04:05"),
		Cashier:     sale.CashierName,
		MethodLabel: methodLabel,
		Subtotal:    sale.Subtotal.StringFixed(2),
		Tax:         sale.Tax.StringFixed(2),
		Total:       sale.Total.StringFixed(2),
		CashPayment: sale.PaymentMethod == model.MethodCash,
	}
	for _, item := range sale.Items {
		lineTotal := item.UnitPrice.Mul(itemQty(item.Quantity))
		doc.Items = append(doc.Items, Line{
			Name:      item.Name,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: lineTotal.StringFixed(2),
		})
	}
	if doc.CashPayment {
		doc.Received = sale.CashReceived.StringFixed(2)
		doc.Change = sale.ChangeAmount.StringFixed(2)
	}
	return doc
}

const receiptWidth = 40

// Text lays the document out for a 40-column receipt printer.
func (d Document) Text() string {
	var b strings.Builder
	center := func(s string) {
		if pad := (receiptWidth - len(s)) / 2; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	row := func(left, right string) {
		gap := receiptWidth - len(left) - len(right)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(left)
		b.WriteString(strings.Repeat(" ", gap))
		b.WriteString(right)
		b.WriteByte('\n')
	}
	rule := func() { b.WriteString(strings.Repeat("-", receiptWidth) + "\n") }

	center(d.Header.StoreName)
	if d.Header.Address != "" {
		center(d.Header.Address)
	}
	if d.Header.Phone != "" {
		center(d.Header.Phone)
	}
	if d.Header.TaxID != "" {
		center("Tax ID: " + d.Header.TaxID)
	}
	rule()
	row("Receipt:", d.ReceiptNo)
	row("Date:", d.Date)
	if d.Cashier != "" {
		row("Cashier:", d.Cashier)
	}
	rule()
	for _, item := range d.Items {
		b.WriteString(item.Name + "\n")
		row(fmt.Sprintf("  %d x %s", item.Quantity, item.UnitPrice), item.LineTotal)
	}
	rule()
	row("Subtotal", d.Subtotal)
	row("Tax", d.Tax)
	row("TOTAL", d.Total)
	rule()
	row("Paid by", d.MethodLabel)
	if d.CashPayment {
		row("Received", d.Received)
		row("Change", d.Change)
	}
	rule()
	center("Thank you!")
	return b.String()
}
