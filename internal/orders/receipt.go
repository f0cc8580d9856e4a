package orders

import (
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"github.com/foodordering/storefront/internal/api"
)

type ReceiptLine struct {
	Name     string
	Quantity int
	Price    float64
	Subtotal float64
}

type Receipt struct {
	Merchant    string
	OrderNumber string
	CreatedAt   string
	Lines       []ReceiptLine
	Subtotal    float64
	Tax         float64
	DeliveryFee float64
	Total       float64
}

// PrintSurface is one way of getting a receipt in front of the user. The
// printer tries surfaces in order and stops at the first that works.
type PrintSurface interface {
	Name() string
	Print(r Receipt) error
}

type ReceiptPrinter struct {
	Merchant    string
	TaxRate     float64
	DeliveryFee float64
	Surfaces    []PrintSurface
	Logger      *log.Logger
}

// Build computes the receipt from the order and its line items. The
// subtotal is recomputed from the lines; tax and delivery are derived from
// configuration; the order's own total wins when the backend sent one.
func (p *ReceiptPrinter) Build(o api.Order, items []api.OrderItem) Receipt {
	r := Receipt{
		Merchant:    p.Merchant,
		OrderNumber: o.OrderNumber,
		CreatedAt:   o.CreatedAt,
		DeliveryFee: p.DeliveryFee,
	}
	for _, it := range items {
		sub := float64(it.Subtotal)
		if sub == 0 {
			sub = float64(it.UnitPrice) * float64(it.Quantity)
		}
		r.Lines = append(r.Lines, ReceiptLine{
			Name:     it.ItemName,
			Quantity: it.Quantity,
			Price:    float64(it.UnitPrice),
			Subtotal: sub,
		})
		r.Subtotal += sub
	}
	r.Subtotal = round2(r.Subtotal)
	r.Tax = round2(r.Subtotal * p.TaxRate)
	if total := float64(o.TotalAmount); total > 0 {
		r.Total = total
	} else {
		r.Total = round2(r.Subtotal + r.Tax + r.DeliveryFee)
	}
	return r
}

// Print hands the receipt to the first surface that accepts it and reports
// whether any did.
func (p *ReceiptPrinter) Print(r Receipt) bool {
	for _, s := range p.Surfaces {
		if err := s.Print(r); err != nil {
			p.Logger.Printf("orders: print via %s failed: %v", s.Name(), err)
			continue
		}
		return true
	}
	return false
}

func (r Receipt) Format() string {
	var b strings.Builder
	width := 38
	center := func(s string) {
		pad := (width - len(s)) / 2
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}

	center(r.Merchant)
	center("Order #" + r.OrderNumber)
	if r.CreatedAt != "" {
		center(r.CreatedAt)
	}
	b.WriteString(strings.Repeat("-", width) + "\n")
	for _, l := range r.Lines {
		b.WriteString(fmt.Sprintf("%-24s %2d %9.2f\n", truncate(l.Name, 24), l.Quantity, l.Subtotal))
	}
	b.WriteString(strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("%-28s %9.2f\n", "Subtotal", r.Subtotal))
	b.WriteString(fmt.Sprintf("%-28s %9.2f\n", "Tax", r.Tax))
	b.WriteString(fmt.Sprintf("%-28s %9.2f\n", "Delivery", r.DeliveryFee))
	b.WriteString(fmt.Sprintf("%-28s %9.2f\n", "TOTAL", r.Total))
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriterSurface prints receipts to an io.Writer (a terminal, a spool file).
type WriterSurface struct {
	Target string
	W      io.Writer
}

func (s *WriterSurface) Name() string { return s.Target }

func (s *WriterSurface) Print(r Receipt) error {
	_, err := io.WriteString(s.W, r.Format())
	return err
}
