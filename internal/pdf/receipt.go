package pdf

import (
	"bytes"
	"fmt"

	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/go-pdf/fpdf"
)

// Receipt renders a single-transaction receipt.
func Receipt(rc repository.Receipt, currency string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Service Receipt", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Receipt #%d", rc.Transaction.ID), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	labelValue(doc, "Date", rc.ServiceDate.Format("2006-01-02"))
	labelValue(doc, "Customer", rc.CustomerName)
	labelValue(doc, "Phone", rc.CustomerPhone)
	labelValue(doc, "Service", rc.ServiceLabel)
	labelValue(doc, "Performed by", rc.EmployeeName)
	doc.Ln(4)

	labelValue(doc, "Base price", formatMoney(rc.BasePrice, currency))
	if rc.Transaction.FreeVisit {
		labelValue(doc, "Loyalty reward", "Free visit")
	} else if rc.Transaction.DiscountApplied.Amount > 0 {
		labelValue(doc, "Discount", "-"+formatMoney(rc.Transaction.DiscountApplied.Amount, currency))
	}

	doc.SetFont("Helvetica", "B", 12)
	labelValue(doc, "Total", formatMoney(rc.Transaction.TotalPrice.Amount, currency))

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 9)
	doc.CellFormat(0, 6, "Thank you for your visit!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func labelValue(doc *fpdf.Fpdf, label, value string) {
	doc.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
	doc.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func formatMoney(cents int64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, float64(cents)/100)
}
