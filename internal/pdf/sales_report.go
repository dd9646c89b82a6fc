package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/SUSHIbit/ProjectRara/internal/service"
	"github.com/go-pdf/fpdf"
)

// DailyReport renders one day's sales with its transaction table.
func DailyReport(sales *service.DailySales, currency string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Daily Sales Report", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, sales.Date.Format("2006-01-02"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	writeSummary(doc, sales.Summary, currency)
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(25, 7, "ID", "1", 0, "L", false, 0, "")
	doc.CellFormat(55, 7, "Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(55, 7, "Discount", "1", 0, "R", false, 0, "")
	doc.CellFormat(40, 7, "Free visit", "1", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, t := range sales.Transactions {
		doc.CellFormat(25, 7, strconv.FormatInt(t.ID, 10), "1", 0, "L", false, 0, "")
		doc.CellFormat(55, 7, formatMoney(t.TotalPrice.Amount, currency), "1", 0, "R", false, 0, "")
		doc.CellFormat(55, 7, formatMoney(t.DiscountApplied.Amount, currency), "1", 0, "R", false, 0, "")
		mark := ""
		if t.FreeVisit {
			mark = "yes"
		}
		doc.CellFormat(40, 7, mark, "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MonthlyReport renders month totals plus the per-day breakdown.
func MonthlyReport(sales *service.MonthlySales, currency string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Monthly Sales Report", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, fmt.Sprintf("%s %d", sales.Month.String(), sales.Year), "", 1, "C", false, 0, "")
	doc.Ln(4)

	writeSummary(doc, sales.Summary, currency)
	doc.Ln(6)

	days := make([]int, 0, len(sales.Daily))
	for day := range sales.Daily {
		days = append(days, day)
	}
	sort.Ints(days)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(20, 7, "Day", "1", 0, "L", false, 0, "")
	doc.CellFormat(45, 7, "Sales", "1", 0, "R", false, 0, "")
	doc.CellFormat(45, 7, "Discounts", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, "Free visits", "1", 0, "R", false, 0, "")
	doc.CellFormat(30, 7, "Count", "1", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, day := range days {
		b := sales.Daily[day]
		doc.CellFormat(20, 7, strconv.Itoa(day), "1", 0, "L", false, 0, "")
		doc.CellFormat(45, 7, formatMoney(b.TotalSales, currency), "1", 0, "R", false, 0, "")
		doc.CellFormat(45, 7, formatMoney(b.TotalDiscounts, currency), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, strconv.Itoa(b.FreeVisits), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, strconv.Itoa(b.TransactionCount), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(doc *fpdf.Fpdf, sum service.SalesSummary, currency string) {
	doc.SetFont("Helvetica", "", 11)
	labelValue(doc, "Total sales", formatMoney(sum.TotalSales, currency))
	labelValue(doc, "Total discounts", formatMoney(sum.TotalDiscounts, currency))
	labelValue(doc, "Free visits", strconv.Itoa(sum.FreeVisits))
	labelValue(doc, "Net sales", formatMoney(sum.NetSales, currency))
	labelValue(doc, "Transactions", strconv.Itoa(sum.TransactionCount))
}
