package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/pdf"
	"github.com/SUSHIbit/ProjectRara/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

type SalesHandler struct {
	Service  service.SalesService
	Currency string
	Now      service.Clock
}

func (h SalesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sales/daily", h.daily)
	r.Get("/sales/monthly", h.monthly)
	r.Get("/sales/daily/pdf", h.dailyPDF)
	r.Get("/sales/monthly/pdf", h.monthlyPDF)
	r.Get("/sales/monthly/export", h.monthlyExport)
}

func (h SalesHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// dateParam defaults to today, matching the report screens.
func (h SalesHandler) dateParam(r *http.Request) (time.Time, error) {
	d, err := parseDateQuery(r, "date")
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		now := h.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return *d, nil
}

func (h SalesHandler) monthParams(r *http.Request) (int, time.Month) {
	now := h.now()
	year, month := now.Year(), now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			year = n
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 12 {
			month = time.Month(n)
		}
	}
	return year, month
}

func (h SalesHandler) daily(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		writeFieldErrors(w, map[string]string{"date": "must be a date (YYYY-MM-DD)"})
		return
	}
	sales, err := h.Service.Daily(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	txs := make([]map[string]any, 0, len(sales.Transactions))
	for _, t := range sales.Transactions {
		txs = append(txs, transactionJSON(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":         sales.Date.Format(dateLayout),
		"transactions": txs,
		"summary":      summaryJSON(sales.Summary),
	})
}

func (h SalesHandler) monthly(w http.ResponseWriter, r *http.Request) {
	year, month := h.monthParams(r)
	sales, err := h.Service.Monthly(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	daily := make(map[string]any, len(sales.Daily))
	for day, bucket := range sales.Daily {
		daily[strconv.Itoa(day)] = summaryJSON(bucket)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":        year,
		"month":       int(month),
		"daily_sales": daily,
		"summary":     summaryJSON(sales.Summary),
	})
}

func (h SalesHandler) dailyPDF(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		writeFieldErrors(w, map[string]string{"date": "must be a date (YYYY-MM-DD)"})
		return
	}
	sales, err := h.Service.Daily(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, err := pdf.DailyReport(sales, h.Currency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	servePDF(w, "daily_sales_"+date.Format(dateLayout)+".pdf", data)
}

func (h SalesHandler) monthlyPDF(w http.ResponseWriter, r *http.Request) {
	year, month := h.monthParams(r)
	sales, err := h.Service.Monthly(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, err := pdf.MonthlyReport(sales, h.Currency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	servePDF(w, fmt.Sprintf("monthly_sales_%d_%d.pdf", year, int(month)), data)
}

func (h SalesHandler) monthlyExport(w http.ResponseWriter, r *http.Request) {
	year, month := h.monthParams(r)
	sales, err := h.Service.Monthly(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, err := exportMonthlyXLSX(sales)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="monthly_sales_%d_%d.xlsx"`, year, int(month)))
	w.WriteHeader(http.StatusOK)
	_, _ = bytes.NewReader(data).WriteTo(w)
}

func exportMonthlyXLSX(sales *service.MonthlySales) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Sales"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Day", "Total Sales", "Total Discounts", "Free Visits", "Net Sales", "Transactions"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	days := make([]int, 0, len(sales.Daily))
	for day := range sales.Daily {
		days = append(days, day)
	}
	sort.Ints(days)

	for r, day := range days {
		b := sales.Daily[day]
		row := r + 2
		values := []any{
			day,
			float64(b.TotalSales) / 100,
			float64(b.TotalDiscounts) / 100,
			b.FreeVisits,
			float64(b.NetSales) / 100,
			b.TransactionCount,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	totalRow := len(days) + 2
	totals := []any{
		"Total",
		float64(sales.Summary.TotalSales) / 100,
		float64(sales.Summary.TotalDiscounts) / 100,
		sales.Summary.FreeVisits,
		float64(sales.Summary.NetSales) / 100,
		sales.Summary.TransactionCount,
	}
	for c, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(c+1, totalRow)
		_ = f.SetCellValue(sheet, cell, v)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(sheet, "A1", "F1", style)
	_ = f.SetColWidth(sheet, "A", "F", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryJSON(s service.SalesSummary) map[string]any {
	return map[string]any{
		"total_sales":       s.TotalSales,
		"total_discounts":   s.TotalDiscounts,
		"free_visits":       s.FreeVisits,
		"net_sales":         s.NetSales,
		"transaction_count": s.TransactionCount,
	}
}
