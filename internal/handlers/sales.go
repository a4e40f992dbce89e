// internal/handlers/sales.go
package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// SalesHandler handles sales ledger HTTP requests
type SalesHandler struct {
	service ports.SaleLedgerService
	logger  *slog.Logger
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(service ports.SaleLedgerService, logger *slog.Logger) *SalesHandler {
	return &SalesHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "sales")),
	}
}

// List handles GET /api/v1/sales
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sales, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list sales",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list sales")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"sales": sales,
		"count": len(sales),
	})
}

// ExportExcel handles GET /api/v1/sales/export. It streams the full ledger
// as an Excel workbook, one row per sold line item.
func (h *SalesHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sales, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load sales for export",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to export sales")
		return
	}

	data, err := generateSalesWorkbook(sales)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate sales workbook",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to export sales")
		return
	}

	filename := fmt.Sprintf("sales_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write export response",
			slog.String("error", err.Error()))
	}
}

func generateSalesWorkbook(sales []domain.Sale) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Sales")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{
		"Ticket", "Date", "Article Code", "Depositor Code", "Depositor Name",
		"Unit Price", "Quantity", "Line Total", "Ticket Total",
	}
	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, sale := range sales {
		for _, item := range sale.Items {
			lineTotal := item.Article.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			row := sheet.AddRow()
			for _, value := range []string{
				sale.TicketNumber,
				sale.Date.Format(time.RFC3339),
				item.Article.Code,
				item.Article.DepositorCode,
				item.Article.DepositorName,
				item.Article.Price.StringFixed(2),
				strconv.Itoa(item.Quantity),
				lineTotal.StringFixed(2),
				sale.Total.StringFixed(2),
			} {
				cell := row.AddCell()
				cell.Value = value
			}
		}
	}

	for i := 0; i < len(headers); i++ {
		sheet.SetColWidth(i, i, 15)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}
