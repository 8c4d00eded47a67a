// Package ledger commits confirmed orders into an XLSX workbook with one
// sheet per delivery date.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/order-intake/constants"
	"github.com/joseph-ayodele/order-intake/internal/entity"
)

// Row is one confirmed order to append.
type Row struct {
	OrderTime     time.Time
	CustomerPhone string
	Order         *entity.OrderRecord
}

// Workbook is the order ledger: a single master workbook where each delivery
// date gets its own sheet, created on first use with a fixed 8-column
// header. Duplicate confirmations append duplicate rows; idempotence is not
// part of the contract.
type Workbook struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex // one workbook file shared by all customer sessions
}

func NewWorkbook(path string, logger *slog.Logger) *Workbook {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workbook{path: path, logger: logger}
}

// Commit ensures the delivery date's sheet exists and appends one row with
// status "Confirmed". Returns the sheet name as the ledger location.
func (w *Workbook) Commit(ctx context.Context, deliveryDate string, row Row) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if row.Order == nil {
		return "", fmt.Errorf("commit: nil order")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	start := time.Now()

	f, created, err := w.open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheet := SheetNameForDate(deliveryDate)
	if err := w.ensureSheet(f, sheet); err != nil {
		return "", err
	}
	if created && sheet != "Sheet1" {
		// A new workbook comes with an empty default sheet; the first dated
		// sheet replaces it.
		_ = f.DeleteSheet("Sheet1")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	next := len(rows) + 1

	address := strings.TrimSpace(row.Order.DeliveryAddress)
	values := []any{
		row.OrderTime.UTC().Format(time.RFC3339),
		row.CustomerPhone,
		businessName(address),
		formatItems(row.Order.Items),
		address,
		deliveryDate,
		row.Order.Notes,
		constants.OrderStatusConfirmed,
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, next)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return "", fmt.Errorf("write cell %s: %w", cell, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("ledger.commit.ok",
		"sheet", sheet,
		"row", next,
		"customer", row.CustomerPhone,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return sheet, nil
}

func (w *Workbook) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(w.path); err == nil {
		f, err := excelize.OpenFile(w.path)
		if err != nil {
			return nil, false, fmt.Errorf("open workbook: %w", err)
		}
		return f, false, nil
	}
	return excelize.NewFile(), true, nil
}

func (w *Workbook) ensureSheet(f *excelize.File, sheet string) error {
	if index, _ := f.GetSheetIndex(sheet); index != -1 {
		return nil
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}
	f.SetActiveSheet(index)

	for i, h := range constants.LedgerHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header %s: %w", cell, err)
		}
	}

	// Widen the text-heavy columns.
	_ = f.SetColWidth(sheet, "A", "A", 22) // order time
	_ = f.SetColWidth(sheet, "B", "B", 16) // phone
	_ = f.SetColWidth(sheet, "C", "C", 24) // business
	_ = f.SetColWidth(sheet, "D", "D", 40) // items
	_ = f.SetColWidth(sheet, "E", "E", 40) // address
	_ = f.SetColWidth(sheet, "F", "F", 24) // delivery date
	_ = f.SetColWidth(sheet, "G", "G", 32) // notes

	w.logger.Info("ledger.sheet.created", "sheet", sheet)
	return nil
}

// SheetNameForDate derives a sortable sheet name from a human-readable
// delivery date: "Friday, January 17, 2025" -> "2025-01-17 (Fri, Jan 17)".
// Unparseable dates fall back to the raw string, clipped to Excel's 31-char
// sheet-name limit.
func SheetNameForDate(deliveryDate string) string {
	deliveryDate = strings.TrimSpace(deliveryDate)

	var parsed time.Time
	var err error
	if i := strings.Index(deliveryDate, ", "); i != -1 {
		// "Friday, January 17, 2025": drop the weekday prefix.
		parsed, err = time.Parse("January 2, 2006", deliveryDate[i+2:])
	} else {
		parsed, err = time.Parse("2006-01-02", deliveryDate)
	}
	if err != nil {
		return clipSheetName(deliveryDate)
	}
	return fmt.Sprintf("%s (%s)", parsed.Format("2006-01-02"), parsed.Format("Mon, Jan 02"))
}

func clipSheetName(name string) string {
	const maxSheetName = 31
	r := []rune(name)
	if len(r) > maxSheetName {
		return string(r[:maxSheetName])
	}
	return name
}

func businessName(address string) string {
	if i := strings.Index(address, ","); i > 0 {
		return strings.TrimSpace(address[:i])
	}
	return constants.UnknownBusiness
}

func formatItems(items []entity.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, strings.TrimSpace(it.Quantity+" "+it.Product))
	}
	return strings.Join(parts, ", ")
}
