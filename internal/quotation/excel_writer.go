// Package quotation renders a submitted vendor Bill of Quantities as an
// Excel workbook so the surrounding product can offer it as a download.
package quotation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/wizard"
)

const sheetName = "Quotation"

// Row where the item table starts; rows above hold the header block.
const itemTableStart = 9

// ExcelWriter writes submission workbooks into an output directory.
type ExcelWriter struct {
	outputDir string
	logger    *zap.Logger
}

// NewExcelWriter creates a writer targeting the given directory.
func NewExcelWriter(outputDir string, logger *zap.Logger) (*ExcelWriter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &ExcelWriter{outputDir: outputDir, logger: logger}, nil
}

// Export writes the submission to an .xlsx file and returns its path.
// Only vendor submissions carry a quotation to export.
func (w *ExcelWriter) Export(ctx context.Context, sub *entity.Submission) (string, error) {
	if sub.Role != entity.RoleVendor || sub.Quotation == nil {
		return "", fmt.Errorf("submission %s has no quotation to export", sub.InvitationID)
	}

	w.logger.Info("Exporting quotation workbook",
		zap.String("invitation_id", sub.InvitationID),
		zap.String("quotation_number", sub.Quotation.Number),
		zap.Int("items", len(sub.Items)))

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	w.setCell(f, "A1", "Quotation")
	w.setCell(f, "A2", "Number")
	w.setCell(f, "B2", sub.Quotation.Number)
	w.setCell(f, "A3", "Organization")
	w.setCell(f, "B3", sub.Profile[wizard.FieldOrganizationName])
	w.setCell(f, "A4", "Submitted")
	w.setCell(f, "B4", sub.SubmittedAt.Format("2006-01-02 15:04"))
	w.setCell(f, "A5", "Validity")
	w.setCell(f, "B5", sub.Quotation.ValidityPeriod)
	w.setCell(f, "A6", "Payment Terms")
	w.setCell(f, "B6", sub.Quotation.PaymentTerms)
	w.setCell(f, "A7", "Warranty")
	w.setCell(f, "B7", sub.Quotation.Warranty)

	headers := []string{"Code", "Description", "Category", "Unit", "Quantity", "Unit Price", "Total"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, itemTableStart)
		w.setCell(f, cell, h)
	}
	for i, item := range sub.Items {
		row := itemTableStart + 1 + i
		values := []interface{}{
			item.Code, item.Description, string(item.Category), string(item.Unit),
			item.Quantity, item.UnitPrice, item.TotalPrice,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			w.setCell(f, cell, v)
		}
	}

	totalRow := itemTableStart + 1 + len(sub.Items)
	totalLabel, _ := excelize.CoordinatesToCellName(6, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(7, totalRow)
	w.setCell(f, totalLabel, "Grand Total")
	w.setCell(f, totalCell, sub.TotalValue)

	path := filepath.Join(w.outputDir, w.fileName(sub))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("Quotation workbook written", zap.String("path", path))
	return path, nil
}

func (w *ExcelWriter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		w.logger.Warn("Failed to set cell", zap.String("cell", cell), zap.Error(err))
	}
}

func (w *ExcelWriter) fileName(sub *entity.Submission) string {
	number := sub.Quotation.Number
	if number == "" {
		number = sub.InvitationID
	}
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, number)
	return fmt.Sprintf("quotation_%s_%s.xlsx", sanitized, sub.SubmittedAt.Format("20060102_150405"))
}
