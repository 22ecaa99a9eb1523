// Package export writes report tables as CSV and sale receipts as PDF.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// WriteReportCSV writes the report table to path with a header row.
// Numbers are written at full precision.
func WriteReportCSV(path string, report *services.Report) error {
	if report == nil || report.Empty() {
		return apperrors.ErrNothingToExport
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return exportFailed(path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return exportFailed(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(report.Columns); err != nil {
		return exportFailed(path, err)
	}

	record := make([]string, len(report.Columns))
	for _, row := range report.Rows {
		for i, col := range report.Columns {
			record[i] = row.String(col)
		}
		if err := w.Write(record); err != nil {
			return exportFailed(path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return exportFailed(path, err)
	}
	if err := f.Close(); err != nil {
		return exportFailed(path, err)
	}

	logger.Get().Infow("Report exported", "kind", report.Kind, "rows", len(report.Rows), "path", path)
	return nil
}

// exportFailed surfaces the underlying reason in the message.
func exportFailed(path string, err error) error {
	logger.Get().Errorw("Export failed", "path", path, "error", err)
	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrExportFailed, "Export failed: "+err.Error()), err)
}

// DefaultReportName builds a file name for a report export.
func DefaultReportName(report *services.Report) string {
	return "report_" + string(report.Kind) + "_" + report.Range.From.Format("20060102") + "_" + report.Range.To.Format("20060102") + ".csv"
}
