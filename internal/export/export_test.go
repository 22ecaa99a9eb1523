package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/database"
	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

func expensesReport() *services.Report {
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local)
	return &services.Report{
		Kind:    services.ReportExpenses,
		Range:   services.DateRange{From: day, To: day.AddDate(0, 0, 30)},
		Columns: []string{"category", "count", "total_syp", "total_usd"},
		Rows: []database.Row{
			{"category": "rent", "count": int64(1), "total_syp": 250000.0, "total_usd": 0.0},
			{"category": "water, sewage", "count": int64(2), "total_syp": 12000.5, "total_usd": 3.123456789},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteReportCSV(t *testing.T) {
	t.Run("header_and_full_precision", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exports", "expenses.csv")
		require.NoError(t, WriteReportCSV(path, expensesReport()))

		records := readCSV(t, path)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"category", "count", "total_syp", "total_usd"}, records[0])
		assert.Equal(t, []string{"rent", "1", "250000", "0"}, records[1])
		assert.Equal(t, []string{"water, sewage", "2", "12000.5", "3.123456789"}, records[2])
	})

	t.Run("empty_report_is_refused", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		report := expensesReport()
		report.Rows = nil

		err := WriteReportCSV(path, report)
		assert.ErrorIs(t, err, apperrors.ErrNothingToExport)
		assert.NoFileExists(t, path)
	})

	t.Run("write_failure_names_the_reason", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := WriteReportCSV(filepath.Join(blocker, "report.csv"), expensesReport())
		require.ErrorIs(t, err, apperrors.ErrExportFailed)
		assert.Equal(t, apperrors.KindStorage, apperrors.KindOf(err))
		assert.Contains(t, err.Error(), "not-a-dir")
	})
}

func TestDefaultReportName(t *testing.T) {
	assert.Equal(t, "report_expenses_20260501_20260531.csv", DefaultReportName(expensesReport()))
}

func TestWriteReceipt(t *testing.T) {
	sale := &models.Sale{
		ID:            42,
		TotalSYP:      decimal.NewFromInt(224000),
		TotalUSD:      decimal.RequireFromString("112.5"),
		DiscountSYP:   decimal.NewFromInt(1000),
		PaymentMethod: models.PaymentCash,
		Notes:         "regular customer",
		SaleDate:      time.Now(),
		Items: []models.SaleItem{{
			ProductName:  "Sugar 1kg",
			Quantity:     45,
			UnitPriceSYP: decimal.NewFromInt(5000),
			UnitPriceUSD: decimal.RequireFromString("2.5"),
			SubtotalSYP:  decimal.NewFromInt(225000),
			SubtotalUSD:  decimal.RequireFromString("112.5"),
		}},
	}

	dir := filepath.Join(t.TempDir(), "receipts")
	path, err := WriteReceipt(sale, dir, "Corner Market")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "receipt_42.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF", "expected a PDF header")
}
