package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
)

// WriteReceipt renders a committed sale as a small receipt-sized PDF in
// dir and returns the file path. The file is named after the sale ID.
func WriteReceipt(sale *models.Sale, dir, storeName string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", exportFailed(dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("receipt_%d.pdf", sale.ID))

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: 140 + 5*float64(len(sale.Items))},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr(storeName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Sale #%d", sale.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, sale.SaleDate.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	nameW := contentW * 0.40
	qtyW := contentW * 0.14
	sypW := contentW * 0.26
	usdW := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(nameW, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(sypW, 5, "SYP", "B", 0, "R", false, 0, "")
	pdf.CellFormat(usdW, 5, "USD", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := []rune(item.ProductName)
		if len(name) > 20 {
			name = append(name[:19], '.')
		}
		pdf.CellFormat(nameW, 5, tr(string(name)), "", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 5, decimal.NewFromFloat(item.Quantity).String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(sypW, 5, item.SubtotalSYP.StringFixed(0), "", 0, "R", false, 0, "")
		pdf.CellFormat(usdW, 5, item.SubtotalUSD.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	labelW := nameW + qtyW
	if !sale.DiscountSYP.IsZero() || !sale.DiscountUSD.IsZero() {
		pdf.CellFormat(labelW, 5, "Discount:", "", 0, "L", false, 0, "")
		pdf.CellFormat(sypW, 5, "-"+sale.DiscountSYP.StringFixed(0), "", 0, "R", false, 0, "")
		pdf.CellFormat(usdW, 5, "-"+sale.DiscountUSD.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(sypW, 6, sale.TotalSYP.StringFixed(0), "", 0, "R", false, 0, "")
	pdf.CellFormat(usdW, 6, sale.TotalUSD.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Paid by "+string(sale.PaymentMethod), "", 1, "L", false, 0, "")
	if sale.Notes != "" {
		pdf.MultiCell(contentW, 4, tr(sale.Notes), "", "L", false)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for shopping with us", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", exportFailed(path, err)
	}

	logger.Get().Infow("Receipt written", "sale_id", sale.ID, "path", path)
	return path, nil
}
