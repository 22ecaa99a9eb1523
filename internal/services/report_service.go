package services

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/database"
	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
)

// ReportKind names one of the aggregate reports.
type ReportKind string

const (
	ReportSales       ReportKind = "sales"
	ReportPurchases   ReportKind = "purchases"
	ReportExpenses    ReportKind = "expenses"
	ReportProfit      ReportKind = "profit"
	ReportTopProducts ReportKind = "top_products"
	ReportSuppliers   ReportKind = "suppliers"
)

// ReportKinds lists the reports in menu order.
var ReportKinds = []ReportKind{ReportSales, ReportPurchases, ReportExpenses, ReportProfit, ReportTopProducts, ReportSuppliers}

// ParseReportKind validates a report kind typed by the operator.
func ParseReportKind(s string) (ReportKind, error) {
	kind := ReportKind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range ReportKinds {
		if kind == k {
			return kind, nil
		}
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidReportKind, fmt.Sprintf("unknown report %q", s))
}

// Date range presets.
const (
	PresetToday  = "today"
	PresetWeek   = "week"
	PresetMonth  = "month"
	PresetYear   = "year"
	PresetCustom = "custom"
)

// UnspecifiedSupplier labels purchases without a supplier in reports.
const UnspecifiedSupplier = "unspecified"

// topProductsLimit caps the top products table.
const topProductsLimit = 50

// DateRange is an inclusive span of local calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) String() string {
	return day(r.From) + " to " + day(r.To)
}

// PresetRange resolves a preset to a date range relative to now. The
// custom preset parses from and to as YYYY-MM-DD; a missing bound
// defaults to the last 30 days.
func PresetRange(preset string, now time.Time, from, to string) (DateRange, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case PresetToday:
		return DateRange{From: now, To: now}, nil
	case PresetWeek:
		return DateRange{From: now.AddDate(0, 0, -7), To: now}, nil
	case "", PresetMonth:
		return DateRange{From: now.AddDate(0, 0, -30), To: now}, nil
	case PresetYear:
		return DateRange{From: now.AddDate(0, 0, -365), To: now}, nil
	case PresetCustom:
	default:
		return DateRange{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("unknown period %q, use today, week, month, year or custom", preset))
	}

	r := DateRange{From: now.AddDate(0, 0, -30), To: now}
	var err error
	if from = strings.TrimSpace(from); from != "" {
		if r.From, err = ParseDay(from); err != nil {
			return DateRange{}, err
		}
	}
	if to = strings.TrimSpace(to); to != "" {
		if r.To, err = ParseDay(to); err != nil {
			return DateRange{}, err
		}
	}
	if day(r.From) > day(r.To) {
		return DateRange{}, apperrors.ErrInvalidDateRange
	}
	return r, nil
}

// ParseDay parses a YYYY-MM-DD date in local time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// Metric is one labelled figure in a report header.
type Metric struct {
	Label string
	Value decimal.Decimal
}

// Report is the result of a generated report. Columns name the keys of
// each row in display order.
type Report struct {
	Kind    ReportKind
	Range   DateRange
	Metrics []Metric
	Columns []string
	Rows    []database.Row
}

// Empty reports whether the table has no rows.
func (r *Report) Empty() bool {
	return len(r.Rows) == 0
}

// Metric returns the value of the metric with label.
func (r *Report) Metric(label string) (decimal.Decimal, bool) {
	for _, m := range r.Metrics {
		if m.Label == label {
			return m.Value, true
		}
	}
	return decimal.Zero, false
}

func (r *Report) addMetric(label string, value decimal.Decimal) {
	r.Metrics = append(r.Metrics, Metric{Label: label, Value: value})
}

// reportService runs read-only aggregate queries through the gateway.
// Storage faults are logged by the gateway and read as empty results.
type reportService struct {
	gw database.Gateway
}

// NewReportService creates a new ReportServicer.
func NewReportService(gw database.Gateway) ReportServicer {
	return &reportService{gw: gw}
}

// Generate builds the report of kind over dates.
func (s *reportService) Generate(kind ReportKind, dates DateRange) (*Report, error) {
	if day(dates.From) > day(dates.To) {
		return nil, apperrors.ErrInvalidDateRange
	}

	report := &Report{Kind: kind, Range: dates}
	var err error
	switch kind {
	case ReportSales:
		err = s.sales(report)
	case ReportPurchases:
		err = s.purchases(report)
	case ReportExpenses:
		err = s.expenses(report)
	case ReportProfit:
		err = s.profit(report)
	case ReportTopProducts:
		err = s.topProducts(report)
	case ReportSuppliers:
		err = s.suppliers(report)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReportKind, fmt.Sprintf("unknown report %q", kind))
	}
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("Report generated", "kind", kind, "range", dates.String(), "rows", len(report.Rows))
	return report, nil
}

func (s *reportService) sales(r *Report) error {
	totals, err := fetchOne(s.gw, sq.Select(
		"COUNT(*) AS count",
		"COALESCE(SUM(total_syp), 0) AS total_syp",
		"COALESCE(SUM(total_usd), 0) AS total_usd",
		"COALESCE(SUM(discount_syp), 0) AS discount_syp",
		"COALESCE(SUM(discount_usd), 0) AS discount_usd",
	).From("sales").Where(inRange("sale_date", r.Range)))
	if err != nil {
		return err
	}
	r.addMetric("Sales count", decimal.NewFromInt(totals.Int("count")))
	r.addMetric("Total (SYP)", totals.Decimal("total_syp"))
	r.addMetric("Total (USD)", totals.Decimal("total_usd"))
	r.addMetric("Discount (SYP)", totals.Decimal("discount_syp"))
	r.addMetric("Discount (USD)", totals.Decimal("discount_usd"))

	r.Columns = []string{"id", "total_syp", "total_usd", "payment_method", "sale_date"}
	r.Rows, err = fetchAll(s.gw, sq.Select(r.Columns...).
		From("sales").
		Where(inRange("sale_date", r.Range)).
		OrderBy("id DESC"))
	return err
}

func (s *reportService) purchases(r *Report) error {
	totals, err := fetchOne(s.gw, sq.Select(
		"COUNT(*) AS count",
		"COALESCE(SUM(total_syp), 0) AS total_syp",
		"COALESCE(SUM(total_usd), 0) AS total_usd",
		"COALESCE(SUM(paid_amount_syp), 0) AS paid_syp",
		"COALESCE(SUM(paid_amount_usd), 0) AS paid_usd",
	).From("purchases").Where(inRange("purchase_date", r.Range)))
	if err != nil {
		return err
	}
	r.addMetric("Purchases count", decimal.NewFromInt(totals.Int("count")))
	r.addMetric("Total (SYP)", totals.Decimal("total_syp"))
	r.addMetric("Total (USD)", totals.Decimal("total_usd"))
	r.addMetric("Paid (SYP)", totals.Decimal("paid_syp"))
	r.addMetric("Paid (USD)", totals.Decimal("paid_usd"))

	r.Columns = []string{"id", "supplier", "total_syp", "total_usd", "purchase_date"}
	r.Rows, err = fetchAll(s.gw, sq.Select("p.id AS id").
		Column(sq.Expr("COALESCE(s.name, ?) AS supplier", UnspecifiedSupplier)).
		Columns("p.total_syp AS total_syp", "p.total_usd AS total_usd", "p.purchase_date AS purchase_date").
		From("purchases p").
		LeftJoin("suppliers s ON p.supplier_id = s.id").
		Where(inRange("p.purchase_date", r.Range)).
		OrderBy("p.id DESC"))
	return err
}

func (s *reportService) expenses(r *Report) error {
	totals, err := fetchOne(s.gw, sq.Select(
		"COUNT(*) AS count",
		"COALESCE(SUM(amount_syp), 0) AS total_syp",
		"COALESCE(SUM(amount_usd), 0) AS total_usd",
	).From("expenses").Where(inRange("expense_date", r.Range)))
	if err != nil {
		return err
	}
	r.addMetric("Expenses count", decimal.NewFromInt(totals.Int("count")))
	r.addMetric("Total (SYP)", totals.Decimal("total_syp"))
	r.addMetric("Total (USD)", totals.Decimal("total_usd"))

	r.Columns = []string{"category", "count", "total_syp", "total_usd"}
	r.Rows, err = fetchAll(s.gw, sq.Select(
		"category",
		"COUNT(*) AS count",
		"COALESCE(SUM(amount_syp), 0) AS total_syp",
		"COALESCE(SUM(amount_usd), 0) AS total_usd",
	).From("expenses").
		Where(inRange("expense_date", r.Range)).
		GroupBy("category").
		OrderBy("SUM(amount_syp) DESC"))
	return err
}

// profit re-prices goods sold at each product's current purchase price.
func (s *reportService) profit(r *Report) error {
	sales, err := fetchOne(s.gw, sq.Select(
		"COALESCE(SUM(total_syp), 0) AS syp",
		"COALESCE(SUM(total_usd), 0) AS usd",
	).From("sales").Where(inRange("sale_date", r.Range)))
	if err != nil {
		return err
	}

	cogs, err := fetchOne(s.gw, sq.Select(
		"COALESCE(SUM(si.quantity * p.purchase_price_syp), 0) AS syp",
		"COALESCE(SUM(si.quantity * p.purchase_price_usd), 0) AS usd",
	).From("sale_items si").
		Join("sales s ON si.sale_id = s.id").
		Join("products p ON si.product_id = p.id").
		Where(inRange("s.sale_date", r.Range)))
	if err != nil {
		return err
	}

	expenses, err := fetchOne(s.gw, sq.Select(
		"COALESCE(SUM(amount_syp), 0) AS syp",
		"COALESCE(SUM(amount_usd), 0) AS usd",
	).From("expenses").Where(inRange("expense_date", r.Range)))
	if err != nil {
		return err
	}

	type line struct {
		label    string
		syp, usd decimal.Decimal
	}
	grossSYP := sales.Decimal("syp").Sub(cogs.Decimal("syp"))
	grossUSD := sales.Decimal("usd").Sub(cogs.Decimal("usd"))
	lines := []line{
		{"Sales", sales.Decimal("syp"), sales.Decimal("usd")},
		{"Cost of goods sold", cogs.Decimal("syp"), cogs.Decimal("usd")},
		{"Gross profit", grossSYP, grossUSD},
		{"Expenses", expenses.Decimal("syp"), expenses.Decimal("usd")},
		{"Net profit", grossSYP.Sub(expenses.Decimal("syp")), grossUSD.Sub(expenses.Decimal("usd"))},
	}

	r.Columns = []string{"metric", "syp", "usd"}
	for _, l := range lines {
		r.addMetric(l.label+" (SYP)", l.syp)
		r.addMetric(l.label+" (USD)", l.usd)
		r.Rows = append(r.Rows, database.Row{"metric": l.label, "syp": l.syp.String(), "usd": l.usd.String()})
	}
	return nil
}

func (s *reportService) topProducts(r *Report) error {
	var err error
	r.Columns = []string{"product_name", "quantity", "total_syp", "total_usd"}
	r.Rows, err = fetchAll(s.gw, sq.Select(
		"si.product_name AS product_name",
		"SUM(si.quantity) AS quantity",
		"COALESCE(SUM(si.subtotal_syp), 0) AS total_syp",
		"COALESCE(SUM(si.subtotal_usd), 0) AS total_usd",
	).From("sale_items si").
		Join("sales s ON si.sale_id = s.id").
		Where(inRange("s.sale_date", r.Range)).
		GroupBy("si.product_name").
		OrderBy("SUM(si.quantity) DESC").
		Limit(topProductsLimit))
	return err
}

// suppliers lists current debts and ignores the date range.
func (s *reportService) suppliers(r *Report) error {
	var err error
	r.Columns = []string{"name", "purchases", "debt_syp", "debt_usd", "phone"}
	r.Rows, err = fetchAll(s.gw, sq.Select(
		"s.name AS name",
		"COUNT(p.id) AS purchases",
		"s.debt_syp AS debt_syp",
		"s.debt_usd AS debt_usd",
		"s.phone AS phone",
	).From("suppliers s").
		LeftJoin("purchases p ON s.id = p.supplier_id").
		GroupBy("s.id").
		OrderBy("s.debt_syp DESC"))
	if err != nil {
		return err
	}

	var debtSYP, debtUSD decimal.Decimal
	for _, row := range r.Rows {
		debtSYP = debtSYP.Add(row.Decimal("debt_syp"))
		debtUSD = debtUSD.Add(row.Decimal("debt_usd"))
	}
	r.addMetric("Suppliers", decimal.NewFromInt(int64(len(r.Rows))))
	r.addMetric("Total debt (SYP)", debtSYP)
	r.addMetric("Total debt (USD)", debtUSD)
	return nil
}

// fetchOne runs an aggregate query. A fault reads as an all-zero row.
func fetchOne(gw database.Gateway, b sq.SelectBuilder) (database.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	row, ok := gw.FetchOne(query, args...)
	if !ok {
		return database.Row{}, nil
	}
	return row, nil
}

// fetchAll runs a table query. A fault reads as no rows.
func fetchAll(gw database.Gateway, b sq.SelectBuilder) ([]database.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return gw.FetchAll(query, args...), nil
}

func inRange(column string, r DateRange) sq.Sqlizer {
	return sq.Expr(localDate(column)+" BETWEEN ? AND ?", day(r.From), day(r.To))
}
