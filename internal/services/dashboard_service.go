package services

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/database"
)

// dashboardDays is the length of the daily sales series.
const dashboardDays = 7

// DailySales is one point of the dashboard sales series.
type DailySales struct {
	Day time.Time
	SYP decimal.Decimal
	USD decimal.Decimal
}

// Dashboard holds the home screen figures.
type Dashboard struct {
	TodaySalesSYP decimal.Decimal
	TodaySalesUSD decimal.Decimal
	ProductCount  int64
	LowStockCount int64
	SupplierCount int64
	Daily         []DailySales
}

type dashboardService struct {
	gw database.Gateway
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(gw database.Gateway) DashboardServicer {
	return &dashboardService{gw: gw}
}

// Summary computes the dashboard as of now. The series covers the seven
// days ending today, oldest first, with zero for days without sales.
func (s *dashboardService) Summary(now time.Time) (*Dashboard, error) {
	d := &Dashboard{}

	counts, err := fetchOne(s.gw, sq.Select(
		"(SELECT COUNT(*) FROM products) AS products",
		"(SELECT COUNT(*) FROM products WHERE quantity <= min_quantity) AS low_stock",
		"(SELECT COUNT(*) FROM suppliers) AS suppliers",
	))
	if err != nil {
		return nil, err
	}
	d.ProductCount = counts.Int("products")
	d.LowStockCount = counts.Int("low_stock")
	d.SupplierCount = counts.Int("suppliers")

	first := now.AddDate(0, 0, -(dashboardDays - 1))
	rows, err := fetchAll(s.gw, sq.Select(
		localDate("sale_date")+" AS day",
		"COALESCE(SUM(total_syp), 0) AS syp",
		"COALESCE(SUM(total_usd), 0) AS usd",
	).From("sales").
		Where(inRange("sale_date", DateRange{From: first, To: now})).
		GroupBy("day"))
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]database.Row)
	for _, row := range rows {
		byDay[row.String("day")] = row
	}

	for i := 0; i < dashboardDays; i++ {
		date := first.AddDate(0, 0, i)
		row := byDay[day(date)]
		d.Daily = append(d.Daily, DailySales{Day: date, SYP: row.Decimal("syp"), USD: row.Decimal("usd")})
	}
	today := d.Daily[len(d.Daily)-1]
	d.TodaySalesSYP = today.SYP
	d.TodaySalesUSD = today.USD

	return d, nil
}
