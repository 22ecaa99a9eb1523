package screens

import (
	"fmt"
	"time"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// DashboardScreen is the home screen.
type DashboardScreen struct {
	svc services.DashboardServicer
	now func() time.Time
}

// NewDashboardScreen creates a dashboard screen.
func NewDashboardScreen(svc services.DashboardServicer) *DashboardScreen {
	return &DashboardScreen{svc: svc, now: time.Now}
}

func (s *DashboardScreen) Name() string      { return "dashboard" }
func (s *DashboardScreen) Title() string     { return "Dashboard" }
func (s *DashboardScreen) Actions() []string { return []string{"show"} }

func (s *DashboardScreen) Do(action string, _ Form) (*View, error) {
	if action != "" && action != "show" {
		return nil, unknownAction(s, action)
	}

	d, err := s.svc.Summary(s.now())
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"Day", "Sales SYP", "Sales USD"}}
	for _, point := range d.Daily {
		table.Rows = append(table.Rows, []string{point.Day.Format("Mon 01-02"), money(point.SYP), money(point.USD)})
	}

	return &View{
		Title: s.Title(),
		Summary: []string{
			fmt.Sprintf("Today's sales: %s SYP / %s USD", money(d.TodaySalesSYP), money(d.TodaySalesUSD)),
			fmt.Sprintf("Products: %d", d.ProductCount),
			fmt.Sprintf("Low stock: %d", d.LowStockCount),
			fmt.Sprintf("Suppliers: %d", d.SupplierCount),
		},
		Table: table,
	}, nil
}
