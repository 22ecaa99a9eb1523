package screens

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/database"
	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/export"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// ReportScreen runs reports and exports the one on display.
type ReportScreen struct {
	svc       services.ReportServicer
	dialogs   Dialogs
	exportDir string
	now       func() time.Time
	last      *services.Report
}

// NewReportScreen creates a report screen that exports into exportDir
// unless a path is given.
func NewReportScreen(svc services.ReportServicer, dialogs Dialogs, exportDir string) *ReportScreen {
	return &ReportScreen{svc: svc, dialogs: dialogs, exportDir: exportDir, now: time.Now}
}

func (s *ReportScreen) Name() string  { return "reports" }
func (s *ReportScreen) Title() string { return "Reports" }

func (s *ReportScreen) Actions() []string {
	return []string{"kinds", "run", "export"}
}

func (s *ReportScreen) Do(action string, form Form) (*View, error) {
	switch action {
	case "", "kinds":
		kinds := make([]string, len(services.ReportKinds))
		for i, k := range services.ReportKinds {
			kinds[i] = string(k)
		}
		return &View{
			Title: s.Title(),
			Summary: []string{
				"Reports: " + strings.Join(kinds, ", "),
				"Periods: today, week, month, year, custom (from=YYYY-MM-DD to=YYYY-MM-DD)",
			},
		}, nil
	case "run":
		return s.run(form)
	case "export":
		return s.export(form)
	default:
		return nil, unknownAction(s, action)
	}
}

func (s *ReportScreen) run(form Form) (*View, error) {
	kind, err := services.ParseReportKind(form.Get("kind"))
	if err != nil {
		return nil, err
	}
	dates, err := services.PresetRange(form.Get("period"), s.now(), form.Get("from"), form.Get("to"))
	if err != nil {
		return nil, err
	}

	report, err := s.svc.Generate(kind, dates)
	if err != nil {
		return nil, err
	}
	s.last = report
	return reportView(report), nil
}

func (s *ReportScreen) export(form Form) (*View, error) {
	if s.last == nil || s.last.Empty() {
		return nil, apperrors.ErrNothingToExport
	}

	path := form.Get("path")
	if path == "" {
		path = filepath.Join(s.exportDir, export.DefaultReportName(s.last))
	}
	if err := export.WriteReportCSV(path, s.last); err != nil {
		return nil, err
	}

	s.dialogs.Info("Export", "Report saved to "+path)
	return &View{Title: s.Title(), Message: "Report saved to " + path}, nil
}

func reportView(r *services.Report) *View {
	view := &View{Title: fmt.Sprintf("%s report, %s", strings.ReplaceAll(string(r.Kind), "_", " "), r.Range)}
	if r.Kind == services.ReportSuppliers {
		view.Title = "suppliers report, current debts"
	}

	for _, m := range r.Metrics {
		view.Summary = append(view.Summary, m.Label+": "+money(m.Value))
	}

	if r.Empty() {
		view.Message = "No data for this period"
		return view
	}

	table := &Table{Columns: r.Columns}
	for _, row := range r.Rows {
		cells := make([]string, len(r.Columns))
		for i, col := range r.Columns {
			cells[i] = cell(row, col)
		}
		table.Rows = append(table.Rows, cells)
	}
	view.Table = table
	return view
}

// cell rounds floating sums for display; exports keep full precision.
func cell(row database.Row, col string) string {
	switch v := row[col].(type) {
	case float64:
		return money(decimal.NewFromFloat(v))
	case time.Time:
		return stamp(v)
	}
	return row.String(col)
}
