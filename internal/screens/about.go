package screens

// AppInfo describes the running application.
type AppInfo struct {
	Name      string
	Version   string
	StoreName string
	DBPath    string
}

var features = []string{
	"Products and categories",
	"Point of sale in SYP and USD",
	"Purchases and supplier debts",
	"Inventory levels and adjustments",
	"Expenses",
	"Reports with CSV export",
	"PDF sale receipts",
}

// AboutScreen shows the application name, version and database location.
type AboutScreen struct {
	info AppInfo
}

// NewAboutScreen creates an about screen.
func NewAboutScreen(info AppInfo) *AboutScreen {
	return &AboutScreen{info: info}
}

func (s *AboutScreen) Name() string      { return "about" }
func (s *AboutScreen) Title() string     { return "About" }
func (s *AboutScreen) Actions() []string { return []string{"show"} }

func (s *AboutScreen) Do(action string, _ Form) (*View, error) {
	if action != "" && action != "show" {
		return nil, unknownAction(s, action)
	}

	summary := []string{
		s.info.Name + " " + s.info.Version,
		"Store: " + s.info.StoreName,
		"Database: " + s.info.DBPath,
		"",
		"Features:",
	}
	for _, f := range features {
		summary = append(summary, "  - "+f)
	}
	return &View{Title: s.Title(), Summary: summary}, nil
}
