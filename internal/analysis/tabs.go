package analysis

// Tab identifies one analysis panel.
type Tab string

const (
	TabSummary        Tab = "summary"
	TabKeyInformation Tab = "key_information"
	TabRiskAssessment Tab = "risk_assessment"
)

// DefaultTab is active whenever a new document is selected.
const DefaultTab = TabSummary

// Tabs lists the panels in display order.
func Tabs() []Tab {
	return []Tab{TabSummary, TabKeyInformation, TabRiskAssessment}
}

// Label returns the display label for t.
func (t Tab) Label() string {
	switch t {
	case TabKeyInformation:
		return "Key Information"
	case TabRiskAssessment:
		return "Risk Assessment"
	default:
		return "Summary"
	}
}

// ParseTab maps a query/flag value to a Tab, defaulting to Summary.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabKeyInformation, TabRiskAssessment:
		return Tab(s)
	default:
		return DefaultTab
	}
}
