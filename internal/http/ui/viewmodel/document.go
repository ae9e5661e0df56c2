package viewmodel

import (
	"github.com/target/docanalyzer-ui/internal/analysis"
	"github.com/target/docanalyzer-ui/internal/domain/document"
)

// DocumentList is the data behind the document list partial.
type DocumentList struct {
	Documents  []document.Document
	SelectedID int64
	Error      string
}

// Selected reports whether doc is the highlighted document.
func (l DocumentList) Selected(doc document.Document) bool {
	return l.SelectedID != 0 && doc.ID == l.SelectedID
}

// AnalysisPanel is the data behind the analysis container and its fragments.
type AnalysisPanel struct {
	Document   *document.Document
	Generation uint64
	// LoadURL is the fragment endpoint the container posts to on load.
	LoadURL string
	State   analysis.State
	View    *analysis.View
	Error   string
	Tabs    []analysis.Tab
	Active  analysis.Tab
}

// UploadStatus is the data behind the upload status area.
type UploadStatus struct {
	Success  bool
	Message  string
	Document *document.Document
}
