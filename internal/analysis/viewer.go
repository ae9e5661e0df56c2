// Package analysis drives the per-document analysis panel: tab selection,
// one fetch per selection, JSON field decoding and stale-response discard.
package analysis

import (
	"context"
	"log/slog"

	"github.com/target/docanalyzer-ui/internal/domain/document"
	"github.com/target/docanalyzer-ui/internal/jsonview"
)

// Analyzer is the backend call the viewer needs.
type Analyzer interface {
	AnalyzeDocument(ctx context.Context, id int64) (*document.Analysis, error)
}

// State is the panel state after a load.
type State string

const (
	StateReady State = "ready"
	StateError State = "error"
	StateEmpty State = "empty"
	// StateStale means the selection changed while the request was in flight; discard the result.
	StateStale State = "stale"
)

// View is a decoded analysis ready for display.
type View struct {
	Summary        string
	KeyInformation jsonview.Field
	RiskAssessment jsonview.Field
}

// Result is the outcome of Load.
type Result struct {
	Ticket Ticket
	State  State
	View   *View
	Err    error
}

// Viewer loads analyses for tickets issued by a Tracker.
type Viewer struct {
	tracker *Tracker
	logger  *slog.Logger
}

// NewViewer creates a Viewer bound to tracker.
func NewViewer(tracker *Tracker, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{tracker: tracker, logger: logger}
}

// Tracker returns the selection tracker.
func (v *Viewer) Tracker() *Tracker { return v.tracker }

// Load requests the analysis for tk exactly once. A ticket that is no longer
// current, before or after the request, yields StateStale.
func (v *Viewer) Load(ctx context.Context, api Analyzer, tk Ticket) Result {
	if !v.tracker.IsCurrent(tk) {
		return Result{Ticket: tk, State: StateStale}
	}

	a, err := api.AnalyzeDocument(ctx, tk.DocumentID)

	if !v.tracker.IsCurrent(tk) {
		v.logger.DebugContext(ctx, "discarding stale analysis response",
			"document_id", tk.DocumentID, "generation", tk.Generation)
		return Result{Ticket: tk, State: StateStale}
	}
	if err != nil {
		return Result{Ticket: tk, State: StateError, Err: err}
	}
	if a == nil {
		return Result{Ticket: tk, State: StateEmpty}
	}
	return Result{Ticket: tk, State: StateReady, View: v.Decode(ctx, a)}
}

// Decode turns an Analysis into a View. Undecodable JSON fields are logged and kept raw.
func (v *Viewer) Decode(ctx context.Context, a *document.Analysis) *View {
	view := &View{
		Summary:        a.Summary,
		KeyInformation: jsonview.DecodeField(a.KeyInformation),
		RiskAssessment: jsonview.DecodeField(a.RiskAssessment),
	}
	if err := view.KeyInformation.Err; err != nil {
		v.logger.WarnContext(ctx, "failed to parse key_information JSON", "error", err)
	}
	if err := view.RiskAssessment.Err; err != nil {
		v.logger.WarnContext(ctx, "failed to parse risk_assessment JSON", "error", err)
	}
	return view
}
