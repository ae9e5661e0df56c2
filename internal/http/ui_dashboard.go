package httpx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/target/docanalyzer-ui/internal/analysis"
	"github.com/target/docanalyzer-ui/internal/domain/document"
	apperrors "github.com/target/docanalyzer-ui/internal/errors"
	"github.com/target/docanalyzer-ui/internal/http/ui/viewmodel"
)

const (
	errMsgNoAnalysis    = "No analysis is available for this document yet."
	errMsgBadDocumentID = "Unknown document."
)

func dashboardMeta() PageMeta {
	return PageMeta{Title: "Dashboard", PageTitle: "Documents", CurrentPage: PageDashboard}
}

// parseDocumentID reads a positive document id; ok is false when absent or malformed.
func parseDocumentID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// analysisLoadURL is the fragment endpoint the analysis container posts to once.
func analysisLoadURL(tk analysis.Ticket) string {
	return fmt.Sprintf("/dashboard/documents/%d/analysis?gen=%d", tk.DocumentID, tk.Generation)
}

// Index redirects to the dashboard.
// GET /.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard renders the document list and, when ?document=<id> is set, selects
// that document and renders the analysis container that loads it.
// GET /dashboard.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, dashboardMeta()).Build()
	h.fillDashboard(r, data)
	h.renderPage(w, r, data)
}

// fillDashboard loads the list and the selected document concurrently and adds them to data.
func (h *UIHandlers) fillDashboard(r *http.Request, data map[string]any) {
	ctx := r.Context()
	data["Upload"] = viewmodel.UploadStatus{}
	scope, api, err := h.backendFor(r)
	if err != nil {
		h.logger().ErrorContext(ctx, "dashboard backend unavailable", "error", err)
		data["Documents"] = viewmodel.DocumentList{Error: apperrors.UserMessage(err)}
		return
	}

	selectedID, hasSelection := parseDocumentID(r.URL.Query().Get("document"))

	var (
		docs    []document.Document
		listErr error
		doc     *document.Document
		docErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		docs, listErr = api.ListDocuments(gctx)
		return nil
	})
	if hasSelection {
		g.Go(func() error {
			doc, docErr = api.GetDocument(gctx, selectedID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger().ErrorContext(ctx, "dashboard fetch failed", "error", err)
	}

	list := viewmodel.DocumentList{Documents: docs, SelectedID: selectedID}
	if listErr != nil {
		h.logger().WarnContext(ctx, "listing documents failed", "error", listErr)
		list.Error = apperrors.UserMessage(listErr)
	}
	data["Documents"] = list

	if !hasSelection {
		if raw := r.URL.Query().Get("document"); raw != "" {
			data["Analysis"] = viewmodel.AnalysisPanel{State: analysis.StateError, Error: errMsgBadDocumentID}
		}
		return
	}
	data["Analysis"] = h.selectDocument(ctx, scope, selectedID, doc, docErr)
}

// selectDocument starts a new selection generation and returns the loading panel.
func (h *UIHandlers) selectDocument(
	ctx context.Context,
	scope *RequestScope,
	id int64,
	doc *document.Document,
	docErr error,
) viewmodel.AnalysisPanel {
	tk := h.Viewer.Tracker().Select(scope.ID, id)
	if docErr != nil {
		h.logger().WarnContext(ctx, "loading selected document failed", "document_id", id, "error", docErr)
		return viewmodel.AnalysisPanel{
			Generation: tk.Generation,
			State:      analysis.StateError,
			Error:      apperrors.UserMessage(docErr),
		}
	}
	return viewmodel.AnalysisPanel{
		Document:   doc,
		Generation: tk.Generation,
		LoadURL:    analysisLoadURL(tk),
	}
}

// DocumentsFragment renders only the document list, e.g. after an upload.
// GET /dashboard/documents?selected=<id>.
func (h *UIHandlers) DocumentsFragment(w http.ResponseWriter, r *http.Request) {
	selectedID, _ := parseDocumentID(r.URL.Query().Get("selected"))
	list := viewmodel.DocumentList{SelectedID: selectedID}

	_, api, err := h.backendFor(r)
	if err == nil {
		list.Documents, err = api.ListDocuments(r.Context())
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "listing documents failed", "error", err)
		list.Error = apperrors.UserMessage(err)
	}
	h.renderFragment(w, r, 0, tmplDocumentList, list)
}

// Analysis loads the analysis for one selection generation. A response for a
// selection that has moved on is discarded with 204 so htmx leaves the panel alone.
// POST /dashboard/documents/{id}/analysis?gen=<n>.
func (h *UIHandlers) Analysis(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDocumentID(r.PathValue("id"))
	if !ok {
		h.renderFragment(w, r, http.StatusNotFound, tmplAnalysisPanel,
			viewmodel.AnalysisPanel{State: analysis.StateError, Error: errMsgBadDocumentID})
		return
	}
	gen, err := strconv.ParseUint(r.URL.Query().Get("gen"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	scope, api, err := h.backendFor(r)
	if err != nil {
		h.renderFragment(w, r, 0, tmplAnalysisPanel,
			viewmodel.AnalysisPanel{State: analysis.StateError, Error: apperrors.UserMessage(err)})
		return
	}

	tk := analysis.Ticket{Scope: scope.ID, DocumentID: id, Generation: gen}
	res := h.Viewer.Load(r.Context(), api, tk)
	h.renderAnalysisResult(w, r, res)
}

func (h *UIHandlers) renderAnalysisResult(w http.ResponseWriter, r *http.Request, res analysis.Result) {
	panel := viewmodel.AnalysisPanel{
		Generation: res.Ticket.Generation,
		State:      res.State,
		Tabs:       analysis.Tabs(),
		Active:     analysis.DefaultTab,
	}
	switch res.State {
	case analysis.StateStale:
		w.WriteHeader(http.StatusNoContent)
		return
	case analysis.StateError:
		h.logger().WarnContext(r.Context(), "analysis failed",
			"document_id", res.Ticket.DocumentID, "error", res.Err)
		panel.Error = apperrors.UserMessage(res.Err)
	case analysis.StateEmpty:
		panel.Error = errMsgNoAnalysis
	case analysis.StateReady:
		panel.View = res.View
	}
	h.renderFragment(w, r, 0, tmplAnalysisPanel, panel)
}
