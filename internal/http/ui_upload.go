package httpx

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/target/docanalyzer-ui/internal/domain/document"
	apperrors "github.com/target/docanalyzer-ui/internal/errors"
	"github.com/target/docanalyzer-ui/internal/http/ui/viewmodel"
)

const (
	uploadField           = "file"
	errMsgSelectFile      = "Please select a file to upload."
	msgUploadSucceeded    = "Uploaded %s."
	eventDocumentsRefresh = "documents:refresh"
	eventUploadSucceeded  = "upload:success"
	// multipartSlack covers boundaries, part headers and small fields around the file.
	multipartSlack = 64 << 10
)

var errUploadTooLarge = errors.New("upload exceeds the size limit")

// Upload streams the selected file to the backend. A missing file is rejected
// before any network call. On success htmx refreshes the list and resets the
// form; on failure only the status area is swapped so the selection survives.
// POST /documents/upload.
func (h *UIHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	_, api, err := h.backendFor(r)
	if err != nil {
		h.renderUploadError(w, r, err)
		return
	}

	if h.MaxUploadBytes > 0 {
		if r.ContentLength > h.MaxUploadBytes+multipartSlack {
			h.renderUploadError(w, r, h.tooLarge())
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+multipartSlack)
	}

	up, closeFn, err := h.uploadFromRequest(r)
	if err != nil {
		h.renderUploadError(w, r, err)
		return
	}
	defer closeFn()

	doc, err := api.UploadDocument(r.Context(), up)
	if err != nil && uploadExceeded(up, err) {
		err = h.tooLarge()
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "upload failed", "filename", up.Filename, "error", err)
		h.renderUploadError(w, r, err)
		return
	}

	h.logger().InfoContext(r.Context(), "document uploaded", "document_id", doc.ID, "filename", doc.Filename)
	if !IsHTMX(r) {
		http.Redirect(w, r, fmt.Sprintf("/dashboard?document=%d", doc.ID), http.StatusSeeOther)
		return
	}
	HTMX(w).Triggers(map[string]any{
		eventDocumentsRefresh: nil,
		eventUploadSucceeded:  map[string]any{"id": doc.ID, "filename": doc.Filename},
	})
	h.renderFragment(w, r, 0, tmplUploadStatus, viewmodel.UploadStatus{
		Success:  true,
		Message:  fmt.Sprintf(msgUploadSucceeded, doc.Filename),
		Document: doc,
	})
}

func (h *UIHandlers) tooLarge() error {
	return apperrors.ValidationField(uploadField,
		"The file is too large. The limit is "+humanize.Bytes(uint64(h.MaxUploadBytes))+".")
}

// uploadFromRequest locates the file part. When the form was already parsed
// (the CSRF check reads form fields from non-htmx posts) the parsed file is
// used; otherwise the body is streamed part by part.
func (h *UIHandlers) uploadFromRequest(r *http.Request) (document.Upload, func(), error) {
	noop := func() {}
	if r.MultipartForm != nil {
		return h.uploadFromParsedForm(r)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return document.Upload{}, noop, apperrors.ValidationField(uploadField, errMsgSelectFile)
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return document.Upload{}, noop, apperrors.ValidationField(uploadField, errMsgSelectFile)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return document.Upload{}, noop, h.tooLarge()
		}
		if err != nil {
			return document.Upload{}, noop, apperrors.Wrap(err, apperrors.ErrCodeValidation, "The upload could not be read.")
		}
		if part.FormName() != uploadField || part.FileName() == "" {
			_ = part.Close()
			continue
		}
		up := document.Upload{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Body:        h.limit(part),
		}
		return up, func() { _ = part.Close() }, nil
	}
}

func (h *UIHandlers) uploadFromParsedForm(r *http.Request) (document.Upload, func(), error) {
	noop := func() {}
	file, header, err := r.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) || (err == nil && header.Filename == "") {
		return document.Upload{}, noop, apperrors.ValidationField(uploadField, errMsgSelectFile)
	}
	if err != nil {
		return document.Upload{}, noop, apperrors.Wrap(err, apperrors.ErrCodeValidation, "The upload could not be read.")
	}
	if h.MaxUploadBytes > 0 && header.Size > h.MaxUploadBytes {
		_ = file.Close()
		return document.Upload{}, noop, h.tooLarge()
	}
	up := document.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
	return up, func() { _ = file.Close() }, nil
}

func (h *UIHandlers) limit(part *multipart.Part) io.Reader {
	if h.MaxUploadBytes <= 0 {
		return part
	}
	return &capReader{r: part, remaining: h.MaxUploadBytes}
}

// uploadExceeded reports whether a failed upload was cut off by a size limit.
// The backend may answer before the transport surfaces the read error, so the
// cap reader's own flag is checked as well.
func uploadExceeded(up document.Upload, err error) bool {
	var maxErr *http.MaxBytesError
	if errors.Is(err, errUploadTooLarge) || errors.As(err, &maxErr) {
		return true
	}
	c, ok := up.Body.(*capReader)
	return ok && c.exceeded.Load()
}

// capReader fails with errUploadTooLarge once more than remaining bytes are read.
// It is read by the upload goroutine and checked by the handler.
type capReader struct {
	r         io.Reader
	remaining int64
	exceeded  atomic.Bool
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, errUploadTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		c.exceeded.Store(true)
		return n, errUploadTooLarge
	}
	return n, err
}

func (h *UIHandlers) renderUploadError(w http.ResponseWriter, r *http.Request, err error) {
	status := UploadStatusFor(err)
	if !IsHTMX(r) {
		data := NewTemplateData(r, dashboardMeta()).Build()
		h.fillDashboard(r, data)
		data["Upload"] = status
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(DetermineErrorStatus(err))
		h.renderPage(w, r, data)
		return
	}
	h.renderFragment(w, r, DetermineErrorStatus(err), tmplUploadStatus, status)
}

// UploadStatusFor converts an upload failure into the status-area view.
func UploadStatusFor(err error) viewmodel.UploadStatus {
	return viewmodel.UploadStatus{Message: apperrors.UserMessage(err)}
}
