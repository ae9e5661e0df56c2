package cli

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/target/docanalyzer-ui/internal/analysis"
	"github.com/target/docanalyzer-ui/internal/domain/document"
	"github.com/target/docanalyzer-ui/internal/http/uiutil"
	"github.com/target/docanalyzer-ui/internal/jsonview"
)

const (
	defaultContentType = "application/octet-stream"
	tabAll             = "all"
	maxFilenameColumn  = 48
)

func newDocumentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "List, upload and analyze documents",
	}
	cmd.AddCommand(
		newListCmd(app),
		newUploadCmd(app),
		newAnalyzeCmd(app),
	)
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your documents",
		Args:    noArgs,
		RunE: requireLogin(app, func(cmd *cobra.Command, _ []string) error {
			docs, err := app.api.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				app.printf("No documents yet. Upload one with `docanalyzer documents upload <file>`.\n")
				return nil
			}
			return writeDocuments(app.Out, docs)
		}),
	}
}

func writeDocuments(out io.Writer, docs []document.Document) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tFILENAME\tSTATUS\tUPLOADED\tSIZE")
	for _, d := range docs {
		uploaded := d.UploadDate
		if t, ok := d.UploadedAt(); ok {
			uploaded = uiutil.FriendlyRelativeTime(t)
		}
		size := ""
		if d.FileSize > 0 {
			size = uiutil.FileSize(d.FileSize)
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			d.ID, uiutil.TruncateWithEllipsis(d.Filename, maxFilenameColumn), d.Status, uploaded, size)
	}
	return tw.Flush()
}

func newUploadCmd(app *App) *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document for analysis",
		Args:  exactArgs(1),
		RunE: requireLogin(app, func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			if contentType == "" {
				contentType = contentTypeFor(path)
			}
			doc, err := app.api.UploadDocument(cmd.Context(), document.Upload{
				Filename:    filepath.Base(path),
				ContentType: contentType,
				Body:        f,
			})
			if err != nil {
				return err
			}
			app.printf("Uploaded %s (id %d, %s).\n", doc.Filename, doc.ID, doc.Status)
			return nil
		}),
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "override the detected content type")
	return cmd
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return defaultContentType
}

func newAnalyzeCmd(app *App) *cobra.Command {
	var tab string
	cmd := &cobra.Command{
		Use:   "analyze <document-id>",
		Short: "Show the analysis of a document",
		Long: "Show the analysis of a document. --tab selects summary, key_information, " +
			"risk_assessment or all.",
		Args: exactArgs(1),
		RunE: requireLogin(app, func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return usageError{err: fmt.Errorf("invalid document id %q", args[0])}
			}
			tabs, err := tabsFor(tab)
			if err != nil {
				return err
			}

			ticket := app.viewer.Tracker().Select(cliScope, id)
			res := app.viewer.Load(cmd.Context(), app.api, ticket)
			switch res.State {
			case analysis.StateError:
				return res.Err
			case analysis.StateEmpty:
				return errors.New("no analysis is available for this document")
			case analysis.StateStale:
				return nil
			}
			return writeView(app.Out, res.View, tabs)
		}),
	}
	cmd.Flags().StringVar(&tab, "tab", string(analysis.DefaultTab), "summary, key_information, risk_assessment or all")
	return cmd
}

func tabsFor(flag string) ([]analysis.Tab, error) {
	flag = strings.TrimSpace(flag)
	if flag == tabAll {
		return analysis.Tabs(), nil
	}
	tab := analysis.ParseTab(flag)
	if string(tab) != flag {
		return nil, usageError{err: fmt.Errorf("unknown tab %q", flag)}
	}
	return []analysis.Tab{tab}, nil
}

func writeView(out io.Writer, view *analysis.View, tabs []analysis.Tab) error {
	for i, tab := range tabs {
		if len(tabs) > 1 {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			_, _ = fmt.Fprintf(out, "== %s ==\n", tab.Label())
		}
		var err error
		switch tab {
		case analysis.TabKeyInformation:
			err = writeField(out, view.KeyInformation)
		case analysis.TabRiskAssessment:
			err = writeField(out, view.RiskAssessment)
		default:
			err = writeSummary(out, view.Summary)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(out io.Writer, summary string) error {
	if strings.TrimSpace(summary) == "" {
		summary = jsonview.NotAvailable
	}
	_, err := fmt.Fprintln(out, summary)
	return err
}

func writeField(out io.Writer, f jsonview.Field) error {
	switch {
	case !f.Present:
		_, err := fmt.Fprintln(out, jsonview.NotAvailable)
		return err
	case !f.Parsed:
		_, err := fmt.Fprintln(out, f.Raw)
		return err
	default:
		return jsonview.WriteText(out, f.Tree)
	}
}
