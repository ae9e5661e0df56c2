// Package devseed fills a development backend with a demo account and a few
// sample contracts so the dashboard has something to show.
package devseed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/docanalyzer-ui/internal/domain/document"
	apperrors "github.com/target/docanalyzer-ui/internal/errors"
	"github.com/target/docanalyzer-ui/internal/ports"
)

// Default demo account.
const (
	DefaultUsername = "demo"
	DefaultEmail    = "demo@example.com"
	DefaultPassword = "demo-password"
)

// Sample is one seeded document.
type Sample struct {
	Filename    string
	ContentType string
	Body        string
}

// Samples are uploaded when no document with the same filename exists.
//
//nolint:gochecknoglobals // static read-only seed data
var Samples = []Sample{
	{
		Filename:    "sample-lease.txt",
		ContentType: "text/plain",
		Body: `RESIDENTIAL LEASE AGREEMENT
This lease is made between Acme Properties LLC ("Landlord") and Jordan Smith ("Tenant").
Term: twelve (12) months beginning March 1.
Rent: $1,800 per month, due on the first day of each month. A late fee of 5% applies after the 5th.
Security deposit: $3,600, refundable within 30 days of move-out less lawful deductions.
Either party may terminate with 60 days written notice after the first six months.
`,
	},
	{
		Filename:    "sample-nda.txt",
		ContentType: "text/plain",
		Body: `MUTUAL NON-DISCLOSURE AGREEMENT
Northwind Traders and Contoso Ltd agree to keep Confidential Information secret for three (3) years.
Confidential Information excludes information that is public or independently developed.
Disputes are governed by the laws of the State of Delaware.
There is no limitation of liability for breach of this agreement.
`,
	},
}

// Options configures Seed. Empty fields use the demo defaults.
type Options struct {
	Username string
	Email    string
	Password string
	Logger   *slog.Logger
}

func (o *Options) defaults() {
	if o.Username == "" {
		o.Username = DefaultUsername
	}
	if o.Email == "" {
		o.Email = DefaultEmail
	}
	if o.Password == "" {
		o.Password = DefaultPassword
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Result reports what Seed changed.
type Result struct {
	Username   string
	Registered bool
	Uploaded   []document.Document
	Skipped    []string
}

// Seed registers the demo account (an existing account is reused), logs in
// and uploads every sample the account does not have yet. It is safe to run
// repeatedly.
func Seed(ctx context.Context, api ports.BackendAPI, opts Options) (Result, error) {
	opts.defaults()
	res := Result{Username: opts.Username}

	_, err := api.Register(ctx, document.Registration{
		Username: opts.Username,
		Email:    opts.Email,
		Password: opts.Password,
	})
	switch {
	case err == nil:
		res.Registered = true
	case apperrors.IsValidation(err):
		opts.Logger.InfoContext(ctx, "reusing existing demo account", "username", opts.Username, "detail", apperrors.UserMessage(err))
	default:
		return res, fmt.Errorf("register demo account: %w", err)
	}

	if err := api.Login(ctx, document.Credentials{Username: opts.Username, Password: opts.Password}); err != nil {
		return res, fmt.Errorf("log in demo account: %w", err)
	}

	docs, err := api.ListDocuments(ctx)
	if err != nil {
		return res, fmt.Errorf("list documents: %w", err)
	}
	existing := make(map[string]bool, len(docs))
	for _, d := range docs {
		existing[d.Filename] = true
	}

	for _, s := range Samples {
		if existing[s.Filename] {
			res.Skipped = append(res.Skipped, s.Filename)
			continue
		}
		doc, err := api.UploadDocument(ctx, document.Upload{
			Filename:    s.Filename,
			ContentType: s.ContentType,
			Body:        strings.NewReader(s.Body),
		})
		if err != nil {
			return res, fmt.Errorf("upload %s: %w", s.Filename, err)
		}
		opts.Logger.InfoContext(ctx, "seeded document", "document_id", doc.ID, "filename", doc.Filename)
		res.Uploaded = append(res.Uploaded, *doc)
	}
	return res, nil
}
