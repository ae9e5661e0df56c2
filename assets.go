// Package docanalyzer provides embedded assets for production builds.
package docanalyzer

import "embed"

// In dev mode (IsDev=true) assets are loaded from disk so edits show up without a rebuild.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
