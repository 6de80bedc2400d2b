package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templateFS embed.FS

// TemplateFS provides access to the embedded admin view templates.
var TemplateFS fs.FS = templateFS
