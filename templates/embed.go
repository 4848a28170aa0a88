package templates

import "embed"

// EmailFS contains the html/template sources of transactional emails.
//
//go:embed email/*.html
var EmailFS embed.FS
