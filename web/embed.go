// web/embed.go
package web

import "embed"

// Templates holds the dashboard page template.
//
//go:embed templates/*.html
var Templates embed.FS

// Static holds the stylesheet and the wave indicator image served under /static/.
//
//go:embed static
var Static embed.FS
