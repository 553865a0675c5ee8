// Package web holds the embedded single-page presentation surface.
package web

import "embed"

//go:embed index.html app.js
var AssetsFS embed.FS
