package main

import (
	"embed"
	"io/fs"

	"github.com/lazypower/daybook/internal/server"
)

// The ui directory is populated by `make build` which copies the client
// build output here. The checked-in placeholder keeps go:embed happy for
// API-only builds.
//
//go:embed all:ui
var uiDist embed.FS

func init() {
	sub, err := fs.Sub(uiDist, "ui")
	if err != nil {
		return
	}
	server.SetUI(sub)
}
