package server

import (
	"io/fs"
	"net/http"
	"strings"
)

// uiFS holds the embedded browser client. Set via SetUI before creating
// the server.
var uiFS fs.FS

// SetUI sets the embedded filesystem for serving the UI.
func SetUI(fsys fs.FS) {
	uiFS = fsys
}

// spaHandler serves static files from the embedded FS with SPA fallback:
// any path that is not a real file returns index.html so client-side
// routing keeps working on refresh.
func spaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if uiFS == nil {
			http.Error(w, "UI not embedded", http.StatusNotFound)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}

		f, err := uiFS.Open(path)
		if err != nil {
			path = "index.html"
		} else {
			f.Close()
		}

		hf, err := http.FS(uiFS).Open(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer hf.Close()
		fi, err := hf.Stat()
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, path, fi.ModTime(), hf)
	}
}
