// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"io"
	"io/fs"
	"net/http"
	"time"
)

// serveFileFS mirrors http.ServeFileFS (added in Go 1.22) for toolchains
// that predate it.
func serveFileFS(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	f, err := fsys.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	var modTime time.Time
	if !info.ModTime().IsZero() {
		modTime = info.ModTime()
	}
	http.ServeContent(w, r, name, modTime, rs)
}

// dashboardHandler serves the embedded single-page dashboard.
type dashboardHandler struct{}

// newDashboardHandler creates a new dashboard handler.
func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	serveFileFS(w, r, dashboardFS, "dashboard.html")
}

// HandleRoot serves the dashboard at / and 404s everything else, keeping
// the catch-all route from swallowing typos.
func (h *dashboardHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	serveFileFS(w, r, dashboardFS, "dashboard.html")
}
