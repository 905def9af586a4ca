package httpapi

import (
	"database/sql"
	"net/http"
)

// NewMux returns a mux serving /healthz and the files under staticDir at
// /static/. Feature modules register their own routes on it.
func NewMux(db *sql.DB, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, db)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return mux
}
