package handlers

import (
	"net/http"
	"time"
)

const indexPage = "index.html"

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if !h.serveAsset(w, r, indexPage) {
		http.NotFound(w, r)
	}
}

// StaticFallback serves the requested frontend file when it exists and the
// index document otherwise, so client side routes resolve.
func (h *Handler) StaticFallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.serveAsset(w, r, r.URL.Path) {
		return
	}
	h.Index(w, r)
}

// serveAsset writes a regular file from the frontend directory. http.Dir
// cleans name and keeps it inside the directory.
func (h *Handler) serveAsset(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := http.Dir(h.frontendDir).Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		return false
	}

	// zero modtime keeps Last-Modified off the response
	http.ServeContent(w, r, fi.Name(), time.Time{}, f)
	return true
}
