package http

import (
	nethttp "net/http"
	"strings"
)

// UploadsPrefix is the URL path saved photos are served under.
const UploadsPrefix = "/uploads/"

// NewRouter mounts the API handler and, when uploadsDir is set, serves saved photos.
func NewRouter(api nethttp.Handler, uploadsDir string) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.Handle("/", api)
	if uploadsDir != "" {
		files := nethttp.StripPrefix(UploadsPrefix, nethttp.FileServer(nethttp.Dir(uploadsDir)))
		mux.Handle("GET "+UploadsPrefix, noListing(files))
	}
	return mux
}

// noListing hides directory indexes.
func noListing(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			nethttp.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
