package controller

import (
	"net/http"
	"net/http/pprof"
	"strings"
)

// Pprof serves the net/http/pprof handlers below prefix, e.g. "/debug/pprof/".
// Named profiles (heap, goroutine, allocs and so on) resolve through the index.
func Pprof(prefix string) http.Handler {
	prefix = "/" + strings.Trim(prefix, "/") + "/"

	mux := http.NewServeMux()
	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		// pprof.Index expects the /debug/pprof/ layout
		name := strings.TrimPrefix(r.URL.Path, prefix)
		if name == "" {
			pprof.Index(w, r)

			return
		}
		pprof.Handler(name).ServeHTTP(w, r)
	})
	mux.HandleFunc(prefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"profile", pprof.Profile)
	mux.HandleFunc(prefix+"symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"trace", pprof.Trace)

	return mux
}
