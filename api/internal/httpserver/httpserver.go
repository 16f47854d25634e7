package httpserver

import (
	"log"
	"net/http"
)

// StartHTTP serves the health endpoint on the default mux and blocks. The
// bot's webhook handler registers itself on the same mux, so this doubles as
// the webhook listener. ready is optional; when set, a failing check turns
// /healthz into a 503.
func StartHTTP(addr string, ready func() error) error {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if ready != nil {
			if err := ready(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ok\n" + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("would-you-rather bot"))
	})
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
