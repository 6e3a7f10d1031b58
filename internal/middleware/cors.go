package middleware

import "net/http"

// CORS sets permissive cross-origin headers on every response before the
// rest of the chain runs.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
		h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")

		next.ServeHTTP(w, r)
	})
}
