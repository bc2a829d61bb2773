package middleware

import (
	"net/http"
	"strings"
)

const MethodOverrideParam = "_method"

var overridable = map[string]bool{
	http.MethodPatch:  true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// MethodOverride lets HTML forms reach PATCH, PUT and DELETE routes by posting
// a _method field or query parameter. It wraps the engine because gin picks the
// route before any gin middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.URL.Query().Get(MethodOverrideParam)
			if method == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				method = r.PostFormValue(MethodOverrideParam)
			}
			if method = strings.ToUpper(strings.TrimSpace(method)); overridable[method] {
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}
