package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/i18n"
)

// Locale stores the best supported Accept-Language match in the request context.
func Locale(translator *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := translator.Match(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), locale)))
		})
	}
}
