package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// ConfigureCORS wraps handler with CORS middleware. An empty origin list allows any origin.
func ConfigureCORS(handler http.Handler, allowedOrigins []string) http.Handler {

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	corsConfig := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})

	corsHandler := corsConfig.Handler(handler)

	return corsHandler
}
