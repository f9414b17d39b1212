package handlers

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	// unmatched paths and methods fall through to the frontend; set before
	// mounting sub routers so they inherit it
	r.NotFound(h.StaticFallback)
	r.MethodNotAllowed(h.StaticFallback)
	r.Get("/", h.Index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/donors", h.ListDonors)
		r.Post("/donors", h.CreateDonor)

		r.Get("/requests", h.ListRequests)
		r.Post("/requests", h.CreateRequest)
		r.Put("/requests/{id:[0-9]+}/status", h.UpdateRequestStatus)

		r.Post("/admin/login", h.AdminLogin)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/ws", h.HandleWebSocket)

		// Secure routes
		r.Group(func(r chi.Router) {
			if h.tokenAuth != nil {
				r.Use(jwtauth.Verifier(h.tokenAuth))
				r.Use(jwtauth.Authenticator)
			}

			r.Get("/health", h.HealthHandler)
		})
	})
}

// InitAuth enables the service token on /v1 operator routes. An empty key
// leaves them open.
func (h *Handler) InitAuth(jwtKey string) {
	if jwtKey == "" {
		log.Warn("JWT_SECRET_KEY not set, /v1/health is unauthenticated")
		return
	}
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"service": "bloodbank",
		"exp":     expirationTime,
	})
	if err != nil {
		log.Errorf("could not issue operator token: %v", err)
		return
	}

	log.Debugf("operator token for /v1 routes: %s", tokenString)
}

// TokenAuth is nil when operator routes are open.
func (h *Handler) TokenAuth() *jwtauth.JWTAuth {
	return h.tokenAuth
}
