package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sangamops/mela-backend/internal/middleware"
)

// SetupRoutes wires the dashboard surface. live is the websocket endpoint
// serving view broadcasts; it is injected so this package stays independent
// of the transport.
func SetupRoutes(h *Handlers, fetcher middleware.SessionFetcher, live http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/view", h.ViewHandler)
	r.Handle("/live", live)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(fetcher))
		r.Post("/alerts", h.CreateAlertHandler)
		r.Post("/alerts/{id}/resolve", h.ResolveAlertHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware)
			r.Patch("/zones/{id}", h.UpdateZoneHandler)
			r.Patch("/devices/{id}", h.UpdateDeviceHandler)
		})
	})

	return r
}
