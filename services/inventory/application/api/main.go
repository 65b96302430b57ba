package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// InventoryRoutes registers inventory endpoints on the provided chi router and
// returns the service container so the caller can Close it on shutdown.
func InventoryRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewGetItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Put("/{itemID}", handlers.NewPutItemHandler(svcs).Execute)
			r.Delete("/{itemID}", handlers.NewDeleteItemHandler(svcs).Execute)
			r.Get("/{itemID}/history", handlers.NewGetItemHistoryHandler(svcs).Execute)
		})
		r.Route("/locations", func(r chi.Router) {
			r.Get("/", handlers.NewGetLocationsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostLocationHandler(svcs).Execute)
			r.Delete("/{name}", handlers.NewDeleteLocationHandler(svcs).Execute)
		})
		r.Get("/stats", handlers.NewGetStatsHandler(svcs, a.Logger).Execute)
	})
	return svcs
}
