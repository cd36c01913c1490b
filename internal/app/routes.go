package app

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vancomm/quantum-mines/internal/config"
	"github.com/vancomm/quantum-mines/internal/handlers"
	"github.com/vancomm/quantum-mines/internal/middleware"
)

func (a *App) loadRoutes() {
	a.router.Use(chimw.Recoverer)
	a.router.Use(middleware.Stack(
		middleware.Cors(a.cfg.AllowedOrigins),
		middleware.Logging(a.logger),
	)...)

	game := handlers.NewGameHandler(a.logger, a.ws, a.cfg.Game)

	routes := func(r chi.Router) {
		r.Get("/healthz", handlers.Healthz)
		r.Get("/play", game.Play)
		r.Get("/replay", game.Replay)
	}
	if base := config.BasePath(); base != "" {
		a.router.Route(base, routes)
	} else {
		routes(a.router)
	}
}
