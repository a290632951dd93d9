package router

import (
	"net/http"

	"github.com/denmor86/balance-console/internal/client"
	"github.com/denmor86/balance-console/internal/config"
	"github.com/denmor86/balance-console/internal/network/handlers"
	"github.com/denmor86/balance-console/internal/network/middleware"
	"github.com/denmor86/balance-console/internal/services"
	"github.com/denmor86/balance-console/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/go-chi/jwtauth/v5"
)

type Router struct {
	Config    config.Config
	Identity  services.IdentityService
	Users     services.UsersService
	Transfers services.TransfersService
}

func NewRouter(config config.Config, backend client.Backend, sessions session.Storage) *Router {
	return &Router{
		Config:    config,
		Identity:  services.NewIdentity(config, backend, sessions),
		Users:     services.NewUsers(backend, sessions, config.Session.TTL),
		Transfers: services.NewTransfers(config, backend, sessions),
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Identity.GetTokenAuth()
	r := chi.NewRouter()
	// консоль открывается из браузера с другого origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	r.Route("/api/console", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Post("/login", handlers.LoginHandler(router.Identity))
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))

			r.Post("/logout", handlers.LogoutHandler(router.Identity))
			r.Post("/register", handlers.RegisterHandler(router.Identity))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", handlers.ListUsersHandler(router.Identity, router.Users))
				r.Get("/{id}", handlers.GetUserHandler(router.Identity, router.Users))
				r.Put("/{id}", handlers.UpdateUserHandler(router.Identity, router.Users))
				r.Delete("/{id}", handlers.DeleteUserHandler(router.Identity, router.Users))
			})

			r.Route("/tree", func(r chi.Router) {
				r.Get("/", handlers.GetTreeHandler(router.Identity, router.Users))
				r.Post("/select", handlers.SelectNodeHandler(router.Identity, router.Users))
				r.Post("/toggle", handlers.ToggleNodeHandler(router.Identity, router.Users))
				r.Post("/menu/open", handlers.OpenMenuHandler(router.Identity, router.Users))
				r.Post("/menu/close", handlers.CloseMenuHandler(router.Identity, router.Users))
				r.Post("/action", handlers.MenuActionHandler(router.Identity, router.Users))
				r.Post("/modal/close", handlers.CloseModalHandler(router.Identity, router.Users))
			})

			r.Route("/transfers", func(r chi.Router) {
				r.Post("/", handlers.MakeTransferHandler(router.Identity, router.Transfers))
				r.Get("/", handlers.TransferHistoryHandler(router.Identity, router.Transfers))
				r.Get("/summary", handlers.TransferSummaryHandler(router.Identity, router.Transfers))
			})
		})
	})
	return r
}
