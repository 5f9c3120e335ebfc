package container

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/samber/do"
	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/events"
	"github.com/serroba/shortlinks/internal/handlers"
	"github.com/serroba/shortlinks/internal/health"
	"github.com/serroba/shortlinks/internal/middleware"
	"github.com/serroba/shortlinks/internal/shortener"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		opts := do.MustInvoke[*Options](i)

		router := chi.NewMux()
		router.Use(chimw.RequestID)
		router.Use(chimw.RealIP)
		router.Use(chimw.Recoverer)
		router.Use(gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(opts.AllowedOrigins()),
			gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
			gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
			gorillahandlers.ExposedHeaders([]string{"Location"}),
		))

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		directory, err := do.Invoke[*shortener.Directory](i)
		if err != nil {
			return nil, err
		}

		accounts, err := do.Invoke[*auth.Service](i)
		if err != nil {
			return nil, err
		}

		tokens, err := do.Invoke[*auth.TokenIssuer](i)
		if err != nil {
			return nil, err
		}

		publishers, err := do.Invoke[*events.Publishers](i)
		if err != nil {
			return nil, err
		}

		config := huma.DefaultConfig("Short Links", "1.0.0")
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			handlers.BearerScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		}

		api := humachi.New(router, config)
		api.UseMiddleware(middleware.RequestLogger(logger))
		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.Authenticate(api, tokens, handlers.BearerScheme))

		links := handlers.NewLinkHandler(
			directory,
			opts.PublicBaseURL(),
			publishers.LinkCreated,
			publishers.LinkDeleted,
			logger,
		)
		handlers.RegisterRoutes(api, links, handlers.NewAuthHandler(accounts, logger))
		health.RegisterRoutes(api, health.NewHandler(healthCheckers(i, opts)))

		return api, nil
	})
}

// healthCheckers returns a checker for every backend the options select.
func healthCheckers(i *do.Injector, opts *Options) map[string]health.Checker {
	checkers := make(map[string]health.Checker)

	if opts.uses(BackendPostgres) {
		checkers[BackendPostgres] = do.MustInvoke[*Postgres](i).Pool
	}

	if opts.uses(BackendRedis) {
		checkers[BackendRedis] = health.NewRedisChecker(do.MustInvoke[*Redis](i).Client)
	}

	if opts.uses(BackendMongo) {
		checkers[BackendMongo] = health.NewMongoChecker(do.MustInvoke[*Mongo](i).Client)
	}

	return checkers
}
