package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/iggarsaudev/Api-IgLusShop/docs" // Импорт сгенерированных файлов
	"github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init собирает все маршруты API. Авторизация не навешивается на маршруты:
// WithIdentity лишь кладёт личность в контекст, отказ принимает политика
// внутри usecase — порядок 401/403/404 одинаков для всех ресурсов.
func (r *Router) Init(
	authUC usecase.AuthUC,
	productUC usecase.ProductUC,
	providerUC usecase.ProviderUC,
	reviewUC usecase.ReviewUC,
	userUC usecase.UserUC,
	minioCfg *cfg.MinIOCfg,
) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api", func(api chi.Router) {
		api.Use(WithIdentity(authUC, r.logger))

		authHandler := NewAuthHandler(authUC, userUC, r.logger)
		registerAuthRoutes(api, authHandler)

		productHandler := NewProductHandler(productUC, minioCfg, r.logger)
		registerProductRoutes(api, productHandler)

		outletHandler := NewOutletHandler(productUC, r.logger)
		registerOutletRoutes(api, outletHandler)

		providerHandler := NewProviderHandler(providerUC, r.logger)
		registerProviderRoutes(api, providerHandler)

		reviewHandler := NewReviewHandler(reviewUC, r.logger)
		registerReviewRoutes(api, reviewHandler)

		userHandler := NewUserHandler(userUC, r.logger)
		registerUserRoutes(api, userHandler)
	})
}

func registerAuthRoutes(router chi.Router, h *AuthHandler) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)
	router.Get("/user", h.self)
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.list)
		pr.Post("/", h.create)
		pr.Get("/{id}", h.get)
		pr.Put("/{id}", h.update)
		pr.Delete("/{id}", h.delete)
		pr.Post("/{id}/image", h.attachImage)
	})
}

func registerOutletRoutes(router chi.Router, h *OutletHandler) {
	router.Route("/outlet", func(ou chi.Router) {
		ou.Get("/", h.list)
		ou.Post("/", h.create)
		ou.Get("/{id}", h.get)
		ou.Put("/{id}", h.update)
		ou.Delete("/{id}", h.delete)
	})
}

func registerProviderRoutes(router chi.Router, h *ProviderHandler) {
	router.Route("/providers", func(pv chi.Router) {
		pv.Get("/", h.list)
		pv.Post("/", h.create)
		pv.Get("/{id}", h.get)
		pv.Put("/{id}", h.update)
		pv.Delete("/{id}", h.delete)
	})
}

func registerReviewRoutes(router chi.Router, h *ReviewHandler) {
	router.Route("/reviews", func(rv chi.Router) {
		rv.Get("/", h.list)
		rv.Post("/", h.create)
		rv.Get("/{id}", h.get)
		rv.Put("/{id}", h.update)
		rv.Delete("/{id}", h.delete)
	})
}

func registerUserRoutes(router chi.Router, h *UserHandler) {
	router.Route("/users", func(us chi.Router) {
		us.Get("/", h.list)
		us.Post("/", h.create)
		us.Get("/{id}", h.get)
		us.Put("/{id}", h.update)
		us.Delete("/{id}", h.delete)
	})
}
