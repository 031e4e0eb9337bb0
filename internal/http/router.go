package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/auth"
)

type RouterOptions struct {
	CORSAllowOrigins []string
	CheckoutLimiter  *RateLimiter
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	if len(opts.CORSAllowOrigins) == 0 {
		opts.CORSAllowOrigins = []string{"*"}
	}
	limit := opts.CheckoutLimiter.Middleware

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(CorrelationID)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(opts.CORSAllowOrigins))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/hero", h.ListActiveHero)
		r.Get("/settings", h.GetSettings)

		r.Route("/cart", func(r chi.Router) {
			r.Use(CartSession)
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{productId}", h.UpdateCartItem)
			r.Delete("/items/{productId}", h.RemoveCartItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(auth.RequireUser(h.verifier))
			r.Use(CartSession)
			r.Get("/", h.CheckoutSummary)
			r.With(limit).Post("/", h.PlaceOrder)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth.RequireUser(h.verifier))
			r.With(limit).Post("/", h.CreateOrder)
			r.Get("/", h.ListMyOrders)
			r.Get("/{orderId}", h.GetOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin(h.verifier))

			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)

			r.Get("/orders", h.ListAllOrders)
			r.Patch("/orders/{orderId}/status", h.UpdateOrderStatus)
			r.Get("/customers", h.ListCustomers)
			r.Get("/stats", h.Stats)

			r.Get("/hero", h.ListAllHero)
			r.Post("/hero", h.CreateHero)
			r.Delete("/hero", h.DeleteHero)

			r.Post("/settings", h.UpdateSettings)
		})
	})

	return r
}
