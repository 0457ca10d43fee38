package httpapi

import (
	"net/http"

	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the routes exposed by the backend API.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger, h.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(h.AllowedOrigins))

	h.Register(r)
	return r
}

// Register mounts the handlers on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.root)
	r.Get("/healthz", h.healthz)
	r.Get("/test-cors", h.corsCheck)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	r.Post("/user/signup", h.signup(models.VariantUser))
	r.Post("/restaurant/signup", h.signup(models.VariantRestaurant))
	r.Post("/user/login", h.login(models.VariantUser))
	r.Post("/restaurant/login", h.login(models.VariantRestaurant))

	r.Get("/user", h.getUser)
	r.Get("/rest", h.getRestaurant)
	r.Get("/users", h.listUsers)
	r.Get("/restaurants", h.listRestaurants)
	r.Get("/zipcodeusers", h.usersByZipcode)
	r.Get("/zipcoderests", h.restaurantsByZipcode)
	r.Get("/rests", h.matchedRestaurants)

	r.Group(func(r chi.Router) {
		r.Use(authenticate(h.SecretKey))

		r.Put("/user", h.updateUser)
		r.Put("/rest", h.updateRestaurant)
		r.Put("/addrestmatch", h.addRestaurantMatch)
		r.Put("/addusermatch", h.addUserMatch)
		r.Put("/match", h.match)
		r.Get("/messages", h.conversation)
		r.Post("/message", h.sendMessage)
		r.Post("/photo/upload-url", h.photoUploadURL)
	})
}
