package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/service/punctuality"
	"github.com/corray333/swiftserve/internal/service/services/ordersvc"
	"github.com/corray333/swiftserve/internal/service/timing"
	createorder "github.com/corray333/swiftserve/internal/transport/http/v1/create_order"
	evaluatebooking "github.com/corray333/swiftserve/internal/transport/http/v1/evaluate_booking"
	getorder "github.com/corray333/swiftserve/internal/transport/http/v1/get_order"
	getpunctuality "github.com/corray333/swiftserve/internal/transport/http/v1/get_punctuality"
	listorders "github.com/corray333/swiftserve/internal/transport/http/v1/list_orders"
	orderaction "github.com/corray333/swiftserve/internal/transport/http/v1/order_action"
	"github.com/corray333/swiftserve/internal/transport/http/v1/restaurants"
	"github.com/corray333/swiftserve/pkg/http/middleware/trace"
	"github.com/corray333/swiftserve/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type service interface {
	EvaluateBooking(ctx context.Context, restaurantID string, travelMinutes int) (timing.Evaluation, error)
	Book(ctx context.Context, req ordersvc.BookingRequest) (order.Order, timing.Evaluation, error)
	ListOrders(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error)
	GetOrderView(ctx context.Context, id string) (ordersvc.OrderView, error)
	Cancel(ctx context.Context, id string) (order.Order, order.RefundTier, error)
	StartCooking(ctx context.Context, id string) (order.Order, error)
	PickUp(ctx context.Context, id string) (order.Order, error)
	ListRestaurants(ctx context.Context) ([]ordersvc.RestaurantListing, error)
	GetRestaurant(ctx context.Context, id string) (ordersvc.RestaurantListing, error)
	Punctuality(ctx context.Context) (punctuality.Summary, error)
}

// HTTPTransport serves the v1 JSON API.
type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

// NewHTTPTransport creates the transport. Call RegisterRoutes before Run.
func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

// Run serves until Shutdown is called.
func (h *HTTPTransport) Run() error {
	slog.Info("Starting HTTP server", "address", h.server.Addr)

	err := h.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Shutdown gracefully stops the server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/bookings/evaluate", h.evaluateBooking)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
			r.Post("/{id}/cancel", h.cancelOrder)
			r.Post("/{id}/start-cooking", h.startCooking)
			r.Post("/{id}/pickup", h.pickUp)
		})

		r.Get("/restaurants", h.listRestaurants)
		r.Get("/restaurants/{id}", h.getRestaurant)
		r.Get("/punctuality", h.getPunctuality)
	})
}

func (h *HTTPTransport) evaluateBooking(w http.ResponseWriter, r *http.Request) {
	evaluatebooking.EvaluateBooking(w, r, h.service)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderaction.Cancel(w, r, h.service)
}

func (h *HTTPTransport) startCooking(w http.ResponseWriter, r *http.Request) {
	orderaction.StartCooking(w, r, h.service)
}

func (h *HTTPTransport) pickUp(w http.ResponseWriter, r *http.Request) {
	orderaction.PickUp(w, r, h.service)
}

func (h *HTTPTransport) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants.ListRestaurants(w, r, h.service)
}

func (h *HTTPTransport) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurants.GetRestaurant(w, r, h.service)
}

func (h *HTTPTransport) getPunctuality(w http.ResponseWriter, r *http.Request) {
	getpunctuality.GetPunctuality(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   viper.GetStringSlice("server.http.cors.allowed_origins"),
		AllowedMethods:   viper.GetStringSlice("server.http.cors.allowed_methods"),
		AllowedHeaders:   viper.GetStringSlice("server.http.cors.allowed_headers"),
		ExposedHeaders:   viper.GetStringSlice("server.http.cors.exposed_headers"),
		AllowCredentials: viper.GetBool("server.http.cors.allow_credentials"),
		MaxAge:           viper.GetInt("server.http.cors.max_age"),
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:              "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
