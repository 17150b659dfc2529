package httpx

import (
	"net/http"

	"plantstore-be/internal/customer"
	"plantstore-be/internal/feed"
	"plantstore-be/internal/logger"
	"plantstore-be/internal/metrics"
	"plantstore-be/internal/middleware"
	"plantstore-be/internal/notification"
	"plantstore-be/internal/order"
	"plantstore-be/internal/product"
	"plantstore-be/internal/stats"
	"plantstore-be/internal/user"
	"plantstore-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Users         user.Service
	Products      product.Service
	Orders        order.Service
	Customers     customer.Service
	Notifications notification.Service
	Stats         stats.Service
	Hub           *feed.Hub

	MaxImageBytes int64
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	auth := &authHandler{users: deps.Users}
	products := &productHandler{service: deps.Products, maxImageBytes: deps.MaxImageBytes}
	orders := &orderHandler{service: deps.Orders}
	admin := &adminHandler{
		customers:     deps.Customers,
		notifications: deps.Notifications,
		stats:         deps.Stats,
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	r.Post("/auth/login", auth.Login)

	r.Get("/products", products.List)
	r.Get("/products/{id}", products.Get)

	r.Post("/orders", orders.Place)
	r.Get("/orders/{trackingID}", orders.Track)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/orders", orders.AdminList)
		r.Post("/orders/{trackingID}/status", orders.UpdateStatus)
		r.Post("/orders/bulk-status", orders.BulkStatus)
		r.Get("/orders/export", orders.Export)

		r.Get("/orders/selection", orders.GetSelection)
		r.Post("/orders/selection/toggle", orders.ToggleSelection)
		r.Post("/orders/selection/select-all", orders.SelectAllVisible)
		r.Delete("/orders/selection", orders.ClearSelection)

		r.Post("/products", products.Create)
		r.Put("/products/{id}", products.Update)
		r.Delete("/products/{id}", products.Delete)
		r.Post("/products/{id}/image", products.ReplaceImage)
		r.Patch("/products/{id}/stock", products.UpdateStock)

		r.Get("/customers/banned", admin.ListBanned)
		r.Post("/customers/ban", admin.Ban)
		r.Post("/customers/unban", admin.Unban)

		r.Get("/notifications", admin.ListNotifications)
		r.Post("/notifications/{id}/read", admin.MarkNotificationRead)
		r.Post("/notifications/read-all", admin.MarkAllNotificationsRead)

		r.Get("/stats", admin.DashboardStats)
		r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
			utils.WriteJSON(w, metrics.Snapshot(), http.StatusOK)
		})

		if deps.Hub != nil {
			r.Get("/feed", deps.Hub.ServeWS)
		}
	})

	return r
}
