package wire

import (
	"pizza-delivery/internal/adaptor"
	"pizza-delivery/pkg/middleware"
	"pizza-delivery/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireOrder mounts the order routes. Every route needs an access token;
// staff checks happen in the service so a revoked staff flag applies at once.
func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/order", orderHandler.CreateOrder)

		// staff
		r.Get("/orders", orderHandler.ListAllOrders)
		r.Get("/orders/{id}", orderHandler.GetOrderByID)

		// self
		r.Get("/user/orders", orderHandler.ListMyOrders)
		r.Get("/user/order/{id}", orderHandler.GetMyOrderByID)

		r.Put("/order/update/{id}", orderHandler.UpdateOrder)
		r.Patch("/order/update/{id}", orderHandler.UpdateOrderStatus)
		r.Delete("/order/delete/{id}", orderHandler.DeleteOrder)
	})
}
