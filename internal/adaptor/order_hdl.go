package adaptor

import (
	"net/http"
	"strconv"

	"pizza-delivery/internal/dto/request"
	"pizza-delivery/internal/usecase"
	"pizza-delivery/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /orders/order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}

	var req request.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), sub, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create order")
		return
	}

	utils.ResponseCreated(w, order)
}

// ListAllOrders handles GET /orders/orders (staff).
// Pagination applies only when page or per_page is given.
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}

	var page *request.PaginatedRequest
	query := r.URL.Query()
	if query.Has("page") || query.Has("per_page") {
		page = &request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		}
	}

	list, err := h.service.ListAllOrders(r.Context(), sub, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list orders")
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(list.Total, 10))
	if page != nil {
		w.Header().Set("X-Total-Pages", strconv.Itoa(utils.CalculateTotalPages(list.Total, page.Limit())))
	}
	utils.ResponseSuccess(w, list.Orders)
}

// GetOrderByID handles GET /orders/orders/{id} (staff)
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetOrderByID(r.Context(), sub, id)
	if err != nil {
		handleServiceError(h.log, w, err, "get order")
		return
	}

	utils.ResponseSuccess(w, order)
}

// ListMyOrders handles GET /orders/user/orders
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListMyOrders(r.Context(), sub)
	if err != nil {
		handleServiceError(h.log, w, err, "list user orders")
		return
	}

	utils.ResponseSuccess(w, orders)
}

// GetMyOrderByID handles GET /orders/user/order/{id}
func (h *OrderHandler) GetMyOrderByID(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetMyOrderByID(r.Context(), sub, id)
	if err != nil {
		handleServiceError(h.log, w, err, "get user order")
		return
	}

	utils.ResponseSuccess(w, order)
}

// UpdateOrder handles PUT /orders/order/update/{id}
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req request.UpdateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.UpdateOrder(r.Context(), sub, id, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update order")
		return
	}

	utils.ResponseSuccess(w, order)
}

// UpdateOrderStatus handles PATCH /orders/order/update/{id} (staff)
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req request.UpdateOrderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), sub, id, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, order)
}

// DeleteOrder handles DELETE /orders/order/delete/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(r.Context(), sub, id); err != nil {
		handleServiceError(h.log, w, err, "delete order")
		return
	}

	utils.ResponseNoContent(w)
}

func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
	}
	return id, ok
}
