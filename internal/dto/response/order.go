package response

import (
	"pizza-delivery/internal/data/entity"
)

type OrderResponse struct {
	ID          int64              `json:"id"`
	Quantity    int                `json:"quantity"`
	PizzaSize   entity.PizzaSize   `json:"pizza_size"`
	OrderStatus entity.OrderStatus `json:"order_status"`
	// only filled for staff views
	UserID int64 `json:"user_id,omitempty"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		Quantity:    order.Quantity,
		PizzaSize:   order.PizzaSize,
		OrderStatus: order.OrderStatus,
	}
}

func OrderToStaffResponse(order *entity.Order) OrderResponse {
	resp := OrderToResponse(order)
	resp.UserID = order.UserID
	return resp
}

func OrdersToResponse(orders []*entity.Order, convert func(*entity.Order) OrderResponse) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, order := range orders {
		out[i] = convert(order)
	}
	return out
}

// OrderList is a page of orders plus the total row count.
type OrderList struct {
	Orders []OrderResponse
	Total  int64
}
