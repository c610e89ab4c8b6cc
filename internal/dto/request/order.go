package request

// CreateOrderRequest is the body of POST /orders/order and PUT /orders/order/update/{id}.
// An empty pizza_size defaults to SMALL. Quantity must fit the INTEGER column.
type CreateOrderRequest struct {
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=2147483647"`
	PizzaSize string `json:"pizza_size" validate:"omitempty,oneof=SMALL MEDIUM LARGE EXTRA_LARGE"`
}

type UpdateOrderRequest = CreateOrderRequest

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status" validate:"required,oneof=PENDING IN_TRANSIT DELIVERED CANCELLED"`
}
