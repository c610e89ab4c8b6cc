package entity

type PizzaSize string

const (
	PizzaSizeSmall      PizzaSize = "SMALL"
	PizzaSizeMedium     PizzaSize = "MEDIUM"
	PizzaSizeLarge      PizzaSize = "LARGE"
	PizzaSizeExtraLarge PizzaSize = "EXTRA_LARGE"
)

func (s PizzaSize) Valid() bool {
	switch s {
	case PizzaSizeSmall, PizzaSizeMedium, PizzaSizeLarge, PizzaSizeExtraLarge:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions lists the statuses reachable from each status.
// Re-applying the current status is always allowed.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusInTransit, OrderStatusCancelled},
	OrderStatusInTransit: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: nil,
	OrderStatusCancelled: nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order belongs to exactly one user; UserID is set on insert and never updated.
type Order struct {
	Base
	UserID      int64       `db:"user_id"`
	Quantity    int         `db:"quantity"`
	PizzaSize   PizzaSize   `db:"pizza_size"`
	OrderStatus OrderStatus `db:"order_status"`
}

func (o *Order) OwnedBy(userID int64) bool {
	return o.UserID == userID
}
