package usecase

import (
	"context"
	"fmt"

	"pizza-delivery/internal/data/entity"
	"pizza-delivery/internal/data/repository"
	"pizza-delivery/internal/dto/request"
	"pizza-delivery/internal/dto/response"
	"pizza-delivery/pkg/database"
	"pizza-delivery/pkg/metrics"

	"go.uber.org/zap"
)

type OrderService interface {
	// Self-scope
	CreateOrder(ctx context.Context, subject string, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	ListMyOrders(ctx context.Context, subject string) ([]response.OrderResponse, error)
	GetMyOrderByID(ctx context.Context, subject string, orderID int64) (*response.OrderResponse, error)
	UpdateOrder(ctx context.Context, subject string, orderID int64, req *request.UpdateOrderRequest) (*response.OrderResponse, error)
	DeleteOrder(ctx context.Context, subject string, orderID int64) error

	// Staff-scope. A nil page lists every order.
	ListAllOrders(ctx context.Context, subject string, page *request.PaginatedRequest) (*response.OrderList, error)
	GetOrderByID(ctx context.Context, subject string, orderID int64) (*response.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, subject string, orderID int64, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
}

type orderService struct {
	orders repository.OrderRepository
	tx     database.Transactor
	policy policy
	log    *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		orders: repo.Order,
		tx:     repo.Tx,
		policy: policy{users: repo.User},
		log:    log.With(zap.String("service", "order")),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, subject string, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create order validation failed", zap.Error(err))
		return nil, err
	}

	size := entity.PizzaSize(req.PizzaSize)
	if size == "" {
		size = entity.PizzaSizeSmall
	}

	var resp response.OrderResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.policy.currentUser(ctx, subject)
		if err != nil {
			return err
		}

		order := &entity.Order{
			UserID:      user.ID,
			Quantity:    req.Quantity,
			PizzaSize:   size,
			OrderStatus: entity.OrderStatusPending,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		s.log.Info("Order created",
			zap.Int64("order_id", order.ID),
			zap.Int64("user_id", user.ID),
			zap.Int("quantity", order.Quantity),
			zap.String("pizza_size", string(order.PizzaSize)),
		)

		resp = response.OrderToResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues(string(resp.PizzaSize)).Inc()
	return &resp, nil
}

func (s *orderService) ListAllOrders(ctx context.Context, subject string, page *request.PaginatedRequest) (*response.OrderList, error) {
	var list response.OrderList
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.policy.requireStaff(ctx, subject, ErrNotSuperuser); err != nil {
			return err
		}

		limit, offset := 0, 0
		if page != nil {
			if err := validate(page); err != nil {
				return err
			}
			limit, offset = page.Limit(), page.Offset()
		}

		orders, err := s.orders.FindAll(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}

		total := int64(len(orders))
		if page != nil {
			if total, err = s.orders.CountAll(ctx); err != nil {
				return fmt.Errorf("count orders: %w", err)
			}
		}

		list = response.OrderList{
			Orders: response.OrdersToResponse(orders, response.OrderToStaffResponse),
			Total:  total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, subject string, orderID int64) (*response.OrderResponse, error) {
	var resp response.OrderResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.policy.requireStaff(ctx, subject, ErrNotAllowed); err != nil {
			return err
		}

		order, err := s.findOrder(ctx, orderID)
		if err != nil {
			return err
		}

		resp = response.OrderToStaffResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, subject string) ([]response.OrderResponse, error) {
	var resp []response.OrderResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.policy.currentUser(ctx, subject)
		if err != nil {
			return err
		}

		orders, err := s.orders.FindByUserID(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("list user orders: %w", err)
		}

		resp = response.OrdersToResponse(orders, response.OrderToResponse)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *orderService) GetMyOrderByID(ctx context.Context, subject string, orderID int64) (*response.OrderResponse, error) {
	var resp response.OrderResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.policy.currentUser(ctx, subject)
		if err != nil {
			return err
		}

		// someone else's order is reported exactly like a missing one
		order, err := s.orders.FindByIDAndUserID(ctx, orderID, user.ID)
		if err != nil {
			return fmt.Errorf("get user order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("%w: order %d", ErrNoOrderForUser, orderID)
		}

		resp = response.OrderToResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, subject string, orderID int64, req *request.UpdateOrderRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Update order validation failed", zap.Error(err), zap.Int64("order_id", orderID))
		return nil, err
	}

	size := entity.PizzaSize(req.PizzaSize)
	if size == "" {
		size = entity.PizzaSizeSmall
	}

	var resp response.OrderResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.policy.currentUser(ctx, subject)
		if err != nil {
			return err
		}

		order, err := s.findVisibleOrder(ctx, user, orderID)
		if err != nil {
			return err
		}

		if !canModify(user, order) {
			s.log.Warn("Update order denied",
				zap.Int64("order_id", orderID),
				zap.Int64("user_id", user.ID),
			)
			return ErrNotAllowed
		}
		if order.OrderStatus != entity.OrderStatusPending {
			return fmt.Errorf("%w: order is %s", ErrOrderLocked, order.OrderStatus)
		}

		order.Quantity = req.Quantity
		order.PizzaSize = size
		if err := s.orders.Update(ctx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		s.log.Info("Order updated",
			zap.Int64("order_id", order.ID),
			zap.Int("quantity", order.Quantity),
			zap.String("pizza_size", string(order.PizzaSize)),
		)

		resp = response.OrderToResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, subject string, orderID int64, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Update status validation failed", zap.Error(err), zap.Int64("order_id", orderID))
		return nil, err
	}

	next := entity.OrderStatus(req.OrderStatus)
	changed := false

	var resp response.OrderResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		staff, err := s.policy.requireStaff(ctx, subject, ErrNotAllowed)
		if err != nil {
			return err
		}

		order, err := s.findOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if !order.OrderStatus.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.OrderStatus, next)
		}

		// same status again leaves the row untouched
		if order.OrderStatus != next {
			prev := order.OrderStatus
			order.OrderStatus = next
			if err := s.orders.Update(ctx, order); err != nil {
				return fmt.Errorf("update order status: %w", err)
			}
			changed = true

			s.log.Info("Order status changed",
				zap.Int64("order_id", order.ID),
				zap.String("from", string(prev)),
				zap.String("to", string(next)),
				zap.String("by", staff.Username),
			)
		}

		resp = response.OrderToStaffResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		metrics.OrderStatusChanges.WithLabelValues(string(next)).Inc()
	}
	return &resp, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, subject string, orderID int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.policy.currentUser(ctx, subject)
		if err != nil {
			return err
		}

		order, err := s.findVisibleOrder(ctx, user, orderID)
		if err != nil {
			return err
		}

		if !canDelete(user, order) {
			s.log.Warn("Delete order denied",
				zap.Int64("order_id", orderID),
				zap.Int64("user_id", user.ID),
			)
			return ErrNotAllowed
		}

		if err := s.orders.Delete(ctx, order.ID); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}

		s.log.Info("Order deleted",
			zap.Int64("order_id", order.ID),
			zap.Int64("owner_id", order.UserID),
			zap.String("by", user.Username),
		)
		return nil
	})
	if err != nil {
		return err
	}

	metrics.OrdersDeleted.Inc()
	return nil
}

func (s *orderService) findOrder(ctx context.Context, orderID int64) (*entity.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}
	return order, nil
}

// findVisibleOrder loads an order for a self-scope mutation. Staff see every
// order; for anyone else another user's order is reported like a missing one.
func (s *orderService) findVisibleOrder(ctx context.Context, user *entity.User, orderID int64) (*entity.Order, error) {
	if user.IsStaff {
		return s.findOrder(ctx, orderID)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil || !order.OwnedBy(user.ID) {
		if order != nil {
			s.log.Warn("Order of another user requested",
				zap.Int64("order_id", orderID),
				zap.Int64("user_id", user.ID),
			)
		}
		return nil, fmt.Errorf("%w: order %d", ErrNoOrderForUser, orderID)
	}
	return order, nil
}
