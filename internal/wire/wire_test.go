package wire

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"pizza-delivery/internal/data/entity"
	"pizza-delivery/internal/data/repository"
	"pizza-delivery/internal/dto/response"
	"pizza-delivery/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore backs both repositories for router level tests.
type memStore struct {
	mu     sync.Mutex
	users  map[int64]*entity.User
	orders map[int64]*entity.Order
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{users: map[int64]*entity.User{}, orders: map[int64]*entity.Order{}}
}

type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m memUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Username == username })
}

func (m memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

type memOrders struct{ *memStore }

func (m memOrders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	o.ID = m.nextID
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m memOrders) FindByID(_ context.Context, id int64) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (m memOrders) FindByIDAndUserID(ctx context.Context, id, userID int64) (*entity.Order, error) {
	o, _ := m.FindByID(ctx, id)
	if o == nil || o.UserID != userID {
		return nil, nil
	}
	return o, nil
}

func (m memOrders) list(match func(*entity.Order) bool) []*entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Order{}
	for _, o := range m.orders {
		if match(o) {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memOrders) FindAll(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	all := m.list(func(*entity.Order) bool { return true })
	if limit <= 0 {
		return all, nil
	}
	if offset >= len(all) {
		return []*entity.Order{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (m memOrders) CountAll(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.orders)), nil
}

func (m memOrders) FindByUserID(_ context.Context, userID int64) ([]*entity.Order, error) {
	return m.list(func(o *entity.Order) bool { return o.UserID == userID }), nil
}

func (m memOrders) Update(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; !ok {
		return fmt.Errorf("order %d not found", o.ID)
	}
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m memOrders) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return fmt.Errorf("order %d not found", id)
	}
	delete(m.orders, id)
	return nil
}

type directTx struct{}

func (directTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type testServer struct {
	t      *testing.T
	router http.Handler
	store  *memStore
	config *utils.Config
}

func newTestServer(t *testing.T) *testServer {
	store := newMemStore()
	config := &utils.Config{
		App:       utils.AppConfig{CORSOrigins: []string{"*"}},
		JWT:       utils.JWTConfig{Secret: "wire-test", ExpiryHours: 1, RefreshExpiryHours: 2},
		RateLimit: utils.RateLimitConfig{RPS: 1000, Burst: 1000},
	}
	repo := &repository.Repository{User: memUsers{store}, Order: memOrders{store}, Tx: directTx{}}

	app := Wiring(repo, okPinger{}, config, zap.NewNop())
	return &testServer{t: t, router: app.Router, store: store, config: config}
}

// addUser inserts a user directly and returns an access token for it.
func (s *testServer) addUser(username string, staff bool) string {
	s.t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(s.t, err)
	require.NoError(s.t, memUsers{s.store}.Create(context.Background(), &entity.User{
		Username: username, Email: username + "@example.com", PasswordHash: hash, IsStaff: staff, IsActive: true,
	}))

	token, _, err := utils.GenerateToken(s.config.JWT, username, utils.TokenAccess)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.addUser("alice", false)
	bob := s.addUser("bob", true)

	// alice places an order
	w := s.do(http.MethodPost, "/orders/order", alice, `{"quantity":2,"pizza_size":"LARGE"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[response.OrderResponse](t, w)
	assert.Equal(t, 2, created.Quantity)
	assert.Equal(t, entity.PizzaSizeLarge, created.PizzaSize)
	assert.Equal(t, entity.OrderStatusPending, created.OrderStatus)
	id := created.ID

	// alice cannot see every order
	w = s.do(http.MethodGet, "/orders/orders", alice, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not a superuser", decode[utils.ErrorResponse](t, w).Detail)

	// bob can, and sees the owner
	w = s.do(http.MethodGet, "/orders/orders", bob, "")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]response.OrderResponse](t, w)
	require.Len(t, all, 1)
	assert.NotZero(t, all[0].UserID)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	// alice updates her pending order
	w = s.do(http.MethodPut, fmt.Sprintf("/orders/order/update/%d", id), alice, `{"quantity":3,"pizza_size":"MEDIUM"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[response.OrderResponse](t, w).Quantity)

	// alice cannot change the status
	w = s.do(http.MethodPatch, fmt.Sprintf("/orders/order/update/%d", id), alice, `{"order_status":"DELIVERED"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// bob dispatches it, twice
	for range 2 {
		w = s.do(http.MethodPatch, fmt.Sprintf("/orders/order/update/%d", id), bob, `{"order_status":"IN_TRANSIT"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entity.OrderStatusInTransit, decode[response.OrderResponse](t, w).OrderStatus)
	}

	// no longer editable by alice
	w = s.do(http.MethodPut, fmt.Sprintf("/orders/order/update/%d", id), alice, `{"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// backwards is rejected
	w = s.do(http.MethodPatch, fmt.Sprintf("/orders/order/update/%d", id), bob, `{"order_status":"PENDING"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// alice sees it in her list
	w = s.do(http.MethodGet, "/orders/user/orders", alice, "")
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]response.OrderResponse](t, w)
	require.Len(t, mine, 1)
	assert.Zero(t, mine[0].UserID)

	// alice deletes it
	w = s.do(http.MethodDelete, fmt.Sprintf("/orders/order/delete/%d", id), alice, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/orders/user/order/%d", id), alice, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No order with such user", decode[utils.ErrorResponse](t, w).Detail)

	w = s.do(http.MethodGet, fmt.Sprintf("/orders/orders/%d", id), bob, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decode[utils.ErrorResponse](t, w).Detail)
}

func TestOrderIsolation(t *testing.T) {
	s := newTestServer(t)
	alice := s.addUser("alice", false)
	carol := s.addUser("carol", false)

	w := s.do(http.MethodPost, "/orders/order", alice, `{"quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[response.OrderResponse](t, w)
	assert.Equal(t, entity.PizzaSizeSmall, order.PizzaSize)

	w = s.do(http.MethodGet, fmt.Sprintf("/orders/user/order/%d", order.ID), carol, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/orders/user/orders", carol, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	// someone else's order looks exactly like a missing one
	for _, id := range []int64{order.ID, 999} {
		w = s.do(http.MethodDelete, fmt.Sprintf("/orders/order/delete/%d", id), carol, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No order with such user", decode[utils.ErrorResponse](t, w).Detail)

		w = s.do(http.MethodPut, fmt.Sprintf("/orders/order/update/%d", id), carol, `{"quantity":5}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No order with such user", decode[utils.ErrorResponse](t, w).Detail)
	}

	// still there for alice
	w = s.do(http.MethodGet, fmt.Sprintf("/orders/user/order/%d", order.ID), alice, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListAllOrders_Pagination(t *testing.T) {
	s := newTestServer(t)
	alice := s.addUser("alice", false)
	bob := s.addUser("bob", true)

	for range 3 {
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/orders/order", alice, `{"quantity":1}`).Code)
	}

	w := s.do(http.MethodGet, "/orders/orders?page=1&per_page=500", bob, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]response.OrderResponse](t, w), 3)
	assert.Equal(t, "3", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "1", w.Header().Get("X-Total-Pages"))

	w = s.do(http.MethodGet, "/orders/orders?page=2&per_page=2", bob, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]response.OrderResponse](t, w), 1)
	assert.Equal(t, "2", w.Header().Get("X-Total-Pages"))
}

func TestCreateOrder_QuantityOutOfRange(t *testing.T) {
	s := newTestServer(t)
	alice := s.addUser("alice", false)

	w := s.do(http.MethodPost, "/orders/order", alice, `{"quantity":3000000000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[utils.ErrorResponse](t, w)
	assert.Equal(t, "Validation failed", body.Detail)
	assert.Contains(t, body.Errors, "quantity")
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/signup", "", `{"username":"dave","email":"dave@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	user := decode[response.UserResponse](t, w)
	assert.Equal(t, "dave", user.Username)
	assert.False(t, user.IsStaff)

	w = s.do(http.MethodPost, "/auth/signup", "", `{"username":"dave","email":"other@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/auth/login", "", `{"username":"dave","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/auth/login", "", `{"username":"dave","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode[response.TokenResponse](t, w)
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)

	w = s.do(http.MethodGet, "/users/me", tokens.Access, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dave@example.com", decode[response.UserResponse](t, w).Email)

	// refresh token is not an access token
	w = s.do(http.MethodGet, "/users/me", tokens.Refresh, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/auth/refresh", tokens.Refresh, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[response.TokenResponse](t, w).Access)
}

func TestUnauthenticated(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/orders/orders", "/orders/user/orders", "/orders/orders/1", "/users/me"} {
		w := s.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "Invalid token", decode[utils.ErrorResponse](t, w).Detail)
	}

	// valid token for a user that does not exist
	token, _, err := utils.GenerateToken(s.config.JWT, "ghost", utils.TokenAccess)
	require.NoError(t, err)
	w := s.do(http.MethodGet, "/orders/user/orders", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode[utils.ErrorResponse](t, w).Detail)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")
}
