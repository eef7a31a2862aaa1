package httpserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"mrhook/internal/domain"
	"mrhook/internal/repository/inventory"
	productrepo "mrhook/internal/repository/product"
	usersvc "mrhook/internal/service/user"
	"github.com/gin-gonic/gin"
)

type stubCatalogSvc struct {
	products   []domain.Product
	product    *domain.Product
	getErr     error
	avail      inventory.Availability
	availErr   error
	lastFilter productrepo.ListFilter
}

func (s *stubCatalogSvc) List(_ context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	s.lastFilter = filter
	return s.products, nil
}

func (s *stubCatalogSvc) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.getErr
}

func (s *stubCatalogSvc) Availability(_ context.Context, _ string, _ int) (inventory.Availability, error) {
	return s.avail, s.availErr
}

type stubCartSvc struct {
	addErr    error
	setErr    error
	removeErr error
	clearErr  error
	lines     []domain.CartLine

	lastProductID string
	lastQty       int
}

func (s *stubCartSvc) AddLine(_ context.Context, _, productID string, quantity int) error {
	s.lastProductID, s.lastQty = productID, quantity
	return s.addErr
}

func (s *stubCartSvc) SetQuantity(_ context.Context, _, productID string, quantity int) error {
	s.lastProductID, s.lastQty = productID, quantity
	return s.setErr
}

func (s *stubCartSvc) RemoveLine(_ context.Context, _, productID string) error {
	s.lastProductID = productID
	return s.removeErr
}

func (s *stubCartSvc) Clear(_ context.Context, _ string) error {
	return s.clearErr
}

func (s *stubCartSvc) Snapshot(_ context.Context, _ string) ([]domain.CartLine, error) {
	return s.lines, nil
}

type stubOrderSvc struct {
	order     *domain.Order
	commitErr error
	history   []domain.Order
	getOrder  *domain.Order
	getErr    error
}

func (s *stubOrderSvc) Commit(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.commitErr
}

func (s *stubOrderSvc) History(_ context.Context, _ string) ([]domain.Order, error) {
	return s.history, nil
}

func (s *stubOrderSvc) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.getOrder, s.getErr
}

type stubUserSvc struct {
	user       *domain.User
	registered *domain.User
	regErr     error
	loginErr   error
	lookupErr  error
}

func (s *stubUserSvc) Register(_ context.Context, _ usersvc.RegisterInput) (*domain.User, string, error) {
	return s.registered, "access-token", s.regErr
}

func (s *stubUserSvc) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return s.user, "access-token", s.loginErr
}

func (s *stubUserSvc) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.user, nil
}

func (s *stubUserSvc) Profile(_ context.Context, _ string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUserSvc) UpdateProfile(_ context.Context, _ string, _ usersvc.ProfileInput) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUserSvc) AccessTTLSeconds() int { return 3600 }

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.UserSvc == nil {
		deps.UserSvc = &stubUserSvc{user: &domain.User{ID: "u1", Email: "a@b.com"}}
	}
	if deps.CatalogSvc == nil {
		deps.CatalogSvc = &stubCatalogSvc{}
	}
	if deps.CartSvc == nil {
		deps.CartSvc = &stubCartSvc{}
	}
	if deps.OrderSvc == nil {
		deps.OrderSvc = &stubOrderSvc{}
	}
	logger := log.New(os.Stdout, "[test] ", 0)
	router, err := buildRouter(logger, nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doRequest(router *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer valid-token")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, Deps{})
	rec := doRequest(router, http.MethodGet, "/healthz", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := testRouter(t, Deps{})
	rec := doRequest(router, http.MethodGet, "/api/cart", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := testRouter(t, Deps{UserSvc: &stubUserSvc{lookupErr: usersvc.ErrInvalidToken}})
	rec := doRequest(router, http.MethodGet, "/api/cart", "", true)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListProductsParsesFilters(t *testing.T) {
	catalog := &stubCatalogSvc{}
	router := testRouter(t, Deps{CatalogSvc: catalog})
	rec := doRequest(router, http.MethodGet, "/api/products?category=rods&search=rod&minPrice=1000&maxPrice=20000", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if catalog.lastFilter.Category != "rods" || catalog.lastFilter.Search != "rod" {
		t.Fatalf("unexpected filter: %+v", catalog.lastFilter)
	}
	if catalog.lastFilter.MinPrice == nil || *catalog.lastFilter.MinPrice != 1000 {
		t.Fatalf("minPrice not parsed: %+v", catalog.lastFilter.MinPrice)
	}
	if catalog.lastFilter.MaxPrice == nil || *catalog.lastFilter.MaxPrice != 20000 {
		t.Fatalf("maxPrice not parsed: %+v", catalog.lastFilter.MaxPrice)
	}
}

func TestListProductsBadPriceFilter(t *testing.T) {
	router := testRouter(t, Deps{})
	rec := doRequest(router, http.MethodGet, "/api/products?minPrice=cheap", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	router := testRouter(t, Deps{CatalogSvc: &stubCatalogSvc{getErr: domain.ErrNotFound}})
	rec := doRequest(router, http.MethodGet, "/api/products/deadbeef", "", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAvailability(t *testing.T) {
	router := testRouter(t, Deps{CatalogSvc: &stubCatalogSvc{avail: inventory.Availability{Available: true, CurrentStock: 5}}})
	rec := doRequest(router, http.MethodGet, "/api/products/p1/availability?qty=2", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got inventory.Availability
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Available || got.CurrentStock != 5 {
		t.Fatalf("unexpected availability: %+v", got)
	}
}

func TestAddToCart(t *testing.T) {
	carts := &stubCartSvc{}
	router := testRouter(t, Deps{CartSvc: carts})
	rec := doRequest(router, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":2}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if carts.lastProductID != "p1" || carts.lastQty != 2 {
		t.Fatalf("unexpected cart call: %s %d", carts.lastProductID, carts.lastQty)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	router := testRouter(t, Deps{CartSvc: &stubCartSvc{addErr: domain.ErrNotFound}})
	rec := doRequest(router, http.MethodPost, "/api/cart/items", `{"productId":"missing","quantity":1}`, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateCartQuantityMissingLine(t *testing.T) {
	router := testRouter(t, Deps{CartSvc: &stubCartSvc{setErr: domain.ErrNotFound}})
	rec := doRequest(router, http.MethodPatch, "/api/cart/items/p1", `{"quantity":3}`, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetCartEmptyBody(t *testing.T) {
	router := testRouter(t, Deps{})
	rec := doRequest(router, http.MethodGet, "/api/cart", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Lines []domain.CartLine `json:"lines"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Lines == nil {
		t.Fatalf("expected empty array, got null")
	}
}
