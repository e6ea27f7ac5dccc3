package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
)

type testLogger struct{}

func (testLogger) Debugf(format string, args ...any)            {}
func (testLogger) Infof(format string, args ...any)             {}
func (testLogger) Warnf(format string, args ...any)             {}
func (testLogger) Errorf(err error, format string, args ...any) {}

// stubAuthUC резолвит токены по заготовленной карте.
type stubAuthUC struct {
	usecase.AuthUC
	callers map[string]domain.Identity
}

func (s *stubAuthUC) ResolveCaller(ctx context.Context, token string) (domain.Identity, error) {
	caller, ok := s.callers[token]
	if !ok {
		return domain.Identity{}, e.ErrUnauthenticated
	}
	return caller, nil
}

type stubProductUC struct {
	usecase.ProductUC
	listProductsFn  func(ctx context.Context) ([]*domain.Product, error)
	getProductFn    func(ctx context.Context, id int64) (*domain.Product, error)
	createProductFn func(ctx context.Context, caller domain.Identity, req *usecase.CreateProductReq) (int64, error)
	getOutletFn     func(ctx context.Context, id int64) (*domain.Product, error)
	deleteProductFn func(ctx context.Context, caller domain.Identity, id int64) error
}

func (s *stubProductUC) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.listProductsFn(ctx)
}

func (s *stubProductUC) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getProductFn(ctx, id)
}

func (s *stubProductUC) CreateProduct(ctx context.Context, caller domain.Identity, req *usecase.CreateProductReq) (int64, error) {
	return s.createProductFn(ctx, caller, req)
}

func (s *stubProductUC) GetOutletProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getOutletFn(ctx, id)
}

func (s *stubProductUC) DeleteProduct(ctx context.Context, caller domain.Identity, id int64) error {
	return s.deleteProductFn(ctx, caller, id)
}

type stubUserUC struct {
	usecase.UserUC
	getSelfFn func(ctx context.Context, caller domain.Identity) (*domain.User, error)
}

func (s *stubUserUC) GetSelf(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	return s.getSelfFn(ctx, caller)
}

func newTestRouter(authUC usecase.AuthUC, productUC usecase.ProductUC, userUC usecase.UserUC) *chi.Mux {
	if authUC == nil {
		authUC = &stubAuthUC{callers: map[string]domain.Identity{}}
	}
	mux := chi.NewRouter()
	router := NewRouter(mux, testLogger{})
	router.Init(authUC, productUC, &stubProviderUC{}, &stubReviewUC{}, userUC, &cfg.MinIOCfg{})
	return mux
}

type stubProviderUC struct{ usecase.ProviderUC }
type stubReviewUC struct{ usecase.ReviewUC }

func doRequest(t *testing.T, mux *chi.Mux, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestProductRoutes_PriceFormatting(t *testing.T) {
	productUC := &stubProductUC{
		listProductsFn: func(ctx context.Context) ([]*domain.Product, error) {
			return []*domain.Product{
				{ID: 1, Name: "Camiseta", Price: 2999},
				{ID: 2, Name: "Botas", Price: 10000},
			}, nil
		},
	}
	mux := newTestRouter(nil, productUC, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "29.99", got[0].Price)
	require.Equal(t, "100.00", got[1].Price)
}

func TestProductRoutes_NotFoundMessages(t *testing.T) {
	productUC := &stubProductUC{
		getProductFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return nil, e.ErrProductNotFound
		},
		getOutletFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return nil, e.ErrNotOutletProduct
		},
	}
	mux := newTestRouter(nil, productUC, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/products/99", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "product not found", resp.Message)

	rec = doRequest(t, mux, http.MethodGet, "/api/outlet/1", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "this product does not belong to the outlet", resp.Message)
}

func TestProductRoutes_ValidationEnvelope(t *testing.T) {
	productUC := &stubProductUC{
		createProductFn: func(ctx context.Context, caller domain.Identity, req *usecase.CreateProductReq) (int64, error) {
			verr := e.NewValidationError()
			verr.Add("name", "name must be at least 3 characters")
			verr.Add("price", "price must be a non-negative decimal with at most 2 decimal places")
			return 0, verr
		},
	}
	mux := newTestRouter(nil, productUC, nil)

	rec := doRequest(t, mux, http.MethodPost, "/api/products", "", `{"name":"ab"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "the given data was invalid", resp.Message)
	require.Contains(t, resp.Errors, "name")
	require.Contains(t, resp.Errors, "price")
}

func TestProductRoutes_MalformedBody(t *testing.T) {
	mux := newTestRouter(nil, &stubProductUC{}, nil)

	rec := doRequest(t, mux, http.MethodPost, "/api/products", "", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/api/products/abc", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWithIdentity_PassesCallerThrough(t *testing.T) {
	authUC := &stubAuthUC{callers: map[string]domain.Identity{
		"admintoken": {ID: 1, Role: domain.RoleAdmin},
	}}
	var seen domain.Identity
	productUC := &stubProductUC{
		deleteProductFn: func(ctx context.Context, caller domain.Identity, id int64) error {
			seen = caller
			return nil
		},
	}
	mux := newTestRouter(authUC, productUC, nil)

	rec := doRequest(t, mux, http.MethodDelete, "/api/products/1", "admintoken", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(1), seen.ID)
	require.True(t, seen.IsAdmin())
}

func TestWithIdentity_UnknownTokenProceedsAnonymously(t *testing.T) {
	authUC := &stubAuthUC{callers: map[string]domain.Identity{}}
	var seen domain.Identity
	productUC := &stubProductUC{
		deleteProductFn: func(ctx context.Context, caller domain.Identity, id int64) error {
			seen = caller
			return e.ErrUnauthenticated
		},
	}
	mux := newTestRouter(authUC, productUC, nil)

	// Битый токен не отклоняется транспортом: запрос доходит до usecase
	// анонимным, и уже политика отвечает 401.
	rec := doRequest(t, mux, http.MethodDelete, "/api/products/1", "stale", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.True(t, seen.Anonymous())
}

func TestSelfRoute_OmitsPasswordHash(t *testing.T) {
	authUC := &stubAuthUC{callers: map[string]domain.Identity{
		"usertoken": {ID: 7, Role: domain.RoleUser},
	}}
	userUC := &stubUserUC{
		getSelfFn: func(ctx context.Context, caller domain.Identity) (*domain.User, error) {
			return &domain.User{
				ID: caller.ID, Name: "Iggar", Email: "iggar@example.com",
				PasswordHash: "$2a$10$secret", Role: domain.RoleUser,
			}, nil
		},
	}
	mux := newTestRouter(authUC, &stubProductUC{}, userUC)

	rec := doRequest(t, mux, http.MethodGet, "/api/user", "usertoken", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Contains(t, raw, "email")
	require.NotContains(t, raw, "password")
	require.NotContains(t, raw, "password_hash")
}
