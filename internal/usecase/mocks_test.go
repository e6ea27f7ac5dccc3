package usecase

import (
	"context"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/jackc/pgx/v5"
)

// Моки конфигурируются функциями-полями: что не задано, то не вызывается.

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *domain.User) (int64, error)
	getByIDFn     func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
	emailExistsFn func(ctx context.Context, email string, excludeID int64) (bool, error)
	listFn        func(ctx context.Context) ([]*domain.User, error)
	updateFn      func(ctx context.Context, user *domain.User) error
	deleteFn      func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return m.emailExistsFn(ctx, email, excludeID)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return m.listFn(ctx)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.updateFn(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockProductRepo struct {
	createFn         func(ctx context.Context, product *domain.Product) (int64, error)
	getByIDFn        func(ctx context.Context, id int64) (*domain.Product, error)
	listByDiscountFn func(ctx context.Context, hasDiscount bool) ([]*domain.Product, error)
	updateFn         func(ctx context.Context, product *domain.Product) error
	deleteFn         func(ctx context.Context, id int64) error
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) (int64, error) {
	return m.createFn(ctx, product)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockProductRepo) ListByDiscount(ctx context.Context, hasDiscount bool) ([]*domain.Product, error) {
	return m.listByDiscountFn(ctx, hasDiscount)
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	return m.updateFn(ctx, product)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockCategoryRepo struct {
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *mockCategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

type mockProviderRepo struct {
	createFn  func(ctx context.Context, provider *domain.Provider) (int64, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Provider, error)
	listFn    func(ctx context.Context) ([]*domain.Provider, error)
	updateFn  func(ctx context.Context, provider *domain.Provider) error
	deleteFn  func(ctx context.Context, id int64) error
	existsFn  func(ctx context.Context, id int64) (bool, error)
}

func (m *mockProviderRepo) Create(ctx context.Context, provider *domain.Provider) (int64, error) {
	return m.createFn(ctx, provider)
}

func (m *mockProviderRepo) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockProviderRepo) List(ctx context.Context) ([]*domain.Provider, error) {
	return m.listFn(ctx)
}

func (m *mockProviderRepo) Update(ctx context.Context, provider *domain.Provider) error {
	return m.updateFn(ctx, provider)
}

func (m *mockProviderRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockProviderRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

type mockReviewRepo struct {
	createFn  func(ctx context.Context, review *domain.Review) (int64, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Review, error)
	listFn    func(ctx context.Context) ([]*domain.Review, error)
	updateFn  func(ctx context.Context, review *domain.Review) error
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) (int64, error) {
	return m.createFn(ctx, review)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockReviewRepo) List(ctx context.Context) ([]*domain.Review, error) {
	return m.listFn(ctx)
}

func (m *mockReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	return m.updateFn(ctx, review)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// mockSessionRepo хранит сессии в обычной map, без TTL.
type mockSessionRepo struct {
	sessions map[string]int64
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]int64)}
}

func (m *mockSessionRepo) Store(ctx context.Context, token string, userID int64) error {
	m.sessions[token] = userID
	return nil
}

func (m *mockSessionRepo) Resolve(ctx context.Context, token string) (int64, error) {
	userID, ok := m.sessions[token]
	if !ok {
		return 0, e.ErrUnauthenticated
	}
	return userID, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

type mockImageRepo struct {
	uploadFn func(ctx context.Context, image *domain.Image) (string, error)
	deleteFn func(ctx context.Context, key string) error
	deleted  []string
}

func (m *mockImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	return m.uploadFn(ctx, image)
}

func (m *mockImageRepo) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

// mockProducer записывает опубликованные события.
type mockProducer struct {
	events []*CatalogEvent
	err    error
}

func (m *mockProducer) Publish(ctx context.Context, event *CatalogEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

// nopLogger глушит логи в тестах.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeTx подменяет pgx.Tx в транзакционных путях: Commit и Rollback
// всегда успешны, остальные методы не вызываются.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeTxBeginner struct{}

func (fakeTxBeginner) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{}, nil
}
