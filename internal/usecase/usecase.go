package usecase

import (
	"context"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
)

// Каждый метод принимает личность вызывающего (нулевая — аноним):
// проверка политики авторизации выполняется внутри usecase, до обращения
// к репозиториям, и везде в одном и том же порядке.

type AuthUC interface {
	Register(ctx context.Context, req *RegisterReq) (int64, error)
	Login(ctx context.Context, req *LoginReq) (*LoginRes, error)
	Logout(ctx context.Context, caller domain.Identity, token string) error
	// ResolveCaller восстанавливает личность по токену. Роль читается из
	// записи пользователя в момент запроса, а не из токена.
	ResolveCaller(ctx context.Context, token string) (domain.Identity, error)
}

type ProductUC interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, caller domain.Identity, req *CreateProductReq) (int64, error)
	UpdateProduct(ctx context.Context, caller domain.Identity, id int64, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, caller domain.Identity, id int64) error

	ListOutlet(ctx context.Context) ([]*domain.Product, error)
	GetOutletProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateOutletProduct(ctx context.Context, caller domain.Identity, req *CreateProductReq) (int64, error)
	UpdateOutletProduct(ctx context.Context, caller domain.Identity, id int64, req *UpdateProductReq) (*domain.Product, error)
	DeleteOutletProduct(ctx context.Context, caller domain.Identity, id int64) error

	AttachProductImage(ctx context.Context, caller domain.Identity, id int64, image *ProductImage) (*domain.Product, error)
}

type ProviderUC interface {
	List(ctx context.Context, caller domain.Identity) ([]*domain.Provider, error)
	Get(ctx context.Context, caller domain.Identity, id int64) (*domain.Provider, error)
	Create(ctx context.Context, caller domain.Identity, req *CreateProviderReq) (int64, error)
	Update(ctx context.Context, caller domain.Identity, id int64, req *UpdateProviderReq) (*domain.Provider, error)
	Delete(ctx context.Context, caller domain.Identity, id int64) error
}

type ReviewUC interface {
	List(ctx context.Context) ([]*domain.Review, error)
	Get(ctx context.Context, id int64) (*domain.Review, error)
	Create(ctx context.Context, caller domain.Identity, req *CreateReviewReq) (int64, error)
	Update(ctx context.Context, caller domain.Identity, id int64, req *UpdateReviewReq) (*domain.Review, error)
	Delete(ctx context.Context, caller domain.Identity, id int64) error
}

type UserUC interface {
	// GetSelf возвращает запись самого вызывающего (GET /api/user).
	GetSelf(ctx context.Context, caller domain.Identity) (*domain.User, error)
	List(ctx context.Context, caller domain.Identity) ([]*domain.User, error)
	Get(ctx context.Context, caller domain.Identity, id int64) (*domain.User, error)
	Create(ctx context.Context, caller domain.Identity, req *CreateUserReq) (int64, error)
	Update(ctx context.Context, caller domain.Identity, id int64, req *UpdateUserReq) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Identity, id int64) error
}
