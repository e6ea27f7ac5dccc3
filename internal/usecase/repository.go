package usecase

import (
	"context"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// ListByDiscount возвращает один из срезов витрины: каталог или аутлет.
	ListByDiscount(ctx context.Context, hasDiscount bool) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	List(ctx context.Context) ([]*domain.Provider, error)
	Update(ctx context.Context, provider *domain.Provider) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	List(ctx context.Context) ([]*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
}

// SessionRepository хранит соответствие opaque bearer-токена и пользователя.
type SessionRepository interface {
	Store(ctx context.Context, token string, userID int64) error
	// Resolve возвращает id пользователя либо e.ErrUnauthenticated,
	// если токен неизвестен или истёк.
	Resolve(ctx context.Context, token string) (int64, error)
	// Delete инвалидирует ровно предъявленный токен.
	Delete(ctx context.Context, token string) error
}

// ImageRepository сохраняет изображение товара и возвращает внешний URL объекта.
type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// EventProducer публикует события каталога во внешнюю шину.
type EventProducer interface {
	Publish(ctx context.Context, event *CatalogEvent) error
}
