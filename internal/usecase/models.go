package usecase

import "time"

// AUTH

// RegisterReq — запрос на регистрацию. Роль не принимается:
// самостоятельная регистрация всегда создаёт пользователя с ролью user.
type RegisterReq struct {
	Name     string
	Email    string
	Password string
}

type LoginReq struct {
	Email    string
	Password string
}

// LoginRes — выданный opaque bearer-токен.
type LoginRes struct {
	Token string
}

// PRODUCTS / OUTLET

// CreateProductReq — запрос на создание товара. Цена приходит строкой
// в десятичном виде и проверяется на точность не более двух знаков.
// Поле Discount имеет значение только для аутлетного пути создания:
// обычный путь принудительно создаёт товар без скидки.
type CreateProductReq struct {
	Name        string
	Description string
	Price       string
	Stock       *int32
	ImageURL    *string
	Discount    *int32
	CategoryID  int64
	ProviderID  int64
}

// UpdateProductReq — частичное обновление: применяются только присланные
// поля (nil — поле не трогать). Явный allow-list вместо прямого
// переноса тела запроса в запись.
type UpdateProductReq struct {
	Name        *string
	Description *string
	Price       *string
	Stock       *int32
	ImageURL    *string
	HasDiscount *bool
	Discount    *int32
	CategoryID  *int64
	ProviderID  *int64
}

// ProductImage — изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte
	MimeType string
	Size     int64
	Name     string // оригинальное имя файла (для логов)
}

// PROVIDERS

type CreateProviderReq struct {
	Name        string
	Description *string
}

type UpdateProviderReq struct {
	Name        *string
	Description *string
}

// REVIEWS

type CreateReviewReq struct {
	ProductID int64
	Rating    int32
	Comment   *string
}

type UpdateReviewReq struct {
	Rating  *int32
	Comment *string
}

// USERS

// CreateUserReq — административное создание пользователя. Роль опциональна,
// по умолчанию user.
type CreateUserReq struct {
	Name     string
	Email    string
	Password string
	Role     *string
}

type UpdateUserReq struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// EVENTS

// CatalogEvent — событие каталога, публикуемое в Kafka после успешной
// мутации. Outlet помечает, через какую витрину выполнена операция.
type CatalogEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	EntityID   int64     `json:"entity_id"`
	Outlet     bool      `json:"outlet,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventReviewCreated  = "review.created"
)

// MAPPERS

func NewCatalogEvent(eventID, eventType string, entityID int64, outlet bool, occurredAt time.Time) *CatalogEvent {
	return &CatalogEvent{
		EventID:    eventID,
		Type:       eventType,
		EntityID:   entityID,
		Outlet:     outlet,
		OccurredAt: occurredAt,
	}
}

func NewLoginRes(token string) *LoginRes {
	return &LoginRes{Token: token}
}
