package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
)

// ProductResponse — внешнее представление товара. Цена хранится в центах,
// наружу уходит десятичной строкой с двумя знаками.
type ProductResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	Stock       int32      `json:"stock"`
	Image       *string    `json:"image"`
	HasDiscount bool       `json:"has_discount"`
	Discount    int32      `json:"discount"`
	CategoryID  int64      `json:"category_id"`
	ProviderID  int64      `json:"provider_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// UserResponse никогда не содержит хэш пароля.
type UserResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ProviderResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type ReviewResponse struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	ProductID int64      `json:"product_id"`
	Comment   *string    `json:"comment"`
	Rating    int32      `json:"rating"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func NewProductResponse(p *domain.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       decimal.NewFromInt(p.Price).Div(decimal.NewFromInt(100)).StringFixed(2),
		Stock:       p.Stock,
		HasDiscount: p.HasDiscount,
		Discount:    p.Discount,
		CategoryID:  p.CategoryID,
		ProviderID:  p.ProviderID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ImageURL != "" {
		resp.Image = &p.ImageURL
	}
	return resp
}

func NewArrProductResponse(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, NewProductResponse(p))
	}
	return result
}

func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewArrUserResponse(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, NewUserResponse(u))
	}
	return result
}

func NewProviderResponse(p *domain.Provider) *ProviderResponse {
	return &ProviderResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewArrProviderResponse(providers []*domain.Provider) []*ProviderResponse {
	result := make([]*ProviderResponse, 0, len(providers))
	for _, p := range providers {
		result = append(result, NewProviderResponse(p))
	}
	return result
}

func NewReviewResponse(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Comment:   r.Comment,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewArrReviewResponse(reviews []*domain.Review) []*ReviewResponse {
	result := make([]*ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, NewReviewResponse(r))
	}
	return result
}
