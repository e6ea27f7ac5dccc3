package converter

import (
	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
)

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter interface {
	ToModel(entity *domain.User) *UserModel
	ToEntity(model *UserModel) *domain.User
	ToArrEntity(models []*UserModel) []*domain.User
}

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []*ProductModel) []*domain.Product
}

// ProviderConverter преобразует сущности Provider между domain и моделью PostgreSQL.
type ProviderConverter interface {
	ToModel(entity *domain.Provider) *ProviderModel
	ToEntity(model *ProviderModel) *domain.Provider
	ToArrEntity(models []*ProviderModel) []*domain.Provider
}

// ReviewConverter преобразует сущности Review между domain и моделью PostgreSQL.
type ReviewConverter interface {
	ToModel(entity *domain.Review) *ReviewModel
	ToEntity(model *ReviewModel) *domain.Review
	ToArrEntity(models []*ReviewModel) []*domain.Review
}

type userConverter struct{}

func NewUserConverter() UserConverter { return userConverter{} }

func (userConverter) ToModel(entity *domain.User) *UserModel {
	return &UserModel{
		ID:           entity.ID,
		Name:         entity.Name,
		Email:        entity.Email,
		PasswordHash: entity.PasswordHash,
		Role:         string(entity.Role),
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}

func (userConverter) ToEntity(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         domain.Role(model.Role),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func (c userConverter) ToArrEntity(models []*UserModel) []*domain.User {
	result := make([]*domain.User, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}
	return result
}

type productConverter struct{}

func NewProductConverter() ProductConverter { return productConverter{} }

func (productConverter) ToModel(entity *domain.Product) *ProductModel {
	model := &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price,
		Stock:       entity.Stock,
		HasDiscount: entity.HasDiscount,
		Discount:    entity.Discount,
		CategoryID:  entity.CategoryID,
		ProviderID:  entity.ProviderID,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
	if entity.ImageURL != "" {
		model.ImageURL = &entity.ImageURL
	}
	return model
}

func (productConverter) ToEntity(model *ProductModel) *domain.Product {
	entity := &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		Stock:       model.Stock,
		HasDiscount: model.HasDiscount,
		Discount:    model.Discount,
		CategoryID:  model.CategoryID,
		ProviderID:  model.ProviderID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.ImageURL != nil {
		entity.ImageURL = *model.ImageURL
	}
	return entity
}

func (c productConverter) ToArrEntity(models []*ProductModel) []*domain.Product {
	result := make([]*domain.Product, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}
	return result
}

type providerConverter struct{}

func NewProviderConverter() ProviderConverter { return providerConverter{} }

func (providerConverter) ToModel(entity *domain.Provider) *ProviderModel {
	return &ProviderModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (providerConverter) ToEntity(model *ProviderModel) *domain.Provider {
	return &domain.Provider{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (c providerConverter) ToArrEntity(models []*ProviderModel) []*domain.Provider {
	result := make([]*domain.Provider, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}
	return result
}

type reviewConverter struct{}

func NewReviewConverter() ReviewConverter { return reviewConverter{} }

func (reviewConverter) ToModel(entity *domain.Review) *ReviewModel {
	return &ReviewModel{
		ID:        entity.ID,
		UserID:    entity.UserID,
		ProductID: entity.ProductID,
		Comment:   entity.Comment,
		Rating:    entity.Rating,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func (reviewConverter) ToEntity(model *ReviewModel) *domain.Review {
	return &domain.Review{
		ID:        model.ID,
		UserID:    model.UserID,
		ProductID: model.ProductID,
		Comment:   model.Comment,
		Rating:    model.Rating,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c reviewConverter) ToArrEntity(models []*ReviewModel) []*domain.Review {
	result := make([]*domain.Review, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}
	return result
}
