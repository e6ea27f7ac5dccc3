package domain

import "time"

// Provider описывает поставщика товаров.
type Provider struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProvider(name string, description *string) *Provider {
	return &Provider{
		Name:        name,
		Description: description,
	}
}
