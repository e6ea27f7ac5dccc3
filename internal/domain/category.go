package domain

import "time"

// Category описывает категорию товара. Полный CRUD по категориям не
// выставляется наружу: таблица нужна как цель внешнего ключа продуктов.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
