package domain

import "time"

// Product описывает товар каталога. Аутлет — не отдельная сущность,
// а срез той же таблицы по флагу HasDiscount: false — обычный каталог,
// true — аутлет. Переключение флага перемещает товар между витринами.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64 // Цена хранится в центах
	Stock       int32
	ImageURL    string
	HasDiscount bool
	Discount    int32 // Процент скидки, 0 < discount <= 100 только при HasDiscount
	CategoryID  int64
	ProviderID  int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// InOutlet сообщает, принадлежит ли товар аутлету.
func (p *Product) InOutlet() bool {
	return p.HasDiscount
}

// DiscountStateValid проверяет инвариант витрин:
// без скидки discount обязан быть 0, со скидкой — в диапазоне (0, 100].
func (p *Product) DiscountStateValid() bool {
	if p.HasDiscount {
		return p.Discount > 0 && p.Discount <= 100
	}
	return p.Discount == 0
}
