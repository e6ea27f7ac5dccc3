package converter

import "time"

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID           int64      `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Role         string     `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Price       int64      `db:"price"`
	Stock       int32      `db:"stock"`
	ImageURL    *string    `db:"image"`
	HasDiscount bool       `db:"has_discount"`
	Discount    int32      `db:"discount"`
	CategoryID  int64      `db:"category_id"`
	ProviderID  int64      `db:"provider_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// ProviderModel представляет запись таблицы providers в PostgreSQL.
type ProviderModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// ReviewModel представляет запись таблицы reviews в PostgreSQL.
type ReviewModel struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	ProductID int64      `db:"product_id"`
	Comment   *string    `db:"comment"`
	Rating    int32      `db:"rating"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}
