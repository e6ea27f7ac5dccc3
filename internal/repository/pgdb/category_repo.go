package pgdb

import (
	"context"

	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
// Категории заводятся миграциями, наружу торчит только проверка существования.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (c *CategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1);`

	var exists bool
	err := tr.QuerierFromCtx(ctx, c.pool).QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}
