package pgdb

import (
	"context"
	"errors"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/repository/pgdb/converter"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
// Каталог и аутлет живут в одной таблице и различаются флагом has_discount.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{pool: pool, conv: conv}
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products (name, description, price, stock, image, has_discount, discount, category_id, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`

	model := p.conv.ToModel(product)

	var id int64
	err := tr.QuerierFromCtx(ctx, p.pool).
		QueryRow(ctx, query,
			model.Name, model.Description, model.Price, model.Stock, model.ImageURL,
			model.HasDiscount, model.Discount, model.CategoryID, model.ProviderID,
		).
		Scan(&id)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return id, nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, stock, image, has_discount, discount,
		       category_id, provider_id, created_at, updated_at
		FROM products
		WHERE id = $1;
	`

	var model converter.ProductModel
	err := tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.Name, &model.Description, &model.Price, &model.Stock,
			&model.ImageURL, &model.HasDiscount, &model.Discount,
			&model.CategoryID, &model.ProviderID, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// ListByDiscount возвращает срез витрины: false — обычный каталог, true — аутлет.
func (p *ProductRepo) ListByDiscount(ctx context.Context, hasDiscount bool) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, price, stock, image, has_discount, discount,
		       category_id, provider_id, created_at, updated_at
		FROM products
		WHERE has_discount = $1
		ORDER BY id;
	`

	rows, err := p.pool.Query(ctx, query, hasDiscount)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Price, &model.Stock,
			&model.ImageURL, &model.HasDiscount, &model.Discount,
			&model.CategoryID, &model.ProviderID, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, image = $6,
		    has_discount = $7, discount = $8, category_id = $9, provider_id = $10,
		    updated_at = NOW()
		WHERE id = $1;
	`

	model := p.conv.ToModel(product)

	tag, err := tr.QuerierFromCtx(ctx, p.pool).
		Exec(ctx, query,
			model.ID, model.Name, model.Description, model.Price, model.Stock,
			model.ImageURL, model.HasDiscount, model.Discount,
			model.CategoryID, model.ProviderID,
		)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1;`

	tag, err := tr.QuerierFromCtx(ctx, p.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}
