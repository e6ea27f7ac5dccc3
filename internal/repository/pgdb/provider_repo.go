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

// ProviderRepo реализует репозиторий поставщиков поверх PostgreSQL.
type ProviderRepo struct {
	pool *pgxpool.Pool
	conv converter.ProviderConverter
}

func NewProviderRepo(pool *pgxpool.Pool, conv converter.ProviderConverter) *ProviderRepo {
	return &ProviderRepo{pool: pool, conv: conv}
}

func (p *ProviderRepo) Create(ctx context.Context, provider *domain.Provider) (int64, error) {
	query := `
		INSERT INTO providers (name, description)
		VALUES ($1, $2)
		RETURNING id;
	`

	model := p.conv.ToModel(provider)

	var id int64
	err := tr.QuerierFromCtx(ctx, p.pool).
		QueryRow(ctx, query, model.Name, model.Description).
		Scan(&id)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return id, nil
}

func (p *ProviderRepo) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM providers
		WHERE id = $1;
	`

	var model converter.ProviderModel
	err := tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.Description, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrResourceNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProviderRepo) List(ctx context.Context) ([]*domain.Provider, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM providers
		ORDER BY id;
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ProviderModel, 0)
	for rows.Next() {
		var model converter.ProviderModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.CreatedAt, &model.UpdatedAt,
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

func (p *ProviderRepo) Update(ctx context.Context, provider *domain.Provider) error {
	query := `
		UPDATE providers
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1;
	`

	model := p.conv.ToModel(provider)

	tag, err := tr.QuerierFromCtx(ctx, p.pool).
		Exec(ctx, query, model.ID, model.Name, model.Description)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrResourceNotFound
	}

	return nil
}

func (p *ProviderRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM providers WHERE id = $1;`

	tag, err := tr.QuerierFromCtx(ctx, p.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrResourceNotFound
	}

	return nil
}

func (p *ProviderRepo) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM providers WHERE id = $1);`

	var exists bool
	err := tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}
