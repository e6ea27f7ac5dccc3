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

// ReviewRepo реализует репозиторий отзывов поверх PostgreSQL.
type ReviewRepo struct {
	pool *pgxpool.Pool
	conv converter.ReviewConverter
}

func NewReviewRepo(pool *pgxpool.Pool, conv converter.ReviewConverter) *ReviewRepo {
	return &ReviewRepo{pool: pool, conv: conv}
}

func (r *ReviewRepo) Create(ctx context.Context, review *domain.Review) (int64, error) {
	query := `
		INSERT INTO reviews (user_id, product_id, comment, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	model := r.conv.ToModel(review)

	var id int64
	err := tr.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, query, model.UserID, model.ProductID, model.Comment, model.Rating).
		Scan(&id)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return id, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, comment, rating, created_at, updated_at
		FROM reviews
		WHERE id = $1;
	`

	var model converter.ReviewModel
	err := tr.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.UserID, &model.ProductID, &model.Comment,
			&model.Rating, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrResourceNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}

func (r *ReviewRepo) List(ctx context.Context) ([]*domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, comment, rating, created_at, updated_at
		FROM reviews
		ORDER BY id;
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ReviewModel, 0)
	for rows.Next() {
		var model converter.ReviewModel
		if err := rows.Scan(
			&model.ID, &model.UserID, &model.ProductID, &model.Comment,
			&model.Rating, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToArrEntity(models), nil
}

func (r *ReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	query := `
		UPDATE reviews
		SET comment = $2, rating = $3, updated_at = NOW()
		WHERE id = $1;
	`

	model := r.conv.ToModel(review)

	tag, err := tr.QuerierFromCtx(ctx, r.pool).
		Exec(ctx, query, model.ID, model.Comment, model.Rating)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrResourceNotFound
	}

	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE id = $1;`

	tag, err := tr.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrResourceNotFound
	}

	return nil
}
