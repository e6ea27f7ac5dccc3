package pgdb

import (
	"context"
	"errors"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/repository/pgdb/converter"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const uniqueViolationCode = "23505"

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

func (u *UserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	model := u.conv.ToModel(user)

	var id int64
	err := tr.QuerierFromCtx(ctx, u.pool).
		QueryRow(ctx, query, model.Name, model.Email, model.PasswordHash, model.Role).
		Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, e.ErrEmailTaken
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return id, nil
}

func (u *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users
		WHERE id = $1;
	`

	model, err := u.scanOne(ctx, query, id)
	if err != nil {
		return nil, err
	}

	return u.conv.ToEntity(model), nil
}

func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users
		WHERE email = $1;
	`

	model, err := u.scanOne(ctx, query, email)
	if err != nil {
		return nil, err
	}

	return u.conv.ToEntity(model), nil
}

// EmailExists проверяет занятость адреса, исключая запись excludeID
// (0 — не исключать никого).
func (u *UserRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE email = $1 AND id <> $2
		);
	`

	var exists bool
	err := tr.QuerierFromCtx(ctx, u.pool).QueryRow(ctx, query, email, excludeID).Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

func (u *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users
		ORDER BY id;
	`

	rows, err := u.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.UserModel, 0)
	for rows.Next() {
		var model converter.UserModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Email, &model.PasswordHash,
			&model.Role, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToArrEntity(models), nil
}

func (u *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password = $4, role = $5, updated_at = NOW()
		WHERE id = $1;
	`

	model := u.conv.ToModel(user)

	tag, err := tr.QuerierFromCtx(ctx, u.pool).
		Exec(ctx, query, model.ID, model.Name, model.Email, model.PasswordHash, model.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return e.ErrEmailTaken
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrUserNotFound
	}

	return nil
}

func (u *UserRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1;`

	tag, err := tr.QuerierFromCtx(ctx, u.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrUserNotFound
	}

	return nil
}

func (u *UserRepo) scanOne(ctx context.Context, query string, arg any) (*converter.UserModel, error) {
	var model converter.UserModel
	err := tr.QuerierFromCtx(ctx, u.pool).QueryRow(ctx, query, arg).
		Scan(
			&model.ID, &model.Name, &model.Email, &model.PasswordHash,
			&model.Role, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrUserNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &model, nil
}
