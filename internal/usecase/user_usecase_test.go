package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
)

func newUserUC(userRepo *mockUserRepo) *UserUseCase {
	return NewUserUC(userRepo, &cfg.AuthCfg{BcryptCost: bcrypt.MinCost})
}

func userFixture(id int64, role domain.Role) *domain.User {
	return &domain.User{ID: id, Name: "Iggar", Email: "iggar@example.com", Role: role}
}

func TestUserUC_GetSelf(t *testing.T) {
	userRepo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return userFixture(id, domain.RoleUser), nil
		},
	}
	uc := newUserUC(userRepo)

	_, err := uc.GetSelf(context.Background(), domain.Identity{})
	require.ErrorIs(t, err, e.ErrUnauthenticated)

	user, err := uc.GetSelf(context.Background(), testUser)
	require.NoError(t, err)
	require.Equal(t, testUser.ID, user.ID)
}

func TestUserUC_AdminOnlyOps(t *testing.T) {
	userRepo := &mockUserRepo{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{userFixture(1, domain.RoleAdmin)}, nil
		},
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return userFixture(id, domain.RoleUser), nil
		},
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	uc := newUserUC(userRepo)

	_, err := uc.List(context.Background(), testUser)
	require.ErrorIs(t, err, e.ErrForbidden)
	_, err = uc.Get(context.Background(), testUser, 1)
	require.ErrorIs(t, err, e.ErrForbidden)
	require.ErrorIs(t, uc.Delete(context.Background(), testUser, 1), e.ErrForbidden)

	users, err := uc.List(context.Background(), testAdmin)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NoError(t, uc.Delete(context.Background(), testAdmin, 2))
}

func TestUserUC_Create(t *testing.T) {
	t.Run("role defaults to user", func(t *testing.T) {
		var created *domain.User
		userRepo := &mockUserRepo{
			emailExistsFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
				return false, nil
			},
			createFn: func(ctx context.Context, user *domain.User) (int64, error) {
				created = user
				return 5, nil
			},
		}
		uc := newUserUC(userRepo)

		id, err := uc.Create(context.Background(), testAdmin, &CreateUserReq{
			Name:     "Nuevo",
			Email:    "nuevo@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
		require.Equal(t, int64(5), id)
		require.Equal(t, domain.RoleUser, created.Role)
	})

	t.Run("explicit role applies", func(t *testing.T) {
		userRepo := &mockUserRepo{
			emailExistsFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
				return false, nil
			},
			createFn: func(ctx context.Context, user *domain.User) (int64, error) {
				require.Equal(t, domain.RoleAdmin, user.Role)
				return 6, nil
			},
		}
		uc := newUserUC(userRepo)

		_, err := uc.Create(context.Background(), testAdmin, &CreateUserReq{
			Name:     "Nuevo admin",
			Email:    "admin2@example.com",
			Password: "supersecret",
			Role:     strp("admin"),
		})
		require.NoError(t, err)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		uc := newUserUC(&mockUserRepo{})

		_, err := uc.Create(context.Background(), testAdmin, &CreateUserReq{
			Name:     "Nuevo",
			Email:    "nuevo@example.com",
			Password: "supersecret",
			Role:     strp("superuser"),
		})

		var verr *e.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "role")
	})

	t.Run("taken email conflicts", func(t *testing.T) {
		userRepo := &mockUserRepo{
			emailExistsFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
				return true, nil
			},
		}
		uc := newUserUC(userRepo)

		_, err := uc.Create(context.Background(), testAdmin, &CreateUserReq{
			Name:     "Nuevo",
			Email:    "iggar@example.com",
			Password: "supersecret",
		})
		require.ErrorIs(t, err, e.ErrEmailTaken)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		uc := newUserUC(&mockUserRepo{})

		_, err := uc.Create(context.Background(), testUser, &CreateUserReq{
			Name:     "Nuevo",
			Email:    "nuevo@example.com",
			Password: "supersecret",
		})
		require.ErrorIs(t, err, e.ErrForbidden)
	})
}

func TestUserUC_Update(t *testing.T) {
	newRepo := func() *mockUserRepo {
		return &mockUserRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
				return userFixture(id, domain.RoleUser), nil
			},
			emailExistsFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
				return false, nil
			},
			updateFn: func(ctx context.Context, user *domain.User) error { return nil },
		}
	}

	t.Run("anonymous rejected before lookup", func(t *testing.T) {
		uc := newUserUC(&mockUserRepo{})

		_, err := uc.Update(context.Background(), domain.Identity{}, 7, &UpdateUserReq{})
		require.ErrorIs(t, err, e.ErrUnauthenticated)
	})

	t.Run("self update allowed, foreign forbidden", func(t *testing.T) {
		uc := newUserUC(newRepo())

		user, err := uc.Update(context.Background(), testUser, testUser.ID, &UpdateUserReq{
			Name: strp("Iggar Saudev"),
		})
		require.NoError(t, err)
		require.Equal(t, "Iggar Saudev", user.Name)

		_, err = uc.Update(context.Background(), testUser, 8, &UpdateUserReq{Name: strp("Otro")})
		require.ErrorIs(t, err, e.ErrForbidden)
	})

	t.Run("role patch from non-admin is silently dropped", func(t *testing.T) {
		uc := newUserUC(newRepo())

		user, err := uc.Update(context.Background(), testUser, testUser.ID, &UpdateUserReq{
			Name: strp("Iggar Saudev"),
			Role: strp("admin"),
		})
		require.NoError(t, err)
		require.Equal(t, "Iggar Saudev", user.Name) // остальные поля применились
		require.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("role patch from admin applies", func(t *testing.T) {
		uc := newUserUC(newRepo())

		user, err := uc.Update(context.Background(), testAdmin, 7, &UpdateUserReq{
			Role: strp("admin"),
		})
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("taken email conflicts", func(t *testing.T) {
		repo := newRepo()
		repo.emailExistsFn = func(ctx context.Context, email string, excludeID int64) (bool, error) {
			require.Equal(t, int64(7), excludeID) // собственный email не считается занятым
			return true, nil
		}
		uc := newUserUC(repo)

		_, err := uc.Update(context.Background(), testUser, testUser.ID, &UpdateUserReq{
			Email: strp("taken@example.com"),
		})
		require.ErrorIs(t, err, e.ErrEmailTaken)
	})

	t.Run("password patch is rehashed", func(t *testing.T) {
		uc := newUserUC(newRepo())

		user, err := uc.Update(context.Background(), testUser, testUser.ID, &UpdateUserReq{
			Password: strp("newpassword"),
		})
		require.NoError(t, err)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
	})
}
