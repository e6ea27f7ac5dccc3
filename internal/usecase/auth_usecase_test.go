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

func newAuthUC(userRepo *mockUserRepo, sessions *mockSessionRepo) *AuthUseCase {
	if sessions == nil {
		sessions = newMockSessionRepo()
	}
	return NewAuthUC(userRepo, sessions, fakeTxBeginner{}, &cfg.AuthCfg{BcryptCost: bcrypt.MinCost}, nopLogger{})
}

func TestAuthUC_Register(t *testing.T) {
	t.Run("taken email conflicts before validation", func(t *testing.T) {
		createCalled := false
		userRepo := &mockUserRepo{
			emailExistsFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
				return true, nil
			},
			createFn: func(ctx context.Context, user *domain.User) (int64, error) {
				createCalled = true
				return 0, nil
			},
		}
		uc := newAuthUC(userRepo, nil)

		// Тело заведомо невалидно: конфликт email всё равно побеждает.
		_, err := uc.Register(context.Background(), &RegisterReq{
			Name:     "",
			Email:    "iggar@example.com",
			Password: "short",
		})
		require.ErrorIs(t, err, e.ErrEmailTaken)
		require.False(t, createCalled)
	})

	t.Run("all violations reported together", func(t *testing.T) {
		userRepo := &mockUserRepo{
			emailExistsFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
				return false, nil
			},
		}
		uc := newAuthUC(userRepo, nil)

		_, err := uc.Register(context.Background(), &RegisterReq{
			Name:     "  ",
			Email:    "not-an-email",
			Password: "short",
		})

		var verr *e.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "name")
		require.Contains(t, verr.Fields, "email")
		require.Contains(t, verr.Fields, "password")
	})

	t.Run("creates user with role user", func(t *testing.T) {
		var created *domain.User
		userRepo := &mockUserRepo{
			emailExistsFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
				return false, nil
			},
			createFn: func(ctx context.Context, user *domain.User) (int64, error) {
				created = user
				return 21, nil
			},
		}
		uc := newAuthUC(userRepo, nil)

		id, err := uc.Register(context.Background(), &RegisterReq{
			Name:     "Iggar",
			Email:    "iggar@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
		require.Equal(t, int64(21), id)
		require.Equal(t, domain.RoleUser, created.Role)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("supersecret")))
	})
}

func TestAuthUC_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{ID: 21, Email: "iggar@example.com", PasswordHash: string(hash), Role: domain.RoleUser}
	userRepo := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email != stored.Email {
				return nil, e.ErrUserNotFound
			}
			return stored, nil
		},
	}

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		uc := newAuthUC(userRepo, nil)

		_, err := uc.Login(context.Background(), &LoginReq{Email: "nobody@example.com", Password: "supersecret"})
		require.ErrorIs(t, err, e.ErrInvalidCredentials)

		_, err = uc.Login(context.Background(), &LoginReq{Email: stored.Email, Password: "wrongpass"})
		require.ErrorIs(t, err, e.ErrInvalidCredentials)
	})

	t.Run("success stores session and returns opaque token", func(t *testing.T) {
		sessions := newMockSessionRepo()
		uc := newAuthUC(userRepo, sessions)

		res, err := uc.Login(context.Background(), &LoginReq{Email: stored.Email, Password: "supersecret"})
		require.NoError(t, err)
		require.Len(t, res.Token, 64)
		require.NotContains(t, res.Token, "-")
		require.Equal(t, stored.ID, sessions.sessions[res.Token])
	})
}

func TestAuthUC_Logout(t *testing.T) {
	sessions := newMockSessionRepo()
	sessions.sessions["sometoken"] = 21
	uc := newAuthUC(&mockUserRepo{}, sessions)

	require.ErrorIs(t, uc.Logout(context.Background(), domain.Identity{}, "sometoken"), e.ErrUnauthenticated)
	require.Contains(t, sessions.sessions, "sometoken")

	require.NoError(t, uc.Logout(context.Background(), domain.Identity{ID: 21, Role: domain.RoleUser}, "sometoken"))
	require.NotContains(t, sessions.sessions, "sometoken")
}

func TestAuthUC_ResolveCaller(t *testing.T) {
	sessions := newMockSessionRepo()
	sessions.sessions["livetoken"] = 21
	sessions.sessions["orphaned"] = 99

	userRepo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			if id != 21 {
				return nil, e.ErrUserNotFound
			}
			return &domain.User{ID: 21, Role: domain.RoleAdmin}, nil
		},
	}
	uc := newAuthUC(userRepo, sessions)

	t.Run("unknown token", func(t *testing.T) {
		_, err := uc.ResolveCaller(context.Background(), "missing")
		require.ErrorIs(t, err, e.ErrUnauthenticated)
	})

	t.Run("orphaned session of deleted user", func(t *testing.T) {
		_, err := uc.ResolveCaller(context.Background(), "orphaned")
		require.ErrorIs(t, err, e.ErrUnauthenticated)
	})

	t.Run("role comes from the user record", func(t *testing.T) {
		caller, err := uc.ResolveCaller(context.Background(), "livetoken")
		require.NoError(t, err)
		require.Equal(t, int64(21), caller.ID)
		require.True(t, caller.IsAdmin())
	})
}
