package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/policy"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase реализует регистрацию, вход, выход и восстановление личности
// по bearer-токену. Токен opaque: сам по себе он не несёт ни роли, ни
// каких-либо прав — только ссылку на сессию в Redis.
type AuthUseCase struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	dbPool      transaction.Transactional
	cfg         *cfg.AuthCfg
	logger      logger.Logger
}

func NewAuthUC(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	dbPool transaction.Transactional,
	cfg *cfg.AuthCfg,
	logger logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		dbPool:      dbPool,
		cfg:         cfg,
		logger:      logger,
	}
}

// Register создаёт учётную запись с ролью user.
// Занятый email отклоняется конфликтом до валидации остальных полей —
// порядок проверок наблюдаем клиентом и сохранён от исходного API.
func (a *AuthUseCase) Register(ctx context.Context, req *RegisterReq) (int64, error) {
	const op = "AuthUseCase.Register"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return 0, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	taken, err := a.userRepo.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return 0, e.Wrap(op, err)
	}
	if taken {
		err = e.ErrEmailTaken
		return 0, err
	}

	if err = a.validateRegister(req); err != nil {
		return 0, err
	}

	hash, err := hashPassword(req.Password, a.cfg.BcryptCost)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	id, err := a.userRepo.Create(ctx, domain.NewUser(strings.TrimSpace(req.Name), req.Email, hash, domain.RoleUser))
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, e.Wrap(op, err)
	}

	return id, nil
}

// Login проверяет учётные данные и выдаёт токен сессии.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*LoginRes, error) {
	const op = "AuthUseCase.Login"

	user, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return nil, e.ErrInvalidCredentials
		}
		return nil, e.Wrap(op, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, e.ErrInvalidCredentials
	}

	token := newSessionToken()
	if err := a.sessionRepo.Store(ctx, token, user.ID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewLoginRes(token), nil
}

// Logout инвалидирует ровно предъявленный токен.
func (a *AuthUseCase) Logout(ctx context.Context, caller domain.Identity, token string) error {
	const op = "AuthUseCase.Logout"

	if err := policy.Allow(caller, policy.OpLogout, nil); err != nil {
		return err
	}

	if err := a.sessionRepo.Delete(ctx, token); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ResolveCaller восстанавливает личность по токену. Роль всегда читается
// из записи пользователя, а не кэшируется в сессии: смена роли действует
// со следующего запроса.
func (a *AuthUseCase) ResolveCaller(ctx context.Context, token string) (domain.Identity, error) {
	const op = "AuthUseCase.ResolveCaller"

	userID, err := a.sessionRepo.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, e.ErrUnauthenticated) {
			return domain.Identity{}, err
		}
		return domain.Identity{}, e.Wrap(op, err)
	}

	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			// пользователь удалён, сессия осиротела
			return domain.Identity{}, e.ErrUnauthenticated
		}
		return domain.Identity{}, e.Wrap(op, err)
	}

	return domain.Identity{ID: user.ID, Role: user.Role}, nil
}

func (a *AuthUseCase) validateRegister(req *RegisterReq) error {
	verr := e.NewValidationError()

	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "name is required")
	} else if len(req.Name) > maxNameLen {
		verr.Add("name", "name must not exceed 255 characters")
	}

	if req.Email == "" {
		verr.Add("email", "email is required")
	} else if !validEmail(req.Email) {
		verr.Add("email", "email must be a valid email address")
	}

	if len(req.Password) < minPasswordLen {
		verr.Add("password", "password must be at least 8 characters")
	}

	return verr.AsError()
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// newSessionToken генерирует opaque-токен сессии.
func newSessionToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
