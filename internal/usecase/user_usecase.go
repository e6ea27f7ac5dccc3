package usecase

import (
	"context"
	"strings"

	"github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/policy"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
)

// UserUseCase реализует административный CRUD пользователей и
// самостоятельное обновление собственной записи.
type UserUseCase struct {
	userRepo UserRepository
	cfg      *cfg.AuthCfg
}

func NewUserUC(userRepo UserRepository, cfg *cfg.AuthCfg) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// GetSelf возвращает запись самого вызывающего.
func (u *UserUseCase) GetSelf(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	if err := policy.Allow(caller, policy.OpReadSelf, nil); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, caller.ID)
}

func (u *UserUseCase) List(ctx context.Context, caller domain.Identity) ([]*domain.User, error) {
	if err := policy.Allow(caller, policy.OpListUsers, nil); err != nil {
		return nil, err
	}
	return u.userRepo.List(ctx)
}

func (u *UserUseCase) Get(ctx context.Context, caller domain.Identity, id int64) (*domain.User, error) {
	if err := policy.Allow(caller, policy.OpGetUser, nil); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, id)
}

// Create создаёт пользователя с явно указанной ролью; без роли в запросе
// назначается user.
func (u *UserUseCase) Create(ctx context.Context, caller domain.Identity, req *CreateUserReq) (int64, error) {
	if err := policy.Allow(caller, policy.OpCreateUser, nil); err != nil {
		return 0, err
	}

	verr := e.NewValidationError()
	name := strings.TrimSpace(req.Name)
	if name == "" {
		verr.Add("name", "name is required")
	} else if len(name) > maxNameLen {
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

	role := domain.RoleUser
	if req.Role != nil {
		role = domain.Role(*req.Role)
		if !role.Valid() {
			verr.Add("role", "role must be either user or admin")
		}
	}
	if err := verr.AsError(); err != nil {
		return 0, err
	}

	taken, err := u.userRepo.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, e.ErrEmailTaken
	}

	hash, err := hashPassword(req.Password, u.cfg.BcryptCost)
	if err != nil {
		return 0, err
	}

	return u.userRepo.Create(ctx, domain.NewUser(name, req.Email, hash, role))
}

// Update частично обновляет пользователя. Поле role, присланное
// не-администратором, молча отбрасывается: остальные поля применяются,
// отказа не происходит.
func (u *UserUseCase) Update(ctx context.Context, caller domain.Identity, id int64, req *UpdateUserReq) (*domain.User, error) {
	if caller.Anonymous() {
		return nil, e.ErrUnauthenticated
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.Allow(caller, policy.OpUpdateUser, user); err != nil {
		return nil, err
	}

	verr := e.NewValidationError()
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			verr.Add("name", "name is required")
		} else if len(name) > maxNameLen {
			verr.Add("name", "name must not exceed 255 characters")
		} else {
			user.Name = name
		}
	}

	if req.Email != nil {
		if !validEmail(*req.Email) {
			verr.Add("email", "email must be a valid email address")
		} else {
			taken, err := u.userRepo.EmailExists(ctx, *req.Email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, e.ErrEmailTaken
			}
			user.Email = *req.Email
		}
	}

	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			verr.Add("password", "password must be at least 8 characters")
		} else {
			hash, err := hashPassword(*req.Password, u.cfg.BcryptCost)
			if err != nil {
				return nil, err
			}
			user.PasswordHash = hash
		}
	}

	if req.Role != nil && policy.AllowRoleChange(caller) {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			verr.Add("role", "role must be either user or admin")
		} else {
			user.Role = role
		}
	}

	if err := verr.AsError(); err != nil {
		return nil, err
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *UserUseCase) Delete(ctx context.Context, caller domain.Identity, id int64) error {
	if err := policy.Allow(caller, policy.OpDeleteUser, nil); err != nil {
		return err
	}

	if _, err := u.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return u.userRepo.Delete(ctx, id)
}
