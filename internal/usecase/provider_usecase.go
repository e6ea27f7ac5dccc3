package usecase

import (
	"context"
	"strings"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/policy"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
)

// ProviderUseCase реализует административный CRUD поставщиков.
type ProviderUseCase struct {
	providerRepo ProviderRepository
}

func NewProviderUC(providerRepo ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{providerRepo: providerRepo}
}

func (p *ProviderUseCase) List(ctx context.Context, caller domain.Identity) ([]*domain.Provider, error) {
	if err := policy.Allow(caller, policy.OpListProviders, nil); err != nil {
		return nil, err
	}
	return p.providerRepo.List(ctx)
}

func (p *ProviderUseCase) Get(ctx context.Context, caller domain.Identity, id int64) (*domain.Provider, error) {
	if err := policy.Allow(caller, policy.OpGetProvider, nil); err != nil {
		return nil, err
	}
	return p.providerRepo.GetByID(ctx, id)
}

func (p *ProviderUseCase) Create(ctx context.Context, caller domain.Identity, req *CreateProviderReq) (int64, error) {
	if err := policy.Allow(caller, policy.OpCreateProvider, nil); err != nil {
		return 0, err
	}

	verr := e.NewValidationError()
	name := strings.TrimSpace(req.Name)
	if name == "" {
		verr.Add("name", "name is required")
	} else if len(name) > maxNameLen {
		verr.Add("name", "name must not exceed 255 characters")
	}
	if err := verr.AsError(); err != nil {
		return 0, err
	}

	return p.providerRepo.Create(ctx, domain.NewProvider(name, req.Description))
}

// Update частично обновляет поставщика. Существование записи
// разрешается до валидации присланных полей.
func (p *ProviderUseCase) Update(ctx context.Context, caller domain.Identity, id int64, req *UpdateProviderReq) (*domain.Provider, error) {
	if err := policy.Allow(caller, policy.OpUpdateProvider, nil); err != nil {
		return nil, err
	}

	provider, err := p.providerRepo.GetByID(ctx, id)
	if err != nil {
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
			provider.Name = name
		}
	}
	if req.Description != nil {
		provider.Description = req.Description
	}
	if err := verr.AsError(); err != nil {
		return nil, err
	}

	if err := p.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}

	return provider, nil
}

func (p *ProviderUseCase) Delete(ctx context.Context, caller domain.Identity, id int64) error {
	if err := policy.Allow(caller, policy.OpDeleteProvider, nil); err != nil {
		return err
	}

	if _, err := p.providerRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return p.providerRepo.Delete(ctx, id)
}
