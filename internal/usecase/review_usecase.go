package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/policy"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
	"github.com/google/uuid"
)

// ReviewUseCase реализует отзывы с авторизацией по владению: изменять и
// удалять отзыв может только его автор. Проверка существования всегда
// предшествует проверке владения — несуществующий отзыв отвечает 404,
// а не 403, независимо от вызывающего.
type ReviewUseCase struct {
	reviewRepo  ReviewRepository
	productRepo ProductRepository
	producer    EventProducer
	logger      logger.Logger
}

func NewReviewUC(
	reviewRepo ReviewRepository,
	productRepo ProductRepository,
	producer EventProducer,
	logger logger.Logger,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		producer:    producer,
		logger:      logger,
	}
}

func (r *ReviewUseCase) List(ctx context.Context) ([]*domain.Review, error) {
	return r.reviewRepo.List(ctx)
}

func (r *ReviewUseCase) Get(ctx context.Context, id int64) (*domain.Review, error) {
	return r.reviewRepo.GetByID(ctx, id)
}

// Create создаёт отзыв от имени вызывающего. Владелец — всегда вызывающий;
// user_id из тела запроса не принимается.
func (r *ReviewUseCase) Create(ctx context.Context, caller domain.Identity, req *CreateReviewReq) (int64, error) {
	const op = "ReviewUseCase.Create"

	if err := policy.Allow(caller, policy.OpCreateReview, nil); err != nil {
		return 0, err
	}

	verr := e.NewValidationError()
	if req.Rating < minRating || req.Rating > maxRating {
		verr.Add("rating", "rating must be an integer between 1 and 5")
	}
	if req.Comment != nil && len(*req.Comment) > maxDescriptionLen {
		verr.Add("comment", "comment must not exceed 255 characters")
	}
	if req.ProductID == 0 {
		verr.Add("product_id", "product_id is required")
	} else if _, err := r.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			verr.Add("product_id", "the selected product does not exist")
		} else {
			return 0, e.Wrap(op, err)
		}
	}
	if err := verr.AsError(); err != nil {
		return 0, err
	}

	id, err := r.reviewRepo.Create(ctx, domain.NewReview(caller.ID, req.ProductID, req.Rating, req.Comment))
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	event := NewCatalogEvent(uuid.NewString(), EventReviewCreated, id, false, time.Now().UTC())
	if perr := r.producer.Publish(ctx, event); perr != nil {
		r.logger.Warnf("failed to publish %s for review %d: %v", EventReviewCreated, id, perr)
	}

	return id, nil
}

// Update изменяет отзыв. Порядок: аутентификация, существование, владение.
func (r *ReviewUseCase) Update(ctx context.Context, caller domain.Identity, id int64, req *UpdateReviewReq) (*domain.Review, error) {
	if caller.Anonymous() {
		return nil, e.ErrUnauthenticated
	}

	review, err := r.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.Allow(caller, policy.OpUpdateReview, review); err != nil {
		return nil, err
	}

	verr := e.NewValidationError()
	if req.Rating != nil {
		if *req.Rating < minRating || *req.Rating > maxRating {
			verr.Add("rating", "rating must be an integer between 1 and 5")
		} else {
			review.Rating = *req.Rating
		}
	}
	if req.Comment != nil {
		if len(*req.Comment) > maxDescriptionLen {
			verr.Add("comment", "comment must not exceed 255 characters")
		} else {
			review.Comment = req.Comment
		}
	}
	if err := verr.AsError(); err != nil {
		return nil, err
	}

	if err := r.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// Delete удаляет отзыв. Порядок проверок тот же, что в Update.
func (r *ReviewUseCase) Delete(ctx context.Context, caller domain.Identity, id int64) error {
	if caller.Anonymous() {
		return e.ErrUnauthenticated
	}

	review, err := r.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := policy.Allow(caller, policy.OpDeleteReview, review); err != nil {
		return err
	}

	return r.reviewRepo.Delete(ctx, id)
}
