package http

import (
	"net/http"

	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUC
	logger        logger.Logger
}

func NewReviewHandler(reviewUsecase usecase.ReviewUC, logger logger.Logger) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase, logger: logger}
}

type createReviewRequest struct {
	ProductID int64   `json:"product_id"`
	Rating    int32   `json:"rating"`
	Comment   *string `json:"comment"`
}

type updateReviewRequest struct {
	Rating  *int32  `json:"rating"`
	Comment *string `json:"comment"`
}

// list
//
//	@Summary	Список отзывов
//	@Tags		reviews
//	@Produce	json
//	@Success	200	{array}	ReviewResponse
//	@Router		/reviews [get]
func (h *ReviewHandler) list(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUsecase.List(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list reviews failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrReviewResponse(reviews))
}

// get
//
//	@Summary	Отзыв по идентификатору
//	@Tags		reviews
//	@Produce	json
//	@Param		id	path		int	true	"ID отзыва"
//	@Success	200	{object}	ReviewResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/reviews/{id} [get]
func (h *ReviewHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	review, err := h.reviewUsecase.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewReviewResponse(review))
}

// create
//
//	@Summary		Создание отзыва
//	@Description	Автором отзыва становится вызывающий; user_id из тела не принимается.
//	@Tags			reviews
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			input	body		createReviewRequest	true	"Данные отзыва"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/reviews [post]
func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id, err := h.reviewUsecase.Create(r.Context(), identityFrom(r.Context()), &usecase.CreateReviewReq{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.logger.Warnf("create review failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "review created successfully",
		"id":      id,
	})
}

// update
//
//	@Summary		Обновление отзыва владельцем
//	@Description	Несуществующий отзыв даёт 404 до проверки владения; чужой отзыв — 403.
//	@Tags			reviews
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID отзыва"
//	@Param			input	body		updateReviewRequest	true	"Изменяемые поля"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/reviews/{id} [put]
func (h *ReviewHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	review, err := h.reviewUsecase.Update(r.Context(), identityFrom(r.Context()), id, &usecase.UpdateReviewReq{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.logger.Warnf("update review %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "review updated successfully",
		"review":  NewReviewResponse(review),
	})
}

// delete
//
//	@Summary	Удаление отзыва владельцем
//	@Tags		reviews
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"ID отзыва"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/reviews/{id} [delete]
func (h *ReviewHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.reviewUsecase.Delete(r.Context(), identityFrom(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "review deleted successfully",
	})
}
