package http

import (
	"net/http"

	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

// OutletHandler обслуживает аутлетный срез той же таблицы товаров:
// те же операции, но только над записями с has_discount = true.
type OutletHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewOutletHandler(productUsecase usecase.ProductUC, logger logger.Logger) *OutletHandler {
	return &OutletHandler{productUsecase: productUsecase, logger: logger}
}

// list
//
//	@Summary	Список товаров аутлета
//	@Tags		outlet
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/outlet [get]
func (o *OutletHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := o.productUsecase.ListOutlet(r.Context())
	if err != nil {
		o.logger.Errorf(err, "list outlet failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrProductResponse(products))
}

// get
//
//	@Summary	Товар аутлета по идентификатору
//	@Tags		outlet
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse	"Товар не найден либо не принадлежит аутлету"
//	@Router		/outlet/{id} [get]
func (o *OutletHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := o.productUsecase.GetOutletProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductResponse(product))
}

// create
//
//	@Summary		Создание товара аутлета
//	@Description	Товар создаётся со скидкой: discount обязателен и лежит в (0, 100].
//	@Tags			outlet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			input	body		createProductRequest	true	"Данные товара"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/outlet [post]
func (o *OutletHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id, err := o.productUsecase.CreateOutletProduct(r.Context(), identityFrom(r.Context()), req.toUsecase())
	if err != nil {
		o.logger.Warnf("create outlet product failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "product created successfully",
		"id":      id,
	})
}

// update
//
//	@Summary	Частичное обновление товара аутлета
//	@Tags		outlet
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"ID товара"
//	@Param		input	body		updateProductRequest	true	"Изменяемые поля"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ValidationErrorResponse
//	@Router		/outlet/{id} [put]
func (o *OutletHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	product, err := o.productUsecase.UpdateOutletProduct(r.Context(), identityFrom(r.Context()), id, req.toUsecase())
	if err != nil {
		o.logger.Warnf("update outlet product %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "product updated successfully",
		"product": NewProductResponse(product),
	})
}

// delete
//
//	@Summary	Удаление товара аутлета
//	@Tags		outlet
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	404	{object}	ErrorResponse	"Товар не найден либо не принадлежит аутлету"
//	@Router		/outlet/{id} [delete]
func (o *OutletHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := o.productUsecase.DeleteOutletProduct(r.Context(), identityFrom(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "product deleted successfully",
	})
}
