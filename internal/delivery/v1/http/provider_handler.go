package http

import (
	"net/http"

	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

type ProviderHandler struct {
	providerUsecase usecase.ProviderUC
	logger          logger.Logger
}

func NewProviderHandler(providerUsecase usecase.ProviderUC, logger logger.Logger) *ProviderHandler {
	return &ProviderHandler{providerUsecase: providerUsecase, logger: logger}
}

type createProviderRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateProviderRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// list
//
//	@Summary	Список поставщиков
//	@Tags		providers
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		ProviderResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Router		/providers [get]
func (p *ProviderHandler) list(w http.ResponseWriter, r *http.Request) {
	providers, err := p.providerUsecase.List(r.Context(), identityFrom(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrProviderResponse(providers))
}

// get
//
//	@Summary	Поставщик по идентификатору
//	@Tags		providers
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"ID поставщика"
//	@Success	200	{object}	ProviderResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/providers/{id} [get]
func (p *ProviderHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	provider, err := p.providerUsecase.Get(r.Context(), identityFrom(r.Context()), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProviderResponse(provider))
}

// create
//
//	@Summary	Создание поставщика
//	@Tags		providers
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		createProviderRequest	true	"Данные поставщика"
//	@Success	201		{object}	map[string]interface{}
//	@Failure	422		{object}	ValidationErrorResponse
//	@Router		/providers [post]
func (p *ProviderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id, err := p.providerUsecase.Create(r.Context(), identityFrom(r.Context()), &usecase.CreateProviderReq{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		p.logger.Warnf("create provider failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "provider created successfully",
		"id":      id,
	})
}

// update
//
//	@Summary	Частичное обновление поставщика
//	@Tags		providers
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"ID поставщика"
//	@Param		input	body		updateProviderRequest	true	"Изменяемые поля"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ValidationErrorResponse
//	@Router		/providers/{id} [put]
func (p *ProviderHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	provider, err := p.providerUsecase.Update(r.Context(), identityFrom(r.Context()), id, &usecase.UpdateProviderReq{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		p.logger.Warnf("update provider %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message":  "provider updated successfully",
		"provider": NewProviderResponse(provider),
	})
}

// delete
//
//	@Summary	Удаление поставщика
//	@Tags		providers
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"ID поставщика"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	404	{object}	ErrorResponse
//	@Router		/providers/{id} [delete]
func (p *ProviderHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.providerUsecase.Delete(r.Context(), identityFrom(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "provider deleted successfully",
	})
}
