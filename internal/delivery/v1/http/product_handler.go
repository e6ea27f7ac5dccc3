package http

import (
	"net/http"
	"strings"

	"github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	minioCfg       *cfg.MinIOCfg
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, minioCfg *cfg.MinIOCfg, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, minioCfg: minioCfg, logger: logger}
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Stock       *int32  `json:"stock"`
	Image       *string `json:"image"`
	Discount    *int32  `json:"discount"`
	CategoryID  int64   `json:"category_id"`
	ProviderID  int64   `json:"provider_id"`
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Stock       *int32  `json:"stock"`
	Image       *string `json:"image"`
	HasDiscount *bool   `json:"has_discount"`
	Discount    *int32  `json:"discount"`
	CategoryID  *int64  `json:"category_id"`
	ProviderID  *int64  `json:"provider_id"`
}

func (req *createProductRequest) toUsecase() *usecase.CreateProductReq {
	return &usecase.CreateProductReq{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.Image,
		Discount:    req.Discount,
		CategoryID:  req.CategoryID,
		ProviderID:  req.ProviderID,
	}
}

func (req *updateProductRequest) toUsecase() *usecase.UpdateProductReq {
	return &usecase.UpdateProductReq{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.Image,
		HasDiscount: req.HasDiscount,
		Discount:    req.Discount,
		CategoryID:  req.CategoryID,
		ProviderID:  req.ProviderID,
	}
}

// list
//
//	@Summary	Список товаров без скидки
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/products [get]
func (p *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "list products failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrProductResponse(products))
}

// get
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductResponse(product))
}

// create
//
//	@Summary		Создание товара каталога
//	@Description	Товар всегда создаётся без скидки; скидочные товары заводятся через /outlet.
//	@Tags			products
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			input	body		createProductRequest	true	"Данные товара"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id, err := p.productUsecase.CreateProduct(r.Context(), identityFrom(r.Context()), req.toUsecase())
	if err != nil {
		p.logger.Warnf("create product failed: %s", err.Error())
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
//	@Summary	Частичное обновление товара
//	@Tags		products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"ID товара"
//	@Param		input	body		updateProductRequest	true	"Изменяемые поля"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ValidationErrorResponse
//	@Router		/products/{id} [put]
func (p *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
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

	product, err := p.productUsecase.UpdateProduct(r.Context(), identityFrom(r.Context()), id, req.toUsecase())
	if err != nil {
		p.logger.Warnf("update product %d failed: %s", id, err.Error())
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
//	@Summary	Удаление товара
//	@Tags		products
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [delete]
func (p *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), identityFrom(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "product deleted successfully",
	})
}

// attachImage
//
//	@Summary		Загрузка изображения товара
//	@Description	Принимает multipart/form-data с полем image, сохраняет объект в MinIO и обновляет image_url.
//	@Tags			products
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		int		true	"ID товара"
//	@Param			image	formData	file	true	"Файл изображения"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id}/image [post]
func (p *ProductHandler) attachImage(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20

	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		WriteError(w, e.ErrExpectedMultipart)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, p.minioCfg.MaxImageSize+maxMemory)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		WriteError(w, e.ErrBadRequest)
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		WriteError(w, e.ErrNoImage)
		return
	}

	image, err := readImageFile(files[0], p.minioCfg.MaxImageSize)
	if err != nil {
		p.logger.Warnf("read image failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.AttachProductImage(r.Context(), identityFrom(r.Context()), id, image)
	if err != nil {
		p.logger.Warnf("attach image to product %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "image uploaded successfully",
		"product": NewProductResponse(product),
	})
}
