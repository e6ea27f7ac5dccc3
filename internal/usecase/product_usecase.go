package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/policy"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductUseCase обслуживает обе витрины одной таблицы товаров: обычный
// каталог (has_discount = false) и аутлет (has_discount = true).
// Путь создания принудительно помещает запись в свою витрину; смена флага
// при обновлении перемещает товар между витринами.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	providerRepo ProviderRepository
	imageRepo    ImageRepository
	producer     EventProducer
	dbPool       transaction.Transactional
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	providerRepo ProviderRepository,
	imageRepo ImageRepository,
	producer EventProducer,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		providerRepo: providerRepo,
		imageRepo:    imageRepo,
		producer:     producer,
		dbPool:       dbPool,
		logger:       logger,
	}
}

// ListProducts возвращает товары обычного каталога.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return p.productRepo.ListByDiscount(ctx, false)
}

// ListOutlet возвращает товары аутлета.
func (p *ProductUseCase) ListOutlet(ctx context.Context) ([]*domain.Product, error) {
	return p.productRepo.ListByDiscount(ctx, true)
}

// GetProduct возвращает товар обычного каталога. Аутлетный товар через
// эту витрину не виден и отвечает обычным 404.
func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.InOutlet() {
		return nil, e.ErrProductNotFound
	}
	return product, nil
}

// GetOutletProduct возвращает товар аутлета. Отсутствующий id и товар вне
// аутлета различаются формулировкой, но оба уходят клиенту как 404.
func (p *ProductUseCase) GetOutletProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.InOutlet() {
		return nil, e.ErrNotOutletProduct
	}
	return product, nil
}

// CreateProduct создаёт товар обычного каталога: has_discount и discount
// принудительно сбрасываются вне зависимости от тела запроса.
func (p *ProductUseCase) CreateProduct(ctx context.Context, caller domain.Identity, req *CreateProductReq) (int64, error) {
	if err := policy.Allow(caller, policy.OpCreateProduct, nil); err != nil {
		return 0, err
	}
	return p.create(ctx, req, false)
}

// CreateOutletProduct создаёт товар аутлета: has_discount принудительно
// выставлен, скидка обязана попадать в (0, 100].
func (p *ProductUseCase) CreateOutletProduct(ctx context.Context, caller domain.Identity, req *CreateProductReq) (int64, error) {
	if err := policy.Allow(caller, policy.OpCreateOutletProduct, nil); err != nil {
		return 0, err
	}
	return p.create(ctx, req, true)
}

func (p *ProductUseCase) create(ctx context.Context, req *CreateProductReq, outlet bool) (int64, error) {
	const op = "ProductUseCase.create"

	product, verr := p.buildProduct(req, outlet)

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return 0, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Ссылочные проверки идут в общий список нарушений вместе с полевыми:
	// клиент получает все проблемы запроса за один раз.
	if req.CategoryID == 0 {
		verr.Add("category_id", "category_id is required")
	} else if err = p.checkCategory(ctx, verr, req.CategoryID); err != nil {
		return 0, e.Wrap(op, err)
	}
	if req.ProviderID == 0 {
		verr.Add("provider_id", "provider_id is required")
	} else if err = p.checkProvider(ctx, verr, req.ProviderID); err != nil {
		return 0, e.Wrap(op, err)
	}
	if err = verr.AsError(); err != nil {
		return 0, err
	}

	id, err := p.productRepo.Create(ctx, product)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, e.Wrap(op, err)
	}

	p.publish(ctx, EventProductCreated, id, outlet)
	return id, nil
}

// UpdateProduct частично обновляет товар через обычную витрину.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, caller domain.Identity, id int64, req *UpdateProductReq) (*domain.Product, error) {
	if err := policy.Allow(caller, policy.OpUpdateProduct, nil); err != nil {
		return nil, err
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return p.update(ctx, product, req, false)
}

// UpdateOutletProduct частично обновляет товар через витрину аутлета.
// Товар вне аутлета недоступен здесь так же, как в GetOutletProduct.
func (p *ProductUseCase) UpdateOutletProduct(ctx context.Context, caller domain.Identity, id int64, req *UpdateProductReq) (*domain.Product, error) {
	if err := policy.Allow(caller, policy.OpUpdateOutletProduct, nil); err != nil {
		return nil, err
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.InOutlet() {
		return nil, e.ErrNotOutletProduct
	}

	return p.update(ctx, product, req, true)
}

func (p *ProductUseCase) update(ctx context.Context, product *domain.Product, req *UpdateProductReq, outlet bool) (*domain.Product, error) {
	const op = "ProductUseCase.update"

	verr := e.NewValidationError()
	p.applyPatch(product, req, verr)

	if req.CategoryID != nil {
		if err := p.checkCategory(ctx, verr, *req.CategoryID); err != nil {
			return nil, e.Wrap(op, err)
		}
	}
	if req.ProviderID != nil {
		if err := p.checkProvider(ctx, verr, *req.ProviderID); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if verr.Empty() && !product.DiscountStateValid() {
		if product.HasDiscount {
			verr.Add("discount", "discount must be greater than 0 and at most 100")
		} else {
			verr.Add("discount", "a product without discount cannot carry a discount value")
		}
	}
	if err := verr.AsError(); err != nil {
		return nil, err
	}

	if err := p.productRepo.Update(ctx, product); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.publish(ctx, EventProductUpdated, product.ID, outlet)
	return product, nil
}

// DeleteProduct удаляет товар без оглядки на витрину.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, caller domain.Identity, id int64) error {
	if err := policy.Allow(caller, policy.OpDeleteProduct, nil); err != nil {
		return err
	}

	if _, err := p.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := p.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	p.publish(ctx, EventProductDeleted, id, false)
	return nil
}

// DeleteOutletProduct удаляет товар аутлета. Охрана та же, что у
// GetOutletProduct: чужой для аутлета товар отсюда удалить нельзя.
func (p *ProductUseCase) DeleteOutletProduct(ctx context.Context, caller domain.Identity, id int64) error {
	if err := policy.Allow(caller, policy.OpDeleteOutletProduct, nil); err != nil {
		return err
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.InOutlet() {
		return e.ErrNotOutletProduct
	}

	if err := p.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	p.publish(ctx, EventProductDeleted, id, true)
	return nil
}

// AttachProductImage сохраняет изображение в объектное хранилище и
// прописывает внешнюю ссылку в image_url товара.
func (p *ProductUseCase) AttachProductImage(ctx context.Context, caller domain.Identity, id int64, image *ProductImage) (*domain.Product, error) {
	const op = "ProductUseCase.AttachProductImage"

	if err := policy.Allow(caller, policy.OpAttachProductImage, nil); err != nil {
		return nil, err
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if image == nil || len(image.Data) == 0 {
		return nil, e.ErrNoImage
	}
	if !strings.HasPrefix(image.MimeType, "image/") {
		verr := e.NewValidationError()
		verr.Add("image", "file must be an image")
		return nil, verr
	}

	key := fmt.Sprintf("products/%d/%s", id, uuid.NewString())
	url, err := p.imageRepo.Upload(ctx, domain.NewImage(key, image.Data, image.MimeType))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product.ImageURL = url
	if err := p.productRepo.Update(ctx, product); err != nil {
		// запись не обновилась, объект остался сиротой
		if derr := p.imageRepo.Delete(ctx, key); derr != nil {
			p.logger.Warnf("failed to clean up orphaned image %s: %v", key, derr)
		}
		return nil, e.Wrap(op, err)
	}

	p.publish(ctx, EventProductUpdated, id, product.InOutlet())
	return product, nil
}

// buildProduct собирает запись из запроса на создание, применяя
// принудительное состояние витрины, и копит нарушения валидации.
func (p *ProductUseCase) buildProduct(req *CreateProductReq, outlet bool) (*domain.Product, *e.ValidationError) {
	verr := e.NewValidationError()

	name := strings.TrimSpace(req.Name)
	if len(name) < minNameLen {
		verr.Add("name", "name must be at least 3 characters")
	} else if len(name) > maxNameLen {
		verr.Add("name", "name must not exceed 255 characters")
	}

	if req.Description == "" {
		verr.Add("description", "description is required")
	} else if len(req.Description) > maxDescriptionLen {
		verr.Add("description", "description must not exceed 255 characters")
	}

	cents, err := parsePriceToCents(req.Price)
	if err != nil {
		verr.Add("price", "price must be a non-negative decimal with at most 2 decimal places")
	}

	product := &domain.Product{
		Name:        name,
		Description: req.Description,
		Price:       cents,
	}

	if req.Stock != nil {
		if *req.Stock < 0 {
			verr.Add("stock", "stock must not be negative")
		}
		product.Stock = *req.Stock
	}

	if req.ImageURL != nil && *req.ImageURL != "" {
		if !validURL(*req.ImageURL) {
			verr.Add("image_url", "image_url must be a valid URL")
		}
		product.ImageURL = *req.ImageURL
	}

	if outlet {
		product.HasDiscount = true
		if req.Discount == nil {
			verr.Add("discount", "discount is required for outlet products")
		} else if *req.Discount <= 0 || *req.Discount > 100 {
			verr.Add("discount", "discount must be greater than 0 and at most 100")
		} else {
			product.Discount = *req.Discount
		}
	}
	// не-аутлетный путь игнорирует присланную скидку: has_discount=false,
	// discount=0 независимо от тела запроса

	product.CategoryID = req.CategoryID
	product.ProviderID = req.ProviderID

	return product, verr
}

// applyPatch переносит присланные поля патча в запись с повторной
// валидацией каждого тронутого поля. Поля вне этого списка в запись
// не попадают никогда.
func (p *ProductUseCase) applyPatch(product *domain.Product, req *UpdateProductReq, verr *e.ValidationError) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < minNameLen {
			verr.Add("name", "name must be at least 3 characters")
		} else if len(name) > maxNameLen {
			verr.Add("name", "name must not exceed 255 characters")
		} else {
			product.Name = name
		}
	}

	if req.Description != nil {
		if len(*req.Description) > maxDescriptionLen {
			verr.Add("description", "description must not exceed 255 characters")
		} else {
			product.Description = *req.Description
		}
	}

	if req.Price != nil {
		cents, err := parsePriceToCents(*req.Price)
		if err != nil {
			verr.Add("price", "price must be a non-negative decimal with at most 2 decimal places")
		} else {
			product.Price = cents
		}
	}

	if req.Stock != nil {
		if *req.Stock < 0 {
			verr.Add("stock", "stock must not be negative")
		} else {
			product.Stock = *req.Stock
		}
	}

	if req.ImageURL != nil {
		if *req.ImageURL != "" && !validURL(*req.ImageURL) {
			verr.Add("image_url", "image_url must be a valid URL")
		} else {
			product.ImageURL = *req.ImageURL
		}
	}

	if req.HasDiscount != nil {
		product.HasDiscount = *req.HasDiscount
		if !*req.HasDiscount && req.Discount == nil {
			// снятие товара с аутлета без явной скидки обнуляет её
			product.Discount = 0
		}
	}

	if req.Discount != nil {
		product.Discount = *req.Discount
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.ProviderID != nil {
		product.ProviderID = *req.ProviderID
	}
}

// checkCategory валидирует ссылку на категорию.
func (p *ProductUseCase) checkCategory(ctx context.Context, verr *e.ValidationError, id int64) error {
	ok, err := p.categoryRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("category_id", "the selected category does not exist")
	}
	return nil
}

// checkProvider валидирует ссылку на поставщика.
func (p *ProductUseCase) checkProvider(ctx context.Context, verr *e.ValidationError, id int64) error {
	ok, err := p.providerRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("provider_id", "the selected provider does not exist")
	}
	return nil
}

// publish отправляет событие каталога; сбой шины не валит запрос.
func (p *ProductUseCase) publish(ctx context.Context, eventType string, id int64, outlet bool) {
	event := NewCatalogEvent(uuid.NewString(), eventType, id, outlet, time.Now().UTC())
	if err := p.producer.Publish(ctx, event); err != nil {
		p.logger.Warnf("failed to publish %s for product %d: %v", eventType, id, err)
	}
}
