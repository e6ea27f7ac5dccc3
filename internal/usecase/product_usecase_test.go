package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
)

var (
	testAdmin = domain.Identity{ID: 1, Role: domain.RoleAdmin}
	testUser  = domain.Identity{ID: 7, Role: domain.RoleUser}
)

func int32p(v int32) *int32 { return &v }
func int64p(v int64) *int64 { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool    { return &v }

func newProductUC(
	productRepo *mockProductRepo,
	categoryRepo *mockCategoryRepo,
	providerRepo *mockProviderRepo,
	imageRepo *mockImageRepo,
	producer *mockProducer,
) *ProductUseCase {
	if categoryRepo == nil {
		categoryRepo = &mockCategoryRepo{
			existsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		}
	}
	if providerRepo == nil {
		providerRepo = &mockProviderRepo{
			existsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		}
	}
	if imageRepo == nil {
		imageRepo = &mockImageRepo{}
	}
	if producer == nil {
		producer = &mockProducer{}
	}
	return NewProductUC(productRepo, categoryRepo, providerRepo, imageRepo, producer, fakeTxBeginner{}, nopLogger{})
}

func validCreateReq() *CreateProductReq {
	return &CreateProductReq{
		Name:        "Sudadera",
		Description: "Sudadera con capucha",
		Price:       "29.99",
		Stock:       int32p(10),
		CategoryID:  1,
		ProviderID:  1,
	}
}

func TestProductUC_CreateProduct_ForcesCatalogPartition(t *testing.T) {
	var created *domain.Product
	productRepo := &mockProductRepo{
		createFn: func(ctx context.Context, product *domain.Product) (int64, error) {
			created = product
			return 42, nil
		},
	}
	producer := &mockProducer{}
	uc := newProductUC(productRepo, nil, nil, nil, producer)

	req := validCreateReq()
	req.Discount = int32p(50) // скидка в обычном пути игнорируется

	id, err := uc.CreateProduct(context.Background(), testAdmin, req)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	require.False(t, created.HasDiscount)
	require.Zero(t, created.Discount)
	require.Equal(t, int64(2999), created.Price)

	require.Len(t, producer.events, 1)
	require.Equal(t, EventProductCreated, producer.events[0].Type)
	require.False(t, producer.events[0].Outlet)
}

func TestProductUC_CreateOutletProduct_RequiresValidDiscount(t *testing.T) {
	productRepo := &mockProductRepo{
		createFn: func(ctx context.Context, product *domain.Product) (int64, error) {
			require.True(t, product.HasDiscount)
			require.Equal(t, int32(30), product.Discount)
			return 43, nil
		},
	}
	uc := newProductUC(productRepo, nil, nil, nil, nil)

	t.Run("missing discount rejected", func(t *testing.T) {
		req := validCreateReq()
		_, err := uc.CreateOutletProduct(context.Background(), testAdmin, req)

		var verr *e.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "discount")
	})

	t.Run("discount out of range rejected", func(t *testing.T) {
		req := validCreateReq()
		req.Discount = int32p(101)
		_, err := uc.CreateOutletProduct(context.Background(), testAdmin, req)

		var verr *e.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "discount")
	})

	t.Run("valid discount accepted", func(t *testing.T) {
		req := validCreateReq()
		req.Discount = int32p(30)
		id, err := uc.CreateOutletProduct(context.Background(), testAdmin, req)
		require.NoError(t, err)
		require.Equal(t, int64(43), id)
	})
}

func TestProductUC_Create_AggregatesAllViolations(t *testing.T) {
	categoryRepo := &mockCategoryRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	providerRepo := &mockProviderRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	uc := newProductUC(&mockProductRepo{}, categoryRepo, providerRepo, nil, nil)

	req := &CreateProductReq{
		Name:        "ab",       // короче трёх символов
		Description: "",         // обязательное поле
		Price:       "10.999",   // три знака после запятой
		Stock:       int32p(-1), // отрицательный остаток
		CategoryID:  5,
		ProviderID:  5,
	}

	_, err := uc.CreateProduct(context.Background(), testAdmin, req)

	var verr *e.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"name", "description", "price", "stock", "category_id", "provider_id"} {
		require.Contains(t, verr.Fields, field)
	}
}

func TestProductUC_Create_PolicyGates(t *testing.T) {
	uc := newProductUC(&mockProductRepo{}, nil, nil, nil, nil)

	_, err := uc.CreateProduct(context.Background(), domain.Identity{}, validCreateReq())
	require.ErrorIs(t, err, e.ErrUnauthenticated)

	_, err = uc.CreateProduct(context.Background(), testUser, validCreateReq())
	require.ErrorIs(t, err, e.ErrForbidden)
}

func TestProductUC_GetProduct_Guards(t *testing.T) {
	products := map[int64]*domain.Product{
		1: {ID: 1, Name: "Camiseta", HasDiscount: false},
		2: {ID: 2, Name: "Botas", HasDiscount: true, Discount: 15},
	}
	productRepo := &mockProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			p, ok := products[id]
			if !ok {
				return nil, e.ErrProductNotFound
			}
			return p, nil
		},
	}
	uc := newProductUC(productRepo, nil, nil, nil, nil)

	t.Run("missing id", func(t *testing.T) {
		_, err := uc.GetProduct(context.Background(), 99)
		require.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("outlet product hidden from the product view", func(t *testing.T) {
		_, err := uc.GetProduct(context.Background(), 2)
		require.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("catalog product returned", func(t *testing.T) {
		p, err := uc.GetProduct(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, int64(1), p.ID)
	})
}

func TestProductUC_GetOutletProduct_Guards(t *testing.T) {
	products := map[int64]*domain.Product{
		1: {ID: 1, Name: "Camiseta", HasDiscount: false},
		2: {ID: 2, Name: "Botas", HasDiscount: true, Discount: 20},
	}
	productRepo := &mockProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			p, ok := products[id]
			if !ok {
				return nil, e.ErrProductNotFound
			}
			return p, nil
		},
	}
	uc := newProductUC(productRepo, nil, nil, nil, nil)

	t.Run("missing id", func(t *testing.T) {
		_, err := uc.GetOutletProduct(context.Background(), 99)
		require.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("product outside outlet", func(t *testing.T) {
		_, err := uc.GetOutletProduct(context.Background(), 1)
		require.ErrorIs(t, err, e.ErrNotOutletProduct)
	})

	t.Run("outlet product returned", func(t *testing.T) {
		p, err := uc.GetOutletProduct(context.Background(), 2)
		require.NoError(t, err)
		require.Equal(t, int64(2), p.ID)
	})
}

func TestProductUC_PartitionVisibility(t *testing.T) {
	catalog := []*domain.Product{{ID: 1, Name: "Camiseta"}}
	outlet := []*domain.Product{{ID: 2, Name: "Botas", HasDiscount: true, Discount: 20}}
	productRepo := &mockProductRepo{
		listByDiscountFn: func(ctx context.Context, hasDiscount bool) ([]*domain.Product, error) {
			if hasDiscount {
				return outlet, nil
			}
			return catalog, nil
		},
	}
	uc := newProductUC(productRepo, nil, nil, nil, nil)

	got, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, catalog, got)

	got, err = uc.ListOutlet(context.Background())
	require.NoError(t, err)
	require.Equal(t, outlet, got)
}

func TestProductUC_Update_MovesBetweenPartitions(t *testing.T) {
	base := map[int64]domain.Product{
		1: {ID: 1, Name: "Camiseta", Description: "basica", Price: 1000, CategoryID: 1, ProviderID: 1},
		2: {ID: 2, Name: "Botas", Description: "piel", Price: 5000, HasDiscount: true, Discount: 25, CategoryID: 1, ProviderID: 1},
	}
	productRepo := &mockProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			p := base[id]
			return &p, nil
		},
		updateFn: func(ctx context.Context, product *domain.Product) error { return nil },
	}
	uc := newProductUC(productRepo, nil, nil, nil, nil)

	t.Run("moving into outlet requires discount", func(t *testing.T) {
		_, err := uc.UpdateProduct(context.Background(), testAdmin, 1, &UpdateProductReq{
			HasDiscount: boolp(true),
		})

		var verr *e.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "discount")
	})

	t.Run("moving into outlet with discount", func(t *testing.T) {
		p, err := uc.UpdateProduct(context.Background(), testAdmin, 1, &UpdateProductReq{
			HasDiscount: boolp(true),
			Discount:    int32p(25),
		})
		require.NoError(t, err)
		require.True(t, p.HasDiscount)
		require.Equal(t, int32(25), p.Discount)
	})

	t.Run("leaving outlet zeroes discount", func(t *testing.T) {
		p, err := uc.UpdateProduct(context.Background(), testAdmin, 2, &UpdateProductReq{
			HasDiscount: boolp(false),
		})
		require.NoError(t, err)
		require.False(t, p.HasDiscount)
		require.Zero(t, p.Discount)
	})
}

func TestProductUC_UpdateOutlet_GuardsPartition(t *testing.T) {
	productRepo := &mockProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Camiseta", HasDiscount: false}, nil
		},
	}
	uc := newProductUC(productRepo, nil, nil, nil, nil)

	_, err := uc.UpdateOutletProduct(context.Background(), testAdmin, 1, &UpdateProductReq{
		Name: strp("Nueva camiseta"),
	})
	require.ErrorIs(t, err, e.ErrNotOutletProduct)

	err = uc.DeleteOutletProduct(context.Background(), testAdmin, 1)
	require.ErrorIs(t, err, e.ErrNotOutletProduct)
}

func TestProductUC_Update_PatchTouchesOnlySentFields(t *testing.T) {
	stored := &domain.Product{
		ID: 1, Name: "Camiseta", Description: "basica", Price: 1000,
		Stock: 5, CategoryID: 1, ProviderID: 1,
	}
	providerChecked := false
	categoryChecked := false
	productRepo := &mockProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) { return stored, nil },
		updateFn:  func(ctx context.Context, product *domain.Product) error { return nil },
	}
	categoryRepo := &mockCategoryRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) {
			categoryChecked = true
			return true, nil
		},
	}
	providerRepo := &mockProviderRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) {
			providerChecked = true
			return true, nil
		},
	}
	uc := newProductUC(productRepo, categoryRepo, providerRepo, nil, nil)

	p, err := uc.UpdateProduct(context.Background(), testAdmin, 1, &UpdateProductReq{
		ProviderID: int64p(3),
	})
	require.NoError(t, err)

	// Нетронутые поля не меняются, непатченная category не перепроверяется.
	require.Equal(t, "Camiseta", p.Name)
	require.Equal(t, int64(1000), p.Price)
	require.Equal(t, int64(3), p.ProviderID)
	require.True(t, providerChecked)
	require.False(t, categoryChecked)
}

func TestProductUC_DeleteProduct_WorksAcrossPartitions(t *testing.T) {
	producer := &mockProducer{}
	productRepo := &mockProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return &domain.Product{ID: id, HasDiscount: true, Discount: 10}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	uc := newProductUC(productRepo, nil, nil, nil, producer)

	// Обычный delete не охраняет витрину: аутлетный товар тоже удаляется.
	require.NoError(t, uc.DeleteProduct(context.Background(), testAdmin, 2))
	require.Len(t, producer.events, 1)
	require.Equal(t, EventProductDeleted, producer.events[0].Type)
}

func TestProductUC_AttachProductImage(t *testing.T) {
	stored := &domain.Product{ID: 1, Name: "Camiseta"}
	productRepo := &mockProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) { return stored, nil },
		updateFn:  func(ctx context.Context, product *domain.Product) error { return nil },
	}

	t.Run("uploads and sets image url", func(t *testing.T) {
		imageRepo := &mockImageRepo{
			uploadFn: func(ctx context.Context, image *domain.Image) (string, error) {
				return "http://minio/images/" + image.ObjectKey, nil
			},
		}
		uc := newProductUC(productRepo, nil, nil, imageRepo, nil)

		p, err := uc.AttachProductImage(context.Background(), testAdmin, 1, &ProductImage{
			Data:     []byte{0xFF, 0xD8, 0xFF},
			MimeType: "image/jpeg",
		})
		require.NoError(t, err)
		require.Contains(t, p.ImageURL, "products/1/")
	})

	t.Run("rejects non-image payload", func(t *testing.T) {
		uc := newProductUC(productRepo, nil, nil, nil, nil)

		_, err := uc.AttachProductImage(context.Background(), testAdmin, 1, &ProductImage{
			Data:     []byte("not an image"),
			MimeType: "text/plain",
		})

		var verr *e.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "image")
	})

	t.Run("cleans up object when record update fails", func(t *testing.T) {
		failingRepo := &mockProductRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) { return stored, nil },
			updateFn:  func(ctx context.Context, product *domain.Product) error { return e.ErrInternalServerError },
		}
		imageRepo := &mockImageRepo{
			uploadFn: func(ctx context.Context, image *domain.Image) (string, error) {
				return "http://minio/images/" + image.ObjectKey, nil
			},
		}
		uc := newProductUC(failingRepo, nil, nil, imageRepo, nil)

		_, err := uc.AttachProductImage(context.Background(), testAdmin, 1, &ProductImage{
			Data:     []byte{0xFF, 0xD8, 0xFF},
			MimeType: "image/jpeg",
		})
		require.Error(t, err)
		require.Len(t, imageRepo.deleted, 1)
	})
}
