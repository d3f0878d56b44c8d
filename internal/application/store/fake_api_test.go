package store_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// fakeAPI implementación de prueba del puerto CatalogAPI: comportamiento
// programable por campo y contadores de llamadas para verificar qué tocó la
// red y qué no.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	listCategoriesFn func(ctx context.Context) ([]dto.CategoryPayload, error)
	createCategoryFn func(ctx context.Context, name, description string) (*dto.CategoryPayload, error)
	deleteCategoryFn func(ctx context.Context, id string) error
	deleteByCatFn    func(ctx context.Context, categoryID string) error
	listProductsFn   func(ctx context.Context) ([]dto.ProductPayload, error)
	createProductFn  func(ctx context.Context, draft entity.ProductFormDraft) (*dto.ProductPayload, error)
	updateProductFn  func(ctx context.Context, id string, draft entity.ProductFormDraft) (*dto.ProductPayload, error)
	deleteProductFn  func(ctx context.Context, id string) error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) registrar(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

// llamadas devuelve cuántas veces se invocó la operación.
func (f *fakeAPI) llamadas(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) ListCategories(ctx context.Context) ([]dto.CategoryPayload, error) {
	f.registrar("ListCategories")
	if f.listCategoriesFn != nil {
		return f.listCategoriesFn(ctx)
	}
	return nil, nil
}

func (f *fakeAPI) CreateCategory(ctx context.Context, name, description string) (*dto.CategoryPayload, error) {
	f.registrar("CreateCategory")
	if f.createCategoryFn != nil {
		return f.createCategoryFn(ctx, name, description)
	}
	return &dto.CategoryPayload{MongoID: "srv-" + name, Name: name, Description: description}, nil
}

func (f *fakeAPI) DeleteCategory(ctx context.Context, id string) error {
	f.registrar("DeleteCategory")
	if f.deleteCategoryFn != nil {
		return f.deleteCategoryFn(ctx, id)
	}
	return nil
}

func (f *fakeAPI) DeleteProductsByCategory(ctx context.Context, categoryID string) error {
	f.registrar("DeleteProductsByCategory")
	if f.deleteByCatFn != nil {
		return f.deleteByCatFn(ctx, categoryID)
	}
	return nil
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]dto.ProductPayload, error) {
	f.registrar("ListProducts")
	if f.listProductsFn != nil {
		return f.listProductsFn(ctx)
	}
	return nil, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, draft entity.ProductFormDraft) (*dto.ProductPayload, error) {
	f.registrar("CreateProduct")
	if f.createProductFn != nil {
		return f.createProductFn(ctx, draft)
	}
	return &dto.ProductPayload{MongoID: "srv-" + draft.Name, Name: draft.Name}, nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id string, draft entity.ProductFormDraft) (*dto.ProductPayload, error) {
	f.registrar("UpdateProduct")
	if f.updateProductFn != nil {
		return f.updateProductFn(ctx, id, draft)
	}
	return &dto.ProductPayload{MongoID: id, Name: draft.Name}, nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id string) error {
	f.registrar("DeleteProduct")
	if f.deleteProductFn != nil {
		return f.deleteProductFn(ctx, id)
	}
	return nil
}

// ── Helpers de payloads ───────────────────────────────────────────────────────

func payloadCategoria(id, name string) dto.CategoryPayload {
	return dto.CategoryPayload{MongoID: id, Name: name}
}

func payloadProducto(id, name, categoryID string) dto.ProductPayload {
	return dto.ProductPayload{
		MongoID:  id,
		Name:     name,
		Price:    decimal.NewFromInt(10),
		Category: dto.CategoryRef{ID: categoryID},
	}
}
