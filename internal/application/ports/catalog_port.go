package ports

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// CatalogAPI define el puerto de salida hacia el API remoto de catálogo.
// Cualquier adaptador (HTTP real, mock de tests) debe implementar esta
// interfaz; los stores solo conocen este contrato, nunca net/http.
//
// Todas las llamadas son asíncronas de un solo intento (sin retry interno) y
// no mutan ningún store. El adaptador mapea fallos a los sentinelas de
// internal/domain: ErrNoAutorizado, ErrValidacion, ErrNoEncontrado, ErrRed.
type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]dto.CategoryPayload, error)
	CreateCategory(ctx context.Context, name, description string) (*dto.CategoryPayload, error)
	DeleteCategory(ctx context.Context, id string) error

	// DeleteProductsByCategory borrado masivo de los productos de una
	// categoría (paso 3 de la cascada).
	DeleteProductsByCategory(ctx context.Context, categoryID string) error

	ListProducts(ctx context.Context) ([]dto.ProductPayload, error)
	CreateProduct(ctx context.Context, draft entity.ProductFormDraft) (*dto.ProductPayload, error)

	// UpdateProduct es sparse: solo los campos con contenido del borrador
	// viajan en el cuerpo multipart; lo omitido queda intacto en el servidor.
	UpdateProduct(ctx context.Context, id string, draft entity.ProductFormDraft) (*dto.ProductPayload, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CredentialSource entrega la credencial bearer para el API remoto.
// Se inyecta en la construcción del cliente; la lógica de negocio nunca lee
// estado global ambiente (localStorage, env) para autenticarse.
type CredentialSource interface {
	// Token devuelve la credencial vigente o error si falta o expiró
	// (envuelto en domain.ErrNoAutorizado, sin tocar la red).
	Token() (string, error)
}
