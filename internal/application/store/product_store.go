package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-admin/internal/application/ports"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/filter"
	"github.com/jhoicas/tienda-admin/pkg/logger"
)

// ProductStore mantiene la lista de productos en memoria, en orden de
// inserción, sincronizada con el API remoto. Todo producto ingresa con el
// CategoryID ya normalizado a string primitivo (ToEntity en el borde).
type ProductStore struct {
	estado
	api   ports.CatalogAPI
	log   *logger.Logger
	prods []entity.Product
}

// NewProductStore construye el store.
func NewProductStore(api ports.CatalogAPI, staleAfter time.Duration, log *logger.Logger) *ProductStore {
	return &ProductStore{
		estado: estado{staleAfter: staleAfter},
		api:    api,
		log:    log,
	}
}

// Snapshot devuelve una copia de todos los productos (orden de inserción).
func (s *ProductStore) Snapshot() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Product, len(s.prods))
	copy(out, s.prods)
	return out
}

// List delega en el motor de filtros (puro, solo lectura): categoría
// seleccionada y texto de búsqueda del estado de la UI.
func (s *ProductStore) List(st filter.State) []entity.Product {
	return filter.Products(s.Snapshot(), st.SelectedCategoryID, st.SearchText)
}

// Refresh reemplaza la lista con el estado confirmado por el servidor.
func (s *ProductStore) Refresh(ctx context.Context) error {
	if !s.beginOp() {
		return domain.ErrOperacionEnCurso
	}
	payloads, err := s.api.ListProducts(ctx)
	if err != nil {
		s.endOp(err)
		return err
	}
	prods := make([]entity.Product, 0, len(payloads))
	for _, p := range payloads {
		prods = append(prods, p.ToEntity())
	}
	s.mu.Lock()
	s.prods = prods
	s.mu.Unlock()
	s.marcarFresco()
	s.endOp(nil)
	s.log.Debug().Int("total", len(prods)).Msg("productos refrescados")
	return nil
}

// Add crea un producto a partir del borrador. La imagen principal es
// obligatoria al momento del envío: faltar es error de validación local, no
// de red. En éxito se agrega el producto devuelto por el servidor (ya
// normalizado) y el caller descarta el borrador.
func (s *ProductStore) Add(ctx context.Context, draft entity.ProductFormDraft) (*entity.Product, error) {
	if !s.beginOp() {
		return nil, domain.ErrOperacionEnCurso
	}
	if !draft.TieneImagenPrincipal() {
		err := fmt.Errorf("la imagen principal es requerida: %w", domain.ErrValidacion)
		s.endOp(err)
		return nil, err
	}

	payload, err := s.api.CreateProduct(ctx, draft)
	if err != nil {
		s.endOp(err)
		return nil, err
	}
	prod := payload.ToEntity()

	s.mu.Lock()
	s.prods = append(s.prods, prod)
	s.mu.Unlock()
	s.endOp(nil)
	s.log.Info().Str("id", prod.ID).Str("name", prod.Name).Msg("producto creado")
	return &prod, nil
}

// Update envía una actualización sparse: solo los campos con contenido del
// borrador viajan al servidor; lo omitido queda intacto. El producto
// devuelto reemplaza al local por coincidencia de id, con la categoría
// normalizada antes de ingresar.
func (s *ProductStore) Update(ctx context.Context, id string, draft entity.ProductFormDraft) (*entity.Product, error) {
	if !s.beginOp() {
		return nil, domain.ErrOperacionEnCurso
	}
	if draft.EstaVacio() {
		err := fmt.Errorf("nada para actualizar: %w", domain.ErrValidacion)
		s.endOp(err)
		return nil, err
	}

	payload, err := s.api.UpdateProduct(ctx, id, draft)
	if err != nil {
		s.endOp(err)
		return nil, err
	}
	prod := payload.ToEntity()

	s.reemplazarLocal(prod)
	s.endOp(nil)
	s.log.Info().Str("id", prod.ID).Msg("producto actualizado")
	return &prod, nil
}

// Remove borra el producto en el servidor y lo filtra de la lista local.
// Ante ErrNoEncontrado (carrera de doble borrado) la copia local obsoleta
// se descarta de todas formas y el error se reporta.
func (s *ProductStore) Remove(ctx context.Context, id string) error {
	if !s.beginOp() {
		return domain.ErrOperacionEnCurso
	}
	err := s.api.DeleteProduct(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNoEncontrado) {
		s.endOp(err)
		return err
	}

	s.quitarLocal(id)
	s.endOp(err)
	if err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("producto eliminado")
	return nil
}

// ── Mutaciones locales (sin red) ──────────────────────────────────────────────
// Las usa también el coordinador de cascada, único componente autorizado a
// mutar este store dentro de una operación ajena.

func (s *ProductStore) quitarLocal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.prods[:0]
	for _, p := range s.prods {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.prods = out
}

// quitarPorCategoria filtra todos los productos de la categoría dada.
func (s *ProductStore) quitarPorCategoria(categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.prods[:0]
	for _, p := range s.prods {
		if p.CategoryID != categoryID {
			out = append(out, p)
		}
	}
	s.prods = out
}

// reemplazarLocal sustituye el producto por coincidencia de id; si no está,
// no hace nada (pudo haberse descartado por una cascada concurrente).
func (s *ProductStore) reemplazarLocal(prod entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.prods {
		if p.ID == prod.ID {
			s.prods[i] = prod
			return
		}
	}
}

// productosDeCategoria snapshot de los productos bajo una categoría.
func (s *ProductStore) productosDeCategoria(categoryID string) []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Product, 0)
	for _, p := range s.prods {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}
