package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/tienda-admin/internal/application/ports"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/pkg/logger"
)

// CascadeDeleteCoordinator resuelve qué pasa con los productos de una
// categoría cuando esta se elimina. La decisión (borrar productos o
// reasignarlos a "uncategorized") llega como booleano plano: la captura el
// diálogo de confirmación de la UI, fuera de este core, y el coordinador no
// conoce ningún estado de diálogo.
//
// Es el único componente autorizado a mutar ambos stores en una misma
// operación lógica, y siempre muta CategoryStore antes que ProductStore: el
// borrado es "cascada de mejor esfuerzo", no todo-o-nada.
type CascadeDeleteCoordinator struct {
	api   ports.CatalogAPI
	cats  *CategoryStore
	prods *ProductStore
	log   *logger.Logger

	mu        sync.Mutex
	onDeleted []func(categoryID string)
}

// NewCascadeDeleteCoordinator construye el coordinador.
func NewCascadeDeleteCoordinator(api ports.CatalogAPI, cats *CategoryStore, prods *ProductStore, log *logger.Logger) *CascadeDeleteCoordinator {
	return &CascadeDeleteCoordinator{api: api, cats: cats, prods: prods, log: log}
}

// OnCategoryDeleted registra un callback que se invoca tras confirmar el
// borrado de la categoría (antes de tocar productos). La UI lo usa para
// limpiar la selección si apuntaba a la categoría eliminada.
func (c *CascadeDeleteCoordinator) OnCategoryDeleted(fn func(categoryID string)) {
	c.mu.Lock()
	c.onDeleted = append(c.onDeleted, fn)
	c.mu.Unlock()
}

// Delete ejecuta el protocolo de cascada:
//
//  1. Borra la categoría en el servidor y la filtra del CategoryStore. Si
//     esto falla, aborta: el error es de alcance categoría, nada más se toca.
//  2. Notifica los callbacks (limpiar selección).
//  3. deleteProducts=true: borrado masivo remoto y filtrado local. Si el
//     masivo falla, la categoría ya no existe pero los productos quedaron:
//     ErrCascadaParcial, sin rollback ni reintento automático.
//  4. deleteProducts=false: reasigna cada producto afectado a
//     "uncategorized" con updates individuales concurrentes; cada resultado
//     es independiente y un set parcialmente reasignado es un estado final
//     válido. Ningún producto se descarta de la lista por este camino.
func (c *CascadeDeleteCoordinator) Delete(ctx context.Context, categoryID string, deleteProducts bool) error {
	if err := c.cats.Remove(ctx, categoryID); err != nil {
		// Carrera de doble borrado: el servidor ya no la conocía, pero la
		// entrada local sí se descartó, así que la selección debe limpiarse
		// igual antes de reportar el error.
		if errors.Is(err, domain.ErrNoEncontrado) {
			c.notificarBorrado(categoryID)
		}
		return err
	}

	c.notificarBorrado(categoryID)

	if deleteProducts {
		return c.borrarProductos(ctx, categoryID)
	}
	return c.reasignarProductos(ctx, categoryID)
}

// notificarBorrado invoca los callbacks registrados con un snapshot de la
// lista, fuera del lock.
func (c *CascadeDeleteCoordinator) notificarBorrado(categoryID string) {
	c.mu.Lock()
	callbacks := make([]func(string), len(c.onDeleted))
	copy(callbacks, c.onDeleted)
	c.mu.Unlock()
	for _, fn := range callbacks {
		fn(categoryID)
	}
}

func (c *CascadeDeleteCoordinator) borrarProductos(ctx context.Context, categoryID string) error {
	if err := c.api.DeleteProductsByCategory(ctx, categoryID); err != nil {
		c.log.Warn().Str("category", categoryID).Err(err).
			Msg("cascada: categoría eliminada pero el borrado masivo de productos falló")
		return fmt.Errorf("%w: %v", domain.ErrCascadaParcial, err)
	}
	c.prods.quitarPorCategoria(categoryID)
	c.log.Info().Str("category", categoryID).Msg("cascada: productos eliminados")
	return nil
}

func (c *CascadeDeleteCoordinator) reasignarProductos(ctx context.Context, categoryID string) error {
	afectados := c.prods.productosDeCategoria(categoryID)
	if len(afectados) == 0 {
		return nil
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		fallos int
	)
	for _, p := range afectados {
		wg.Add(1)
		go func(prod entity.Product) {
			defer wg.Done()
			draft := entity.ProductFormDraft{CategoryID: entity.CategoriaSinAsignar}
			payload, err := c.api.UpdateProduct(ctx, prod.ID, draft)
			if err != nil {
				// Sin reintento: el producto queda apuntando al id ya
				// eliminado, que la UI degrada a "uncategorized".
				c.log.Warn().Str("product", prod.ID).Err(err).Msg("cascada: reasignación fallida")
				mu.Lock()
				fallos++
				mu.Unlock()
				return
			}
			c.prods.reemplazarLocal(payload.ToEntity())
		}(p)
	}
	wg.Wait()

	if fallos > 0 {
		return fmt.Errorf("%w: %d de %d reasignaciones fallaron",
			domain.ErrCascadaParcial, fallos, len(afectados))
	}
	c.log.Info().Str("category", categoryID).Int("total", len(afectados)).
		Msg("cascada: productos reasignados a uncategorized")
	return nil
}
