package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-admin/internal/application/ports"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/filter"
	"github.com/jhoicas/tienda-admin/pkg/logger"
)

// CategoryStore mantiene la lista de categorías en memoria, en orden de
// inserción, sincronizada con el API remoto.
type CategoryStore struct {
	estado
	api  ports.CatalogAPI
	log  *logger.Logger
	cats []entity.Category
}

// NewCategoryStore construye el store.
func NewCategoryStore(api ports.CatalogAPI, staleAfter time.Duration, log *logger.Logger) *CategoryStore {
	return &CategoryStore{
		estado: estado{staleAfter: staleAfter},
		api:    api,
		log:    log,
	}
}

// List devuelve un snapshot de las categorías (orden de inserción).
func (s *CategoryStore) List() []entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Category, len(s.cats))
	copy(out, s.cats)
	return out
}

// Search devuelve el subconjunto visible según el texto de búsqueda.
func (s *CategoryStore) Search(text string) []entity.Category {
	return filter.Categories(s.List(), text)
}

// Refresh reemplaza la lista con el estado confirmado por el servidor.
func (s *CategoryStore) Refresh(ctx context.Context) error {
	if !s.beginOp() {
		return domain.ErrOperacionEnCurso
	}
	payloads, err := s.api.ListCategories(ctx)
	if err != nil {
		s.endOp(err)
		return err
	}
	cats := make([]entity.Category, 0, len(payloads))
	for _, p := range payloads {
		cats = append(cats, p.ToEntity())
	}
	s.mu.Lock()
	s.cats = cats
	s.mu.Unlock()
	s.marcarFresco()
	s.endOp(nil)
	s.log.Debug().Int("total", len(cats)).Msg("categorías refrescadas")
	return nil
}

// Add crea una categoría. Un nombre vacío tras trim se rechaza localmente
// con ErrValidacion sin tocar la red; la descripción es opcional y viaja tal
// como la escribió el usuario. En éxito se agrega al final la categoría
// devuelta por el servidor: el store nunca sintetiza ids locales.
func (s *CategoryStore) Add(ctx context.Context, name, description string) (*entity.Category, error) {
	if !s.beginOp() {
		return nil, domain.ErrOperacionEnCurso
	}
	name = strings.TrimSpace(name)
	if name == "" {
		err := fmt.Errorf("el nombre de la categoría es requerido: %w", domain.ErrValidacion)
		s.endOp(err)
		return nil, err
	}

	payload, err := s.api.CreateCategory(ctx, name, strings.TrimSpace(description))
	if err != nil {
		s.endOp(err)
		return nil, err
	}
	cat := payload.ToEntity()

	s.mu.Lock()
	s.cats = append(s.cats, cat)
	s.mu.Unlock()
	s.endOp(nil)
	s.log.Info().Str("id", cat.ID).Str("name", cat.Name).Msg("categoría creada")
	return &cat, nil
}

// Remove borra la categoría en el servidor y la filtra de la lista local.
// La semántica de cascada (qué pasa con los productos) la decide el
// coordinador; este método solo hace el borrado directo. Si el servidor ya
// no la conoce (doble borrado), la entrada local obsoleta se descarta igual.
func (s *CategoryStore) Remove(ctx context.Context, id string) error {
	if !s.beginOp() {
		return domain.ErrOperacionEnCurso
	}
	err := s.api.DeleteCategory(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNoEncontrado) {
		s.endOp(err)
		return err
	}

	s.quitarLocal(id)
	s.endOp(err)
	if err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("categoría eliminada")
	return nil
}

// quitarLocal filtra la categoría de la lista sin tocar la red.
func (s *CategoryStore) quitarLocal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.cats[:0]
	for _, c := range s.cats {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.cats = out
}
