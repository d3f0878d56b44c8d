package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/store"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/pkg/logger"
)

func nuevoCategoryStore(api *fakeAPI) *store.CategoryStore {
	return store.NewCategoryStore(api, time.Minute, logger.Nop())
}

// Un nombre vacío (tras trim) jamás debe tocar la red: se rechaza localmente
// con ErrValidacion y el mensaje queda en el error del store.
func TestCategoryAdd_NombreVacio_NoLlamaLaRed(t *testing.T) {
	api := newFakeAPI()
	s := nuevoCategoryStore(api)

	_, err := s.Add(context.Background(), "   ", "")

	require.ErrorIs(t, err, domain.ErrValidacion)
	assert.Zero(t, api.llamadas("CreateCategory"), "la validación local no debe emitir red")
	assert.NotEmpty(t, s.ErrorMessage(), "el error debe quedar legible para la UI")
	assert.False(t, s.Loading(), "Loading no puede quedar colgado")
}

// En éxito se agrega al final la categoría confirmada por el servidor; el
// store nunca inventa ids locales.
func TestCategoryAdd_AgregaLaCategoriaDelServidor(t *testing.T) {
	api := newFakeAPI()
	api.createCategoryFn = func(_ context.Context, name, _ string) (*dto.CategoryPayload, error) {
		return &dto.CategoryPayload{MongoID: "c77", Name: name}, nil
	}
	s := nuevoCategoryStore(api)

	cat, err := s.Add(context.Background(), "  Sillas  ", "")

	require.NoError(t, err)
	assert.Equal(t, "c77", cat.ID, "el id es el asignado por el servidor")
	assert.Equal(t, "Sillas", cat.Name, "el nombre viaja ya con trim")

	lista := s.List()
	require.Len(t, lista, 1)
	assert.Equal(t, "c77", lista[0].ID)
	assert.Empty(t, s.ErrorMessage())
}

// La descripción viaja con el alta y vuelve en la categoría almacenada.
func TestCategoryAdd_LaDescripcionViajaAlServidor(t *testing.T) {
	api := newFakeAPI()
	var descripcionEnviada string
	api.createCategoryFn = func(_ context.Context, name, description string) (*dto.CategoryPayload, error) {
		descripcionEnviada = description
		return &dto.CategoryPayload{MongoID: "c9", Name: name, Description: description}, nil
	}
	s := nuevoCategoryStore(api)

	cat, err := s.Add(context.Background(), "Sillas", "sillas de madera")

	require.NoError(t, err)
	assert.Equal(t, "sillas de madera", descripcionEnviada, "la descripción no puede perderse en el camino")
	assert.Equal(t, "sillas de madera", cat.Description)

	lista := s.List()
	require.Len(t, lista, 1)
	assert.Equal(t, "sillas de madera", lista[0].Description)
}

func TestCategoryAdd_FalloRemoto_GuardaElError(t *testing.T) {
	api := newFakeAPI()
	api.createCategoryFn = func(context.Context, string, string) (*dto.CategoryPayload, error) {
		return nil, domain.ErrRed
	}
	s := nuevoCategoryStore(api)

	_, err := s.Add(context.Background(), "Mesas", "")

	require.ErrorIs(t, err, domain.ErrRed)
	assert.Empty(t, s.List(), "un fallo no agrega nada a la lista")
	assert.NotEmpty(t, s.ErrorMessage())
	assert.False(t, s.Loading())
}

func TestCategoryRefresh_ReemplazaLaLista(t *testing.T) {
	api := newFakeAPI()
	api.listCategoriesFn = func(context.Context) ([]dto.CategoryPayload, error) {
		return []dto.CategoryPayload{payloadCategoria("c1", "Sillas"), payloadCategoria("c2", "Mesas")}, nil
	}
	s := nuevoCategoryStore(api)
	require.True(t, s.IsStale(), "un store recién creado está viejo")

	require.NoError(t, s.Refresh(context.Background()))

	lista := s.List()
	require.Len(t, lista, 2)
	assert.Equal(t, "c1", lista[0].ID, "orden de inserción preservado")
	assert.False(t, s.IsStale(), "tras el refresh el listado está fresco")
}

// Solo una operación mutante en vuelo por store: la segunda se rechaza con
// ErrOperacionEnCurso en lugar de encolarse.
func TestCategoryStore_OperacionConcurrente_SeRechaza(t *testing.T) {
	api := newFakeAPI()
	bloqueo := make(chan struct{})
	enVuelo := make(chan struct{})
	api.listCategoriesFn = func(context.Context) ([]dto.CategoryPayload, error) {
		close(enVuelo)
		<-bloqueo
		return nil, nil
	}
	s := nuevoCategoryStore(api)

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()
	<-enVuelo

	_, err := s.Add(context.Background(), "Sillas", "")
	assert.ErrorIs(t, err, domain.ErrOperacionEnCurso)

	close(bloqueo)
	require.NoError(t, <-done)
	assert.False(t, s.Loading())
}

// Carrera de doble borrado: el servidor ya no conoce el id, pero la entrada
// local obsoleta se descarta de todas formas y el error se reporta.
func TestCategoryRemove_NoEncontrado_DescartaLaCopiaLocal(t *testing.T) {
	api := newFakeAPI()
	api.listCategoriesFn = func(context.Context) ([]dto.CategoryPayload, error) {
		return []dto.CategoryPayload{payloadCategoria("c1", "Sillas")}, nil
	}
	api.deleteCategoryFn = func(context.Context, string) error {
		return domain.ErrNoEncontrado
	}
	s := nuevoCategoryStore(api)
	require.NoError(t, s.Refresh(context.Background()))

	err := s.Remove(context.Background(), "c1")

	require.ErrorIs(t, err, domain.ErrNoEncontrado)
	assert.Empty(t, s.List(), "la entrada obsoleta no debe sobrevivir")
}

func TestCategorySearch_DelegaEnElFiltro(t *testing.T) {
	api := newFakeAPI()
	api.listCategoriesFn = func(context.Context) ([]dto.CategoryPayload, error) {
		return []dto.CategoryPayload{payloadCategoria("c1", "Sillas"), payloadCategoria("c2", "Mesas")}, nil
	}
	s := nuevoCategoryStore(api)
	require.NoError(t, s.Refresh(context.Background()))

	out := s.Search("mes")
	require.Len(t, out, 1)
	assert.Equal(t, "c2", out[0].ID)
}
