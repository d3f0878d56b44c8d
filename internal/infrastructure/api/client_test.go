package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/infrastructure/api"
	"github.com/jhoicas/tienda-admin/pkg/logger"
	"github.com/jhoicas/tienda-admin/pkg/token"
)

func cliente(t *testing.T, srv *httptest.Server) *api.Client {
	t.Helper()
	return api.New(
		api.Config{BaseURL: srv.URL, Timeout: 5 * time.Second},
		api.NewStaticCredential("token-de-prueba"),
		logger.Nop(),
	)
}

func responder(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización en el borde de ingestión
// ──────────────────────────────────────────────────────────────────────────────

// El servidor entrega categoryid a veces como id plano y a veces como objeto
// embebido; tras deserializar, ToEntity siempre produce un string primitivo.
func TestListProducts_NormalizaCategoryID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product", r.URL.Path)
		assert.Equal(t, "Bearer token-de-prueba", r.Header.Get("Authorization"))
		responder(t, w, http.StatusOK, `{
			"success": true,
			"data": [
				{"_id":"p9","name":"Silla","price":10,"categoryid":{"_id":"c1","name":"Chairs"}},
				{"_id":"p10","name":"Mesa","price":20,"categoryid":"c2"},
				{"_id":"p11","name":"Banco","price":5,"categoryid":null}
			]
		}`)
	}))
	defer srv.Close()

	payloads, err := cliente(t, srv).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, payloads, 3)

	p9 := payloads[0].ToEntity()
	assert.Equal(t, "c1", p9.CategoryID, "objeto embebido → id plano")
	p10 := payloads[1].ToEntity()
	assert.Equal(t, "c2", p10.CategoryID, "id plano pasa tal cual")
	p11 := payloads[2].ToEntity()
	assert.Empty(t, p11.CategoryID, "null degrada a vacío, nunca rompe")
	assert.Equal(t, entity.CategoriaSinAsignar, p11.CategoriaVisible())
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de fallos
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_MapeaFallos(t *testing.T) {
	casos := []struct {
		nombre  string
		status  int
		body    string
		esperar error
	}{
		{"401 sin credencial válida", http.StatusUnauthorized, `{"success":false,"message":"token inválido"}`, domain.ErrNoAutorizado},
		{"404 objetivo desaparecido", http.StatusNotFound, `{"success":false,"message":"no existe"}`, domain.ErrNoEncontrado},
		{"400 validación del servidor", http.StatusBadRequest, `{"success":false,"message":"nombre requerido"}`, domain.ErrValidacion},
		{"500 genérico", http.StatusInternalServerError, `{"success":false,"message":"boom"}`, domain.ErrRed},
		{"2xx con success=false también es fallo", http.StatusOK, `{"success":false,"message":"rechazado"}`, domain.ErrRed},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				responder(t, w, c.status, c.body)
			}))
			defer srv.Close()

			_, err := cliente(t, srv).ListCategories(context.Background())
			require.ErrorIs(t, err, c.esperar)
		})
	}
}

func TestDo_SurfaceaElMessageDelServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder(t, w, http.StatusBadRequest, `{"success":false,"message":"el nombre ya existe"}`)
	}))
	defer srv.Close()

	_, err := cliente(t, srv).CreateCategory(context.Background(), "Sillas", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "el nombre ya existe")
}

func TestDo_FalloDeTransporte_EsErrRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor caído

	_, err := cliente(t, srv).ListCategories(context.Background())
	require.ErrorIs(t, err, domain.ErrRed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Credencial
// ──────────────────────────────────────────────────────────────────────────────

// Sin credencial la llamada falla como ErrNoAutorizado sin tocar la red.
func TestCredencialAusente_NoTocaLaRed(t *testing.T) {
	llamadas := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		llamadas++
	}))
	defer srv.Close()

	c := api.New(api.Config{BaseURL: srv.URL}, api.NewStaticCredential(""), logger.Nop())
	_, err := c.ListCategories(context.Background())

	require.ErrorIs(t, err, domain.ErrNoAutorizado)
	assert.Zero(t, llamadas)
}

// Un token opaco (no JWT) se entrega tal cual: que decida el servidor.
func TestCredencialOpaca_SeEntregaTalCual(t *testing.T) {
	cred := api.NewStaticCredential("token-opaco-cualquiera")
	tok, err := cred.Token()
	require.NoError(t, err)
	assert.Equal(t, "token-opaco-cualquiera", tok)
}

// Un JWT con exp vencido se detecta localmente: ErrNoAutorizado antes de
// gastar la llamada de red.
func TestCredencialExpirada_SeDetectaLocalmente(t *testing.T) {
	vencido, err := token.Generate("cualquier-secret", "admin", "tienda-admin", -1)
	require.NoError(t, err)

	cred := api.NewStaticCredential(vencido)
	_, err = cred.Token()
	require.ErrorIs(t, err, domain.ErrNoAutorizado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Multipart
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/product", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(8<<20))

		assert.Equal(t, "Silla Roble", r.FormValue("name"))
		assert.Equal(t, "25.50", r.FormValue("price"))
		assert.Equal(t, "c1", r.FormValue("categoryid"))
		assert.Empty(t, r.FormValue("stock"), "campo vacío del borrador no viaja")

		require.Len(t, r.MultipartForm.File["image"], 1, "imagen principal bajo 'image'")
		assert.Equal(t, "main.png", r.MultipartForm.File["image"][0].Filename)
		require.Len(t, r.MultipartForm.File["secondary_images"], 2, "secundarias como campo repetido")

		responder(t, w, http.StatusCreated, `{"success":true,"data":{"_id":"p1","name":"Silla Roble","price":25.5,"categoryid":"c1","image":"https://cdn/x.png"}}`)
	}))
	defer srv.Close()

	main := entity.NewStagedFile("main.png", "image/png", []byte{1})
	draft := entity.ProductFormDraft{
		Name:       "Silla Roble",
		Price:      "25.50",
		CategoryID: "c1",
		MainImage:  &main,
		SecondaryImages: []entity.StagedFile{
			entity.NewStagedFile("s1.png", "image/png", []byte{2}),
			entity.NewStagedFile("s2.png", "image/png", []byte{3}),
		},
	}

	payload, err := cliente(t, srv).CreateProduct(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "p1", payload.ToEntity().ID)
}

// El flujo de edición por defecto no envía imágenes secundarias: solo viajan
// si el usuario volvió a seleccionarlas, como set de reemplazo completo.
func TestUpdateProduct_Sparse_SinImagenesSecundarias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/product/p1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(8<<20))

		assert.Equal(t, "30", r.FormValue("price"))
		assert.Empty(t, r.FormValue("name"), "name omitido no viaja")
		assert.Empty(t, r.MultipartForm.File["image"], "sin imagen nueva: conservar la existente")
		assert.Empty(t, r.MultipartForm.File["secondary_images"], "sin re-selección no viajan secundarias")

		responder(t, w, http.StatusOK, `{"success":true,"data":{"_id":"p1","name":"Silla","price":30,"categoryid":"c1"}}`)
	}))
	defer srv.Close()

	payload, err := cliente(t, srv).UpdateProduct(context.Background(), "p1", entity.ProductFormDraft{Price: "30"})
	require.NoError(t, err)
	assert.Equal(t, "p1", payload.ToEntity().ID)
}

func TestDeleteProductsByCategory_Ruta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/product/deletebycategory/c1", r.URL.Path)
		responder(t, w, http.StatusOK, `{"success":true}`)
	}))
	defer srv.Close()

	require.NoError(t, cliente(t, srv).DeleteProductsByCategory(context.Background(), "c1"))
}
