package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/ports"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa CatalogAPI.
var _ ports.CatalogAPI = (*Client)(nil)

// Client adaptador HTTP del API remoto de catálogo. Es la única pieza del
// sistema que toca la red; no muta ningún store y no reintenta por su cuenta.
// La credencial bearer llega por el CredentialSource inyectado, nunca de
// estado global.
type Client struct {
	baseURL    string
	creds      ports.CredentialSource
	httpClient *http.Client
	log        *logger.Logger
}

// Config del cliente remoto.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New construye el cliente. El timeout del transporte es la única guarda
// contra un Loading colgado en los stores.
func New(cfg Config, creds ports.CredentialSource, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		creds:   creds,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ── Operaciones de categorías ─────────────────────────────────────────────────

// ListCategories GET /category.
func (c *Client) ListCategories(ctx context.Context) ([]dto.CategoryPayload, error) {
	data, err := c.do(ctx, http.MethodGet, "/category", nil, "")
	if err != nil {
		return nil, err
	}
	var out []dto.CategoryPayload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("api: deserializar categorías: %w", err)
	}
	return out, nil
}

// CreateCategory POST /category.
func (c *Client) CreateCategory(ctx context.Context, name, description string) (*dto.CategoryPayload, error) {
	body, err := json.Marshal(map[string]string{
		"name":        name,
		"description": description,
	})
	if err != nil {
		return nil, fmt.Errorf("api: serializar categoría: %w", err)
	}
	data, err := c.do(ctx, http.MethodPost, "/category", bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}
	var out dto.CategoryPayload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("api: deserializar categoría: %w", err)
	}
	return &out, nil
}

// DeleteCategory DELETE /category/{id}.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/category/"+id, nil, "")
	return err
}

// DeleteProductsByCategory DELETE /product/deletebycategory/{categoryId}.
func (c *Client) DeleteProductsByCategory(ctx context.Context, categoryID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/product/deletebycategory/"+categoryID, nil, "")
	return err
}

// ── Operaciones de productos ──────────────────────────────────────────────────

// ListProducts GET /product.
func (c *Client) ListProducts(ctx context.Context) ([]dto.ProductPayload, error) {
	data, err := c.do(ctx, http.MethodGet, "/product", nil, "")
	if err != nil {
		return nil, err
	}
	var out []dto.ProductPayload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("api: deserializar productos: %w", err)
	}
	return out, nil
}

// CreateProduct POST /product (multipart): campos escalares + image +
// secondary_images repetido.
func (c *Client) CreateProduct(ctx context.Context, draft entity.ProductFormDraft) (*dto.ProductPayload, error) {
	body, contentType, err := multipartDesdeDraft(draft)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPost, "/product", body, contentType)
	if err != nil {
		return nil, err
	}
	var out dto.ProductPayload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("api: deserializar producto: %w", err)
	}
	return &out, nil
}

// UpdateProduct PATCH /product/{id} (multipart sparse): solo viajan los
// campos con contenido; lo omitido queda intacto en el servidor. Las
// imágenes secundarias, si vienen, son un set de reemplazo completo.
func (c *Client) UpdateProduct(ctx context.Context, id string, draft entity.ProductFormDraft) (*dto.ProductPayload, error) {
	body, contentType, err := multipartDesdeDraft(draft)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPatch, "/product/"+id, body, contentType)
	if err != nil {
		return nil, err
	}
	var out dto.ProductPayload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("api: deserializar producto: %w", err)
	}
	return &out, nil
}

// DeleteProduct DELETE /product/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/product/"+id, nil, "")
	return err
}

// ── Núcleo request/response ───────────────────────────────────────────────────

// do ejecuta una llamada con credencial bearer y decodifica el sobre
// { success, data, message }. Tanto !resp.ok como success=false son fallo;
// se muestra message cuando viene presente.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	tok, err := c.creds.Token()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("api: timeout o cancelación: %w", domain.ErrRed)
		}
		return nil, fmt.Errorf("api: llamada HTTP fallida: %w", domain.ErrRed)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("api: leer respuesta: %w", domain.ErrRed)
	}

	var env dto.Envelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("api: respuesta ilegible: %w", err)
		}
		return nil, mapearFallo(resp.StatusCode, "")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("path", path).
			Str("message", env.Message).
			Msg("api: operación rechazada")
		return nil, mapearFallo(resp.StatusCode, env.Message)
	}

	return env.Data, nil
}

// mapearFallo traduce el status HTTP (y message del sobre) a los sentinelas
// de dominio.
func mapearFallo(status int, message string) error {
	var base error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		base = domain.ErrNoAutorizado
	case status == http.StatusNotFound:
		base = domain.ErrNoEncontrado
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		base = domain.ErrValidacion
	default:
		base = domain.ErrRed
	}
	if message != "" {
		return fmt.Errorf("%s: %w", message, base)
	}
	return fmt.Errorf("HTTP %d: %w", status, base)
}

// ── Multipart ─────────────────────────────────────────────────────────────────

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// multipartDesdeDraft arma el cuerpo multipart de alta/edición. Semántica
// sparse: solo se escriben los campos con contenido. La imagen principal va
// bajo "image" y cada secundaria bajo el campo repetido "secondary_images".
func multipartDesdeDraft(draft entity.ProductFormDraft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	campos := map[string]string{
		"name":        strings.TrimSpace(draft.Name),
		"description": strings.TrimSpace(draft.Description),
		"price":       strings.TrimSpace(draft.Price),
		"offerPrice":  strings.TrimSpace(draft.OfferPrice),
		"stock":       strings.TrimSpace(draft.Stock),
		"categoryid":  strings.TrimSpace(draft.CategoryID),
	}
	// Orden estable de escritura para que el cuerpo sea reproducible en tests.
	for _, k := range []string{"name", "description", "price", "offerPrice", "stock", "categoryid"} {
		if campos[k] == "" {
			continue
		}
		if err := w.WriteField(k, campos[k]); err != nil {
			return nil, "", fmt.Errorf("api: campo %s: %w", k, err)
		}
	}

	if draft.MainImage != nil {
		if err := escribirArchivo(w, "image", *draft.MainImage); err != nil {
			return nil, "", err
		}
	}
	for _, f := range draft.SecondaryImages {
		if err := escribirArchivo(w, "secondary_images", f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("api: cerrar multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func escribirArchivo(w *multipart.Writer, field string, f entity.StagedFile) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(f.Name)))
	if f.MIME != "" {
		h.Set("Content-Type", f.MIME)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("api: parte %s: %w", field, err)
	}
	if _, err := part.Write(f.Content); err != nil {
		return fmt.Errorf("api: escribir %s: %w", f.Name, err)
	}
	return nil
}
