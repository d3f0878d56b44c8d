package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/form"
	"github.com/jhoicas/tienda-admin/internal/application/store"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/filter"
)

// ProductHandler maneja las peticiones del navegador para productos.
type ProductHandler struct {
	prods *store.ProductStore
}

// NewProductHandler construye el handler.
func NewProductHandler(prods *store.ProductStore) *ProductHandler {
	return &ProductHandler{prods: prods}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Búsqueda por nombre o descripción"
// @Param        category  query  string  false  "ID de categoría o 'all'"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if h.prods.IsStale() {
		if err := h.prods.Refresh(c.UserContext()); err != nil {
			return responderError(c, err)
		}
	}
	st := filter.State{
		SearchText:         c.Query("search"),
		SelectedCategoryID: c.Query("category"),
		ActiveView:         filter.ViewProducts,
	}
	prods := h.prods.List(st)
	out := make([]dto.ProductResponse, 0, len(prods))
	for _, p := range prods {
		out = append(out, productoResponse(p))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	draft, err := draftDesdeForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	prod, err := h.prods.Add(c.UserContext(), draft)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(productoResponse(*prod))
}

// Update godoc
// @Summary      Actualizar producto (sparse)
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	draft, err := draftDesdeForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	prod, err := h.prods.Update(c.UserContext(), id, draft)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(productoResponse(*prod))
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204  "Eliminado"
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.prods.Remove(c.UserContext(), id); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// draftDesdeForm arma el borrador desde el multipart del navegador. El
// staging de imágenes pasa por ImageFormState, que aplica las reglas del
// formulario: deduplicación por (nombre, tamaño) y tope de 3 secundarias.
func draftDesdeForm(c *fiber.Ctx) (entity.ProductFormDraft, error) {
	draft := entity.ProductFormDraft{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		OfferPrice:  c.FormValue("offerPrice"),
		Stock:       c.FormValue("stock"),
		CategoryID:  c.FormValue("categoryid"),
	}

	mf, err := c.MultipartForm()
	if err != nil {
		// Sin multipart: borrador solo de campos (PATCH sparse sin imágenes).
		return draft, nil
	}

	imagenes := form.NewImageFormState()
	if files := mf.File["image"]; len(files) > 0 {
		staged, err := archivoDesdeHeader(files[0])
		if err != nil {
			return draft, err
		}
		imagenes.SetMainImage(staged)
	}
	if files := mf.File["secondary_images"]; len(files) > 0 {
		lote := make([]entity.StagedFile, 0, len(files))
		for _, fh := range files {
			staged, err := archivoDesdeHeader(fh)
			if err != nil {
				return draft, err
			}
			lote = append(lote, staged)
		}
		imagenes.AppendSecondaryImages(lote)
	}
	imagenes.AplicarA(&draft)
	return draft, nil
}

func archivoDesdeHeader(fh *multipart.FileHeader) (entity.StagedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return entity.StagedFile{}, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return entity.StagedFile{}, err
	}
	return entity.StagedFile{
		Name:    fh.Filename,
		Size:    fh.Size,
		MIME:    fh.Header.Get("Content-Type"),
		Content: content,
	}, nil
}

func productoResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OfferPrice:      p.OfferPrice,
		Stock:           p.Stock,
		CategoryID:      p.CategoriaVisible(),
		Image:           p.Image,
		SecondaryImages: p.SecondaryImages,
	}
}
