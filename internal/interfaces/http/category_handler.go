package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/store"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// CategoryHandler maneja las peticiones del navegador para categorías.
type CategoryHandler struct {
	cats  *store.CategoryStore
	coord *store.CascadeDeleteCoordinator
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(cats *store.CategoryStore, coord *store.CascadeDeleteCoordinator) *CategoryHandler {
	return &CategoryHandler{cats: cats, coord: coord}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Filtro por nombre"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	if h.cats.IsStale() {
		if err := h.cats.Refresh(c.UserContext()); err != nil {
			return responderError(c, err)
		}
	}
	cats := h.cats.Search(c.Query("search"))
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoriaResponse(cat))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.cats.Add(c.UserContext(), in.Name, in.Description)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(categoriaResponse(*cat))
}

// Delete godoc
// @Summary      Eliminar categoría (cascada)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id              path   string  true   "ID de la categoría"
// @Param        deleteProducts  query  bool    false  "true: borrar sus productos; false: reasignarlos a uncategorized"
// @Success      204  "Eliminada"
// @Failure      207  {object}  dto.ErrorResponse  "Categoría eliminada, limpieza incompleta"
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	// La decisión de cascada viene del diálogo de confirmación del navegador
	// como booleano plano; por defecto se reasigna (no se borra nada de más).
	deleteProducts := c.QueryBool("deleteProducts", false)

	if err := h.coord.Delete(c.UserContext(), id, deleteProducts); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func categoriaResponse(cat entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Description: cat.Description}
}
