package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/store"
)

// DashboardHandler conteos para las tarjetas del tablero.
type DashboardHandler struct {
	cats  *store.CategoryStore
	prods *store.ProductStore
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(cats *store.CategoryStore, prods *store.ProductStore) *DashboardHandler {
	return &DashboardHandler{cats: cats, prods: prods}
}

// Summary godoc
// @Summary      Resumen del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	if h.cats.IsStale() {
		if err := h.cats.Refresh(c.UserContext()); err != nil {
			return responderError(c, err)
		}
	}
	if h.prods.IsStale() {
		if err := h.prods.Refresh(c.UserContext()); err != nil {
			return responderError(c, err)
		}
	}
	return c.JSON(dto.DashboardResponse{
		Categories: len(h.cats.List()),
		Products:   len(h.prods.Snapshot()),
	})
}
