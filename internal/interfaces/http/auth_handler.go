package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/pkg/token"
)

// AuthHandler login del panel. La validación es deliberadamente mínima
// (usuario y contraseña no vacíos): la verificación real de credenciales es
// del colaborador de autenticación, fuera de este core.
type AuthHandler struct {
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewAuthHandler construye el handler.
func NewAuthHandler(secret, issuer string, expMinutes int) *AuthHandler {
	return &AuthHandler{jwtSecret: secret, jwtIssuer: issuer, expMinutes: expMinutes}
}

// Login godoc
// @Summary      Login del panel
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.User) == "" || strings.TrimSpace(in.Password) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario y contraseña son requeridos"})
	}
	tok, err := token.Generate(h.jwtSecret, strings.TrimSpace(in.User), h.jwtIssuer, h.expMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LoginResponse{Token: tok})
}
