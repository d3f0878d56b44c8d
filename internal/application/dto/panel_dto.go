package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP del panel.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LoginRequest credenciales del panel. La validación es solo "no vacío":
// el login real vive en el colaborador de autenticación, fuera de este core.
type LoginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// LoginResponse token local del panel.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateCategoryRequest alta de categoría desde el panel.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría hacia el navegador.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductResponse producto hacia el navegador, con la categoría ya
// normalizada (referencias colgantes degradan a "uncategorized").
type ProductResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	OfferPrice      *decimal.Decimal `json:"offerPrice,omitempty"`
	Stock           *int             `json:"stock,omitempty"`
	CategoryID      string           `json:"categoryId"`
	Image           string           `json:"image"`
	SecondaryImages []string         `json:"secondaryImages,omitempty"`
}

// DashboardResponse conteos para las tarjetas del tablero.
type DashboardResponse struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
}
