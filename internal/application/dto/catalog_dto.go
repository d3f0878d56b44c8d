package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// Envelope es el sobre estándar del API remoto: { success, data, message }.
// Un 2xx con success=false también es fallo; Message se muestra al usuario
// cuando viene presente.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CategoryRef acepta las dos formas en que el servidor entrega la categoría
// de un producto: un id plano ("c1") o un objeto embebido ({"_id":"c1",...}).
// Es la única pieza que conoce esa ambigüedad; después de deserializar, el
// resto del sistema solo ve el string normalizado.
type CategoryRef struct {
	ID string
}

// UnmarshalJSON normaliza la referencia en el borde de ingestión.
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	// Forma 1: id plano como string (o null).
	var plano string
	if err := json.Unmarshal(data, &plano); err == nil {
		r.ID = plano
		return nil
	}
	if string(data) == "null" {
		r.ID = ""
		return nil
	}
	// Forma 2: objeto embebido; basta el _id.
	var embebido struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(data, &embebido); err != nil {
		return err
	}
	if embebido.MongoID != "" {
		r.ID = embebido.MongoID
	} else {
		r.ID = embebido.ID
	}
	return nil
}

// CategoryPayload categoría cruda tal como la entrega el API remoto.
type CategoryPayload struct {
	MongoID     string `json:"_id"`
	PlainID     string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToEntity convierte el payload en la entidad de dominio.
func (p CategoryPayload) ToEntity() entity.Category {
	return entity.Category{
		ID:          coalesce(p.MongoID, p.PlainID),
		Name:        p.Name,
		Description: p.Description,
	}
}

// ProductPayload producto crudo del API remoto. Price llega como número JSON;
// decimal.Decimal lo deserializa sin pasar por float64.
type ProductPayload struct {
	MongoID         string           `json:"_id"`
	PlainID         string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	OfferPrice      *decimal.Decimal `json:"offerPrice"`
	Stock           *int             `json:"stock"`
	Category        CategoryRef      `json:"categoryid"`
	Image           string           `json:"image"`
	SecondaryImages []string         `json:"secondary_images"`
}

// ToEntity convierte el payload en la entidad de dominio con el CategoryID
// ya normalizado (invariante: string primitivo, nunca objeto).
func (p ProductPayload) ToEntity() entity.Product {
	return entity.Product{
		ID:              coalesce(p.MongoID, p.PlainID),
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OfferPrice:      p.OfferPrice,
		Stock:           p.Stock,
		CategoryID:      p.Category.ID,
		Image:           p.Image,
		SecondaryImages: p.SecondaryImages,
	}
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
