package entity

import "github.com/shopspring/decimal"

// CategoriaSinAsignar es el valor sentinela de CategoryID para productos que
// quedaron sin categoría (p. ej. tras eliminar su categoría con reasignación).
const CategoriaSinAsignar = "uncategorized"

// Product representa un producto del catálogo remoto.
// Invariante: CategoryID ya está normalizado a string primitivo (posiblemente
// vacío); nunca guarda el objeto embebido que a veces devuelve el servidor.
type Product struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	OfferPrice      *decimal.Decimal // nil si no hay precio de oferta
	Stock           *int             // nil si el servidor no lo reporta
	CategoryID      string
	Image           string   // URL de la imagen principal (alojada en el servidor)
	SecondaryImages []string // 0–3 URLs adicionales
}

// CategoriaVisible devuelve la categoría a mostrar: una referencia colgante
// (categoría eliminada sin reasignar) degrada a "uncategorized", nunca rompe.
func (p Product) CategoriaVisible() string {
	if p.CategoryID == "" {
		return CategoriaSinAsignar
	}
	return p.CategoryID
}
