// Package filter calcula los subconjuntos visibles de categorías y productos.
// Todas las funciones son puras: sin red, sin efectos, orden de entrada
// preservado (nunca se ordena implícitamente).
package filter

import (
	"strings"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// TodasLasCategorias es el comodín de filtro "sin categoría seleccionada".
const TodasLasCategorias = "all"

// View identifica la vista activa del panel.
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewCategories View = "categories"
	ViewProducts   View = "products"
)

// State es el estado de filtrado propio de la UI (transitorio).
// Invariante: SelectedCategoryID se limpia cuando la categoría referenciada
// se elimina (lo aplica el coordinador de borrado en cascada).
type State struct {
	SearchText         string
	SelectedCategoryID string // vacío o TodasLasCategorias = sin filtro
	ActiveView         View
}

// ClearSelectionIf limpia la selección si apunta a la categoría dada.
func (s *State) ClearSelectionIf(categoryID string) {
	if s.SelectedCategoryID == categoryID {
		s.SelectedCategoryID = ""
	}
}

// Categories filtra por substring del nombre, sin distinguir mayúsculas.
// Siempre devuelve un slice nuevo, nunca un alias de la entrada: el caller
// puede mutarlo sin alcanzar el arreglo del store.
func Categories(cats []entity.Category, search string) []entity.Category {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		out := make([]entity.Category, len(cats))
		copy(out, cats)
		return out
	}
	out := make([]entity.Category, 0, len(cats))
	for _, c := range cats {
		if strings.Contains(strings.ToLower(c.Name), search) {
			out = append(out, c)
		}
	}
	return out
}

// Products aplica los dos predicados en AND:
//   - categoría: igualdad exacta sobre el id normalizado, o comodín
//     ("all" / vacío = todas)
//   - búsqueda: substring sobre nombre O descripción, sin mayúsculas
func Products(prods []entity.Product, categoryID, search string) []entity.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	all := categoryID == "" || categoryID == TodasLasCategorias

	out := make([]entity.Product, 0, len(prods))
	for _, p := range prods {
		if !all && p.CategoryID != categoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProductsInCategory devuelve los productos de una categoría seleccionada
// (vista de detalle). Una categoría sin productos devuelve slice vacío, no
// es un error.
func ProductsInCategory(prods []entity.Product, categoryID string) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range prods {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}
