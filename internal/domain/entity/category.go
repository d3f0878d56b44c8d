package entity

// Category representa una categoría del catálogo. El ID lo asigna siempre el
// servidor remoto; el cliente nunca sintetiza identificadores locales.
type Category struct {
	ID          string
	Name        string
	Description string
}
