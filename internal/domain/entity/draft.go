package entity

import (
	"strconv"
	"strings"
)

// MaxImagenesSecundarias límite de imágenes adicionales por producto.
const MaxImagenesSecundarias = 3

// StagedFile es un archivo seleccionado por el usuario pero aún no enviado al
// API remoto. Size existe aparte de Content porque la deduplicación del
// formulario compara por (Name, Size) sin tocar los bytes.
type StagedFile struct {
	Name    string
	Size    int64
	MIME    string
	Content []byte
}

// NewStagedFile construye un archivo en staging; si size es 0 usa len(content).
func NewStagedFile(name, mime string, content []byte) StagedFile {
	return StagedFile{
		Name:    name,
		Size:    int64(len(content)),
		MIME:    mime,
		Content: content,
	}
}

// ProductFormDraft es el estado transitorio del formulario de alta/edición.
// Los campos escalares se guardan como string crudo (lo que escribió el
// usuario); el parseo ocurre al enviar. No se persiste nunca.
type ProductFormDraft struct {
	Name        string
	Description string
	Price       string
	OfferPrice  string
	Stock       string
	CategoryID  string

	// MainImage nil en edición significa "conservar la imagen existente".
	MainImage       *StagedFile
	SecondaryImages []StagedFile
}

// DraftDesdeProducto siembra un borrador de edición a partir de un producto
// existente. MainImage queda nil (conservar) y las imágenes secundarias
// arrancan vacías: el flujo de edición solo las envía si el usuario vuelve a
// seleccionarlas explícitamente.
func DraftDesdeProducto(p Product) ProductFormDraft {
	d := ProductFormDraft{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		CategoryID:  p.CategoryID,
	}
	if p.OfferPrice != nil {
		d.OfferPrice = p.OfferPrice.String()
	}
	if p.Stock != nil {
		d.Stock = strconv.Itoa(*p.Stock)
	}
	return d
}

// TieneImagenPrincipal indica si el borrador resolvió una imagen principal.
func (d ProductFormDraft) TieneImagenPrincipal() bool {
	return d.MainImage != nil
}

// EstaVacio indica si ningún campo escalar del borrador tiene contenido.
func (d ProductFormDraft) EstaVacio() bool {
	return strings.TrimSpace(d.Name) == "" &&
		strings.TrimSpace(d.Description) == "" &&
		strings.TrimSpace(d.Price) == "" &&
		strings.TrimSpace(d.OfferPrice) == "" &&
		strings.TrimSpace(d.Stock) == "" &&
		strings.TrimSpace(d.CategoryID) == "" &&
		d.MainImage == nil &&
		len(d.SecondaryImages) == 0
}
