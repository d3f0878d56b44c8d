// Package form maneja el estado transitorio de los formularios de producto:
// la imagen principal pendiente y la lista ordenada de hasta 3 imágenes
// secundarias, con su ciclo de vida de previews.
package form

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// ImageFormState estado de imágenes de un formulario de alta/edición.
// No es seguro para uso concurrente: cada formulario abierto tiene el suyo y
// vive en un solo flujo de eventos de la UI.
type ImageFormState struct {
	main        *entity.StagedFile
	secundarias []entity.StagedFile
}

// NewImageFormState construye el estado vacío ("agregar producto"). Para
// edición también arranca vacío: main nil significa "conservar la imagen
// existente" y las secundarias solo se envían si el usuario las vuelve a
// seleccionar.
func NewImageFormState() *ImageFormState {
	return &ImageFormState{}
}

// SetMainImage fija la imagen principal pendiente (reemplaza la anterior).
func (f *ImageFormState) SetMainImage(file entity.StagedFile) {
	f.main = &file
}

// ClearMainImage descarta la imagen principal pendiente.
func (f *ImageFormState) ClearMainImage() {
	f.main = nil
}

// MainImage devuelve la imagen principal pendiente o nil.
func (f *ImageFormState) MainImage() *entity.StagedFile {
	return f.main
}

// AppendSecondaryImages agrega imágenes secundarias: deduplica contra las ya
// en staging por el par (nombre, tamaño) y trunca el total combinado a 3.
// El excedente se descarta en silencio, no es un error.
func (f *ImageFormState) AppendSecondaryImages(files []entity.StagedFile) {
	for _, file := range files {
		if len(f.secundarias) >= entity.MaxImagenesSecundarias {
			break
		}
		if f.yaEnStaging(file) {
			continue
		}
		f.secundarias = append(f.secundarias, file)
	}
}

func (f *ImageFormState) yaEnStaging(file entity.StagedFile) bool {
	for _, s := range f.secundarias {
		if s.Name == file.Name && s.Size == file.Size {
			return true
		}
	}
	return false
}

// RemoveSecondaryImage quita la imagen en la posición dada; índices fuera de
// rango se ignoran.
func (f *ImageFormState) RemoveSecondaryImage(index int) {
	if index < 0 || index >= len(f.secundarias) {
		return
	}
	f.secundarias = append(f.secundarias[:index], f.secundarias[index+1:]...)
}

// SecondaryImages devuelve una copia de la lista en staging (orden estable).
func (f *ImageFormState) SecondaryImages() []entity.StagedFile {
	out := make([]entity.StagedFile, len(f.secundarias))
	copy(out, f.secundarias)
	return out
}

// AplicarA vuelca el estado de imágenes sobre el borrador antes del envío.
func (f *ImageFormState) AplicarA(draft *entity.ProductFormDraft) {
	draft.MainImage = f.main
	draft.SecondaryImages = f.SecondaryImages()
}

// Reset descarta todo el staging (submit exitoso, cancelar o cerrar modal).
// Los previews emitidos NO se revocan aquí: su dueño es quien los mostró.
func (f *ImageFormState) Reset() {
	f.main = nil
	f.secundarias = nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Previews
// ──────────────────────────────────────────────────────────────────────────────

// PreviewRegistry emite handles de visualización transitorios y revocables
// para archivos en staging. Contrato: cada handle debe revocarse cuando deja
// de mostrarse; los no revocados se acumulan sin límite a lo largo de ciclos
// repetidos de agregar/quitar.
type PreviewRegistry struct {
	mu      sync.Mutex
	handles map[string]entity.StagedFile
}

// NewPreviewRegistry construye el registro.
func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{handles: make(map[string]entity.StagedFile)}
}

// Preview emite un handle de visualización para el archivo.
func (r *PreviewRegistry) Preview(file entity.StagedFile) string {
	url := "preview://" + uuid.New().String()
	r.mu.Lock()
	r.handles[url] = file
	r.mu.Unlock()
	return url
}

// Resolve devuelve el archivo detrás de un handle vigente.
func (r *PreviewRegistry) Resolve(url string) (entity.StagedFile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.handles[url]
	return f, ok
}

// Revoke libera el handle; revocar dos veces es inocuo.
func (r *PreviewRegistry) Revoke(url string) {
	r.mu.Lock()
	delete(r.handles, url)
	r.mu.Unlock()
}

// Count devuelve los handles vivos; los tests lo usan para verificar que el
// ciclo de vida vuelve a cero.
func (r *PreviewRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
