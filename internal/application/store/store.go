// Package store mantiene las colecciones en memoria del panel (categorías y
// productos) sincronizadas con el API remoto de catálogo.
//
// Cada store es dueño de su propia máquina de estado Idle → Loading →
// (Idle | Error). Solo una operación mutante puede estar en vuelo a la vez
// por store: el equivalente en Go de deshabilitar los controles de la UI
// mientras carga. Operaciones de stores distintos sí pueden intercalarse; el
// coordinador de cascada es el único autorizado a mutar ambos stores dentro
// de una misma operación lógica.
package store

import (
	"sync"
	"time"
)

// estado es la máquina de estado compartida por los stores. El mutex protege
// también la lista del store que lo embebe.
type estado struct {
	mu         sync.Mutex
	loading    bool
	errMsg     string
	fetchedAt  time.Time
	staleAfter time.Duration
}

// beginOp arranca una operación mutante: resetea el error propio (nunca el
// de otro store) y marca Loading. Si ya hay una operación en vuelo devuelve
// false sin tocar nada.
func (e *estado) beginOp() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loading {
		return false
	}
	e.loading = true
	e.errMsg = ""
	return true
}

// endOp cierra la operación. Ambos caminos (éxito y fallo) limpian Loading;
// ningún caso lo deja colgado salvo un cuelgue de transporte, que acota el
// timeout del http.Client.
func (e *estado) endOp(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		e.errMsg = err.Error()
	}
}

// Loading indica si hay una operación en vuelo.
func (e *estado) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// ErrorMessage devuelve el último error de este store (alcance local: un
// store nunca limpia ni pisa el error de otro).
func (e *estado) ErrorMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

// marcarFresco registra el instante del último listado confirmado.
func (e *estado) marcarFresco() {
	e.mu.Lock()
	e.fetchedAt = time.Now()
	e.mu.Unlock()
}

// IsStale indica si el listado superó la ventana de frescura y conviene un
// Refresh explícito. Reemplaza el patrón de "fetch al cambiar de pestaña":
// la política de caché es del store, no del ciclo de vida de una vista.
func (e *estado) IsStale() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fetchedAt.IsZero() {
		return true
	}
	if e.staleAfter <= 0 {
		return false
	}
	return time.Since(e.fetchedAt) > e.staleAfter
}
