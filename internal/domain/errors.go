package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Toda operación de los stores resuelve su error localmente; nada cruza
// los límites de componente como panic.
var (
	ErrValidacion       = errors.New("entrada inválida")
	ErrNoAutorizado     = errors.New("no autorizado")
	ErrNoEncontrado     = errors.New("recurso no encontrado")
	ErrRed              = errors.New("fallo de red, intenta de nuevo")
	ErrOperacionEnCurso = errors.New("otra operación está en curso")

	// ErrCascadaParcial: la categoría ya fue eliminada en el servidor pero la
	// limpieza de sus productos quedó incompleta. Se reporta distinto de un
	// fallo total para que el operador sepa que la categoría SÍ desapareció.
	ErrCascadaParcial = errors.New("categoría eliminada, limpieza de productos incompleta")
)
