package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del libro de movimientos de contenedores.
// Los casos de uso los envuelven con detalle (fmt.Errorf("%w: ...")); comparar con errors.Is.
var (
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrMixedCurrentStatus  = errors.New("los contenedores seleccionados no comparten el estado actual")
	ErrMissingRemarks      = errors.New("remarks es obligatorio para DAMAGED y CANCELLED")
	ErrMissingLocationData = errors.New("faltan datos de puerto o ubicación")
	ErrUnknownJob          = errors.New("número de job no encontrado")
	ErrJobMismatch         = errors.New("los contenedores seleccionados no pertenecen al mismo job")
)
