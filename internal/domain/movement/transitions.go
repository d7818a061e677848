// Package movement contiene la lógica de dominio del libro de movimientos de contenedores:
// tabla de transiciones, resolución de puerto/ubicación por estado y proyección del último estado.
package movement

import "github.com/sujit-maker/move-sub001/internal/domain/entity"

// transitionTable estado actual -> estados siguientes permitidos.
var transitionTable = map[entity.Status][]entity.Status{
	entity.StatusAllotted:        {entity.StatusEmptyPickedUp},
	entity.StatusEmptyPickedUp:   {entity.StatusLadenGateIn, entity.StatusDamaged, entity.StatusCancelled},
	entity.StatusLadenGateIn:     {entity.StatusSOB},
	entity.StatusSOB:             {entity.StatusGateOut},
	entity.StatusGateOut:         {entity.StatusEmptyReturned, entity.StatusDamaged},
	entity.StatusEmptyReturned:   {entity.StatusAvailable, entity.StatusUnavailable},
	entity.StatusAvailable:       {entity.StatusUnavailable},
	entity.StatusUnavailable:     {entity.StatusAvailable},
	entity.StatusDamaged:         {entity.StatusReturnedToDepot},
	entity.StatusCancelled:       {entity.StatusReturnedToDepot},
	entity.StatusReturnedToDepot: {entity.StatusUnavailable, entity.StatusAvailable},
}

// AllowedNext devuelve una copia de los estados permitidos desde current.
// Un estado desconocido devuelve un slice vacío.
func AllowedNext(current entity.Status) []entity.Status {
	next := transitionTable[current]
	out := make([]entity.Status, len(next))
	copy(out, next)
	return out
}

// CanTransition informa si from -> to está en la tabla.
func CanTransition(from, to entity.Status) bool {
	for _, s := range transitionTable[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsKnown informa si el estado pertenece a la enumeración.
func IsKnown(s entity.Status) bool {
	_, ok := transitionTable[s]
	return ok
}

// Statuses devuelve todos los estados conocidos en el orden del ciclo de vida.
func Statuses() []entity.Status {
	return []entity.Status{
		entity.StatusAllotted,
		entity.StatusEmptyPickedUp,
		entity.StatusLadenGateIn,
		entity.StatusSOB,
		entity.StatusGateOut,
		entity.StatusEmptyReturned,
		entity.StatusAvailable,
		entity.StatusUnavailable,
		entity.StatusDamaged,
		entity.StatusCancelled,
		entity.StatusReturnedToDepot,
	}
}
