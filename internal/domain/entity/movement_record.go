package entity

import "time"

// Status estado de un contenedor dentro del libro de movimientos.
type Status string

// Estados del ciclo de vida de un contenedor.
const (
	StatusAllotted        Status = "ALLOTTED"
	StatusEmptyPickedUp   Status = "EMPTY PICKED UP"
	StatusLadenGateIn     Status = "LADEN GATE-IN"
	StatusSOB             Status = "SOB" // shipped on board
	StatusGateOut         Status = "GATE-OUT"
	StatusEmptyReturned   Status = "EMPTY RETURNED"
	StatusAvailable       Status = "AVAILABLE"
	StatusUnavailable     Status = "UNAVAILABLE"
	StatusDamaged         Status = "DAMAGED"
	StatusCancelled       Status = "CANCELLED"
	StatusReturnedToDepot Status = "RETURNED TO DEPOT"
)

// RequiresRemarks indica si el estado exige remarks no vacío.
func (s Status) RequiresRemarks() bool {
	return s == StatusDamaged || s == StatusCancelled
}

// MovementRecord una fila del libro de movimientos: un evento de transición de un contenedor.
// Inmutable una vez escrita, salvo la corrección explícita de Date.
type MovementRecord struct {
	ID             int64
	InventoryID    int64
	Date           time.Time // fecha de negocio, distinta de CreatedAt
	Status         Status
	PortID         *int64 // significado según el estado
	AddressBookID  *int64 // depósito, naviera o cliente según el estado
	ShipmentID     *int64 // excluyente con EmptyRepoJobID
	EmptyRepoJobID *int64
	JobNumber      string // desnormalizado; se conserva aunque el contenedor se desvincule del job
	VesselName     string // solo SOB
	Remarks        string
	BatchID        string // agrupa las filas escritas en una misma operación
	CreatedAt      time.Time
	CreatedBy      string
}

// Newer informa si r debe considerarse posterior a other (fecha mayor; empate por ID mayor).
func (r *MovementRecord) Newer(other *MovementRecord) bool {
	if other == nil {
		return true
	}
	if !r.Date.Equal(other.Date) {
		return r.Date.After(other.Date)
	}
	return r.ID > other.ID
}
