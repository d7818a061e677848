package entity

// JobKind tipo de job al que pertenece un número de job.
type JobKind string

const (
	JobKindShipment  JobKind = "shipment"
	JobKindEmptyRepo JobKind = "empty_repo"
)

// Job vista unificada de un Shipment o un EmptyRepoJob, con lo que el libro necesita
// para inferir puertos y ubicaciones.
type Job struct {
	Kind                 JobKind
	ID                   int64
	Number               string // ej. RST/AAA/25/00001
	POLPortID            *int64 // puerto de carga
	PODPortID            *int64 // puerto de descarga
	CarrierAddressBookID *int64
	EmptyReturnDepotID   *int64
}

// ShipmentID devuelve el ID si el job es un Shipment.
func (j *Job) ShipmentID() *int64 {
	if j == nil || j.Kind != JobKindShipment {
		return nil
	}
	id := j.ID
	return &id
}

// EmptyRepoJobID devuelve el ID si el job es un EmptyRepoJob.
func (j *Job) EmptyRepoJobID() *int64 {
	if j == nil || j.Kind != JobKindEmptyRepo {
		return nil
	}
	id := j.ID
	return &id
}
