package dto

import "time"

// BulkTransitionRequest body para POST /api/movements/bulk-transition.
// Date acepta YYYY-MM-DD o RFC3339.
type BulkTransitionRequest struct {
	IDs                  []int64 `json:"ids"`
	NewStatus            string  `json:"new_status"`
	JobNumber            string  `json:"job_number"`
	Date                 string  `json:"date"`
	Remarks              string  `json:"remarks,omitempty"`
	PortID               *int64  `json:"port_id,omitempty"`
	AddressBookID        *int64  `json:"address_book_id,omitempty"`
	VesselName           string  `json:"vessel_name,omitempty"`             // solo SOB
	CarrierAddressBookID *int64  `json:"carrier_address_book_id,omitempty"` // solo SOB
	BatchID              string  `json:"batch_id,omitempty"`
}

// MovementRecordResponse una fila del libro, con nombres de referencia cuando están disponibles.
type MovementRecordResponse struct {
	ID              int64     `json:"id"`
	InventoryID     int64     `json:"inventory_id"`
	ContainerNumber string    `json:"container_number,omitempty"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`
	PortID          *int64    `json:"port_id,omitempty"`
	PortName        string    `json:"port_name,omitempty"`
	AddressBookID   *int64    `json:"address_book_id,omitempty"`
	CompanyName     string    `json:"company_name,omitempty"`
	ShipmentID      *int64    `json:"shipment_id,omitempty"`
	EmptyRepoJobID  *int64    `json:"empty_repo_job_id,omitempty"`
	JobNumber       string    `json:"job_number"`
	VesselName      string    `json:"vessel_name,omitempty"`
	Remarks         string    `json:"remarks,omitempty"`
	BatchID         string    `json:"batch_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       string    `json:"created_by,omitempty"`
}

// BulkTransitionResponse resultado de una actualización masiva.
// Replayed = true si el batch_id ya existía y no se escribió nada.
type BulkTransitionResponse struct {
	BatchID    string                   `json:"batch_id"`
	FromStatus string                   `json:"from_status,omitempty"`
	ToStatus   string                   `json:"to_status"`
	Replayed   bool                     `json:"replayed"`
	Items      []MovementRecordResponse `json:"items"`
}

// MovementListResponse lista paginada (vista "latest").
type MovementListResponse struct {
	Items []MovementRecordResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// MovementHistoryResponse historial de un contenedor, de más reciente a más antiguo.
type MovementHistoryResponse struct {
	InventoryID     int64                    `json:"inventory_id"`
	ContainerNumber string                   `json:"container_number"`
	CurrentStatus   string                   `json:"current_status,omitempty"`
	Items           []MovementRecordResponse `json:"items"`
}

// CorrectDateRequest body para PATCH /api/movements/:id/date.
type CorrectDateRequest struct {
	Date string `json:"date"`
}

// DateCorrectionResponse resultado de una corrección de fecha.
// CurrentStatusChanged avisa que la corrección cambió la fila "latest" del contenedor.
type DateCorrectionResponse struct {
	Record                MovementRecordResponse `json:"record"`
	PreviousCurrentID     int64                  `json:"previous_current_id"`
	PreviousCurrentStatus string                 `json:"previous_current_status"`
	CurrentID             int64                  `json:"current_id"`
	CurrentStatus         string                 `json:"current_status"`
	CurrentStatusChanged  bool                   `json:"current_status_changed"`
	Warning               string                 `json:"warning,omitempty"`
}

// TransitionsResponse estados permitidos desde un estado.
type TransitionsResponse struct {
	Status      string   `json:"status"`
	AllowedNext []string `json:"allowed_next"`
}

// AllotContainersRequest body para POST /api/jobs/containers (siembra ALLOTTED).
type AllotContainersRequest struct {
	JobNumber    string  `json:"job_number"`
	InventoryIDs []int64 `json:"inventory_ids"`
	Date         string  `json:"date"`
}

// DetachContainersRequest body para POST /api/jobs/containers/detach (AVAILABLE sintético).
type DetachContainersRequest struct {
	JobNumber    string  `json:"job_number"`
	InventoryIDs []int64 `json:"inventory_ids"`
	Date         string  `json:"date"`
	Remarks      string  `json:"remarks,omitempty"`
}

// JobLedgerResponse resultado de alta o baja de contenedores en un job.
type JobLedgerResponse struct {
	BatchID   string                   `json:"batch_id"`
	JobNumber string                   `json:"job_number"`
	Status    string                   `json:"status"`
	Items     []MovementRecordResponse `json:"items"`
}

// PurgeJobResponse resultado del borrado en cascada de las filas de un job.
type PurgeJobResponse struct {
	JobNumber string `json:"job_number"`
	Deleted   int64  `json:"deleted"`
}
