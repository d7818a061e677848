package repository

import (
	"context"
	"time"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
)

// LatestFilter filtros para la proyección del último estado por contenedor.
type LatestFilter struct {
	Status    entity.Status // vacío = todos
	JobNumber string        // vacío = todos
	Limit     int
	Offset    int
}

// MovementRecordRepository define el puerto de persistencia del libro de movimientos.
// Solo agrega filas; la única mutación in-place es UpdateDate.
type MovementRecordRepository interface {
	// CreateBatch inserta las filas y asigna ID a cada una. Debe llamarse dentro de una transacción.
	CreateBatch(ctx context.Context, records []*entity.MovementRecord) error
	GetByID(ctx context.Context, id int64) (*entity.MovementRecord, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.MovementRecord, error)
	// ListByInventoryIDs devuelve todas las filas de los contenedores indicados (sin orden garantizado).
	ListByInventoryIDs(ctx context.Context, inventoryIDs []int64) ([]*entity.MovementRecord, error)
	// ListByInventory historial de un contenedor, de la más reciente a la más antigua.
	ListByInventory(ctx context.Context, inventoryID int64) ([]*entity.MovementRecord, error)
	// ListLatest una fila por contenedor: la de mayor fecha (empate: mayor ID).
	ListLatest(ctx context.Context, filter LatestFilter) ([]*entity.MovementRecord, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.MovementRecord, error)
	UpdateDate(ctx context.Context, id int64, date time.Time) error
	// DeleteByJobNumber borrado en cascada cuando se elimina el job dueño.
	DeleteByJobNumber(ctx context.Context, jobNumber string) (int64, error)
}
