package repository

import (
	"context"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
)

// InventoryRepository puerto de lectura de contenedores (el CRUD vive fuera de este servicio).
type InventoryRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Inventory, error)
	GetByContainerNumber(ctx context.Context, containerNumber string) (*entity.Inventory, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Inventory, error)
	// LockByIDs bloquea las filas (SELECT FOR UPDATE) y devuelve los IDs encontrados.
	// Solo tiene efecto dentro de una transacción.
	LockByIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// LeasingInfoRepository puerto de lectura de arrendamientos.
type LeasingInfoRepository interface {
	LatestByInventory(ctx context.Context, inventoryID int64) (*entity.LeasingInfo, error)
	// LatestByInventories mapa inventoryID -> leasing más reciente; los contenedores sin leasing no aparecen.
	LatestByInventories(ctx context.Context, inventoryIDs []int64) (map[int64]*entity.LeasingInfo, error)
}

// JobRepository resuelve un número de job a Shipment o EmptyRepoJob.
type JobRepository interface {
	GetByNumber(ctx context.Context, jobNumber string) (*entity.Job, error)
}
