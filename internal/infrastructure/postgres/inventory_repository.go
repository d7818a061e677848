package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, container_number, container_type, ownership, created_at, updated_at`

// InventoryRepo lectura de contenedores (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row rowScanner) (*entity.Inventory, error) {
	var inv entity.Inventory
	var ctype, ownership *string
	if err := row.Scan(&inv.ID, &inv.ContainerNumber, &ctype, &ownership, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	inv.ContainerType = derefString(ctype)
	inv.Ownership = derefString(ownership)
	return &inv, nil
}

func (r *InventoryRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inv, nil
}

// GetByID obtiene un contenedor por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	return r.getOne(ctx, "get inventory", `SELECT `+inventoryColumns+` FROM inventories WHERE id = $1`, id)
}

// GetByContainerNumber busca por número de contenedor (sin distinguir mayúsculas).
func (r *InventoryRepo) GetByContainerNumber(ctx context.Context, containerNumber string) (*entity.Inventory, error) {
	return r.getOne(ctx, "get inventory by number",
		`SELECT `+inventoryColumns+` FROM inventories WHERE upper(container_number) = upper($1)`, containerNumber)
}

// ListByIDs contenedores existentes entre ids.
func (r *InventoryRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Inventory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+inventoryColumns+` FROM inventories WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// LockByIDs SELECT ... FOR UPDATE en orden de ID para evitar deadlocks entre lotes solapados.
func (r *InventoryRepo) LockByIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT id FROM inventories WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock inventories: %w", err)
	}
	locked, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("lock inventories: %w", err)
	}
	return locked, nil
}
