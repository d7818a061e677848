package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

var _ repository.LeasingInfoRepository = (*LeasingInfoRepo)(nil)

const leasingColumns = `id, inventory_id, leasing_ref, lessor_address_book_id, port_id, on_hire_depot_id,
	on_hire_date, rent_per_day, lease_value, created_at`

// LeasingInfoRepo lectura de arrendamientos. rent_per_day y lease_value son NUMERIC (codec decimal del pool).
type LeasingInfoRepo struct {
	q Querier
}

// NewLeasingInfoRepository construye el adaptador.
func NewLeasingInfoRepository(q Querier) *LeasingInfoRepo {
	return &LeasingInfoRepo{q: q}
}

func scanLeasing(row rowScanner) (*entity.LeasingInfo, error) {
	var l entity.LeasingInfo
	var ref *string
	if err := row.Scan(
		&l.ID, &l.InventoryID, &ref, &l.LessorAddressBookID, &l.PortID, &l.OnHireDepotID,
		&l.OnHireDate, &l.RentPerDay, &l.LeaseValue, &l.CreatedAt,
	); err != nil {
		return nil, err
	}
	l.LeasingRef = derefString(ref)
	return &l, nil
}

// LatestByInventory leasing más reciente del contenedor (por fecha de on-hire, luego ID).
func (r *LeasingInfoRepo) LatestByInventory(ctx context.Context, inventoryID int64) (*entity.LeasingInfo, error) {
	query := `SELECT ` + leasingColumns + ` FROM leasing_infos WHERE inventory_id = $1
		ORDER BY on_hire_date DESC, id DESC LIMIT 1`
	l, err := scanLeasing(r.q.QueryRow(ctx, query, inventoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest leasing info: %w", err)
	}
	return l, nil
}

// LatestByInventories leasing más reciente por contenedor en una sola consulta.
func (r *LeasingInfoRepo) LatestByInventories(ctx context.Context, inventoryIDs []int64) (map[int64]*entity.LeasingInfo, error) {
	out := make(map[int64]*entity.LeasingInfo, len(inventoryIDs))
	if len(inventoryIDs) == 0 {
		return out, nil
	}
	query := `SELECT DISTINCT ON (inventory_id) ` + leasingColumns + ` FROM leasing_infos
		WHERE inventory_id = ANY($1)
		ORDER BY inventory_id, on_hire_date DESC, id DESC`
	rows, err := r.q.Query(ctx, query, inventoryIDs)
	if err != nil {
		return nil, fmt.Errorf("list latest leasing info: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLeasing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leasing info: %w", err)
		}
		out[l.InventoryID] = l
	}
	return out, rows.Err()
}
