package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

var _ repository.MovementRecordRepository = (*MovementRecordRepo)(nil)

const movementColumns = `id, inventory_id, date, status, port_id, address_book_id, shipment_id, empty_repo_job_id,
	job_number, vessel_name, remarks, batch_id::text, created_at, created_by`

// MovementRecordRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRecordRepo struct {
	q Querier
}

// NewMovementRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRecordRepository(q Querier) *MovementRecordRepo {
	return &MovementRecordRepo{q: q}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (*entity.MovementRecord, error) {
	var m entity.MovementRecord
	var status string
	var vessel, remarks, batchID, createdBy *string
	if err := row.Scan(
		&m.ID, &m.InventoryID, &m.Date, &status, &m.PortID, &m.AddressBookID, &m.ShipmentID, &m.EmptyRepoJobID,
		&m.JobNumber, &vessel, &remarks, &batchID, &m.CreatedAt, &createdBy,
	); err != nil {
		return nil, err
	}
	m.Status = entity.Status(status)
	m.VesselName = derefString(vessel)
	m.Remarks = derefString(remarks)
	m.BatchID = derefString(batchID)
	m.CreatedBy = derefString(createdBy)
	return &m, nil
}

func (r *MovementRecordRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.MovementRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement record: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CreateBatch inserta todas las filas en un solo round-trip (pgx.Batch) y asigna los IDs.
func (r *MovementRecordRepo) CreateBatch(ctx context.Context, records []*entity.MovementRecord) error {
	if len(records) == 0 {
		return nil
	}
	query := `
		INSERT INTO movement_records (inventory_id, date, status, port_id, address_book_id, shipment_id, empty_repo_job_id,
			job_number, vessel_name, remarks, batch_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::uuid, $12, $13)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, m := range records {
		batch.Queue(query,
			m.InventoryID, m.Date, string(m.Status), m.PortID, m.AddressBookID, m.ShipmentID, m.EmptyRepoJobID,
			m.JobNumber, nullString(m.VesselName), nullString(m.Remarks), nullString(m.BatchID), m.CreatedAt, nullString(m.CreatedBy),
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, m := range records {
		if err := br.QueryRow().Scan(&m.ID); err != nil {
			switch {
			case isUniqueViolation(err):
				return fmt.Errorf("%w: lote %s ya registrado para el contenedor %d", domain.ErrConflict, m.BatchID, m.InventoryID)
			case isForeignKeyViolation(err):
				return fmt.Errorf("%w: referencia inexistente en la fila del contenedor %d", domain.ErrNotFound, m.InventoryID)
			case isCheckViolation(err):
				return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
			return fmt.Errorf("create movement record: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una fila por ID.
func (r *MovementRecordRepo) GetByID(ctx context.Context, id int64) (*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM movement_records WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement record: %w", err)
	}
	return m, nil
}

// ListByIDs devuelve las filas existentes entre ids.
func (r *MovementRecordRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.MovementRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + movementColumns + ` FROM movement_records WHERE id = ANY($1) ORDER BY id`
	return r.list(ctx, "list movement records by ids", query, ids)
}

// ListByInventoryIDs todas las filas de los contenedores indicados.
func (r *MovementRecordRepo) ListByInventoryIDs(ctx context.Context, inventoryIDs []int64) ([]*entity.MovementRecord, error) {
	if len(inventoryIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + movementColumns + ` FROM movement_records WHERE inventory_id = ANY($1)`
	return r.list(ctx, "list movement records by inventories", query, inventoryIDs)
}

// ListByInventory historial de un contenedor, de la más reciente a la más antigua.
func (r *MovementRecordRepo) ListByInventory(ctx context.Context, inventoryID int64) ([]*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM movement_records WHERE inventory_id = $1 ORDER BY date DESC, id DESC`
	return r.list(ctx, "list movement history", query, inventoryID)
}

// ListLatest una fila por contenedor (DISTINCT ON con el mismo desempate que la proyección en memoria).
func (r *MovementRecordRepo) ListLatest(ctx context.Context, f repository.LatestFilter) ([]*entity.MovementRecord, error) {
	query := `
		SELECT ` + movementColumns + ` FROM (
			SELECT DISTINCT ON (inventory_id) *
			FROM movement_records
			ORDER BY inventory_id, date DESC, id DESC
		) latest WHERE 1 = 1`
	var args []any
	pos := 1
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, string(f.Status))
		pos++
	}
	if f.JobNumber != "" {
		query += fmt.Sprintf(" AND job_number = $%d", pos)
		args = append(args, f.JobNumber)
		pos++
	}
	query += " ORDER BY inventory_id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
		pos++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, f.Offset)
	}
	return r.list(ctx, "list latest movement records", query, args...)
}

// ListByBatch filas escritas por una misma actualización masiva.
func (r *MovementRecordRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM movement_records WHERE batch_id = $1::uuid ORDER BY id`
	return r.list(ctx, "list movement records by batch", query, batchID)
}

// UpdateDate única mutación in-place del libro.
func (r *MovementRecordRepo) UpdateDate(ctx context.Context, id int64, date time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE movement_records SET date = $2 WHERE id = $1`, id, date)
	if err != nil {
		return fmt.Errorf("update movement date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fila %d", domain.ErrNotFound, id)
	}
	return nil
}

// DeleteByJobNumber borra las filas del job eliminado.
func (r *MovementRecordRepo) DeleteByJobNumber(ctx context.Context, jobNumber string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM movement_records WHERE job_number = $1`, jobNumber)
	if err != nil {
		return 0, fmt.Errorf("delete movement records by job: %w", err)
	}
	return tag.RowsAffected(), nil
}
