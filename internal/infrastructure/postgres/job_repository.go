package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo resuelve un número de job contra shipments y empty_repo_jobs.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador.
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// GetByNumber busca primero en shipments y luego en empty_repo_jobs. Devuelve nil, nil si no existe.
func (r *JobRepo) GetByNumber(ctx context.Context, jobNumber string) (*entity.Job, error) {
	query := `
		SELECT kind, id, job_number, pol_port_id, pod_port_id, carrier_address_book_id, empty_return_depot_id
		FROM (
			SELECT 'shipment' AS kind, 0 AS prio, id, job_number, pol_port_id, pod_port_id,
				carrier_address_book_id, empty_return_depot_id
			FROM shipments WHERE job_number = $1
			UNION ALL
			SELECT 'empty_repo', 1, id, job_number, pol_port_id, pod_port_id,
				carrier_address_book_id, empty_return_depot_id
			FROM empty_repo_jobs WHERE job_number = $1
		) j
		ORDER BY prio
		LIMIT 1`
	var j entity.Job
	var kind string
	err := r.q.QueryRow(ctx, query, jobNumber).Scan(
		&kind, &j.ID, &j.Number, &j.POLPortID, &j.PODPortID, &j.CarrierAddressBookID, &j.EmptyReturnDepotID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job by number: %w", err)
	}
	j.Kind = entity.JobKind(kind)
	return &j, nil
}
