package movement

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	rules "github.com/sujit-maker/move-sub001/internal/domain/movement"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

// detachable estados desde los que un contenedor puede salir de su job.
var detachable = map[entity.Status]bool{
	entity.StatusAllotted:        true,
	entity.StatusEmptyReturned:   true,
	entity.StatusReturnedToDepot: true,
}

// JobLifecycleUseCase filas que el libro agrega cuando un contenedor entra o sale de un job,
// y el borrado en cascada cuando el job se elimina.
type JobLifecycleUseCase struct {
	txRunner    TxRunner
	jobRepo     repository.JobRepository
	leasingRepo repository.LeasingInfoRepository
	log         zerolog.Logger
}

// NewJobLifecycleUseCase construye el caso de uso.
func NewJobLifecycleUseCase(
	txRunner TxRunner,
	jobRepo repository.JobRepository,
	leasingRepo repository.LeasingInfoRepository,
	log zerolog.Logger,
) *JobLifecycleUseCase {
	return &JobLifecycleUseCase{txRunner: txRunner, jobRepo: jobRepo, leasingRepo: leasingRepo, log: log}
}

// Allot agrega ALLOTTED para cada contenedor que entra al job. El contenedor debe no tener
// historial o estar AVAILABLE. Puerto y ubicación se arrastran de la fila previa o del leasing info.
func (uc *JobLifecycleUseCase) Allot(ctx context.Context, userID string, in dto.AllotContainersRequest) (*dto.JobLedgerResponse, error) {
	jobNumber := strings.TrimSpace(in.JobNumber)
	inventoryIDs := sortedIDs(in.InventoryIDs)
	if jobNumber == "" || len(inventoryIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	job, err := uc.jobRepo.GetByNumber(ctx, jobNumber)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownJob, jobNumber)
	}

	batchID := uuid.New().String()
	var records []*entity.MovementRecord
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRecordRepository,
		invRepo repository.InventoryRepository,
	) error {
		current, err := lockAndProject(ctx, movRepo, invRepo, inventoryIDs)
		if err != nil {
			return err
		}
		for _, id := range inventoryIDs {
			if prior, ok := current[id]; ok && prior.Status != entity.StatusAvailable {
				return fmt.Errorf("%w: contenedor %d está %s", domain.ErrInvalidTransition, id, prior.Status)
			}
		}
		leasing, err := loadLeasing(ctx, uc.leasingRepo, entity.StatusAllotted, inventoryIDs, current)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, id := range inventoryIDs {
			fields, err := rules.ResolveFields(entity.StatusAllotted, job, rules.Overrides{}, current[id], leasing[id])
			if err != nil {
				return fmt.Errorf("contenedor %d: %w", id, err)
			}
			records = append(records, &entity.MovementRecord{
				InventoryID:    id,
				Date:           date,
				Status:         entity.StatusAllotted,
				PortID:         fields.PortID,
				AddressBookID:  fields.AddressBookID,
				ShipmentID:     job.ShipmentID(),
				EmptyRepoJobID: job.EmptyRepoJobID(),
				JobNumber:      job.Number,
				BatchID:        batchID,
				CreatedAt:      now,
				CreatedBy:      userID,
			})
		}
		return movRepo.CreateBatch(ctx, records)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("job_number", job.Number).Int("containers", len(records)).Msg("contenedores asignados al job")
	return &dto.JobLedgerResponse{
		BatchID:   batchID,
		JobNumber: job.Number,
		Status:    string(entity.StatusAllotted),
		Items:     toRecordResponses(records),
	}, nil
}

// Detach agrega un AVAILABLE sintético cuando el contenedor sale del job. Se limpia el vínculo
// al shipment o empty repo job; el número de job queda desnormalizado en la fila.
func (uc *JobLifecycleUseCase) Detach(ctx context.Context, userID string, in dto.DetachContainersRequest) (*dto.JobLedgerResponse, error) {
	jobNumber := strings.TrimSpace(in.JobNumber)
	inventoryIDs := sortedIDs(in.InventoryIDs)
	if jobNumber == "" || len(inventoryIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	var records []*entity.MovementRecord
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRecordRepository,
		invRepo repository.InventoryRepository,
	) error {
		current, err := lockAndProject(ctx, movRepo, invRepo, inventoryIDs)
		if err != nil {
			return err
		}
		if _, err := sameCurrentStatus(inventoryIDs, current); err != nil && !errors.Is(err, domain.ErrMixedCurrentStatus) {
			return err
		}
		if err := sameJobNumber(inventoryIDs, current, jobNumber); err != nil {
			return err
		}
		for _, id := range inventoryIDs {
			if st := current[id].Status; !detachable[st] {
				return fmt.Errorf("%w: contenedor %d está %s", domain.ErrInvalidTransition, id, st)
			}
		}
		leasing, err := loadLeasing(ctx, uc.leasingRepo, entity.StatusAvailable, inventoryIDs, current)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, id := range inventoryIDs {
			fields, err := rules.ResolveFields(entity.StatusAvailable, nil, rules.Overrides{}, current[id], leasing[id])
			if err != nil {
				return fmt.Errorf("contenedor %d: %w", id, err)
			}
			records = append(records, &entity.MovementRecord{
				InventoryID:   id,
				Date:          date,
				Status:        entity.StatusAvailable,
				PortID:        fields.PortID,
				AddressBookID: fields.AddressBookID,
				JobNumber:     jobNumber,
				Remarks:       strings.TrimSpace(in.Remarks),
				BatchID:       batchID,
				CreatedAt:     now,
				CreatedBy:     userID,
			})
		}
		return movRepo.CreateBatch(ctx, records)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("job_number", jobNumber).Int("containers", len(records)).Msg("contenedores liberados del job")
	return &dto.JobLedgerResponse{
		BatchID:   batchID,
		JobNumber: jobNumber,
		Status:    string(entity.StatusAvailable),
		Items:     toRecordResponses(records),
	}, nil
}

// Purge borra todas las filas del libro con ese número de job. El job ya debe estar eliminado;
// si sigue vigente devuelve ErrConflict y no toca el libro.
func (uc *JobLifecycleUseCase) Purge(ctx context.Context, userID, jobNumber string) (*dto.PurgeJobResponse, error) {
	jobNumber = strings.TrimSpace(jobNumber)
	if jobNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	var deleted int64
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRecordRepository, _ repository.InventoryRepository) error {
		job, err := uc.jobRepo.GetByNumber(ctx, jobNumber)
		if err != nil {
			return err
		}
		if job != nil {
			return fmt.Errorf("%w: el job %s sigue vigente", domain.ErrConflict, jobNumber)
		}
		n, err := movRepo.DeleteByJobNumber(ctx, jobNumber)
		deleted = n
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Warn().Str("job_number", jobNumber).Str("user_id", userID).Int64("deleted", deleted).Msg("filas del job eliminadas")
	return &dto.PurgeJobResponse{JobNumber: jobNumber, Deleted: deleted}, nil
}

// loadLeasing carga el leasing info solo de los contenedores cuya fila previa no aporta puerto ni ubicación.
func loadLeasing(
	ctx context.Context,
	repo repository.LeasingInfoRepository,
	target entity.Status,
	inventoryIDs []int64,
	current map[int64]*entity.MovementRecord,
) (map[int64]*entity.LeasingInfo, error) {
	var need []int64
	for _, id := range inventoryIDs {
		if rules.NeedsLeasing(target, current[id]) {
			need = append(need, id)
		}
	}
	if len(need) == 0 {
		return map[int64]*entity.LeasingInfo{}, nil
	}
	return repo.LatestByInventories(ctx, need)
}

// lockAndProject bloquea los contenedores y devuelve la fila actual de cada uno.
func lockAndProject(
	ctx context.Context,
	movRepo repository.MovementRecordRepository,
	invRepo repository.InventoryRepository,
	inventoryIDs []int64,
) (map[int64]*entity.MovementRecord, error) {
	locked, err := invRepo.LockByIDs(ctx, inventoryIDs)
	if err != nil {
		return nil, err
	}
	if len(locked) != len(inventoryIDs) {
		return nil, fmt.Errorf("%w: contenedor inexistente", domain.ErrNotFound)
	}
	history, err := movRepo.ListByInventoryIDs(ctx, inventoryIDs)
	if err != nil {
		return nil, err
	}
	return rules.Latest(history), nil
}

func sortedIDs(ids []int64) []int64 {
	out := uniqueIDs(ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
