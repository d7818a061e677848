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

// BulkTransitionUseCase aplica un mismo estado destino a un lote de contenedores
// que comparten estado actual y número de job. Todo el lote se escribe en una sola transacción.
type BulkTransitionUseCase struct {
	txRunner    TxRunner
	jobRepo     repository.JobRepository
	leasingRepo repository.LeasingInfoRepository
	metrics     Recorder
	log         zerolog.Logger
}

// NewBulkTransitionUseCase construye el caso de uso. metrics puede ser nil.
func NewBulkTransitionUseCase(
	txRunner TxRunner,
	jobRepo repository.JobRepository,
	leasingRepo repository.LeasingInfoRepository,
	metrics Recorder,
	log zerolog.Logger,
) *BulkTransitionUseCase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &BulkTransitionUseCase{
		txRunner:    txRunner,
		jobRepo:     jobRepo,
		leasingRepo: leasingRepo,
		metrics:     metrics,
		log:         log,
	}
}

// BulkTransitionInput entrada del ejecutor. RecordIDs identifica filas del libro;
// cada una identifica implícitamente un contenedor.
type BulkTransitionInput struct {
	UserID    string
	RecordIDs []int64
	NewStatus entity.Status
	JobNumber string
	Date      time.Time
	Remarks   string
	Overrides rules.Overrides
	BatchID   string // opcional; si ya existe con el mismo contenido, se devuelve el lote guardado sin escribir
}

// ExecuteFromRequest adapta el request HTTP a Execute.
func (uc *BulkTransitionUseCase) ExecuteFromRequest(ctx context.Context, userID string, in dto.BulkTransitionRequest) (*dto.BulkTransitionResponse, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	return uc.Execute(ctx, BulkTransitionInput{
		UserID:    userID,
		RecordIDs: in.IDs,
		NewStatus: entity.Status(strings.TrimSpace(in.NewStatus)),
		JobNumber: strings.TrimSpace(in.JobNumber),
		Date:      date,
		Remarks:   in.Remarks,
		Overrides: rules.Overrides{
			PortID:               in.PortID,
			AddressBookID:        in.AddressBookID,
			CarrierAddressBookID: in.CarrierAddressBookID,
			VesselName:           in.VesselName,
		},
		BatchID: strings.TrimSpace(in.BatchID),
	})
}

// Execute valida el lote completo antes de escribir y agrega exactamente una fila por contenedor.
// Errores: ErrMixedCurrentStatus, ErrInvalidTransition, ErrMissingRemarks, ErrJobMismatch,
// ErrMissingLocationData, ErrUnknownJob, ErrNotFound, ErrConflict; cualquier error deja el libro intacto.
func (uc *BulkTransitionUseCase) Execute(ctx context.Context, in BulkTransitionInput) (*dto.BulkTransitionResponse, error) {
	start := time.Now()
	resp, err := uc.execute(ctx, in)
	if err != nil {
		uc.metrics.TransitionRejected(statusLabel(in.NewStatus), rejectReason(err))
		uc.log.Warn().Err(err).
			Str("new_status", string(in.NewStatus)).
			Str("job_number", in.JobNumber).
			Int("records", len(in.RecordIDs)).
			Msg("actualización masiva rechazada")
		return nil, err
	}
	if !resp.Replayed {
		uc.metrics.TransitionApplied(resp.FromStatus, resp.ToStatus, len(resp.Items), time.Since(start))
	}
	uc.log.Info().
		Str("batch_id", resp.BatchID).
		Str("from", resp.FromStatus).
		Str("to", resp.ToStatus).
		Str("job_number", in.JobNumber).
		Int("containers", len(resp.Items)).
		Bool("replayed", resp.Replayed).
		Msg("actualización masiva aplicada")
	return resp, nil
}

func (uc *BulkTransitionUseCase) execute(ctx context.Context, in BulkTransitionInput) (*dto.BulkTransitionResponse, error) {
	recordIDs := uniqueIDs(in.RecordIDs)
	if len(recordIDs) == 0 || in.JobNumber == "" || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !rules.IsKnown(in.NewStatus) {
		return nil, fmt.Errorf("%w: estado destino desconocido %q", domain.ErrInvalidTransition, in.NewStatus)
	}
	if in.NewStatus.RequiresRemarks() && strings.TrimSpace(in.Remarks) == "" {
		return nil, domain.ErrMissingRemarks
	}
	if in.BatchID != "" {
		if _, err := uuid.Parse(in.BatchID); err != nil {
			return nil, fmt.Errorf("%w: batch_id debe ser un UUID", domain.ErrInvalidInput)
		}
	}
	batchID := in.BatchID
	if batchID == "" {
		batchID = uuid.New().String()
	}

	var resp *dto.BulkTransitionResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRecordRepository,
		invRepo repository.InventoryRepository,
	) error {
		selected, err := movRepo.ListByIDs(ctx, recordIDs)
		if err != nil {
			return err
		}
		if len(selected) != len(recordIDs) {
			return fmt.Errorf("%w: %d de %d filas seleccionadas no existen", domain.ErrNotFound, len(recordIDs)-len(selected), len(recordIDs))
		}
		inventoryIDs := make([]int64, 0, len(selected))
		for _, r := range selected {
			inventoryIDs = append(inventoryIDs, r.InventoryID)
		}
		inventoryIDs = sortedIDs(inventoryIDs)

		current, err := lockAndProject(ctx, movRepo, invRepo, inventoryIDs)
		if err != nil {
			return err
		}

		// Con los contenedores bloqueados, un reintento concurrente ya ve el lote del primero.
		if in.BatchID != "" {
			existing, err := movRepo.ListByBatch(ctx, in.BatchID)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				if err := sameBatchPayload(existing, inventoryIDs, in); err != nil {
					return err
				}
				resp = replayResponse(batchID, existing)
				return nil
			}
		}

		from, err := sameCurrentStatus(inventoryIDs, current)
		if err != nil {
			return err
		}
		if err := sameJobNumber(inventoryIDs, current, in.JobNumber); err != nil {
			return err
		}
		if !rules.CanTransition(from, in.NewStatus) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, in.NewStatus)
		}

		var job *entity.Job
		if rules.NeedsJob(in.NewStatus) {
			job, err = uc.jobRepo.GetByNumber(ctx, in.JobNumber)
			if err != nil {
				return err
			}
			if job == nil {
				return fmt.Errorf("%w: %s", domain.ErrUnknownJob, in.JobNumber)
			}
		}

		leasing, err := loadLeasing(ctx, uc.leasingRepo, in.NewStatus, inventoryIDs, current)
		if err != nil {
			return err
		}

		now := time.Now()
		records := make([]*entity.MovementRecord, 0, len(inventoryIDs))
		for _, invID := range inventoryIDs {
			prior := current[invID]
			fields, err := rules.ResolveFields(in.NewStatus, job, in.Overrides, prior, leasing[invID])
			if err != nil {
				return fmt.Errorf("contenedor %d: %w", invID, err)
			}
			rec := &entity.MovementRecord{
				InventoryID:   invID,
				Date:          in.Date,
				Status:        in.NewStatus,
				PortID:        fields.PortID,
				AddressBookID: fields.AddressBookID,
				JobNumber:     in.JobNumber,
				VesselName:    fields.VesselName,
				Remarks:       strings.TrimSpace(in.Remarks),
				BatchID:       batchID,
				CreatedAt:     now,
				CreatedBy:     in.UserID,
			}
			if job != nil {
				rec.ShipmentID = job.ShipmentID()
				rec.EmptyRepoJobID = job.EmptyRepoJobID()
			} else {
				rec.ShipmentID = prior.ShipmentID
				rec.EmptyRepoJobID = prior.EmptyRepoJobID
			}
			records = append(records, rec)
		}

		if err := movRepo.CreateBatch(ctx, records); err != nil {
			return err
		}
		resp = &dto.BulkTransitionResponse{
			BatchID:    batchID,
			FromStatus: string(from),
			ToStatus:   string(in.NewStatus),
			Items:      toRecordResponses(records),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// sameCurrentStatus exige un único estado actual en todo el lote y lo devuelve.
func sameCurrentStatus(inventoryIDs []int64, current map[int64]*entity.MovementRecord) (entity.Status, error) {
	seen := make(map[entity.Status]struct{})
	for _, id := range inventoryIDs {
		rec, ok := current[id]
		if !ok {
			return "", fmt.Errorf("%w: contenedor %d sin historial", domain.ErrNotFound, id)
		}
		seen[rec.Status] = struct{}{}
	}
	if len(seen) == 1 {
		for s := range seen {
			return s, nil
		}
	}
	statuses := make([]string, 0, len(seen))
	for s := range seen {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)
	return "", fmt.Errorf("%w: %s", domain.ErrMixedCurrentStatus, strings.Join(statuses, ", "))
}

// sameJobNumber revalida que la fila actual de cada contenedor pertenezca al job del request.
func sameJobNumber(inventoryIDs []int64, current map[int64]*entity.MovementRecord, jobNumber string) error {
	var others []string
	for _, id := range inventoryIDs {
		if jn := current[id].JobNumber; jn != jobNumber {
			others = append(others, fmt.Sprintf("%d=%q", id, jn))
		}
	}
	if len(others) > 0 {
		return fmt.Errorf("%w: se esperaba %s (%s)", domain.ErrJobMismatch, jobNumber, strings.Join(others, ", "))
	}
	return nil
}

// sameBatchPayload exige que un batch_id repetido traiga los mismos contenedores, estado y job.
func sameBatchPayload(existing []*entity.MovementRecord, inventoryIDs []int64, in BulkTransitionInput) error {
	stored := make([]int64, 0, len(existing))
	for _, r := range existing {
		if r.Status != in.NewStatus || r.JobNumber != in.JobNumber {
			return fmt.Errorf("%w: batch_id %s ya se usó para %s en el job %s", domain.ErrConflict, in.BatchID, r.Status, r.JobNumber)
		}
		stored = append(stored, r.InventoryID)
	}
	stored = sortedIDs(stored)
	if len(stored) != len(inventoryIDs) {
		return fmt.Errorf("%w: batch_id %s ya se usó con otros contenedores", domain.ErrConflict, in.BatchID)
	}
	for i := range stored {
		if stored[i] != inventoryIDs[i] {
			return fmt.Errorf("%w: batch_id %s ya se usó con otros contenedores", domain.ErrConflict, in.BatchID)
		}
	}
	return nil
}

func replayResponse(batchID string, existing []*entity.MovementRecord) *dto.BulkTransitionResponse {
	sort.Slice(existing, func(i, j int) bool { return existing[i].ID < existing[j].ID })
	return &dto.BulkTransitionResponse{
		BatchID:  batchID,
		ToStatus: string(existing[0].Status),
		Replayed: true,
		Items:    toRecordResponses(existing),
	}
}

// statusLabel acota la cardinalidad de la etiqueta: un estado fuera del catálogo cuenta como "unknown".
func statusLabel(s entity.Status) string {
	if !rules.IsKnown(s) {
		return "unknown"
	}
	return string(s)
}

// rejectReason etiqueta corta para métricas.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return "batch_conflict"
	case errors.Is(err, domain.ErrMixedCurrentStatus):
		return "mixed_current_status"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrMissingRemarks):
		return "missing_remarks"
	case errors.Is(err, domain.ErrMissingLocationData):
		return "missing_location_data"
	case errors.Is(err, domain.ErrUnknownJob):
		return "unknown_job"
	case errors.Is(err, domain.ErrJobMismatch):
		return "job_mismatch"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	}
	return "internal"
}
