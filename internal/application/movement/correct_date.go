package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	rules "github.com/sujit-maker/move-sub001/internal/domain/movement"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

const reorderWarning = "la corrección de fecha cambió el estado actual del contenedor"

// DateCorrectionUseCase corrige la fecha de una fila existente sin tocar el resto de campos.
// Es la única mutación in-place permitida sobre el libro.
type DateCorrectionUseCase struct {
	txRunner TxRunner
	metrics  Recorder
	log      zerolog.Logger
}

// NewDateCorrectionUseCase construye el caso de uso. metrics puede ser nil.
func NewDateCorrectionUseCase(txRunner TxRunner, metrics Recorder, log zerolog.Logger) *DateCorrectionUseCase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &DateCorrectionUseCase{txRunner: txRunner, metrics: metrics, log: log}
}

// CorrectDateFromRequest adapta el request HTTP a CorrectDate.
func (uc *DateCorrectionUseCase) CorrectDateFromRequest(ctx context.Context, userID string, id int64, in dto.CorrectDateRequest) (*dto.DateCorrectionResponse, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	return uc.CorrectDate(ctx, userID, id, date)
}

// CorrectDate actualiza Date de la fila id. Como la proyección del último estado usa Date,
// la corrección puede cambiar el estado actual del contenedor; la respuesta lo informa.
func (uc *DateCorrectionUseCase) CorrectDate(ctx context.Context, userID string, id int64, date time.Time) (*dto.DateCorrectionResponse, error) {
	if id <= 0 || date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.DateCorrectionResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRecordRepository,
		invRepo repository.InventoryRepository,
	) error {
		rec, err := movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: fila %d", domain.ErrNotFound, id)
		}
		if _, err := invRepo.LockByIDs(ctx, []int64{rec.InventoryID}); err != nil {
			return err
		}
		before, err := uc.currentOf(ctx, movRepo, rec.InventoryID)
		if err != nil {
			return err
		}
		if err := movRepo.UpdateDate(ctx, id, date); err != nil {
			return err
		}
		after, err := uc.currentOf(ctx, movRepo, rec.InventoryID)
		if err != nil {
			return err
		}
		rec.Date = date

		resp = &dto.DateCorrectionResponse{
			Record:                toRecordResponse(rec),
			PreviousCurrentID:     before.ID,
			PreviousCurrentStatus: string(before.Status),
			CurrentID:             after.ID,
			CurrentStatus:         string(after.Status),
			CurrentStatusChanged:  before.ID != after.ID,
		}
		if resp.CurrentStatusChanged {
			resp.Warning = reorderWarning
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.DateCorrected(resp.CurrentStatusChanged)
	ev := uc.log.Info()
	if resp.CurrentStatusChanged {
		ev = uc.log.Warn()
	}
	ev.Int64("movement_id", id).
		Str("user_id", userID).
		Time("date", date).
		Str("previous_current_status", resp.PreviousCurrentStatus).
		Str("current_status", resp.CurrentStatus).
		Msg("fecha de movimiento corregida")
	return resp, nil
}

func (uc *DateCorrectionUseCase) currentOf(ctx context.Context, movRepo repository.MovementRecordRepository, inventoryID int64) (*entity.MovementRecord, error) {
	records, err := movRepo.ListByInventoryIDs(ctx, []int64{inventoryID})
	if err != nil {
		return nil, err
	}
	cur, ok := rules.Latest(records)[inventoryID]
	if !ok {
		return nil, fmt.Errorf("%w: contenedor %d sin historial", domain.ErrNotFound, inventoryID)
	}
	return cur, nil
}
