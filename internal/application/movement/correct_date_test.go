package movement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
	"github.com/sujit-maker/move-sub001/internal/application/movement"
	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
)

func TestCorrectDate_ReordenaEstadoActual(t *testing.T) {
	store := newMemStore()
	store.addInventory(1, "MSCU1234565")
	first := store.seed(entity.MovementRecord{InventoryID: 1, Date: day("2024-01-01"), Status: entity.StatusAllotted, JobNumber: "J1", Remarks: "inicial"})
	second := store.seed(entity.MovementRecord{InventoryID: 1, Date: day("2024-02-01"), Status: entity.StatusEmptyPickedUp, JobNumber: "J1"})
	metrics := &spyRecorder{}
	uc := movement.NewDateCorrectionUseCase(&memTxRunner{store: store}, metrics, zerolog.Nop())

	// Mover la primera fila después de la segunda cambia el estado actual, siempre igual.
	for i := 0; i < 3; i++ {
		resp, err := uc.CorrectDate(context.Background(), "u-1", first, day("2024-03-01"))
		require.NoError(t, err)
		if i == 0 {
			assert.Equal(t, second, resp.PreviousCurrentID)
			assert.Equal(t, "EMPTY PICKED UP", resp.PreviousCurrentStatus)
			assert.True(t, resp.CurrentStatusChanged)
			assert.NotEmpty(t, resp.Warning)
		} else {
			assert.False(t, resp.CurrentStatusChanged, "la misma corrección es estable")
		}
		assert.Equal(t, first, resp.CurrentID)
		assert.Equal(t, "ALLOTTED", resp.CurrentStatus)
	}

	cur := store.current(1)
	assert.Equal(t, first, cur.ID)
	assert.Equal(t, entity.StatusAllotted, cur.Status)
	assert.Equal(t, "inicial", cur.Remarks, "solo cambia la fecha")
	assert.Equal(t, "J1", cur.JobNumber)
	assert.Len(t, store.records, 2)
	assert.Equal(t, []bool{true, false, false}, metrics.dates)
}

func TestCorrectDate_SinCambioDeEstado(t *testing.T) {
	store := newMemStore()
	store.addInventory(1, "MSCU1234565")
	first := store.seed(entity.MovementRecord{InventoryID: 1, Date: day("2024-01-01"), Status: entity.StatusAllotted, JobNumber: "J1"})
	store.seed(entity.MovementRecord{InventoryID: 1, Date: day("2024-03-01"), Status: entity.StatusEmptyPickedUp, JobNumber: "J1"})
	uc := movement.NewDateCorrectionUseCase(&memTxRunner{store: store}, nil, zerolog.Nop())

	resp, err := uc.CorrectDateFromRequest(context.Background(), "u-1", first, dto.CorrectDateRequest{Date: "2024-01-15"})
	require.NoError(t, err)
	assert.False(t, resp.CurrentStatusChanged)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, "EMPTY PICKED UP", resp.CurrentStatus)
	assert.Equal(t, day("2024-01-15"), resp.Record.Date)
}

func TestCorrectDate_Errores(t *testing.T) {
	store := newMemStore()
	uc := movement.NewDateCorrectionUseCase(&memTxRunner{store: store}, nil, zerolog.Nop())

	_, err := uc.CorrectDate(context.Background(), "u", 42, day("2024-01-01"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.CorrectDateFromRequest(context.Background(), "u", 42, dto.CorrectDateRequest{Date: ""})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.CorrectDateFromRequest(context.Background(), "u", 0, dto.CorrectDateRequest{Date: "2024-01-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
