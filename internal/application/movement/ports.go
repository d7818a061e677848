package movement

import (
	"context"
	"time"

	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que un lote se escribe completo o no se escribe.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRecordRepository,
		invRepo repository.InventoryRepository,
	) error) error
}

// Recorder recibe las métricas del libro (lo implementa pkg/metrics).
type Recorder interface {
	TransitionApplied(from, to string, containers int, elapsed time.Duration)
	TransitionRejected(to, reason string)
	DateCorrected(statusChanged bool)
}

type nopRecorder struct{}

func (nopRecorder) TransitionApplied(string, string, int, time.Duration) {}
func (nopRecorder) TransitionRejected(string, string)                   {}
func (nopRecorder) DateCorrected(bool)                                  {}
