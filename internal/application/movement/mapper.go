package movement

import (
	"fmt"
	"strings"
	"time"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
)

// parseDate acepta YYYY-MM-DD (fecha de negocio en UTC) o RFC3339.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date es requerido", domain.ErrInvalidInput)
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: formato de fecha inválido %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// uniqueIDs conserva el orden de primera aparición y descarta ceros.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toRecordResponse(r *entity.MovementRecord) dto.MovementRecordResponse {
	return dto.MovementRecordResponse{
		ID:             r.ID,
		InventoryID:    r.InventoryID,
		Date:           r.Date,
		Status:         string(r.Status),
		PortID:         r.PortID,
		AddressBookID:  r.AddressBookID,
		ShipmentID:     r.ShipmentID,
		EmptyRepoJobID: r.EmptyRepoJobID,
		JobNumber:      r.JobNumber,
		VesselName:     r.VesselName,
		Remarks:        r.Remarks,
		BatchID:        r.BatchID,
		CreatedAt:      r.CreatedAt,
		CreatedBy:      r.CreatedBy,
	}
}

func toRecordResponses(list []*entity.MovementRecord) []dto.MovementRecordResponse {
	items := make([]dto.MovementRecordResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toRecordResponse(r))
	}
	return items
}
