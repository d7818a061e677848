package movement

import (
	"context"
	"fmt"
	"strings"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	rules "github.com/sujit-maker/move-sub001/internal/domain/movement"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

// LedgerQueryUseCase consultas de solo lectura sobre el libro: historial, vista "latest" y transiciones.
type LedgerQueryUseCase struct {
	movRepo  repository.MovementRecordRepository
	invRepo  repository.InventoryRepository
	portRepo repository.PortRepository
	abRepo   repository.AddressBookRepository
}

// NewLedgerQueryUseCase construye el caso de uso.
func NewLedgerQueryUseCase(
	movRepo repository.MovementRecordRepository,
	invRepo repository.InventoryRepository,
	portRepo repository.PortRepository,
	abRepo repository.AddressBookRepository,
) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{movRepo: movRepo, invRepo: invRepo, portRepo: portRepo, abRepo: abRepo}
}

// History devuelve todas las filas de un contenedor por número, de la más reciente a la más antigua.
func (uc *LedgerQueryUseCase) History(ctx context.Context, containerNumber string) (*dto.MovementHistoryResponse, error) {
	containerNumber = strings.ToUpper(strings.TrimSpace(containerNumber))
	if containerNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invRepo.GetByContainerNumber(ctx, containerNumber)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: contenedor %s", domain.ErrNotFound, containerNumber)
	}
	records, err := uc.movRepo.ListByInventory(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	rules.SortNewestFirst(records)

	items, err := uc.enrich(ctx, records, map[int64]string{inv.ID: inv.ContainerNumber})
	if err != nil {
		return nil, err
	}
	out := &dto.MovementHistoryResponse{
		InventoryID:     inv.ID,
		ContainerNumber: inv.ContainerNumber,
		Items:           items,
	}
	if len(records) > 0 {
		out.CurrentStatus = string(records[0].Status)
	}
	return out, nil
}

// Latest devuelve, por contenedor, solo su fila más reciente (proyección del lado servidor).
func (uc *LedgerQueryUseCase) Latest(ctx context.Context, status, jobNumber string, limit, offset int) (*dto.MovementListResponse, error) {
	filter := repository.LatestFilter{
		Status:    entity.Status(strings.TrimSpace(status)),
		JobNumber: strings.TrimSpace(jobNumber),
		Limit:     limit,
		Offset:    offset,
	}
	if filter.Status != "" && !rules.IsKnown(filter.Status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, filter.Status)
	}
	records, err := uc.movRepo.ListLatest(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := uc.enrich(ctx, records, nil)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID obtiene una fila del libro.
func (uc *LedgerQueryUseCase) GetByID(ctx context.Context, id int64) (*dto.MovementRecordResponse, error) {
	rec, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	items, err := uc.enrich(ctx, []*entity.MovementRecord{rec}, nil)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// AllowedTransitions estados a los que se puede pasar desde status.
func (uc *LedgerQueryUseCase) AllowedTransitions(status string) dto.TransitionsResponse {
	next := rules.AllowedNext(entity.Status(strings.TrimSpace(status)))
	out := dto.TransitionsResponse{Status: status, AllowedNext: make([]string, 0, len(next))}
	for _, s := range next {
		out.AllowedNext = append(out.AllowedNext, string(s))
	}
	return out
}

// enrich agrega número de contenedor, nombre de puerto y de empresa a cada fila.
// knownContainers evita reconsultar contenedores ya cargados.
func (uc *LedgerQueryUseCase) enrich(
	ctx context.Context,
	records []*entity.MovementRecord,
	knownContainers map[int64]string,
) ([]dto.MovementRecordResponse, error) {
	containers := make(map[int64]string, len(knownContainers))
	for k, v := range knownContainers {
		containers[k] = v
	}
	var invIDs, portIDs, abIDs []int64
	for _, r := range records {
		if _, ok := containers[r.InventoryID]; !ok {
			invIDs = append(invIDs, r.InventoryID)
		}
		if r.PortID != nil {
			portIDs = append(portIDs, *r.PortID)
		}
		if r.AddressBookID != nil {
			abIDs = append(abIDs, *r.AddressBookID)
		}
	}

	if invIDs = uniqueIDs(invIDs); len(invIDs) > 0 {
		invs, err := uc.invRepo.ListByIDs(ctx, invIDs)
		if err != nil {
			return nil, err
		}
		for _, inv := range invs {
			containers[inv.ID] = inv.ContainerNumber
		}
	}
	ports := make(map[int64]string)
	if portIDs = uniqueIDs(portIDs); len(portIDs) > 0 {
		list, err := uc.portRepo.ListByIDs(ctx, portIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			ports[p.ID] = p.PortName
		}
	}
	companies := make(map[int64]string)
	if abIDs = uniqueIDs(abIDs); len(abIDs) > 0 {
		list, err := uc.abRepo.ListByIDs(ctx, abIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range list {
			companies[c.ID] = c.CompanyName
		}
	}

	items := make([]dto.MovementRecordResponse, 0, len(records))
	for _, r := range records {
		item := toRecordResponse(r)
		item.ContainerNumber = containers[r.InventoryID]
		if r.PortID != nil {
			item.PortName = ports[*r.PortID]
		}
		if r.AddressBookID != nil {
			item.CompanyName = companies[*r.AddressBookID]
		}
		items = append(items, item)
	}
	return items, nil
}
