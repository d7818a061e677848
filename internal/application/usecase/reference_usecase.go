package usecase

import (
	"context"
	"strings"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

// ReferenceUseCase catálogos de solo lectura que el operador usa para armar una actualización:
// puertos, address book por tipo de negocio y búsqueda de jobs.
type ReferenceUseCase struct {
	portRepo repository.PortRepository
	abRepo   repository.AddressBookRepository
	jobRepo  repository.JobRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(
	portRepo repository.PortRepository,
	abRepo repository.AddressBookRepository,
	jobRepo repository.JobRepository,
) *ReferenceUseCase {
	return &ReferenceUseCase{portRepo: portRepo, abRepo: abRepo, jobRepo: jobRepo}
}

// ListPorts lista puertos con paginación.
func (uc *ReferenceUseCase) ListPorts(ctx context.Context, limit, offset int) (*dto.PortListResponse, error) {
	list, err := uc.portRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PortResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPortResponse(p))
	}
	return &dto.PortListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListAddressBook empresas de un tipo de negocio (Carrier, Depot Terminal, CY Terminal...),
// opcionalmente filtradas por puerto.
func (uc *ReferenceUseCase) ListAddressBook(ctx context.Context, businessType string, portID *int64) ([]dto.AddressBookResponse, error) {
	businessType = strings.TrimSpace(businessType)
	if businessType == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.abRepo.ListByBusinessType(ctx, businessType, portID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AddressBookResponse, 0, len(list))
	for _, ab := range list {
		items = append(items, toAddressBookResponse(ab))
	}
	return items, nil
}

// LookupJob resuelve un número de job. Devuelve nil, nil si no existe.
func (uc *ReferenceUseCase) LookupJob(ctx context.Context, jobNumber string) (*dto.JobResponse, error) {
	jobNumber = strings.TrimSpace(jobNumber)
	if jobNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.jobRepo.GetByNumber(ctx, jobNumber)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}
	return &dto.JobResponse{
		Kind:                 string(job.Kind),
		ID:                   job.ID,
		JobNumber:            job.Number,
		POLPortID:            job.POLPortID,
		PODPortID:            job.PODPortID,
		CarrierAddressBookID: job.CarrierAddressBookID,
		EmptyReturnDepotID:   job.EmptyReturnDepotID,
	}, nil
}

func toPortResponse(p *entity.Port) dto.PortResponse {
	return dto.PortResponse{ID: p.ID, PortCode: p.PortCode, PortName: p.PortName, Country: p.Country}
}

func toAddressBookResponse(ab *entity.AddressBook) dto.AddressBookResponse {
	return dto.AddressBookResponse{
		ID:            ab.ID,
		CompanyName:   ab.CompanyName,
		BusinessTypes: ab.BusinessTypes,
		PortIDs:       ab.PortIDs,
	}
}
