package movement

import (
	"fmt"
	"strings"

	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
)

// Overrides valores que el operador puede fijar explícitamente en una actualización masiva.
type Overrides struct {
	PortID               *int64
	AddressBookID        *int64
	CarrierAddressBookID *int64 // solo SOB
	VesselName           string // solo SOB
}

// Fields campos resueltos para la nueva fila del libro.
type Fields struct {
	PortID        *int64
	AddressBookID *int64
	VesselName    string
}

// NeedsJob informa si el estado destino infiere puerto/ubicación desde el job.
func NeedsJob(target entity.Status) bool {
	switch target {
	case entity.StatusLadenGateIn, entity.StatusSOB, entity.StatusGateOut, entity.StatusEmptyReturned:
		return true
	}
	return false
}

// NeedsLeasing informa si resolver target para este contenedor requiere su leasing info
// (arrastre de puerto/ubicación sin datos en la fila previa).
func NeedsLeasing(target entity.Status, prior *entity.MovementRecord) bool {
	if target != entity.StatusAvailable && target != entity.StatusUnavailable && target != entity.StatusAllotted {
		return false
	}
	return prior == nil || (prior.PortID == nil && prior.AddressBookID == nil)
}

// ResolveFields calcula puerto, ubicación y buque de la nueva fila según el estado destino.
// Función pura: job, prior y leasing pueden ser nil cuando el estado no los necesita.
func ResolveFields(
	target entity.Status,
	job *entity.Job,
	ov Overrides,
	prior *entity.MovementRecord,
	leasing *entity.LeasingInfo,
) (Fields, error) {
	if NeedsJob(target) && job == nil {
		return Fields{}, domain.ErrUnknownJob
	}

	switch target {
	case entity.StatusEmptyPickedUp:
		return Fields{}, nil

	case entity.StatusLadenGateIn:
		if job.POLPortID == nil {
			return Fields{}, fmt.Errorf("%w: el job %s no tiene puerto de carga", domain.ErrMissingLocationData, job.Number)
		}
		return Fields{PortID: clone(job.POLPortID)}, nil

	case entity.StatusSOB:
		port := job.PODPortID
		if port == nil {
			port = job.POLPortID
		}
		if port == nil {
			return Fields{}, fmt.Errorf("%w: el job %s no tiene puerto de descarga ni de carga", domain.ErrMissingLocationData, job.Number)
		}
		carrier := ov.CarrierAddressBookID
		if carrier == nil {
			carrier = job.CarrierAddressBookID
		}
		if carrier == nil {
			return Fields{}, fmt.Errorf("%w: SOB requiere naviera", domain.ErrMissingLocationData)
		}
		return Fields{
			PortID:        clone(port),
			AddressBookID: clone(carrier),
			VesselName:    strings.TrimSpace(ov.VesselName),
		}, nil

	case entity.StatusGateOut:
		if job.PODPortID == nil {
			return Fields{}, fmt.Errorf("%w: el job %s no tiene puerto de descarga", domain.ErrMissingLocationData, job.Number)
		}
		return Fields{PortID: clone(job.PODPortID)}, nil

	case entity.StatusEmptyReturned:
		if job.PODPortID == nil || job.EmptyReturnDepotID == nil {
			return Fields{}, fmt.Errorf("%w: el job %s no tiene puerto de descarga o depósito de devolución", domain.ErrMissingLocationData, job.Number)
		}
		return Fields{PortID: clone(job.PODPortID), AddressBookID: clone(job.EmptyReturnDepotID)}, nil

	case entity.StatusAvailable, entity.StatusUnavailable, entity.StatusAllotted:
		return carryOver(prior, leasing)

	case entity.StatusDamaged, entity.StatusCancelled, entity.StatusReturnedToDepot:
		if ov.PortID == nil || ov.AddressBookID == nil {
			return Fields{}, fmt.Errorf("%w: %s requiere puerto y depósito", domain.ErrMissingLocationData, target)
		}
		return Fields{PortID: clone(ov.PortID), AddressBookID: clone(ov.AddressBookID)}, nil
	}

	return Fields{}, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidTransition, target)
}

// carryOver arrastra puerto/ubicación de la fila previa del mismo contenedor;
// si la fila previa no tiene ninguno, usa el leasing info más reciente.
func carryOver(prior *entity.MovementRecord, leasing *entity.LeasingInfo) (Fields, error) {
	if prior != nil && (prior.PortID != nil || prior.AddressBookID != nil) {
		return Fields{PortID: clone(prior.PortID), AddressBookID: clone(prior.AddressBookID)}, nil
	}
	if leasing == nil {
		return Fields{}, fmt.Errorf("%w: sin fila previa ni leasing info para inferir puerto", domain.ErrMissingLocationData)
	}
	return Fields{PortID: clone(leasing.PortID), AddressBookID: clone(leasing.OnHireDepotID)}, nil
}

func clone(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
