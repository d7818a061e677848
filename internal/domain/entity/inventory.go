package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory representa un contenedor físico (activo) del inventario.
type Inventory struct {
	ID              int64
	ContainerNumber string // ej. ABCU1234567
	ContainerType   string // 20GP, 40HC, ISO tank...
	Ownership       string // own, leased
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeasingInfo registro de arrendamiento de un contenedor (on-hire).
// El más reciente aporta puerto y depósito por defecto al sembrar estados.
type LeasingInfo struct {
	ID                  int64
	InventoryID         int64
	LeasingRef          string
	LessorAddressBookID *int64
	PortID              *int64 // puerto de on-hire
	OnHireDepotID       *int64 // address book del depósito de on-hire
	OnHireDate          time.Time
	RentPerDay          decimal.Decimal
	LeaseValue          decimal.Decimal
	CreatedAt           time.Time
}
