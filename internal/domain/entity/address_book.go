package entity

import "time"

// Tipos de negocio del address book usados para ofrecer opciones al operador.
const (
	BusinessTypeCarrier       = "Carrier"
	BusinessTypeDepotTerminal = "Depot Terminal"
	BusinessTypeCYTerminal    = "CY Terminal"
	BusinessTypeCustomer      = "Customer"
)

// AddressBook representa una empresa del address book (naviera, depósito, cliente...).
type AddressBook struct {
	ID            int64
	CompanyName   string
	BusinessTypes []string // una empresa puede tener varios tipos
	PortIDs       []int64  // puertos a los que está asociada
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Port representa un puerto marítimo.
type Port struct {
	ID       int64
	PortCode string // UN/LOCODE
	PortName string
	Country  string
}
