package dto

// PortResponse salida de un puerto.
type PortResponse struct {
	ID       int64  `json:"id"`
	PortCode string `json:"port_code"`
	PortName string `json:"port_name"`
	Country  string `json:"country,omitempty"`
}

// PortListResponse lista paginada de puertos.
type PortListResponse struct {
	Items []PortResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AddressBookResponse salida de una empresa del address book.
type AddressBookResponse struct {
	ID            int64    `json:"id"`
	CompanyName   string   `json:"company_name"`
	BusinessTypes []string `json:"business_types"`
	PortIDs       []int64  `json:"port_ids,omitempty"`
}

// JobResponse vista de un job con los datos que usa el libro para inferir ubicaciones.
type JobResponse struct {
	Kind                 string `json:"kind"`
	ID                   int64  `json:"id"`
	JobNumber            string `json:"job_number"`
	POLPortID            *int64 `json:"pol_port_id,omitempty"`
	PODPortID            *int64 `json:"pod_port_id,omitempty"`
	CarrierAddressBookID *int64 `json:"carrier_address_book_id,omitempty"`
	EmptyReturnDepotID   *int64 `json:"empty_return_depot_id,omitempty"`
}
