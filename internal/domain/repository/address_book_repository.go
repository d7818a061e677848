package repository

import (
	"context"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
)

// AddressBookRepository puerto de lectura del address book.
type AddressBookRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.AddressBook, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.AddressBook, error)
	// ListByBusinessType filtra por tipo de negocio y, si portID no es nil, por puerto asociado.
	ListByBusinessType(ctx context.Context, businessType string, portID *int64) ([]*entity.AddressBook, error)
}

// PortRepository puerto de lectura de puertos.
type PortRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Port, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Port, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Port, error)
}
