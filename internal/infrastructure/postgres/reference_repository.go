package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

var (
	_ repository.PortRepository        = (*PortRepo)(nil)
	_ repository.AddressBookRepository = (*AddressBookRepo)(nil)
)

// PortRepo lectura de puertos.
type PortRepo struct {
	q Querier
}

// NewPortRepository construye el adaptador.
func NewPortRepository(q Querier) *PortRepo {
	return &PortRepo{q: q}
}

func scanPort(row rowScanner) (*entity.Port, error) {
	var p entity.Port
	var country *string
	if err := row.Scan(&p.ID, &p.PortCode, &p.PortName, &country); err != nil {
		return nil, err
	}
	p.Country = derefString(country)
	return &p, nil
}

func (r *PortRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Port, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	defer rows.Close()
	var list []*entity.Port
	for rows.Next() {
		p, err := scanPort(rows)
		if err != nil {
			return nil, fmt.Errorf("scan port: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID obtiene un puerto por ID.
func (r *PortRepo) GetByID(ctx context.Context, id int64) (*entity.Port, error) {
	p, err := scanPort(r.q.QueryRow(ctx, `SELECT id, port_code, port_name, country FROM ports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get port: %w", err)
	}
	return p, nil
}

// ListByIDs puertos existentes entre ids.
func (r *PortRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Port, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT id, port_code, port_name, country FROM ports WHERE id = ANY($1) ORDER BY id`, ids)
}

// List puertos ordenados por nombre con paginación.
func (r *PortRepo) List(ctx context.Context, limit, offset int) ([]*entity.Port, error) {
	return r.list(ctx, `SELECT id, port_code, port_name, country FROM ports ORDER BY port_name LIMIT $1 OFFSET $2`, limit, offset)
}

// AddressBookRepo lectura del address book. business_types y port_ids son arrays de PostgreSQL.
type AddressBookRepo struct {
	q Querier
}

// NewAddressBookRepository construye el adaptador.
func NewAddressBookRepository(q Querier) *AddressBookRepo {
	return &AddressBookRepo{q: q}
}

const addressBookColumns = `id, company_name, business_types, port_ids, status, created_at, updated_at`

func scanAddressBook(row rowScanner) (*entity.AddressBook, error) {
	var ab entity.AddressBook
	if err := row.Scan(&ab.ID, &ab.CompanyName, &ab.BusinessTypes, &ab.PortIDs, &ab.Status, &ab.CreatedAt, &ab.UpdatedAt); err != nil {
		return nil, err
	}
	return &ab, nil
}

func (r *AddressBookRepo) list(ctx context.Context, query string, args ...any) ([]*entity.AddressBook, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list address book: %w", err)
	}
	defer rows.Close()
	var list []*entity.AddressBook
	for rows.Next() {
		ab, err := scanAddressBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address book: %w", err)
		}
		list = append(list, ab)
	}
	return list, rows.Err()
}

// GetByID obtiene una empresa por ID.
func (r *AddressBookRepo) GetByID(ctx context.Context, id int64) (*entity.AddressBook, error) {
	ab, err := scanAddressBook(r.q.QueryRow(ctx, `SELECT `+addressBookColumns+` FROM address_books WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address book: %w", err)
	}
	return ab, nil
}

// ListByIDs empresas existentes entre ids.
func (r *AddressBookRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.AddressBook, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+addressBookColumns+` FROM address_books WHERE id = ANY($1) ORDER BY id`, ids)
}

// ListByBusinessType empresas activas con ese tipo de negocio; si portID no es nil, asociadas a ese puerto.
func (r *AddressBookRepo) ListByBusinessType(ctx context.Context, businessType string, portID *int64) ([]*entity.AddressBook, error) {
	query := `SELECT ` + addressBookColumns + ` FROM address_books
		WHERE status = 'active' AND $1 = ANY(business_types)`
	args := []any{businessType}
	if portID != nil {
		query += ` AND $2 = ANY(port_ids)`
		args = append(args, *portID)
	}
	query += ` ORDER BY company_name`
	return r.list(ctx, query, args...)
}
