package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujit-maker/move-sub001/internal/application/usecase"
	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
)

type fakePorts []*entity.Port

func (f fakePorts) GetByID(_ context.Context, id int64) (*entity.Port, error) {
	for _, p := range f {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f fakePorts) ListByIDs(context.Context, []int64) ([]*entity.Port, error) { return f, nil }

func (f fakePorts) List(_ context.Context, limit, offset int) ([]*entity.Port, error) {
	if offset >= len(f) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f) {
		end = len(f)
	}
	return f[offset:end], nil
}

type fakeAddressBook struct {
	list    []*entity.AddressBook
	gotType string
	gotPort *int64
}

func (f *fakeAddressBook) GetByID(context.Context, int64) (*entity.AddressBook, error) { return nil, nil }

func (f *fakeAddressBook) ListByIDs(context.Context, []int64) ([]*entity.AddressBook, error) {
	return nil, nil
}

func (f *fakeAddressBook) ListByBusinessType(_ context.Context, bt string, portID *int64) ([]*entity.AddressBook, error) {
	f.gotType, f.gotPort = bt, portID
	return f.list, nil
}

type fakeJobs map[string]*entity.Job

func (f fakeJobs) GetByNumber(_ context.Context, n string) (*entity.Job, error) { return f[n], nil }

func newReferenceFixture() (*usecase.ReferenceUseCase, *fakeAddressBook) {
	ports := fakePorts{
		{ID: 10, PortCode: "CLSAI", PortName: "San Antonio", Country: "CL"},
		{ID: 20, PortCode: "PECLL", PortName: "Callao", Country: "PE"},
		{ID: 30, PortCode: "COBUN", PortName: "Buenaventura", Country: "CO"},
	}
	ab := &fakeAddressBook{list: []*entity.AddressBook{
		{ID: 300, CompanyName: "Naviera Sur", BusinessTypes: []string{entity.BusinessTypeCarrier}, PortIDs: []int64{10, 20}},
	}}
	pol, pod := int64(10), int64(20)
	jobs := fakeJobs{"RST/AAA/25/00001": {Kind: entity.JobKindShipment, ID: 7, Number: "RST/AAA/25/00001", POLPortID: &pol, PODPortID: &pod}}
	return usecase.NewReferenceUseCase(ports, ab, jobs), ab
}

func TestListPorts_Pagina(t *testing.T) {
	uc, _ := newReferenceFixture()
	resp, err := uc.ListPorts(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Callao", resp.Items[0].PortName)
	assert.Equal(t, 2, resp.Page.Limit)
	assert.Equal(t, 1, resp.Page.Offset)
}

func TestListAddressBook_FiltraPorTipoYPuerto(t *testing.T) {
	uc, ab := newReferenceFixture()
	port := int64(10)
	list, err := uc.ListAddressBook(context.Background(), " Carrier ", &port)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Naviera Sur", list[0].CompanyName)
	assert.Equal(t, "Carrier", ab.gotType)
	assert.Equal(t, &port, ab.gotPort)

	_, err = uc.ListAddressBook(context.Background(), "  ", nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLookupJob(t *testing.T) {
	uc, _ := newReferenceFixture()
	job, err := uc.LookupJob(context.Background(), "RST/AAA/25/00001")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "shipment", job.Kind)
	assert.Equal(t, int64(20), *job.PODPortID)

	job, err = uc.LookupJob(context.Background(), "RST/ZZZ/25/99999")
	require.NoError(t, err)
	assert.Nil(t, job)

	_, err = uc.LookupJob(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
