package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/infrastructure/cache"
)

// fakeRedis implementa solo los comandos que usa la caché; el resto entra en pánico por el nil embebido.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
	down bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.down {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.down {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) MGet(_ context.Context, keys ...string) *redis.SliceCmd {
	if f.down {
		return redis.NewSliceResult(nil, errors.New("connection refused"))
	}
	vals := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			vals[i] = v
		}
	}
	return redis.NewSliceResult(vals, nil)
}

type countingPorts struct {
	ports map[int64]*entity.Port
	calls int
	asked [][]int64
}

func (c *countingPorts) GetByID(_ context.Context, id int64) (*entity.Port, error) {
	c.calls++
	return c.ports[id], nil
}

func (c *countingPorts) ListByIDs(_ context.Context, ids []int64) ([]*entity.Port, error) {
	c.calls++
	c.asked = append(c.asked, ids)
	var out []*entity.Port
	for _, id := range ids {
		if p, ok := c.ports[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *countingPorts) List(_ context.Context, _, _ int) ([]*entity.Port, error) {
	c.calls++
	return []*entity.Port{c.ports[10], c.ports[20]}, nil
}

func newPorts() *countingPorts {
	return &countingPorts{ports: map[int64]*entity.Port{
		10: {ID: 10, PortCode: "CLSAI", PortName: "San Antonio", Country: "CL"},
		20: {ID: 20, PortCode: "PECLL", PortName: "Callao", Country: "PE"},
	}}
}

func TestPortCache_GetByIDLeeUnaVezDeLaBD(t *testing.T) {
	rdb := newFakeRedis()
	inner := newPorts()
	repo := cache.NewPortRepository(inner, rdb, time.Minute, zerolog.Nop())

	for i := 0; i < 3; i++ {
		p, err := repo.GetByID(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, "San Antonio", p.PortName)
	}
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, time.Minute, rdb.ttls["ledger:port:10"])
}

func TestPortCache_NoCacheaInexistentes(t *testing.T) {
	rdb := newFakeRedis()
	inner := newPorts()
	repo := cache.NewPortRepository(inner, rdb, 0, zerolog.Nop())

	p, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, rdb.data)
}

func TestPortCache_ListByIDsSoloPideFaltantes(t *testing.T) {
	rdb := newFakeRedis()
	inner := newPorts()
	repo := cache.NewPortRepository(inner, rdb, time.Minute, zerolog.Nop())

	_, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)

	list, err := repo.ListByIDs(context.Background(), []int64{10, 20})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	require.Len(t, inner.asked, 1)
	assert.Equal(t, []int64{20}, inner.asked[0])

	list, err = repo.ListByIDs(context.Background(), []int64{10, 20})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Len(t, inner.asked, 1, "segunda vez todo sale de Redis")
}

func TestPortCache_RedisCaidoVaALaBD(t *testing.T) {
	rdb := newFakeRedis()
	rdb.down = true
	inner := newPorts()
	repo := cache.NewPortRepository(inner, rdb, time.Minute, zerolog.Nop())

	p, err := repo.GetByID(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, "Callao", p.PortName)

	list, err := repo.ListByIDs(context.Background(), []int64{10})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	page, err := repo.List(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, 3, inner.calls)
}

type stubAddressBook struct {
	calls int
}

func (s *stubAddressBook) GetByID(_ context.Context, id int64) (*entity.AddressBook, error) {
	s.calls++
	return &entity.AddressBook{ID: id, CompanyName: "Depósito Norte"}, nil
}

func (s *stubAddressBook) ListByIDs(_ context.Context, ids []int64) ([]*entity.AddressBook, error) {
	s.calls++
	var out []*entity.AddressBook
	for _, id := range ids {
		out = append(out, &entity.AddressBook{ID: id, CompanyName: "Empresa"})
	}
	return out, nil
}

func (s *stubAddressBook) ListByBusinessType(_ context.Context, bt string, _ *int64) ([]*entity.AddressBook, error) {
	s.calls++
	return []*entity.AddressBook{{ID: 1, CompanyName: "Naviera Sur", BusinessTypes: []string{bt}, PortIDs: []int64{10}}}, nil
}

func TestAddressBookCache_ClavePorTipoYPuerto(t *testing.T) {
	rdb := newFakeRedis()
	inner := &stubAddressBook{}
	repo := cache.NewAddressBookRepository(inner, rdb, time.Minute, zerolog.Nop())
	port := int64(10)

	for i := 0; i < 2; i++ {
		list, err := repo.ListByBusinessType(context.Background(), entity.BusinessTypeCarrier, &port)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, []int64{10}, list[0].PortIDs)
	}
	_, err := repo.ListByBusinessType(context.Background(), entity.BusinessTypeCarrier, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Contains(t, rdb.data, "ledger:ab:bt:Carrier:10")
	assert.Contains(t, rdb.data, "ledger:ab:bt:Carrier:*")

	ab, err := repo.GetByID(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, "Depósito Norte", ab.CompanyName)
	_, err = repo.GetByID(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
}
