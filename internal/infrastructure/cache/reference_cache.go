// Package cache decoradores de solo lectura sobre Redis para catálogos que cambian poco
// (puertos y address book). Un fallo de Redis nunca rompe la consulta: se va a la BD.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

const keyPrefix = "ledger:"

var (
	_ repository.PortRepository        = (*PortRepository)(nil)
	_ repository.AddressBookRepository = (*AddressBookRepository)(nil)
)

type store struct {
	rdb redis.Cmdable
	ttl time.Duration
	log zerolog.Logger
}

func (s store) get(ctx context.Context, key string, dst any) bool {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("redis get falló, se consulta la BD")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("entrada de caché corrupta")
		return false
	}
	return true
}

func (s store) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis set falló")
	}
}

// mget lee varias claves; devuelve los valores encontrados (nil en los faltantes).
func (s store) mget(ctx context.Context, keys []string) []any {
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		s.log.Warn().Err(err).Int("keys", len(keys)).Msg("redis mget falló, se consulta la BD")
		return make([]any, len(keys))
	}
	return vals
}

// PortRepository caché read-through de puertos.
type PortRepository struct {
	next  repository.PortRepository
	store store
}

// NewPortRepository envuelve next. ttl <= 0 usa 10 minutos.
func NewPortRepository(next repository.PortRepository, rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) *PortRepository {
	return &PortRepository{next: next, store: newStore(rdb, ttl, log)}
}

func newStore(rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return store{rdb: rdb, ttl: ttl, log: log}
}

func portKey(id int64) string { return keyPrefix + "port:" + strconv.FormatInt(id, 10) }

// GetByID lee de Redis y, si falta, de la BD.
func (r *PortRepository) GetByID(ctx context.Context, id int64) (*entity.Port, error) {
	var p entity.Port
	if r.store.get(ctx, portKey(id), &p) {
		return &p, nil
	}
	found, err := r.next.GetByID(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	r.store.set(ctx, portKey(id), found)
	return found, nil
}

// ListByIDs resuelve de Redis con MGET y solo consulta la BD por los faltantes.
func (r *PortRepository) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Port, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = portKey(id)
	}
	var out []*entity.Port
	var missing []int64
	for i, v := range r.store.mget(ctx, keys) {
		var p entity.Port
		if s, ok := v.(string); ok && json.Unmarshal([]byte(s), &p) == nil {
			out = append(out, &p)
			continue
		}
		missing = append(missing, ids[i])
	}
	if len(missing) == 0 {
		return out, nil
	}
	loaded, err := r.next.ListByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, p := range loaded {
		r.store.set(ctx, portKey(p.ID), p)
	}
	return append(out, loaded...), nil
}

// List cachea cada página completa.
func (r *PortRepository) List(ctx context.Context, limit, offset int) ([]*entity.Port, error) {
	key := fmt.Sprintf("%sports:list:%d:%d", keyPrefix, limit, offset)
	var cached []*entity.Port
	if r.store.get(ctx, key, &cached) {
		return cached, nil
	}
	list, err := r.next.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	r.store.set(ctx, key, list)
	return list, nil
}

// AddressBookRepository caché read-through del address book.
type AddressBookRepository struct {
	next  repository.AddressBookRepository
	store store
}

// NewAddressBookRepository envuelve next. ttl <= 0 usa 10 minutos.
func NewAddressBookRepository(next repository.AddressBookRepository, rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) *AddressBookRepository {
	return &AddressBookRepository{next: next, store: newStore(rdb, ttl, log)}
}

func addressBookKey(id int64) string { return keyPrefix + "ab:" + strconv.FormatInt(id, 10) }

// GetByID lee de Redis y, si falta, de la BD.
func (r *AddressBookRepository) GetByID(ctx context.Context, id int64) (*entity.AddressBook, error) {
	var ab entity.AddressBook
	if r.store.get(ctx, addressBookKey(id), &ab) {
		return &ab, nil
	}
	found, err := r.next.GetByID(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	r.store.set(ctx, addressBookKey(id), found)
	return found, nil
}

// ListByIDs resuelve de Redis con MGET y solo consulta la BD por los faltantes.
func (r *AddressBookRepository) ListByIDs(ctx context.Context, ids []int64) ([]*entity.AddressBook, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = addressBookKey(id)
	}
	var out []*entity.AddressBook
	var missing []int64
	for i, v := range r.store.mget(ctx, keys) {
		var ab entity.AddressBook
		if s, ok := v.(string); ok && json.Unmarshal([]byte(s), &ab) == nil {
			out = append(out, &ab)
			continue
		}
		missing = append(missing, ids[i])
	}
	if len(missing) == 0 {
		return out, nil
	}
	loaded, err := r.next.ListByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, ab := range loaded {
		r.store.set(ctx, addressBookKey(ab.ID), ab)
	}
	return append(out, loaded...), nil
}

// ListByBusinessType cachea la lista por tipo de negocio y puerto.
func (r *AddressBookRepository) ListByBusinessType(ctx context.Context, businessType string, portID *int64) ([]*entity.AddressBook, error) {
	port := "*"
	if portID != nil {
		port = strconv.FormatInt(*portID, 10)
	}
	key := keyPrefix + "ab:bt:" + businessType + ":" + port
	var cached []*entity.AddressBook
	if r.store.get(ctx, key, &cached) {
		return cached, nil
	}
	list, err := r.next.ListByBusinessType(ctx, businessType, portID)
	if err != nil {
		return nil, err
	}
	r.store.set(ctx, key, list)
	return list, nil
}
