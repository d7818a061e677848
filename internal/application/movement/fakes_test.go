package movement_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sujit-maker/move-sub001/internal/domain"
	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	rules "github.com/sujit-maker/move-sub001/internal/domain/movement"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica de transacción: Run trabaja sobre una copia
// y solo la publica si fn no devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu          sync.Mutex
	records     []*entity.MovementRecord
	nextID      int64
	inventories map[int64]*entity.Inventory
	createCalls int
	failCreate  error // si no es nil, CreateBatch escribe la primera fila y falla
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, inventories: make(map[int64]*entity.Inventory)}
}

func (s *memStore) addInventory(id int64, number string) {
	s.inventories[id] = &entity.Inventory{ID: id, ContainerNumber: number}
}

// seed agrega una fila ya existente en el libro y devuelve su ID.
func (s *memStore) seed(r entity.MovementRecord) int64 {
	r.ID = s.nextID
	s.nextID++
	s.records = append(s.records, &r)
	return r.ID
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		nextID:      s.nextID,
		inventories: s.inventories,
		createCalls: s.createCalls,
		failCreate:  s.failCreate,
		records:     make([]*entity.MovementRecord, 0, len(s.records)),
	}
	for _, r := range s.records {
		c := *r
		cp.records = append(cp.records, &c)
	}
	return cp
}

func (s *memStore) all() []*entity.MovementRecord {
	out := make([]*entity.MovementRecord, 0, len(s.records))
	for _, r := range s.records {
		c := *r
		out = append(out, &c)
	}
	return out
}

func (s *memStore) current(inventoryID int64) *entity.MovementRecord {
	return rules.Latest(s.all())[inventoryID]
}

type memTxRunner struct {
	store *memStore
	runs  int
}

func (t *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRecordRepository,
	invRepo repository.InventoryRepository,
) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.runs++
	staged := t.store.snapshot()
	if err := fn(&memMovRepo{s: staged}, &memInvRepo{s: staged}); err != nil {
		return err
	}
	t.store.records = staged.records
	t.store.nextID = staged.nextID
	t.store.createCalls = staged.createCalls
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

type memMovRepo struct{ s *memStore }

var _ repository.MovementRecordRepository = (*memMovRepo)(nil)

func (r *memMovRepo) CreateBatch(_ context.Context, records []*entity.MovementRecord) error {
	r.s.createCalls++
	for i, rec := range records {
		if r.s.failCreate != nil && i == 1 {
			return r.s.failCreate
		}
		rec.ID = r.s.nextID
		r.s.nextID++
		c := *rec
		r.s.records = append(r.s.records, &c)
	}
	if r.s.failCreate != nil {
		return r.s.failCreate
	}
	return nil
}

func (r *memMovRepo) GetByID(_ context.Context, id int64) (*entity.MovementRecord, error) {
	for _, rec := range r.s.records {
		if rec.ID == id {
			c := *rec
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memMovRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.MovementRecord, error) {
	var out []*entity.MovementRecord
	for _, id := range ids {
		rec, _ := r.GetByID(ctx, id)
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memMovRepo) ListByInventoryIDs(_ context.Context, inventoryIDs []int64) ([]*entity.MovementRecord, error) {
	want := make(map[int64]bool, len(inventoryIDs))
	for _, id := range inventoryIDs {
		want[id] = true
	}
	var out []*entity.MovementRecord
	for _, rec := range r.s.all() {
		if want[rec.InventoryID] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memMovRepo) ListByInventory(ctx context.Context, inventoryID int64) ([]*entity.MovementRecord, error) {
	out, _ := r.ListByInventoryIDs(ctx, []int64{inventoryID})
	rules.SortNewestFirst(out)
	return out, nil
}

func (r *memMovRepo) ListLatest(_ context.Context, f repository.LatestFilter) ([]*entity.MovementRecord, error) {
	var out []*entity.MovementRecord
	for _, rec := range rules.LatestList(r.s.all()) {
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if f.JobNumber != "" && rec.JobNumber != f.JobNumber {
			continue
		}
		out = append(out, rec)
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memMovRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.MovementRecord, error) {
	var out []*entity.MovementRecord
	for _, rec := range r.s.all() {
		if rec.BatchID == batchID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memMovRepo) UpdateDate(_ context.Context, id int64, date time.Time) error {
	for _, rec := range r.s.records {
		if rec.ID == id {
			rec.Date = date
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memMovRepo) DeleteByJobNumber(_ context.Context, jobNumber string) (int64, error) {
	kept := r.s.records[:0]
	var n int64
	for _, rec := range r.s.records {
		if rec.JobNumber == jobNumber {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	r.s.records = kept
	return n, nil
}

type memInvRepo struct{ s *memStore }

var _ repository.InventoryRepository = (*memInvRepo)(nil)

func (r *memInvRepo) GetByID(_ context.Context, id int64) (*entity.Inventory, error) {
	return r.s.inventories[id], nil
}

func (r *memInvRepo) GetByContainerNumber(_ context.Context, number string) (*entity.Inventory, error) {
	for _, inv := range r.s.inventories {
		if strings.EqualFold(inv.ContainerNumber, number) {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *memInvRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, id := range ids {
		if inv, ok := r.s.inventories[id]; ok {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memInvRepo) LockByIDs(_ context.Context, ids []int64) ([]int64, error) {
	var out []int64
	for _, id := range ids {
		if _, ok := r.s.inventories[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type memJobRepo map[string]*entity.Job

func (m memJobRepo) GetByNumber(_ context.Context, number string) (*entity.Job, error) {
	return m[number], nil
}

type memLeasingRepo map[int64]*entity.LeasingInfo

func (m memLeasingRepo) LatestByInventory(_ context.Context, id int64) (*entity.LeasingInfo, error) {
	return m[id], nil
}

func (m memLeasingRepo) LatestByInventories(_ context.Context, ids []int64) (map[int64]*entity.LeasingInfo, error) {
	out := make(map[int64]*entity.LeasingInfo)
	for _, id := range ids {
		if l, ok := m[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

type memPortRepo map[int64]*entity.Port

func (m memPortRepo) GetByID(_ context.Context, id int64) (*entity.Port, error) { return m[id], nil }

func (m memPortRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Port, error) {
	var out []*entity.Port
	for _, id := range ids {
		if p, ok := m[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m memPortRepo) List(_ context.Context, _, _ int) ([]*entity.Port, error) {
	return nil, fmt.Errorf("no usado en estos tests")
}

type memAddressBookRepo map[int64]*entity.AddressBook

func (m memAddressBookRepo) GetByID(_ context.Context, id int64) (*entity.AddressBook, error) {
	return m[id], nil
}

func (m memAddressBookRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.AddressBook, error) {
	var out []*entity.AddressBook
	for _, id := range ids {
		if ab, ok := m[id]; ok {
			out = append(out, ab)
		}
	}
	return out, nil
}

func (m memAddressBookRepo) ListByBusinessType(_ context.Context, _ string, _ *int64) ([]*entity.AddressBook, error) {
	return nil, fmt.Errorf("no usado en estos tests")
}

// spyRecorder registra las llamadas de métricas.
type spyRecorder struct {
	applied  []string
	rejected []string
	dates    []bool
}

func (s *spyRecorder) TransitionApplied(from, to string, containers int, _ time.Duration) {
	s.applied = append(s.applied, fmt.Sprintf("%s->%s:%d", from, to, containers))
}

func (s *spyRecorder) TransitionRejected(to, reason string) {
	s.rejected = append(s.rejected, to+":"+reason)
}

func (s *spyRecorder) DateCorrected(changed bool) { s.dates = append(s.dates, changed) }

// ──────────────────────────────────────────────────────────────────────────────
// Datos comunes
// ──────────────────────────────────────────────────────────────────────────────

const jobRST = "RST/AAA/25/00001"

func ptr(v int64) *int64 { return &v }

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func shipmentJob(number string) *entity.Job {
	return &entity.Job{
		Kind:                 entity.JobKindShipment,
		ID:                   7,
		Number:               number,
		POLPortID:            ptr(10),
		PODPortID:            ptr(20),
		CarrierAddressBookID: ptr(300),
		EmptyReturnDepotID:   ptr(400),
	}
}
