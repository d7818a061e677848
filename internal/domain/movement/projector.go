package movement

import (
	"sort"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
)

// Latest devuelve, por inventoryID, la fila con mayor Date (empate: mayor ID).
// No modifica records.
func Latest(records []*entity.MovementRecord) map[int64]*entity.MovementRecord {
	out := make(map[int64]*entity.MovementRecord)
	for _, r := range records {
		if r == nil {
			continue
		}
		if cur, ok := out[r.InventoryID]; !ok || r.Newer(cur) {
			out[r.InventoryID] = r
		}
	}
	return out
}

// LatestList igual que Latest pero como slice ordenado por InventoryID, para salidas deterministas.
func LatestList(records []*entity.MovementRecord) []*entity.MovementRecord {
	byInv := Latest(records)
	list := make([]*entity.MovementRecord, 0, len(byInv))
	for _, r := range byInv {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].InventoryID < list[j].InventoryID })
	return list
}

// SortNewestFirst ordena in-place de la más reciente a la más antigua (orden del historial).
func SortNewestFirst(records []*entity.MovementRecord) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Newer(records[j]) })
}
