package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
)

func validateItems(items []model.RequestedItem) error {
	if len(items) == 0 {
		return model.Invalid("at least one item is required")
	}
	for i, it := range items {
		if it.Qty <= 0 {
			return model.Invalid("item %d: quantity must be positive", i)
		}
		if it.PartID == nil && strings.TrimSpace(it.FreeTextName) == "" {
			return model.Invalid("item %d: either a catalog part or a name is required", i)
		}
	}
	return nil
}

// captureSnapshots fills unset snapshot values from the catalog. Frozen values are kept and
// items pointing at a missing part are left as they are. A part listed in prior takes its
// snapshot from there and never from the catalog.
func (svc *service) captureSnapshots(
	ctx context.Context,
	items []model.RequestedItem,
	prior map[uuid.UUID]model.PriceSnapshot,
) ([]model.RequestedItem, error) {
	out := make([]model.RequestedItem, len(items))
	copy(out, items)

	for i := range out {
		if out[i].PartID == nil {
			continue
		}
		if snap, ok := prior[*out[i].PartID]; ok {
			out[i].Snapshot = out[i].Snapshot.FillMissing(snap.UnitPricePtr(), snap.UnitCostPtr())
		}
	}

	ids := lo.Uniq(lo.FilterMap(out, func(it model.RequestedItem, _ int) (uuid.UUID, bool) {
		if it.PartID == nil || it.Snapshot.Complete() {
			return uuid.Nil, false
		}
		if _, ok := prior[*it.PartID]; ok {
			return uuid.Nil, false
		}
		return *it.PartID, true
	}))
	if len(ids) == 0 {
		return out, nil
	}

	parts, err := svc.parts.List(ctx, model.PartFilter{IDs: ids})
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(parts, func(p *model.Part) uuid.UUID { return p.ID })

	for i := range out {
		if out[i].PartID == nil {
			continue
		}
		if _, ok := prior[*out[i].PartID]; ok {
			continue
		}
		if p, ok := byID[*out[i].PartID]; ok {
			out[i].Snapshot = out[i].Snapshot.FillMissing(p.UnitPrice, p.UnitCost)
		}
	}

	return out, nil
}

// frozenSnapshots indexes the snapshots already stored on a request by part.
func frozenSnapshots(items []model.RequestedItem) map[uuid.UUID]model.PriceSnapshot {
	out := make(map[uuid.UUID]model.PriceSnapshot, len(items))
	for _, it := range items {
		if it.PartID == nil {
			continue
		}
		if _, ok := out[*it.PartID]; !ok {
			out[*it.PartID] = it.Snapshot
		}
	}
	return out
}

// itemsPayload is the event log shape of a line item list.
func itemsPayload(items []model.RequestedItem) []map[string]any {
	return lo.Map(items, func(it model.RequestedItem, _ int) map[string]any {
		m := map[string]any{"qty": it.Qty}
		if it.PartID != nil {
			m["partId"] = it.PartID.String()
		}
		if name := strings.TrimSpace(it.FreeTextName); name != "" {
			m["freeTextName"] = name
		}
		if v, ok := it.Snapshot.UnitPrice(); ok {
			m["unitPriceSnapshot"] = v
		}
		if v, ok := it.Snapshot.UnitCost(); ok {
			m["unitCostSnapshot"] = v
		}
		return m
	})
}
