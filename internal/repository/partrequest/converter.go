package repository

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
)

func itemsJSON(items []model.RequestedItem) ([]byte, error) {
	recs := lo.Map(items, func(it model.RequestedItem, _ int) itemRecord {
		return itemRecord{
			PartID:            it.PartID,
			FreeTextName:      it.FreeTextName,
			Qty:               it.Qty,
			UnitPriceSnapshot: it.Snapshot.UnitPricePtr(),
			UnitCostSnapshot:  it.Snapshot.UnitCostPtr(),
		}
	})
	return json.Marshal(recs)
}

func timelineJSON(tl []model.TimelineEntry) ([]byte, error) {
	recs := lo.Map(tl, func(e model.TimelineEntry, _ int) timelineRecord {
		return timelineRecord{Status: string(e.Status), At: e.At, ByUserID: e.ByUserID}
	})
	return json.Marshal(recs)
}

// partFilterJSON builds the containment probe used against requested_items.
func partFilterJSON(partID uuid.UUID) ([]byte, error) {
	return json.Marshal([]map[string]string{{"partId": partID.String()}})
}

func rowToPartRequest(r partRequestRow) (*model.PartRequest, error) {
	var items []itemRecord
	if err := json.Unmarshal(r.Items, &items); err != nil {
		return nil, fmt.Errorf("requested_items: %w", err)
	}

	var tl []timelineRecord
	if err := json.Unmarshal(r.Timeline, &tl); err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}

	return &model.PartRequest{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		VehicleID:  r.VehicleID,
		Items: lo.Map(items, func(it itemRecord, _ int) model.RequestedItem {
			return model.RequestedItem{
				PartID:       it.PartID,
				FreeTextName: it.FreeTextName,
				Qty:          it.Qty,
				Snapshot:     model.NewPriceSnapshot(it.UnitPriceSnapshot, it.UnitCostSnapshot),
			}
		}),
		Status: model.PartRequestStatus(r.Status),
		Timeline: lo.Map(tl, func(e timelineRecord, _ int) model.TimelineEntry {
			return model.TimelineEntry{Status: model.PartRequestStatus(e.Status), At: e.At, ByUserID: e.ByUserID}
		}),
		Supplier:  r.Supplier,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}
