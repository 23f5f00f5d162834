package repository

import (
	"encoding/json"
	"fmt"

	"github.com/simoilconte/Bensine/internal/model"
)

func rowToVehicle(r vehicleRow) (*model.Vehicle, error) {
	v := &model.Vehicle{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Plate:      r.Plate,
		Make:       r.Make,
		Model:      r.Model,
		Year:       r.Year,
		VIN:        r.VIN,
		FuelType:   r.FuelType,
		Km:         r.Km,
		CreatedAt:  r.CreatedAt,
	}

	if len(r.Tires) > 0 {
		var t tiresRecord
		if err := json.Unmarshal(r.Tires, &t); err != nil {
			return nil, fmt.Errorf("tires: %w", err)
		}
		v.Tires = &model.Tires{
			Summer: setToModel(t.Summer),
			Winter: setToModel(t.Winter),
			Notes:  t.Notes,
		}
	}

	if len(r.RegistrationDoc) > 0 {
		var d registrationDocRecord
		if err := json.Unmarshal(r.RegistrationDoc, &d); err != nil {
			return nil, fmt.Errorf("registration_doc: %w", err)
		}
		doc := model.RegistrationDoc(d)
		v.RegistrationDoc = &doc
	}

	return v, nil
}

func setToModel(s *tireSetRecord) *model.TireSet {
	if s == nil {
		return nil
	}
	return &model.TireSet{Front: specToModel(s.Front), Rear: specToModel(s.Rear)}
}

func specToModel(s *tireSpecRecord) *model.TireSpec {
	if s == nil {
		return nil
	}
	spec := model.TireSpec(*s)
	return &spec
}

func setToRecord(s *model.TireSet) *tireSetRecord {
	if s == nil {
		return nil
	}
	return &tireSetRecord{Front: specToRecord(s.Front), Rear: specToRecord(s.Rear)}
}

func specToRecord(s *model.TireSpec) *tireSpecRecord {
	if s == nil {
		return nil
	}
	rec := tireSpecRecord(*s)
	return &rec
}

func tiresJSON(t *model.Tires) (any, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(tiresRecord{
		Summer: setToRecord(t.Summer),
		Winter: setToRecord(t.Winter),
		Notes:  t.Notes,
	})
}

func registrationDocJSON(d *model.RegistrationDoc) (any, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(registrationDocRecord(*d))
}
