package converter

import (
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

func VehicleToAPI(v *model.Vehicle) apiv1.Vehicle {
	out := apiv1.Vehicle{
		ID:         v.ID,
		CustomerID: v.CustomerID,
		Plate:      v.Plate,
		Make:       v.Make,
		Model:      v.Model,
		Year:       v.Year,
		VIN:        v.VIN,
		FuelType:   v.FuelType,
		Km:         v.Km,
		Tires:      tiresToAPI(v.Tires),
		CreatedAt:  v.CreatedAt,
	}
	if v.RegistrationDoc != nil {
		out.RegistrationDoc = lo.ToPtr(RegistrationDocToAPI(*v.RegistrationDoc))
	}
	return out
}

func VehiclesToAPI(list []*model.Vehicle) []apiv1.Vehicle {
	return lo.Map(list, func(v *model.Vehicle, _ int) apiv1.Vehicle { return VehicleToAPI(v) })
}

func RegistrationDocToAPI(d model.RegistrationDoc) apiv1.RegistrationDoc {
	return apiv1.RegistrationDoc(d)
}

func CreateVehicleRequestToParams(req apiv1.CreateVehicleRequest) model.CreateVehicleParams {
	return model.CreateVehicleParams{
		CustomerID: req.CustomerID,
		Plate:      req.Plate,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		VIN:        req.VIN,
		FuelType:   req.FuelType,
		Km:         req.Km,
		Tires:      tiresToModel(req.Tires),
	}
}

func UpdateVehicleRequestToModel(req apiv1.UpdateVehicleRequest) model.VehicleUpdate {
	return model.VehicleUpdate{
		Plate:    req.Plate,
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		VIN:      req.VIN,
		FuelType: req.FuelType,
		Km:       req.Km,
		Tires:    tiresToModel(req.Tires),
	}
}

func tiresToAPI(t *model.Tires) *apiv1.Tires {
	if t == nil {
		return nil
	}
	return &apiv1.Tires{
		Summer: tireSetToAPI(t.Summer),
		Winter: tireSetToAPI(t.Winter),
		Notes:  t.Notes,
	}
}

func tireSetToAPI(s *model.TireSet) *apiv1.TireSet {
	if s == nil {
		return nil
	}
	out := &apiv1.TireSet{}
	if s.Front != nil {
		out.Front = lo.ToPtr(apiv1.TireSpec(*s.Front))
	}
	if s.Rear != nil {
		out.Rear = lo.ToPtr(apiv1.TireSpec(*s.Rear))
	}
	return out
}

func tiresToModel(t *apiv1.Tires) *model.Tires {
	if t == nil {
		return nil
	}
	return &model.Tires{
		Summer: tireSetToModel(t.Summer),
		Winter: tireSetToModel(t.Winter),
		Notes:  t.Notes,
	}
}

func tireSetToModel(s *apiv1.TireSet) *model.TireSet {
	if s == nil {
		return nil
	}
	out := &model.TireSet{}
	if s.Front != nil {
		out.Front = lo.ToPtr(model.TireSpec(*s.Front))
	}
	if s.Rear != nil {
		out.Rear = lo.ToPtr(model.TireSpec(*s.Rear))
	}
	return out
}
