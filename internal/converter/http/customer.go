package converter

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

func CustomerToAPI(v model.CustomerView) apiv1.Customer {
	out := apiv1.Customer{
		ID:            v.ID,
		Type:          string(v.Type),
		DisplayName:   v.DisplayName,
		PrivateFields: privateFieldsToAPI(v.PrivateFields),
		CompanyFields: companyFieldsToAPI(v.CompanyFields),
		Contacts:      apiv1.Contacts(v.Contacts),
		Documents:     DocumentsToAPI(v.Documents),
		VehicleCount:  v.VehicleCount,
		Restricted:    v.Restricted,
		CreatedAt:     v.CreatedAt,
	}
	if !v.Restricted {
		out.Notes = lo.ToPtr(v.Notes)
		out.Sharing = lo.ToPtr(SharingToAPI(v.Sharing))
	}
	return out
}

func CustomersToAPI(list []model.CustomerView) []apiv1.Customer {
	return lo.Map(list, func(v model.CustomerView, _ int) apiv1.Customer { return CustomerToAPI(v) })
}

func DocumentToAPI(d model.Document) apiv1.Document {
	return apiv1.Document(d)
}

func DocumentsToAPI(docs []model.Document) []apiv1.Document {
	out := make([]apiv1.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentToAPI(d))
	}
	return out
}

func SharingToAPI(s model.Sharing) apiv1.Sharing {
	ids := s.SharedWithClientUserIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return apiv1.Sharing{
		SharedWithClientUserIDs: ids,
		ClientPermissions:       apiv1.ClientPermissions(s.ClientPermissions),
	}
}

func SharingToModel(s apiv1.Sharing) model.Sharing {
	return model.Sharing{
		SharedWithClientUserIDs: s.SharedWithClientUserIDs,
		ClientPermissions:       model.ClientPermissions(s.ClientPermissions),
	}
}

func CreateCustomerRequestToParams(req apiv1.CreateCustomerRequest) model.CreateCustomerParams {
	return model.CreateCustomerParams{
		Type:          model.CustomerType(req.Type),
		DisplayName:   req.DisplayName,
		PrivateFields: privateFieldsToModel(req.PrivateFields),
		CompanyFields: companyFieldsToModel(req.CompanyFields),
		Contacts:      model.Contacts(req.Contacts),
		Notes:         req.Notes,
	}
}

func UpdateCustomerRequestToModel(req apiv1.UpdateCustomerRequest) model.CustomerUpdate {
	upd := model.CustomerUpdate{
		DisplayName:   req.DisplayName,
		PrivateFields: privateFieldsToModel(req.PrivateFields),
		CompanyFields: companyFieldsToModel(req.CompanyFields),
		Notes:         req.Notes,
	}
	if req.Type != nil {
		upd.Type = lo.ToPtr(model.CustomerType(*req.Type))
	}
	if req.Contacts != nil {
		upd.Contacts = lo.ToPtr(model.Contacts(*req.Contacts))
	}
	return upd
}

func privateFieldsToAPI(p *model.PrivateFields) *apiv1.PrivateFields {
	if p == nil {
		return nil
	}
	return lo.ToPtr(apiv1.PrivateFields(*p))
}

func privateFieldsToModel(p *apiv1.PrivateFields) *model.PrivateFields {
	if p == nil {
		return nil
	}
	return lo.ToPtr(model.PrivateFields(*p))
}

func companyFieldsToAPI(c *model.CompanyFields) *apiv1.CompanyFields {
	if c == nil {
		return nil
	}
	return lo.ToPtr(apiv1.CompanyFields(*c))
}

func companyFieldsToModel(c *apiv1.CompanyFields) *model.CompanyFields {
	if c == nil {
		return nil
	}
	return lo.ToPtr(model.CompanyFields(*c))
}
