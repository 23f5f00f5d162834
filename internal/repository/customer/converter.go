package repository

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
)

func rowToCustomer(r customerRow) (*model.Customer, error) {
	c := &model.Customer{
		ID:          r.ID,
		Type:        model.CustomerType(r.Type),
		DisplayName: r.DisplayName,
		Notes:       r.Notes,
		Documents:   []model.Document{},
		Sharing: model.Sharing{
			SharedWithClientUserIDs: lo.Ternary(r.SharedUserIDs == nil, []uuid.UUID{}, r.SharedUserIDs),
			ClientPermissions: model.ClientPermissions{
				CanViewVehicles:  r.CanViewVehicles,
				CanViewParts:     r.CanViewParts,
				CanViewDocuments: r.CanViewDocuments,
			},
		},
		CreatedAt: r.CreatedAt,
	}

	if len(r.PrivateFields) > 0 {
		var pf privateFieldsRecord
		if err := json.Unmarshal(r.PrivateFields, &pf); err != nil {
			return nil, fmt.Errorf("private_fields: %w", err)
		}
		c.PrivateFields = &model.PrivateFields{FirstName: pf.FirstName, LastName: pf.LastName}
	}

	if len(r.CompanyFields) > 0 {
		var cf companyFieldsRecord
		if err := json.Unmarshal(r.CompanyFields, &cf); err != nil {
			return nil, fmt.Errorf("company_fields: %w", err)
		}
		c.CompanyFields = &model.CompanyFields{
			RagioneSociale: cf.RagioneSociale,
			PIVA:           cf.PIVA,
			ReferenteNome:  cf.ReferenteNome,
		}
	}

	if len(r.Contacts) > 0 {
		var ct contactsRecord
		if err := json.Unmarshal(r.Contacts, &ct); err != nil {
			return nil, fmt.Errorf("contacts: %w", err)
		}
		c.Contacts = model.Contacts(ct)
	}

	if len(r.Documents) > 0 {
		var docs []documentRecord
		if err := json.Unmarshal(r.Documents, &docs); err != nil {
			return nil, fmt.Errorf("documents: %w", err)
		}
		c.Documents = lo.Map(docs, func(d documentRecord, _ int) model.Document {
			return model.Document(d)
		})
	}

	return c, nil
}

// A nil value is stored as SQL NULL.
func privateFieldsJSON(pf *model.PrivateFields) (any, error) {
	if pf == nil {
		return nil, nil
	}
	return json.Marshal(privateFieldsRecord{FirstName: pf.FirstName, LastName: pf.LastName})
}

func companyFieldsJSON(cf *model.CompanyFields) (any, error) {
	if cf == nil {
		return nil, nil
	}
	return json.Marshal(companyFieldsRecord{
		RagioneSociale: cf.RagioneSociale,
		PIVA:           cf.PIVA,
		ReferenteNome:  cf.ReferenteNome,
	})
}

func contactsJSON(c model.Contacts) ([]byte, error) {
	return json.Marshal(contactsRecord(c))
}

func documentJSON(d model.Document) ([]byte, error) {
	return json.Marshal([]documentRecord{documentRecord(d)})
}
