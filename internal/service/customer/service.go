package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/platform/logger"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (uuid.UUID, error)
	CustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, f model.CustomerFilter) ([]*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	SetSharing(ctx context.Context, id uuid.UUID, s model.Sharing) error
	AddDocument(ctx context.Context, id uuid.UUID, d model.Document) error
	RemoveDocument(ctx context.Context, id uuid.UUID, fileID string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type VehicleRepository interface {
	CountByCustomers(ctx context.Context, customerIDs []uuid.UUID) (map[uuid.UUID]int, error)
	ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error)
}

type PartRequestRepository interface {
	Exists(ctx context.Context, f model.PartRequestFilter) (bool, error)
}

type UserRepository interface {
	UsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error)
}

type DocumentStore interface {
	Upload(ctx context.Context, p model.UploadFileParams) (*model.FileInfo, error)
	Open(ctx context.Context, fileID string) (*model.OpenedFile, error)
	Delete(ctx context.Context, fileID string) error
}

type EventRecorder interface {
	Record(ctx context.Context, params model.RecordEventParams) error
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	customers      CustomerRepository
	vehicles       VehicleRepository
	partRequests   PartRequestRepository
	users          UserRepository
	documents      DocumentStore
	events         EventRecorder
	tx             TxManager
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
	now            func() time.Time
}

func NewCustomerService(
	customers CustomerRepository,
	vehicles VehicleRepository,
	partRequests PartRequestRepository,
	users UserRepository,
	documents DocumentStore,
	events EventRecorder,
	tx TxManager,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		customers:      customers,
		vehicles:       vehicles,
		partRequests:   partRequests,
		users:          users,
		documents:      documents,
		events:         events,
		tx:             tx,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
		now:            time.Now,
	}
}

// List returns staff the whole registry, optionally filtered. A customer-role caller
// only ever sees their own record.
func (svc *service) List(
	ctx context.Context,
	actor *model.User,
	searchText string,
	customerType *model.CustomerType,
) ([]model.CustomerView, error) {
	const op string = "customer.service.List"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := model.CustomerFilter{}
	if policy.IsCustomer(actor) {
		if actor.CustomerID == nil {
			return []model.CustomerView{}, nil
		}
		f.IDs = []uuid.UUID{*actor.CustomerID}
	} else {
		f.SearchText = strings.TrimSpace(searchText)
		f.Type = customerType
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	customers, err := svc.customers.List(ctx, f)
	if err != nil {
		logger.Error(ctx, "repository list customers", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts, err := svc.vehicles.CountByCustomers(ctx, lo.Map(customers, func(c *model.Customer, _ int) uuid.UUID {
		return c.ID
	}))
	if err != nil {
		logger.Error(ctx, "repository count vehicles", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lo.Map(customers, func(c *model.Customer, _ int) model.CustomerView {
		return policy.ShapeCustomer(actor, model.CustomerView{Customer: *c, VehicleCount: counts[c.ID]})
	}), nil
}

// Get returns nil, nil when the customer does not exist.
func (svc *service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.CustomerView, error) {
	const op string = "customer.service.Get"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	c, err := svc.customers.CustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCustomerNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "repository customer by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := policy.RequireCustomerAccess(actor, c, policy.CapabilityNone); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts, err := svc.vehicles.CountByCustomers(ctx, []uuid.UUID{c.ID})
	if err != nil {
		logger.Error(ctx, "repository count vehicles", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v := policy.ShapeCustomer(actor, model.CustomerView{Customer: *c, VehicleCount: counts[c.ID]})
	return &v, nil
}

func (svc *service) Create(ctx context.Context, actor *model.User, params model.CreateCustomerParams) (uuid.UUID, error) {
	const op string = "customer.service.Create"

	if err := policy.RequireStaff(actor); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	name := strings.TrimSpace(params.DisplayName)
	if name == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, model.Invalid("display name is required"))
	}
	if !params.Type.Valid() {
		return uuid.Nil, fmt.Errorf("%s: %w", op, model.Invalid("unknown customer type %q", params.Type))
	}

	c := &model.Customer{
		Type:          params.Type,
		DisplayName:   name,
		PrivateFields: params.PrivateFields,
		CompanyFields: params.CompanyFields,
		Contacts:      params.Contacts,
		Notes:         params.Notes,
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var id uuid.UUID
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if id, err = svc.customers.Create(ctx, c); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventCustomerCreated,
			EntityType:  model.EntityCustomer,
			EntityID:    id.String(),
			Payload:     map[string]any{"displayName": name, "type": string(params.Type)},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		logger.Error(ctx, "create customer", logger.ErrorF(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (svc *service) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.CustomerUpdate) error {
	const op string = "customer.service.Update"
	log := logger.With(logger.String("customer_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		if name == "" {
			return fmt.Errorf("%s: %w", op, model.Invalid("display name cannot be blank"))
		}
		upd.DisplayName = &name
	}
	if upd.Type != nil && !upd.Type.Valid() {
		return fmt.Errorf("%s: %w", op, model.Invalid("unknown customer type %q", *upd.Type))
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := svc.customers.CustomerByID(ctx, id)
		if err != nil {
			return err
		}
		if upd.IsEmpty() {
			return nil
		}

		changed := applyUpdate(c, upd)
		if err := svc.customers.Update(ctx, c); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventCustomerUpdated,
			EntityType:  model.EntityCustomer,
			EntityID:    id.String(),
			Payload:     map[string]any{"fields": changed},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "update customer", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func applyUpdate(c *model.Customer, upd model.CustomerUpdate) []string {
	var changed []string
	if upd.Type != nil {
		c.Type = *upd.Type
		changed = append(changed, "type")
	}
	if upd.DisplayName != nil {
		c.DisplayName = *upd.DisplayName
		changed = append(changed, "displayName")
	}
	if upd.PrivateFields != nil {
		c.PrivateFields = upd.PrivateFields
		changed = append(changed, "privateFields")
	}
	if upd.CompanyFields != nil {
		c.CompanyFields = upd.CompanyFields
		changed = append(changed, "companyFields")
	}
	if upd.Contacts != nil {
		c.Contacts = *upd.Contacts
		changed = append(changed, "contacts")
	}
	if upd.Notes != nil {
		c.Notes = *upd.Notes
		changed = append(changed, "notes")
	}
	return changed
}

// SetSharing replaces the sharing block. Every shared id must be a customer-role user.
func (svc *service) SetSharing(ctx context.Context, actor *model.User, id uuid.UUID, sharing model.Sharing) error {
	const op string = "customer.service.SetSharing"
	log := logger.With(logger.String("customer_id", id.String()))

	if err := policy.RequireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sharing.SharedWithClientUserIDs = lo.Uniq(sharing.SharedWithClientUserIDs)

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := svc.customers.CustomerByID(ctx, id); err != nil {
			return err
		}

		if len(sharing.SharedWithClientUserIDs) > 0 {
			users, err := svc.users.UsersByIDs(ctx, sharing.SharedWithClientUserIDs)
			if err != nil {
				return err
			}
			clients := lo.SliceToMap(
				lo.Filter(users, func(u *model.User, _ int) bool { return u.Role == model.RoleCustomer }),
				func(u *model.User) (uuid.UUID, struct{}) { return u.ID, struct{}{} },
			)
			for _, uid := range sharing.SharedWithClientUserIDs {
				if _, ok := clients[uid]; !ok {
					return model.Invalid("user %s is not a customer-role user", uid)
				}
			}
		}

		if err := svc.customers.SetSharing(ctx, id, sharing); err != nil {
			return err
		}

		p := sharing.ClientPermissions
		return svc.events.Record(ctx, model.RecordEventParams{
			Type:       model.EventCustomerSharingUpdated,
			EntityType: model.EntityCustomer,
			EntityID:   id.String(),
			Payload: map[string]any{
				"sharedCount":      len(sharing.SharedWithClientUserIDs),
				"canViewVehicles":  p.CanViewVehicles,
				"canViewParts":     p.CanViewParts,
				"canViewDocuments": p.CanViewDocuments,
			},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "set sharing", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Remove deletes a customer with no vehicles and no part requests, then drops its blobs.
func (svc *service) Remove(ctx context.Context, actor *model.User, id uuid.UUID) error {
	const op string = "customer.service.Remove"
	log := logger.With(logger.String("customer_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var docs []model.Document
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := svc.customers.CustomerByID(ctx, id)
		if err != nil {
			return err
		}

		hasVehicles, err := svc.vehicles.ExistsForCustomer(ctx, id)
		if err != nil {
			return err
		}
		hasRequests, err := svc.partRequests.Exists(ctx, model.PartRequestFilter{CustomerID: &id})
		if err != nil {
			return err
		}
		if hasVehicles || hasRequests {
			return model.ErrCustomerInUse
		}

		if err := svc.customers.Delete(ctx, id); err != nil {
			return err
		}
		docs = c.Documents

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventCustomerDeleted,
			EntityType:  model.EntityCustomer,
			EntityID:    id.String(),
			Payload:     map[string]any{"displayName": c.DisplayName},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "remove customer", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, d := range docs {
		svc.dropBlob(ctx, d.FileID)
	}

	return nil
}

func (svc *service) AddDocument(
	ctx context.Context,
	actor *model.User,
	id uuid.UUID,
	fileName, contentType string,
	body io.Reader,
) (*model.Document, error) {
	const op string = "customer.service.AddDocument"
	log := logger.With(logger.String("customer_id", id.String()), logger.String("file_name", fileName))

	if err := policy.RequireStaff(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("file name is required"))
	}

	rctx, rcancel := context.WithTimeout(ctx, svc.readDBTimeout)
	_, err := svc.customers.CustomerByID(rctx, id)
	rcancel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info, err := svc.documents.Upload(ctx, model.UploadFileParams{Name: fileName, ContentType: contentType, Body: body})
	if err != nil {
		log.Error(ctx, "document store upload", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc := model.Document{
		FileID:     info.ID,
		FileName:   fileName,
		FileType:   contentType,
		UploadedAt: svc.now().UTC(),
		UploadedBy: actor.ID,
	}

	wctx, wcancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wcancel()

	err = svc.tx.WithinTx(wctx, func(ctx context.Context) error {
		if err := svc.customers.AddDocument(ctx, id, doc); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventCustomerDocumentAdded,
			EntityType:  model.EntityCustomer,
			EntityID:    id.String(),
			Payload:     map[string]any{"fileName": fileName, "fileId": info.ID},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "attach document", logger.ErrorF(err))
		svc.dropBlob(ctx, info.ID)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &doc, nil
}

func (svc *service) RemoveDocument(ctx context.Context, actor *model.User, id uuid.UUID, fileID string) error {
	const op string = "customer.service.RemoveDocument"
	log := logger.With(logger.String("customer_id", id.String()), logger.String("file_id", fileID))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := svc.customers.CustomerByID(ctx, id)
		if err != nil {
			return err
		}
		if !hasDocument(c, fileID) {
			return model.ErrDocumentNotFound
		}

		if err := svc.customers.RemoveDocument(ctx, id, fileID); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventCustomerDocumentRemoved,
			EntityType:  model.EntityCustomer,
			EntityID:    id.String(),
			Payload:     map[string]any{"fileId": fileID},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "remove document", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.dropBlob(ctx, fileID)
	return nil
}

// OpenDocument streams a customer's document. The caller closes the returned body.
func (svc *service) OpenDocument(ctx context.Context, actor *model.User, id uuid.UUID, fileID string) (*model.OpenedFile, error) {
	const op string = "customer.service.OpenDocument"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	c, err := svc.customers.CustomerByID(rctx, id)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := policy.RequireCustomerAccess(actor, c, policy.CapabilityDocuments); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !hasDocument(c, fileID) {
		return nil, fmt.Errorf("%s: %w", op, model.ErrDocumentNotFound)
	}

	f, err := svc.documents.Open(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

func hasDocument(c *model.Customer, fileID string) bool {
	return lo.ContainsBy(c.Documents, func(d model.Document) bool { return d.FileID == fileID })
}

func (svc *service) dropBlob(ctx context.Context, fileID string) {
	if err := svc.documents.Delete(ctx, fileID); err != nil && !errors.Is(err, model.ErrDocumentNotFound) {
		logger.Warn(ctx, "document store delete", logger.String("file_id", fileID), logger.ErrorF(err))
	}
}
