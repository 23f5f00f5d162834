package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/platform/logger"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *model.Vehicle) (uuid.UUID, error)
	VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	SetRegistrationDoc(ctx context.Context, id uuid.UUID, d *model.RegistrationDoc) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CustomerRepository interface {
	CustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

type PartRequestRepository interface {
	Exists(ctx context.Context, f model.PartRequestFilter) (bool, error)
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
	vehicles       VehicleRepository
	customers      CustomerRepository
	partRequests   PartRequestRepository
	documents      DocumentStore
	events         EventRecorder
	tx             TxManager
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
	now            func() time.Time
}

func NewVehicleService(
	vehicles VehicleRepository,
	customers CustomerRepository,
	partRequests PartRequestRepository,
	documents DocumentStore,
	events EventRecorder,
	tx TxManager,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		vehicles:       vehicles,
		customers:      customers,
		partRequests:   partRequests,
		documents:      documents,
		events:         events,
		tx:             tx,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
		now:            time.Now,
	}
}

func (svc *service) ListByCustomer(ctx context.Context, actor *model.User, customerID uuid.UUID) ([]*model.Vehicle, error) {
	const op string = "vehicle.service.ListByCustomer"

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	if err := svc.checkAccess(ctx, actor, customerID, policy.CapabilityVehicles); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	vehicles, err := svc.vehicles.ListByCustomer(ctx, customerID)
	if err != nil {
		logger.Error(ctx, "repository list vehicles", logger.String("customer_id", customerID.String()), logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return vehicles, nil
}

// Get returns nil, nil when the vehicle does not exist.
func (svc *service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Vehicle, error) {
	const op string = "vehicle.service.Get"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	v, err := svc.vehicles.VehicleByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrVehicleNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.checkAccess(ctx, actor, v.CustomerID, policy.CapabilityVehicles); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

func (svc *service) Create(ctx context.Context, actor *model.User, params model.CreateVehicleParams) (uuid.UUID, error) {
	const op string = "vehicle.service.Create"

	if err := policy.RequireStaff(actor); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	plate := model.NormalizePlate(params.Plate)
	if plate == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, model.Invalid("plate is required"))
	}

	v := &model.Vehicle{
		CustomerID: params.CustomerID,
		Plate:      plate,
		Make:       strings.TrimSpace(params.Make),
		Model:      strings.TrimSpace(params.Model),
		Year:       params.Year,
		VIN:        params.VIN,
		FuelType:   params.FuelType,
		Km:         params.Km,
		Tires:      params.Tires,
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var id uuid.UUID
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := svc.customers.CustomerByID(ctx, params.CustomerID); err != nil {
			return err
		}

		var err error
		if id, err = svc.vehicles.Create(ctx, v); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventVehicleCreated,
			EntityType:  model.EntityVehicle,
			EntityID:    id.String(),
			Payload:     map[string]any{"plate": plate, "customerId": params.CustomerID.String()},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		logger.Error(ctx, "create vehicle", logger.String("plate", plate), logger.ErrorF(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (svc *service) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.VehicleUpdate) error {
	const op string = "vehicle.service.Update"
	log := logger.With(logger.String("vehicle_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if upd.Plate != nil {
		plate := model.NormalizePlate(*upd.Plate)
		if plate == "" {
			return fmt.Errorf("%s: %w", op, model.Invalid("plate cannot be blank"))
		}
		upd.Plate = &plate
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		v, err := svc.vehicles.VehicleByID(ctx, id)
		if err != nil {
			return err
		}
		if upd.IsEmpty() {
			return nil
		}

		changed := applyUpdate(v, upd)
		if err := svc.vehicles.Update(ctx, v); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventVehicleUpdated,
			EntityType:  model.EntityVehicle,
			EntityID:    id.String(),
			Payload:     map[string]any{"fields": changed, "plate": v.Plate},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "update vehicle", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func applyUpdate(v *model.Vehicle, upd model.VehicleUpdate) []string {
	var changed []string
	if upd.Plate != nil {
		v.Plate = *upd.Plate
		changed = append(changed, "plate")
	}
	if upd.Make != nil {
		v.Make = strings.TrimSpace(*upd.Make)
		changed = append(changed, "make")
	}
	if upd.Model != nil {
		v.Model = strings.TrimSpace(*upd.Model)
		changed = append(changed, "model")
	}
	if upd.Year != nil {
		v.Year = upd.Year
		changed = append(changed, "year")
	}
	if upd.VIN != nil {
		v.VIN = upd.VIN
		changed = append(changed, "vin")
	}
	if upd.FuelType != nil {
		v.FuelType = upd.FuelType
		changed = append(changed, "fuelType")
	}
	if upd.Km != nil {
		v.Km = upd.Km
		changed = append(changed, "km")
	}
	if upd.Tires != nil {
		v.Tires = upd.Tires
		changed = append(changed, "tires")
	}
	return changed
}

func (svc *service) Remove(ctx context.Context, actor *model.User, id uuid.UUID) error {
	const op string = "vehicle.service.Remove"
	log := logger.With(logger.String("vehicle_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var doc *model.RegistrationDoc
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		v, err := svc.vehicles.VehicleByID(ctx, id)
		if err != nil {
			return err
		}

		used, err := svc.partRequests.Exists(ctx, model.PartRequestFilter{VehicleID: &id})
		if err != nil {
			return err
		}
		if used {
			return model.ErrVehicleInUse
		}

		if err := svc.vehicles.Delete(ctx, id); err != nil {
			return err
		}
		doc = v.RegistrationDoc

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventVehicleDeleted,
			EntityType:  model.EntityVehicle,
			EntityID:    id.String(),
			Payload:     map[string]any{"plate": v.Plate},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "remove vehicle", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if doc != nil {
		svc.dropBlob(ctx, doc.FileID)
	}

	return nil
}

// UploadRegistrationDoc stores a new registration document and drops the one it replaces.
func (svc *service) UploadRegistrationDoc(
	ctx context.Context,
	actor *model.User,
	id uuid.UUID,
	fileName, contentType string,
	body io.Reader,
) (*model.RegistrationDoc, error) {
	const op string = "vehicle.service.UploadRegistrationDoc"
	log := logger.With(logger.String("vehicle_id", id.String()), logger.String("file_name", fileName))

	if err := policy.RequireStaff(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("file name is required"))
	}

	rctx, rcancel := context.WithTimeout(ctx, svc.readDBTimeout)
	_, err := svc.vehicles.VehicleByID(rctx, id)
	rcancel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info, err := svc.documents.Upload(ctx, model.UploadFileParams{Name: fileName, ContentType: contentType, Body: body})
	if err != nil {
		log.Error(ctx, "document store upload", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc := &model.RegistrationDoc{
		FileID:      info.ID,
		FileName:    fileName,
		ContentType: contentType,
		UploadedAt:  svc.now().UTC(),
	}

	wctx, wcancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wcancel()

	var previous *model.RegistrationDoc
	err = svc.tx.WithinTx(wctx, func(ctx context.Context) error {
		v, err := svc.vehicles.VehicleByID(ctx, id)
		if err != nil {
			return err
		}
		previous = v.RegistrationDoc

		if err := svc.vehicles.SetRegistrationDoc(ctx, id, doc); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventVehicleDocUploaded,
			EntityType:  model.EntityVehicle,
			EntityID:    id.String(),
			Payload:     map[string]any{"fileName": fileName, "fileId": info.ID},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "attach registration doc", logger.ErrorF(err))
		svc.dropBlob(ctx, info.ID)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if previous != nil && previous.FileID != info.ID {
		svc.dropBlob(ctx, previous.FileID)
	}

	return doc, nil
}

// OpenRegistrationDoc streams the registration document. The caller closes the body.
func (svc *service) OpenRegistrationDoc(ctx context.Context, actor *model.User, id uuid.UUID) (*model.OpenedFile, error) {
	const op string = "vehicle.service.OpenRegistrationDoc"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	v, err := svc.vehicles.VehicleByID(rctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := svc.checkAccess(rctx, actor, v.CustomerID, policy.CapabilityDocuments); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if v.RegistrationDoc == nil {
		return nil, fmt.Errorf("%s: %w", op, model.ErrDocumentNotFound)
	}

	f, err := svc.documents.Open(ctx, v.RegistrationDoc.FileID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

// checkAccess only loads the customer when the caller is customer-role.
func (svc *service) checkAccess(ctx context.Context, actor *model.User, customerID uuid.UUID, c policy.Capability) error {
	if err := policy.RequireActor(actor); err != nil {
		return err
	}
	if !policy.IsCustomer(actor) {
		return nil
	}

	customer, err := svc.customers.CustomerByID(ctx, customerID)
	if err != nil && !errors.Is(err, model.ErrCustomerNotFound) {
		return err
	}

	return policy.RequireCustomerAccess(actor, customer, c)
}

func (svc *service) dropBlob(ctx context.Context, fileID string) {
	if err := svc.documents.Delete(ctx, fileID); err != nil && !errors.Is(err, model.ErrDocumentNotFound) {
		logger.Warn(ctx, "document store delete", logger.String("file_id", fileID), logger.ErrorF(err))
	}
}
