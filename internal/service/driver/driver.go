package driver

import (
	"context"
	"fmt"

	"github.com/peterPain01/SA-Microserices/internal/entities"
)

type Driver struct {
	repository Repository
	txManager  TxManager
}

func New(repository Repository, txManager TxManager) *Driver {
	return &Driver{
		repository: repository,
		txManager:  txManager,
	}
}

func (s *Driver) RegisterDriver(ctx context.Context, driverModify entities.DriverModify) (int64, error) {
	if driverModify.Name == nil ||
		driverModify.Phone == nil ||
		driverModify.Email == nil ||
		driverModify.Vehicle == nil {
		return 0, ErrMissingRequiredFields
	}

	if !isValidName(*driverModify.Name) {
		return 0, ErrInvalidName
	}
	if !isValidPhone(*driverModify.Phone) {
		return 0, ErrInvalidPhone
	}
	if !isValidEmail(*driverModify.Email) {
		return 0, ErrInvalidEmail
	}
	if !isValidVehicle(driverModify.Vehicle.Type.String()) {
		return 0, ErrInvalidVehicle
	}
	if driverModify.Longitude != nil && driverModify.Latitude != nil &&
		!isValidCoordinates(*driverModify.Longitude, *driverModify.Latitude) {
		return 0, ErrInvalidLocation
	}

	id, err := s.repository.Create(ctx, driverModify)
	if err != nil {
		return 0, fmt.Errorf("create driver: %w", err)
	}

	return id, nil
}

func (s *Driver) UpdateDriver(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error) {
	if driverModify.ID == nil || *driverModify.ID <= 0 {
		return nil, ErrInvalidDriverID
	}
	if driverModify.Name == nil &&
		driverModify.Phone == nil &&
		driverModify.Email == nil &&
		driverModify.Vehicle == nil &&
		driverModify.Status == nil &&
		driverModify.IsActive == nil &&
		driverModify.CurrentDelivery == nil &&
		!driverModify.ClearCurrentDelivery &&
		driverModify.AddDeliveries == 0 &&
		driverModify.AddEarnings == 0 {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}

	if driverModify.Name != nil && !isValidName(*driverModify.Name) {
		return nil, ErrInvalidName
	}
	if driverModify.Phone != nil && !isValidPhone(*driverModify.Phone) {
		return nil, ErrInvalidPhone
	}
	if driverModify.Email != nil && !isValidEmail(*driverModify.Email) {
		return nil, ErrInvalidEmail
	}
	if driverModify.Vehicle != nil && !isValidVehicle(driverModify.Vehicle.Type.String()) {
		return nil, ErrInvalidVehicle
	}
	if driverModify.Status != nil && !driverModify.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	driver, err := s.repository.Update(ctx, driverModify)
	if err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}
	return driver, nil
}

// UpdateDriverStatus переводит водителя вручную. Уйти в available или
// offline с активной доставкой на руках нельзя: сперва доставка
// завершается или снимается.
func (s *Driver) UpdateDriverStatus(ctx context.Context, id int64, status entities.DriverStatusType) (*entities.Driver, error) {
	if id <= 0 {
		return nil, ErrInvalidDriverID
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var updated *entities.Driver

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get driver: %w", err)
		}

		if current.CurrentDelivery != nil && status != entities.DriverOnDelivery {
			return fmt.Errorf("driver %d: %w", id, ErrDriverOnDelivery)
		}

		updated, err = s.repository.Update(ctx, entities.DriverModify{
			ID:     &id,
			Status: &status,
		})
		if err != nil {
			return fmt.Errorf("update driver status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Driver) UpdateDriverLocation(ctx context.Context, id int64, longitude, latitude float64) (*entities.Driver, error) {
	if id <= 0 {
		return nil, ErrInvalidDriverID
	}
	if !isValidCoordinates(longitude, latitude) {
		return nil, ErrInvalidLocation
	}

	driver, err := s.repository.Update(ctx, entities.DriverModify{
		ID:        &id,
		Longitude: &longitude,
		Latitude:  &latitude,
	})
	if err != nil {
		return nil, fmt.Errorf("update driver location: %w", err)
	}
	return driver, nil
}

func (s *Driver) GetDriver(ctx context.Context, id int64) (*entities.Driver, error) {
	if id <= 0 {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return driver, nil
}

func (s *Driver) GetDrivers(ctx context.Context, status *entities.DriverStatusType) ([]entities.Driver, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *status)
	}

	drivers, err := s.repository.GetAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get drivers: %w", err)
	}

	return drivers, nil
}
