package driver

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/repository"
	"github.com/peterPain01/SA-Microserices/internal/service/driver"
	"github.com/peterPain01/SA-Microserices/internal/service/matcher"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const driverColumns = `id, name, phone, email, vehicle, longitude, latitude, status, rating,
	total_deliveries, total_earnings, is_active, last_active, current_delivery,
	created_at, updated_at`

// расстояние по большому кругу в метрах, радиус Земли 6371 км
const haversineExpr = `6371000 * 2 * ASIN(SQRT(
		POWER(SIN(RADIANS(latitude - $2) / 2), 2) +
		COS(RADIANS($2)) * COS(RADIANS(latitude)) *
		POWER(SIN(RADIANS(longitude - $1) / 2), 2)))`

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, driverModify entities.DriverModify) (int64, error) {
	vehicle, err := vehicleFromDomain(fromPtr(driverModify.Vehicle))
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO drivers (name, phone, email, vehicle, longitude, latitude, status)
		VALUES ($1, $2, $3, $4, COALESCE($5, 0), COALESCE($6, 0), $7)
		RETURNING id`

	status := entities.DefaultDriverStatus
	if driverModify.Status != nil {
		status = *driverModify.Status
	}

	var id int64
	err = r.querier.QueryRow(
		ctx,
		query,
		driverModify.Name,
		driverModify.Phone,
		driverModify.Email,
		vehicle,
		driverModify.Longitude,
		driverModify.Latitude,
		status.String(),
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, driver.ErrConflict
		}
		return 0, fmt.Errorf("unexpected driver repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error) {
	builder := qb.Update("drivers")

	// опциональные поля
	if driverModify.Name != nil {
		builder = builder.Set("name", *driverModify.Name)
	}
	if driverModify.Phone != nil {
		builder = builder.Set("phone", *driverModify.Phone)
	}
	if driverModify.Email != nil {
		builder = builder.Set("email", *driverModify.Email)
	}
	if driverModify.Vehicle != nil {
		vehicle, err := vehicleFromDomain(*driverModify.Vehicle)
		if err != nil {
			return nil, err
		}
		builder = builder.Set("vehicle", vehicle)
	}
	if driverModify.Longitude != nil && driverModify.Latitude != nil {
		builder = builder.
			Set("longitude", *driverModify.Longitude).
			Set("latitude", *driverModify.Latitude).
			Set("last_active", sq.Expr("NOW()"))
	}
	if driverModify.Status != nil {
		builder = builder.Set("status", driverModify.Status.String())
	}
	if driverModify.Rating != nil {
		builder = builder.Set("rating", *driverModify.Rating)
	}
	if driverModify.IsActive != nil {
		builder = builder.Set("is_active", *driverModify.IsActive)
	}
	if driverModify.ClearCurrentDelivery {
		builder = builder.Set("current_delivery", nil)
	} else if driverModify.CurrentDelivery != nil {
		current, err := currentDeliveryFromDomain(*driverModify.CurrentDelivery)
		if err != nil {
			return nil, err
		}
		builder = builder.Set("current_delivery", current)
	}
	if driverModify.AddDeliveries != 0 {
		builder = builder.Set("total_deliveries", sq.Expr("total_deliveries + ?", driverModify.AddDeliveries))
	}
	if driverModify.AddEarnings != 0 {
		builder = builder.Set("total_earnings", sq.Expr("total_earnings + ?", driverModify.AddEarnings))
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	query, args, err := builder.
		Where(sq.Eq{"id": driverModify.ID}).
		Suffix("RETURNING " + driverColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository update error: %w", err)
	}

	driverDB, err := r.scanRow(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrDriverNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, driver.ErrConflict
		}
		return nil, fmt.Errorf("unexpected driver repository update error: %w", err)
	}

	return ToDomain(driverDB)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driverDB, err := r.scanRow(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected driver repository get error: %w", err)
	}

	return ToDomain(driverDB)
}

func (r *Repository) GetAll(ctx context.Context, status *entities.DriverStatusType) ([]entities.Driver, error) {
	builder := qb.
		Select(driverColumns).
		From("drivers").
		OrderBy("id")

	if status != nil {
		builder = builder.Where(sq.Eq{"status": status.String()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository get all error: %w", err)
	}

	return r.list(ctx, query, args...)
}

// FindAvailableNear отдает активных свободных водителей в радиусе
// radiusMeters от точки, лучшие первыми.
func (r *Repository) FindAvailableNear(ctx context.Context, longitude, latitude, radiusMeters float64) ([]entities.Driver, error) {
	query := `SELECT ` + driverColumns + `
		FROM drivers
		WHERE status = 'available' AND is_active
			AND ` + haversineExpr + ` <= $3
		ORDER BY rating DESC, total_deliveries DESC`

	drivers, err := r.list(ctx, query, longitude, latitude, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository find available error: %w", err)
	}
	return drivers, nil
}

// Bind атомарно занимает водителя под доставку. Условие status = 'available'
// защищает от гонки двух назначений.
func (r *Repository) Bind(ctx context.Context, driverID int64, currentDelivery entities.CurrentDelivery) (*entities.Driver, error) {
	current, err := currentDeliveryFromDomain(currentDelivery)
	if err != nil {
		return nil, err
	}

	query := `UPDATE drivers
		SET status = 'on_delivery', current_delivery = $2, last_active = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'available'
		RETURNING ` + driverColumns

	driverDB, err := r.scanRow(r.querier.QueryRow(ctx, query, driverID, current))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, matcher.ErrDriverTaken
		}
		return nil, fmt.Errorf("unexpected driver repository bind error: %w", err)
	}

	return ToDomain(driverDB)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]entities.Driver, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []entities.Driver
	for rows.Next() {
		driverDB, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		driverEntity, err := ToDomain(driverDB)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, *driverEntity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (r *Repository) scanRow(row pgx.Row) (*DriverDB, error) {
	var d DriverDB
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.Email,
		&d.Vehicle,
		&d.Longitude,
		&d.Latitude,
		&d.Status,
		&d.Rating,
		&d.TotalDeliveries,
		&d.TotalEarnings,
		&d.IsActive,
		&d.LastActive,
		&d.CurrentDelivery,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func fromPtr(vehicle *entities.Vehicle) entities.Vehicle {
	if vehicle == nil {
		return entities.Vehicle{}
	}
	return *vehicle
}
