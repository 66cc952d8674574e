package delivery

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/repository"
	"github.com/peterPain01/SA-Microserices/internal/service/delivery"
	"github.com/peterPain01/SA-Microserices/internal/service/driver"
	"github.com/peterPain01/SA-Microserices/internal/service/matcher"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const deliveryColumns = `id, delivery_number, order_id, order_number, user_id, driver_id,
	pickup_location, delivery_location, status, priority, distance, delivery_fee,
	driver_earnings, status_history, estimated_pickup_time, estimated_delivery_time,
	actual_pickup_time, actual_delivery_time, created_at, updated_at`

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

func (r *Repository) Create(ctx context.Context, deliveryEntity *entities.Delivery) (*entities.Delivery, error) {
	pickup, err := locationFromDomain(deliveryEntity.PickupLocation)
	if err != nil {
		return nil, err
	}
	dropoff, err := locationFromDomain(deliveryEntity.DeliveryLocation)
	if err != nil {
		return nil, err
	}
	history, err := historyFromDomain(deliveryEntity.StatusHistory)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO deliveries (delivery_number, order_id, order_number, user_id,
			pickup_location, delivery_location, status, priority, distance, delivery_fee,
			driver_earnings, status_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + deliveryColumns

	deliveryDB, err := r.scanOne(r.querier.QueryRow(
		ctx,
		query,
		deliveryEntity.DeliveryNumber,
		deliveryEntity.OrderID,
		deliveryEntity.OrderNumber,
		deliveryEntity.UserID,
		pickup,
		dropoff,
		deliveryEntity.Status.String(),
		deliveryEntity.Priority.String(),
		deliveryEntity.Distance,
		deliveryEntity.DeliveryFee,
		deliveryEntity.DriverEarnings,
		history,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, delivery.ErrDeliveryAlreadyExists
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return ToDomain(deliveryDB)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE order_id = $1`
	return r.getOne(ctx, query, orderID)
}

func (r *Repository) ListByDriverID(ctx context.Context, driverID int64, limit, offset int64) ([]entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, driverID, limit, offset)
}

func (r *Repository) ListByUserID(ctx context.Context, userID, limit, offset int64) ([]entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *Repository) ListPendingUnassigned(ctx context.Context, limit int64) ([]entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries
		WHERE status = 'pending' AND driver_id IS NULL
		ORDER BY created_at
		LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *Repository) Update(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	if deliveryModify.ID == nil {
		return nil, delivery.ErrInvalidDeliveryID
	}

	builder := qb.Update("deliveries").
		Set("updated_at", sq.Expr("NOW()"))

	if deliveryModify.ClearDriver {
		builder = builder.Set("driver_id", nil)
	} else if deliveryModify.DriverID != nil {
		builder = builder.Set("driver_id", *deliveryModify.DriverID)
	}
	if deliveryModify.Status != nil {
		builder = builder.Set("status", deliveryModify.Status.String())
	}
	if deliveryModify.HistoryEntry != nil {
		entry, err := historyEntryFromDomain(*deliveryModify.HistoryEntry)
		if err != nil {
			return nil, err
		}
		builder = builder.Set("status_history", sq.Expr("status_history || ?::jsonb", entry))
	}
	if deliveryModify.EstimatedPickupTime != nil {
		builder = builder.Set("estimated_pickup_time", *deliveryModify.EstimatedPickupTime)
	}
	if deliveryModify.EstimatedDeliveryTime != nil {
		builder = builder.Set("estimated_delivery_time", *deliveryModify.EstimatedDeliveryTime)
	}
	if deliveryModify.ActualPickupTime != nil {
		builder = builder.Set("actual_pickup_time", *deliveryModify.ActualPickupTime)
	}
	if deliveryModify.ActualDeliveryTime != nil {
		builder = builder.Set("actual_delivery_time", *deliveryModify.ActualDeliveryTime)
	}

	builder = builder.Where(sq.Eq{"id": *deliveryModify.ID})
	if deliveryModify.DriverID != nil {
		// привязка водителя допустима только к свободной pending-доставке
		builder = builder.
			Where(sq.Eq{"status": entities.DeliveryPending.String()}).
			Where("driver_id IS NULL")
	}

	query, args, err := builder.
		Suffix("RETURNING " + deliveryColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delivery update query: %w", err)
	}

	deliveryDB, err := r.scanOne(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if deliveryModify.DriverID != nil {
				return nil, matcher.ErrAlreadyAssigned
			}
			return nil, delivery.ErrDeliveryNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, driver.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	return ToDomain(deliveryDB)
}

func (r *Repository) Stats(ctx context.Context) ([]entities.DeliveryStat, error) {
	query := `SELECT status, COUNT(*), COALESCE(SUM(delivery_fee), 0), COALESCE(SUM(driver_earnings), 0)
		FROM deliveries
		GROUP BY status
		ORDER BY status`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository stats error: %w", err)
	}
	defer rows.Close()

	var stats []entities.DeliveryStat
	for rows.Next() {
		var stat entities.DeliveryStat
		var status string
		if err := rows.Scan(&status, &stat.Count, &stat.TotalFee, &stat.TotalEarnings); err != nil {
			return nil, fmt.Errorf("unexpected delivery repository stats error: %w", err)
		}
		stat.Status = entities.DeliveryStatusType(status)
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery repository stats error: %w", err)
	}

	return stats, nil
}

func (r *Repository) getOne(ctx context.Context, query string, args ...interface{}) (*entities.Delivery, error) {
	deliveryDB, err := r.scanOne(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository get error: %w", err)
	}
	return ToDomain(deliveryDB)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]entities.Delivery, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	var deliveries []entities.Delivery
	for rows.Next() {
		deliveryDB, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
		}
		deliveryEntity, err := ToDomain(deliveryDB)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *deliveryEntity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	return deliveries, nil
}

func (r *Repository) scanOne(row pgx.Row) (*DeliveryDB, error) {
	return r.scanRow(row)
}

func (r *Repository) scanRow(row pgx.Row) (*DeliveryDB, error) {
	var d DeliveryDB
	err := row.Scan(
		&d.ID,
		&d.DeliveryNumber,
		&d.OrderID,
		&d.OrderNumber,
		&d.UserID,
		&d.DriverID,
		&d.PickupLocation,
		&d.DeliveryLocation,
		&d.Status,
		&d.Priority,
		&d.Distance,
		&d.DeliveryFee,
		&d.DriverEarnings,
		&d.StatusHistory,
		&d.EstimatedPickupTime,
		&d.EstimatedDeliveryTime,
		&d.ActualPickupTime,
		&d.ActualDeliveryTime,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
