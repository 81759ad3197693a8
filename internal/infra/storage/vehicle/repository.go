package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/pgerrors"
	"github.com/m04kA/SMC-InspectionService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"center_id",
	"client_id",
	"license_plate",
	"brand",
	"model",
	"type",
	"mileage",
	"last_inspection_date",
	"last_inspection_result",
	"next_inspection_due",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий транспортных средств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ТС
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ТС центра по ID (удаленные не возвращаются)
func (r *Repository) GetByID(ctx context.Context, centerID, id int64) (*domain.Vehicle, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id, "center_id": centerID, "deleted_at": nil})
}

// FindByPlate ищет ТС центра по нормализованному госномеру
func (r *Repository) FindByPlate(ctx context.Context, centerID int64, plate string) (*domain.Vehicle, error) {
	return r.getOne(ctx, "FindByPlate", squirrel.Eq{
		"license_plate": domain.NormalizePlate(plate),
		"center_id":     centerID,
		"deleted_at":    nil,
	})
}

// Create регистрирует ТС; госномер сохраняется в нормализованном виде
func (r *Repository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	v.LicensePlate = domain.NormalizePlate(v.LicensePlate)
	if v.Type == "" {
		v.Type = domain.VehicleTypeCar
	}

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("center_id", "client_id", "license_plate", "brand", "model", "type", "mileage").
		Values(v.CenterID, v.ClientID, v.LicensePlate, v.Brand, v.Model, v.Type, v.Mileage).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePlate, v.LicensePlate)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return v, nil
}

// UpdateInspection сохраняет снимок последнего осмотра ТС
func (r *Repository) UpdateInspection(ctx context.Context, v *domain.Vehicle) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vehicles").
		Set("last_inspection_date", v.LastInspectionDate).
		Set("last_inspection_result", v.LastInspectionResult).
		Set("next_inspection_due", v.NextInspectionDue).
		Set("mileage", v.Mileage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": v.ID, "center_id": v.CenterID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateInspection - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateInspection - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateInspection - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("vehicles").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		v      domain.Vehicle
		result sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.CenterID,
		&v.ClientID,
		&v.LicensePlate,
		&v.Brand,
		&v.Model,
		&v.Type,
		&v.Mileage,
		&v.LastInspectionDate,
		&result,
		&v.NextInspectionDue,
		&v.DeletedAt,
		&v.CreatedAt,
		&v.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan vehicle: %w", ErrScanRow, op, err)
	}

	if result.Valid {
		res := domain.InspectionResult(result.String)
		v.LastInspectionResult = &res
	}

	return &v, nil
}
