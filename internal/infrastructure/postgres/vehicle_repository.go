package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un nuevo vehículo.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, company_id, plate_number, make, model, year, vin, owner_client_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.CompanyID, vehicle.PlateNumber, vehicle.Make, vehicle.Model,
		vehicle.Year, vehicle.VIN, vehicle.OwnerClientID, vehicle.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// ListByCompany lista los vehículos del tenant.
func (r *VehicleRepo) ListByCompany(companyID string) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, company_id, plate_number, make, model, year, vin, owner_client_id, created_at
		FROM vehicles WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.PlateNumber, &v.Make, &v.Model,
			&v.Year, &v.VIN, &v.OwnerClientID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
