package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// CRMUseCase casos de uso de clientes, empleados y vehículos del tenant.
type CRMUseCase struct {
	clients   repository.ClientRepository
	employees repository.EmployeeRepository
	vehicles  repository.VehicleRepository
	users     repository.UserRepository
	log       *logger.Logger
}

// NewCRMUseCase crea el caso de uso de CRM.
func NewCRMUseCase(
	clients repository.ClientRepository,
	employees repository.EmployeeRepository,
	vehicles repository.VehicleRepository,
	users repository.UserRepository,
	log *logger.Logger,
) *CRMUseCase {
	return &CRMUseCase{clients: clients, employees: employees, vehicles: vehicles, users: users, log: log}
}

// ─────────────────────────── Clientes ───────────────────────────

// CreateClient alta de cliente (SUPERADMIN o ADMIN del tenant).
func (uc *CRMUseCase) CreateClient(ctx context.Context, p authz.Principal, companyID string, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	decision := authz.Decide(p, authz.OpCreateClient, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if req.Name == "" {
		return nil, domain.NewValidation("name es obligatorio")
	}

	client := &entity.Client{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.clients.Create(client); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", client.ID).Str("company_id", companyID).Msg("cliente creado")
	resp := toClientResponse(client)
	return &resp, nil
}

// ListClients lista clientes del tenant.
func (uc *CRMUseCase) ListClients(ctx context.Context, p authz.Principal, companyID string) ([]dto.ClientResponse, error) {
	decision := authz.Decide(p, authz.OpListClients, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	clients, err := uc.clients.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// ─────────────────────────── Empleados ───────────────────────────

// CreateEmployee alta de ficha de empleado. El user_id debe existir y
// pertenecer al mismo tenant.
func (uc *CRMUseCase) CreateEmployee(ctx context.Context, p authz.Principal, companyID string, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	decision := authz.Decide(p, authz.OpCreateEmployee, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if req.UserID == "" {
		return nil, domain.NewValidation("user_id es obligatorio")
	}
	user, err := uc.users.FindByID(req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.NewValidation("user_id no pertenece a la empresa")
	}

	employee := &entity.Employee{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		UserID:     req.UserID,
		Position:   req.Position,
		Skills:     req.Skills,
		HourlyRate: req.HourlyRate,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.employees.Create(employee); err != nil {
		return nil, err
	}
	uc.log.Info().Str("employee_id", employee.ID).Str("company_id", companyID).Msg("empleado creado")
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// ListEmployees lista fichas de empleado del tenant.
func (uc *CRMUseCase) ListEmployees(ctx context.Context, p authz.Principal, companyID string) ([]dto.EmployeeResponse, error) {
	decision := authz.Decide(p, authz.OpListEmployees, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	employees, err := uc.employees.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// ─────────────────────────── Vehículos ───────────────────────────

// CreateVehicle alta de vehículo (admins y empleados).
func (uc *CRMUseCase) CreateVehicle(ctx context.Context, p authz.Principal, companyID string, req dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	decision := authz.Decide(p, authz.OpCreateVehicle, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if req.PlateNumber == "" {
		return nil, domain.NewValidation("plate_number es obligatorio")
	}

	vehicle := &entity.Vehicle{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		PlateNumber:   req.PlateNumber,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		VIN:           req.VIN,
		OwnerClientID: req.OwnerClientID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.vehicles.Create(vehicle); err != nil {
		return nil, err
	}
	uc.log.Info().Str("vehicle_id", vehicle.ID).Str("company_id", companyID).Msg("vehículo creado")
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

// ListVehicles lista vehículos del tenant.
func (uc *CRMUseCase) ListVehicles(ctx context.Context, p authz.Principal, companyID string) ([]dto.VehicleResponse, error) {
	decision := authz.Decide(p, authz.OpListVehicles, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	vehicles, err := uc.vehicles.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		ContactPerson: c.ContactPerson,
		CreatedAt:     c.CreatedAt,
	}
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		UserID:     e.UserID,
		Position:   e.Position,
		Skills:     e.Skills,
		HourlyRate: e.HourlyRate,
		CreatedAt:  e.CreatedAt,
	}
}

func toVehicleResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:            v.ID,
		CompanyID:     v.CompanyID,
		PlateNumber:   v.PlateNumber,
		Make:          v.Make,
		Model:         v.Model,
		Year:          v.Year,
		VIN:           v.VIN,
		OwnerClientID: v.OwnerClientID,
		CreatedAt:     v.CreatedAt,
	}
}
