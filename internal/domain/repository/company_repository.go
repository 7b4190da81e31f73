package repository

import "github.com/jhoicas/ServiOrden-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List() ([]*entity.Company, error)
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	ListByCompany(companyID string) ([]*entity.Client, error)
}

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	ListByCompany(companyID string) ([]*entity.Employee, error)
}

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	ListByCompany(companyID string) ([]*entity.Vehicle, error)
}
