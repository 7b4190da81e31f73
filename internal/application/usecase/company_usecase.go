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

// CompanyUseCase casos de uso de empresas/tenants.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	log       *logger.Logger
}

// NewCompanyUseCase crea el caso de uso de empresas.
func NewCompanyUseCase(companies repository.CompanyRepository, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, log: log}
}

func validIndustry(s string) bool {
	switch s {
	case entity.IndustryFurniture, entity.IndustryAutomotive, entity.IndustryTechnicalSolutions:
		return true
	}
	return false
}

// Create registra una empresa nueva (solo SUPERADMIN).
func (uc *CompanyUseCase) Create(ctx context.Context, p authz.Principal, req dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	decision := authz.Decide(p, authz.OpCreateCompany, authz.Resource{})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if req.Name == "" {
		return nil, domain.NewValidation("name es obligatorio")
	}
	if !validIndustry(req.Industry) {
		return nil, domain.NewValidation("industria desconocida: " + req.Industry)
	}

	company := &entity.Company{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Industry:     req.Industry,
		Description:  req.Description,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.companies.Create(company); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", company.ID).Str("industry", company.Industry).Msg("empresa creada")
	resp := toCompanyResponse(company)
	return &resp, nil
}

// List lista empresas. SUPERADMIN ve todas; el resto solo la suya.
func (uc *CompanyUseCase) List(ctx context.Context, p authz.Principal) ([]dto.CompanyResponse, error) {
	if p.Role != authz.RoleSuperAdmin {
		company, err := uc.companies.GetByID(p.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return []dto.CompanyResponse{}, nil
		}
		return []dto.CompanyResponse{toCompanyResponse(company)}, nil
	}

	companies, err := uc.companies.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// Get lee una empresa. Fuera del tenant, 404.
func (uc *CompanyUseCase) Get(ctx context.Context, p authz.Principal, id string) (*dto.CompanyResponse, error) {
	decision := authz.Decide(p, authz.OpReadCompany, authz.Resource{CompanyID: id})
	if !decision.Allowed() {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Industry:     c.Industry,
		Description:  c.Description,
		Address:      c.Address,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		CreatedAt:    c.CreatedAt,
	}
}
