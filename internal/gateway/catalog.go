package gateway

import (
	"context"
	"net/http"

	"github.com/nurpe/contratos-dashboard/internal/model"
)

type serviceDTO struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"descripcion"`
}

type companyDTO struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"nombreEmpresa"`
	Owner string `json:"propetario"`
	Email string `json:"email"`
}

type contractTypeDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

func (g *Gateway) ListServices(ctx context.Context) ([]model.Service, error) {
	var dtos []serviceDTO
	if err := g.doJSON(ctx, http.MethodGet, "/Servicios", nil, &dtos); err != nil {
		return nil, err
	}
	services := make([]model.Service, 0, len(dtos))
	for _, dto := range dtos {
		services = append(services, model.Service{ID: dto.ID, Description: dto.Description})
	}
	return services, nil
}

func (g *Gateway) CreateService(ctx context.Context, description string) (*model.Service, error) {
	var created serviceDTO
	payload := serviceDTO{Description: description}
	if err := g.doJSON(ctx, http.MethodPost, "/Servicios", payload, &created); err != nil {
		return nil, err
	}
	return &model.Service{ID: created.ID, Description: created.Description}, nil
}

func (g *Gateway) ListContractTypes(ctx context.Context) ([]model.ContractType, error) {
	var dtos []contractTypeDTO
	if err := g.doJSON(ctx, http.MethodGet, "/TipoContratos", nil, &dtos); err != nil {
		return nil, err
	}
	types := make([]model.ContractType, 0, len(dtos))
	for _, dto := range dtos {
		types = append(types, model.ContractType{ID: dto.ID, Name: dto.Name})
	}
	return types, nil
}

func (g *Gateway) ListCompanies(ctx context.Context) ([]model.Company, error) {
	var dtos []companyDTO
	if err := g.doJSON(ctx, http.MethodGet, "/Empresa", nil, &dtos); err != nil {
		return nil, err
	}
	companies := make([]model.Company, 0, len(dtos))
	for _, dto := range dtos {
		companies = append(companies, model.Company{
			ID:    dto.ID,
			Name:  dto.Name,
			Owner: dto.Owner,
			Email: dto.Email,
		})
	}
	return companies, nil
}

func (g *Gateway) CreateCompany(ctx context.Context, company model.Company) (*model.Company, error) {
	var created companyDTO
	payload := companyDTO{Name: company.Name, Owner: company.Owner, Email: company.Email}
	if err := g.doJSON(ctx, http.MethodPost, "/Empresa", payload, &created); err != nil {
		return nil, err
	}
	return &model.Company{
		ID:    created.ID,
		Name:  created.Name,
		Owner: created.Owner,
		Email: created.Email,
	}, nil
}
