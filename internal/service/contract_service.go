package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nurpe/contratos-dashboard/internal/config"
	"github.com/nurpe/contratos-dashboard/internal/dashboard"
	"github.com/nurpe/contratos-dashboard/internal/gateway"
	"github.com/nurpe/contratos-dashboard/internal/model"
	"github.com/nurpe/contratos-dashboard/internal/status"
)

// ExpiringPDFGenerator renders the expiring-contracts report.
type ExpiringPDFGenerator interface {
	Generate(summary dashboard.Summary, generatedAt time.Time, windowDays int) ([]byte, error)
}

// RegisterExcelGenerator renders the full contract register workbook.
type RegisterExcelGenerator interface {
	Generate(contracts []model.Contract, generatedAt time.Time) ([]byte, error)
}

// ContractService orchestrates validation, gateway calls, and status
// derivation for every user-facing operation.
type ContractService struct {
	gw                *gateway.Gateway
	pdf               ExpiringPDFGenerator
	excel             RegisterExcelGenerator
	warningWindowDays int
	now               func() time.Time
	log               zerolog.Logger
}

func NewContractService(gw *gateway.Gateway, pdf ExpiringPDFGenerator, excel RegisterExcelGenerator, cfg *config.Config, log zerolog.Logger) *ContractService {
	return &ContractService{
		gw:                gw,
		pdf:               pdf,
		excel:             excel,
		warningWindowDays: cfg.Contracts.WarningWindowDays,
		now:               time.Now,
		log:               log,
	}
}

// WithClock replaces the time source, for tests.
func (s *ContractService) WithClock(now func() time.Time) *ContractService {
	s.now = now
	return s
}

// LoadDashboard fetches clients and contracts in parallel and derives
// the summary. Either fetch failing fails the load.
func (s *ContractService) LoadDashboard(ctx context.Context) (*dashboard.Summary, error) {
	var (
		clients   []model.Client
		contracts []model.Contract
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		clients, err = s.gw.ListClients(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		contracts, err = s.gw.ListContracts(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary := dashboard.Compute(clients, contracts, s.now(), s.warningWindowDays)
	return &summary, nil
}

func (s *ContractService) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.gw.ListClients(ctx)
}

func (s *ContractService) CreateClient(ctx context.Context, client model.Client) (*model.Client, error) {
	if err := validateClient(client); err != nil {
		return nil, err
	}
	return s.gw.CreateClient(ctx, client)
}

func (s *ContractService) UpdateClient(ctx context.Context, id int64, client model.Client) (*model.Client, error) {
	if err := validateClient(client); err != nil {
		return nil, err
	}
	return s.gw.UpdateClient(ctx, id, client)
}

func (s *ContractService) DeleteClient(ctx context.Context, id int64) error {
	return s.gw.DeleteClient(ctx, id)
}

// ListContracts returns all contracts with status recomputed from
// dates, so a stored status that drifted never reaches a caller.
func (s *ContractService) ListContracts(ctx context.Context) ([]model.Contract, error) {
	contracts, err := s.gw.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range contracts {
		contracts[i].Status = status.ForContract(contracts[i], now, s.warningWindowDays)
	}
	return contracts, nil
}

func (s *ContractService) GetContract(ctx context.Context, id int64) (*model.Contract, error) {
	contract, err := s.gw.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.Status = status.ForContract(*contract, s.now(), s.warningWindowDays)
	return contract, nil
}

func (s *ContractService) CreateContract(ctx context.Context, input gateway.ContractInput) (*model.Contract, error) {
	if err := validateContract(input, true); err != nil {
		return nil, err
	}
	input.Status = status.Classify(input.ExpiresAt, s.now(), s.warningWindowDays)
	return s.gw.CreateContract(ctx, input)
}

func (s *ContractService) UpdateContract(ctx context.Context, id int64, input gateway.ContractInput) (*model.Contract, error) {
	if err := validateContract(input, false); err != nil {
		return nil, err
	}
	input.Status = status.Classify(input.ExpiresAt, s.now(), s.warningWindowDays)
	return s.gw.UpdateContract(ctx, id, input)
}

func (s *ContractService) DeleteContract(ctx context.Context, id int64) error {
	return s.gw.DeleteContract(ctx, id)
}

func (s *ContractService) ListServices(ctx context.Context) ([]model.Service, error) {
	return s.gw.ListServices(ctx)
}

func (s *ContractService) CreateService(ctx context.Context, description string) (*model.Service, error) {
	if description == "" {
		return nil, &ValidationError{Fields: map[string]string{"description": "description is required"}}
	}
	return s.gw.CreateService(ctx, description)
}

func (s *ContractService) ListContractTypes(ctx context.Context) ([]model.ContractType, error) {
	return s.gw.ListContractTypes(ctx)
}

func (s *ContractService) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return s.gw.ListCompanies(ctx)
}

func (s *ContractService) CreateCompany(ctx context.Context, company model.Company) (*model.Company, error) {
	fields := map[string]string{}
	if company.Name == "" {
		fields["name"] = "company name is required"
	}
	if company.Owner == "" {
		fields["owner"] = "owner name is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return s.gw.CreateCompany(ctx, company)
}

// FetchFile proxies one attachment fetch through the gateway.
func (s *ContractService) FetchFile(ctx context.Context, fileID int64) (*gateway.FileDownload, error) {
	return s.gw.FetchFile(ctx, fileID)
}

func validateClient(client model.Client) error {
	fields := map[string]string{}
	if client.Name == "" {
		fields["name"] = "name is required"
	}
	if client.Email == "" {
		fields["email"] = "email is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateContract(input gateway.ContractInput, requireAttachment bool) error {
	fields := map[string]string{}
	if input.Description == "" {
		fields["description"] = "description is required"
	}
	if input.ClientID == 0 {
		fields["clientId"] = "client is required"
	}
	if input.CompanyID == 0 {
		fields["companyId"] = "company is required"
	}
	if input.ContractTypeID == 0 {
		fields["contractTypeId"] = "contract type is required"
	}
	if requireAttachment && input.Attachment == nil {
		fields["file"] = "a contract file must be attached"
	}
	if !input.ExpiresAt.IsZero() && !input.CreatedAt.IsZero() && !input.ExpiresAt.After(input.CreatedAt) {
		fields["expirationDate"] = "expiration date must be after creation date"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
