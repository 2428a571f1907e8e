package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/contratos-dashboard/internal/dashboard"
	"github.com/nurpe/contratos-dashboard/internal/gateway"
	"github.com/nurpe/contratos-dashboard/internal/model"
)

type clientPayload struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	DocumentID string `json:"documentId"`
	Notes      string `json:"notes"`
}

func clientPayloadFrom(c model.Client) clientPayload {
	return clientPayload{
		ID:         c.ID,
		Name:       c.Name,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		DocumentID: c.DocumentID,
		Notes:      c.Notes,
	}
}

func (p clientPayload) toModel() model.Client {
	return model.Client{
		Name:       strings.TrimSpace(p.Name),
		LastName:   strings.TrimSpace(p.LastName),
		Email:      strings.TrimSpace(p.Email),
		Phone:      strings.TrimSpace(p.Phone),
		Address:    strings.TrimSpace(p.Address),
		DocumentID: strings.TrimSpace(p.DocumentID),
		Notes:      p.Notes,
	}
}

type servicePayload struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description"`
}

type contractTypePayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type companyPayload struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
	Email string `json:"email"`
}

func companyPayloadFrom(c model.Company) companyPayload {
	return companyPayload{ID: c.ID, Name: c.Name, Owner: c.Owner, Email: c.Email}
}

func (p companyPayload) toModel() model.Company {
	return model.Company{
		Name:  strings.TrimSpace(p.Name),
		Owner: strings.TrimSpace(p.Owner),
		Email: strings.TrimSpace(p.Email),
	}
}

type attachedFilePayload struct {
	ID         int64  `json:"id"`
	FileName   string `json:"fileName"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

type contractResponse struct {
	ID             int64                 `json:"id"`
	Description    string                `json:"description"`
	Status         model.ContractStatus  `json:"status"`
	StatusLabel    string                `json:"statusLabel"`
	ClientID       int64                 `json:"clientId"`
	ClientName     string                `json:"clientName,omitempty"`
	ServiceID      int64                 `json:"serviceId"`
	CompanyID      int64                 `json:"companyId"`
	ContractTypeID int64                 `json:"contractTypeId"`
	OwnerCompany   string                `json:"ownerCompany,omitempty"`
	CreatedAt      string                `json:"createdAt"`
	ExpirationDate string                `json:"expirationDate"`
	Files          []attachedFilePayload `json:"files"`
}

func contractResponseFrom(c model.Contract) contractResponse {
	files := make([]attachedFilePayload, 0, len(c.Files))
	for _, f := range c.Files {
		payload := attachedFilePayload{ID: f.ID, FileName: f.FileName}
		if !f.UploadedAt.IsZero() {
			payload.UploadedAt = f.UploadedAt.Format(time.RFC3339)
		}
		files = append(files, payload)
	}

	return contractResponse{
		ID:             c.ID,
		Description:    c.Description,
		Status:         c.Status,
		StatusLabel:    c.Status.Label(),
		ClientID:       c.ClientID,
		ClientName:     c.ClientName,
		ServiceID:      c.ServiceID,
		CompanyID:      c.CompanyID,
		ContractTypeID: c.ContractTypeID,
		OwnerCompany:   c.OwnerCompany,
		CreatedAt:      formatDate(c.CreatedAt),
		ExpirationDate: formatDate(c.ExpiresAt),
		Files:          files,
	}
}

type expiringContractPayload struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	ClientName     string `json:"clientName,omitempty"`
	ExpirationDate string `json:"expirationDate"`
	DaysRemaining  int    `json:"daysRemaining"`
}

type dashboardResponse struct {
	TotalClients      int                       `json:"totalClients"`
	TotalContracts    int                       `json:"totalContracts"`
	ExpiringContracts []expiringContractPayload `json:"expiringContracts"`
}

func dashboardResponseFrom(summary dashboard.Summary) dashboardResponse {
	expiring := make([]expiringContractPayload, 0, len(summary.Expiring))
	for _, contract := range summary.Expiring {
		expiring = append(expiring, expiringContractPayload{
			ID:             contract.ID,
			Title:          contract.Title,
			ClientName:     contract.ClientName,
			ExpirationDate: formatDate(contract.ExpirationDate),
			DaysRemaining:  contract.DaysRemaining,
		})
	}
	return dashboardResponse{
		TotalClients:      summary.TotalClients,
		TotalContracts:    summary.TotalContracts,
		ExpiringContracts: expiring,
	}
}

// contractInputFromForm parses the multipart contract form the admin
// UI submits. The attachment is optional here; whether it is required
// depends on create versus update and is enforced by the service.
func contractInputFromForm(c *gin.Context) (gateway.ContractInput, error) {
	input := gateway.ContractInput{
		Description:  strings.TrimSpace(c.PostForm("description")),
		OwnerCompany: strings.TrimSpace(c.PostForm("ownerCompany")),
	}

	ids := map[string]*int64{
		"clientId":       &input.ClientID,
		"serviceId":      &input.ServiceID,
		"companyId":      &input.CompanyID,
		"contractTypeId": &input.ContractTypeID,
	}
	for field, target := range ids {
		raw := strings.TrimSpace(c.PostForm(field))
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return gateway.ContractInput{}, fmt.Errorf("invalid %s", field)
		}
		*target = parsed
	}

	created, err := parseDate(c.PostForm("createdAt"))
	if err != nil {
		return gateway.ContractInput{}, fmt.Errorf("invalid createdAt")
	}
	input.CreatedAt = created

	expires, err := parseDate(c.PostForm("expirationDate"))
	if err != nil {
		return gateway.ContractInput{}, fmt.Errorf("invalid expirationDate")
	}
	input.ExpiresAt = expires

	header, err := c.FormFile("file")
	if err == nil && header != nil {
		file, err := header.Open()
		if err != nil {
			return gateway.ContractInput{}, fmt.Errorf("failed to read attachment: %w", err)
		}
		input.Attachment = &gateway.Attachment{
			FileName: header.Filename,
			Content:  file,
		}
	}

	return input, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
