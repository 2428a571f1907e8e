package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/nurpe/contratos-dashboard/internal/model"
)

// wireStatus absorbs the backend's two representations of "estado":
// some endpoints send a numeric code, others a Spanish label.
type wireStatus struct {
	raw string
}

func (w *wireStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		w.raw = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		w.raw = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		w.raw = n.String()
		return nil
	}
	return fmt.Errorf("unrecognized estado value %s", string(data))
}

type attachedFileDTO struct {
	ID         int64  `json:"id"`
	FileName   string `json:"nombreArchivo"`
	UploadedAt string `json:"fechaSubida"`
}

type contractDTO struct {
	ID             int64             `json:"id"`
	Description    string            `json:"descripcion"`
	Status         wireStatus        `json:"estado"`
	ClientID       int64             `json:"clienteId"`
	ClientName     string            `json:"clienteNombre"`
	ServiceID      int64             `json:"serviciosId"`
	CompanyID      int64             `json:"empresaId"`
	ContractTypeID int64             `json:"tipoContratoId"`
	OwnerCompany   string            `json:"empresaPropietario"`
	CreatedAt      string            `json:"creado"`
	ExpiresAt      string            `json:"vencimiento"`
	Files          []attachedFileDTO `json:"archivos"`
}

func contractFromDTO(dto contractDTO) (model.Contract, error) {
	created, err := parseWireDate(dto.CreatedAt)
	if err != nil {
		return model.Contract{}, fmt.Errorf("contract %d: creado: %w", dto.ID, err)
	}
	expires, err := parseWireDate(dto.ExpiresAt)
	if err != nil {
		return model.Contract{}, fmt.Errorf("contract %d: vencimiento: %w", dto.ID, err)
	}

	status, _ := model.ParseStatus(dto.Status.raw)

	files := make([]model.AttachedFile, 0, len(dto.Files))
	for _, f := range dto.Files {
		uploaded, _ := parseWireDate(f.UploadedAt)
		files = append(files, model.AttachedFile{
			ID:         f.ID,
			FileName:   f.FileName,
			UploadedAt: uploaded,
		})
	}

	return model.Contract{
		ID:             dto.ID,
		Description:    dto.Description,
		Status:         status,
		ClientID:       dto.ClientID,
		ClientName:     dto.ClientName,
		ServiceID:      dto.ServiceID,
		CompanyID:      dto.CompanyID,
		ContractTypeID: dto.ContractTypeID,
		OwnerCompany:   dto.OwnerCompany,
		CreatedAt:      created,
		ExpiresAt:      expires,
		Files:          files,
	}, nil
}

// Attachment is a PDF carried with a contract create or update.
type Attachment struct {
	FileName string
	Content  io.Reader
}

// ContractInput is the validated payload for contract writes. The
// attachment is mandatory on create and optional on update, enforced
// by the service layer before any network call.
type ContractInput struct {
	Description    string
	Status         model.ContractStatus
	ClientID       int64
	ServiceID      int64
	CompanyID      int64
	ContractTypeID int64
	OwnerCompany   string
	CreatedAt      time.Time
	ExpiresAt      time.Time
	Attachment     *Attachment
}

// encodeContractForm writes the multipart body the backend expects on
// contract writes. Field names are the backend's wire names.
func encodeContractForm(input ContractInput) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"descripcion":        input.Description,
		"estado":             model.StatusCode(input.Status),
		"clienteId":          strconv.FormatInt(input.ClientID, 10),
		"serviciosId":        strconv.FormatInt(input.ServiceID, 10),
		"empresaId":          strconv.FormatInt(input.CompanyID, 10),
		"tipoContratoId":     strconv.FormatInt(input.ContractTypeID, 10),
		"empresaPropietario": input.OwnerCompany,
		"creado":             formatWireDate(input.CreatedAt),
		"vencimiento":        formatWireDate(input.ExpiresAt),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if input.Attachment != nil {
		part, err := writer.CreateFormFile("file", input.Attachment.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, input.Attachment.Content); err != nil {
			return nil, "", fmt.Errorf("failed to copy attachment: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// ListContracts returns all contracts in server-defined order.
func (g *Gateway) ListContracts(ctx context.Context) ([]model.Contract, error) {
	var dtos []contractDTO
	if err := g.doJSON(ctx, http.MethodGet, "/Contrato", nil, &dtos); err != nil {
		return nil, err
	}
	contracts := make([]model.Contract, 0, len(dtos))
	for _, dto := range dtos {
		contract, err := contractFromDTO(dto)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, nil
}

func (g *Gateway) GetContract(ctx context.Context, id int64) (*model.Contract, error) {
	var dto contractDTO
	if err := g.doJSON(ctx, http.MethodGet, fmt.Sprintf("/Contrato/%d", id), nil, &dto); err != nil {
		return nil, err
	}
	contract, err := contractFromDTO(dto)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (g *Gateway) CreateContract(ctx context.Context, input ContractInput) (*model.Contract, error) {
	return g.writeContract(ctx, http.MethodPost, "/Contrato/create", input)
}

// UpdateContract replaces the full contract record. The id travels as
// a path parameter only, never in the body.
func (g *Gateway) UpdateContract(ctx context.Context, id int64, input ContractInput) (*model.Contract, error) {
	return g.writeContract(ctx, http.MethodPut, fmt.Sprintf("/Contrato/%d", id), input)
}

func (g *Gateway) writeContract(ctx context.Context, method, path string, input ContractInput) (*model.Contract, error) {
	body, contentType, err := encodeContractForm(input)
	if err != nil {
		return nil, err
	}

	resp, err := g.do(ctx, method, path, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var dto contractDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	contract, err := contractFromDTO(dto)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (g *Gateway) DeleteContract(ctx context.Context, id int64) error {
	return g.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Contrato/%d", id), nil, nil)
}
