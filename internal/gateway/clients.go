package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nurpe/contratos-dashboard/internal/model"
)

// clientDTO mirrors the backend's Cliente record. The backend mixes
// English and Spanish field names on this entity; the names below are
// what it actually serves.
type clientDTO struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	DocumentID string `json:"documento_Identidad"`
	Notes      string `json:"notes,omitempty"`
}

func clientFromDTO(dto clientDTO) model.Client {
	return model.Client{
		ID:         dto.ID,
		Name:       dto.Name,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Address:    dto.Address,
		DocumentID: dto.DocumentID,
		Notes:      dto.Notes,
	}
}

func clientToDTO(c model.Client) clientDTO {
	return clientDTO{
		Name:       c.Name,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		DocumentID: c.DocumentID,
		Notes:      c.Notes,
	}
}

// ListClients returns all clients in server-defined order.
func (g *Gateway) ListClients(ctx context.Context) ([]model.Client, error) {
	var dtos []clientDTO
	if err := g.doJSON(ctx, http.MethodGet, "/Cliente", nil, &dtos); err != nil {
		return nil, err
	}
	clients := make([]model.Client, 0, len(dtos))
	for _, dto := range dtos {
		clients = append(clients, clientFromDTO(dto))
	}
	return clients, nil
}

func (g *Gateway) CreateClient(ctx context.Context, client model.Client) (*model.Client, error) {
	var created clientDTO
	if err := g.doJSON(ctx, http.MethodPost, "/Cliente", clientToDTO(client), &created); err != nil {
		return nil, err
	}
	result := clientFromDTO(created)
	return &result, nil
}

func (g *Gateway) UpdateClient(ctx context.Context, id int64, client model.Client) (*model.Client, error) {
	var updated clientDTO
	path := fmt.Sprintf("/Cliente/%d", id)
	if err := g.doJSON(ctx, http.MethodPut, path, clientToDTO(client), &updated); err != nil {
		return nil, err
	}
	result := clientFromDTO(updated)
	return &result, nil
}

// DeleteClient removes a client by id. Deleting a nonexistent id
// surfaces NotFound; the backend does not silently succeed.
func (g *Gateway) DeleteClient(ctx context.Context, id int64) error {
	return g.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Cliente/%d", id), nil, nil)
}
