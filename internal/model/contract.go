package model

import (
	"fmt"
	"time"
)

type ContractStatus string

const (
	StatusUnknown      ContractStatus = ""
	StatusActive       ContractStatus = "ACTIVE"
	StatusExpiringSoon ContractStatus = "EXPIRING_SOON"
	StatusExpired      ContractStatus = "EXPIRED"
)

// Label returns the display label used by the admin UI.
func (s ContractStatus) Label() string {
	switch s {
	case StatusActive:
		return "Activo"
	case StatusExpiringSoon:
		return "Por vencer"
	case StatusExpired:
		return "Vencido"
	default:
		return "Desconocido"
	}
}

type Contract struct {
	ID             int64
	Description    string
	Status         ContractStatus
	ClientID       int64
	ClientName     string
	ServiceID      int64
	CompanyID      int64
	ContractTypeID int64
	OwnerCompany   string
	CreatedAt      time.Time
	ExpiresAt      time.Time
	Files          []AttachedFile
}

// Title is the display name of a contract, falling back to the id when
// the description is empty.
func (c Contract) Title() string {
	if c.Description != "" {
		return c.Description
	}
	return fmt.Sprintf("Contract #%d", c.ID)
}

type AttachedFile struct {
	ID         int64
	FileName   string
	UploadedAt time.Time
}
