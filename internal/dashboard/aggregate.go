// Package dashboard computes the summary shown on the admin landing
// page from collections already fetched through the gateway.
package dashboard

import (
	"sort"
	"time"

	"github.com/nurpe/contratos-dashboard/internal/model"
	"github.com/nurpe/contratos-dashboard/internal/status"
)

type ExpiringContract struct {
	ID             int64
	Title          string
	ClientName     string
	ExpirationDate time.Time
	DaysRemaining  int
}

type Summary struct {
	TotalClients   int
	TotalContracts int
	Expiring       []ExpiringContract
}

// Compute builds the dashboard summary. Input slices are never
// mutated. The expiring list holds contracts classified ExpiringSoon,
// most urgent first.
func Compute(clients []model.Client, contracts []model.Contract, now time.Time, warningWindowDays int) Summary {
	expiring := make([]ExpiringContract, 0)
	for _, contract := range contracts {
		if status.ForContract(contract, now, warningWindowDays) != model.StatusExpiringSoon {
			continue
		}
		expiring = append(expiring, ExpiringContract{
			ID:             contract.ID,
			Title:          contract.Title(),
			ClientName:     contract.ClientName,
			ExpirationDate: contract.ExpiresAt,
			DaysRemaining:  status.DaysRemaining(contract.ExpiresAt, now),
		})
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysRemaining < expiring[j].DaysRemaining
	})

	return Summary{
		TotalClients:   len(clients),
		TotalContracts: len(contracts),
		Expiring:       expiring,
	}
}
