package service

import (
	"context"
	"fmt"
)

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportExpiringPDF renders the expiring-contracts report from a fresh
// dashboard load.
func (s *ContractService) ExportExpiringPDF(ctx context.Context) (*ExportResult, error) {
	summary, err := s.LoadDashboard(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	content, err := s.pdf.Generate(*summary, now, s.warningWindowDays)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("contratos-por-vencer-%s.pdf", now.Format("20060102")),
		ContentType: pdfContentType,
		Content:     content,
	}, nil
}

// ExportContractRegister renders the full contract register workbook
// with derived statuses.
func (s *ContractService) ExportContractRegister(ctx context.Context) (*ExportResult, error) {
	contracts, err := s.ListContracts(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	content, err := s.excel.Generate(contracts, now)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("registro-contratos-%s.xlsx", now.Format("20060102")),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}
