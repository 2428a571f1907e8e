package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/contratos-dashboard/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the contract register workbook: a summary sheet
// with totals per status and a detail sheet with one row per contract.
// Statuses are expected to be already derived by the caller.
func (g *Generator) Generate(contracts []model.Contract, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumen"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, contracts, generatedAt); err != nil {
		return nil, err
	}

	detailSheet := "Contratos"
	if _, err := file.NewSheet(detailSheet); err != nil {
		return nil, err
	}
	if err := g.writeDetail(file, detailSheet, contracts); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, contracts []model.Contract, generatedAt time.Time) error {
	counts := map[model.ContractStatus]int{}
	for _, contract := range contracts {
		counts[contract.Status]++
	}

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Registro de contratos")
	set("A2", "Generado el")
	set("B2", formatDate(generatedAt))
	set("A3", "Total de contratos")
	set("B3", len(contracts))

	tableRow := 5
	set(fmt.Sprintf("A%d", tableRow), "Estado")
	set(fmt.Sprintf("B%d", tableRow), "Cantidad")

	statuses := []model.ContractStatus{model.StatusActive, model.StatusExpiringSoon, model.StatusExpired}
	for i, st := range statuses {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), st.Label())
		set(fmt.Sprintf("B%d", row), counts[st])
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 14)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, contracts []model.Contract) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"ID", "Contrato", "Cliente", "Estado", "Creado", "Vence", "Archivos"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		set(cell, header)
	}

	for i, contract := range contracts {
		row := i + 2
		set(fmt.Sprintf("A%d", row), contract.ID)
		set(fmt.Sprintf("B%d", row), contract.Title())
		set(fmt.Sprintf("C%d", row), contract.ClientName)
		set(fmt.Sprintf("D%d", row), contract.Status.Label())
		set(fmt.Sprintf("E%d", row), formatDate(contract.CreatedAt))
		set(fmt.Sprintf("F%d", row), formatDate(contract.ExpiresAt))
		set(fmt.Sprintf("G%d", row), len(contract.Files))
	}

	_ = file.SetColWidth(sheet, "A", "A", 8)
	_ = file.SetColWidth(sheet, "B", "C", 32)
	_ = file.SetColWidth(sheet, "D", "G", 14)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}
