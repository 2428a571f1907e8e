package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/contratos-dashboard/internal/gateway"
	"github.com/nurpe/contratos-dashboard/internal/notify"
	"github.com/nurpe/contratos-dashboard/internal/service"
	"github.com/nurpe/contratos-dashboard/internal/transfer"
)

type Handler struct {
	contracts *service.ContractService
	scanner   *notify.Scanner
	log       zerolog.Logger
}

func NewHandler(contracts *service.ContractService, scanner *notify.Scanner, log zerolog.Logger) *Handler {
	return &Handler{contracts: contracts, scanner: scanner, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.GET("/dashboard", h.getDashboard)

	api.GET("/clients", h.listClients)
	api.POST("/clients", h.createClient)
	api.PUT("/clients/:id", h.updateClient)
	api.DELETE("/clients/:id", h.deleteClient)

	api.GET("/contracts", h.listContracts)
	api.POST("/contracts", h.createContract)
	api.GET("/contracts/:id", h.getContract)
	api.PUT("/contracts/:id", h.updateContract)
	api.DELETE("/contracts/:id", h.deleteContract)

	api.GET("/services", h.listServices)
	api.POST("/services", h.createService)
	api.GET("/contract-types", h.listContractTypes)
	api.GET("/companies", h.listCompanies)
	api.POST("/companies", h.createCompany)

	api.GET("/files/:id", h.getFile)

	api.GET("/reports/expiring.pdf", h.exportExpiringPDF)
	api.GET("/reports/contracts.xlsx", h.exportContractRegister)

	api.POST("/notify/scan", h.notifyScan)
}

func (h *Handler) getDashboard(c *gin.Context) {
	summary, err := h.contracts.LoadDashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardResponseFrom(*summary))
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.contracts.ListClients(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	result := make([]clientPayload, 0, len(clients))
	for _, client := range clients {
		result = append(result, clientPayloadFrom(client))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) createClient(c *gin.Context) {
	var payload clientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.contracts.CreateClient(c.Request.Context(), payload.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clientPayloadFrom(*created))
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload clientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.contracts.UpdateClient(c.Request.Context(), id, payload.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientPayloadFrom(*updated))
}

func (h *Handler) deleteClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.contracts.DeleteClient(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listContracts(c *gin.Context) {
	contracts, err := h.contracts.ListContracts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	result := make([]contractResponse, 0, len(contracts))
	for _, contract := range contracts {
		result = append(result, contractResponseFrom(contract))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contract, err := h.contracts.GetContract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contractResponseFrom(*contract))
}

func (h *Handler) createContract(c *gin.Context) {
	input, err := contractInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.contracts.CreateContract(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contractResponseFrom(*created))
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, err := contractInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.contracts.UpdateContract(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contractResponseFrom(*updated))
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.contracts.DeleteContract(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listServices(c *gin.Context) {
	services, err := h.contracts.ListServices(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	result := make([]servicePayload, 0, len(services))
	for _, svc := range services {
		result = append(result, servicePayload{ID: svc.ID, Description: svc.Description})
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) createService(c *gin.Context) {
	var payload servicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.contracts.CreateService(c.Request.Context(), payload.Description)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, servicePayload{ID: created.ID, Description: created.Description})
}

func (h *Handler) listContractTypes(c *gin.Context) {
	types, err := h.contracts.ListContractTypes(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	result := make([]contractTypePayload, 0, len(types))
	for _, ct := range types {
		result = append(result, contractTypePayload{ID: ct.ID, Name: ct.Name})
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) listCompanies(c *gin.Context) {
	companies, err := h.contracts.ListCompanies(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	result := make([]companyPayload, 0, len(companies))
	for _, company := range companies {
		result = append(result, companyPayloadFrom(company))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) createCompany(c *gin.Context) {
	var payload companyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.contracts.CreateCompany(c.Request.Context(), payload.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, companyPayloadFrom(*created))
}

func (h *Handler) getFile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	mode, err := transfer.ParseMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	download, err := h.contracts.FetchFile(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	transfer.Serve(c.Writer, download, mode)
}

func (h *Handler) exportExpiringPDF(c *gin.Context) {
	result, err := h.contracts.ExportExpiringPDF(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.serveExport(c, result)
}

func (h *Handler) exportContractRegister(c *gin.Context) {
	result, err := h.contracts.ExportContractRegister(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.serveExport(c, result)
}

func (h *Handler) serveExport(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) notifyScan(c *gin.Context) {
	count, err := h.scanner.Scan(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": count})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var apiErr *gateway.APIError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
	case errors.As(err, &apiErr):
		h.handleAPIError(c, apiErr)
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) handleAPIError(c *gin.Context, apiErr *gateway.APIError) {
	switch apiErr.Kind {
	case gateway.KindValidation:
		body := gin.H{"error": apiErr.Error()}
		if len(apiErr.Fields) > 0 {
			body["fields"] = apiErr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case gateway.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": apiErr.Error()})
	case gateway.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case gateway.KindFileTransfer:
		if apiErr.HTTPStatus == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": apiErr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
	case gateway.KindUnreachable, gateway.KindServer:
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable, try again later"})
	default:
		h.log.Error().Err(apiErr).Msg("unclassified backend error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid date " + raw)
}
