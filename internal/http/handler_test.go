package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/contratos-dashboard/internal/config"
	"github.com/nurpe/contratos-dashboard/internal/excel"
	"github.com/nurpe/contratos-dashboard/internal/gateway"
	"github.com/nurpe/contratos-dashboard/internal/notify"
	"github.com/nurpe/contratos-dashboard/internal/pdf"
	"github.com/nurpe/contratos-dashboard/internal/service"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// mockBackend imitates the external contracts backend.
func mockBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /Cliente", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Ana", "lastName": "García", "email": "a@x.com"},
			{"id": 2, "name": "Luis", "email": "l@x.com"}
		]`))
	})
	mux.HandleFunc("GET /Contrato", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "descripcion": "Soporte", "estado": 0, "clienteId": 1,
			 "clienteNombre": "Ana García", "creado": "2025-01-01", "vencimiento": "2025-06-20"},
			{"id": 2, "descripcion": "Hosting", "estado": 0, "clienteId": 2,
			 "clienteNombre": "Luis", "creado": "2025-01-01", "vencimiento": "2026-06-20"}
		]`))
	})
	mux.HandleFunc("GET /Contrato/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("POST /Contrato/create", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 10, "descripcion": "Nuevo", "estado": 0,
			"clienteId": 1, "creado": "2025-06-15", "vencimiento": "2026-06-15"}`))
	})
	mux.HandleFunc("GET /Archivos/ver/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 data"))
	})
	mux.HandleFunc("GET /Archivos/ver/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /Servicios", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "descripcion": "Hosting"}]`))
	})
	mux.HandleFunc("GET /TipoContratos", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "nombre": "Anual"}]`))
	})
	mux.HandleFunc("GET /Empresa", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "nombreEmpresa": "Acme", "propetario": "Juan", "email": "j@acme.com"}]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestRouter(t *testing.T, backendURL string) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		Backend:     config.BackendConfig{BaseURL: backendURL, Timeout: 5 * time.Second},
		Contracts:   config.ContractsConfig{WarningWindowDays: 30},
		Notify:      config.NotifyConfig{WindowDays: 7, CronSpec: "0 8 * * *"},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	gw := gateway.New(cfg.Backend, zerolog.Nop())
	svc := service.NewContractService(gw, pdf.NewGenerator(), excel.NewGenerator(), cfg, zerolog.Nop()).
		WithClock(func() time.Time { return testNow })
	scanner := notify.NewScanner(svc, cfg.Notify.WindowDays, cfg.Notify.CronSpec, zerolog.Nop()).
		WithClock(func() time.Time { return testNow })

	handler := NewHandler(svc, scanner, zerolog.Nop())
	return NewRouter(handler, cfg, zerolog.Nop())
}

func doRequest(t *testing.T, router http.Handler, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestGetDashboard(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	recorder := doRequest(t, router, http.MethodGet, "/api/dashboard", nil, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var resp dashboardResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalClients != 2 || resp.TotalContracts != 2 {
		t.Errorf("totals = %d/%d", resp.TotalClients, resp.TotalContracts)
	}
	if len(resp.ExpiringContracts) != 1 || resp.ExpiringContracts[0].ID != 1 {
		t.Errorf("expiring = %+v", resp.ExpiringContracts)
	}
	if resp.ExpiringContracts[0].DaysRemaining != 5 {
		t.Errorf("DaysRemaining = %d, want 5", resp.ExpiringContracts[0].DaysRemaining)
	}
}

func TestCreateClientValidationBlocked(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	body := bytes.NewBufferString(`{"phone": "555"}`)
	recorder := doRequest(t, router, http.MethodPost, "/api/clients", body, "application/json")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "email") {
		t.Errorf("body should name the missing field: %s", recorder.Body.String())
	}
}

func TestGetContractNotFound(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	recorder := doRequest(t, router, http.MethodGet, "/api/contracts/99", nil, "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}

func TestInvalidID(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	recorder := doRequest(t, router, http.MethodGet, "/api/contracts/abc", nil, "")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestCreateContractMissingFile(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("description", "Nuevo")
	_ = writer.WriteField("clientId", "1")
	_ = writer.WriteField("companyId", "1")
	_ = writer.WriteField("contractTypeId", "1")
	_ = writer.WriteField("createdAt", "2025-06-15")
	_ = writer.WriteField("expirationDate", "2026-06-15")
	writer.Close()

	recorder := doRequest(t, router, http.MethodPost, "/api/contracts", &body, writer.FormDataContentType())
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), "file") {
		t.Errorf("body should mention the missing file: %s", recorder.Body.String())
	}
}

func TestCreateContractWithFile(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("description", "Nuevo")
	_ = writer.WriteField("clientId", "1")
	_ = writer.WriteField("serviceId", "1")
	_ = writer.WriteField("companyId", "1")
	_ = writer.WriteField("contractTypeId", "1")
	_ = writer.WriteField("createdAt", "2025-06-15")
	_ = writer.WriteField("expirationDate", "2026-06-15")
	part, _ := writer.CreateFormFile("file", "contrato.pdf")
	_, _ = part.Write([]byte("%PDF-1.4"))
	writer.Close()

	recorder := doRequest(t, router, http.MethodPost, "/api/contracts", &body, writer.FormDataContentType())
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var resp contractResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 10 {
		t.Errorf("created id = %d, want 10", resp.ID)
	}
}

func TestGetFileDownload(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	recorder := doRequest(t, router, http.MethodGet, "/api/files/7", nil, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	disposition := recorder.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, "attachment") || !strings.Contains(disposition, "contrato_7.pdf") {
		t.Errorf("Content-Disposition = %q", disposition)
	}
}

func TestGetFileView(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	recorder := doRequest(t, router, http.MethodGet, "/api/files/7?mode=view", nil, "")
	if !strings.HasPrefix(recorder.Header().Get("Content-Disposition"), "inline") {
		t.Errorf("Content-Disposition = %q, want inline", recorder.Header().Get("Content-Disposition"))
	}
}

func TestGetFileNotFound(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	recorder := doRequest(t, router, http.MethodGet, "/api/files/404", nil, "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}

func TestBackendUnreachable(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	backend.Close()
	router := newTestRouter(t, backend.URL)

	recorder := doRequest(t, router, http.MethodGet, "/api/dashboard", nil, "")
	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", recorder.Code)
	}
}

func TestNotifyScan(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	recorder := doRequest(t, router, http.MethodPost, "/api/notify/scan", nil, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	// Contract 1 expires in 5 days, inside the 7-day notify window.
	if !strings.Contains(recorder.Body.String(), `"reminders":1`) {
		t.Errorf("body = %s", recorder.Body.String())
	}
}

func TestExportReports(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	pdfRec := doRequest(t, router, http.MethodGet, "/api/reports/expiring.pdf", nil, "")
	if pdfRec.Code != http.StatusOK {
		t.Fatalf("pdf status = %d", pdfRec.Code)
	}
	if !bytes.HasPrefix(pdfRec.Body.Bytes(), []byte("%PDF")) {
		t.Error("pdf export missing PDF header")
	}

	xlsxRec := doRequest(t, router, http.MethodGet, "/api/reports/contracts.xlsx", nil, "")
	if xlsxRec.Code != http.StatusOK {
		t.Fatalf("xlsx status = %d", xlsxRec.Code)
	}
	if !strings.Contains(xlsxRec.Header().Get("Content-Disposition"), ".xlsx") {
		t.Errorf("xlsx disposition = %q", xlsxRec.Header().Get("Content-Disposition"))
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, mockBackend(t).URL)

	recorder := doRequest(t, router, http.MethodGet, "/health", nil, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
}
