package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaigek/mrp-system/internal/application/dto"
	"github.com/gaigek/mrp-system/internal/application/ingest"
	"github.com/gaigek/mrp-system/internal/application/usecase"
	"github.com/gaigek/mrp-system/internal/application/worklist"
	"github.com/gaigek/mrp-system/internal/infrastructure/memory"
	apphttp "github.com/gaigek/mrp-system/internal/interfaces/http"
	"github.com/gaigek/mrp-system/pkg/logger"
)

var testToday = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)

// buildTestApp monta la API completa sobre repositorios en memoria con un
// reloj fijo, igual que main pero sin servidor real.
func buildTestApp() *fiber.App {
	itemRepo := memory.NewItemRepository()
	worklistRepo := memory.NewWorklistRepository()
	log := logger.Nop()
	clock := func() time.Time { return testToday }

	defaults := usecase.PlanningDefaults{LeadTimeWeeks: 7, UpcomingHorizonDays: 7}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		IngestUC:    ingest.NewUseCase(itemRepo, log, "week").WithClock(clock),
		ItemUC:      usecase.NewItemUseCase(itemRepo).WithClock(clock),
		RecommendUC: usecase.NewRecommendUseCase(itemRepo, defaults).WithClock(clock),
		WorklistUC:  worklist.NewUseCase(itemRepo, worklistRepo, log, "week").WithClock(clock),
		DashboardUC: usecase.NewDashboardUseCase(itemRepo, worklistRepo),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func ingestSnapshot(t *testing.T, app *fiber.App, raw string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/mrp/ingest", strings.NewReader(raw))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

const testSnapshot = "0,ITEM-1,,,10,ACME,,SM\n" +
	"4,ITEM-1,3/21/2024,PART-A,25,ACME,,SM\n" +
	"0,ITEM-2,,,-5,OTRO,,W\n"

func TestIngestEndpoint(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/mrp/ingest", strings.NewReader(testSnapshot))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.IngestResponse
	payload, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(payload, &out))
	assert.Equal(t, 2, out.Items)
	assert.Equal(t, []string{"SM", "W"}, out.Categories)
}

func TestIngestEndpoint_CuerpoVacio(t *testing.T) {
	app := buildTestApp()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/mrp/ingest", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIngestEndpoint_CSVRotoDevuelve422(t *testing.T) {
	app := buildTestApp()
	ingestSnapshot(t, app, testSnapshot)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/mrp/ingest",
		"0,ROTO,,,10,ACME,,SM\n4,ROTO,3/8/2024,\"PART-A,5")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(payload, &errResp))
	assert.Equal(t, "INVALID_SNAPSHOT", errResp.Code)

	// El snapshot cargado antes del intento fallido sigue sirviendo.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/items/ITEM-1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestItemsEndpoints(t *testing.T) {
	app := buildTestApp()
	ingestSnapshot(t, app, testSnapshot)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/items", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ItemSummaryDTO
	require.NoError(t, json.Unmarshal(payload, &list))
	require.Len(t, list, 2)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/items?filter=negative", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "ITEM-2", list[0].Item)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/items/ITEM-1?groupBy=month", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.ItemDetailDTO
	require.NoError(t, json.Unmarshal(payload, &detail))
	assert.Equal(t, "ITEM-1", detail.Item)
	require.Len(t, detail.GroupedOrders, 1)
	assert.Equal(t, "month", detail.GroupedOrders[0].GroupBy)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/items/NADA", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecommendationsEndpoint(t *testing.T) {
	app := buildTestApp()
	ingestSnapshot(t, app, testSnapshot)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/items/ITEM-1/recommendations", `{"group_by":"week"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.RecommendResponse
	require.NoError(t, json.Unmarshal(payload, &rec))
	require.Len(t, rec.Suggestions, 1)
	assert.Equal(t, 15, rec.Suggestions[0].Quantity, "10 en mano contra venta de 25")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/items/NADA/recommendations", `{}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrdersEndpoints_CicloCompleto(t *testing.T) {
	app := buildTestApp()
	ingestSnapshot(t, app, testSnapshot)

	// Crear
	resp, payload := doJSON(t, app, http.MethodPost, "/api/orders",
		`{"item":"ITEM-1","quantity":5,"due_date":"2024-03-08T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.WorklistOrderDTO
	require.NoError(t, json.Unmarshal(payload, &order))
	assert.Equal(t, "ITEM-1", order.Item)
	assert.NotEmpty(t, order.Reference)

	// Listar
	resp, payload = doJSON(t, app, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []dto.WorklistOrderDTO
	require.NoError(t, json.Unmarshal(payload, &orders))
	require.Len(t, orders, 1)

	// Actualizar
	resp, payload = doJSON(t, app, http.MethodPut, "/api/orders/"+order.ID, `{"quantity":9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.WorklistOrderDTO
	require.NoError(t, json.Unmarshal(payload, &updated))
	assert.Equal(t, 9, updated.Quantity)

	// Eliminar
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/orders/"+order.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/orders/"+order.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReceiveEndpoint(t *testing.T) {
	app := buildTestApp()
	ingestSnapshot(t, app, testSnapshot)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/orders",
		`{"item":"ITEM-2","quantity":5,"due_date":"2024-03-08T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.WorklistOrderDTO
	require.NoError(t, json.Unmarshal(payload, &order))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/items/ITEM-2/receive",
		`{"reference":"`+order.Reference+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// El balance pasó de -5 a 0 y el worklist quedó vacío.
	resp, payload = doJSON(t, app, http.MethodGet, "/api/items/ITEM-2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.ItemDetailDTO
	require.NoError(t, json.Unmarshal(payload, &detail))
	assert.Equal(t, 0, detail.StartingBalance)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []dto.WorklistOrderDTO
	require.NoError(t, json.Unmarshal(payload, &orders))
	assert.Empty(t, orders)
}

func TestDashboardEndpoint(t *testing.T) {
	app := buildTestApp()
	ingestSnapshot(t, app, testSnapshot)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/dashboard/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.DashboardSummaryResponse
	require.NoError(t, json.Unmarshal(payload, &summary))
	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, 1, summary.NegativeBalanceItems)
	assert.Equal(t, 2, summary.ItemsRequiringOrders)
}
