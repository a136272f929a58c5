package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/gva"
	"github.com/mamadbah2/livestock-gva/internal/render/pdf"
	"github.com/mamadbah2/livestock-gva/internal/repository/memory"
	"github.com/mamadbah2/livestock-gva/internal/server/handlers"
	"github.com/mamadbah2/livestock-gva/internal/server/middleware"
	"github.com/mamadbah2/livestock-gva/internal/service/reporting"
)

type caller struct {
	id, name string
	role     models.Role
}

var (
	vetA    = caller{"vet-a", "Dr. Anitha", models.RoleVeterinarian}
	vetB    = caller{"vet-b", "Dr. Bhaskar", models.RoleVeterinarian}
	admin   = caller{"admin-1", "District Admin", models.RoleAdmin}
	paravet = caller{"para-1", "Ramesh", models.RoleParavet}
)

type failingStore struct{}

func (failingStore) Save(context.Context, models.Report) (string, error) {
	return "", errors.New("disk full")
}
func (failingStore) Get(context.Context, string) (models.Report, error) {
	return models.Report{}, errors.New("disk full")
}
func (failingStore) List(context.Context, models.ReportFilter) ([]models.Report, error) {
	return nil, errors.New("disk full")
}

func newServer(t *testing.T, store reporting.Store) http.Handler {
	t.Helper()
	clock := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	engine, err := gva.NewEngine(gva.DefaultCoefficients(), gva.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	require.NoError(t, err)

	svc := reporting.NewService(engine, store, nil, reporting.WithRenderer(pdf.NewRenderer()))
	return New(handlers.NewGVAHandler(svc, nil), nil)
}

func do(t *testing.T, h http.Handler, method, path string, who *caller, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if who != nil {
		req.Header.Set(middleware.HeaderUserID, who.id)
		req.Header.Set(middleware.HeaderUserName, who.name)
		req.Header.Set(middleware.HeaderUserRole, string(who.role))
		req.Header.Set(middleware.HeaderUserInstitution, "Govt. Veterinary Hospital")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

var dairyPayload = map[string]any{
	"cattle_count":           100,
	"buffalo_count":          50,
	"avg_milk_yield_per_day": 8,
	"milk_price_per_litre":   45,
	"village_name":           "Kondapur",
	"mandal":                 "Serilingampally",
	"district":               "Rangareddy",
}

func TestCalculate_ReturnsFlatResults(t *testing.T) {
	h := newServer(t, memory.NewRepository())

	rec := do(t, h, http.MethodPost, "/gva/calculate", &vetA, dairyPayload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[map[string]any](t, rec)
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["created_at"])
	assert.Equal(t, "Kondapur", body["inputs"].(map[string]any)["village_name"])

	results := body["results"].(map[string]any)
	assert.Equal(t, 105.0, results["milk_breedable_animals"])
	assert.Equal(t, 63.0, results["milk_in_milk_animals"])
	assert.Equal(t, 183960.0, results["milk_annual_production"])
	assert.Equal(t, 8278200.0, results["milk_gsdp"])
	assert.Equal(t, 3311280.0, results["milk_input_cost"])
	assert.Equal(t, 4966920.0, results["milk_gva"])
	assert.Equal(t, 0.0, results["sheep_goat_gva"])
	assert.Equal(t, 12.0, results["buffalo_slaughter_count"])
	assert.Equal(t, 0.0, results["buffalo_meat_gva"])
	assert.Equal(t, 0.0, results["poultry_meat_gva"])
	assert.Equal(t, 0.0, results["egg_gva"])
	assert.Equal(t, 4966920.0, results["total_village_gva"])

	for _, key := range []string{
		"sheep_goat_slaughter_count", "sheep_goat_annual_meat", "sheep_goat_gsdp", "sheep_goat_input_cost",
		"buffalo_meat_production", "buffalo_gsdp", "buffalo_input_cost",
		"poultry_annual_birds", "poultry_slaughter_count", "poultry_dressed_meat", "poultry_gsdp", "poultry_input_cost",
		"egg_annual_production", "egg_gsdp", "egg_input_cost",
	} {
		assert.Contains(t, results, key)
	}

	author := body["author"].(map[string]any)
	assert.Equal(t, "vet-a", author["id"])
	assert.Equal(t, "Govt. Veterinary Hospital", author["institution"])
	assert.Contains(t, body, "settings_used")
}

func TestCalculate_AllZeroCensus(t *testing.T) {
	store := memory.NewRepository()
	h := newServer(t, store)

	rec := do(t, h, http.MethodPost, "/api/gva/calculate", &admin, map[string]any{"milk_price_per_litre": 45})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "at least one livestock count is required", decode[map[string]string](t, rec)["error"])

	all, err := store.List(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCalculate_BadInput(t *testing.T) {
	h := newServer(t, memory.NewRepository())

	rec := do(t, h, http.MethodPost, "/gva/calculate", &vetA, map[string]any{"cattle_count": -4})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cattle_count", decode[map[string]string](t, rec)["field"])

	rec = do(t, h, http.MethodPost, "/gva/calculate", &vetA, map[string]any{"cattle_count": "many"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculate_OverflowingResultsAreRejected(t *testing.T) {
	store := memory.NewRepository()
	h := newServer(t, store)

	rec := do(t, h, http.MethodPost, "/gva/calculate", &vetA, map[string]any{
		"cattle_count":           100,
		"avg_milk_yield_per_day": 1e300,
		"milk_price_per_litre":   1e300,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "milk_daily_production", decode[map[string]string](t, rec)["field"])

	rec = do(t, h, http.MethodPost, "/gva/calculate", &vetA, map[string]any{"cattle_count": int64(1) << 62})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cattle_count", decode[map[string]string](t, rec)["field"])

	rec = do(t, h, http.MethodGet, "/gva/reports", &admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Report](t, rec))
}

func TestCalculate_StorageFailure(t *testing.T) {
	h := newServer(t, failingStore{})

	rec := do(t, h, http.MethodPost, "/gva/calculate", &vetA, dairyPayload)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "report could not be saved", decode[map[string]string](t, rec)["error"])
}

func TestRoles(t *testing.T) {
	h := newServer(t, memory.NewRepository())

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/gva/reports", nil, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPost, "/gva/calculate", &paravet, dairyPayload).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/gva/settings", &vetA, nil).Code)

	unknown := caller{"x", "X", "farmer"}
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/gva/reports", &unknown, nil).Code)
}

func TestReports_ListGetAndPDF(t *testing.T) {
	h := newServer(t, memory.NewRepository())

	first := decode[models.Report](t, do(t, h, http.MethodPost, "/gva/calculate", &vetA, dairyPayload))
	second := decode[models.Report](t, do(t, h, http.MethodPost, "/gva/calculate", &vetA, map[string]any{
		"poultry_count": 1000, "eggs_per_bird_per_year": 280, "egg_price": 6, "poultry_meat_price_per_kg": 180,
	}))
	other := decode[models.Report](t, do(t, h, http.MethodPost, "/gva/calculate", &vetB, dairyPayload))

	assert.Equal(t, 1008000.0, second.Results.EggBreakdown.GVA)
	assert.Equal(t, 526680.0, second.Results.PoultryMeatBreakdown.GVA)

	rec := do(t, h, http.MethodGet, "/gva/reports", &vetA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	own := decode[[]models.Report](t, rec)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].ID)
	assert.Equal(t, first.ID, own[1].ID)

	all := decode[[]models.Report](t, do(t, h, http.MethodGet, "/gva/reports", &paravet, nil))
	require.Len(t, all, 3)
	assert.Equal(t, other.ID, all[0].ID)

	limited := decode[[]models.Report](t, do(t, h, http.MethodGet, "/gva/reports?limit=1", &admin, nil))
	assert.Len(t, limited, 1)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/gva/reports?limit=-1", &admin, nil).Code)

	rec = do(t, h, http.MethodGet, "/gva/reports/"+first.ID, &paravet, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.Report](t, rec)
	assert.Equal(t, first.Results, got.Results)
	assert.Equal(t, first.Inputs, got.Inputs)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/gva/reports/missing", &vetA, nil).Code)

	rec = do(t, h, http.MethodGet, "/api/gva/reports/"+first.ID+"/pdf", &vetA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=GVA_Report_"+first.ID[:8]+".pdf", rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/gva/reports/missing/pdf", &admin, nil).Code)
}

func TestSettings_ReadOnly(t *testing.T) {
	h := newServer(t, memory.NewRepository())

	rec := do(t, h, http.MethodGet, "/gva/settings", &admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, gva.DefaultCoefficients(), decode[models.Coefficients](t, rec))

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/gva/settings", &admin, map[string]any{}).Code)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newServer(t, memory.NewRepository()), http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
