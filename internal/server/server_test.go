package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/slethware/atlas/internal/clock"
	"github.com/slethware/atlas/internal/config"
	"github.com/slethware/atlas/internal/country/domain"
	"github.com/slethware/atlas/internal/country/repository"
	countryservice "github.com/slethware/atlas/internal/country/service"
	"github.com/slethware/atlas/internal/source"
	"github.com/slethware/atlas/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeSource struct {
	countries    []source.RawCountry
	rates        source.RateTable
	countriesErr error
}

func (f *fakeSource) FetchCountries(ctx context.Context) ([]source.RawCountry, error) {
	if f.countriesErr != nil {
		return nil, f.countriesErr
	}
	return f.countries, nil
}

func (f *fakeSource) FetchRates(ctx context.Context) (source.RateTable, error) {
	return f.rates, nil
}

func newTestServer(t *testing.T, src source.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Country{}))
	require.NoError(t, db.Exec("DELETE FROM countries").Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	renderer, err := summary.NewRenderer(config.Config{}, zap.NewNop())
	require.NoError(t, err)

	svc := countryservice.New(countryservice.Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		Repo:    repository.Provide(),
		Source:  src,
		Summary: renderer,
		Draw:    func() float64 { return 1500 },
	})

	engine := NewEngine(zap.NewNop())
	srv := NewServer(Params{
		Gin:        engine,
		Cfg:        config.Config{},
		CountrySvc: svc,
		Summary:    renderer,
	})
	srv.RegisterRoutes()
	return engine
}

func wakandaSource() *fakeSource {
	pop := int64(1000)
	return &fakeSource{
		countries: []source.RawCountry{
			{
				Name:       "Wakanda",
				Capital:    "Birnin Zana",
				Region:     "Africa",
				Population: &pop,
				Currencies: []source.Currency{{Code: "WKD"}},
			},
		},
		rates: source.RateTable{"WKD": 2.0},
	}
}

func do(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRefreshEndpoint(t *testing.T) {
	engine := newTestServer(t, wakandaSource())

	rec := do(engine, http.MethodPost, "/countries/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Successfully refreshed countries. Inserted: 1, Updated: 0", body["message"])

	rec = do(engine, http.MethodPost, "/countries/refresh")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Successfully refreshed countries. Inserted: 0, Updated: 1", body["message"])
}

func TestRefreshEndpoint_SourceUnavailable(t *testing.T) {
	src := wakandaSource()
	src.countriesErr = source.ErrUnavailable
	engine := newTestServer(t, src)

	rec := do(engine, http.MethodPost, "/countries/refresh")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "source_unavailable", body.Error.Type)
	assert.Equal(t, "External data source unavailable", body.Error.Message)
}

func TestListEndpoint(t *testing.T) {
	engine := newTestServer(t, wakandaSource())
	require.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/countries/refresh").Code)

	rec := do(engine, http.MethodGet, "/countries?region=africa&sort=gdp_desc")
	require.Equal(t, http.StatusOK, rec.Code)

	var countries []domain.Country
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &countries))
	require.Len(t, countries, 1)
	assert.Equal(t, "Wakanda", countries[0].Name)

	rec = do(engine, http.MethodGet, "/countries?region=antarctica")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &countries))
	assert.Empty(t, countries)
}

func TestGetByNameEndpoint(t *testing.T) {
	engine := newTestServer(t, wakandaSource())
	require.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/countries/refresh").Code)

	rec := do(engine, http.MethodGet, "/countries/wakanda")
	require.Equal(t, http.StatusOK, rec.Code)

	var country domain.Country
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &country))
	assert.Equal(t, "Wakanda", country.Name)

	rec = do(engine, http.MethodGet, "/countries/narnia")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	engine := newTestServer(t, wakandaSource())
	require.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/countries/refresh").Code)

	assert.Equal(t, http.StatusNoContent, do(engine, http.MethodDelete, "/countries/Wakanda").Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodDelete, "/countries/Wakanda").Code)
}

func TestStatusEndpoint(t *testing.T) {
	engine := newTestServer(t, wakandaSource())

	rec := do(engine, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status domain.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, int64(0), status.TotalCountries)
	assert.Nil(t, status.LastRefreshedAt)

	require.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/countries/refresh").Code)

	rec = do(engine, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, int64(1), status.TotalCountries)
	assert.NotNil(t, status.LastRefreshedAt)
}

func TestSummaryImageEndpoint(t *testing.T) {
	engine := newTestServer(t, wakandaSource())

	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodGet, "/countries/image").Code)

	require.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/countries/refresh").Code)

	rec := do(engine, http.MethodGet, "/countries/image")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestServer(t, wakandaSource())
	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/health").Code)
}
