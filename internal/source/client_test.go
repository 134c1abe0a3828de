package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slethware/atlas/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(countriesURL, ratesURL string) Client {
	return NewClient(config.Config{
		CountriesAPIURL:    countriesURL,
		ExchangeRateAPIURL: ratesURL,
		SourceTimeout:      2 * time.Second,
	}, zap.NewNop())
}

func TestFetchCountries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"Wakanda","capital":"Birnin Zana","region":"Africa","population":1000,
			 "currencies":[{"code":"WKD","name":"Wakandan dollar","symbol":"W"}],
			 "flag":"https://flags.example/wkd.svg","unknown_field":true}
		]`))
	}))
	defer srv.Close()

	countries, err := newTestClient(srv.URL, srv.URL).FetchCountries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 1)

	c := countries[0]
	assert.Equal(t, "Wakanda", c.Name)
	assert.Equal(t, "Africa", c.Region)
	require.NotNil(t, c.Population)
	assert.Equal(t, int64(1000), *c.Population)
	require.Len(t, c.Currencies, 1)
	assert.Equal(t, "WKD", c.Currencies[0].Code)
}

func TestFetchCountries_EmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).FetchCountries(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchCountries_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"oops":`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).FetchCountries(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchCountries_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).FetchCountries(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"WKD":2.0,"EUR":0.9}}`))
	}))
	defer srv.Close()

	rates, err := newTestClient(srv.URL, srv.URL).FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.0, rates["WKD"])
	assert.Equal(t, 0.9, rates["EUR"])
}

func TestFetchRates_UnsuccessfulResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","base_code":"USD","rates":{}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).FetchRates(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchRates_MissingRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).FetchRates(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetch_Unreachable(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", "http://127.0.0.1:1")

	_, err := client.FetchCountries(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = client.FetchRates(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
