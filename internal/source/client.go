package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slethware/atlas/internal/config"
	"go.uber.org/zap"
)

// ErrUnavailable is returned for any transport failure or malformed payload
// from either upstream. Callers treat it as a single failure kind.
var ErrUnavailable = errors.New("external data source unavailable")

// Client fetches the two upstream datasets a refresh merges.
type Client interface {
	FetchCountries(ctx context.Context) ([]RawCountry, error)
	FetchRates(ctx context.Context) (RateTable, error)
}

type httpClient struct {
	countriesURL string
	ratesURL     string
	client       *http.Client
	log          *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) Client {
	timeout := cfg.SourceTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpClient{
		countriesURL: strings.TrimSpace(cfg.CountriesAPIURL),
		ratesURL:     strings.TrimSpace(cfg.ExchangeRateAPIURL),
		client:       &http.Client{Timeout: timeout},
		log:          log.Named("source.client"),
	}
}

func (c *httpClient) FetchCountries(ctx context.Context) ([]RawCountry, error) {
	c.log.Info("fetching countries", zap.String("url", c.countriesURL))

	var countries []RawCountry
	if err := c.getJSON(ctx, c.countriesURL, &countries); err != nil {
		c.log.Error("country fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: could not fetch data from countries API", ErrUnavailable)
	}
	if len(countries) == 0 {
		c.log.Error("country fetch returned an empty payload")
		return nil, fmt.Errorf("%w: could not fetch data from countries API", ErrUnavailable)
	}

	c.log.Info("fetched countries", zap.Int("count", len(countries)))
	return countries, nil
}

func (c *httpClient) FetchRates(ctx context.Context) (RateTable, error) {
	c.log.Info("fetching exchange rates", zap.String("url", c.ratesURL))

	var resp rateResponse
	if err := c.getJSON(ctx, c.ratesURL, &resp); err != nil {
		c.log.Error("rate fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: could not fetch data from exchange rate API", ErrUnavailable)
	}
	if !strings.EqualFold(resp.Result, "success") || resp.Rates == nil {
		c.log.Error("rate fetch returned an unsuccessful payload", zap.String("result", resp.Result))
		return nil, fmt.Errorf("%w: could not fetch data from exchange rate API", ErrUnavailable)
	}

	c.log.Info("fetched exchange rates", zap.Int("currencies", len(resp.Rates)))
	return RateTable(resp.Rates), nil
}

func (c *httpClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
