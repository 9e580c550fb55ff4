package fxrate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/epeers/wealthboard/internal/fxrate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const latestGBP = `{
	"provider": "https://www.exchangerate-api.com",
	"base": "GBP",
	"date": "2025-03-10",
	"time_last_updated": 1741564801,
	"rates": {"GBP": 1, "USD": 1.2914, "EUR": 1.1921}
}`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/GBP", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetRate(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, latestGBP)
	client := fxrate.NewClientWithBaseURL(srv.URL)

	rate, err := client.GetRate(context.Background(), "gbp", "usd")
	require.NoError(t, err)

	assert.Equal(t, "GBP", rate.Base)
	assert.Equal(t, "USD", rate.Quote)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("1.2914")), "got %s", rate.Rate)
	assert.Equal(t, int64(1741564801), rate.UpdatedAt.Unix())
}

func TestGetRate_MissingQuote(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, latestGBP)
	client := fxrate.NewClientWithBaseURL(srv.URL)

	_, err := client.GetRate(context.Background(), "GBP", "JPY")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fxrate.ErrRateNotFound))
}

func TestGetRate_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusServiceUnavailable, `oops`)
	client := fxrate.NewClientWithBaseURL(srv.URL)

	_, err := client.GetRate(context.Background(), "GBP", "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGetRate_APIErrorBody(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"result":"error","error-type":"unsupported-code"}`)
	client := fxrate.NewClientWithBaseURL(srv.URL)

	_, err := client.GetRate(context.Background(), "GBP", "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported-code")
}

func TestGetRate_NonPositiveRate(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"base":"GBP","rates":{"USD":0}}`)
	client := fxrate.NewClientWithBaseURL(srv.URL)

	_, err := client.GetRate(context.Background(), "GBP", "USD")
	require.Error(t, err)
}

func TestGetLatestRates_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"rates":`)
	client := fxrate.NewClientWithBaseURL(srv.URL)

	_, err := client.GetLatestRates(context.Background(), "GBP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
