package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corex.ru/progress-bot/internal/common"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/summary", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"shield_fill_percent":75.5,"total_debt":12000,"liquid_cash":3000,"debts_eliminated":2,"account_count":4,"interest_saved":150.25}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, testLogger())
	f, err := c.Fetch(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 75.5, f.ShieldFillPercent)
	assert.Equal(t, 12000.0, f.TotalDebt)
	assert.Equal(t, 2, f.DebtsEliminated)
	assert.Equal(t, 150.25, f.InterestSaved)
}

func TestFetch_Disabled(t *testing.T) {
	c := NewClient("", time.Second, testLogger())
	assert.False(t, c.Enabled())

	_, err := c.Fetch(context.Background(), 1)
	assert.True(t, errors.Is(err, common.ErrFactsUnavailable))
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	_, err := c.Fetch(context.Background(), 1)
	assert.True(t, errors.Is(err, common.ErrFactsUnavailable))
}

func TestFetch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`не json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	_, err := c.Fetch(context.Background(), 1)
	assert.True(t, errors.Is(err, common.ErrFactsUnavailable))
}

func TestFetch_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, testLogger())
	_, err := c.Fetch(context.Background(), 1)
	assert.True(t, errors.Is(err, common.ErrFactsUnavailable))
}
