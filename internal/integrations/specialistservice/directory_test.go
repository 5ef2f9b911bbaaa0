package specialistservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/logger"
)

var configured = []domain.Provider{
	{ID: "anna-petrova", Name: "Анна Петрова", Active: true, Price: 3500},
	{ID: "olga-ivanova", Name: "Ольга Иванова", Active: false, Price: 3000},
}

func newSpecialistServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/specialists", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(SpecialistList{Specialists: []Specialist{
			{ID: "igor-smirnov", FullName: "Игорь Смирнов", IsActive: true, Price: 4000},
			{ID: "anna-petrova", FullName: "Анна Петрова", IsActive: true, Price: 3600},
			{ID: "olga-ivanova", FullName: "Ольга Иванова", IsActive: false, Price: 3000},
		}})
	})
	mux.HandleFunc("/internal/specialists/igor-smirnov", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Specialist{ID: "igor-smirnov", FullName: "Игорь Смирнов", IsActive: true, Price: 4000})
	})
	mux.HandleFunc("/internal/specialists/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDirectory_StaticOnly(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory(nil, configured, logger.NewNop())

	p, err := dir.GetProvider(ctx, "anna-petrova")
	require.NoError(t, err)
	assert.Equal(t, 3500.0, p.Price)

	_, err = dir.GetProvider(ctx, "nobody")
	assert.ErrorIs(t, err, ErrSpecialistNotFound)

	active, err := dir.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "anna-petrova", active[0].ID)

	assert.Equal(t, []string{"anna-petrova", "olga-ivanova"}, dir.IDs())
}

func TestDirectory_Remote(t *testing.T) {
	ctx := context.Background()
	srv := newSpecialistServer(t)
	dir := NewDirectory(NewClient(srv.URL, time.Second), configured, logger.NewNop())

	p, err := dir.GetProvider(ctx, "igor-smirnov")
	require.NoError(t, err)
	assert.Equal(t, "Игорь Смирнов", p.Name)
	assert.True(t, p.Active)

	_, err = dir.GetProvider(ctx, "nobody")
	assert.ErrorIs(t, err, ErrSpecialistNotFound)

	active, err := dir.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "anna-petrova", active[0].ID)
	assert.Equal(t, 3600.0, active[0].Price)
	assert.Equal(t, "igor-smirnov", active[1].ID)
}

func TestDirectory_GracefulDegradation(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	dir := NewDirectory(NewClient(srv.URL, time.Second), configured, logger.NewNop())

	p, err := dir.GetProvider(ctx, "anna-petrova")
	require.NoError(t, err)
	assert.Equal(t, "Анна Петрова", p.Name)

	_, err = dir.GetProvider(ctx, "igor-smirnov")
	assert.ErrorIs(t, err, ErrServiceDegraded)

	active, err := dir.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "anna-petrova", active[0].ID)
}
