package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DVA506/SmartMove/internal/console/client"
	"github.com/DVA506/SmartMove/internal/console/model"
	"github.com/DVA506/SmartMove/internal/fleettest"
	"github.com/DVA506/SmartMove/pkg/options"
)

func newClient(baseURL string) *client.Client {
	return client.New(&options.ApiOptions{BaseURL: baseURL})
}

func TestFetchJSONSuccess(t *testing.T) {
	srv := fleettest.New()
	defer srv.Close()

	srv.AddVehicle(model.VehicleSnapshot{
		ID:    "v1",
		Type:  "scooter",
		City:  "Metropolis",
		State: model.StateAvailable,
	})

	var snap model.VehicleSnapshot
	err := newClient(srv.URL).FetchJSON(context.Background(), "/vehicle?id=v1", &snap)
	require.NoError(t, err)
	assert.Equal(t, "v1", snap.ID)
	assert.Equal(t, model.StateAvailable, snap.State)
}

func TestFetchJSONServerErrorMessage(t *testing.T) {
	srv := fleettest.New()
	defer srv.Close()

	var snap model.VehicleSnapshot
	err := newClient(srv.URL).FetchJSON(context.Background(), "/vehicle?id=missing", &snap)
	require.Error(t, err)

	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
}

func TestFetchJSONGenericStatusMessage(t *testing.T) {
	srv := fleettest.New()
	defer srv.Close()

	// No error field in the body: the client falls back to "HTTP <status>".
	srv.FailWith("/vehicle", http.StatusInternalServerError, "")

	err := newClient(srv.URL).FetchJSON(context.Background(), "/vehicle?id=v1", nil)
	require.Error(t, err)

	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "HTTP 500", apiErr.Message)
}

func TestFetchJSONTransportError(t *testing.T) {
	srv := fleettest.New()
	srv.Close() // unreachable from here on

	err := newClient(srv.URL).FetchJSON(context.Background(), "/health", nil)
	require.Error(t, err)

	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestSubmitJSONTransitionsVehicle(t *testing.T) {
	srv := fleettest.New()
	defer srv.Close()

	srv.AddVehicle(model.VehicleSnapshot{ID: "v1", State: model.StateAvailable})

	c := newClient(srv.URL)
	err := c.SubmitJSON(context.Background(), "/reserve", map[string]string{"vehicleId": "v1", "city": "Metropolis"}, nil)
	require.NoError(t, err)

	var snap model.VehicleSnapshot
	require.NoError(t, c.FetchJSON(context.Background(), "/vehicle?id=v1", &snap))
	assert.Equal(t, model.StateReserved, snap.State)
}

func TestUnparseableSuccessBodyYieldsEmptyStructure(t *testing.T) {
	srv := fleettest.New()
	defer srv.Close()

	srv.AddVehicle(model.VehicleSnapshot{ID: "v1", State: model.StateAvailable})

	// /end answers a JSON object; decoding it into a slice cannot succeed, but
	// the call must still report success with the output left empty.
	var out []string
	err := newClient(srv.URL).SubmitJSON(context.Background(), "/end", map[string]string{"vehicleId": "v1"}, &out)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHealthCheck(t *testing.T) {
	srv := fleettest.New()
	defer srv.Close()

	c := newClient(srv.URL)
	assert.True(t, c.HealthCheck(context.Background()))

	srv.SetHealthy(false)
	assert.False(t, c.HealthCheck(context.Background()))

	srv.SetHealthy(true)
	assert.True(t, c.HealthCheck(context.Background()))
}
