package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caveplanhttp "github.com/andrescamacho/caveplan-go/internal/adapters/http"
	"github.com/andrescamacho/caveplan-go/internal/adapters/persistence"
	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/commands"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/queries"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
	"github.com/andrescamacho/caveplan-go/test/helpers"
)

func newTestServer(t *testing.T) (*caveplanhttp.Server, dive.ConfigurationRepository) {
	t.Helper()
	db := helpers.NewTestDB(t)
	logger := zerolog.Nop()
	plans := persistence.NewGormPlanRepository(db, logger)
	configs := persistence.NewGormConfigurationRepository(db, logger)

	m := common.NewMediator()
	registrations := map[reflect.Type]common.RequestHandler{
		reflect.TypeOf(&commands.SimulateDiveCommand{}):       commands.NewSimulateDiveHandler(plans, configs, logger),
		reflect.TypeOf(&commands.FixSegmentDistanceCommand{}): commands.NewFixSegmentDistanceHandler(plans, configs, logger),
		reflect.TypeOf(&commands.SavePlanCommand{}):           commands.NewSavePlanHandler(plans, logger),
		reflect.TypeOf(&commands.DeletePlanCommand{}):         commands.NewDeletePlanHandler(plans, logger),
		reflect.TypeOf(&commands.SaveConfigurationCommand{}):  commands.NewSaveConfigurationHandler(configs, logger),
		reflect.TypeOf(&queries.GetPlanQuery{}):               queries.NewGetPlanHandler(plans),
		reflect.TypeOf(&queries.ListPlansQuery{}):             queries.NewListPlansHandler(plans),
		reflect.TypeOf(&queries.GetConfigurationQuery{}):      queries.NewGetConfigurationHandler(configs),
	}
	for requestType, handler := range registrations {
		require.NoError(t, m.Register(requestType, handler))
	}

	return caveplanhttp.NewServer(m, logger), configs
}

func doJSON(t *testing.T, server *caveplanhttp.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Engine().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	server, _ := newTestServer(t)
	rec := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_PlanLifecycle(t *testing.T) {
	// Arrange
	server, _ := newTestServer(t)

	// Act - create
	rec := doJSON(t, server, http.MethodPost, "/api/v1/plans", map[string]interface{}{
		"name": "main line",
		"segments": []map[string]interface{}{
			{"kind": "SWIM", "depth": 20, "distance": 200},
			{"kind": "TURNAROUND"},
		},
	})

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Segments []struct {
			Kind string `json:"kind"`
		} `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Len(t, created.Segments, 2)

	// Act - fetch
	rec = doJSON(t, server, http.MethodGet, "/api/v1/plans/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Act - delete
	rec = doJSON(t, server, http.MethodDelete, "/api/v1/plans/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/api/v1/plans/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_SimulatePlan(t *testing.T) {
	// Arrange
	server, configs := newTestServer(t)
	require.NoError(t, configs.Save(context.Background(), &dive.StandingConfiguration{
		ConsumptionRate: 20,
		SwimSpeed:       10,
		TankVolume:      22,
		FillPressure:    220,
		StageTime:       5,
	}))

	rec := doJSON(t, server, http.MethodPost, "/api/v1/plans", map[string]interface{}{
		"name": "main line",
		"segments": []map[string]interface{}{
			{"kind": "SWIM", "depth": 20, "distance": 200},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Act
	rec = doJSON(t, server, http.MethodPost, "/api/v1/plans/"+created.ID+"/simulate", nil)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var simulation struct {
		TurnPressure float64 `json:"turnPressure"`
		Breach       bool    `json:"breach"`
		Results      []struct {
			RemainingPressure float64 `json:"remainingPressure"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &simulation))
	assert.Equal(t, 150.0, simulation.TurnPressure)
	assert.False(t, simulation.Breach)
	require.Len(t, simulation.Results, 1)
	assert.InDelta(t, 165.45, simulation.Results[0].RemainingPressure, 0.01)
}

func TestServer_SimulateWithoutConfiguration(t *testing.T) {
	// Arrange
	server, _ := newTestServer(t)
	rec := doJSON(t, server, http.MethodPost, "/api/v1/plans", map[string]interface{}{
		"name":     "main line",
		"segments": []map[string]interface{}{},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Act
	rec = doJSON(t, server, http.MethodPost, "/api/v1/plans/"+created.ID+"/simulate", nil)

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_ConfigurationRoundTrip(t *testing.T) {
	// Arrange
	server, _ := newTestServer(t)

	// Act - nothing saved yet
	rec := doJSON(t, server, http.MethodGet, "/api/v1/configuration", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Act - save
	rec = doJSON(t, server, http.MethodPut, "/api/v1/configuration", map[string]interface{}{
		"consumptionRate": 20,
		"swimSpeed":       10,
		"tankVolume":      22,
		"fillPressure":    220,
		"stageTime":       5,
		"stages": []map[string]interface{}{
			{"id": "s1", "tankVolume": 11, "fillPressure": 220, "reserveInPrimary": true},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Act - read back
	rec = doJSON(t, server, http.MethodGet, "/api/v1/configuration", nil)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg struct {
		ConsumptionRate float64 `json:"consumptionRate"`
		Stages          []struct {
			ID string `json:"id"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, 20.0, cfg.ConsumptionRate)
	require.Len(t, cfg.Stages, 1)
	assert.Equal(t, "s1", cfg.Stages[0].ID)
}

func TestServer_InvalidConfigurationRejected(t *testing.T) {
	server, _ := newTestServer(t)
	rec := doJSON(t, server, http.MethodPut, "/api/v1/configuration", map[string]interface{}{
		"consumptionRate": -1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
