package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fuzzy2go/internal/actuators"
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/loader"
	"github.com/markusressel/fuzzy2go/internal/sensors"
	"github.com/markusressel/fuzzy2go/internal/systems"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func createTestService(t *testing.T) *echo.Echo {
	config := configuration.SystemConfig{ID: "pendulum", Builtin: loader.BuiltinInvertedPendulum}
	system, err := systems.CreateSystem(config)
	assert.NoError(t, err)

	sensor := &sensors.FileSensor{Config: configuration.SensorConfig{
		ID:    "angle",
		File:  &configuration.FileSensorConfig{Path: "/dev/null"},
		Scale: &configuration.ScaleConfig{Min: -90, Max: 90},
	}}
	sensor.SetMovingAvg(0)
	sensors.SensorMap.Set(sensor.GetId(), sensor)

	actuator := &actuators.FileActuator{Config: configuration.ActuatorConfig{
		ID:   "motor",
		File: &configuration.FileActuatorConfig{Path: "/dev/null"},
	}}
	actuators.ActuatorMap.Set(actuator.GetId(), actuator)

	t.Cleanup(func() {
		systems.SystemMap.Remove(system.GetId())
		sensors.SensorMap.Remove(sensor.GetId())
		actuators.ActuatorMap.Remove(actuator.GetId())
	})

	return CreateRestService(prometheus.NewRegistry())
}

func request(service *echo.Echo, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if len(body) > 0 {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	service.ServeHTTP(rec, req)
	return rec
}

func TestIsAlive(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := request(service, http.MethodGet, "/alive", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSystems(t *testing.T) {
	// GIVEN
	service := createTestService(t)
	system, _ := systems.SystemMap.Get("pendulum")
	_, err := system.Evaluate(map[string]int{"Angle": 60, "Velocity": 125})
	assert.NoError(t, err)

	// WHEN
	rec := request(service, http.MethodGet, "/system/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var response []SystemResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.Equal(t, "pendulum", response[0].Id)
	assert.Equal(t, 134, response[0].Outputs["Force"])
	assert.Equal(t, uint64(1), response[0].Stats.Cycles)
	assert.NotNil(t, response[0].LastUpdate)
}

func TestGetSystem(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := request(service, http.MethodGet, "/system/pendulum/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var response SystemDetailResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "pendulum", response.Id)
	assert.Len(t, response.Definition.Rules, 15)
	assert.Equal(t, "Angle", response.Definition.Inputs[0].Name)
	assert.Nil(t, response.LastResult)
}

func TestGetSystem_NotFound(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := request(service, http.MethodGet, "/system/unknown/", "")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No item with id 'unknown' found")
}

func TestEvaluateSystem(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := request(service, http.MethodPost, "/system/pendulum/evaluate/", `{"Angle": 60, "Velocity": 125}`)

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result fuzzy.Result
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	force, ok := result.Output("Force")
	assert.True(t, ok)
	assert.Equal(t, 134, force)

	system, _ := systems.SystemMap.Get("pendulum")
	assert.Equal(t, uint64(0), system.Stats().Cycles)
}

func TestEvaluateSystem_MissingInput(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := request(service, http.MethodPost, "/system/pendulum/evaluate/", `{"Angle": 60}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing input value: Velocity")
}

func TestEvaluateSystem_UnknownInput(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := request(service, http.MethodPost, "/system/pendulum/evaluate/", `{"Angle": 60, "Velocity": 125, "Height": 3}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown input variable: Height")
}

func TestGetSensors(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := request(service, http.MethodGet, "/sensor/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var response []SensorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.Equal(t, "angle", response[0].Id)
	// 0 is the center of [-90..90]
	assert.Equal(t, 128, response[0].Value)
}

func TestGetActuator(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := request(service, http.MethodGet, "/actuator/motor/", "")
	missing := request(service, http.MethodGet, "/actuator/fan/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var response ActuatorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "motor", response.Id)
	assert.Nil(t, response.Value)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestStatisticsServer(t *testing.T) {
	// GIVEN
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "fuzzy2go_test_total", Help: "test"}))
	server := CreateStatisticsServer(registry)

	// WHEN
	rec := request(server, http.MethodGet, "/metrics", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fuzzy2go_test_total 0")
}
