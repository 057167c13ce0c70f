package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fuzzy2go/internal/actuators"
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/util"
	"github.com/qdm12/reprint"
)

type ActuatorResponse struct {
	Id     string                       `json:"id"`
	Config configuration.ActuatorConfig `json:"config"`
	// Value is the last value applied to the actuator, absent if there is none
	Value *int `json:"value,omitempty"`
}

func registerActuatorEndpoints(rest *echo.Echo) {
	group := rest.Group("/actuator")

	group.GET("/", getActuators)
	group.GET("/:"+urlParamId+"/", getActuator)
}

func newActuatorResponse(actuator actuators.Actuator) ActuatorResponse {
	response := ActuatorResponse{
		Id:     actuator.GetId(),
		Config: reprint.This(actuator.GetConfig()).(configuration.ActuatorConfig),
	}
	if value := actuator.GetLastSetValue(); value != actuators.InitialLastSetValue {
		response.Value = &value
	}
	return response
}

func getActuators(c echo.Context) error {
	items := actuators.ActuatorMap.Items()
	data := make([]ActuatorResponse, 0, len(items))
	for _, id := range util.SortedKeys(items) {
		data = append(data, newActuatorResponse(items[id]))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getActuator(c echo.Context) error {
	id := c.Param(urlParamId)

	actuator, exists := actuators.ActuatorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, newActuatorResponse(actuator), indentationChar)
}
