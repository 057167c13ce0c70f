package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/sensors"
	"github.com/markusressel/fuzzy2go/internal/util"
	"github.com/qdm12/reprint"
)

type SensorResponse struct {
	Id     string                     `json:"id"`
	Config configuration.SensorConfig `json:"config"`
	// MovingAvg is the raw moving average of the sensor
	MovingAvg float64 `json:"movingAvg"`
	// Value is MovingAvg on the normalized axis of the engine
	Value int `json:"value"`
}

func registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensor")

	group.GET("/", getSensors)
	group.GET("/:"+urlParamId+"/", getSensor)
}

func newSensorResponse(sensor sensors.Sensor) SensorResponse {
	avg := sensor.GetMovingAvg()
	return SensorResponse{
		Id:        sensor.GetId(),
		Config:    reprint.This(sensor.GetConfig()).(configuration.SensorConfig),
		MovingAvg: avg,
		Value:     sensors.Normalize(sensor.GetConfig(), avg),
	}
}

func getSensors(c echo.Context) error {
	items := sensors.SensorMap.Items()
	data := make([]SensorResponse, 0, len(items))
	for _, id := range util.SortedKeys(items) {
		data = append(data, newSensorResponse(items[id]))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	sensor, exists := sensors.SensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, newSensorResponse(sensor), indentationChar)
	}
}
