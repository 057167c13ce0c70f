package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/systems"
	"github.com/markusressel/fuzzy2go/internal/util"
	"github.com/qdm12/reprint"
)

type SystemResponse struct {
	Id         string         `json:"id"`
	Stats      systems.Stats  `json:"stats"`
	LastUpdate *time.Time     `json:"lastUpdate,omitempty"`
	Outputs    map[string]int `json:"outputs"`
}

type SystemDetailResponse struct {
	SystemResponse
	Definition fuzzy.Definition `json:"definition"`
	LastResult *fuzzy.Result    `json:"lastResult,omitempty"`
}

func registerSystemEndpoints(rest *echo.Echo) {
	group := rest.Group("/system")

	group.GET("/", getSystems)
	group.GET("/:"+urlParamId+"/", getSystem)
	group.POST("/:"+urlParamId+"/evaluate/", evaluateSystem)
}

func newSystemResponse(system *systems.System) (SystemResponse, *fuzzy.Result) {
	response := SystemResponse{
		Id:      system.GetId(),
		Stats:   system.Stats(),
		Outputs: map[string]int{},
	}
	result, lastUpdate, ok := system.LastResult()
	if !ok {
		return response, nil
	}
	response.LastUpdate = &lastUpdate
	for _, output := range result.Outputs {
		if output.Valid {
			response.Outputs[output.Name] = output.Value
		}
	}
	return response, &result
}

func getSystems(c echo.Context) error {
	items := systems.SystemMap.Items()
	data := make([]SystemResponse, 0, len(items))
	for _, id := range util.SortedKeys(items) {
		response, _ := newSystemResponse(items[id])
		data = append(data, response)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSystem(c echo.Context) error {
	id := c.Param(urlParamId)

	system, exists := systems.SystemMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	response, result := newSystemResponse(system)
	if result != nil {
		result = reprint.This(result).(*fuzzy.Result)
	}
	return c.JSONPretty(http.StatusOK, SystemDetailResponse{
		SystemResponse: response,
		Definition:     reprint.This(system.Definition()).(fuzzy.Definition),
		LastResult:     result,
	}, indentationChar)
}

// evaluates a system with the input values of the request body,
// e.g. {"Angle": 60, "Velocity": 125}, without applying the outputs
func evaluateSystem(c echo.Context) error {
	id := c.Param(urlParamId)

	system, exists := systems.SystemMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	inputs := map[string]int{}
	if err := c.Bind(&inputs); err != nil {
		return returnBadRequest(c, err)
	}

	result, err := system.Simulate(inputs)
	if errors.Is(err, fuzzy.ErrUnknownVariable) || errors.Is(err, fuzzy.ErrMissingInput) {
		return returnBadRequest(c, err)
	}
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, result, indentationChar)
}
