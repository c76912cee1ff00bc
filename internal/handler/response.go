package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HeaderDataSource marks responses served from the built-in seed set.
const HeaderDataSource = "X-Data-Source"

// DataSourceSeed is reported when the record store was unavailable.
const DataSourceSeed = "seed"

// APIResponse describes the standard envelope returned by the API. Source is only set
// when the data did not come from the record store.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Source  string `json:"source,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	return respond(c, status, APIResponse{Status: "success", Message: message, Data: data})
}

// DirectorySuccess sends directory data, flagging it in the header and the envelope when it
// was served from the seed set.
func DirectorySuccess(c echo.Context, status int, message string, data any, fromSeed bool) error {
	payload := APIResponse{Status: "success", Message: message, Data: data}
	if fromSeed {
		c.Response().Header().Set(HeaderDataSource, DataSourceSeed)
		payload.Source = DataSourceSeed
	}
	return respond(c, status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{Status: "error", Message: message})
}

func respond(c echo.Context, status int, payload APIResponse) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, payload)
}
