package cmd

import (
	"errors"
	"net/http"

	"storefront/utils"
)

// presentError turns an error into the line shown to the user.
func presentError(err error) string {
	apiErr, ok := utils.AsAPIError(err)
	if !ok {
		return err.Error()
	}
	switch {
	case apiErr.Kind == utils.HTTPFailure && apiErr.StatusCode == http.StatusUnauthorized:
		return apiErr.Message + " (run `storefront login`)"
	case apiErr.Kind == utils.TransportFailure && errors.Is(apiErr, utils.ErrSessionStorage):
		return apiErr.Message + " (check --session-backend)"
	case apiErr.Kind == utils.TransportFailure:
		return apiErr.Message + " (is the gateway running? see --api-url)"
	}
	return apiErr.Message
}
