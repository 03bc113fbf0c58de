package repository

import (
	"encoding/json"
	"errors"

	"github.com/go-kit/log/level"
	"github.com/go-resty/resty/v2"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/types"
)

func handleError(response *resty.Response) error {
	if response.StatusCode() == 404 {
		return types.ErrNotFound
	}
	if response.StatusCode() == 409 {
		return types.ErrConflict
	}
	if response.IsError() {
		var body map[string]interface{}
		uErr := json.Unmarshal(response.Body(), &body)
		if uErr != nil {
			level.Error(global.Logger).Log(uErr, "Failed to unmarshal response")
			return uErr
		}
		if errDesc, ok := body["error"]; ok {
			return errors.New(errDesc.(string))
		}
		return types.ErrBadRequest
	}
	return nil
}
