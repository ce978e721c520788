package tools

import (
	"encoding/json"

	"github.com/pkg/errors"
)

func decodeInput(parameters string, v any) error {
	if err := json.Unmarshal([]byte(parameters), v); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	return nil
}
