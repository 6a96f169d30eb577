package orchestrator

import (
	"encoding/json"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
)

// decodeParams unmarshals raw into T and runs it through the shared
// validator, translating either failure into apperr.InputInvalid per the
// dispatch contract's step 1.
func decodeParams[T any](raw json.RawMessage) (T, error) {
	var params T
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, apperr.Wrap(apperr.InputInvalid, err, "malformed tool parameters")
	}
	if err := paramValidate.Struct(params); err != nil {
		return params, apperr.Wrap(apperr.InputInvalid, err, "invalid tool parameters")
	}
	return params, nil
}
