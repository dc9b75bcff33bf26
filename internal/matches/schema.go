// AngelaMos | 2026
// schema.go

package matches

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/carterperez-dev/pitchside/internal/core"
)

// envelopeSchema describes the API-Football response envelope. Every
// endpoint wraps its data the same way; the response array's element shape
// varies per endpoint so only the envelope is pinned down here.
const envelopeSchema = `{
	"type": "object",
	"required": ["response"],
	"properties": {
		"get": {"type": "string"},
		"results": {"type": "integer"},
		"response": {"type": "array"},
		"paging": {
			"type": "object",
			"properties": {
				"current": {"type": "integer"},
				"total": {"type": "integer"}
			}
		}
	}
}`

var compiledEnvelope = gojsonschema.NewStringLoader(envelopeSchema)

// validateEnvelope rejects payloads that do not match the upstream contract
// before any decoding happens.
func validateEnvelope(body []byte) error {
	result, err := gojsonschema.Validate(
		compiledEnvelope,
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return fmt.Errorf("validate upstream payload: %v: %w", err, core.ErrUpstreamSchema)
	}

	if !result.Valid() {
		return fmt.Errorf(
			"upstream payload does not match contract: %v: %w",
			result.Errors(),
			core.ErrUpstreamSchema,
		)
	}

	return nil
}
