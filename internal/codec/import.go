package codec

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// DecodeImport parses an import file. The top-level value must be a JSON
// array: malformed JSON returns types.ErrImportMalformed with the parse
// reason, and any other shape returns types.ErrImportShapeInvalid. Array
// elements that are not objects become empty records.
func DecodeImport(data []byte) ([]types.RawRecord, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrImportMalformed, err)
	}

	elems, ok := top.([]any)
	if !ok {
		return nil, types.ErrImportShapeInvalid
	}

	records := make([]types.RawRecord, len(elems))
	for i, el := range elems {
		obj, ok := el.(map[string]any)
		if !ok {
			records[i] = types.RawRecord{}
			continue
		}
		records[i] = types.RawRecord(obj)
	}
	return records, nil
}
