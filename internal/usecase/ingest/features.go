package ingest

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// marshalFeatures serializes the extraction feature breakdown for the jsonb
// column on actions.
func marshalFeatures(features map[string]float64) (datatypes.JSON, error) {
	if len(features) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
