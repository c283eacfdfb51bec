package plot

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var figureSchema string

// Validate checks the figure against the heatmap figure schema.
// It returns the violations found, if any.
func Validate(fig *Figure) ([]string, error) {
	b, err := json.Marshal(fig)
	if err != nil {
		return nil, fmt.Errorf("could not encode figure: %w", err)
	}
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(figureSchema), gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("could not validate figure: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}
