package docmodel

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// ReportKinds are the names accepted by ReportSchema.
var ReportKinds = []string{"components", "stores", "types"}

// ReportSchema returns the JSON Schema of the named analysis report.
func ReportSchema(kind string) (*jsonschema.Schema, error) {
	var v any
	switch kind {
	case "components":
		v = &ComponentReport{}
	case "stores":
		v = &StoreReport{}
	case "types":
		v = &TypeReport{}
	default:
		return nil, fmt.Errorf("unknown report kind %q (want one of %v)", kind, ReportKinds)
	}
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v), nil
}
