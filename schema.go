package defaultjson

import (
	"github.com/tablekit/defaultjson/types"
)

// LoadSchema parses a JSON schema document and gate-checks every field
// default against its field type before returning the type tree. A schema
// whose defaults do not validate is rejected outright, so a successfully
// loaded schema never produces decode failures for its own defaults.
func LoadSchema(data []byte) (types.Type, error) {
	t, err := types.ParseSchema(data)
	if err != nil {
		return nil, err
	}
	if err := validateSchemaDefaults(t); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadSchemaYAML is LoadSchema for the YAML form of the document.
func LoadSchemaYAML(data []byte) (types.Type, error) {
	t, err := types.ParseSchemaYAML(data)
	if err != nil {
		return nil, err
	}
	if err := validateSchemaDefaults(t); err != nil {
		return nil, err
	}
	return t, nil
}

func validateSchemaDefaults(t types.Type) error {
	switch ct := t.(type) {
	case *types.StructType:
		for _, f := range ct.Fields() {
			if f.Default != nil {
				if _, err := ValidateOrReject(f.Name, f.Type, f.Default); err != nil {
					return err
				}
			}
			if err := validateSchemaDefaults(f.Type); err != nil {
				return err
			}
		}
	case types.ListType:
		return validateSchemaDefaults(ct.Element)
	case types.MapType:
		if err := validateSchemaDefaults(ct.Key); err != nil {
			return err
		}
		return validateSchemaDefaults(ct.Value)
	}
	return nil
}
