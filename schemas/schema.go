// Package schemas generates the JSON schema of the dbcli alias file.
package schemas

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/devantler-tech/dbcli/pkg/io/validator"
	"github.com/invopop/jsonschema"
)

// AliasFile reflects the schema of v1alpha1.AliasFile.
func AliasFile() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    customTypeMapper,
	}
	schema := reflector.Reflect(&v1alpha1.AliasFile{})

	customizeSchema(schema)

	return schema
}

// AliasFileJSON returns the indented JSON encoding of AliasFile.
func AliasFileJSON() ([]byte, error) {
	schemaJSON, err := json.MarshalIndent(AliasFile(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return schemaJSON, nil
}

// --- internals ---

// customizeSchema applies all schema customizations.
func customizeSchema(schema *jsonschema.Schema) {
	schema.ID = ""
	schema.Title = "dbcli Alias File"
	schema.Description = "JSON schema for dbcli saved connections (config.yaml)"
	schema.Required = []string{"connections"}

	if version, ok := schema.Properties.Get("version"); ok && version != nil {
		version.Description = "Alias file schema version."
		version.Default = v1alpha1.SchemaVersion
	}

	connections, ok := schema.Properties.Get("connections")
	if !ok || connections == nil || connections.AdditionalProperties == nil {
		return
	}

	descriptor := connections.AdditionalProperties
	descriptor.Required = []string{"db_type", "container", "user"}

	setPattern(descriptor, "container", validator.ContainerNamePattern)
	// MongoDB connections may be unauthenticated.
	setPattern(descriptor, "user", "^$|"+validator.UsernamePattern)
	setPattern(descriptor, "database", validator.DatabaseNamePattern)

	if options, ok := descriptor.Properties.Get("options"); ok && options != nil {
		maxKeyLength := uint64(validator.MaxUsernameLength)
		options.PropertyNames = &jsonschema.Schema{
			Pattern:   validator.UsernamePattern,
			MaxLength: &maxKeyLength,
		}
	}
}

func setPattern(schema *jsonschema.Schema, property, pattern string) {
	if prop, ok := schema.Properties.Get(property); ok && prop != nil {
		prop.Pattern = pattern
	}
}

// customTypeMapper maps enum types implementing EnumValuer to string enums.
func customTypeMapper(t reflect.Type) *jsonschema.Schema {
	enumValuerType := reflect.TypeFor[v1alpha1.EnumValuer]()
	ptrType := reflect.PointerTo(t)

	if ptrType.Implements(enumValuerType) {
		zero := reflect.New(t)
		values := zero.Interface().(v1alpha1.EnumValuer).ValidValues()

		enumVals := make([]any, len(values))
		for i, v := range values {
			enumVals[i] = v
		}

		return &jsonschema.Schema{Type: "string", Enum: enumVals}
	}

	return nil
}
