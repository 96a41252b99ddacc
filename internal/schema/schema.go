//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package schema generates JSON schemas for tool arguments from Go types.
package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-evalkit-go/log"
	"trpc.group/trpc-go/trpc-evalkit-go/tool"
)

// Generate produces a JSON schema from a reflect.Type. Struct fields honor
// `json` tags for naming and `jsonschema` tags for description, enum and
// required markers.
func Generate(t reflect.Type) *tool.Schema {
	return generate(t)
}

func generate(t reflect.Type) *tool.Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return generate(t.Elem())
	case reflect.String:
		return &tool.Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &tool.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &tool.Schema{Type: "number"}
	case reflect.Bool:
		return &tool.Schema{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &tool.Schema{
			Type:  "array",
			Items: generate(t.Elem()),
		}
	case reflect.Map:
		return &tool.Schema{
			Type:                 "object",
			AdditionalProperties: generate(t.Elem()),
		}
	case reflect.Struct:
		return generateStruct(t)
	default:
		// Interfaces and anything else accept any JSON value.
		return &tool.Schema{Type: "object"}
	}
}

func generateStruct(t reflect.Type) *tool.Schema {
	schema := &tool.Schema{
		Type:       "object",
		Properties: map[string]*tool.Schema{},
	}
	required := make([]string, 0)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		isOmitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				if commaIdx > 0 {
					fieldName = jsonTag[:commaIdx]
				}
				isOmitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				fieldName = jsonTag
			}
		}

		fieldSchema := generate(field.Type)
		requiredByTag, err := applySchemaTag(field.Type, field.Tag, fieldSchema)
		if err != nil {
			log.Errorf("schema tag for field %s: %v", fieldName, err)
		}
		if (field.Type.Kind() != reflect.Ptr && !isOmitEmpty) || requiredByTag {
			required = append(required, fieldName)
		}
		schema.Properties[fieldName] = fieldSchema
	}
	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// applySchemaTag parses a `jsonschema` struct tag and applies its settings.
// Supported items: "description=xxx", "enum=a,enum=b" and "required".
// Enum values are converted to the field's declared type.
func applySchemaTag(fieldType reflect.Type, tag reflect.StructTag, schema *tool.Schema) (bool, error) {
	schemaTag := tag.Get("jsonschema")
	if len(schemaTag) == 0 {
		return false, nil
	}
	requiredByTag := false
	for _, item := range strings.Split(schemaTag, ",") {
		kv := strings.SplitN(item, "=", 2)
		if len(kv) == 1 {
			if kv[0] == "required" {
				requiredByTag = true
			}
			continue
		}
		key, value := kv[0], kv[1]
		switch key {
		case "description":
			schema.Description = value
		case "enum":
			enumValue, err := parseEnumValue(fieldType, value)
			if err != nil {
				return requiredByTag, err
			}
			schema.Enum = append(schema.Enum, enumValue)
		}
	}
	return requiredByTag, nil
}

func parseEnumValue(fieldType reflect.Type, value string) (any, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to int64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to float64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to bool failed: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type: %v", fieldType)
	}
}
