//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package registry

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// FuncName returns the bare identifier of fn's declaration, e.g. "accuracy"
// for func accuracy(...). Anonymous functions yield "funcN"; register those
// with WithName instead.
func FuncName(fn any) string {
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func {
		return ""
	}
	full := runtime.FuncForPC(value.Pointer()).Name()
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	// Method values carry a -fm suffix, generic instantiations a [...] suffix.
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.Index(full, "["); i >= 0 {
		full = full[:i]
	}
	return full
}

// TypeName returns the declared name of T, e.g. "Accuracy" for a struct type.
func TypeName[T any]() string {
	return reflect.TypeFor[T]().Name()
}

// DecodeParams decodes loosely-typed parameters into a typed config struct.
// Unknown keys and incompatible values fail, so factories surface
// construction-time validation errors to Create callers.
func DecodeParams(params Params, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if params == nil {
		params = Params{}
	}
	return decoder.Decode(map[string]any(params))
}

// DefaultParams reflects a config value's fields into a Params map, used to
// record a factory's declared defaults on its registry entry.
func DefaultParams(cfg any) Params {
	params := Params{}
	if err := mapstructure.Decode(cfg, &params); err != nil {
		return nil
	}
	return params
}
