//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package registry

// RegisterFunc registers a typed factory function under the function's own
// declared identifier, or the WithName override. The factory's parameters are
// the loosely-typed Params it receives.
func RegisterFunc[T any](r *Registry, kind Kind, construct func(Params) (T, error), opt ...Option) (*Handle, error) {
	name := Name(FuncName(construct), opt...)
	return r.Register(kind, name, func(params Params) (any, error) {
		return construct(params)
	}, opt...)
}

// MustRegisterFunc is RegisterFunc on the default registry, panicking on
// error, for declaration-time use.
func MustRegisterFunc[T any](kind Kind, construct func(Params) (T, error), opt ...Option) *Handle {
	handle, err := RegisterFunc(defaultRegistry, kind, construct, opt...)
	if err != nil {
		panic(err)
	}
	return handle
}

// RegisterType registers struct type T under its own declared type name, or
// the WithName override. Construction decodes Params into T's fields, so the
// exported fields are the factory's parameters. T should embed Entity so
// instances answer InfoOf.
func RegisterType[T any](r *Registry, kind Kind, opt ...Option) (*Handle, error) {
	name := Name(TypeName[T](), opt...)
	return r.Register(kind, name, func(params Params) (any, error) {
		inst := new(T)
		if err := DecodeParams(params, inst); err != nil {
			return nil, err
		}
		return inst, nil
	}, opt...)
}

// MustRegisterType is RegisterType on the default registry, panicking on
// error, for declaration-time use.
func MustRegisterType[T any](kind Kind, opt ...Option) *Handle {
	handle, err := RegisterType[T](defaultRegistry, kind, opt...)
	if err != nil {
		panic(err)
	}
	return handle
}
