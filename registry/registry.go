//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package registry manages named factories for metrics, scorers, tools and solvers.
//
// Entries are keyed by (kind, name). Factories are registered once at start-up
// and resolved read-only during evaluation, so a plain RWMutex is enough;
// a second registration of the same name is a programming error, not a race.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Kind classifies registry entries.
type Kind string

// Kinds of registrable components.
const (
	KindMetric Kind = "metric"
	KindScorer Kind = "scorer"
	KindTool   Kind = "tool"
	KindSolver Kind = "solver"
)

// Params carries loosely-typed construction parameters for a factory.
type Params map[string]any

// Info describes a registry entry or an instance constructed from one.
type Info struct {
	// Kind of the entry.
	Kind Kind `json:"kind"`
	// Name is the unique name within the kind.
	Name string `json:"name"`
	// Params records the construction parameters. For a Handle these are the
	// factory's declared defaults; for an instance, the parameters it was
	// constructed with.
	Params Params `json:"params,omitempty"`
}

// DuplicateNameError reports a second registration of the same (kind, name).
type DuplicateNameError struct {
	Kind Kind
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("registry: %s %q is already registered", e.Kind, e.Name)
}

// NotFoundError reports an unresolved (kind, name) lookup.
type NotFoundError struct {
	Kind Kind
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry: %s %q is not registered", e.Kind, e.Name)
}

// Constructor builds a concrete instance from parameters.
type Constructor func(params Params) (any, error)

// Handle is a resolvable factory. It reports its own registry info, so both
// the factory and the instances it constructs answer InfoOf with the same name.
type Handle struct {
	info      *Info
	construct Constructor
}

// RegistryInfo returns the entry's registry info.
func (h *Handle) RegistryInfo() *Info {
	return h.info
}

// Construct builds an instance and stamps it with the entry's registry info.
// Construction-time validation errors from the factory are propagated as is.
func (h *Handle) Construct(params Params) (any, error) {
	inst, err := h.construct(params)
	if err != nil {
		return nil, err
	}
	if carrier, ok := inst.(infoCarrier); ok {
		carrier.setRegistryInfo(&Info{
			Kind:   h.info.Kind,
			Name:   h.info.Name,
			Params: cloneParams(params),
		})
	}
	return inst, nil
}

// Registry is a kind+name keyed store of factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]map[string]*Handle
}

// New creates an empty registry. Use it to isolate registrations in tests;
// most callers share Default().
func New() *Registry {
	return &Registry{entries: make(map[Kind]map[string]*Handle)}
}

var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory under (kind, name). Registering an already present
// name fails with *DuplicateNameError.
func (r *Registry) Register(kind Kind, name string, construct Constructor, opt ...Option) (*Handle, error) {
	if name == "" {
		return nil, fmt.Errorf("registry: %s name is empty", kind)
	}
	if construct == nil {
		return nil, fmt.Errorf("registry: %s %q constructor is nil", kind, name)
	}
	opts := newOptions(opt...)
	handle := &Handle{
		info:      &Info{Kind: kind, Name: name, Params: opts.defaults},
		construct: construct,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byName, ok := r.entries[kind]
	if !ok {
		byName = make(map[string]*Handle)
		r.entries[kind] = byName
	}
	if _, exists := byName[name]; exists {
		return nil, &DuplicateNameError{Kind: kind, Name: name}
	}
	byName[name] = handle
	return handle, nil
}

// MustRegister is Register that panics on error, for declaration-time use.
func (r *Registry) MustRegister(kind Kind, name string, construct Constructor, opt ...Option) *Handle {
	handle, err := r.Register(kind, name, construct, opt...)
	if err != nil {
		panic(err)
	}
	return handle
}

// Resolve returns the factory registered under (kind, name), or *NotFoundError.
func (r *Registry) Resolve(kind Kind, name string) (*Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if handle, ok := r.entries[kind][name]; ok {
		return handle, nil
	}
	return nil, &NotFoundError{Kind: kind, Name: name}
}

// Create resolves (kind, name) and constructs an instance in one step.
func (r *Registry) Create(kind Kind, name string, params Params) (any, error) {
	handle, err := r.Resolve(kind, name)
	if err != nil {
		return nil, err
	}
	return handle.Construct(params)
}

// List returns the sorted names registered under kind.
func (r *Registry) List(kind Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries[kind]))
	for name := range r.entries[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a factory to the default registry.
func Register(kind Kind, name string, construct Constructor, opt ...Option) (*Handle, error) {
	return defaultRegistry.Register(kind, name, construct, opt...)
}

// MustRegister adds a factory to the default registry, panicking on error.
func MustRegister(kind Kind, name string, construct Constructor, opt ...Option) *Handle {
	return defaultRegistry.MustRegister(kind, name, construct, opt...)
}

// Resolve looks up a factory in the default registry.
func Resolve(kind Kind, name string) (*Handle, error) {
	return defaultRegistry.Resolve(kind, name)
}

// Create resolves and constructs from the default registry in one step.
func Create(kind Kind, name string, params Params) (any, error) {
	return defaultRegistry.Create(kind, name, params)
}

func cloneParams(params Params) Params {
	if params == nil {
		return nil
	}
	clone := make(Params, len(params))
	for k, v := range params {
		clone[k] = v
	}
	return clone
}
