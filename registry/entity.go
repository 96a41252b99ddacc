//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package registry

// Entity carries registry info on constructed instances. Embed it in any
// struct produced by a registered factory so the instance can be resolved
// back to its registry name via InfoOf.
type Entity struct {
	info *Info
}

// RegistryInfo returns the info stamped at construction time, or nil.
func (e *Entity) RegistryInfo() *Info {
	return e.info
}

func (e *Entity) setRegistryInfo(info *Info) {
	e.info = info
}

// infoCarrier is satisfied by anything embedding Entity.
type infoCarrier interface {
	setRegistryInfo(*Info)
}

// InfoProvider is satisfied by handles and constructed instances.
type InfoProvider interface {
	RegistryInfo() *Info
}

// InfoOf reports the registry info of a factory handle or of an instance
// previously produced by a registered factory.
func InfoOf(obj any) (*Info, bool) {
	provider, ok := obj.(InfoProvider)
	if !ok {
		return nil, false
	}
	info := provider.RegistryInfo()
	if info == nil {
		return nil, false
	}
	return info, true
}
