// Package builtin registers the bundled framework adapters.
package builtin

import (
	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/adapter/angular"
	"github.com/teranos/sketchflow/adapter/next"
	"github.com/teranos/sketchflow/adapter/react"
	"github.com/teranos/sketchflow/adapter/solid"
	"github.com/teranos/sketchflow/adapter/svelte"
	"github.com/teranos/sketchflow/adapter/three"
	"github.com/teranos/sketchflow/adapter/vue"
)

// Adapters returns a fresh instance of every bundled adapter in
// registration order.
func Adapters() []adapter.Adapter {
	return []adapter.Adapter{
		react.New(),
		next.New(),
		vue.New(),
		svelte.New(),
		angular.New(),
		solid.New(),
		three.New(),
	}
}

// Register adds every bundled adapter to reg. It fails on the first
// framework that is already registered.
func Register(reg *adapter.Registry) error {
	for _, a := range Adapters() {
		if err := reg.Register(a); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding every bundled adapter.
func NewRegistry() *adapter.Registry {
	reg := adapter.NewRegistry()
	if err := Register(reg); err != nil {
		// Bundled frameworks are distinct
		panic(err)
	}
	return reg
}
