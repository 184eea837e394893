package core

import "sort"

// Module is one unit of rule logic applied to every cell once per step.
// Apply reads the acting cell's current metrics (and, for spillover
// modules, mutates selected neighbor metrics). Neighbors processed earlier
// in the same step may already carry updated values.
type Module interface {
	Name() string
	Priority() int
	Apply(cell *Cell, neighbors []*Cell)
}

// Factory constructs a rule module with its default configuration.
type Factory func() Module

var modules = map[string]Factory{}

// Register adds a module factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	modules[name] = f
}

// Modules exposes the registry of available rule module factories.
func Modules() map[string]Factory {
	return modules
}

// SortPipeline orders modules by ascending priority. The sort is stable so
// equal priorities keep their registration order.
func SortPipeline(pipeline []Module) {
	sort.SliceStable(pipeline, func(i, j int) bool {
		return pipeline[i].Priority() < pipeline[j].Priority()
	})
}
