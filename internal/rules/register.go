package rules

import (
	"fmt"

	"urbansim/internal/core"
)

func init() {
	core.Register("infrastructure", func() core.Module { return NewInfrastructure() })
	core.Register("policy", func() core.Module { return NewPolicy(DefaultPolicies()) })
	core.Register("education", func() core.Module { return NewEducation() })
	core.Register("healthcare", func() core.Module { return NewHealthcare() })
	core.Register("spatial-effects", func() core.Module { return NewSpatialEffects() })
	core.Register("population", func() core.Module { return NewPopulation() })
	core.Register("transportation", func() core.Module { return NewTransportation() })
	core.Register("housing-market", func() core.Module { return NewHousingMarket() })
	core.Register("safety", func() core.Module { return NewSafety() })
	core.Register("commercial", func() core.Module { return NewCommercial() })
}

// PipelineFromNames builds a priority-ordered pipeline from registered
// module names.
func PipelineFromNames(names []string) ([]core.Module, error) {
	registry := core.Modules()
	pipeline := make([]core.Module, 0, len(names))
	for _, name := range names {
		factory, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown rule module %q", name)
		}
		pipeline = append(pipeline, factory())
	}
	core.SortPipeline(pipeline)
	return pipeline, nil
}
