package service

import (
	"github.com/neisdata/neis/internal/aggregate"
	"github.com/neisdata/neis/internal/model"
)

// ScopeNational is the scope under which the national aggregate is resolved
// and overridden.
const ScopeNational = "national"

// EmissionsResolver decides how an emissions figure is derived for a scope.
// The precedence is strict: disabled beats manual beats calculated.
type EmissionsResolver struct {
	overrides *OverrideStore
	engine    *aggregate.Engine
}

// NewEmissionsResolver creates a resolver over the given override store and
// aggregation engine.
func NewEmissionsResolver(overrides *OverrideStore, engine *aggregate.Engine) *EmissionsResolver {
	return &EmissionsResolver{overrides: overrides, engine: engine}
}

// Resolve returns the emissions figure for a scope and the tag explaining how
// it was derived:
//
//  1. estimation disabled: (0, disabled). Overrides are never consulted.
//  2. override requested and recorded for the scope: (value, user_entered).
//     This holds even for scopes that do not exist in the dataset; whether a
//     scope names a real region is the caller's concern.
//  3. otherwise: the calculated total, national when scope is "national",
//     the region sum otherwise.
func (r *EmissionsResolver) Resolve(scope string, estimate, useOverride bool) (float64, string) {
	if !estimate {
		return 0, model.EmissionsDisabled
	}
	if useOverride {
		if v, ok := r.overrides.Get(scope); ok {
			return v, model.EmissionsUserEntered
		}
	}
	if scope == ScopeNational {
		return r.engine.NationalEmissions(), model.EmissionsCalculated
	}
	return r.engine.RegionEmissions(scope), model.EmissionsCalculated
}
