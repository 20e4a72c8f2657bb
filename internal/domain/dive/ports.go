package dive

import "context"

// PlanRepository persists dive plans.
//
// Loads follow the tolerant key-value contract: a missing or unreadable plan
// comes back as (nil, nil), never as an error. Errors are reserved for the
// store itself failing.
type PlanRepository interface {
	Save(ctx context.Context, plan *Plan) error
	FindByID(ctx context.Context, id string) (*Plan, error)
	FindByName(ctx context.Context, name string) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
	Delete(ctx context.Context, id string) error
}

// ConfigurationRepository persists the standing configuration.
//
// Load returns (nil, nil) when no configuration has been saved yet or the
// stored row cannot be decoded.
type ConfigurationRepository interface {
	Save(ctx context.Context, cfg *StandingConfiguration) error
	Load(ctx context.Context) (*StandingConfiguration, error)
}
