// Package adapter holds the provider transforms and the registry that selects
// one of them by provider identifier.
package adapter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/shandysiswandi/mailadapter/internal/email/entity"
)

var (
	// ErrProviderNotRegistered is returned by Dispatch for a provider without a transform.
	ErrProviderNotRegistered = errors.New("adapter: provider not registered")
	// ErrDuplicateProvider is returned by NewRegistry when two strategies share a provider.
	ErrDuplicateProvider = errors.New("adapter: duplicate provider")
	// ErrNilTransform is returned by NewRegistry for a strategy without a transform.
	ErrNilTransform = errors.New("adapter: nil transform")
)

// Transform converts the canonical request into one provider's payload. It must
// be pure and total.
type Transform func(entity.EmailRequest) entity.Payload

// Strategy binds a provider to its transform.
type Strategy struct {
	Provider  entity.Provider
	Transform Transform
}

// DefaultStrategies returns every transform shipped with the service.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Provider: entity.ProviderAWS, Transform: ToAWS},
		{Provider: entity.ProviderOCI, Transform: ToOCI},
	}
}

// Registry maps providers to transforms. It is immutable once built and safe
// for concurrent use.
type Registry struct {
	transforms map[entity.Provider]Transform
}

// NewRegistry builds a registry from strategies.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	dup := lo.FindDuplicatesBy(strategies, func(s Strategy) entity.Provider { return s.Provider })
	if len(dup) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProvider, dup[0].Provider)
	}

	if s, found := lo.Find(strategies, func(s Strategy) bool { return s.Transform == nil }); found {
		return nil, fmt.Errorf("%w: %s", ErrNilTransform, s.Provider)
	}

	return &Registry{
		transforms: lo.SliceToMap(strategies, func(s Strategy) (entity.Provider, Transform) {
			return s.Provider, s.Transform
		}),
	}, nil
}

// Dispatch runs the transform registered for p. An unregistered p yields
// ErrProviderNotRegistered and no transform runs.
func (r *Registry) Dispatch(p entity.Provider, req entity.EmailRequest) (entity.Payload, error) {
	transform, ok := r.transforms[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotRegistered, p)
	}

	return transform(req), nil
}

// Has reports whether p has a registered transform.
func (r *Registry) Has(p entity.Provider) bool {
	_, ok := r.transforms[p]
	return ok
}

// Providers returns the registered providers in sorted order.
func (r *Registry) Providers() []entity.Provider {
	providers := lo.Keys(r.transforms)
	slices.Sort(providers)
	return providers
}
