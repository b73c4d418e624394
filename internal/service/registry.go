package service

import (
	"errors"
	"fmt"
	"sort"

	"review_collector/internal/collector"
	"review_collector/internal/domain"
)

var ErrUnknownProvider = errors.New("unknown provider")

// Provider binds an adapter to how its records are stored.
type Provider struct {
	Adapter     collector.Adapter
	Type        domain.SourceType
	Platform    string
	Reliability float64
}

// Registry maps provider names and aliases such as "social" to providers.
type Registry struct {
	providers map[string]Provider
	aliases   map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		aliases:   make(map[string][]string),
	}
}

func (r *Registry) Register(name string, p Provider) {
	r.providers[name] = p
}

func (r *Registry) Alias(name string, targets ...string) {
	r.aliases[name] = targets
}

// Names lists registered providers and aliases, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers)+len(r.aliases))
	for name := range r.providers {
		names = append(names, name)
	}
	for name := range r.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve expands aliases and keeps the first occurrence of each provider,
// in request order.
func (r *Registry) Resolve(names []string) ([]NamedProvider, error) {
	var (
		resolved []NamedProvider
		seen     = make(map[string]bool)
	)

	var add func(name string, depth int) error
	add = func(name string, depth int) error {
		if targets, ok := r.aliases[name]; ok && depth == 0 {
			for _, target := range targets {
				if err := add(target, depth+1); err != nil {
					return err
				}
			}
			return nil
		}
		p, ok := r.providers[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownProvider, name)
		}
		if !seen[name] {
			seen[name] = true
			resolved = append(resolved, NamedProvider{Name: name, Provider: p})
		}
		return nil
	}

	for _, name := range names {
		if err := add(name, 0); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

type NamedProvider struct {
	Name string
	Provider
}
