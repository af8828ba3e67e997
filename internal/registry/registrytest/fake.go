// Package registrytest provides an in-memory registry.Client for tests.
//
// The fake honors the registry contract: Find returns (nil, nil) for absent
// resources, Create is find-first, Upsert overwrites, duplicate grants are
// swallowed. Every call is appended to Ops so tests can assert ordering.
package registrytest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

// Fake is an in-memory registry.Client.
type Fake struct {
	mu        sync.Mutex
	resources map[registry.Kind]map[string]*registry.Resource
	nextID    int

	// Ops records every call as "verb:kind:name" in invocation order.
	Ops []string

	// Grants holds the distinct access grants issued; re-issuing an
	// identical grant does not grow it.
	Grants map[string]registry.GrantSpec

	// Objects holds uploaded payloads by "bucket/key".
	Objects map[string][]byte

	// FailCreate and FailUpsert inject per-name errors.
	FailCreate map[string]error
	FailUpsert map[string]error

	// FailFind injects per-kind find errors (remote failures, not absence).
	FailFind map[registry.Kind]error

	// WaitSequence, when set, is fed to WaitUntil predicates in order; if it
	// is exhausted before the predicate reports done, WaitUntil returns the
	// last entry with ErrWaitTimeout.
	WaitSequence []*registry.Resource
}

var _ registry.Client = (*Fake)(nil)

// NewFake creates an empty fake registry.
func NewFake() *Fake {
	return &Fake{
		resources:  make(map[registry.Kind]map[string]*registry.Resource),
		Grants:     make(map[string]registry.GrantSpec),
		Objects:    make(map[string][]byte),
		FailCreate: make(map[string]error),
		FailUpsert: make(map[string]error),
		FailFind:   make(map[registry.Kind]error),
	}
}

// Seed stores a resource as pre-existing remote state.
func (f *Fake) Seed(r *registry.Resource) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(r)
}

func (f *Fake) store(r *registry.Resource) {
	if f.resources[r.Kind] == nil {
		f.resources[r.Kind] = make(map[string]*registry.Resource)
	}
	f.resources[r.Kind][r.Name] = r
}

func (f *Fake) newID(kind registry.Kind) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", kind, f.nextID)
}

// Find implements registry.Client.
func (f *Fake) Find(_ context.Context, filter registry.Filter) (*registry.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ops = append(f.Ops, fmt.Sprintf("find:%s:%s", filter.Kind, filter.Name))

	if err := f.FailFind[filter.Kind]; err != nil {
		return nil, err
	}
	r, ok := f.resources[filter.Kind][filter.Name]
	if !ok {
		return nil, nil
	}
	return r, nil
}

// Create implements registry.Client with find-first semantics.
func (f *Fake) Create(_ context.Context, s registry.Spec) (*registry.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ops = append(f.Ops, fmt.Sprintf("create:%s:%s", s.SpecKind(), s.SpecName()))

	if err := f.FailCreate[s.SpecName()]; err != nil {
		return nil, err
	}

	switch spec := s.(type) {
	case registry.GrantSpec:
		key := fmt.Sprintf("%s:%s:%s:%d", spec.SourceBoundaryID, spec.BoundaryName, spec.Protocol, spec.Port)
		f.Grants[key] = spec
		return &registry.Resource{Kind: registry.KindAccessGrant, ID: key, Name: spec.BoundaryName}, nil
	case registry.ObjectSpec:
		f.Objects[spec.Bucket+"/"+spec.Key] = spec.Body
		return &registry.Resource{Kind: registry.KindStorageObject, ID: spec.Key, Name: spec.Key}, nil
	}

	if existing, ok := f.resources[s.SpecKind()][s.SpecName()]; ok {
		return existing, nil
	}
	r := &registry.Resource{
		Kind: s.SpecKind(),
		ID:   f.newID(s.SpecKind()),
		Name: s.SpecName(),
	}
	f.store(r)
	return r, nil
}

// Upsert implements registry.Client with overwrite semantics.
func (f *Fake) Upsert(_ context.Context, s registry.Spec) (*registry.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ops = append(f.Ops, fmt.Sprintf("upsert:%s:%s", s.SpecKind(), s.SpecName()))

	if err := f.FailUpsert[s.SpecName()]; err != nil {
		return nil, err
	}

	if existing, ok := f.resources[s.SpecKind()][s.SpecName()]; ok {
		return existing, nil
	}
	r := &registry.Resource{
		Kind: s.SpecKind(),
		ID:   f.newID(s.SpecKind()),
		Name: s.SpecName(),
	}
	f.store(r)
	return r, nil
}

// WaitUntil implements registry.Client by feeding WaitSequence to the
// predicate, falling back to a single lookup when no sequence is set.
func (f *Fake) WaitUntil(ctx context.Context, filter registry.Filter, p registry.Predicate, _ time.Duration) (*registry.Resource, error) {
	f.mu.Lock()
	sequence := f.WaitSequence
	f.mu.Unlock()

	if len(sequence) == 0 {
		res, err := f.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
		if res != nil {
			if done, perr := p(res); perr != nil {
				return res, perr
			} else if done {
				return res, nil
			}
		}
		return res, fmt.Errorf("waiting for %s %q: %w", filter.Kind, filter.Name, registry.ErrWaitTimeout)
	}

	var last *registry.Resource
	for _, res := range sequence {
		last = res
		done, err := p(res)
		if err != nil {
			return res, err
		}
		if done {
			return res, nil
		}
	}
	return last, fmt.Errorf("waiting for %s %q: %w", filter.Kind, filter.Name, registry.ErrWaitTimeout)
}

// Count returns how many resources of a kind exist.
func (f *Fake) Count(kind registry.Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resources[kind])
}

// Get returns a stored resource or nil.
func (f *Fake) Get(kind registry.Kind, name string) *registry.Resource {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resources[kind][name]
}
