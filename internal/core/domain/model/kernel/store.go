package kernel

import (
	"fmt"
	"strings"

	"ordersim/internal/pkg/errs"
)

// Store is a value object naming the storefront an order was placed under.
// Each storefront carries an order-identifier prefix and an inventory
// category used when notifying the external inventory system. Store-specific
// behavior lives in this table rather than in duplicated code paths.
type Store struct {
	name     string
	prefix   string
	category string
}

// NewStore creates a storefront entry for the configured set.
// Name and prefix are required; category defaults to "general".
func NewStore(name, prefix, category string) (Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Store{}, errs.NewValueIsRequiredError("store name")
	}

	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return Store{}, errs.NewValueIsRequiredError("store prefix")
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = "general"
	}

	return Store{name: name, prefix: prefix, category: category}, nil
}

// Name returns the storefront identifier used on the wire, e.g. "kapruka".
func (s Store) Name() string {
	return s.name
}

// Prefix returns the order-identifier prefix, e.g. "GLW".
func (s Store) Prefix() string {
	return s.prefix
}

// Category returns the inventory category this storefront maps to.
func (s Store) Category() string {
	return s.category
}

// IsEqual compares storefronts by name.
func (s Store) IsEqual(other Store) bool {
	return s.name == other.name
}

// Validate rejects the zero value.
func (s Store) Validate() error {
	if s.name == "" {
		return errs.NewValueIsRequiredError("store must be resolved via a StoreSet")
	}
	return nil
}

// StoreSet is the configured, extensible set of valid storefronts.
// Orders may only be created under a store the set resolves.
type StoreSet struct {
	byName map[string]Store
	names  []string
}

// NewStoreSet builds a registry from the configured storefronts.
// Names must be unique within the set.
func NewStoreSet(stores []Store) (StoreSet, error) {
	if len(stores) == 0 {
		return StoreSet{}, errs.NewValueIsRequiredError("stores")
	}

	set := StoreSet{byName: make(map[string]Store, len(stores))}
	for _, store := range stores {
		if err := store.Validate(); err != nil {
			return StoreSet{}, err
		}
		if _, exists := set.byName[store.Name()]; exists {
			return StoreSet{}, errs.NewValueIsInvalidErrorWithCause(
				"stores", fmt.Errorf("store %q is configured twice", store.Name()))
		}
		set.byName[store.Name()] = store
		set.names = append(set.names, store.Name())
	}

	return set, nil
}

// DefaultStoreSet returns the built-in storefront table used when no
// configuration is supplied.
func DefaultStoreSet() StoreSet {
	entries := []struct{ name, prefix, category string }{
		{"kapruka", "GLW", "gifts"},
		{"kapuruka", "KPR", "general"},
		{"lassana_flora", "LSF", "flowers"},
		{"onlinekade", "OLK", "electronics"},
	}

	stores := make([]Store, 0, len(entries))
	for _, e := range entries {
		store, err := NewStore(e.name, e.prefix, e.category)
		if err != nil {
			panic(err) // static table, cannot fail
		}
		stores = append(stores, store)
	}

	set, err := NewStoreSet(stores)
	if err != nil {
		panic(err)
	}
	return set
}

// Resolve looks up a storefront by name.
// Unknown names fail with a value-is-invalid error naming the valid set.
func (s StoreSet) Resolve(name string) (Store, error) {
	store, ok := s.byName[strings.TrimSpace(name)]
	if !ok {
		return Store{}, errs.NewValueIsInvalidErrorWithCause(
			"store",
			fmt.Errorf("%q is not one of: %s", name, strings.Join(s.names, ", ")),
		)
	}
	return store, nil
}

// Names returns the configured storefront names in configuration order.
func (s StoreSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// All returns the configured storefronts in configuration order.
func (s StoreSet) All() []Store {
	out := make([]Store, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}
