// Package lifecycle decides when stateful units are kept and when they are
// destroyed and recreated.
//
// A unit is identified by its kind and an optional key. On every
// reconciliation pass the caller states which identities it wants live.
// Identities present before and after keep their instance, and with it
// their state. Identities that disappear are unmounted and their state is
// dropped. Identities that appear are mounted with fresh state. There is
// no path by which state moves from one identity to another.
package lifecycle

import (
	"fmt"
	"log/slog"
	"slices"
)

// Identity is the type-and-key pair the arena compares between passes.
type Identity struct {
	Kind string
	Key  string
}

func (id Identity) String() string {
	if id.Key == "" {
		return id.Kind
	}
	return fmt.Sprintf("%s[%s]", id.Kind, id.Key)
}

// Instance is one mounted unit.
type Instance[T any] struct {
	// ID is unique for the lifetime of the arena. A remount at the same
	// identity gets a new ID.
	ID       uint64
	Identity Identity
	Value    T

	cleanups []func()
}

// Diff reports what a reconciliation pass did.
type Diff struct {
	Mounted   []Identity
	Unmounted []Identity
	Retained  []Identity
}

// Empty reports whether the pass mounted or unmounted anything.
func (d Diff) Empty() bool {
	return len(d.Mounted) == 0 && len(d.Unmounted) == 0
}

// Arena holds the live instances keyed by identity.
type Arena[T any] struct {
	live   map[Identity]*Instance[T]
	byID   map[uint64]*Instance[T]
	nextID uint64
	logger *slog.Logger
}

// NewArena creates an empty arena. A nil logger discards records.
func NewArena[T any](logger *slog.Logger) *Arena[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Arena[T]{
		live:   make(map[Identity]*Instance[T]),
		byID:   make(map[uint64]*Instance[T]),
		logger: logger,
	}
}

// MountFunc builds fresh state for a newly mounted identity. instanceID is
// the ID the arena assigns to the new instance.
type MountFunc[T any] func(id Identity, instanceID uint64) T

// Reconcile makes the live set equal to desired. mount is called once for
// every identity that is not already live and must return fresh state.
// Duplicate identities in desired are mounted once.
func (a *Arena[T]) Reconcile(desired []Identity, mount MountFunc[T]) Diff {
	var diff Diff
	marked := make(map[Identity]bool, len(desired))

	for _, id := range desired {
		if marked[id] {
			continue
		}
		marked[id] = true

		if _, ok := a.live[id]; ok {
			diff.Retained = append(diff.Retained, id)
			continue
		}
		a.nextID++
		inst := &Instance[T]{ID: a.nextID, Identity: id, Value: mount(id, a.nextID)}
		a.live[id] = inst
		a.byID[inst.ID] = inst
		diff.Mounted = append(diff.Mounted, id)
	}

	// Sweep in mount order so cleanups run deterministically.
	var stale []*Instance[T]
	for id, inst := range a.live {
		if !marked[id] {
			stale = append(stale, inst)
		}
	}
	slices.SortFunc(stale, func(x, y *Instance[T]) int {
		switch {
		case x.ID < y.ID:
			return -1
		case x.ID > y.ID:
			return 1
		}
		return 0
	})
	for _, inst := range stale {
		a.unmount(inst)
		diff.Unmounted = append(diff.Unmounted, inst.Identity)
	}

	if !diff.Empty() {
		a.logger.Debug("reconciled",
			"mounted", fmt.Sprint(diff.Mounted),
			"unmounted", fmt.Sprint(diff.Unmounted),
			"retained", fmt.Sprint(diff.Retained),
		)
	}
	return diff
}

// UnmountAll tears down every live instance.
func (a *Arena[T]) UnmountAll() Diff {
	return a.Reconcile(nil, func(Identity, uint64) T {
		var zero T
		return zero
	})
}

func (a *Arena[T]) unmount(inst *Instance[T]) {
	delete(a.live, inst.Identity)
	delete(a.byID, inst.ID)
	for i := len(inst.cleanups) - 1; i >= 0; i-- {
		inst.cleanups[i]()
	}
	inst.cleanups = nil
}

// Get returns the live instance for id.
func (a *Arena[T]) Get(id Identity) (*Instance[T], bool) {
	inst, ok := a.live[id]
	return inst, ok
}

// Lookup returns the live instance with the given instance ID. It fails
// once that instance has been unmounted, even if the same identity has
// since been mounted again.
func (a *Arena[T]) Lookup(instanceID uint64) (*Instance[T], bool) {
	inst, ok := a.byID[instanceID]
	return inst, ok
}

// OnUnmount registers fn to run when the instance is unmounted. Cleanups
// run in reverse registration order. It reports false if the instance is
// not live.
func (a *Arena[T]) OnUnmount(instanceID uint64, fn func()) bool {
	inst, ok := a.byID[instanceID]
	if !ok {
		return false
	}
	inst.cleanups = append(inst.cleanups, fn)
	return true
}

// Len returns the number of live instances.
func (a *Arena[T]) Len() int {
	return len(a.live)
}
