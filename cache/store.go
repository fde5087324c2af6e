package cache

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrUnknownNode indicates a name that was never registered.
	ErrUnknownNode = errors.New("cache: unknown node")

	// ErrDuplicateNode indicates a name registered twice.
	ErrDuplicateNode = errors.New("cache: node already registered")

	// ErrUnknownDep indicates a declared dependency that is not registered.
	ErrUnknownDep = errors.New("cache: unknown dependency")

	// ErrNotParameter indicates Set on a derived node.
	ErrNotParameter = errors.New("cache: node is not a parameter")

	// ErrCycle indicates a computation rule reading its own node.
	ErrCycle = errors.New("cache: dependency cycle")
)

// ComputeFunc is a pure computation rule for a derived node. It reads its
// inputs through Store.Get, so dependency resolution is recursive.
type ComputeFunc func() (any, error)

// node is one vertex of the dependency graph.
type node struct {
	deps      []string
	fn        ComputeFunc // nil for parameters
	value     any
	valid     bool
	computing bool
	computes  int // instrumentation: how often fn ran
}

// Store is the dependency-tracked lazy store. Not safe for concurrent
// use; the pipeline drives it from a single goroutine.
type Store struct {
	log        *zap.Logger
	nodes      map[string]*node
	dependents map[string][]string // reverse edges for invalidation walks
}

// NewStore builds an empty store. A nil logger defaults to zap.NewNop.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{
		log:        log,
		nodes:      make(map[string]*node),
		dependents: make(map[string][]string),
	}
}

// RegisterParam adds a parameter node holding value.
func (s *Store) RegisterParam(name string, value any) error {
	if _, ok := s.nodes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	s.nodes[name] = &node{value: value, valid: true}

	return nil
}

// Register adds a derived node with its dependency list and computation
// rule. Every dependency must already be registered, which catches typos
// at wiring time instead of first evaluation.
func (s *Store) Register(name string, deps []string, fn ComputeFunc) error {
	if _, ok := s.nodes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	for _, d := range deps {
		if _, ok := s.nodes[d]; !ok {
			return fmt.Errorf("%w: %q (needed by %q)", ErrUnknownDep, d, name)
		}
	}

	s.nodes[name] = &node{deps: append([]string(nil), deps...), fn: fn}
	for _, d := range deps {
		s.dependents[d] = append(s.dependents[d], name)
	}

	return nil
}

// Get returns the node's current value, computing it (and, through the
// rule's own Get calls, any missing dependency) when absent or stale.
// A failed computation leaves the node absent and propagates the error.
func (s *Store) Get(name string) (any, error) {
	n, ok := s.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	if n.valid {
		return n.value, nil
	}
	if n.fn == nil {
		// A parameter is always valid; reaching here means it was never set.
		return nil, fmt.Errorf("%w: parameter %q unset", ErrUnknownNode, name)
	}
	if n.computing {
		return nil, fmt.Errorf("%w: via %q", ErrCycle, name)
	}

	s.log.Debug("computing quantity", zap.String("node", name))
	n.computing = true
	v, err := n.fn()
	n.computing = false
	n.computes++
	if err != nil {
		return nil, err
	}

	n.value = v
	n.valid = true

	return v, nil
}

// Set replaces a parameter value and invalidates its transitive
// dependents. Replacement is wholesale: mutating an element of an
// array-valued parameter must go through Set with the full new array.
func (s *Store) Set(name string, value any) error {
	return s.SetMany(map[string]any{name: value})
}

// SetMany replaces several parameters atomically and runs a single
// invalidation pass over the union of their dependents.
func (s *Store) SetMany(values map[string]any) error {
	names := make([]string, 0, len(values))
	for name, value := range values {
		n, ok := s.nodes[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownNode, name)
		}
		if n.fn != nil {
			return fmt.Errorf("%w: %q", ErrNotParameter, name)
		}
		n.value = value
		n.valid = true
		names = append(names, name)
	}

	s.Invalidate(names...)

	return nil
}

// Invalidate marks every derived node reachable from the changed names as
// stale, without recomputing anything. Unknown names are ignored: a
// parameter with no registered node cannot have dependents.
func (s *Store) Invalidate(changed ...string) {
	seen := make(map[string]bool, len(changed))
	queue := append([]string(nil), changed...)
	count := 0
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, dep := range s.dependents[name] {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			n := s.nodes[dep]
			if n.valid {
				n.valid = false
				n.value = nil
				count++
			}
			queue = append(queue, dep)
		}
	}

	if count > 0 {
		s.log.Debug("invalidated quantities",
			zap.Strings("changed", changed), zap.Int("stale", count))
	}
}

// Computes reports how many times the node's rule has run; test
// instrumentation for cache-hit verification.
func (s *Store) Computes(name string) int {
	if n, ok := s.nodes[name]; ok {
		return n.computes
	}

	return 0
}

// Has reports whether the node currently holds a valid cached value.
func (s *Store) Has(name string) bool {
	n, ok := s.nodes[name]

	return ok && n.valid
}
