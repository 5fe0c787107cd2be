package vectorize

import (
	"reflect"
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Bulk is a specialization bound to one target. It receives the call frame
// exactly as passed to Engine.Call.
type Bulk[A, R any] func(args ...Arg[A]) ([]R, error)

// BulkFunc is an early-bound specialization that takes its target
// explicitly, in the shape of a method expression.
type BulkFunc[T, A, R any] func(target T, args ...Arg[A]) ([]R, error)

// Specializer is implemented by targets that provide their own bulk
// implementations. BulkOverride is consulted on every call against the live
// target, so an embedding type may shadow it to change the specialization
// without re-declaring anything.
type Specializer[A, R any] interface {
	BulkOverride(name string) (Bulk[A, R], bool)
}

// boundFunc is the type-erased form of a BulkFunc stored in the registry.
type boundFunc[A, R any] func(target any, args ...Arg[A]) ([]R, error)

// Override is the value attached to a (type, method) pair by Declare.
type Override struct {
	symbol string
	recv   reflect.Type
	call   any
}

// Named returns a late-bound override. The symbol is resolved against the
// target through Specializer on every call. A target that does not provide
// the symbol is treated as having no specialization.
func Named(symbol string) Override {
	return Override{symbol: symbol}
}

// Func returns an early-bound override wrapping fn.
func Func[T, A, R any](fn BulkFunc[T, A, R]) Override {
	o := Override{recv: reflect.TypeFor[T]()}
	if fn != nil {
		o.call = boundFunc[A, R](func(target any, args ...Arg[A]) ([]R, error) {
			return fn(target.(T), args...)
		})
	}
	return o
}

// DeclareOption configures a declaration.
type DeclareOption func(*declareConfig)

type declareConfig struct {
	label     string
	priority  int
	simdLevel cpu.SIMDLevel
}

// WithLabel names the declaration in Entries listings.
func WithLabel(label string) DeclareOption {
	return func(cfg *declareConfig) {
		if label != "" {
			cfg.label = label
		}
	}
}

// WithPriority sets the selection priority. Higher priorities are preferred
// among declarations supported by the CPU. Suggested values follow the
// kernel registries: generic 0, SSE2 10, NEON 15, AVX2 20.
func WithPriority(priority int) DeclareOption {
	return func(cfg *declareConfig) {
		cfg.priority = priority
	}
}

// WithSIMDLevel restricts the declaration to CPUs supporting level.
func WithSIMDLevel(level cpu.SIMDLevel) DeclareOption {
	return func(cfg *declareConfig) {
		cfg.simdLevel = level
	}
}

type entryKey struct {
	typ    reflect.Type
	method string
}

type entry struct {
	label     string
	symbol    string
	call      any
	simdLevel cpu.SIMDLevel
	priority  int
	seq       uint64
}

// EntryInfo describes one declaration.
type EntryInfo struct {
	Type      string
	Method    string
	Label     string
	Symbol    string // empty for function overrides
	SIMDLevel cpu.SIMDLevel
	Priority  int
}

// Registry stores specializations per (target type, scalar method name).
//
// Declarations are expected during package initialization, before engines
// start calling into the registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[entryKey][]entry
	seq     uint64
}

// Global is the default registry used by engines without WithRegistry.
var Global = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[entryKey][]entry)}
}

// Declare attaches override to method on target type T. Declaring again with
// the same priority and SIMD level replaces the earlier declaration.
func Declare[T any](r *Registry, method string, override Override, opts ...DeclareOption) error {
	typ := reflect.TypeFor[T]()

	switch {
	case r == nil:
		return configErrorf("nil registry")
	case method == "":
		return configErrorf("empty method name")
	case typ.Kind() == reflect.Interface:
		return configErrorf("cannot declare on interface type %s", typ)
	case override.recv == nil && override.symbol == "":
		return configErrorf("empty override for %s.%s", typ, method)
	case override.recv != nil && override.call == nil:
		return configErrorf("nil override func for %s.%s", typ, method)
	case override.recv != nil && override.recv != typ:
		return configErrorf("override for %s declared on %s", override.recv, typ)
	}

	cfg := declareConfig{label: override.symbol}
	if cfg.label == "" {
		cfg.label = "func"
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	e := entry{
		label:     cfg.label,
		symbol:    override.symbol,
		call:      override.call,
		simdLevel: cfg.simdLevel,
		priority:  cfg.priority,
		seq:       r.seq,
	}

	key := entryKey{typ: typ, method: method}
	list := r.entries[key]
	for i := range list {
		if list[i].priority == e.priority && list[i].simdLevel == e.simdLevel {
			list[i] = e
			return nil
		}
	}
	r.entries[key] = append(list, e)
	return nil
}

// MustDeclare is like Declare but panics on error.
func MustDeclare[T any](r *Registry, method string, override Override, opts ...DeclareOption) {
	if err := Declare[T](r, method, override, opts...); err != nil {
		panic(err.Error())
	}
}

// Resolve returns the specialization of method for target, bound to target.
//
// Declarations for the target's runtime type that features support are tried
// in descending priority; the first usable one wins. A Named symbol the
// target does not provide and a Func of a different signature are skipped.
// When no declaration is usable, a target implementing Specializer is asked
// for method directly.
func Resolve[T, A, R any](r *Registry, target T, method string, features cpu.Features) (Bulk[A, R], bool) {
	for _, e := range r.candidates(reflect.TypeOf(any(target)), method, features) {
		if e.symbol != "" {
			if bulk, ok := specialize[A, R](target, e.symbol); ok {
				return bulk, true
			}
			continue
		}

		call, ok := e.call.(boundFunc[A, R])
		if !ok {
			continue
		}
		return func(args ...Arg[A]) ([]R, error) {
			return call(target, args...)
		}, true
	}
	return specialize[A, R](target, method)
}

func specialize[A, R any](target any, name string) (Bulk[A, R], bool) {
	s, ok := target.(Specializer[A, R])
	if !ok {
		return nil, false
	}
	bulk, ok := s.BulkOverride(name)
	if !ok || bulk == nil {
		return nil, false
	}
	return bulk, true
}

// candidates returns the declarations supported by features, best first:
// higher priority, then later declaration.
func (r *Registry) candidates(typ reflect.Type, method string, features cpu.Features) []entry {
	if r == nil || typ == nil {
		return nil
	}

	r.mu.RLock()
	list := r.entries[entryKey{typ: typ, method: method}]
	out := make([]entry, 0, len(list))
	for _, e := range list {
		if cpu.Supports(features, e.simdLevel) {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority > out[j].priority
		}
		return out[i].seq > out[j].seq
	})
	return out
}

// Entries returns a snapshot of all declarations ordered by type, method and
// descending priority. Intended for tooling and tests.
func (r *Registry) Entries() []EntryInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]EntryInfo, 0, len(r.entries))
	for key, list := range r.entries {
		for _, e := range list {
			out = append(out, EntryInfo{
				Type:      key.typ.String(),
				Method:    key.method,
				Label:     e.label,
				Symbol:    e.symbol,
				SIMDLevel: e.simdLevel,
				Priority:  e.priority,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Label < b.Label
	})
	return out
}

// Reset clears all declarations. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[entryKey][]entry)
	r.seq = 0
}
