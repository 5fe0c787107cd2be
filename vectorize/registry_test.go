package vectorize

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-vectorize/internal/testutil"
)

// meter resolves the "squareMany" symbol through Specializer.
type meter struct {
	calc
	disabled bool
}

func (m *meter) BulkOverride(name string) (Bulk[float64, float64], bool) {
	if m.disabled || name != "squareMany" {
		return nil, false
	}
	return func(args ...Arg[float64]) ([]float64, error) {
		return m.squareMany(args...)
	}, true
}

// offsetMeter embeds meter and shadows its specialization.
type offsetMeter struct {
	*meter
}

func (o offsetMeter) BulkOverride(name string) (Bulk[float64, float64], bool) {
	if name != "squareMany" {
		return nil, false
	}
	return func(args ...Arg[float64]) ([]float64, error) {
		out, err := o.squareMany(args...)
		for i := range out {
			out[i]++
		}
		return out, err
	}, true
}

// direct implements Specializer for the scalar method name itself.
type direct struct {
	calc
}

func (d *direct) BulkOverride(name string) (Bulk[float64, float64], bool) {
	if name != "square" {
		return nil, false
	}
	return func(args ...Arg[float64]) ([]float64, error) {
		return []float64{-1}, nil
	}, true
}

func squareOf[T any](t *testing.T, reg *Registry, target T, xs ...float64) []float64 {
	t.Helper()
	scalar := func(_ T, args ...float64) (float64, error) { return args[0] * args[0], nil }
	e := MustNew("square", scalar, MustDescriptor(0), WithRegistry(reg))

	got, err := e.Call(target, Vector(xs))
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	return got
}

func TestRegistry_NamedLateBinding(t *testing.T) {
	reg := NewRegistry()
	MustDeclare[*meter](reg, "square", Named("squareMany"))

	m := &meter{}
	testutil.RequireSliceEqual(t, squareOf(t, reg, m, 2, 3), []float64{4, 9})

	// The symbol is resolved again on every call.
	m.disabled = true
	if _, ok := Resolve[*meter, float64, float64](reg, m, "square", cpu.Features{}); ok {
		t.Fatal("disabled specializer still resolved")
	}
	testutil.RequireSliceEqual(t, squareOf(t, reg, m, 2, 3), []float64{4, 9})
}

func TestRegistry_NamedPolymorphic(t *testing.T) {
	reg := NewRegistry()
	MustDeclare[offsetMeter](reg, "square", Named("squareMany"))

	got := squareOf(t, reg, offsetMeter{&meter{}}, 2, 3)
	testutil.RequireSliceEqual(t, got, []float64{5, 10})
}

func TestRegistry_NamedUnresolvedIsAbsent(t *testing.T) {
	reg := NewRegistry()
	MustDeclare[*meter](reg, "square", Named("noSuchMethod"))
	MustDeclare[*calc](reg, "square", Named("squareMany"))

	if _, ok := Resolve[*meter, float64, float64](reg, &meter{}, "square", cpu.Features{}); ok {
		t.Fatal("unknown symbol resolved")
	}
	// *calc does not implement Specializer at all.
	if _, ok := Resolve[*calc, float64, float64](reg, &calc{}, "square", cpu.Features{}); ok {
		t.Fatal("symbol resolved on a non-specializer")
	}
}

func TestRegistry_SpecializerWithoutDeclaration(t *testing.T) {
	reg := NewRegistry()

	testutil.RequireSliceEqual(t, squareOf(t, reg, &direct{}, 2, 3), []float64{-1})

	// A declaration takes precedence over the capability lookup.
	MustDeclare[*direct](reg, "square", Func(func(d *direct, args ...Arg[float64]) ([]float64, error) {
		return []float64{-2}, nil
	}))
	testutil.RequireSliceEqual(t, squareOf(t, reg, &direct{}, 2, 3), []float64{-2})
}

func TestRegistry_RuntimeTypeThroughInterface(t *testing.T) {
	type squarer interface {
		square(args ...float64) (float64, error)
	}

	reg := NewRegistry()
	MustDeclare[*calc](reg, "square", Func((*calc).squareMany))

	var target squarer = &calc{}
	e := MustNew("square", squarer.square, MustDescriptor(0), WithRegistry(reg))
	if !e.Specialized(target) {
		t.Fatal("declaration on dynamic type not found through interface")
	}

	got, err := e.Call(target, Vector([]float64{4}))
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	testutil.RequireSliceEqual(t, got, []float64{16})
}

func TestRegistry_RedeclareReplaces(t *testing.T) {
	reg := NewRegistry()
	MustDeclare[*calc](reg, "square", Func(func(c *calc, args ...Arg[float64]) ([]float64, error) {
		return []float64{1}, nil
	}))
	MustDeclare[*calc](reg, "square", Func(func(c *calc, args ...Arg[float64]) ([]float64, error) {
		return []float64{2}, nil
	}), WithLabel("second"))

	entries := reg.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Label != "second" {
		t.Fatalf("label = %q, want second", entries[0].Label)
	}
	testutil.RequireSliceEqual(t, squareOf(t, reg, &calc{}, 5), []float64{2})
}

func TestRegistry_EqualPriorityLatestWins(t *testing.T) {
	reg := NewRegistry()
	MustDeclare[*calc](reg, "square", Func(func(c *calc, args ...Arg[float64]) ([]float64, error) {
		return []float64{1}, nil
	}), WithSIMDLevel(cpu.SIMDSSE2))
	MustDeclare[*calc](reg, "square", Func(func(c *calc, args ...Arg[float64]) ([]float64, error) {
		return []float64{2}, nil
	}))

	bulk, ok := Resolve[*calc, float64, float64](reg, &calc{}, "square", cpu.Features{HasSSE2: true})
	if !ok {
		t.Fatal("no specialization resolved")
	}
	got, _ := bulk()
	testutil.RequireSliceEqual(t, got, []float64{2})
}

func TestRegistry_UnusableEntryDoesNotHideLowerPriority(t *testing.T) {
	generic := Func(func(c *calc, args ...Arg[float64]) ([]float64, error) {
		return []float64{-1}, nil
	})

	tests := []struct {
		name   string
		better Override
	}{
		{"unresolved symbol", Named("missing")},
		{"signature mismatch", Func(func(c *calc, args ...Arg[float32]) ([]float32, error) {
			return nil, errors.New("must not be called")
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			MustDeclare[*calc](reg, "square", generic)
			MustDeclare[*calc](reg, "square", tt.better, WithPriority(10))

			testutil.RequireSliceEqual(t, squareOf(t, reg, &calc{}, 3), []float64{-1})
		})
	}
}

func TestRegistry_UnusableEntriesFallBackToSpecializer(t *testing.T) {
	reg := NewRegistry()
	MustDeclare[*direct](reg, "square", Named("missing"), WithPriority(10))

	testutil.RequireSliceEqual(t, squareOf(t, reg, &direct{}, 2, 3), []float64{-1})
}

func TestRegistry_DeclareErrors(t *testing.T) {
	reg := NewRegistry()
	bulk := Func((*calc).squareMany)

	tests := []struct {
		name    string
		declare func() error
	}{
		{"empty method", func() error { return Declare[*calc](reg, "", bulk) }},
		{"empty override", func() error { return Declare[*calc](reg, "square", Override{}) }},
		{"empty symbol", func() error { return Declare[*calc](reg, "square", Named("")) }},
		{"nil func", func() error {
			return Declare[*calc](reg, "square", Func[*calc, float64, float64](nil))
		}},
		{"receiver mismatch", func() error { return Declare[*meter](reg, "square", bulk) }},
		{"interface type", func() error { return Declare[Specializer[float64, float64]](reg, "square", Named("x")) }},
		{"nil registry", func() error { return Declare[*calc](nil, "square", bulk) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.declare(); !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
		})
	}

	if n := len(reg.Entries()); n != 0 {
		t.Fatalf("entries = %d after failed declarations, want 0", n)
	}
}

func TestRegistry_MustDeclarePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustDeclare did not panic")
		}
	}()
	MustDeclare[*calc](NewRegistry(), "", Named("x"))
}

func TestRegistry_EntriesOrder(t *testing.T) {
	reg := NewRegistry()
	MustDeclare[*meter](reg, "square", Named("squareMany"))
	MustDeclare[*calc](reg, "sub", Func((*calc).subMany))
	MustDeclare[*calc](reg, "square", Func((*calc).squareMany), WithLabel("generic"))
	MustDeclare[*calc](reg, "square", Func((*calc).squareMany), WithLabel("avx2"),
		WithSIMDLevel(cpu.SIMDAVX2), WithPriority(20))

	want := []EntryInfo{
		{Type: "*vectorize.calc", Method: "square", Label: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20},
		{Type: "*vectorize.calc", Method: "square", Label: "generic"},
		{Type: "*vectorize.calc", Method: "sub", Label: "func"},
		{Type: "*vectorize.meter", Method: "square", Label: "squareMany", Symbol: "squareMany"},
	}
	testutil.RequireSliceEqual(t, reg.Entries(), want)

	reg.Reset()
	if n := len(reg.Entries()); n != 0 {
		t.Fatalf("entries after Reset = %d, want 0", n)
	}
}

func TestRegistry_NilTarget(t *testing.T) {
	reg := NewRegistry()
	if _, ok := Resolve[Specializer[float64, float64], float64, float64](reg, nil, "square", cpu.Features{}); ok {
		t.Fatal("nil target resolved a specialization")
	}
	if _, ok := Resolve[*calc, float64, float64](nil, &calc{}, "square", cpu.Features{}); ok {
		t.Fatal("nil registry resolved a specialization")
	}
}
