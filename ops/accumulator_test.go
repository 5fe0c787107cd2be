package ops

import (
	"testing"

	"github.com/cwbudde/algo-vectorize/internal/testutil"
	"github.com/cwbudde/algo-vectorize/vectorize"
)

// counter is an Integrator without any specialization.
type counter struct {
	n     int
	total float64
}

func (c *counter) Add(x float64) float64 {
	c.n++
	c.total += x
	return c.total
}

func TestAccumulatorOrdering(t *testing.T) {
	xs := []float64{1, 2, 3, 4}

	for _, v := range engineVariants() {
		t.Run(v.name, func(t *testing.T) {
			a := &Accumulator{Sum: 10}
			got, err := NewAdd(v.opts...).Call(a, vectorize.Vector(xs))
			if err != nil {
				t.Fatalf("Call error: %v", err)
			}
			testutil.RequireSliceEqual(t, got, []float64{11, 13, 16, 20})
			if a.Sum != 20 {
				t.Fatalf("Sum = %v, want 20", a.Sum)
			}
		})
	}
}

func TestLeakyAccumulatorOverridesSpecialization(t *testing.T) {
	xs := []float64{1, 2, 3}
	want := []float64{1, 2.5, 4.25}

	for _, v := range engineVariants() {
		t.Run(v.name, func(t *testing.T) {
			l := &LeakyAccumulator{Leak: 0.5}
			got, err := NewAdd(v.opts...).Call(l, vectorize.Vector(xs))
			if err != nil {
				t.Fatalf("Call error: %v", err)
			}
			testutil.RequireSliceEqual(t, got, want)
			if l.Sum != 4.25 {
				t.Fatalf("Sum = %v, want 4.25", l.Sum)
			}
		})
	}
}

func TestAccumulatorSpecialized(t *testing.T) {
	e := NewAdd()
	if !e.Specialized(&Accumulator{}) || !e.Specialized(&LeakyAccumulator{}) {
		t.Fatal("accumulator specializations not resolved")
	}

	c := &counter{}
	if e.Specialized(c) {
		t.Fatal("counter has no specialization")
	}
	got, err := e.Call(c, vectorize.Vector([]float64{1, 1, 1}))
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	testutil.RequireSliceEqual(t, got, []float64{1, 2, 3})
	if c.n != 3 {
		t.Fatalf("scalar calls = %d, want 3", c.n)
	}
}
