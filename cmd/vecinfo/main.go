// Command vecinfo inspects and exercises vectorize specializations.
//
// Usage:
//
//	vecinfo [flags] [op arg ...]
//
// Without an op it lists the registered specializations.
//
// Examples:
//
//	vecinfo -list
//	vecinfo -cpu
//	vecinfo scale-then-add 3 1,2,3
//	vecinfo -fallback magnitude 3,5 4,12
//	vecinfo bin 0,1,0,-1 0,1,2,3
//	vecinfo -leak 0.5 add 1,2,3
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-vectorize/ops"
	"github.com/cwbudde/algo-vectorize/vectorize"
)

type options struct {
	engine []vectorize.Option
	offset float64
	leak   float64
}

type opEntry struct {
	name  string
	usage string
	run   func(opts options, args []string) (string, error)
}

var opTable = []opEntry{
	{"scale-then-add", "K X1,X2,...", runScaleThenAdd},
	{"magnitude", "RE1,RE2,... IM1,IM2,...", runModulus(ops.NewMagnitude)},
	{"power", "RE1,RE2,... IM1,IM2,...", runModulus(ops.NewPower)},
	{"bin", "S1,S2,... K1,K2,...", runBin},
	{"add", "X1,X2,...", runAdd},
}

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vecinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	list := fs.Bool("list", false, "list registered specializations")
	showCPU := fs.Bool("cpu", false, "print detected CPU features")
	generic := fs.Bool("generic", false, "ignore SIMD-gated specializations")
	fallback := fs.Bool("fallback", false, "always use the elementwise fallback")
	offset := fs.Float64("offset", 1, "offset for scale-then-add")
	leak := fs.Float64("leak", 1, "leak factor for add (1 = plain running sum)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: vecinfo [flags] [op arg ...]\n\n")
		fmt.Fprintf(stderr, "Lists vectorize specializations and evaluates bundled ops.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nOps:\n")
		for _, op := range opTable {
			fmt.Fprintf(stderr, "  %s %s\n", op.name, op.usage)
		}
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showCPU {
		printFeatures(stdout, cpu.DetectFeatures())
		return 0
	}

	rest := fs.Args()
	if *list || len(rest) == 0 {
		if err := printEntries(stdout, vectorize.Global.Entries()); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	opts := options{offset: *offset, leak: *leak}
	if *generic {
		opts.engine = append(opts.engine, vectorize.WithFeatures(cpu.Features{ForceGeneric: true}))
	}
	if *fallback {
		opts.engine = append(opts.engine, vectorize.WithFallbackOnly())
	}

	op, ok := lookupOp(rest[0])
	if !ok {
		fmt.Fprintf(stderr, "error: unknown op %q\n", rest[0])
		return 2
	}

	out, err := op.run(opts, rest[1:])
	if errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "usage: vecinfo %s %s\n", op.name, op.usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func lookupOp(name string) (opEntry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, op := range opTable {
		if op.name == name {
			return op, true
		}
	}
	return opEntry{}, false
}

func runScaleThenAdd(opts options, args []string) (string, error) {
	if len(args) != 2 {
		return "", errUsage
	}
	k, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", fmt.Errorf("gain: %w", err)
	}
	x, err := parseFloats(args[1])
	if err != nil {
		return "", err
	}

	out, err := ops.NewScaleThenAdd(opts.engine...).Call(ops.Gain{Offset: opts.offset},
		vectorize.Scalar(k), vectorize.Vector(x))
	return formatResult(out, err)
}

func runModulus(build func(...vectorize.Option) *vectorize.Engine[ops.Modulus, float64, float64]) func(options, []string) (string, error) {
	return func(opts options, args []string) (string, error) {
		if len(args) != 2 {
			return "", errUsage
		}
		re, err := parseFloats(args[0])
		if err != nil {
			return "", err
		}
		im, err := parseFloats(args[1])
		if err != nil {
			return "", err
		}

		out, err := build(opts.engine...).Call(ops.Modulus{}, vectorize.Vector(re), vectorize.Vector(im))
		return formatResult(out, err)
	}
}

func runBin(opts options, args []string) (string, error) {
	if len(args) != 2 {
		return "", errUsage
	}
	signal, err := parseFloats(args[0])
	if err != nil {
		return "", err
	}
	ks, err := parseInts(args[1])
	if err != nil {
		return "", err
	}

	out, err := ops.NewBin(opts.engine...).Call(ops.NewSpectrum(signal), vectorize.Vector(ks))
	return formatResult(out, err)
}

func runAdd(opts options, args []string) (string, error) {
	if len(args) != 1 {
		return "", errUsage
	}
	xs, err := parseFloats(args[0])
	if err != nil {
		return "", err
	}

	var target ops.Integrator = &ops.Accumulator{}
	if opts.leak != 1 {
		target = &ops.LeakyAccumulator{Leak: opts.leak}
	}
	out, err := ops.NewAdd(opts.engine...).Call(target, vectorize.Vector(xs))
	return formatResult(out, err)
}

func formatResult[R any](out []R, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprint(out), nil
}

func parseFloats(s string) ([]float64, error) {
	fields := splitList(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(s string) ([]int, error) {
	fields := splitList(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func printFeatures(w io.Writer, f cpu.Features) {
	levels := []cpu.SIMDLevel{cpu.SIMDSSE2, cpu.SIMDAVX, cpu.SIMDAVX2, cpu.SIMDAVX512, cpu.SIMDNEON}
	var names []string
	for _, l := range levels {
		if cpu.Supports(f, l) {
			names = append(names, l.String())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		names = []string{cpu.SIMDNone.String()}
	}
	fmt.Fprintf(w, "arch=%s simd=%s\n", f.Architecture, strings.Join(names, ","))
}

func printEntries(w io.Writer, entries []vectorize.EntryInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Type\tMethod\tLabel\tBinding\tSIMD\tPriority\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t------\t-----\t-------\t----\t--------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, e := range entries {
		binding := "func"
		if e.Symbol != "" {
			binding = "named:" + e.Symbol
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			e.Type, e.Method, e.Label, binding, e.SIMDLevel, e.Priority); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	return tw.Flush()
}
