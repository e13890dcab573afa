package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/tilegrav/field"
	"github.com/pthm-cable/tilegrav/force"
)

var flagTolerance float64

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Check every backend against the sequential reference",
	Long: `Fills a grid with random tile masses, runs one force pass per backend
and reports the largest relative component error against the sequential
backend. Fails when any available backend exceeds the tolerance.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().Float64Var(&flagTolerance, "tolerance", 1e-4, "Maximum relative error per component")
}

// randomGrid fills a rows×cols grid with masses in [0, 500).
func randomGrid(rows, cols int, seed int64) *field.Grid {
	rng := rand.New(rand.NewSource(seed))
	g := field.NewGrid(rows, cols)
	for i := range g.Mass {
		g.Mass[i] = rng.Float32() * 500
	}
	return g
}

// maxRelativeError returns the largest per-component relative difference
// between got and want. Components are compared against at least floor so
// forces that cancel to near zero do not dominate.
func maxRelativeError(got, want []field.Vec2, floor float64) float64 {
	var worst float64
	rel := func(a, b float32) float64 {
		diff := math.Abs(float64(a - b))
		mag := math.Max(math.Max(math.Abs(float64(a)), math.Abs(float64(b))), floor)
		return diff / mag
	}
	for i := range want {
		worst = math.Max(worst, rel(got[i].X, want[i].X))
		worst = math.Max(worst, rel(got[i].Y, want[i].Y))
	}
	return worst
}

// largestComponent returns the largest absolute force component.
func largestComponent(forces []field.Vec2) float64 {
	var m float64
	for _, f := range forces {
		m = math.Max(m, math.Max(math.Abs(float64(f.X)), math.Abs(float64(f.Y))))
	}
	return m
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}

	ref := randomGrid(s.rows, s.cols, flagSeed)
	if err := force.NewSequentialBackend(s.params).ComputeForces(ref); err != nil {
		return err
	}
	want := append([]field.Vec2(nil), ref.Force...)
	floor := largestComponent(want) * 1e-3

	fmt.Printf("Grid %dx%d, seed %d, tolerance %g\n\n", s.rows, s.cols, flagSeed, flagTolerance)
	fmt.Printf("  %-22s  %s\n", "Backend", "Max rel. error")
	fmt.Printf("  %-22s  %s\n", "-------", "--------------")

	failed := 0
	for _, c := range candidates {
		b, err := s.build(c.kind)
		if err != nil {
			reportUnavailable(c.kind, err)
			continue
		}

		g := randomGrid(s.rows, s.cols, flagSeed)
		err = b.ComputeForces(g)
		name := b.Name()
		b.Close()
		if err != nil {
			fmt.Printf("  %-22s  failed (%v)\n", name, err)
			failed++
			continue
		}

		e := maxRelativeError(g.Force, want, floor)
		status := "ok"
		if e > flagTolerance {
			status = "MISMATCH"
			failed++
		}
		fmt.Printf("  %-22s  %.3e  %s\n", name, e, status)
	}

	if failed > 0 {
		return fmt.Errorf("%d backend(s) disagree with sequential", failed)
	}
	return nil
}
