package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var flagFrames int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time force passes per backend",
	Long:  `Runs the configured number of force passes on each available backend and prints per-pass timing.`,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagFrames, "frames", 200, "Force passes per backend")
}

func runBench(cmd *cobra.Command, args []string) error {
	if flagFrames < 1 {
		return fmt.Errorf("--frames must be at least 1")
	}
	s, err := loadSetup()
	if err != nil {
		return err
	}

	fmt.Printf("Grid %dx%d (%d tiles), %d passes\n\n", s.rows, s.cols, s.rows*s.cols, flagFrames)
	fmt.Printf("  %-22s  %10s  %10s  %10s\n", "Backend", "mean", "std", "passes/s")
	fmt.Printf("  %-22s  %10s  %10s  %10s\n", "-------", "----", "---", "--------")

	for _, c := range candidates {
		b, err := s.build(c.kind)
		if err != nil {
			reportUnavailable(c.kind, err)
			continue
		}

		g := randomGrid(s.rows, s.cols, flagSeed)
		samples := make([]float64, 0, flagFrames)
		for i := 0; i < flagFrames; i++ {
			start := time.Now()
			if err := b.ComputeForces(g); err != nil {
				b.Close()
				return fmt.Errorf("%s: %w", b.Name(), err)
			}
			samples = append(samples, float64(time.Since(start)))
		}

		mean, std := stat.MeanStdDev(samples, nil)
		fmt.Printf("  %-22s  %10s  %10s  %10.0f\n",
			b.Name(),
			time.Duration(mean).Round(time.Microsecond),
			time.Duration(std).Round(time.Microsecond),
			float64(time.Second)/mean,
		)
		b.Close()
	}
	return nil
}
