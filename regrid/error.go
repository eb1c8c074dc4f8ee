// Package regrid provides statistics over regridded field arrays.
//
// The regridding operation itself (weight computation, sparse apply) is an
// external collaborator; this package only evaluates its output. The one
// statistic implemented is the mean relative error between a computed field
// and an analytic expectation, with the multi-process reduction folded in
// transparently based on the communicator's process count.
package regrid

import (
	"fmt"
	"math"

	"github.com/ferrix-io/locstream/comm"
	"github.com/ferrix-io/locstream/errs"
)

// Result is the outcome of a mean relative error computation.
//
// In a multi-process run only the designated reporting rank (rank 0) divides
// the reduced sums and carries a valid Mean; all other ranks return
// Reported=false and must not use Mean or Count.
type Result struct {
	// Mean is the mean relative error: the summed per-point relative errors
	// divided by the total point count.
	Mean float64

	// Count is the global point count the division used.
	Count int64

	// Reported is true on the single rank responsible for reporting.
	Reported bool
}

// MeanRelativeError computes the mean relative error between a computed
// field and its analytic expectation.
//
// A point contributes |computed-expected| / |expected| when the computed
// value is not the sentinel (the "unmapped point" marker written before
// regridding) and the expected value is nonzero; every local point counts
// toward the denominator either way. Under a multi-process communicator the
// local error sum and local point count are combined with blocking global
// sum reductions, and the division happens exactly once, on rank 0. A global
// point count of zero yields Mean 0 rather than a division fault.
//
// Parameters:
//   - c: Process layout and reduction collaborator (comm.Serial for local runs)
//   - computed: Regridded field values, sentinel-marked where unmapped
//   - expected: Analytic field values, same length as computed
//   - sentinel: Value marking unmapped output points (e.g. 1e20)
//
// Returns:
//   - Result: Mean, global count, and whether this rank reports
//   - error: errs.ErrInvalidLength on shape mismatch, or reduction failures
func MeanRelativeError(c comm.Comm, computed, expected []float64, sentinel float64) (Result, error) {
	if len(computed) != len(expected) {
		return Result{}, fmt.Errorf("%w: computed has %d values, expected has %d",
			errs.ErrInvalidLength, len(computed), len(expected))
	}

	localSum := 0.0
	for i, got := range computed {
		want := expected[i]
		if got == sentinel || want == 0 {
			continue
		}
		localSum += math.Abs(got-want) / math.Abs(want)
	}
	localCount := int64(len(computed))

	if c.Size() <= 1 {
		return Result{Mean: safeDivide(localSum, localCount), Count: localCount, Reported: true}, nil
	}

	globalSum, err := c.SumFloat64(localSum)
	if err != nil {
		return Result{}, fmt.Errorf("reduce error sum: %w", err)
	}
	globalCount, err := c.SumInt64(localCount)
	if err != nil {
		return Result{}, fmt.Errorf("reduce point count: %w", err)
	}

	if c.Rank() != 0 {
		return Result{}, nil
	}

	return Result{Mean: safeDivide(globalSum, globalCount), Count: globalCount, Reported: true}, nil
}

func safeDivide(sum float64, count int64) float64 {
	if count == 0 {
		return 0
	}

	return sum / float64(count)
}
