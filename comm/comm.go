// Package comm defines the narrow seam between a location stream and the
// distributed-reduction collaborator it runs under.
//
// The library never talks to a communicator directly; everything it needs is
// the number of cooperating processes, this process's rank, and a blocking
// global sum. Serial runs use the zero-cost Serial implementation; an MPI (or
// similar) binding satisfies the same interface without the library knowing.
package comm

// Comm describes the process layout of a run and its global sum reduction.
//
// Reductions are blocking collective calls: every process must call them at
// the same point. Their results are authoritative on rank 0 only; other
// ranks must not act on the returned value.
type Comm interface {
	// Size returns the number of cooperating processes.
	Size() int

	// Rank returns this process's rank in [0, Size()).
	Rank() int

	// SumFloat64 reduces x by global sum across all processes.
	SumFloat64(x float64) (float64, error)

	// SumInt64 reduces x by global sum across all processes.
	SumInt64(x int64) (int64, error)
}

// Serial is the single-process Comm: one rank, identity reductions.
type Serial struct{}

var _ Comm = Serial{}

func (Serial) Size() int { return 1 }

func (Serial) Rank() int { return 0 }

func (Serial) SumFloat64(x float64) (float64, error) { return x, nil }

func (Serial) SumInt64(x int64) (int64, error) { return x, nil }
