package regrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrix-io/locstream/comm"
	"github.com/ferrix-io/locstream/errs"
)

// reduceComm fakes a multi-process communicator by returning canned global
// sums, the way an MPI reduce would on rank 0.
type reduceComm struct {
	size, rank  int
	globalSum   float64
	globalCount int64
	err         error
}

func (c reduceComm) Size() int { return c.size }
func (c reduceComm) Rank() int { return c.rank }

func (c reduceComm) SumFloat64(float64) (float64, error) { return c.globalSum, c.err }
func (c reduceComm) SumInt64(int64) (int64, error)       { return c.globalCount, c.err }

var _ comm.Comm = reduceComm{}

const sentinel = 1e20

func TestMeanRelativeErrorSerial(t *testing.T) {
	t.Run("sentinel and zero-expected points excluded", func(t *testing.T) {
		computed := []float64{10.0, 1e20, 12.0}
		expected := []float64{10.0, 5.0, 0.0}

		// only index 0 qualifies and contributes zero error
		res, err := MeanRelativeError(comm.Serial{}, computed, expected, sentinel)
		require.NoError(t, err)
		require.True(t, res.Reported)
		require.Equal(t, int64(3), res.Count)
		require.Equal(t, 0.0, res.Mean)
	})

	t.Run("qualifying points averaged over all points", func(t *testing.T) {
		computed := []float64{11.0, 22.0, sentinel, 5.0}
		expected := []float64{10.0, 20.0, 7.0, 0.0}

		// |11-10|/10 + |22-20|/20 = 0.2, divided by 4 points
		res, err := MeanRelativeError(comm.Serial{}, computed, expected, sentinel)
		require.NoError(t, err)
		require.True(t, res.Reported)
		require.InDelta(t, 0.05, res.Mean, 1e-12)
	})

	t.Run("empty fields report zero without dividing", func(t *testing.T) {
		res, err := MeanRelativeError(comm.Serial{}, nil, nil, sentinel)
		require.NoError(t, err)
		require.True(t, res.Reported)
		require.Equal(t, int64(0), res.Count)
		require.Equal(t, 0.0, res.Mean)
	})
}

func TestMeanRelativeErrorShapeMismatch(t *testing.T) {
	_, err := MeanRelativeError(comm.Serial{}, []float64{1, 2}, []float64{1}, sentinel)
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestMeanRelativeErrorParallel(t *testing.T) {
	// two processes with local sums 2.0 and 3.0 over counts 4 and 6:
	// global sum 5.0, count 10, mean 0.5
	computed := []float64{sentinel, sentinel, sentinel, sentinel}
	expected := []float64{1, 1, 1, 1}

	t.Run("rank 0 divides and reports", func(t *testing.T) {
		c := reduceComm{size: 2, rank: 0, globalSum: 5.0, globalCount: 10}
		res, err := MeanRelativeError(c, computed, expected, sentinel)
		require.NoError(t, err)
		require.True(t, res.Reported)
		require.Equal(t, int64(10), res.Count)
		require.Equal(t, 0.5, res.Mean)
	})

	t.Run("other ranks do not report", func(t *testing.T) {
		c := reduceComm{size: 2, rank: 1, globalSum: 5.0, globalCount: 10}
		res, err := MeanRelativeError(c, computed, expected, sentinel)
		require.NoError(t, err)
		require.False(t, res.Reported)
		require.Equal(t, 0.0, res.Mean)
	})

	t.Run("zero global count is guarded", func(t *testing.T) {
		c := reduceComm{size: 2, rank: 0, globalSum: 0, globalCount: 0}
		res, err := MeanRelativeError(c, computed, expected, sentinel)
		require.NoError(t, err)
		require.True(t, res.Reported)
		require.Equal(t, 0.0, res.Mean)
	})

	t.Run("reduction failures propagate", func(t *testing.T) {
		c := reduceComm{size: 2, rank: 0, err: errors.New("comm down")}
		_, err := MeanRelativeError(c, computed, expected, sentinel)
		require.Error(t, err)
	})
}
