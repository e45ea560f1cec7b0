package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func vec(vals ...float32) []float32 { return vals }

func TestOpenCreatesFreshIndexWhenNoDumpExists(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
	require.False(t, s.Dirty())
}

func TestInsertBatchAndSearchSimilar(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	ids := []string{"sym-a", "sym-b", "sym-c"}
	vectors := [][]float32{
		vec(1, 0, 0),
		vec(0, 1, 0),
		vec(0.9, 0.1, 0),
	}
	require.NoError(t, s.InsertBatch(ids, vectors))
	require.True(t, s.Dirty())
	require.Equal(t, 3, s.Len())

	results, err := s.SearchSimilar(vec(1, 0, 0), 2)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "sym-a", results[0].SymbolID)
}

func TestInsertBatchMismatchedLengthsErrors(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	err = s.InsertBatch([]string{"a", "b"}, [][]float32{vec(1, 0)})
	require.Error(t, err)
}

func TestSaveAndReopenRestoresVectors(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.InsertBatch([]string{"sym-a"}, [][]float32{vec(1, 2, 3)}))
	require.NoError(t, s.Save())
	require.False(t, s.Dirty())

	reopened, err := Open(dir)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())
}

func TestClearResetsGraph(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.InsertBatch([]string{"sym-a"}, [][]float32{vec(1, 2, 3)}))
	s.Clear()
	require.Equal(t, 0, s.Len())
	require.True(t, s.Dirty())
}
