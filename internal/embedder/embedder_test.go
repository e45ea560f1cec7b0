package embedder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenWithMissingModelFilesDegradesGracefully(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(dir)
	require.NoError(t, err, "Open must not error when model files are absent")
	require.False(t, e.Available())
}

func TestAvailableOnNilEngineIsFalse(t *testing.T) {
	var e *Engine
	require.False(t, e.Available())
}

func TestCloseOnUnavailableEngineIsNoop(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(dir)
	require.NoError(t, err)
	require.NotPanics(t, func() { e.Close() })
}

func TestEmbedBatchFailsWithoutModel(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(dir)
	require.NoError(t, err)
	_, err = e.EmbedBatch([]string{"func Add(a, b int) int"})
	require.Error(t, err)
}
