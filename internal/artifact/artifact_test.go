package artifact

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/mlflow-demo/internal/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run", "artifacts")

	fig, err := plot.ConfusionMatrixFigure([]string{"cat", "dog"}, []string{"cat", "bird"})
	require.NoError(t, err)

	require.NoError(t, Save(dir, "confusion_matrix.json", fig))

	var loaded plot.Figure
	require.NoError(t, Load(dir, "confusion_matrix.json", &loaded))
	assert.Equal(t, fig.Data[0].X, loaded.Data[0].X)
	assert.Equal(t, fig.Layout, loaded.Layout)
	// the dog row has no counted predictions
	assert.True(t, math.IsNaN(loaded.Data[0].Z[0][0]))
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	err := Load(dir, "missing.json", &struct{}{})
	assert.True(t, errors.Is(err, ErrNotFound))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))
	err = Save(file, "x.json", map[string]int{"a": 1})
	assert.True(t, errors.Is(err, ErrNotDir))

	err = Save(dir, "nan.json", math.NaN())
	assert.Error(t, err)
}
