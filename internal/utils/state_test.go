package utils_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf-projects/cgul/internal/utils"
)

func TestStateRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/cache")
	localFS := afero.NewMemMapFs()

	// No state file yet: an empty state comes back without error.
	state, err := utils.NewState(localFS)
	require.NoError(t, err)
	assert.True(t, state.Harmonise.LastRun.IsZero())
	assert.Zero(t, state.Harmonise.FilesProcessed)

	lastRun := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
	state.Harmonise.LastRun = lastRun
	state.Harmonise.FilesProcessed = 3
	require.NoError(t, state.Write(localFS))

	reread, err := utils.NewState(localFS)
	require.NoError(t, err)
	assert.True(t, reread.Harmonise.LastRun.Equal(lastRun))
	assert.Equal(t, 3, reread.Harmonise.FilesProcessed)
}

func TestStateRejectsCorruptFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/cache")
	localFS := afero.NewMemMapFs()

	err := afero.WriteFile(
		localFS, "/cache/cgul/state.json", []byte("not json"), 0644)
	require.NoError(t, err)

	_, err = utils.NewState(localFS)
	require.Error(t, err)
}
