package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests in this package share ParamsPath and run sequentially
func useTempParams(t *testing.T) string {
	t.Helper()
	old := ParamsPath
	ParamsPath = filepath.Join(t.TempDir(), "params")
	t.Cleanup(func() { ParamsPath = old })
	return ParamsPath
}

func TestPutGetParam(t *testing.T) {
	dir := useTempParams(t)

	require.NoError(t, PutParam(PROFILE_SETTINGS, []byte(`{"distance":1}`)))
	data, err := GetParam(PROFILE_SETTINGS)
	require.NoError(t, err)
	assert.Equal(t, `{"distance":1}`, string(data))

	require.NoError(t, PutParam(PROFILE_SETTINGS, []byte(`{"distance":2}`)))
	data, err = GetParam(PROFILE_SETTINGS)
	require.NoError(t, err)
	assert.Equal(t, `{"distance":2}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")

	exists, err := Exists(filepath.Join(filepath.Dir(dir), ".lock"))
	require.NoError(t, err)
	assert.False(t, exists, "lock is released")
}

func TestGetParams(t *testing.T) {
	useTempParams(t)

	names, err := GetParams()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, PutParam(PROFILE_SETTINGS, []byte("{}")))
	require.NoError(t, PutParam(LAST_PROFILE, []byte("{}")))

	names, err = GetParams()
	require.NoError(t, err)
	assert.Equal(t, []string{LAST_PROFILE, PROFILE_SETTINGS}, names)
}

func TestRemoveParam(t *testing.T) {
	useTempParams(t)

	require.NoError(t, PutParam(LAST_PROFILE, []byte("{}")))
	require.NoError(t, RemoveParam(LAST_PROFILE))
	require.NoError(t, RemoveParam(LAST_PROFILE))

	_, err := GetParam(LAST_PROFILE)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestIsString(t *testing.T) {
	assert.True(t, IsString([]byte("hello\n\tworld")))
	assert.False(t, IsString([]byte{0x00, 0x41}))
}

func TestDefaultParamsPath(t *testing.T) {
	t.Setenv("SCURVE_PARAMS_PATH", "/tmp/somewhere")
	assert.Equal(t, "/tmp/somewhere", DefaultParamsPath())
}
