package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easel-agent/cli/internal/domain"
)

func recordedProfile(t *testing.T) *Profile {
	t.Helper()

	profile := NewProfile("studio", 1920, 1080)
	for i, name := range RequiredTargets {
		require.NoError(t, profile.Record(name, 50+i*30, 60))
	}
	return profile
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	profile := recordedProfile(t)

	require.NoError(t, store.Save(profile))

	loaded, err := store.Load("studio")
	require.NoError(t, err)

	assert.Equal(t, profile.Name, loaded.Name)
	assert.Equal(t, profile.ScreenWidth, loaded.ScreenWidth)
	assert.Equal(t, profile.ScreenHeight, loaded.ScreenHeight)
	assert.Equal(t, profile.Targets, loaded.Targets)
	assert.Empty(t, loaded.Missing())
}

func TestStoreLoadMissingProfile(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "easel calibrate")
}

func TestStoreSaveRejectsInvalidProfile(t *testing.T) {
	store := NewStore(t.TempDir())

	profile := recordedProfile(t)
	profile.Targets["broken"] = Point{X: 99999, Y: 0}

	err := store.Save(profile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside")
}

func TestStoreListAndDelete(t *testing.T) {
	store := NewStore(t.TempDir())

	first := recordedProfile(t)
	second := recordedProfile(t)
	second.Name = "laptop"

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"laptop", "studio"}, names)

	require.NoError(t, store.Delete("laptop"))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"studio"}, names)

	assert.Error(t, store.Delete("laptop"))
}

func TestStoreListEmptyDir(t *testing.T) {
	store := NewStore(t.TempDir() + "/missing")

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestProfileLookupAndStaleness(t *testing.T) {
	profile := recordedProfile(t)

	pt, err := profile.Lookup("rectangle")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 50, Y: 60}, pt)

	_, err = profile.Lookup("does not exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTargetNotCalibrated)

	assert.NoError(t, profile.CheckResolution(1920, 1080))

	err = profile.CheckResolution(2560, 1440)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStaleCalibration)
}

func TestProfileRecordRejectsOffscreen(t *testing.T) {
	profile := NewProfile("p", 800, 600)

	assert.Error(t, profile.Record("oval", 900, 100))
	assert.Error(t, profile.Record("oval", 100, -1))
	assert.NoError(t, profile.Record("oval", 800, 600))
}

func TestProfileMissing(t *testing.T) {
	profile := NewProfile("p", 800, 600)
	require.NoError(t, profile.Record("rectangle", 10, 10))

	missing := profile.Missing()
	assert.NotContains(t, missing, "rectangle")
	assert.Contains(t, missing, "oval")
	assert.Contains(t, missing, "select")
}
