package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_DefaultsWhenMissing(t *testing.T) {
	s := NewSettingsService(t.TempDir())

	settings, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	s := NewSettingsService(t.TempDir())
	want := &Settings{
		WindowWidth:           1280,
		WindowHeight:          800,
		WindowX:               5,
		WindowY:               6,
		IsMaximized:           true,
		UILanguage:            LocaleJapanese,
		CheckUpdatesOnStartup: false,
		NotificationsEnabled:  false,
	}

	require.NoError(t, s.SaveSettings(want))
	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettings_KeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"windowWidth": 640}`), 0644))

	settings, err := NewSettingsService(dir).LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 640, settings.WindowWidth)
	assert.Equal(t, 768, settings.WindowHeight)
	assert.True(t, settings.NotificationsEnabled)
	assert.True(t, settings.CheckUpdatesOnStartup)
	assert.Equal(t, LocaleSystem, settings.UILanguage)
}

func TestLoadSettings_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{`), 0644))

	_, err := NewSettingsService(dir).LoadSettings()
	assert.Error(t, err)
}

func TestSaveWindowState(t *testing.T) {
	stubRuntime(t)
	s := NewSettingsService(t.TempDir())

	ctx := NewContext()
	assert.ErrorIs(t, s.SaveWindowState(ctx), ErrWindowNotReady)

	ctx.start(context.Background())
	require.NoError(t, s.SaveWindowState(ctx))
	settings, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 900, settings.WindowWidth)
	assert.Equal(t, 700, settings.WindowHeight)
	assert.Equal(t, 40, settings.WindowX)
	assert.Equal(t, 60, settings.WindowY)
	assert.False(t, settings.IsMaximized)
}
