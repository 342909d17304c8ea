package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlatform replaces the platform lookups for the duration of t.
func withPlatform(t *testing.T, home, cwd string) {
	t.Helper()
	saved := platformDir
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return filepath.Join(home, "config"), nil }
	platformDir.getwd = func() (string, error) { return cwd, nil }
	t.Cleanup(func() { platformDir = saved })
}

func TestPlatformConfigDir(t *testing.T) {
	withPlatform(t, "/home/ana", "/work")

	if runtime.GOOS != "linux" {
		got, err := PlatformConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/ana", "config", "propai"), got)
		return
	}

	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		got, err := PlatformConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg/propai", got)
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got, err := PlatformConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/ana/.config/propai", got)
	})
}

func TestResolveConfigDir(t *testing.T) {
	cwd := t.TempDir()
	withPlatform(t, "/home/ana", cwd)
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	platform, err := PlatformConfigDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		flag     string
		env      string
		localDir bool
		want     string
	}{
		{name: "flag wins", flag: "/explicit", env: "/env", localDir: true, want: "/explicit"},
		{name: "env over local", env: "/env", localDir: true, want: "/env"},
		{name: "local dir", localDir: true, want: filepath.Join(cwd, LocalConfigDirName)},
		{name: "platform default", want: platform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.env)
			local := filepath.Join(cwd, LocalConfigDirName)
			if tt.localDir {
				require.NoError(t, os.MkdirAll(local, 0o755))
			} else {
				require.NoError(t, os.RemoveAll(local))
			}

			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveConfigDirIgnoresLocalFile(t *testing.T) {
	cwd := t.TempDir()
	withPlatform(t, "/home/ana", cwd)
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	require.NoError(t, os.WriteFile(filepath.Join(cwd, LocalConfigDirName), nil, 0o644))

	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.NotEqual(t, filepath.Join(cwd, LocalConfigDirName), got)
}

func TestResolveDataDir(t *testing.T) {
	withPlatform(t, "/home/ana", "/work")

	tests := []struct {
		name   string
		flag   string
		config string
		env    string
		want   string
	}{
		{name: "flag wins", flag: "/flag", config: "/cfg", env: "/env", want: "/flag"},
		{name: "config over env", config: "/cfg", env: "/env", want: "/cfg"},
		{name: "env", env: "/env", want: "/env"},
		{name: "working directory default", want: filepath.Join("/work", LocalDataDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.env)
			got, err := ResolveDataDir(tt.flag, tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDirRelativeFlag(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	got, err := ResolveDataDir("data", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "data", filepath.Base(got))
}

func TestResolveWorkingDirectoryError(t *testing.T) {
	saved := platformDir
	platformDir.getwd = func() (string, error) { return "", errors.New("no cwd") }
	t.Cleanup(func() { platformDir = saved })
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvConfigDir, "")

	_, err := ResolveDataDir("", "")
	assert.Error(t, err)
	_, err = ResolveConfigDir("")
	assert.Error(t, err)
}
