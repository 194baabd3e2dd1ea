// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points TODOCTL_CFG at a testdata file and resets the
// global Config. The reset is undone at cleanup.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("TODOCTL_CFG", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "http://localhost:8080", cfg.Data["url"])
				assert.Equal(t, "s3cret", cfg.Data["token"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				ls, ok := cfg.Data["ls"].(map[string]interface{})
				require.True(t, ok, "ls should be a map")
				assert.Equal(t, 5, ls["limit"])
				assert.Equal(t, true, ls["color"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "todoctl", cfg.Data["name"])
				assert.Equal(t, 20, cfg.Data["limit"])
				assert.Equal(t, false, cfg.Data["color"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				tags, ok := cfg.Data["tags"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, tags, 2)
			},
		},
		{
			name:     "toml",
			testFile: "simple.toml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "http://localhost:8080", cfg.Data["url"])
				cache, ok := cfg.Data["cache"].(map[string]interface{})
				require.True(t, ok, "cache should be a map")
				assert.EqualValues(t, 12, cache["clean"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source, "should have a source path")
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Setenv("TODOCTL_CFG", "")
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	cfg, err := Load(filepath.Join("testdata", "simple.toml"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Data["token"])
}

func TestLoad_BadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "todoctl.toml")
	require.NoError(t, os.WriteFile(p, []byte("url = "), 0o600))
	t.Setenv("TODOCTL_CFG", p)

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("TODOCTL_CFG", "/nonexistent/path/todoctl.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_TODOCTL_CFG_IsDirectory(t *testing.T) {
	t.Setenv("TODOCTL_CFG", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_SearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todoctl.toml"), []byte(`url = "http://found"`), 0o600))

	t.Setenv("TODOCTL_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "todoctl.toml"), cfg.Source)
	assert.Equal(t, "http://found", cfg.Data["url"])
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "simple string value", testFile: "simple.yaml", key: "url", want: "http://localhost:8080"},
		{name: "nested string value", testFile: "nested.yaml", key: "ls.url", want: "http://localhost:9000"},
		{name: "toml value", testFile: "simple.toml", key: "token", want: "s3cret"},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
		},
		{name: "missing key without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "non-string value", testFile: "mixed-types.yaml", key: "limit", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)
			_, _ = Load()

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int value", testFile: "mixed-types.yaml", key: "limit", want: 20},
		{name: "float value converted to int", testFile: "mixed-types.yaml", key: "timeout", want: 30},
		{name: "nested int value", testFile: "nested.yaml", key: "cache.clean", want: 24},
		{name: "toml int64", testFile: "simple.toml", key: "cache.clean", want: 12},
		{name: "missing key with default", testFile: "simple.yaml", key: "missing", defaultValue: []int{60}, want: 60},
		{name: "missing key without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "non-int value", testFile: "simple.yaml", key: "url", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)
			_, _ = Load()

			got, err := GetInt(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetBool(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	got, err := GetBool("ls.color")
	assert.NoError(t, err)
	assert.True(t, got)

	got, err = GetBool("missing", true)
	assert.NoError(t, err)
	assert.True(t, got)

	_, err = GetBool("url")
	assert.Error(t, err)
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	got, err := GetStringSlice("ls.defaults")
	assert.NoError(t, err)
	assert.Equal(t, []string{"--sort -title", "--titles"}, got)

	got, err = GetStringSlice("url")
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://jsonplaceholder.typicode.com"}, got)

	_, err = GetStringSlice("cache.clean")
	assert.Error(t, err)
}

func TestConfig_GetWithNamespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")
	_, err := Load()
	require.NoError(t, err)

	Config.Namespace = "ls"
	val, err := Config.get("url")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", val)

	// Falls back to the bare key.
	val, err = Config.get("cache.clean")
	assert.NoError(t, err)
	assert.Equal(t, 24, val)

	Config.Namespace = "export"
	val, err = GetString("url")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:9001", val)

	Config.Namespace = "rm"
	val, err = GetString("url")
	assert.NoError(t, err)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", val)
}

func TestConfig_LazyLoad(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	val, err := GetString("url")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", val)
	assert.NotEmpty(t, Config.Source, "Config should be loaded")
}
