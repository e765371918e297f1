package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mu2e/jobdef/internal/filestage"
)

func writeConfig(t *testing.T, dir string, name string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("HOME", t.TempDir())

	c, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "", c.ArchiveDir)
	assert.Equal(t, filestage.LocationTape, c.Staging.DefaultLocation)
	assert.Equal(t, filestage.ProtocolFile, c.Staging.DefaultProtocol)
	assert.Equal(t, filestage.DefaultXrootdPrefix, c.Staging.XrootdPrefix)
	assert.Empty(t, c.Staging.Roots)
}

func TestLoad_DefaultFileInHome(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, ".jobdefctl.yaml", "logLevel: debug\n")

	c, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "jobdefctl.yaml", `
logLevel: debug
archiveDir: /data/archives
staging:
  defaultLocation: dir:/data/files
  defaultProtocol: root
  roots:
    disk: /pnfs/other/persistent
  xrootdPrefix: root://door.example:1094/
`)

	c, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		LogLevel:   "debug",
		ArchiveDir: "/data/archives",
		Staging: StagingConfig{
			DefaultLocation: filestage.Location("dir:/data/files"),
			DefaultProtocol: filestage.ProtocolXroot,
			Roots:           map[filestage.Location]string{filestage.LocationDisk: "/pnfs/other/persistent"},
			XrootdPrefix:    "root://door.example:1094/",
		},
	}, c)
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "jobdefctl.yaml", "logLevel: debug\n")
	t.Setenv("JOBDEF_LOGLEVEL", "warn")
	t.Setenv("JOBDEF_STAGING_DEFAULTLOCATION", "scratch")

	c, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, filestage.LocationScratch, c.Staging.DefaultLocation)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"bad location":  "staging:\n  defaultLocation: nfs\n",
		"bad protocol":  "staging:\n  defaultProtocol: https\n",
		"bad log level": "logLevel: loud\n",
		"relative root": "staging:\n  roots:\n    disk: persistent\n",
		"bad prefix":    "staging:\n  xrootdPrefix: https://door.example/\n",
		"not yaml":      "logLevel: [debug\n",
	}
	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "jobdefctl.yaml", contents)
			_, err := Load(viper.New(), path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeHooks(t *testing.T) {
	assert.Len(t, CustomHooks, 1)
	stringType := reflect.TypeOf("")

	l, err := LocationDecodeHook()(stringType, reflect.TypeOf(filestage.Location("")), "disk")
	require.NoError(t, err)
	assert.Equal(t, filestage.LocationDisk, l)

	p, err := ProtocolDecodeHook()(stringType, reflect.TypeOf(filestage.Protocol("")), "root")
	require.NoError(t, err)
	assert.Equal(t, filestage.ProtocolXroot, p)

	_, err = ProtocolDecodeHook()(stringType, reflect.TypeOf(filestage.Protocol("")), "ftp")
	assert.Error(t, err)

	// Other target types pass through untouched.
	v, err := LocationDecodeHook()(stringType, stringType, "nfs")
	require.NoError(t, err)
	assert.Equal(t, "nfs", v)
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "Staging.DefaultLocation", stripPrefix("Config.Staging.DefaultLocation"))
	assert.Equal(t, "Config", stripPrefix("Config"))
}
