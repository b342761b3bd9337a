package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"devserve/core/config"
	"devserve/core/storage"
	"devserve/feature/static"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource_Local(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Hi</h1>"), 0o644))

	src, location, err := newSource(&config.Config{Site: static.Config{Root: dir, Source: static.SourceLocal}})
	require.NoError(t, err)
	assert.IsType(t, &static.Local{}, src)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, location)
}

func TestNewSource_LocalMissingRoot(t *testing.T) {
	_, _, err := newSource(&config.Config{Site: static.Config{Root: filepath.Join(t.TempDir(), "nope"), Source: static.SourceLocal}})
	assert.ErrorIs(t, err, static.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to open site root")
}

func TestNewSource_Bucket(t *testing.T) {
	cfg := &config.Config{
		Site:    static.Config{Source: static.SourceBucket, Prefix: "/planner/"},
		Storage: storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "site"},
	}

	src, location, err := newSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &static.Bucket{}, src)
	assert.Equal(t, "s3://site/planner/", location)
}
