package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/berfenger/sen6xgen/internal/config"
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBuildReportsCloseError(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()
	logger := util.TestLogger(cfg)
	build := &domain.Build{
		Hub:          domain.HubConfig{ID: "air"},
		Instructions: []domain.Instruction{domain.Register("air")},
	}

	var buf bytes.Buffer
	errClose := errors.New("disk full")
	err := writeBuild(&buf, func() error { return errClose }, config.FORMAT_CPP, build, logger)
	assert.ErrorIs(err, errClose)
	assert.Contains(buf.String(), "App.register_component(air);")

	buf.Reset()
	err = writeBuild(&buf, func() error { return nil }, config.FORMAT_CPP, build, logger)
	assert.NoError(err)
}

func TestGenerateToFile(t *testing.T) {

	assert := assert.New(t)

	dir := t.TempDir()
	cfg := util.LoadTestConfig()
	cfg.Input = filepath.Join(dir, "air.yaml")
	cfg.Output = filepath.Join(dir, "air.cpp")
	require.NoError(t, os.WriteFile(cfg.Input, []byte("sen6x:\n  id: air\n"), 0o644))

	require.NoError(t, generate(cfg, util.TestLogger(cfg)))

	out, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(string(out), "auto *air = new sen6x::Sen6xComponent();")

	require.NoError(t, os.WriteFile(cfg.Input, []byte("sen6x:\n  address: 200\n"), 0o644))
	assert.ErrorIs(generate(cfg, util.TestLogger(cfg)), domain.ErrRange)
}
