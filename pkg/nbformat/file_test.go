package nbformat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.ipynb")

	require.NoError(t, os.WriteFile(path, []byte(sampleNotebook), 0o644))

	nb, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, nb.Cells, 3)

	out := filepath.Join(dir, "out.ipynb")
	require.NoError(t, WriteFile(out, nb))

	again, err := ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, nb.NBFormat, again.NBFormat)
	assert.Equal(t, nb.Cells[0].Source.Text(), again.Cells[0].Source.Text())
}

func TestReadFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(`{"cells": "nope"}`), 0o644))

	_, err := ReadFile(path)
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.ipynb"))
	assert.Error(t, err)
}
