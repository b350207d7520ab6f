package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	main "github.com/obrtools/obrdocs/cmd/obrdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "obrdocs")
	assert.Contains(t, stdout.String(), "sleep-min")
}

func TestMain_Run_RejectsNegativeSleepMin(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--sleep-min=-1"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sleep-min")
}

func TestMain_Run_RejectsInvertedSleepWindow(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--sleep-min=2", "--sleep-max=1"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sleep-max")
}

func TestMain_Run_SingleAndURLsFileAreExclusive(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--single=https://docs.owlbear.rodeo/extensions/apis/action",
		"--urls-file=urls.txt",
	}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestMain_Run_RejectsOutOfScopeSingle(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--out", t.TempDir(),
		"--single=https://example.com/not-a-docs-page",
	}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_MissingURLsFile(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--out", t.TempDir(),
		"--urls-file", filepath.Join(t.TempDir(), "missing.txt"),
	}, &stdout, &stderr)

	assert.Error(t, err)
}
