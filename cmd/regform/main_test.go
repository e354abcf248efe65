package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	require.Contains(t, out, "India (+91)\n  Gujarat\n    - Vaghodia\n")
	require.Contains(t, out, "United States (+1)")

	out, err = run(t, "catalog", "--json")
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, "render", "--renderer", "vanilla", "--fragment")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, `<form id="registration-form"`))

	out, err = run(t, "render", "-r", "text")
	require.NoError(t, err)
	require.Contains(t, out, "Submit: disabled")

	_, err = run(t, "render", "-r", "pdf")
	require.Error(t, err)
}

func TestOpenAPICommand(t *testing.T) {
	out, err := run(t, "openapi", "--list")
	require.NoError(t, err)
	require.Contains(t, out, "dispatchEvent")

	out, err = run(t, "openapi")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "openapi: 3.0.3"))
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := run(t, "--log-format", "xml", "catalog")
	require.ErrorContains(t, err, "log.format")
}
