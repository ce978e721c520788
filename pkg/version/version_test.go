package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildTime, info.BuildTime)
	assert.Contains(t, info.GoVersion, "go")
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.0.0", GitCommit: "abc123", BuildTime: "today", GoVersion: "go1.25.1"}
	assert.Equal(t, "Version: 1.0.0, GitCommit: abc123, BuildTime: today, GoVersion: go1.25.1", info.String())
}

func TestInfoJSON(t *testing.T) {
	info := Info{Version: "1.0.0", GitCommit: "abc123", BuildTime: "today", GoVersion: "go1.25.1"}

	out, err := info.JSON()
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"version\": \"1.0.0\"")

	var decoded Info
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, info, decoded)
}
