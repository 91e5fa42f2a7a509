package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/eshaffer321/hospitalnav-go/internal/devserver"
	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes one invocation against stateFile with pacing disabled
func runCLI(t *testing.T, stateFile string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--state", stateFile, "--mock-latency", "0", "--char-delay", "0"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func newStateFile(t *testing.T) string {
	t.Helper()
	for _, key := range []string{envBaseURL, envMock, envMockLatency, envSentryDSN} {
		t.Setenv(key, "")
	}
	return filepath.Join(t.TempDir(), "state.json")
}

func TestSearch(t *testing.T) {
	state := newStateFile(t)

	out, err := runCLI(t, state, "--mock", "search", "骨")
	require.NoError(t, err)
	assert.Contains(t, out, "北京积水潭医院")
	assert.Contains(t, out, "北京大学第三医院")
	assert.NotContains(t, out, "北京协和医院")
	assert.Contains(t, out, "DISTANCE")
}

func TestSearch_JSONAllPages(t *testing.T) {
	state := newStateFile(t)

	out, err := runCLI(t, state, "--mock", "--json", "search", "--all", "--size", "3")
	require.NoError(t, err)

	var hospitals []*hospital.Hospital
	require.NoError(t, json.Unmarshal([]byte(out), &hospitals))
	assert.Len(t, hospitals, 7)
}

func TestShow_NotFound(t *testing.T) {
	state := newStateFile(t)

	_, err := runCLI(t, state, "--mock", "show", "999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, hospital.ErrNotFound))
}

func TestNearby_RequiresLocation(t *testing.T) {
	state := newStateFile(t)

	_, err := runCLI(t, state, "--mock", "nearby")
	require.Error(t, err)

	out, err := runCLI(t, state, "--mock", "nearby", "--lat", "39.9436", "--lng", "116.3735", "--radius", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "北京积水潭医院")
}

func TestMode_PersistedFlagSelectsBackend(t *testing.T) {
	state := newStateFile(t)

	out, err := runCLI(t, state, "mode", "get")
	require.NoError(t, err)
	assert.Equal(t, "live\n", out)

	_, err = runCLI(t, state, "mode", "set", "mock")
	require.NoError(t, err)

	out, err = runCLI(t, state, "mode", "get")
	require.NoError(t, err)
	assert.Equal(t, "mock\n", out)

	// No --mock flag and no server: the persisted flag picks the fixtures
	out, err = runCLI(t, state, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")

	_, err = runCLI(t, state, "mode", "set", "staging")
	require.Error(t, err)
}

func TestSessionAcrossInvocations(t *testing.T) {
	state := newStateFile(t)

	_, err := runCLI(t, state, "--mock", "whoami")
	require.Error(t, err)
	assert.True(t, errors.Is(err, hospital.ErrNotAuthenticated))

	out, err := runCLI(t, state, "--mock", "login", "wx-code")
	require.NoError(t, err)
	assert.Contains(t, out, "测试用户")

	out, err = runCLI(t, state, "--mock", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "测试用户")

	_, err = runCLI(t, state, "--mock", "logout")
	require.NoError(t, err)

	_, err = runCLI(t, state, "--mock", "whoami")
	require.Error(t, err)
}

func TestFavoritesToggle(t *testing.T) {
	state := newStateFile(t)

	out, err := runCLI(t, state, "--mock", "--json", "favorites", "toggle", "5")
	require.NoError(t, err)

	var result struct {
		ID       string `json:"id"`
		Favorite bool   `json:"favorite"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "5", result.ID)
	assert.True(t, result.Favorite)

	out, err = runCLI(t, state, "--mock", "favorites")
	require.NoError(t, err)
	assert.Contains(t, out, "北京协和医院")
}

func TestRate(t *testing.T) {
	state := newStateFile(t)

	_, err := runCLI(t, state, "--mock", "rate", "2", "--quality", "6")
	require.Error(t, err)
	var validationErrs hospital.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))

	out, err := runCLI(t, state, "--mock", "rate", "2",
		"--quality", "5", "--service", "4", "--environment", "4", "--efficiency", "3", "--equipment", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "for hospital 2")
}

func TestChat(t *testing.T) {
	state := newStateFile(t)

	out, err := runCLI(t, state, "--mock", "chat", "心脏", "不舒服")
	require.NoError(t, err)
	assert.Contains(t, out, hospital.AssistantReply)
	assert.Contains(t, out, "中国医学科学院阜外医院")
	assert.Contains(t, out, "Session: ")
}

func TestLiveModeAgainstDevServer(t *testing.T) {
	state := newStateFile(t)
	ts := httptest.NewServer(devserver.New(nil))
	defer ts.Close()

	out, err := runCLI(t, state, "--mock=false", "--base-url", ts.URL, "search", "骨")
	require.NoError(t, err)
	assert.Contains(t, out, "北京积水潭医院")

	_, err = runCLI(t, state, "--mock=false", "--base-url", ts.URL, "favorites")
	require.Error(t, err)
	assert.True(t, errors.Is(err, hospital.ErrUnauthorized))

	_, err = runCLI(t, state, "--mock=false", "--base-url", ts.URL, "login", "wx-code")
	require.NoError(t, err)

	out, err = runCLI(t, state, "--mock=false", "--base-url", ts.URL, "favorites")
	require.NoError(t, err)
	assert.Contains(t, out, "北京同仁医院")
}
