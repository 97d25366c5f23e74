// ABOUTME: End-to-end tests for the coven-settings command tree
// ABOUTME: Each invocation opens and closes a temp database, like a real run

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coven-settings/internal/auth"
	"github.com/2389/coven-settings/internal/config"
)

type testCLI struct {
	t      *testing.T
	dbPath string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	color.NoColor = true

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvFile, "")

	return &testCLI{t: t, dbPath: filepath.Join(dir, "settings.db")}
}

// run executes one command line against the test database with the given stdin.
func (c *testCLI) runWithInput(stdin string, args ...string) (string, error) {
	c.t.Helper()

	var out, errOut bytes.Buffer
	provider := &appProvider{Out: &out, Err: &errOut}

	root := newRootCmd(provider)
	root.SetArgs(append([]string{"--file", c.dbPath}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))

	err := root.ExecuteContext(context.Background())
	if cerr := provider.Close(); err == nil {
		err = cerr
	}
	return out.String(), err
}

func (c *testCLI) run(args ...string) (string, error) {
	c.t.Helper()
	return c.runWithInput("", args...)
}

func (c *testCLI) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "coven-settings %s", strings.Join(args, " "))
	return out
}

func TestGlobalCommands(t *testing.T) {
	cli := newTestCLI(t)

	assert.Equal(t, "(absent)\n", cli.mustRun("global", "get", "theme"))

	out := cli.mustRun("global", "set", "theme", "dark")
	assert.Contains(t, out, "set theme")

	assert.Equal(t, "\"dark\"\n", cli.mustRun("global", "get", "theme"))

	cli.mustRun("global", "set", "limits", `{"max": 10}`)
	assert.Equal(t, "{\"max\":10}\n", cli.mustRun("global", "get", "limits"))

	cli.mustRun("global", "set", "cleared")
	assert.Equal(t, "null\n", cli.mustRun("global", "get", "cleared"))

	list := cli.mustRun("global", "list")
	assert.Equal(t, "cleared = null\nlimits = {\"max\":10}\ntheme = \"dark\"\n", list)

	cli.mustRun("global", "delete", "theme")
	assert.Equal(t, "(absent)\n", cli.mustRun("global", "get", "theme"))
}

func TestGlobalSet_Raw(t *testing.T) {
	cli := newTestCLI(t)

	cli.mustRun("global", "set", "code", "42", "--raw")
	assert.Equal(t, "\"42\"\n", cli.mustRun("global", "get", "code"))

	cli.mustRun("global", "set", "count", "42")
	assert.Equal(t, "42\n", cli.mustRun("global", "get", "count"))
}

func TestGlobalGet_JSONOutput(t *testing.T) {
	cli := newTestCLI(t)
	cli.mustRun("global", "set", "n", "null")

	var got lookupResult
	require.NoError(t, json.Unmarshal([]byte(cli.mustRun("--json", "global", "get", "n")), &got))
	assert.True(t, got.Found, "stored null is found")
	assert.Nil(t, got.Value)

	got = lookupResult{}
	require.NoError(t, json.Unmarshal([]byte(cli.mustRun("--json", "global", "get", "missing")), &got))
	assert.False(t, got.Found)
}

func TestGlobalGet_EmptyKeyIsValidationError(t *testing.T) {
	cli := newTestCLI(t)

	// Reads of an empty key are absent; writes are refused
	assert.Equal(t, "(absent)\n", cli.mustRun("global", "get", ""))
	_, err := cli.run("global", "set", "", "v")
	assert.Error(t, err)
}

func TestSkillCommands(t *testing.T) {
	cli := newTestCLI(t)

	cli.mustRun("skill", "set", "weather", "units", "metric")
	cli.mustRun("skill", "set", "weather", "refresh", "30")
	cli.mustRun("skill", "set", "news", "region", "eu")

	assert.Equal(t, "\"metric\"\n", cli.mustRun("skill", "get", "weather", "units"))
	assert.Equal(t, "(absent)\n", cli.mustRun("skill", "get", "news", "units"))

	one := cli.mustRun("skill", "list", "weather")
	assert.Equal(t, "weather/refresh = 30\nweather/units = \"metric\"\n", one)

	all := cli.mustRun("skill", "list")
	assert.Equal(t, "news/region = \"eu\"\nweather/refresh = 30\nweather/units = \"metric\"\n", all)

	cli.mustRun("skill", "delete", "weather", "units")
	assert.Equal(t, "(absent)\n", cli.mustRun("skill", "get", "weather", "units"))
}

func TestSkillList_JSONOutput(t *testing.T) {
	cli := newTestCLI(t)
	cli.mustRun("skill", "set", "a", "k", "[1,2]")

	var entries []struct {
		SkillID string `json:"skill_id"`
		Key     string `json:"key"`
		Value   []int  `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(cli.mustRun("--json", "skill", "list")), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].SkillID)
	assert.Equal(t, "k", entries[0].Key)
	assert.Equal(t, []int{1, 2}, entries[0].Value)
}

func TestValueCommands(t *testing.T) {
	cli := newTestCLI(t)

	cli.mustRun("value", "set", "weather", "42", "units", "imperial")
	cli.mustRun("value", "set", "weather", "42", "favorites", `["Oslo","Lima"]`)
	cli.mustRun("value", "set", "weather", "7", "units", "metric")

	assert.Equal(t, "\"imperial\"\n", cli.mustRun("value", "get", "weather", "42", "units"))
	assert.Equal(t, "\"metric\"\n", cli.mustRun("value", "get", "weather", "7", "units"))
	assert.Equal(t, "(absent)\n", cli.mustRun("value", "get", "news", "42", "units"))

	list := cli.mustRun("value", "list", "weather", "42")
	assert.Equal(t, "favorites = [\"Oslo\",\"Lima\"]\nunits = \"imperial\"\n", list)

	// Per-user values do not leak into skill scope
	assert.Equal(t, "", cli.mustRun("skill", "list", "weather"))

	cli.mustRun("value", "delete", "weather", "42", "units")
	assert.Equal(t, "(absent)\n", cli.mustRun("value", "get", "weather", "42", "units"))
}

func TestUserCommands(t *testing.T) {
	cli := newTestCLI(t)

	out := cli.mustRun("user", "save", "alice", "--password", "s3cret", "--admin")
	assert.Contains(t, out, "saved alice")

	show := cli.mustRun("user", "show", "alice")
	assert.Contains(t, show, "Username:  alice")
	assert.Contains(t, show, "Admin:     true")
	assert.NotContains(t, show, "s3cret")

	cli.mustRun("user", "check", "alice", "--password", "s3cret")

	_, err := cli.run("user", "check", "alice", "--password", "wrong")
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)

	_, err = cli.run("user", "show", "bob")
	assert.Error(t, err)
}

func TestUserSave_UpdateKeepsID(t *testing.T) {
	cli := newTestCLI(t)

	var first, second userView
	require.NoError(t, json.Unmarshal([]byte(cli.mustRun("--json", "user", "save", "alice", "--password", "one")), &first))
	require.NoError(t, json.Unmarshal([]byte(cli.mustRun("--json", "user", "save", "alice", "--password", "two")), &second))

	assert.Equal(t, first.ID, second.ID)
	assert.NotEmpty(t, first.ID)

	cli.mustRun("user", "check", "alice", "--password", "two")
}

func TestUserSave_PasswordFromStdin(t *testing.T) {
	cli := newTestCLI(t)

	_, err := cli.runWithInput("piped\n", "user", "save", "carol", "--password-stdin")
	require.NoError(t, err)

	_, err = cli.runWithInput("piped", "user", "check", "carol", "--password-stdin")
	assert.NoError(t, err)
}

func TestUserSave_RequiresPassword(t *testing.T) {
	cli := newTestCLI(t)

	_, err := cli.run("user", "save", "dave")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)

	_, err = cli.runWithInput("x\n", "user", "save", "dave", "--password", "y", "--password-stdin")
	assert.Error(t, err)
}

func TestSettingsPersistAcrossRuns(t *testing.T) {
	cli := newTestCLI(t)

	for i := range 5 {
		cli.mustRun("global", "set", "run", strings.Repeat("x", i+1))
	}
	assert.Equal(t, "\"xxxxx\"\n", cli.mustRun("global", "get", "run"))
}

func TestFileFromEnvironment(t *testing.T) {
	cli := newTestCLI(t)
	envPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv(config.EnvFile, envPath)

	var out bytes.Buffer
	provider := &appProvider{Out: &out, Err: &bytes.Buffer{}}
	root := newRootCmd(provider)
	root.SetArgs([]string{"global", "set", "from", "env"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	require.NoError(t, provider.Close())

	// The --file database never saw the write
	assert.Equal(t, "(absent)\n", cli.mustRun("global", "get", "from"))
}

func TestHelpDoesNotOpenStore(t *testing.T) {
	cli := newTestCLI(t)

	provider := &appProvider{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	root := newRootCmd(provider)
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--file", cli.dbPath, "global", "--help"})
	require.NoError(t, root.Execute())

	assert.Nil(t, provider.app)
	assert.NoError(t, provider.Close())
}
