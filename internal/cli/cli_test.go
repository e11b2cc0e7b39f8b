package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FRAUDSTOP_REFERENCE_SOURCE", "embedded")
	t.Setenv("FRAUDSTOP_DATABASE_ENABLED", "false")

	cmd := NewRoot("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fraudstop test")
	assert.Contains(t, out, services.IntentTableVersion)
}

func TestCheck_Safe(t *testing.T) {
	out, err := execute(t, "", "check", "https://fnb.co.za/login")
	require.NoError(t, err)
	assert.Contains(t, out, "TARGET")
	assert.Contains(t, out, "fnb.co.za")
	assert.Contains(t, out, "allow_list")
}

func TestCheck_DangerousExitCode(t *testing.T) {
	out, err := execute(t, "", "check", "https://shein-sa-deals.co.za/offer", "takealot.com")
	require.Error(t, err)

	var ee *ExitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, exitDangerous, ee.Code())
	assert.Empty(t, ee.Message())

	assert.Contains(t, out, "shein-sa-deals.co.za")
	assert.Contains(t, out, "dangerous")
	assert.Contains(t, out, "deny_list")
	assert.Contains(t, out, "takealot.com")
}

func TestCheck_JSON(t *testing.T) {
	out, err := execute(t, "", "check", "--json", "secure-login.example.com", "  ")
	require.NoError(t, err)

	var resp models.BatchCheckResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, 1, resp.SuspiciousCount)
	assert.Equal(t, "keywords", resp.Results[0].Rule)
}

func TestCheck_BlankTarget(t *testing.T) {
	_, err := execute(t, "", "check", "   ")
	assert.ErrorIs(t, err, services.ErrEmptyTarget)
}

func TestCheck_RequiresArgs(t *testing.T) {
	_, err := execute(t, "", "check")
	assert.Error(t, err)
}

func TestChat_OneShot(t *testing.T) {
	out, err := execute(t, "", "chat", "how", "do", "I", "report", "a", "scam")
	require.NoError(t, err)
	assert.Contains(t, out, "Reporting scams helps protect our entire community!")
	assert.Contains(t, out, "  * Start a new report")
}

func TestChat_Interactive(t *testing.T) {
	out, err := execute(t, "is my bank safe?\n\n/quit\nnever read\n", "chat")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "bot> Hi! I'm your Fraud Stop assistant."))
	assert.Contains(t, out, "  * Check a suspicious link")
	// "safe" is matched before "bank"
	assert.Contains(t, out, "Here are some essential safety tips")
	assert.NotContains(t, out, "South African banks will NEVER")
	assert.Equal(t, 2, strings.Count(out, "bot> "))
}

func TestChat_InteractiveEOF(t *testing.T) {
	out, err := execute(t, "hello there", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "What would you like to know more about?")
}

func TestListsValidate_YAML(t *testing.T) {
	path := writeFile(t, "refs.yaml", `version: "test-1"
known_malicious:
  - domain: bad.example.com
    report_count: 3
  - domain: Worse.Example.org
known_legitimate:
  - good.example.com
`)
	out, err := execute(t, "", "lists", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `version "test-1", 2 malicious, 1 legitimate`)
}

func TestListsValidate_Overlap(t *testing.T) {
	path := writeFile(t, "refs.yml", `known_malicious:
  - domain: both.example.com
known_legitimate:
  - https://BOTH.example.com/
`)
	_, err := execute(t, "", "lists", "validate", path)
	assert.ErrorIs(t, err, services.ErrOverlappingLists)
}

func TestListsValidate_UnknownField(t *testing.T) {
	path := writeFile(t, "refs.yaml", "known_bad:\n  - x.com\n")
	_, err := execute(t, "", "lists", "validate", path)
	assert.Error(t, err)
}

func TestListsValidate_PlainList(t *testing.T) {
	path := writeFile(t, "domains.txt", "# blocked\nexample.com\nEXAMPLE.com # dup\n\nhttps://foo.org/path\n")
	out, err := execute(t, "", "lists", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 domains")
}

func TestListsValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "", "lists", "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestListsImport_NeedsDatabase(t *testing.T) {
	path := writeFile(t, "refs.yaml", "known_legitimate:\n  - good.example.com\n")
	_, err := execute(t, "", "lists", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.enabled")
}

func TestExitError(t *testing.T) {
	var nilErr *ExitError
	assert.Equal(t, 1, nilErr.Code())
	assert.Equal(t, "exit 3", (&ExitError{code: 3}).Error())
	assert.Equal(t, "boom", (&ExitError{code: 1, message: "boom"}).Error())
}
