package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("LOG_LEVEL", "disabled")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdRunsSession(t *testing.T) {
	out, err := execute(t, "1234\n4321\n1\n7\ny\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Login successful!")
	assert.Contains(t, out, "Your current balance is: $500.00")
	assert.Contains(t, out, "Goodbye!")
}

func TestRootCmdWritesMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm.prom")

	_, err := execute(t, "1234\n4321\n2\n50\n7\ny\n", "--metrics-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `goatm_login_attempts_total{result="success"} 1`)
	assert.Contains(t, string(data), `goatm_operations_total{operation="deposit",result="success"} 1`)
	assert.Contains(t, string(data), "goatm_active_sessions 0")
}

func TestRootCmdRejectsBadSeed(t *testing.T) {
	t.Setenv("ATM_SEED_ACCOUNTS", "1234:4321:-5")

	_, err := execute(t, "")
	assert.Error(t, err)
}

func TestAccountsCmd(t *testing.T) {
	out, err := execute(t, "", "accounts")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "1234  $500.00")
	assert.Contains(t, out, "7890  $700.00")
	assert.NotContains(t, out, "4321")
}

func TestAccountsCmdListsAccountTable(t *testing.T) {
	t.Setenv("ATM_SEED_ACCOUNTS", "7890:1111:1.5,1234:4321:20")

	out, err := execute(t, "", "accounts")
	require.NoError(t, err)

	assert.Contains(t, out, "1234  $20.00")
	assert.Contains(t, out, "7890  $1.50")
	assert.Less(t, strings.Index(out, "1234"), strings.Index(out, "7890"))
}

func TestAccountsCmdRejectsDuplicateSeed(t *testing.T) {
	t.Setenv("ATM_SEED_ACCOUNTS", "1234:4321:10,1234:0000:20")

	_, err := execute(t, "", "accounts")
	assert.Error(t, err)
}
