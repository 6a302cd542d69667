package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execCommand runs the root command with args against a fresh command
// tree and returns combined output.
func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "souk.db")
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := execCommand(t, "list", "--format", "xml", "--db", tempDB(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInitCommand_RejectsSecondInit(t *testing.T) {
	db := tempDB(t)

	out, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "registry initialized")

	out, err = execCommand(t, "init", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "REINIT_ATTEMPTED")
}

func TestCreateCommand_RequiresCaller(t *testing.T) {
	_, err := execCommand(t, "create", "p1", "--db", tempDB(t), "--price", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestCreateCommand_InvalidAmount(t *testing.T) {
	db := tempDB(t)
	_, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)

	_, err = execCommand(t, "create", "p1", "--db", db, "--as", "alice.near", "--price", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCreateGetSettleRoundTrip(t *testing.T) {
	db := tempDB(t)
	_, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)

	out, err := execCommand(t, "create", "p1", "--db", db,
		"--as", "alice.near", "--name", "Goat", "--kind", "product", "--price", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "created listing p1")

	// Duplicate id fails fast with a coded error.
	out, err = execCommand(t, "create", "p1", "--db", db,
		"--as", "mallory.near", "--name", "Fake goat", "--price", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DUPLICATE_LISTING")

	out, err = execCommand(t, "get", "p1", "--db", db, "--format", "json")
	require.NoError(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	out, err = execCommand(t, "settle", "p1", "--db", db, "--as", "bob.near", "--amount", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "settled p1")

	// Wrong amount is an entry-point failure, not a command error.
	out, err = execCommand(t, "settle", "p1", "--db", db, "--as", "carol.near", "--amount", "50")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "AMOUNT_MISMATCH")

	out, err = execCommand(t, "get", "p1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "sold=1")
}

func TestGetCommand_UnknownListing(t *testing.T) {
	db := tempDB(t)
	_, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)

	out, err := execCommand(t, "get", "missing", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "LISTING_NOT_FOUND")
}

func TestSettleCommand_UnknownListing(t *testing.T) {
	db := tempDB(t)
	_, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)

	out, err := execCommand(t, "settle", "missing", "--db", db, "--as", "bob.near", "--amount", "100")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "LISTING_NOT_FOUND")
}

func TestListCommand_Empty(t *testing.T) {
	db := tempDB(t)
	_, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)

	out, err := execCommand(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no listings")
}

func TestListCommand_InsertionOrder(t *testing.T) {
	db := tempDB(t)
	_, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)

	for _, id := range []string{"z", "a", "m"} {
		_, err = execCommand(t, "create", id, "--db", db,
			"--as", "alice.near", "--name", id, "--price", "1")
		require.NoError(t, err)
	}

	out, err := execCommand(t, "list", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)

	listings, ok := resp.Data.([]any)
	require.True(t, ok, "data is %T, want array", resp.Data)
	require.Len(t, listings, 3)
	for i, want := range []string{"z", "a", "m"} {
		entry, ok := listings[i].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, want, entry["id"])
	}
}

func TestTransfersCommand_AfterSettlement(t *testing.T) {
	db := tempDB(t)
	_, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)

	_, err = execCommand(t, "create", "p1", "--db", db,
		"--as", "alice.near", "--name", "Goat", "--price", "100")
	require.NoError(t, err)
	_, err = execCommand(t, "settle", "p1", "--db", db, "--as", "bob.near", "--amount", "100")
	require.NoError(t, err)

	out, err := execCommand(t, "transfers", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "alice.near")
	assert.Contains(t, out, "listing=p1")
}

func TestProjectFlow(t *testing.T) {
	db := tempDB(t)
	_, err := execCommand(t, "init", "--db", db)
	require.NoError(t, err)

	_, err = execCommand(t, "create", "well", "--db", db,
		"--as", "ngo.near", "--name", "Village well",
		"--kind", "project", "--target", "5000", "--deposit", "10")
	require.NoError(t, err)

	_, err = execCommand(t, "settle", "well", "--db", db, "--as", "bob.near", "--amount", "10")
	require.NoError(t, err)
	_, err = execCommand(t, "settle", "well", "--db", db, "--as", "carol.near", "--amount", "10")
	require.NoError(t, err)

	out, err := execCommand(t, "get", "well", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "donors=2")
	assert.Contains(t, out, "donated=20")
}
