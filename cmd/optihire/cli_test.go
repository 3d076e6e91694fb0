package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonathan/optihire/internal/builder"
	"github.com/jonathan/optihire/internal/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// draftFileName is where the file store keeps the draft envelope.
const draftFileName = "optihire_resume_draft.json"

// draftTestEnv points the binary at an isolated data directory with
// endpoints that are never contacted.
func draftTestEnv(dataDir string) []string {
	return append(os.Environ(),
		"OPTIHIRE_API_URL=http://127.0.0.1:1",
		"OPTIHIRE_AUTH_URL=http://127.0.0.1:1",
		"OPTIHIRE_DATA_DIR="+dataDir,
	)
}

func TestUploadCommand_MissingArgument(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "upload")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "accepts 1 arg")
}

func TestStatusCommand_InvalidID(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "status", "not-a-uuid")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid resume id")
}

func TestLoginCommand_MissingFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "login")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag")
}

func TestDeleteCommand_AllAndIDsAreExclusive(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "delete", "--all", "1e8f6f0e-4b0e-4f7a-9d3a-1c2b3d4e5f60")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestDeleteCommand_NoTargets(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "delete")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "at least one resume id")
}

func TestDownloadCommand_NoTargets(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "download")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "at least one resume id")
}

func TestDraftMoveCommand_BadPosition(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "draft", "move", "experience", "abc", "top")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "position must be a number")
}

func TestListCommand_MissingBackendConfig(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "list")
	// No config file and no endpoint env vars.
	cmd.Env = []string{"HOME=" + t.TempDir()}
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "backend URL is required")
}

func TestRootCommand_ConfigFileNotFound(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "list", "--config", filepath.Join(t.TempDir(), "missing.json"))
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to load config")
}

func TestDraftStartCommand_CorruptDraftBlocks(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()
	corrupt := []byte(`{"data": {`)
	draftPath := filepath.Join(dataDir, draftFileName)
	require.NoError(t, os.WriteFile(draftPath, corrupt, 0o600))

	cmd := exec.Command(binaryPath, "draft", "start", "--name", "Fresh")
	cmd.Env = draftTestEnv(dataDir)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "draft is corrupt")
	assert.Contains(t, string(output), "draft discard")

	// The unreadable draft must survive the failed start untouched.
	after, readErr := os.ReadFile(draftPath)
	require.NoError(t, readErr)
	assert.Equal(t, corrupt, after)
}

func TestDraftDiscardCommand_NoDraft(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "draft", "discard", "--yes")
	cmd.Env = draftTestEnv(t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "no draft in progress")
}

func TestDraftDiscardCommand_RemovesCorruptDraft(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()
	draftPath := filepath.Join(dataDir, draftFileName)
	require.NoError(t, os.WriteFile(draftPath, []byte(`{"data": {`), 0o600))

	cmd := exec.Command(binaryPath, "draft", "discard", "--yes")
	cmd.Env = draftTestEnv(dataDir)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Draft discarded.")
	assert.NoFileExists(t, draftPath)
}

func TestDraftMoveCommand_UnknownEntryKeepsDraft(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()

	store, err := draft.NewFileStore(dataDir)
	require.NoError(t, err)
	seed := draft.NewEngine(store, nil, draft.Options{})
	seed.Apply(func(d *builder.Document) { d.VersionName = "Working Copy" })
	require.NoError(t, seed.Close())

	cmd := exec.Command(binaryPath, "draft", "move", "experience", "missing-id", "0")
	cmd.Env = draftTestEnv(dataDir)
	output, runErr := cmd.CombinedOutput()

	assert.Error(t, runErr)
	assert.Contains(t, string(output), "no experience entry")

	// The draft must still be recoverable after the failed move.
	pending, err := draft.NewEngine(store, nil, draft.Options{}).LoadPending()
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "Working Copy", pending.Data.VersionName)
}
