package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	vault := NewVault(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "vault key is empty"},
		{name: "whitespace", key: "   ", wantErr: "vault key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid vault key"},
		{name: "traversal", key: "../escape", wantErr: "invalid vault key"},
		{name: "deep traversal", key: "../../token", wantErr: "invalid vault key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := vault.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestVaultPutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	vault := NewVault(root)
	key := "session/token"

	require.NoError(t, vault.Put(context.Background(), key, "header.payload.sig"))
	require.NoError(t, vault.Put(context.Background(), key, "header.payload.sig2\n"))

	got, err := vault.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "header.payload.sig2", got)

	info, err := os.Stat(filepath.Join(root, key))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(vaultFileMode), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(root, "session", ".vault-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestVaultGetMissingKeyIsTokenNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewVault(t.TempDir()).Get(context.Background(), "session/token")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestVaultDeleteIsIdempotentWhenEntryMissing(t *testing.T) {
	t.Parallel()

	vault := NewVault(t.TempDir())
	key := "session/token.mirror"

	require.NoError(t, vault.Delete(context.Background(), key))
	require.NoError(t, vault.Delete(context.Background(), key))
}

func TestVaultCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewVault(t.TempDir()).Put(ctx, "session/token", "value")
	assert.ErrorIs(t, err, context.Canceled)
}
