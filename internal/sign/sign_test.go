package sign

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFakeProgram(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake program scripts are posix shell only")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-prog")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestSignOpenPGPSuccess(t *testing.T) {
	prog := writeFakeProgram(t, `echo "signature-bytes"
echo "[GNUPG:] SIG_CREATED X" >&2
exit 0
`)
	cfg := Config{Format: FormatOpenPGP, Key: "ABC123", OpenPGPProgram: prog}
	sig, err := Sign(context.Background(), cfg, []byte("commit buffer"))
	require.NoError(t, err)
	require.Equal(t, "gpgsig", sig.TrailerField)
	require.Contains(t, sig.Data, "signature-bytes")
}

func TestSignOpenPGPMissingSigCreatedFails(t *testing.T) {
	prog := writeFakeProgram(t, `echo "signature-bytes"
exit 0
`)
	cfg := Config{Format: FormatOpenPGP, Key: "ABC123", OpenPGPProgram: prog}
	_, err := Sign(context.Background(), cfg, []byte("commit buffer"))
	require.Error(t, err)
}

func TestSignOpenPGPNonZeroExitFails(t *testing.T) {
	prog := writeFakeProgram(t, `echo "boom" >&2
exit 1
`)
	cfg := Config{Format: FormatOpenPGP, Key: "ABC123", OpenPGPProgram: prog}
	_, err := Sign(context.Background(), cfg, []byte("commit buffer"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestSignSSHEncryptedKeyRejected(t *testing.T) {
	prog := writeFakeProgram(t, `echo "Enter passphrase for key: incorrect passphrase supplied" >&2
exit 255
`)
	cfg := Config{Format: FormatSSH, Key: "/home/user/.ssh/id_ed25519", SSHProgram: prog}
	_, err := Sign(context.Background(), cfg, []byte("commit buffer"))
	require.Error(t, err)
	var encErr ErrEncryptedKey
	require.ErrorAs(t, err, &encErr)
}

func TestSignSSHSuccessUsesGpgsigTrailer(t *testing.T) {
	prog := writeFakeProgram(t, `echo "ssh-signature-bytes"
exit 0
`)
	cfg := Config{Format: FormatSSH, Key: "/home/user/.ssh/id_ed25519", SSHProgram: prog}
	sig, err := Sign(context.Background(), cfg, []byte("commit buffer"))
	require.NoError(t, err)
	require.Equal(t, "gpgsig", sig.TrailerField)
	require.Contains(t, sig.Data, "ssh-signature-bytes")
}

func TestSignX509NotImplemented(t *testing.T) {
	cfg := Config{Format: FormatX509}
	_, err := Sign(context.Background(), cfg, []byte("commit buffer"))
	require.Error(t, err)
	var notImpl ErrMethodNotImplemented
	require.ErrorAs(t, err, &notImpl)
}
