package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestGetTokenPriority(t *testing.T) {
	keyring.MockInit()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(TokenEnv, "")

	token, src, err := GetToken()
	require.NoError(t, err)
	assert.Equal(t, "", token)
	assert.Equal(t, TokenSourceNone, src)

	src, err = SaveToken("  from-keyring \n")
	require.NoError(t, err)
	assert.Equal(t, TokenSourceKeyring, src)

	token, src, err = GetToken()
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", token)
	assert.Equal(t, TokenSourceKeyring, src)

	t.Setenv(TokenEnv, "from-env")
	token, src, err = GetToken()
	require.NoError(t, err)
	assert.Equal(t, "from-env", token)
	assert.Equal(t, TokenSourceEnv, src)

	t.Setenv(TokenEnv, "")
	require.NoError(t, ClearToken())
	token, _, err = GetToken()
	require.NoError(t, err)
	assert.Equal(t, "", token)
}

func TestGetTokenFromFile(t *testing.T) {
	keyring.MockInit()
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv(TokenEnv, "")

	dir := filepath.Join(dataHome, AppName)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, credFileName), []byte("file-token\n"), 0600))

	token, src, err := GetToken()
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)
	assert.Equal(t, TokenSourceFile, src)
}

func TestSaveTokenEmpty(t *testing.T) {
	_, err := SaveToken("   ")
	assert.Error(t, err)
}
