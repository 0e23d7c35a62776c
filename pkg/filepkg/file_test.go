package filepkg

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := "/data/balance.txt"

	require.NoError(t, WriteFile(fs, path, []byte("100.00")))

	got, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Equal(t, "100.00", string(got))

	require.NoError(t, WriteFile(fs, path, []byte("70.00")))

	got, err = afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Equal(t, "70.00", string(got))

	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	require.Equal(t, "balance.txt", entries[0].Name())
}

func TestWriteFileReadOnlyFs(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := WriteFile(fs, "/data/balance.txt", []byte("1.00"))
	require.Error(t, err)
}
