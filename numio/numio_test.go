package numio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaau/wavesort/wavesort"
)

func TestReadInts(t *testing.T) {
	got, err := ReadInts(strings.NewReader("5 3\n-8\t1\n\n  9223372036854775807\n"))
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 3, -8, 1, 9223372036854775807}, got)

	got, err = ReadInts(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadIntsInvalid(t *testing.T) {
	for _, in := range []string{"1 2 x", "1.5", "99999999999999999999"} {
		_, err := ReadInts(strings.NewReader(in))
		assert.ErrorIs(t, err, wavesort.ErrInvalidInput, "input %q", in)
	}
}

func TestWriteInts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInts(&buf, []int64{3, -1, 0}))
	assert.Equal(t, "3\n-1\n0\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteInts(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	data := []int64{10, 9, 8, -7, 1 << 40}

	require.NoError(t, WriteFile(path, data))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
