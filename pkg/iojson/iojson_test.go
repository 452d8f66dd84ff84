package iojson

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, record{Name: "a", Count: 2}))

	assert.Equal(t, "{\n  \"name\": \"a\",\n  \"count\": 2\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalError(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)}))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"json_error"`)
}

func TestWriteLine(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteLine(&out, record{Name: "a", Count: 1}))
	require.NoError(t, WriteLine(&out, record{Name: "b", Count: 2}))

	assert.Equal(t, "{\"name\":\"a\",\"count\":1}\n{\"name\":\"b\",\"count\":2}\n", out.String())

	err := WriteLine(&out, make(chan int))
	require.Error(t, err)
}

func TestFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x","count":3}`), 0o644))

	fr := &FileReader[record]{}
	assert.False(t, fr.Provided())

	fr.fileFlagValue = path
	assert.True(t, fr.Provided())

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, record{Name: "x", Count: 3}, got)

	fr.fileFlagValue = filepath.Join(t.TempDir(), "missing.json")
	_, err = fr.Read()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
