package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "docs"), nil)

	path, err := s.Save("notes.txt", "remember the milk")
	require.NoError(t, err)
	assert.FileExists(t, path)

	text, err := s.Load("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", text)
}

func TestLoadMissing(t *testing.T) {
	s := New(t.TempDir(), nil)

	_, err := s.Load("ghost.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "docs"), nil)

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names, "missing directory lists as empty")

	_, err = s.Save("b.txt", "two")
	require.NoError(t, err)
	_, err = s.Save("a.txt", "one")
	require.NoError(t, err)

	names, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
}

func TestSaveRejectsTraversal(t *testing.T) {
	base := t.TempDir()
	s := New(filepath.Join(base, "docs"), nil)

	path, err := s.Save("../../etc/passwd", "oops")
	require.NoError(t, err, "traversal components are stripped, not fatal")
	assert.Equal(t, filepath.Join(base, "docs", "passwd"), path)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "notes.txt", want: "notes.txt"},
		{in: "my draft.txt", want: "my_draft.txt"},
		{in: "../secret", want: "secret"},
		{in: "weird$chars!.txt", want: "weirdchars.txt"},
		{in: "..", wantErr: true},
		{in: "", wantErr: true},
		{in: "???", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Sanitize(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
