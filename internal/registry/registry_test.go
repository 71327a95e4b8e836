package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPreservesOrder(t *testing.T) {
	path := writeFile(t, `
- name: web-1
  glances_api_url: http://10.0.0.11:61208/api/4/
- name: db-1
  glances_api_url: "http://10.0.0.12:61208/api/3/"
  location: rack-2
- name: cache-1
  glances_api_url: https://cache.internal/api/4/
`)

	reg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	all := reg.All()
	assert.Equal(t, []string{"web-1", "db-1", "cache-1"}, []string{all[0].Name, all[1].Name, all[2].Name})
	assert.Equal(t, "http://10.0.0.12:61208/api/3/", all[1].BaseURL)

	ep, ok := reg.Lookup("cache-1")
	require.True(t, ok)
	assert.Equal(t, "https://cache.internal/api/4/", ep.BaseURL)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	reg, err := New([]Endpoint{{Name: "a", BaseURL: "http://a/"}})
	require.NoError(t, err)

	all := reg.All()
	all[0].Name = "mutated"

	assert.Equal(t, "a", reg.All()[0].Name)
}

func TestLoadEmptySequence(t *testing.T) {
	reg, err := Load(writeFile(t, "[]\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrParse)

	var regErr *Error
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, ErrKindNotFound, regErr.Kind)
}

func TestLoadParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad syntax":   "- name: [unterminated\n",
		"not a list":   "name: web-1\nglances_api_url: http://web-1/\n",
		"empty file":   "",
		"scalar value": "just a string\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := map[string]string{
		"entry not a mapping": "- web-1\n",
		"missing name":        "- glances_api_url: http://web-1/\n",
		"missing url":         "- name: web-1\n",
		"empty name":          "- name: ''\n  glances_api_url: http://web-1/\n",
		"empty url":           "- name: web-1\n  glances_api_url: ''\n",
		"numeric name":        "- name: 42\n  glances_api_url: http://web-1/\n",
		"bad scheme":          "- name: web-1\n  glances_api_url: ftp://web-1/\n",
		"relative url":        "- name: web-1\n  glances_api_url: /api/4/\n",
		"duplicate names": `
- name: web-1
  glances_api_url: http://a/
- name: web-1
  glances_api_url: http://b/
`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "not_found", ErrKindNotFound.String())
	assert.Equal(t, "parse_error", ErrKindParse.String())
	assert.Equal(t, "validation_error", ErrKindValidation.String())
}

func TestEmpty(t *testing.T) {
	reg := Empty()
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.All())
	_, ok := reg.Lookup("a")
	assert.False(t, ok)
}
