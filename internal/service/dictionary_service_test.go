package service

import (
	"context"
	"exam_studio_backend/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDictionary(t *testing.T) *DictionaryService {
	t.Helper()
	dir := t.TempDir()

	en := `{"exams":{"editExam":{"expression":{"saveSuccess":"Expression saved!"}}},"greeting":"Hello"}`
	es := `{"greeting":"Hola"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(en), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es.json"), []byte(es), 0644))

	return NewDictionaryService(&config.LocaleConfig{Path: dir, Default: "en"}, nil)
}

func TestDictionaryLookup(t *testing.T) {
	svc := newTestDictionary(t)

	dict, err := svc.Lookup(context.Background(), "es")
	require.NoError(t, err)
	assert.Equal(t, "Hola", Get(dict, []string{"greeting"}, ""))
}

func TestDictionaryFallsBackToDefault(t *testing.T) {
	svc := newTestDictionary(t)

	dict, err := svc.Lookup(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, "Hello", Get(dict, []string{"greeting"}, ""))
}

func TestDictionaryNestedGet(t *testing.T) {
	svc := newTestDictionary(t)
	dict, err := svc.Lookup(context.Background(), "en")
	require.NoError(t, err)

	got := Get(dict, []string{"exams", "editExam", "expression", "saveSuccess"}, "fallback")
	assert.Equal(t, "Expression saved!", got)

	assert.Equal(t, "fallback", Get(dict, []string{"exams", "missing", "key"}, "fallback"))
	assert.Equal(t, "fallback", Get(dict, []string{"exams"}, "fallback"))
}

func TestSupportedLocales(t *testing.T) {
	svc := newTestDictionary(t)
	locales := svc.SupportedLocales()
	assert.ElementsMatch(t, []string{"en", "es"}, locales)
}
