package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defect-cost/core/types"
	"defect-cost/internal/errors"
)

func writeVocab(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeVocab(t, `
department "production" {
  roles = ["Резка", "Гибка", "Сборка"]
}

department "office" {
  roles = ["Менеджер", "Конструктор"]
}
`)

	v, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Резка", "Гибка", "Сборка"}, v.Roles(types.DepartmentProduction))
	assert.Equal(t, types.DepartmentProduction, v.DepartmentOf("Гибка"))
	assert.Equal(t, types.DepartmentOffice, v.DepartmentOf("Менеджер"))
	// Unknown roles still fall back to Office.
	assert.Equal(t, types.DepartmentOffice, v.DepartmentOf("Сварка"))
}

func TestLoadBlockNameCaseInsensitive(t *testing.T) {
	path := writeVocab(t, `
department "Production" {
  roles = ["Резка"]
}

department "OFFICE" {
  roles = ["Менеджер"]
}
`)

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.DepartmentProduction, v.DepartmentOf("Резка"))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing office block",
			content: `
department "production" {
  roles = ["Резка"]
}
`,
		},
		{
			name: "duplicate block",
			content: `
department "production" {
  roles = ["Резка"]
}

department "production" {
  roles = ["Гибка"]
}

department "office" {
  roles = ["Менеджер"]
}
`,
		},
		{
			name: "unknown department",
			content: `
department "production" {
  roles = ["Резка"]
}

department "office" {
  roles = ["Менеджер"]
}

department "warehouse" {
  roles = ["Кладовщик"]
}
`,
		},
		{
			name:    "not hcl at all",
			content: `{"production": []}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeVocab(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig), "got %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig), "got %v", err)
}
