package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

func TestDepartmentsCaseInsensitive(t *testing.T) {
	r := New([]models.Employee{
		{Name: " Sanya ", Department: []string{"Marketing", "Social Media"}},
		{Name: "Ravi", Department: []string{"HR"}},
		{Name: "", Department: []string{"Operations"}},
		{Name: "Noor"},
	})

	assert.Equal(t, []string{"Marketing", "Social Media"}, r.Departments("SANYA"))
	assert.Equal(t, []string{"HR"}, r.Departments(" ravi"))
	assert.Empty(t, r.Departments("Noor"))
	assert.Empty(t, r.Departments("nobody"))
	assert.Equal(t, []string{"Sanya", "Ravi", "Noor"}, r.Names())
	assert.Equal(t, 3, r.Len())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Ana","department":["AI Research & Development"]}]`), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AI Research & Development"}, r.Departments("ana"))
}

func TestLoadMissingFile(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, r)
	assert.Zero(t, r.Len())
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	r, err := Load(path)
	assert.Error(t, err)
	assert.NotNil(t, r)
}
