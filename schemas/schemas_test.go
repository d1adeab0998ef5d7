package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/resumeforge/tailor/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"jd_data.schema.json",
		"rewrite_bullets.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestJDDataSchema_ValidatesExpectedShape(t *testing.T) {
	data, err := os.ReadFile("jd_data.schema.json")
	require.NoError(t, err)

	validDoc := `{
		"role_title": "Senior Backend Engineer",
		"experience_level": "senior",
		"must_have_skills": ["Python", "PostgreSQL"],
		"nice_to_have_skills": ["Docker"],
		"keywords": ["Python", "PostgreSQL", "Docker"],
		"role_category": "Software Engineering"
	}`

	err = schemas.ValidateJSONString(string(data), validDoc)
	assert.NoError(t, err)
}

func TestJDDataSchema_RejectsBadLevel(t *testing.T) {
	data, err := os.ReadFile("jd_data.schema.json")
	require.NoError(t, err)

	invalidDoc := `{
		"role_title": "Engineer",
		"experience_level": "expert",
		"must_have_skills": [],
		"nice_to_have_skills": [],
		"keywords": [],
		"role_category": "General"
	}`

	err = schemas.ValidateJSONString(string(data), invalidDoc)
	assert.Error(t, err)
}

func TestRewriteBulletsSchema_ValidatesStringArray(t *testing.T) {
	data, err := os.ReadFile("rewrite_bullets.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(data), `["Built APIs", "Optimized queries"]`)
	assert.NoError(t, err)

	err = schemas.ValidateJSONString(string(data), `[1, 2]`)
	assert.Error(t, err)
}
