package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/optihire/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"draft_envelope.schema.json",
	"builder_settings.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_DeclareJSONSchemaShape(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]
			assert.True(t, hasType && hasSchema && hasProps,
				"schema should declare type, $schema, and properties")
		})
	}
}

func TestDraftEnvelopeSchema_AcceptsSavedDraft(t *testing.T) {
	doc := `{
		"data": {
			"personal": {"full_name": "Ada Lovelace", "email": "ada@example.com"},
			"summary": "Engineer",
			"experiences": [
				{"id": "e1", "company_name": "Acme", "display_order": 0}
			],
			"education": [],
			"skills": [],
			"projects": [],
			"certifications": [],
			"section_order": null,
			"version_name": "Primary",
			"is_primary": true
		},
		"metadata": {
			"last_saved": "2025-06-01T12:00:00Z",
			"version": "1.0",
			"is_auto_save": true
		}
	}`

	err := schemas.ValidateBytes("draft_envelope.schema.json", []byte(doc))
	assert.NoError(t, err)
}

func TestDraftEnvelopeSchema_RejectsMissingMetadata(t *testing.T) {
	doc := `{"data": {"personal": {}, "version_name": "Primary"}}`

	err := schemas.ValidateBytes("draft_envelope.schema.json", []byte(doc))
	require.Error(t, err)

	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestBuilderSettingsSchema_AcceptsSavedSettings(t *testing.T) {
	doc := `{"autosave_enabled": true, "last_active_tab": "skills"}`

	err := schemas.ValidateBytes("builder_settings.schema.json", []byte(doc))
	assert.NoError(t, err)
}

func TestBuilderSettingsSchema_RejectsUnknownTab(t *testing.T) {
	doc := `{"autosave_enabled": false, "last_active_tab": "references"}`

	err := schemas.ValidateBytes("builder_settings.schema.json", []byte(doc))
	require.Error(t, err)
}
