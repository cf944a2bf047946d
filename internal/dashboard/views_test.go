package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadViews_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.yaml")
	doc := `views:
  - name: overview
    charts:
      - slot: overview-design
        title: Study Design
        kind: pie
        field: design
        top_n: 5
        palette: ["#111111", "#222222"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadViews(path)
	require.NoError(t, err)

	view, ok := cfg.View("overview")
	require.True(t, ok)
	require.Len(t, view.Charts, 1)
	assert.Equal(t, "design", view.Charts[0].Field)
	assert.Equal(t, 5, view.Charts[0].TopN)
}

func TestLoadViews_RejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.yaml")
	doc := `views:
  - name: overview
    charts:
      - slot: s1
        field: not_a_field
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := LoadViews(path)
	assert.Error(t, err)
}

func TestViewConfig_RejectsDuplicateSlots(t *testing.T) {
	cfg := ViewConfig{Views: []View{
		{Name: "a", Charts: []ChartDef{{Slot: "x", Field: "design"}}},
		{Name: "b", Charts: []ChartDef{{Slot: "x", Field: "condition"}}},
	}}
	assert.Error(t, cfg.Validate())
}

func TestLoadViews_MissingFileFails(t *testing.T) {
	_, err := LoadViews(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
