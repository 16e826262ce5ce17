package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Greater(t, c.Len(), 40)

	bench, ok := c.Lookup("Barbell Bench Press")
	require.True(t, ok)
	assert.Equal(t, "Chest", bench.PrimaryMuscleGroup)
	assert.Equal(t, "compound", bench.Category)
	assert.Contains(t, bench.Alternatives, "Dumbbell Bench Press")

	// lookups are normalized
	same, ok := c.Lookup("  barbell BENCH press ")
	require.True(t, ok)
	assert.Equal(t, bench, same)

	_, ok = c.Lookup("Underwater Basket Weaving")
	assert.False(t, ok)
}

func TestNew_SkipsDuplicatesAndEmptyNames(t *testing.T) {
	c := New([]Entry{
		{ID: "1", Name: "Squat", Category: "compound"},
		{ID: "2", Name: "squat", Category: "isolation"},
		{ID: "3", Name: "  "},
	})
	require.Equal(t, 1, c.Len())

	sq, ok := c.Lookup("SQUAT")
	require.True(t, ok)
	assert.Equal(t, "1", sq.ID)
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := New([]Entry{{ID: "1", Name: "Squat"}})
	all := c.All()
	all[0].Name = "changed"

	sq, ok := c.Lookup("Squat")
	require.True(t, ok)
	assert.Equal(t, "Squat", sq.Name)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := `
[[exercise]]
id = "leg-press"
name = "Leg Press"
primary_muscle_group = "Legs"
muscle_region = "quads"
movement_pattern = "squat"
category = "compound"
alternatives = ["Hack Squat"]
video_url = "https://example.com/leg-press"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	lp, ok := c.Lookup("leg press")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/leg-press", lp.VideoURL)
	assert.Equal(t, []string{"Hack Squat"}, lp.Alternatives)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
