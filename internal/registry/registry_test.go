package registry

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/marbles/internal/core"
)

type fakeGame struct{ id string }

func (g *fakeGame) ID() string                           { return g.id }
func (g *fakeGame) Title() string                        { return "Fake " + g.id }
func (g *fakeGame) Reset(core.RuntimeConfig)             {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen)                  {}
func (g *fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_fake_b", func() Game { return &fakeGame{id: "zz_fake_b"} })
	Register("zz_fake_a", func() Game { return &fakeGame{id: "zz_fake_a"} })

	require.True(t, Exists("zz_fake_a"))
	assert.False(t, Exists("zz_missing"))

	g, err := Create("zz_fake_a")
	require.NoError(t, err)
	assert.Equal(t, "zz_fake_a", g.ID())

	_, err = Create("zz_missing")
	assert.Error(t, err, "unknown games cannot be created")

	// List is sorted by ID and carries titles
	var ids []string
	for _, info := range List() {
		if info.ID == "zz_fake_a" {
			assert.Equal(t, "Fake zz_fake_a", info.Title)
		}
		ids = append(ids, info.ID)
	}
	assert.True(t, sort.StringsAreSorted(ids), "List not sorted: %v", ids)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_fake_dup", func() Game { return &fakeGame{id: "zz_fake_dup"} })

	assert.Panics(t, func() {
		Register("zz_fake_dup", func() Game { return &fakeGame{id: "zz_fake_dup"} })
	})
}
