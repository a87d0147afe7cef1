package cli

import (
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepulse/backend/internal/apperr"
)

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range Root().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "store-create", "import", "compose", "generate", "render"} {
		assert.True(t, names[want], want)
	}
}

func TestDescribe(t *testing.T) {
	color.NoColor = true

	err := describe(apperr.Validation("Validation errors", map[string]any{
		"errors":       []string{"Row 2: missing date column", "Row 4: invalid date"},
		"total_errors": 2,
	}))
	require.Error(t, err)
	assert.Equal(t, "Validation errors\n  Row 2: missing date column\n  Row 4: invalid date", err.Error())

	internal := apperr.Internal("upsert sales", errors.New("conn reset"))
	assert.Same(t, internal, describe(internal))

	plain := errors.New("plain")
	assert.Equal(t, plain, describe(plain))
}

func TestRenderRequiresArgs(t *testing.T) {
	cmd := RenderCmd()
	cmd.SetArgs([]string{"only-one"})
	cmd.SilenceErrors = true
	assert.Error(t, cmd.Execute())
}

func TestNewStoreKeepsIndustryTag(t *testing.T) {
	st := newStore("owner-1", " Corner Cafe ", " cafe ")
	assert.Equal(t, "cafe", st.Industry)
	assert.Equal(t, "Corner Cafe", st.Name)
	assert.Equal(t, "owner-1", st.OwnerID)
	assert.NotEmpty(t, st.ID)

	assert.Equal(t, "restaurant", newStore("o", "n", "restaurant").Industry)
	assert.Equal(t, "other", newStore("o", "n", "  ").Industry)
}
