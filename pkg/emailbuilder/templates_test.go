package emailbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarterTemplates(t *testing.T) {
	templates := StarterTemplates()
	require.Len(t, templates, 5)

	for _, tpl := range templates {
		t.Run(tpl.Key, func(t *testing.T) {
			assert.NotEmpty(t, tpl.Name)
			assert.NotEmpty(t, tpl.Description)

			blocks := tpl.Blocks(NewSequenceGenerator("t"))
			require.NotEmpty(t, blocks)
			require.NoError(t, ValidateDocument(blocks))
			assert.Equal(t, BlockTypeFooter, blocks[len(blocks)-1].GetType(), "templates end with an unsubscribe footer")
		})
	}
}

func TestFindStarterTemplate(t *testing.T) {
	tpl, ok := FindStarterTemplate("promo")
	require.True(t, ok)
	blocks := tpl.Blocks(NewSequenceGenerator("t"))
	header := blocks[0].(*HeaderBlock)
	assert.Equal(t, "SPECIAL OFFER", header.Text)
	assert.Equal(t, "#6c5ce7", header.BgColor)

	// every build gets its own blocks
	again := tpl.Blocks(NewSequenceGenerator("t"))
	again[0].(*HeaderBlock).Text = "changed"
	assert.Equal(t, "SPECIAL OFFER", header.Text)

	_, ok = FindStarterTemplate("missing")
	assert.False(t, ok)
}
