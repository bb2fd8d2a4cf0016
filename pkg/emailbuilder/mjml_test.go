package emailbuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMJML(t *testing.T) {
	ids := NewSequenceGenerator("m")
	header := MustNewBlock(BlockTypeHeader, ids).(*HeaderBlock)
	header.Text = "Tom & Jerry"
	button := MustNewBlock(BlockTypeButton, ids).(*ButtonBlock)
	button.Href = "https://example.com/?a=1&b=2"
	cols := MustNewBlock(BlockTypeColumns2, ids).(*ColumnsBlock)
	cols.Columns[1].Blocks = append(cols.Columns[1].Blocks, MustNewBlock(BlockTypeQuote, ids).(LeafBlock))

	out := ToMJML([]Block{header, button, MustNewBlock(BlockTypeSpacer, ids), cols},
		ExportOptions{PreheaderText: "Preview", EmailWidth: 640})

	assert.True(t, strings.HasPrefix(out, "<mjml>\n"))
	assert.Contains(t, out, "<mj-preview>Preview</mj-preview>")
	assert.Contains(t, out, `<mj-body background-color="#f4f4f7" width="640px">`)
	assert.Contains(t, out, "Tom &amp; Jerry")
	assert.Contains(t, out, `font-weight="bold"`)
	assert.Contains(t, out, `href="https://example.com/?a=1&amp;b=2"`)
	assert.Contains(t, out, `inner-padding="14px 30px"`)
	assert.Contains(t, out, `<mj-spacer height="30px" padding="0px" />`)
	assert.Equal(t, 4, strings.Count(out, "<mj-section"))
	assert.Equal(t, 5, strings.Count(out, "<mj-column"))
	assert.Contains(t, out, `<mj-column padding="0px 5px">`)

	// quotes have no MJML component and fall back to raw table markup
	assert.Contains(t, out, "<mj-raw>")
	assert.Contains(t, out, "border-left:4px solid #6c5ce7;")
}

func TestToMJML_ImageWidth(t *testing.T) {
	img := MustNewBlock(BlockTypeImage, NewSequenceGenerator("m")).(*ImageBlock)
	assert.NotContains(t, ToMJML([]Block{img}, ExportOptions{}), `width="100%"`)

	img.Width = "300px"
	img.BorderRadius = 6
	out := ToMJML([]Block{img}, ExportOptions{})
	assert.Contains(t, out, `width="300px"`)
	assert.Contains(t, out, `border-radius="6px"`)
}

func TestMJMLAttrs(t *testing.T) {
	assert.Equal(t, ` a="1" c="&quot;x&quot;"`, mjmlAttrs("a", "1", "b", "", "c", `"x"`))
	assert.Equal(t, "", mjmlAttrs("dangling"))
	require.Equal(t, "", radius(0))
}
