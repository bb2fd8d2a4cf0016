package emailbuilder

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func fixedNow() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) }

func TestExport_DocumentShell(t *testing.T) {
	html := Export(nil, ExportOptions{})

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<o:PixelsPerInch>96</o:PixelsPerInch>")
	assert.Contains(t, html, "@media only screen and (max-width:640px)")
	assert.Contains(t, html, ".vee-columns-row td{display:block!important;width:100%!important;")
	assert.Contains(t, html, "background-color:#f4f4f7;")
	assert.Contains(t, html, `class="vee-email-container" width="600"`)
	assert.NotContains(t, html, "display:none;font-size:1px")
	assert.True(t, strings.HasSuffix(html, "</table></td></tr></table></body></html>"))
}

func TestExport_Options(t *testing.T) {
	t.Run("width is clamped", func(t *testing.T) {
		assert.Contains(t, Export(nil, ExportOptions{EmailWidth: 100}), `width="320"`)
		assert.Contains(t, Export(nil, ExportOptions{EmailWidth: 2000}), `width="800"`)
		assert.Contains(t, Export(nil, ExportOptions{EmailWidth: 700}), "(max-width:740px)")
	})

	t.Run("preheader is hidden, escaped and padded", func(t *testing.T) {
		html := Export(nil, ExportOptions{PreheaderText: "Sale <today> & tomorrow", BackgroundColor: "#000000"})

		doc := parseHTML(t, html)
		pre := doc.Find(`body > div`).First()
		style, _ := pre.Attr("style")
		assert.Contains(t, style, "display:none")
		assert.Contains(t, style, "opacity:0")
		assert.Contains(t, html, "Sale &lt;today&gt; &amp; tomorrow")
		assert.Equal(t, 30, strings.Count(html, "&zwnj;&nbsp;"))
	})

	t.Run("preheader is truncated", func(t *testing.T) {
		opts := ExportOptions{PreheaderText: strings.Repeat("é", 250)}.Normalize()
		assert.Equal(t, MaxPreheaderLength, len([]rune(opts.PreheaderText)))
	})
}

func TestExport_HeaderBeforeButton(t *testing.T) {
	e, err := NewEditor(nil, WithIDGenerator(NewSequenceGenerator("b")))
	require.NoError(t, err)
	_, err = e.Add(BlockTypeHeader, -1)
	require.NoError(t, err)
	_, err = e.Add(BlockTypeButton, -1)
	require.NoError(t, err)

	html := e.HTML()
	assert.Equal(t, 1, strings.Count(html, "<h1 "))
	h1 := strings.Index(html, "<h1 ")
	anchor := strings.Index(html, "<a href=")
	require.True(t, h1 >= 0 && anchor >= 0)
	assert.Less(t, h1, anchor)

	doc := parseHTML(t, html)
	assert.Equal(t, "Your Company", doc.Find("h1").Text())
	assert.Equal(t, "Learn more", doc.Find("a").Text())
}

func TestExport_Deterministic(t *testing.T) {
	ids := NewSequenceGenerator("b")
	var blocks []Block
	for _, bt := range BlockTypes() {
		blocks = append(blocks, MustNewBlock(bt, ids))
	}
	opts := ExportOptions{PreheaderText: "Hello", Now: fixedNow}

	first := Export(blocks, opts)
	second := Export(blocks, opts)
	assert.Equal(t, first, second)

	t.Run("without countdown the clock is irrelevant", func(t *testing.T) {
		var noCountdown []Block
		for _, b := range blocks {
			if b.GetType() != BlockTypeCountdown {
				noCountdown = append(noCountdown, b)
			}
		}
		a := Export(noCountdown, ExportOptions{})
		time.Sleep(2 * time.Millisecond)
		assert.Equal(t, a, Export(noCountdown, ExportOptions{}))
	})
}

func TestExport_Escaping(t *testing.T) {
	ids := NewSequenceGenerator("b")
	text := MustNewBlock(BlockTypeText, ids).(*TextBlock)
	text.Text = "Tom & \"Jerry\" <script>\nline two"
	img := MustNewBlock(BlockTypeImage, ids).(*ImageBlock)
	img.Src = `https://cdn.example.com/a.png?x=1&y='2'`
	img.Alt = `He said "hi"`
	raw := MustNewBlock(BlockTypeHTML, ids).(*HTMLBlock)
	raw.RawHTML = `<b class="x">raw</b>`

	html := Export([]Block{text, img, raw}, ExportOptions{})

	assert.Contains(t, html, "Tom &amp; &quot;Jerry&quot; &lt;script&gt;<br/>line two")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, `src="https://cdn.example.com/a.png?x=1&amp;y=&#39;2&#39;"`)
	assert.Contains(t, html, `alt="He said &quot;hi&quot;"`)
	assert.Contains(t, html, `<b class="x">raw</b>`)
}

func TestExport_ButtonOutlookFallback(t *testing.T) {
	b := MustNewBlock(BlockTypeButton, NewSequenceGenerator("b")).(*ButtonBlock)
	b.BtnRadius = 22
	b.Href = "https://example.com/?a=1&b=2"

	html := ExportFragment(b, ExportOptions{})

	assert.Contains(t, html, "<!--[if mso]><v:roundrect")
	assert.Contains(t, html, `arcsize="50%"`)
	assert.Contains(t, html, `fillcolor="#6c5ce7"`)
	assert.Contains(t, html, "</v:roundrect><![endif]-->")
	assert.Equal(t, 2, strings.Count(html, `href="https://example.com/?a=1&amp;b=2"`))

	doc := parseHTML(t, html)
	assert.Equal(t, 1, doc.Find("a").Length())
	assert.Equal(t, "Learn more", doc.Find("a").Text())
}

func TestButtonArcSize(t *testing.T) {
	assert.Equal(t, 0, buttonArcSize(0))
	assert.Equal(t, 14, buttonArcSize(6))
	assert.Equal(t, 100, buttonArcSize(44))
}

func TestExport_Columns(t *testing.T) {
	ids := NewSequenceGenerator("b")
	cols := MustNewBlock(BlockTypeColumns3, ids).(*ColumnsBlock)
	cols.ColumnGap = 12
	cols.Columns[0].Blocks = append(cols.Columns[0].Blocks, MustNewBlock(BlockTypeTitle, ids).(LeafBlock))
	cols.Columns[2].Blocks = append(cols.Columns[2].Blocks, MustNewBlock(BlockTypeImage, ids).(LeafBlock))

	doc := parseHTML(t, Export([]Block{cols}, ExportOptions{}))

	cells := doc.Find("tr.vee-columns-row > td")
	require.Equal(t, 3, cells.Length())
	cells.Each(func(_ int, s *goquery.Selection) {
		w, _ := s.Attr("width")
		assert.Equal(t, "33%", w)
		style, _ := s.Attr("style")
		assert.Equal(t, "padding:0 6px;", style)
	})
	assert.Equal(t, 1, cells.Eq(0).Find("h2").Length())
	assert.Equal(t, 0, cells.Eq(1).Children().Length())
	assert.Equal(t, 1, cells.Eq(2).Find("img").Length())
}

func TestExport_EveryTypeProducesTableRows(t *testing.T) {
	ids := NewSequenceGenerator("b")
	for _, bt := range BlockTypes() {
		t.Run(string(bt), func(t *testing.T) {
			html := ExportFragment(MustNewBlock(bt, ids), ExportOptions{Now: fixedNow})
			doc := parseHTML(t, html)
			assert.GreaterOrEqual(t, doc.Find("table > tbody > tr > td").Length(), 1)
		})
	}
}

func TestExport_Countdown(t *testing.T) {
	b := MustNewBlock(BlockTypeCountdown, NewSequenceGenerator("b")).(*CountdownBlock)
	b.EndDate = "2026-05-06T15:30"

	t.Run("digits follow the clock", func(t *testing.T) {
		html := ExportFragment(b, ExportOptions{Now: fixedNow})
		doc := parseHTML(t, html)
		var digits []string
		doc.Find("div").Each(func(_ int, s *goquery.Selection) { digits = append(digits, s.Text()) })
		assert.Equal(t, []string{"02", "03", "30", "00"}, digits)
		assert.Contains(t, html, "The offer ends in:")
	})

	t.Run("hidden units are skipped", func(t *testing.T) {
		c := *b
		c.ShowSeconds = false
		c.ShowDays = false
		doc := parseHTML(t, ExportFragment(&c, ExportOptions{Now: fixedNow}))
		assert.Equal(t, 2, doc.Find("div").Length())
	})

	t.Run("expired shows the expired label", func(t *testing.T) {
		html := ExportFragment(b, ExportOptions{Now: func() time.Time { return fixedNow().Add(72 * time.Hour) }})
		assert.Contains(t, html, "Offer expired!")
		assert.NotContains(t, html, "DAYS")
	})
}

func TestCountdownRemaining(t *testing.T) {
	b := &CountdownBlock{EndDate: "2026-05-05T13:01"}
	assert.Equal(t, [4]int64{1, 1, 1, 0}, b.Remaining(fixedNow()))

	b.EndDate = "2026-05-04T12:00:30Z"
	assert.Equal(t, [4]int64{0, 0, 0, 30}, b.Remaining(fixedNow()))

	b.EndDate = "garbage"
	assert.Equal(t, [4]int64{}, b.Remaining(fixedNow()))
}

func TestVideoThumbnail(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", VideoThumbnail("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", VideoThumbnail("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, videoPlaceholder, VideoThumbnail("https://vimeo.com/1234"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "29.99 €", FormatPrice(29.99, "EUR"))
	assert.Equal(t, "29.99 €", FormatPrice(29.99, ""))
	assert.Equal(t, "$5.00", FormatPrice(5, "USD"))
	assert.Equal(t, "SEK12.50", FormatPrice(12.5, "SEK"))
}

func TestExport_ProductDiscount(t *testing.T) {
	p := MustNewBlock(BlockTypeProduct, NewSequenceGenerator("b")).(*ProductBlock)
	p.ProductPrice = 75
	p.OriginalPrice = 100
	p.Badge = "Sale"

	html := ExportFragment(p, ExportOptions{})
	assert.Contains(t, html, "-25%")
	assert.Contains(t, html, "text-decoration:line-through;")
	assert.Contains(t, html, ">Sale</span>")

	p.ImagePosition = "left"
	doc := parseHTML(t, ExportFragment(p, ExportOptions{}))
	w, _ := doc.Find(`td[width="40%"]`).Attr("width")
	assert.Equal(t, "40%", w)
}
