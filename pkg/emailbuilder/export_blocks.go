package emailbuilder

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

func (b *HeaderBlock) writeHTML(r *renderContext) {
	r.row(&b.Layout, func() {
		r.printf(`<h1 style="%s">%s</h1>`, escapeAttr(b.css()), escapeText(b.Text))
	})
}

func (b *TitleBlock) writeHTML(r *renderContext) {
	r.row(&b.Layout, func() {
		r.printf(`<h2 style="%s">%s</h2>`, escapeAttr(b.css()), escapeText(b.Text))
	})
}

func (b *TextBlock) writeHTML(r *renderContext) {
	r.row(&b.Layout, func() {
		r.printf(`<p style="%s">%s</p>`, escapeAttr(b.css()), escapeText(b.Text))
	})
}

func (b *HTMLBlock) writeHTML(r *renderContext) {
	r.row(&b.Layout, func() {
		r.write(b.RawHTML)
	})
}

func (b *QuoteBlock) writeHTML(r *renderContext) {
	r.row(&b.Layout, func() {
		r.printf(`<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0"><tr><td style="border-left:%dpx solid %s;padding-left:16px;"><p style="%s">%s</p></td></tr></table>`,
			orDefaultInt(b.BorderLeftWidth, 4), escapeAttr(orDefault(b.BorderLeftColor, "#6c5ce7")),
			escapeAttr(b.css()+"font-style:italic;"), escapeText(b.Text))
	})
}

func (b *ListBlock) writeHTML(r *renderContext) {
	tag := "ul"
	if b.Ordered {
		tag = "ol"
	}
	style := fmt.Sprintf("margin:0;padding-left:20px;font-size:%dpx;color:%s;font-family:%s;", b.FontSize, b.Color, b.FontFamily)
	if b.LineHeight != 0 {
		style += "line-height:" + num(b.LineHeight) + ";"
	}
	r.row(&b.Layout, func() {
		r.printf(`<%s style="%s">`, tag, escapeAttr(style))
		for _, item := range b.Items {
			r.write("<li>", escapeText(item), "</li>")
		}
		r.printf("</%s>", tag)
	})
}

// VML arcsize is a percentage of half the shorter side, 44px is the reference button height
func buttonArcSize(radius int) int {
	return int(math.Round(float64(radius) / 44 * 100))
}

func (b *ButtonBlock) writeHTML(r *renderContext) {
	padV := orDefaultInt(b.BtnPaddingV, 14)
	padH := orDefaultInt(b.BtnPaddingH, 30)
	display, width, vmlWidth := "display:inline-block;", "", "200px"
	if b.FullWidth {
		display, width, vmlWidth = "display:block;", "width:100%;", "100%"
	}
	weight := "normal"
	if b.Bold {
		weight = "bold"
	}
	href := escapeAttr(b.Href)
	vmlStyle := fmt.Sprintf("height:%dpx;v-text-anchor:middle;%swidth:%s", padV*2+b.FontSize, width, vmlWidth)
	linkStyle := fmt.Sprintf("%spadding:%dpx %dpx;background-color:%s;color:%s;font-family:%s;font-size:%dpx;font-weight:%s;text-decoration:none;border-radius:%dpx;mso-hide:all;text-align:center;box-sizing:border-box;%s",
		display, padV, padH, b.BtnColor, b.Color, b.FontFamily, b.FontSize, weight, b.BtnRadius, width)

	r.row(&b.Layout, func() {
		r.printf(`<!--[if mso]><v:roundrect xmlns:v="urn:schemas-microsoft-com:vml" xmlns:w="urn:schemas-microsoft-com:office:word" href="%s" style="%s" arcsize="%d%%" stroke="f" fillcolor="%s"><w:anchorlock/><center><![endif]-->`,
			href, escapeAttr(vmlStyle), buttonArcSize(b.BtnRadius), escapeAttr(b.BtnColor))
		r.printf(`<a href="%s" style="%s">%s</a>`, href, escapeAttr(linkStyle), escapeText(b.Text))
		r.write(`<!--[if mso]></center></v:roundrect><![endif]-->`)
	})
}

func (b *ImageBlock) writeHTML(r *renderContext) {
	width := orDefault(b.Width, "100%")
	attrWidth := strings.NewReplacer("px", "", "%", "").Replace(width)
	style := fmt.Sprintf("max-width:100%%;width:%s;height:auto;display:block;margin:0 auto;border:0;", width)
	if b.BorderRadius > 0 {
		style += fmt.Sprintf("border-radius:%dpx;", b.BorderRadius)
	}
	img := fmt.Sprintf(`<img src="%s" alt="%s" width="%s" style="%s" />`,
		escapeAttr(b.Src), escapeAttr(b.Alt), escapeAttr(attrWidth), escapeAttr(style))
	r.row(&b.Layout, func() {
		if b.Href != "" {
			r.printf(`<a href="%s" style="display:block;">%s</a>`, escapeAttr(b.Href), img)
			return
		}
		r.write(img)
	})
}

func (b *DividerBlock) writeHTML(r *renderContext) {
	r.row(&b.Layout, func() {
		r.printf(`<table role="presentation" width="%s" cellpadding="0" cellspacing="0" border="0" align="%s"><tr><td style="%s">&nbsp;</td></tr></table>`,
			escapeAttr(orDefault(b.DividerWidth, "100%")), escapeAttr(orDefault(b.Align, "center")),
			escapeAttr(fmt.Sprintf("border-top:%dpx %s %s;font-size:0;line-height:0;", b.DividerHeight, orDefault(b.DividerStyle, "solid"), b.DividerColor)))
	})
}

// Spacers own their row: no padding, transparent unless a color is set
func (b *SpacerBlock) writeHTML(r *renderContext) {
	bg := orDefault(b.BgColor, "#ffffff")
	if bg == "transparent" {
		bg = ""
	}
	r.printf(`<tr><td style="%s">&nbsp;</td></tr>`,
		escapeAttr(fmt.Sprintf("padding:0;height:%dpx;font-size:0;line-height:0;background-color:%s;", b.Height, bg)))
}

func (b *ColumnsBlock) writeHTML(r *renderContext) {
	if len(b.Columns) == 0 {
		r.row(&b.Layout, func() {})
		return
	}
	width := 100 / len(b.Columns)
	gap := float64(orDefaultInt(b.ColumnGap, 10)) / 2
	r.row(&b.Layout, func() {
		r.write(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0" class="vee-columns"><tr class="vee-columns-row">`)
		for _, col := range b.Columns {
			r.printf(`<td valign="top" width="%d%%" style="padding:0 %spx;">`, width, num(gap))
			for _, nested := range col.Blocks {
				r.write(presentationTable)
				nested.writeHTML(r)
				r.write("</table>")
			}
			r.write("</td>")
		}
		r.write("</tr></table>")
	})
}

// SocialPlatform describes how a social network is presented
type SocialPlatform struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// SocialPlatforms lists the networks a social block can link to
var SocialPlatforms = map[string]SocialPlatform{
	"facebook":  {Icon: "📘", Label: "Facebook", Color: "#1877F2"},
	"instagram": {Icon: "📷", Label: "Instagram", Color: "#E4405F"},
	"twitter":   {Icon: "🐦", Label: "Twitter/X", Color: "#1DA1F2"},
	"linkedin":  {Icon: "💼", Label: "LinkedIn", Color: "#0A66C2"},
	"youtube":   {Icon: "▶️", Label: "YouTube", Color: "#FF0000"},
	"tiktok":    {Icon: "🎵", Label: "TikTok", Color: "#000000"},
	"whatsapp":  {Icon: "💚", Label: "WhatsApp", Color: "#25D366"},
	"telegram":  {Icon: "✈️", Label: "Telegram", Color: "#0088cc"},
	"website":   {Icon: "🌍", Label: "Website", Color: "#6c5ce7"},
}

func socialIcon(platform string) string {
	if p, ok := SocialPlatforms[platform]; ok {
		return p.Icon
	}
	return "🔗"
}

func (b *SocialBlock) writeHTML(r *renderContext) {
	spacing := num(float64(orDefaultInt(b.IconSpacing, 12)) / 2)
	size := orDefaultInt(b.IconSize, 28)
	r.row(&b.Layout, func() {
		for _, l := range b.Links {
			r.printf(`<a href="%s" style="display:inline-block;margin:0 %spx;font-size:%dpx;text-decoration:none;">%s</a>`,
				escapeAttr(l.URL), spacing, size, socialIcon(l.Platform))
		}
	})
}

func (b *FooterBlock) writeHTML(r *renderContext) {
	r.row(&b.Layout, func() {
		r.printf(`<p style="%s">%s</p>`, escapeAttr(b.css()+"margin:0 0 8px 0;"), escapeText(b.Text))
		if b.ShowAddress && b.Address != "" {
			r.printf(`<p style="%s">%s</p>`,
				escapeAttr(fmt.Sprintf("margin:0 0 8px 0;font-size:%dpx;color:%s;font-family:%s;", b.FontSize, b.Color, b.FontFamily)),
				escapeText(b.Address))
		}
		r.printf(`<a href="%s" style="%s">%s</a>`, escapeAttr(b.UnsubURL),
			escapeAttr(fmt.Sprintf("color:#6c5ce7;font-size:%dpx;font-family:%s;", b.FontSize, b.FontFamily)),
			escapeText(b.UnsubText))
	})
}

const videoPlaceholder = "https://via.placeholder.com/600x338/333/fff?text=%E2%96%B6+Video"

var youtubeID = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?v=|embed/|shorts/))([a-zA-Z0-9_-]{11})`)

// VideoThumbnail returns the preview image for a video link.
// YouTube links resolve to the video's own thumbnail.
func VideoThumbnail(videoURL string) string {
	if m := youtubeID.FindStringSubmatch(videoURL); m != nil {
		return "https://img.youtube.com/vi/" + m[1] + "/hqdefault.jpg"
	}
	return videoPlaceholder
}

func (b *VideoBlock) writeHTML(r *renderContext) {
	thumb := b.ThumbnailURL
	if thumb == "" {
		thumb = VideoThumbnail(b.VideoURL)
	}
	style := "max-width:100%;height:auto;display:block;margin:0 auto;border:0;"
	if b.BorderRadius > 0 {
		style += fmt.Sprintf("border-radius:%dpx;", b.BorderRadius)
	}
	r.row(&b.Layout, func() {
		r.printf(`<a href="%s" style="display:block;"><img src="%s" alt="Video" width="600" style="%s" /></a>`,
			escapeAttr(b.VideoURL), escapeAttr(thumb), escapeAttr(style))
	})
}

var currencySymbols = map[string]string{"EUR": "€", "USD": "$", "GBP": "£", "CHF": "CHF", "JPY": "¥"}

// FormatPrice renders an amount with its currency symbol, euro amounts put the symbol last
func FormatPrice(amount float64, currency string) string {
	currency = orDefault(currency, "EUR")
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	if currency == "EUR" {
		return fmt.Sprintf("%.2f %s", amount, symbol)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

func (b *ProductBlock) discounted() bool {
	return b.OriginalPrice > 0 && b.OriginalPrice > b.ProductPrice
}

func (b *ProductBlock) writeHTML(r *renderContext) {
	var body strings.Builder
	if b.Badge != "" {
		fmt.Fprintf(&body, `<span style="display:inline-block;background-color:%s;color:#fff;font-size:11px;font-weight:bold;padding:3px 8px;border-radius:4px;text-transform:uppercase;">%s</span><br/><br/>`,
			escapeAttr(orDefault(b.BadgeColor, "#e74c3c")), escapeText(b.Badge))
	}
	fmt.Fprintf(&body, `<h3 style="%s">%s</h3>`,
		escapeAttr(fmt.Sprintf("margin:0 0 6px 0;font-size:%dpx;color:%s;", orDefaultInt(b.NameSize, 18), b.Color)), escapeText(b.ProductName))
	if b.ProductDescription != "" {
		fmt.Fprintf(&body, `<p style="margin:0 0 12px 0;font-size:%dpx;color:#777;line-height:1.5;">%s</p>`, b.FontSize, escapeText(b.ProductDescription))
	}
	priceColor := b.Color
	discount := ""
	if b.discounted() {
		priceColor = "#e74c3c"
		pct := int(math.Round((1 - b.ProductPrice/b.OriginalPrice) * 100))
		discount = fmt.Sprintf(`<span style="font-size:14px;color:#999;text-decoration:line-through;">%s</span> <span style="font-size:12px;color:#e74c3c;font-weight:bold;">-%d%%</span>`,
			escapeText(FormatPrice(b.OriginalPrice, b.Currency)), pct)
	}
	fmt.Fprintf(&body, `<p style="margin:0 0 12px 0;"><span style="%s">%s</span> %s</p>`,
		escapeAttr(fmt.Sprintf("font-size:%dpx;font-weight:bold;color:%s;", orDefaultInt(b.PriceSize, 22), priceColor)),
		escapeText(FormatPrice(b.ProductPrice, b.Currency)), discount)
	fmt.Fprintf(&body, `<a href="%s" style="%s">%s</a>`, escapeAttr(b.ProductURL),
		escapeAttr(fmt.Sprintf("display:inline-block;padding:10px 24px;background-color:%s;color:%s;font-size:14px;font-weight:bold;text-decoration:none;border-radius:6px;", b.BtnColor, orDefault(b.BtnTextColor, "#fff"))),
		escapeText(orDefault(b.BtnText, "Buy now")))

	img, alt := escapeAttr(b.ProductImage), escapeAttr(b.ProductName)
	cellStyle := escapeAttr("padding:16px;font-family:" + b.FontFamily + ";")
	r.row(&b.Layout, func() {
		if b.ImagePosition == "left" {
			r.printf(`<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0" style="border:1px solid #e8e8e8;border-radius:8px;overflow:hidden;"><tr><td width="40%%" valign="top" style="padding:0;"><img src="%s" alt="%s" width="240" style="width:100%%;height:auto;display:block;" /></td><td valign="top" style="%s">%s</td></tr></table>`,
				img, alt, cellStyle, body.String())
			return
		}
		r.printf(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" style="border:1px solid #e8e8e8;border-radius:8px;overflow:hidden;max-width:320px;margin:0 auto;" align="center"><tr><td style="padding:0;"><img src="%s" alt="%s" width="320" style="width:100%%;height:auto;display:block;" /></td></tr><tr><td style="%s">%s</td></tr></table>`,
			img, alt, cellStyle, body.String())
	})
}

var countdownUnits = []string{"DAYS", "HRS", "MIN", "SEC"}

// ParseEndDate reads a countdown end date. Values without a zone are UTC.
func ParseEndDate(s string) (time.Time, bool) {
	for _, layout := range []string{CountdownLayout, "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Remaining returns days, hours, minutes and seconds left at now, never negative
func (b *CountdownBlock) Remaining(now time.Time) [4]int64 {
	end, ok := ParseEndDate(b.EndDate)
	if !ok {
		end = now
	}
	left := end.Sub(now)
	if left < 0 {
		left = 0
	}
	secs := int64(left / time.Second)
	return [4]int64{secs / 86400, secs % 86400 / 3600, secs % 3600 / 60, secs % 60}
}

func (b *CountdownBlock) writeHTML(r *renderContext) {
	remaining := b.Remaining(r.now)
	expired := remaining == [4]int64{}
	shown := [4]bool{b.ShowDays, b.ShowHours, b.ShowMinutes, b.ShowSeconds}
	labelColor := orDefault(b.LabelColor, "#555")
	digitStyle := escapeAttr(fmt.Sprintf("display:inline-block;font-size:%dpx;font-weight:bold;color:%s;background-color:%s;border:2px solid %s;border-radius:%dpx;padding:8px 14px;min-width:50px;text-align:center;font-family:%s;line-height:1.2;",
		orDefaultInt(b.DigitSize, 32), orDefault(b.DigitColor, "#333"), orDefault(b.DigitBg, "#fff"),
		orDefault(b.AccentColor, "#6c5ce7"), orDefaultInt(b.BorderRadius, 8), b.FontFamily))
	paragraph := escapeAttr(fmt.Sprintf("margin:0 0 12px 0;font-size:%dpx;color:%s;font-family:%s;", orDefaultInt(b.FontSize, 14), labelColor, b.FontFamily))

	r.row(&b.Layout, func() {
		if expired && b.ExpiredLabel != "" {
			r.printf(`<p style="%s">%s</p>`, paragraph, escapeText(b.ExpiredLabel))
			return
		}
		if b.Label != "" {
			r.printf(`<p style="%s">%s</p>`, paragraph, escapeText(b.Label))
		}
		r.write(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" align="center"><tr>`)
		for i, v := range remaining {
			if !shown[i] {
				continue
			}
			r.printf(`<td align="center" style="padding:0 4px;"><div style="%s">%02d</div><span style="display:block;font-size:10px;color:%s;margin-top:4px;text-transform:uppercase;">%s</span></td>`,
				digitStyle, v, escapeAttr(orDefault(b.LabelColor, "#999")), countdownUnits[i])
		}
		r.write("</tr></table>")
	})
}
