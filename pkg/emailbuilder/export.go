package emailbuilder

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultBackgroundColor = "#f4f4f7"
	DefaultEmailWidth      = 600
	MinEmailWidth          = 320
	MaxEmailWidth          = 800
	MaxPreheaderLength     = 200

	preheaderFillerCount = 30
)

// ExportOptions are the document level settings of an exported email
type ExportOptions struct {
	BackgroundColor string `json:"bodyBg"`
	EmailWidth      int    `json:"emailWidth"`
	PreheaderText   string `json:"preheaderText"`

	// Now drives countdown blocks. Nil means time.Now.
	Now func() time.Time `json:"-"`
}

// DefaultExportOptions returns the options used by a fresh editor
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		BackgroundColor: DefaultBackgroundColor,
		EmailWidth:      DefaultEmailWidth,
	}
}

// Normalize fills empty values with defaults, clamps the width to
// [MinEmailWidth, MaxEmailWidth] and truncates the preheader to MaxPreheaderLength runes.
func (o ExportOptions) Normalize() ExportOptions {
	if o.BackgroundColor == "" {
		o.BackgroundColor = DefaultBackgroundColor
	}
	switch {
	case o.EmailWidth == 0:
		o.EmailWidth = DefaultEmailWidth
	case o.EmailWidth < MinEmailWidth:
		o.EmailWidth = MinEmailWidth
	case o.EmailWidth > MaxEmailWidth:
		o.EmailWidth = MaxEmailWidth
	}
	if utf8.RuneCountInString(o.PreheaderText) > MaxPreheaderLength {
		o.PreheaderText = string([]rune(o.PreheaderText)[:MaxPreheaderLength])
	}
	return o
}

func (o ExportOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// renderContext accumulates markup for one export call
type renderContext struct {
	sb  strings.Builder
	now time.Time
}

func (r *renderContext) write(parts ...string) {
	for _, p := range parts {
		r.sb.WriteString(p)
	}
}

func (r *renderContext) printf(format string, args ...interface{}) {
	fmt.Fprintf(&r.sb, format, args...)
}

// row writes the table row and padded cell shared by every block, with
// content filling the cell
func (r *renderContext) row(l *Layout, content func()) {
	r.printf(`<tr><td align="%s" style="%s">`, escapeAttr(orDefault(l.Align, "center")), escapeAttr(cellStyle(l)))
	content()
	r.write("</td></tr>")
}

func cellStyle(l *Layout) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "padding:%dpx %dpx %dpx %dpx;background-color:%s;",
		l.PaddingTop, l.PaddingRight, l.PaddingBottom, l.PaddingLeft, orDefault(l.BgColor, "#ffffff"))
	borderColor := orDefault(l.BorderColor, "#e0e0e0")
	if l.BorderTop > 0 {
		fmt.Fprintf(&sb, "border-top:%dpx solid %s;", l.BorderTop, borderColor)
	}
	if l.BorderBottom > 0 {
		fmt.Fprintf(&sb, "border-bottom:%dpx solid %s;", l.BorderBottom, borderColor)
	}
	if l.BorderRadius > 0 {
		fmt.Fprintf(&sb, "border-radius:%dpx;", l.BorderRadius)
	}
	return sb.String()
}

func (s TextStyle) css() string {
	weight, style, decoration := "normal", "normal", "none"
	if s.Bold {
		weight = "bold"
	}
	if s.Italic {
		style = "italic"
	}
	if s.Underline {
		decoration = "underline"
	}
	css := fmt.Sprintf("margin:0;font-size:%dpx;color:%s;font-family:%s;font-weight:%s;font-style:%s;text-decoration:%s;",
		s.FontSize, s.Color, s.FontFamily, weight, style, decoration)
	if s.LetterSpacing != 0 {
		css += "letter-spacing:" + num(s.LetterSpacing) + "px;"
	}
	if s.LineHeight != 0 {
		css += "line-height:" + num(s.LineHeight) + ";"
	}
	return css
}

// Export renders blocks as a complete table based HTML email.
//
// The result depends only on its arguments. Countdown blocks read the clock
// through opts.Now, so documents containing them differ between calls unless
// Now is pinned. Export panics on a nil block: documents are validated where
// they enter the editor.
func Export(blocks []Block, opts ExportOptions) string {
	opts = opts.Normalize()
	r := &renderContext{now: opts.now()}
	bg := escapeAttr(opts.BackgroundColor)

	r.write(`<!DOCTYPE html>
<html lang="en" xmlns="http://www.w3.org/1999/xhtml" xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1.0"><meta http-equiv="X-UA-Compatible" content="IE=edge"><meta name="x-apple-disable-message-reformatting"><title></title>
<!--[if mso]><noscript><xml><o:OfficeDocumentSettings><o:PixelsPerInch>96</o:PixelsPerInch></o:OfficeDocumentSettings></xml></noscript><![endif]-->
<style type="text/css">body,table,td,a{-webkit-text-size-adjust:100%;-ms-text-size-adjust:100%;}table,td{mso-table-lspace:0pt;mso-table-rspace:0pt;}img{-ms-interpolation-mode:bicubic;border:0;height:auto;line-height:100%;outline:none;text-decoration:none;}body{margin:0!important;padding:0!important;width:100%!important;}a[x-apple-data-detectors]{color:inherit!important;text-decoration:none!important;}`)
	r.printf(`@media only screen and (max-width:%dpx){.vee-email-container{width:100%%!important;max-width:100%%!important;}.vee-columns-row td{display:block!important;width:100%%!important;padding:4px 0!important;}img{max-width:100%%!important;height:auto!important;}}</style>
</head>
`, opts.EmailWidth+40)
	r.printf(`<body style="margin:0;padding:0;background-color:%s;-webkit-font-smoothing:antialiased;">`+"\n", bg)
	if opts.PreheaderText != "" {
		r.printf(`<div style="display:none;font-size:1px;color:%s;line-height:1px;max-height:0px;max-width:0px;opacity:0;overflow:hidden;">%s%s</div>`,
			bg, escapeText(opts.PreheaderText), strings.Repeat("&zwnj;&nbsp;", preheaderFillerCount))
	}
	r.write("\n")
	r.printf(`<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0" style="background-color:%s;"><tr><td align="center" style="padding:20px 0;">`+"\n", bg)
	r.printf(`<table role="presentation" class="vee-email-container" width="%d" cellpadding="0" cellspacing="0" border="0" style="max-width:%dpx;width:100%%;background-color:#ffffff;">`+"\n",
		opts.EmailWidth, opts.EmailWidth)
	for _, b := range blocks {
		if b == nil {
			panic("emailbuilder: nil block in document")
		}
		b.writeHTML(r)
	}
	r.write("\n</table></td></tr></table></body></html>")
	return r.sb.String()
}

// ExportFragment renders a single block as a standalone presentation table.
// It is used where a block must be embedded in foreign markup.
func ExportFragment(b Block, opts ExportOptions) string {
	r := &renderContext{now: opts.now()}
	r.write(presentationTable)
	b.writeHTML(r)
	r.write("</table>")
	return r.sb.String()
}

const presentationTable = `<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0">`
