package emailbuilder

import (
	"context"
	"fmt"
	"strings"

	mjmlgo "github.com/Boostport/mjml-go"
)

// mjmlWriter accumulates MJML markup with indentation
type mjmlWriter struct {
	sb    strings.Builder
	depth int
	opts  ExportOptions
}

func (w *mjmlWriter) line(format string, args ...interface{}) {
	w.sb.WriteString(strings.Repeat("  ", w.depth))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteString("\n")
}

func (w *mjmlWriter) open(tag string, attrs ...string) {
	w.line("<%s%s>", tag, mjmlAttrs(attrs...))
	w.depth++
}

func (w *mjmlWriter) close(tag string) {
	w.depth--
	w.line("</%s>", tag)
}

// mjmlAttrs formats key/value pairs, empty values are skipped
func mjmlAttrs(kv ...string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		fmt.Fprintf(&sb, ` %s="%s"`, kv[i], escapeAttr(kv[i+1]))
	}
	return sb.String()
}

func px(v int) string { return fmt.Sprintf("%dpx", v) }

func padding(l *Layout) string {
	return fmt.Sprintf("%dpx %dpx %dpx %dpx", l.PaddingTop, l.PaddingRight, l.PaddingBottom, l.PaddingLeft)
}

// ToMJML maps a document to MJML markup.
//
// Each top-level block becomes an mj-section. Blocks with a native MJML
// component use it, the others are embedded through mj-raw with the same
// table fragment Export produces.
func ToMJML(blocks []Block, opts ExportOptions) string {
	opts = opts.Normalize()
	w := &mjmlWriter{opts: opts}

	w.open("mjml")
	w.open("mj-head")
	if opts.PreheaderText != "" {
		w.line("<mj-preview>%s</mj-preview>", escapeText(opts.PreheaderText))
	}
	w.open("mj-attributes")
	w.line(`<mj-all font-family="%s" />`, escapeAttr(defaultFontFamily))
	w.close("mj-attributes")
	w.close("mj-head")

	w.open("mj-body", "background-color", opts.BackgroundColor, "width", px(opts.EmailWidth))
	for _, b := range blocks {
		l := b.GetLayout()
		cb, isColumns := b.(*ColumnsBlock)
		if !isColumns {
			w.open("mj-section", "background-color", l.BgColor, "padding", "0px")
			w.open("mj-column")
			w.leaf(b)
			w.close("mj-column")
			w.close("mj-section")
			continue
		}
		w.open("mj-section", "background-color", l.BgColor, "padding", padding(l))
		for _, col := range cb.Columns {
			w.open("mj-column", "padding", fmt.Sprintf("0px %dpx", cb.ColumnGap/2))
			for _, nested := range col.Blocks {
				w.leaf(nested)
			}
			w.close("mj-column")
		}
		w.close("mj-section")
	}
	w.close("mj-body")
	w.close("mjml")
	return w.sb.String()
}

func (w *mjmlWriter) text(l *Layout, s TextStyle, content string) {
	weight, style, decoration := "", "", ""
	if s.Bold {
		weight = "bold"
	}
	if s.Italic {
		style = "italic"
	}
	if s.Underline {
		decoration = "underline"
	}
	lineHeight := ""
	if s.LineHeight != 0 {
		lineHeight = num(s.LineHeight)
	}
	letterSpacing := ""
	if s.LetterSpacing != 0 {
		letterSpacing = num(s.LetterSpacing) + "px"
	}
	w.open("mj-text",
		"align", l.Align,
		"padding", padding(l),
		"container-background-color", l.BgColor,
		"color", s.Color,
		"font-size", px(s.FontSize),
		"font-family", s.FontFamily,
		"font-weight", weight,
		"font-style", style,
		"text-decoration", decoration,
		"line-height", lineHeight,
		"letter-spacing", letterSpacing)
	w.line("%s", content)
	w.close("mj-text")
}

func (w *mjmlWriter) leaf(b Block) {
	l := b.GetLayout()
	switch v := b.(type) {
	case *HeaderBlock:
		w.text(l, v.TextStyle, escapeText(v.Text))
	case *TitleBlock:
		w.text(l, v.TextStyle, escapeText(v.Text))
	case *TextBlock:
		w.text(l, v.TextStyle, escapeText(v.Text))
	case *ButtonBlock:
		width, weight := "", ""
		if v.FullWidth {
			width = "100%"
		}
		if v.Bold {
			weight = "bold"
		}
		w.open("mj-button",
			"href", v.Href,
			"align", l.Align,
			"padding", padding(l),
			"container-background-color", l.BgColor,
			"background-color", v.BtnColor,
			"color", v.Color,
			"font-size", px(v.FontSize),
			"font-family", v.FontFamily,
			"font-weight", weight,
			"border-radius", px(v.BtnRadius),
			"inner-padding", fmt.Sprintf("%dpx %dpx", orDefaultInt(v.BtnPaddingV, 14), orDefaultInt(v.BtnPaddingH, 30)),
			"width", width)
		w.line("%s", escapeText(v.Text))
		w.close("mj-button")
	case *ImageBlock:
		// mj-image only takes pixel widths
		width := ""
		if strings.HasSuffix(v.Width, "px") {
			width = v.Width
		}
		w.line("<mj-image%s />", mjmlAttrs(
			"src", v.Src,
			"alt", v.Alt,
			"href", v.Href,
			"width", width,
			"align", l.Align,
			"padding", padding(l),
			"container-background-color", l.BgColor,
			"border-radius", radius(l.BorderRadius)))
	case *DividerBlock:
		w.line("<mj-divider%s />", mjmlAttrs(
			"border-color", v.DividerColor,
			"border-width", px(v.DividerHeight),
			"border-style", orDefault(v.DividerStyle, "solid"),
			"width", orDefault(v.DividerWidth, "100%"),
			"align", l.Align,
			"padding", padding(l),
			"container-background-color", l.BgColor))
	case *SpacerBlock:
		bg := v.BgColor
		if bg == "transparent" {
			bg = ""
		}
		w.line("<mj-spacer%s />", mjmlAttrs("height", px(v.Height), "container-background-color", bg, "padding", "0px"))
	default:
		w.open("mj-raw")
		w.line("%s", ExportFragment(b, w.opts))
		w.close("mj-raw")
	}
}

func radius(r int) string {
	if r <= 0 {
		return ""
	}
	return px(r)
}

// RenderMJML compiles the MJML rendition of a document to HTML.
// It returns the MJML source alongside, also when compilation fails.
func RenderMJML(ctx context.Context, blocks []Block, opts ExportOptions) (mjml string, html string, err error) {
	mjml = ToMJML(blocks, opts)
	html, err = mjmlgo.ToHTML(ctx, mjml, mjmlgo.WithMinify(true))
	if err != nil {
		return mjml, "", fmt.Errorf("failed to compile MJML: %w", err)
	}
	return mjml, html, nil
}
