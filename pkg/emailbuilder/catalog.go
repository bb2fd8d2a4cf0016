package emailbuilder

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownBlockType is returned when a type outside the catalog is requested
var ErrUnknownBlockType = errors.New("unknown block type")

// CatalogEntry describes a block kind offered in the editor sidebar
type CatalogEntry struct {
	Type     BlockType `json:"type"`
	Label    string    `json:"label"`
	Icon     string    `json:"icon"`
	Category string    `json:"category"` // content, action, media, layout, footer
}

var catalog = []CatalogEntry{
	{Type: BlockTypeHeader, Label: "Header", Icon: "📄", Category: "content"},
	{Type: BlockTypeTitle, Label: "Title", Icon: "🔤", Category: "content"},
	{Type: BlockTypeText, Label: "Text", Icon: "📝", Category: "content"},
	{Type: BlockTypeHTML, Label: "Custom HTML", Icon: "🧩", Category: "content"},
	{Type: BlockTypeQuote, Label: "Quote", Icon: "💬", Category: "content"},
	{Type: BlockTypeList, Label: "List", Icon: "📋", Category: "content"},
	{Type: BlockTypeButton, Label: "Button", Icon: "🔘", Category: "action"},
	{Type: BlockTypeImage, Label: "Image", Icon: "🖼️", Category: "media"},
	{Type: BlockTypeVideo, Label: "Video", Icon: "▶️", Category: "media"},
	{Type: BlockTypeProduct, Label: "Product", Icon: "🛒", Category: "media"},
	{Type: BlockTypeCountdown, Label: "Countdown", Icon: "⏱️", Category: "media"},
	{Type: BlockTypeDivider, Label: "Divider", Icon: "➖", Category: "layout"},
	{Type: BlockTypeSpacer, Label: "Spacer", Icon: "↕️", Category: "layout"},
	{Type: BlockTypeColumns2, Label: "2 Columns", Icon: "▥", Category: "layout"},
	{Type: BlockTypeColumns3, Label: "3 Columns", Icon: "▦", Category: "layout"},
	{Type: BlockTypeSocial, Label: "Social", Icon: "🌐", Category: "footer"},
	{Type: BlockTypeFooter, Label: "Footer", Icon: "📋", Category: "footer"},
}

// Catalog returns the block kinds in sidebar order
func Catalog() []CatalogEntry {
	return append([]CatalogEntry(nil), catalog...)
}

// BlockTypes returns every known block type
func BlockTypes() []BlockType {
	types := make([]BlockType, len(catalog))
	for i, e := range catalog {
		types[i] = e.Type
	}
	return types
}

// IsBlockType reports whether s names a catalog block type
func IsBlockType(s string) bool {
	for _, e := range catalog {
		if string(e.Type) == s {
			return true
		}
	}
	return false
}

const defaultFontFamily = "Arial, Helvetica, sans-serif"

// CountdownLayout is the layout of CountdownBlock.EndDate
const CountdownLayout = "2006-01-02T15:04"

// catalogClock is used for the default countdown end date
var catalogClock = time.Now

func defaultLayout() Layout {
	return Layout{
		Align:         "center",
		PaddingTop:    10,
		PaddingRight:  20,
		PaddingBottom: 10,
		PaddingLeft:   20,
		BgColor:       "#ffffff",
		BorderColor:   "#e0e0e0",
	}
}

func textStyle(size int, color string, bold bool, lineHeight float64) TextStyle {
	return TextStyle{
		FontSize:   size,
		Color:      color,
		FontFamily: defaultFontFamily,
		Bold:       bold,
		LineHeight: lineHeight,
	}
}

func base(t BlockType, ids IDGenerator) BaseBlock {
	return BaseBlock{ID: ids.NewID(), Type: t, Layout: defaultLayout()}
}

// NewBlock returns a block of type t with every attribute set to its default
// and fresh ids for the block and anything nested in it.
func NewBlock(t BlockType, ids IDGenerator) (Block, error) {
	switch t {
	case BlockTypeHeader:
		return &HeaderBlock{
			BaseBlock: base(t, ids),
			TextStyle: textStyle(28, "#333333", true, 1.3),
			Text:      "Your Company",
		}, nil
	case BlockTypeTitle:
		return &TitleBlock{
			BaseBlock: base(t, ids),
			TextStyle: textStyle(22, "#333333", true, 1.3),
			Text:      "Section title",
		}, nil
	case BlockTypeText:
		return newTextBlock(ids, "Write the content of your newsletter here. Every detail can be customized."), nil
	case BlockTypeHTML:
		return &HTMLBlock{
			BaseBlock: base(t, ids),
			RawHTML:   `<p style="margin:0;color:#555;">Your HTML code here...</p>`,
		}, nil
	case BlockTypeQuote:
		b := &QuoteBlock{
			BaseBlock:       base(t, ids),
			TextStyle:       textStyle(18, "#555555", false, 1.6),
			Text:            "A meaningful quote.",
			BorderLeftColor: "#6c5ce7",
			BorderLeftWidth: 4,
		}
		b.FontFamily = "Georgia, serif"
		b.Italic = true
		b.PaddingLeft = 30
		return b, nil
	case BlockTypeList:
		return &ListBlock{
			BaseBlock: base(t, ids),
			TextStyle: textStyle(16, "#555555", false, 1.8),
			Items:     []string{"First item", "Second item", "Third item"},
		}, nil
	case BlockTypeButton:
		return &ButtonBlock{
			BaseBlock:   base(t, ids),
			TextStyle:   textStyle(16, "#ffffff", true, 0),
			Text:        "Learn more",
			Href:        "#",
			BtnColor:    "#6c5ce7",
			BtnRadius:   6,
			BtnPaddingH: 30,
			BtnPaddingV: 14,
		}, nil
	case BlockTypeImage:
		return &ImageBlock{
			BaseBlock: base(t, ids),
			Src:       "https://via.placeholder.com/600x200/e0e0e0/999999?text=Image",
			Alt:       "Image",
			Width:     "100%",
		}, nil
	case BlockTypeDivider:
		b := &DividerBlock{
			BaseBlock:     base(t, ids),
			DividerColor:  "#e0e0e0",
			DividerHeight: 2,
			DividerStyle:  "solid",
			DividerWidth:  "100%",
		}
		b.PaddingTop = 15
		b.PaddingBottom = 15
		return b, nil
	case BlockTypeSpacer:
		b := &SpacerBlock{BaseBlock: base(t, ids), Height: 30}
		b.BgColor = "transparent"
		return b, nil
	case BlockTypeColumns2, BlockTypeColumns3:
		// columns start empty, content is dropped in
		b := &ColumnsBlock{BaseBlock: base(t, ids), ColumnGap: 10}
		for i := 0; i < t.ColumnCount(); i++ {
			b.Columns = append(b.Columns, Column{ID: ids.NewID(), Blocks: []LeafBlock{}})
		}
		return b, nil
	case BlockTypeSocial:
		return &SocialBlock{
			BaseBlock: base(t, ids),
			Links: []SocialLink{
				{Platform: "facebook", URL: "#"},
				{Platform: "instagram", URL: "#"},
				{Platform: "twitter", URL: "#"},
			},
			IconSize:    28,
			IconSpacing: 12,
		}, nil
	case BlockTypeFooter:
		return &FooterBlock{
			BaseBlock: base(t, ids),
			TextStyle: textStyle(12, "#999999", false, 1.5),
			Text:      fmt.Sprintf("© %d Your Company. All rights reserved.", catalogClock().Year()),
			UnsubText: "Unsubscribe",
			UnsubURL:  "#",
			Address:   "1 Main Street, Springfield",
		}, nil
	case BlockTypeVideo:
		b := &VideoBlock{
			BaseBlock: base(t, ids),
			VideoURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		}
		b.BorderRadius = 8
		return b, nil
	case BlockTypeProduct:
		return &ProductBlock{
			BaseBlock:          base(t, ids),
			ProductName:        "Product name",
			ProductDescription: "A short description of the product and its main features.",
			ProductPrice:       29.99,
			Currency:           "EUR",
			ProductImage:       "https://via.placeholder.com/260x260/f0f0f0/333?text=Product",
			ProductURL:         "#",
			BtnText:            "Buy now",
			BtnColor:           "#6c5ce7",
			BtnTextColor:       "#ffffff",
			BadgeColor:         "#e74c3c",
			ImagePosition:      "top",
			FontFamily:         defaultFontFamily,
			FontSize:           14,
			Color:              "#333333",
			NameSize:           18,
			PriceSize:          22,
		}, nil
	case BlockTypeCountdown:
		b := &CountdownBlock{
			BaseBlock:    base(t, ids),
			EndDate:      catalogClock().UTC().Add(7 * 24 * time.Hour).Format(CountdownLayout),
			Label:        "The offer ends in:",
			ExpiredLabel: "Offer expired!",
			AccentColor:  "#6c5ce7",
			LabelColor:   "#555555",
			DigitColor:   "#333333",
			DigitBg:      "#ffffff",
			FontSize:     14,
			DigitSize:    32,
			FontFamily:   defaultFontFamily,
			ShowDays:     true,
			ShowHours:    true,
			ShowMinutes:  true,
			ShowSeconds:  true,
		}
		b.BgColor = "#f8f9fa"
		b.BorderRadius = 8
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
}

// MustNewBlock is like NewBlock but panics on an unknown type.
// It is meant for package level fixtures built from the constants above.
func MustNewBlock(t BlockType, ids IDGenerator) Block {
	b, err := NewBlock(t, ids)
	if err != nil {
		panic(err)
	}
	return b
}

func newTextBlock(ids IDGenerator, text string) *TextBlock {
	b := &TextBlock{
		BaseBlock: base(BlockTypeText, ids),
		TextStyle: textStyle(16, "#555555", false, 1.6),
		Text:      text,
	}
	return b
}
