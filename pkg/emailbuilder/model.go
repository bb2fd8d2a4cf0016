package emailbuilder

// BlockType identifies one of the block kinds a design can hold
type BlockType string

const (
	BlockTypeHeader    BlockType = "header"
	BlockTypeTitle     BlockType = "title"
	BlockTypeText      BlockType = "text"
	BlockTypeHTML      BlockType = "html"
	BlockTypeQuote     BlockType = "quote"
	BlockTypeList      BlockType = "list"
	BlockTypeButton    BlockType = "button"
	BlockTypeImage     BlockType = "image"
	BlockTypeDivider   BlockType = "divider"
	BlockTypeSpacer    BlockType = "spacer"
	BlockTypeColumns2  BlockType = "columns2"
	BlockTypeColumns3  BlockType = "columns3"
	BlockTypeSocial    BlockType = "social"
	BlockTypeFooter    BlockType = "footer"
	BlockTypeVideo     BlockType = "video"
	BlockTypeProduct   BlockType = "product"
	BlockTypeCountdown BlockType = "countdown"
)

// IsColumns reports whether the type is one of the column container kinds
func (t BlockType) IsColumns() bool {
	return t == BlockTypeColumns2 || t == BlockTypeColumns3
}

// ColumnCount returns the fixed number of columns for a container type, 0 otherwise
func (t BlockType) ColumnCount() int {
	switch t {
	case BlockTypeColumns2:
		return 2
	case BlockTypeColumns3:
		return 3
	}
	return 0
}

// Block is one content unit of a design.
//
// The unexported methods seal the interface: every kind declared in this
// package must provide its HTML fragment and its deep copy, so a new kind
// does not compile until both exist.
type Block interface {
	GetID() string
	SetID(id string)
	GetType() BlockType
	GetLayout() *Layout
	// Fields describes the attributes the properties panel can edit
	Fields() []FormField

	writeHTML(r *renderContext)
	clone() Block
}

// LeafBlock is a block that may live inside a column.
// Column containers do not implement it, so they cannot be nested.
type LeafBlock interface {
	Block
	leaf()
}

// Layout holds the attributes shared by every block kind
type Layout struct {
	Align         string `json:"align"`
	PaddingTop    int    `json:"paddingTop"`
	PaddingRight  int    `json:"paddingRight"`
	PaddingBottom int    `json:"paddingBottom"`
	PaddingLeft   int    `json:"paddingLeft"`
	BgColor       string `json:"bgColor"`
	BorderTop     int    `json:"borderTop"`
	BorderBottom  int    `json:"borderBottom"`
	BorderColor   string `json:"borderColor"`
	BorderRadius  int    `json:"borderRadius"`
}

// TextStyle holds typography attributes of text-bearing blocks
type TextStyle struct {
	FontSize      int     `json:"fontSize"`
	Color         string  `json:"color"`
	FontFamily    string  `json:"fontFamily"`
	Bold          bool    `json:"bold"`
	Italic        bool    `json:"italic"`
	Underline     bool    `json:"underline"`
	LetterSpacing float64 `json:"letterSpacing"`
	LineHeight    float64 `json:"lineHeight"`
}

// BaseBlock carries the identity and layout of a block
type BaseBlock struct {
	ID   string    `json:"id"`
	Type BlockType `json:"type"`
	Layout
}

func (b *BaseBlock) GetID() string { return b.ID }
func (b *BaseBlock) SetID(id string) { b.ID = id }
func (b *BaseBlock) GetType() BlockType { return b.Type }
func (b *BaseBlock) GetLayout() *Layout { return &b.Layout }

type HeaderBlock struct {
	BaseBlock
	TextStyle
	Text string `json:"text"`
}

type TitleBlock struct {
	BaseBlock
	TextStyle
	Text string `json:"text"`
}

type TextBlock struct {
	BaseBlock
	TextStyle
	Text string `json:"text"`
}

// HTMLBlock embeds author supplied markup verbatim
type HTMLBlock struct {
	BaseBlock
	RawHTML string `json:"rawHtml"`
}

type QuoteBlock struct {
	BaseBlock
	TextStyle
	Text            string `json:"text"`
	BorderLeftColor string `json:"borderLeftColor"`
	BorderLeftWidth int    `json:"borderLeftWidth"`
}

type ListBlock struct {
	BaseBlock
	TextStyle
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered"`
}

type ButtonBlock struct {
	BaseBlock
	TextStyle
	Text        string `json:"text"`
	Href        string `json:"href"`
	BtnColor    string `json:"btnColor"`
	BtnRadius   int    `json:"btnRadius"`
	BtnPaddingH int    `json:"btnPaddingH"`
	BtnPaddingV int    `json:"btnPaddingV"`
	FullWidth   bool   `json:"fullWidth"`
}

type ImageBlock struct {
	BaseBlock
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Width string `json:"width"`
	Href  string `json:"href"`
}

type DividerBlock struct {
	BaseBlock
	DividerColor  string `json:"dividerColor"`
	DividerHeight int    `json:"dividerHeight"`
	DividerStyle  string `json:"dividerStyle"`
	DividerWidth  string `json:"dividerWidth"`
}

type SpacerBlock struct {
	BaseBlock
	Height int `json:"height"`
}

// Column is one side-by-side container of a ColumnsBlock
type Column struct {
	ID     string      `json:"id"`
	Blocks []LeafBlock `json:"blocks"`
}

// ColumnsBlock holds two or three columns depending on its type.
// The number of columns never changes after creation.
type ColumnsBlock struct {
	BaseBlock
	Columns   []Column `json:"columns"`
	ColumnGap int      `json:"columnGap"`
}

// FindColumn returns the column with the given id
func (b *ColumnsBlock) FindColumn(id string) (*Column, int) {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i], i
		}
	}
	return nil, -1
}

// SocialLink is one icon link of a SocialBlock
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type SocialBlock struct {
	BaseBlock
	Links       []SocialLink `json:"links"`
	IconSize    int          `json:"iconSize"`
	IconSpacing int          `json:"iconSpacing"`
}

type FooterBlock struct {
	BaseBlock
	TextStyle
	Text        string `json:"text"`
	UnsubText   string `json:"unsubText"`
	UnsubURL    string `json:"unsubUrl"`
	ShowAddress bool   `json:"showAddress"`
	Address     string `json:"address"`
}

type VideoBlock struct {
	BaseBlock
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type ProductBlock struct {
	BaseBlock
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription"`
	ProductPrice       float64 `json:"productPrice"`
	OriginalPrice      float64 `json:"originalPrice"`
	Currency           string  `json:"currency"`
	ProductImage       string  `json:"productImage"`
	ProductURL         string  `json:"productUrl"`
	BtnText            string  `json:"btnText"`
	BtnColor           string  `json:"btnColor"`
	BtnTextColor       string  `json:"btnTextColor"`
	Badge              string  `json:"badge"`
	BadgeColor         string  `json:"badgeColor"`
	ImagePosition      string  `json:"imagePosition"`
	FontFamily         string  `json:"fontFamily"`
	FontSize           int     `json:"fontSize"`
	Color              string  `json:"color"`
	NameSize           int     `json:"nameSize"`
	PriceSize          int     `json:"priceSize"`
}

// CountdownBlock renders the time left until EndDate.
// EndDate uses the "2006-01-02T15:04" layout, RFC 3339 is accepted too.
type CountdownBlock struct {
	BaseBlock
	EndDate      string `json:"endDate"`
	Label        string `json:"label"`
	ExpiredLabel string `json:"expiredLabel"`
	AccentColor  string `json:"accentColor"`
	LabelColor   string `json:"labelColor"`
	DigitColor   string `json:"digitColor"`
	DigitBg      string `json:"digitBg"`
	FontSize     int    `json:"fontSize"`
	DigitSize    int    `json:"digitSize"`
	FontFamily   string `json:"fontFamily"`
	ShowDays     bool   `json:"showDays"`
	ShowHours    bool   `json:"showHours"`
	ShowMinutes  bool   `json:"showMinutes"`
	ShowSeconds  bool   `json:"showSeconds"`
}

func (*HeaderBlock) leaf() {}
func (*TitleBlock) leaf() {}
func (*TextBlock) leaf() {}
func (*HTMLBlock) leaf() {}
func (*QuoteBlock) leaf() {}
func (*ListBlock) leaf() {}
func (*ButtonBlock) leaf() {}
func (*ImageBlock) leaf() {}
func (*DividerBlock) leaf() {}
func (*SpacerBlock) leaf() {}
func (*SocialBlock) leaf() {}
func (*FooterBlock) leaf() {}
func (*VideoBlock) leaf() {}
func (*ProductBlock) leaf() {}
func (*CountdownBlock) leaf() {}

func (b *HeaderBlock) clone() Block { c := *b; return &c }
func (b *TitleBlock) clone() Block { c := *b; return &c }
func (b *TextBlock) clone() Block { c := *b; return &c }
func (b *HTMLBlock) clone() Block { c := *b; return &c }
func (b *QuoteBlock) clone() Block { c := *b; return &c }
func (b *ButtonBlock) clone() Block { c := *b; return &c }
func (b *ImageBlock) clone() Block { c := *b; return &c }
func (b *DividerBlock) clone() Block { c := *b; return &c }
func (b *SpacerBlock) clone() Block { c := *b; return &c }
func (b *FooterBlock) clone() Block { c := *b; return &c }
func (b *VideoBlock) clone() Block { c := *b; return &c }
func (b *ProductBlock) clone() Block { c := *b; return &c }
func (b *CountdownBlock) clone() Block { c := *b; return &c }

func (b *ListBlock) clone() Block {
	c := *b
	c.Items = append([]string(nil), b.Items...)
	return &c
}

func (b *SocialBlock) clone() Block {
	c := *b
	c.Links = append([]SocialLink(nil), b.Links...)
	return &c
}

func (b *ColumnsBlock) clone() Block {
	c := *b
	c.Columns = make([]Column, len(b.Columns))
	for i, col := range b.Columns {
		c.Columns[i] = Column{ID: col.ID, Blocks: cloneLeaves(col.Blocks)}
	}
	return &c
}

func cloneLeaves(blocks []LeafBlock) []LeafBlock {
	out := make([]LeafBlock, len(blocks))
	for i, b := range blocks {
		out[i] = b.clone().(LeafBlock)
	}
	return out
}

// CloneBlock returns a deep copy of b
func CloneBlock(b Block) Block {
	if b == nil {
		return nil
	}
	return b.clone()
}

// CloneBlocks returns a deep copy of a block sequence
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = CloneBlock(b)
	}
	return out
}

// FormField describes one editable attribute for the properties panel
type FormField struct {
	Key     string            `json:"key"`
	Label   string            `json:"label"`
	Type    string            `json:"type"` // text, textarea, code, number, color, select, toggle, url, image, datetime, list, links
	Min     *float64          `json:"min,omitempty"`
	Max     *float64          `json:"max,omitempty"`
	Step    *float64          `json:"step,omitempty"`
	Options []FormFieldOption `json:"options,omitempty"`
}

type FormFieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
