package emailbuilder

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

// Deliverability levels
const (
	LevelGood    = "good"
	LevelWarning = "warning"
	LevelBad     = "bad"
)

// wordsPerMinute is the reading speed used for ReadingSeconds
const wordsPerMinute = 200

// Stats is a heuristic deliverability report of a design
type Stats struct {
	Score          int      `json:"score"`
	Level          string   `json:"level"`
	BlockCount     int      `json:"block_count"`
	WordCount      int      `json:"word_count"`
	ImageCount     int      `json:"image_count"`
	LinkCount      int      `json:"link_count"`
	ReadingSeconds int      `json:"reading_seconds"`
	Tips           []string `json:"tips"`
}

type statsCounter struct {
	words, images, links, textBlocks int
	hasFooter                        bool
	placeholderLinks                 int
	invalidLinks                     []string
	missingAlt                       int
}

func (c *statsCounter) link(url string) {
	c.links++
	switch {
	case url == "" || url == "#":
		c.placeholderLinks++
	case strings.HasPrefix(url, "mailto:"), strings.Contains(url, "{{"):
	case !govalidator.IsURL(url):
		c.invalidLinks = append(c.invalidLinks, url)
	}
}

func (c *statsCounter) visit(b Block) {
	switch v := b.(type) {
	case *HeaderBlock:
		c.text(v.Text)
	case *TitleBlock:
		c.text(v.Text)
	case *TextBlock:
		c.text(v.Text)
	case *QuoteBlock:
		c.text(v.Text)
	case *ListBlock:
		c.words += len(strings.Fields(strings.Join(v.Items, " ")))
	case *ImageBlock:
		c.images++
		if strings.TrimSpace(v.Alt) == "" {
			c.missingAlt++
		}
		if v.Href != "" {
			c.link(v.Href)
		}
	case *VideoBlock:
		c.images++
	case *ProductBlock:
		c.images++
		c.link(v.ProductURL)
	case *ButtonBlock:
		c.link(v.Href)
	case *SocialBlock:
		for _, l := range v.Links {
			c.link(l.URL)
		}
	case *FooterBlock:
		c.hasFooter = true
	case *ColumnsBlock:
		for _, col := range v.Columns {
			for _, nested := range col.Blocks {
				c.visit(nested)
			}
		}
	}
}

func (c *statsCounter) text(s string) {
	c.textBlocks++
	c.words += len(strings.Fields(s))
}

// Analyze scores a design for inbox placement. It looks at text volume,
// the image to text balance, the link count, the presence of an
// unsubscribe footer and of a preheader.
func Analyze(blocks []Block, preheader string) Stats {
	var c statsCounter
	for _, b := range blocks {
		c.visit(b)
	}

	score := 50
	if c.hasFooter {
		score += 15
	} else {
		score -= 15
	}
	if len([]rune(preheader)) > 10 {
		score += 10
	}
	if preheader == "" {
		score -= 5
	}
	if c.words > 30 {
		score += 5
	}
	if c.words > 50 && c.words < 500 {
		score += 5
	}
	if c.words < 20 {
		score -= 10
	}
	if c.textBlocks > 0 && c.images > 0 {
		score += 5
	}
	if c.images > 0 && c.textBlocks == 0 {
		score -= 15
	}
	if c.images > 5 {
		score -= 10
	}
	if c.links > 10 {
		score -= 5
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level := LevelGood
	switch {
	case score < 40:
		level = LevelBad
	case score < 65:
		level = LevelWarning
	}

	tips := []string{}
	if !c.hasFooter {
		tips = append(tips, "Add a footer block with an unsubscribe link")
	}
	if preheader == "" {
		tips = append(tips, "Add a preheader in the settings")
	}
	if c.images > 5 {
		tips = append(tips, "Too many images: spam risk")
	}
	if c.words < 20 {
		tips = append(tips, "Add more text to improve deliverability")
	}
	if c.images > 0 && c.textBlocks == 0 {
		tips = append(tips, "Images only: add some text")
	}
	if c.missingAlt > 0 {
		tips = append(tips, fmt.Sprintf("%d image(s) without alt text", c.missingAlt))
	}
	if c.placeholderLinks > 0 {
		tips = append(tips, fmt.Sprintf("%d link(s) still point to a placeholder", c.placeholderLinks))
	}
	if len(c.invalidLinks) > 0 {
		tips = append(tips, fmt.Sprintf("%d link(s) are not valid URLs: %s", len(c.invalidLinks), strings.Join(c.invalidLinks, ", ")))
	}

	return Stats{
		Score:          score,
		Level:          level,
		BlockCount:     len(blocks),
		WordCount:      c.words,
		ImageCount:     c.images,
		LinkCount:      c.links,
		ReadingSeconds: (c.words*60 + wordsPerMinute - 1) / wordsPerMinute,
		Tips:           tips,
	}
}
