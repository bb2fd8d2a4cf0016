package emailbuilder

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/osteele/liquid"
)

// Limits applied when merge tags are rendered
const (
	DefaultRenderTimeout   = 5 * time.Second
	DefaultMaxTemplateSize = 512 * 1024
)

// mergeTagPattern matches output tags such as {{ first_name }} or
// {{ contact.city | default: "there" }}. Group 1 is the root variable,
// group 2 the filter chain.
var mergeTagPattern = regexp.MustCompile(`\{\{-?\s*([A-Za-z_][A-Za-z0-9_]*)(?:\.[A-Za-z0-9_.]+)?\s*((?:\|[^}]*)?)-?\}\}`)

// MergeTag is one variable referenced by the exported email
type MergeTag struct {
	Name string `json:"name"`
	// HasDefault is set when every use of the tag carries a default filter
	HasDefault bool `json:"has_default"`
}

// MergeTags lists the root variables used in output tags, in order of first use
func MergeTags(content string) []MergeTag {
	var tags []MergeTag
	index := make(map[string]int)
	for _, m := range mergeTagPattern.FindAllStringSubmatch(content, -1) {
		name := m[1]
		withDefault := strings.Contains(m[2], "default")
		if i, seen := index[name]; seen {
			tags[i].HasDefault = tags[i].HasDefault && withDefault
			continue
		}
		index[name] = len(tags)
		tags = append(tags, MergeTag{Name: name, HasDefault: withDefault})
	}
	return tags
}

// Personalized is an email with its merge tags rendered
type Personalized struct {
	HTML string
	// Unresolved names the tags data had no value for and that render empty
	Unresolved []string
}

type PersonalizerOption func(*Personalizer)

// WithRenderTimeout bounds a single render, zero keeps the default
func WithRenderTimeout(d time.Duration) PersonalizerOption {
	return func(p *Personalizer) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithMaxTemplateSize caps the size of the email in bytes, zero keeps the default
func WithMaxTemplateSize(n int) PersonalizerOption {
	return func(p *Personalizer) {
		if n > 0 {
			p.maxSize = n
		}
	}
}

// Personalizer renders Liquid merge tags in an exported email
type Personalizer struct {
	engine  *liquid.Engine
	timeout time.Duration
	maxSize int
}

func NewPersonalizer(opts ...PersonalizerOption) *Personalizer {
	p := &Personalizer{
		engine:  liquid.NewEngine(),
		timeout: DefaultRenderTimeout,
		maxSize: DefaultMaxTemplateSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Personalize renders content with data. Syntax errors are reported before
// anything is rendered. The render stops when ctx is done or the timeout elapses.
func (p *Personalizer) Personalize(ctx context.Context, content string, data map[string]interface{}) (*Personalized, error) {
	if len(content) > p.maxSize {
		return nil, fmt.Errorf("email of %d bytes exceeds the %d bytes merge tags are rendered for", len(content), p.maxSize)
	}

	tpl, perr := p.engine.ParseString(content)
	if perr != nil {
		return nil, fmt.Errorf("invalid merge tag: %w", perr)
	}

	var unresolved []string
	for _, tag := range MergeTags(content) {
		if _, ok := data[tag.Name]; !ok && !tag.HasDefault {
			unresolved = append(unresolved, tag.Name)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type outcome struct {
		html string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("merge tag rendering panicked: %v", r)}
			}
		}()
		html, err := tpl.RenderString(data)
		if err != nil {
			done <- outcome{err: fmt.Errorf("failed to render merge tags: %w", err)}
			return
		}
		done <- outcome{html: html}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		return &Personalized{HTML: out.html, Unresolved: unresolved}, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("merge tag rendering stopped after %v: %w", p.timeout, ctx.Err())
	}
}
