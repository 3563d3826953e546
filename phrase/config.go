// Package phrase implements toolbar action which wraps or unwraps selected
// markup in a phrase tag (e.g. <span class="phrase">).
package phrase

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"mephrase/common"
	"mephrase/dom"
)

const DefaultTagName = "span"

var tagNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Config describes phrase element. It is immutable after construction.
type Config struct {
	tagName    string
	classList  []string
	match      common.ClassMatch
	selector   string
	openingTag string
	closingTag string
	sel        cascadia.Selector
}

// NewConfig validates tag name and normalizes class list into ordered set.
// Empty tag name means DefaultTagName.
func NewConfig(tagName string, classList []string, match common.ClassMatch) (*Config, error) {
	tagName = strings.ToLower(strings.TrimSpace(tagName))
	if len(tagName) == 0 {
		tagName = DefaultTagName
	}
	if !tagNameRe.MatchString(tagName) {
		return nil, fmt.Errorf("invalid phrase tag name %q", tagName)
	}
	if !match.IsValid() {
		return nil, fmt.Errorf("invalid class match mode %d", match)
	}

	var classes []string
	for _, c := range classList {
		for _, f := range strings.Fields(c) {
			if !slices.Contains(classes, f) {
				classes = append(classes, f)
			}
		}
	}

	var err error
	cfg := &Config{
		tagName:    tagName,
		classList:  classes,
		match:      match,
		selector:   tagName,
		closingTag: "</" + tagName + ">",
	}
	for _, c := range classes {
		cfg.selector += "." + c
	}
	if len(classes) == 0 {
		cfg.openingTag = "<" + tagName + ">"
	} else {
		cfg.openingTag = "<" + tagName + ` class="` + html.EscapeString(strings.Join(classes, " ")) + `">`
	}
	// classes which are not valid CSS identifiers are checked by Matches only
	if cfg.sel, err = cascadia.Compile(cfg.selector); err != nil {
		cfg.sel = cascadia.MustCompile(tagName)
	}
	return cfg, nil
}

func (c *Config) matcher() cascadia.Matcher {
	return c.sel
}

func (c *Config) TagName() string               { return c.tagName }
func (c *Config) ClassList() []string           { return slices.Clone(c.classList) }
func (c *Config) ClassMatch() common.ClassMatch { return c.match }
func (c *Config) Selector() string              { return c.selector }
func (c *Config) OpeningTag() string            { return c.openingTag }
func (c *Config) ClosingTag() string            { return c.closingTag }

// Matches tells if n is a phrase element. With no configured classes element
// must not have any class, otherwise every configured class must be present
// and, in exact mode, nothing else.
func (c *Config) Matches(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || !strings.EqualFold(n.Data, c.tagName) {
		return false
	}
	have := dom.Classes(n)
	if len(c.classList) == 0 {
		return len(have) == 0
	}
	for _, want := range c.classList {
		if !slices.Contains(have, want) {
			return false
		}
	}
	if c.match == common.ClassMatchExact {
		for _, h := range have {
			if !slices.Contains(c.classList, h) {
				return false
			}
		}
	}
	return true
}
