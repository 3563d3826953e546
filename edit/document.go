package edit

import (
	"fmt"
	"io"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"mephrase/dom"
	"mephrase/phrase"
	"mephrase/state"
)

// ugcPolicy keeps classes, phrase elements are recognized by them.
var ugcPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
})

// loadDocument parses input according to configuration, optionally cleaning
// editable content.
func loadDocument(env *state.LocalEnv, r io.Reader) (*dom.Document, error) {
	var opts []dom.ParseOption
	if env.CodePage != nil {
		opts = append(opts, dom.WithEncoding(env.CodePage))
	}

	var (
		doc *dom.Document
		err error
	)
	if env.Cfg.Document.Fragment {
		doc, err = dom.ParseFragment(r, opts...)
	} else {
		doc, err = dom.ParseDocument(r, env.Cfg.Document.RootSelector, opts...)
	}
	if err != nil {
		return nil, err
	}

	if env.Cfg.Document.Sanitize {
		markup, err := doc.HTML()
		if err != nil {
			return nil, err
		}
		if err := dom.SetInnerHTML(doc.Root(), ugcPolicy().Sanitize(markup)); err != nil {
			return nil, fmt.Errorf("unable to replace sanitized content: %w", err)
		}
	}
	return doc, nil
}

// selectTarget establishes selection either from markers in text or from
// selector.
func selectTarget(env *state.LocalEnv, doc *dom.Document) error {
	if env.UseMarkers() {
		return dom.SelectMarked(doc, env.OpenMarker, env.CloseMarker)
	}
	return dom.SelectBySelector(doc, env.Selector)
}

// changeCounter plays editor host, it only counts notifications.
type changeCounter struct {
	log     *zap.Logger
	changes int
}

func (c *changeCounter) CheckContentChanged() {
	c.changes++
	c.log.Debug("Content changed", zap.Int("changes", c.changes))
}

func newEngine(env *state.LocalEnv, doc *dom.Document, host phrase.Host, log *zap.Logger) (*phrase.Engine, error) {
	pc := env.Cfg.Phrase
	cfg, err := phrase.NewConfig(pc.TagName, pc.ClassList, pc.ClassMatch)
	if err != nil {
		return nil, err
	}
	return phrase.New(cfg, doc,
		phrase.WithLogger(log),
		phrase.WithHost(host),
		phrase.WithButton(phrase.Button{
			Name:      pc.Button.Name,
			Label:     pc.Button.Label,
			AriaLabel: pc.Button.AriaLabel,
			ClassList: pc.Button.ClassList,
		}),
	)
}
