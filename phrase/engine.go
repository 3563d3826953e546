package phrase

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"mephrase/common"
	"mephrase/dom"
)

// DocumentContext gives engine access to the editable tree and its active
// selection.
type DocumentContext interface {
	Root() *html.Node
	Range() (*dom.Range, error)
	Select(r *dom.Range)
	ClearSelection()
}

// Host is notified when engine changed editable content.
type Host interface {
	CheckContentChanged()
}

// Event is the input event which activated toolbar button.
type Event interface {
	PreventDefault()
	StopPropagation()
}

// ToolbarAction is a toolbar button capability.
type ToolbarAction interface {
	Name() string
	HandleClick(ev Event) error
	IsActive() bool
}

// Button keeps toolbar button description and its visual state.
type Button struct {
	Name      string
	Label     string
	AriaLabel string
	ClassList []string

	active bool
}

func (b *Button) SetActive()   { b.active = true }
func (b *Button) SetInactive() { b.active = false }
func (b Button) Active() bool  { return b.active }

// DefaultButton mirrors what toolbar shows when nothing is configured.
func DefaultButton() Button {
	return Button{Name: "phrase", Label: "S", AriaLabel: "Span Button"}
}

type nopHost struct{}

func (nopHost) CheckContentChanged() {}

type Option func(*Engine)

func WithHost(h Host) Option {
	return func(e *Engine) {
		if h != nil {
			e.host = h
		}
	}
}

func WithButton(b Button) Option {
	return func(e *Engine) {
		e.button = b
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log.Named("phrase")
		}
	}
}

// Engine is the phrase toolbar action. It is not safe for concurrent use,
// every call runs to completion against the document before returning.
type Engine struct {
	cfg    *Config
	doc    DocumentContext
	host   Host
	button Button
	log    *zap.Logger

	// valid only during a single toggle
	ph *placeholders
}

var _ ToolbarAction = (*Engine)(nil)

func New(cfg *Config, doc DocumentContext, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("phrase configuration is required")
	}
	if doc == nil {
		return nil, errors.New("document context is required")
	}
	e := &Engine{
		cfg:    cfg,
		doc:    doc,
		host:   nopHost{},
		button: DefaultButton(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Name() string {
	return e.button.Name
}

func (e *Engine) Config() *Config {
	return e.cfg
}

// Button returns current button description and state.
func (e *Engine) Button() Button {
	return e.button
}

// IsActive tells whether phrase is already applied to the current selection.
func (e *Engine) IsActive() bool {
	applied, err := e.isAlreadyApplied()
	if err != nil {
		e.log.Debug("Unable to classify selection", zap.Error(err))
		return false
	}
	return applied
}

// HandleClick is called by host when toolbar button is pressed.
func (e *Engine) HandleClick(ev Event) error {
	if ev != nil {
		ev.PreventDefault()
		ev.StopPropagation()
	}
	_, err := e.Toggle()
	return err
}

// Toggle adds phrase tags to the selection or removes them when selection is
// already phrase. Inserted markup becomes the new selection. On error the
// tree may be left partially modified.
func (e *Engine) Toggle() (outcome common.Outcome, err error) {
	e.ph = newPlaceholders()
	defer func() {
		e.ph.cleanup()
		e.ph = nil
	}()

	r, err := e.doc.Range()
	if err != nil {
		return outcome, err
	}

	if !r.Collapsed() {
		if outcome, err = e.toggle(); err != nil {
			return outcome, fmt.Errorf("unable to toggle phrase: %w", err)
		}
	}

	if e.IsActive() {
		e.button.SetActive()
	} else {
		e.button.SetInactive()
	}
	e.host.CheckContentChanged()

	e.log.Debug("Phrase toggled", zap.Stringer("outcome", outcome), zap.Bool("active", e.button.Active()))
	return outcome, nil
}

func (e *Engine) toggle() (common.Outcome, error) {
	anc, err := e.ancestorPhrase()
	if err != nil {
		return common.OutcomeUnchanged, err
	}

	var (
		markup  string
		outcome common.Outcome
	)
	has := false
	if anc != nil {
		if has, err = e.hasSelectionPhrase(); err != nil {
			return common.OutcomeUnchanged, err
		}
	}
	if anc == nil || has {
		markup, outcome, err = e.togglePhraseTags()
	} else {
		markup, err = e.removeAncestorPhrase(anc)
		outcome = common.OutcomeSplit
	}
	if err != nil {
		return common.OutcomeUnchanged, err
	}
	if err := e.replaceSelectionHTML(markup, true); err != nil {
		return common.OutcomeUnchanged, err
	}
	return outcome, nil
}

// togglePhraseTags returns selected markup with phrase tags removed if it has
// any or with phrase tags added if it has text.
func (e *Engine) togglePhraseTags() (string, common.Outcome, error) {
	if err := e.ensurePhraseSelected(); err != nil {
		return "", common.OutcomeUnchanged, err
	}
	container, err := e.cloneSelection()
	if err != nil {
		return "", common.OutcomeUnchanged, err
	}
	// sentinels added while extending selection are not content
	e.ph.strip(container)

	removed, err := e.cfg.StripTags(container)
	if err != nil {
		return "", common.OutcomeUnchanged, err
	}
	markup, err := dom.InnerHTML(container)
	if err != nil {
		return "", common.OutcomeUnchanged, err
	}

	switch {
	case removed > 0:
		return markup, common.OutcomeRemoved, nil
	case len(dom.TextContent(container)) > 0:
		return e.cfg.AddTags(markup), common.OutcomeAdded, nil
	}
	return markup, common.OutcomeUnchanged, nil
}

// replaceSelectionHTML replaces selected content with markup parsed in the
// context of selection.
func (e *Engine) replaceSelectionHTML(markup string, reselect bool) error {
	r, err := e.doc.Range()
	if err != nil {
		return err
	}
	r.DeleteContents()
	e.ph.sweep(r)

	nodes, err := dom.ParseContextual(markup, r.StartContainer())
	if err != nil {
		return err
	}
	return e.insertAndSelect(r, nodes, reselect)
}

// replaceSelection is replaceSelectionHTML for already built nodes.
func (e *Engine) replaceSelection(nodes []*html.Node, reselect bool) error {
	r, err := e.doc.Range()
	if err != nil {
		return err
	}
	r.DeleteContents()
	e.ph.sweep(r)
	return e.insertAndSelect(r, nodes, reselect)
}

func (e *Engine) insertAndSelect(r *dom.Range, nodes []*html.Node, reselect bool) error {
	if err := r.InsertNodes(nodes...); err != nil {
		return err
	}
	e.doc.ClearSelection()
	if !reselect {
		return nil
	}
	if len(nodes) > 0 {
		if err := r.SetStartBefore(nodes[0]); err != nil {
			return err
		}
		if err := r.SetEndAfter(nodes[len(nodes)-1]); err != nil {
			return err
		}
	}
	e.doc.Select(r)
	return nil
}
