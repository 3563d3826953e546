package phrase

import (
	"golang.org/x/net/html"

	"mephrase/dom"
)

// cloneSelection returns detached copy of the selected markup.
func (e *Engine) cloneSelection() (*html.Node, error) {
	r, err := e.doc.Range()
	if err != nil {
		return nil, err
	}
	return r.CloneContents(), nil
}

// hasSelectionPhrase checks whether selected markup contains at least one
// phrase element.
func (e *Engine) hasSelectionPhrase() (bool, error) {
	container, err := e.cloneSelection()
	if err != nil {
		return false, err
	}
	return len(e.cfg.FindAll(container)) > 0, nil
}

// ancestorPhrase returns closest phrase element containing selection start.
func (e *Engine) ancestorPhrase() (*html.Node, error) {
	r, err := e.doc.Range()
	if err != nil {
		return nil, err
	}
	return dom.TraverseUp(e.doc.Root(), r.StartContainer(), e.cfg.Matches), nil
}

// isAlreadyApplied reports whether selection has a phrase as a descendant or
// ancestor.
func (e *Engine) isAlreadyApplied() (bool, error) {
	has, err := e.hasSelectionPhrase()
	if err != nil || has {
		return has, err
	}
	anc, err := e.ancestorPhrase()
	if err != nil {
		return false, err
	}
	return anc != nil, nil
}
