package phrase

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"mephrase/dom"
)

// ensurePhraseSelected widens selection which starts outside of a phrase and
// ends exactly at its end (or starts exactly at its beginning and ends outside)
// so the whole phrase element is selected and its tags could be removed.
// Selections within a single container are never touched.
func (e *Engine) ensurePhraseSelected() error {
	r, err := e.doc.Range()
	if err != nil {
		return err
	}
	sc, so := r.StartContainer(), r.StartOffset()
	ec, eo := r.EndContainer(), r.EndOffset()
	if sc == ec {
		return nil
	}

	root := e.doc.Root()
	work := r.Clone()

	var endPlaceholder, startPlaceholder *html.Node
	if ec.Type == html.TextNode && eo == len(ec.Data) {
		if anc := dom.TraverseUp(root, ec, e.cfg.Matches); anc != nil && dom.LastTextDescendant(anc) == ec {
			endPlaceholder = e.ph.textNode()
			if err := work.InsertBefore(anc.Parent, endPlaceholder, anc.NextSibling); err != nil {
				return err
			}
		}
	}
	if sc.Type == html.TextNode && so == 0 {
		if anc := dom.TraverseUp(root, sc, e.cfg.Matches); anc != nil && dom.FirstTextDescendant(anc) == sc {
			startPlaceholder = e.ph.textNode()
			if err := work.InsertBefore(anc.Parent, startPlaceholder, anc); err != nil {
				return err
			}
		}
	}
	if startPlaceholder == nil && endPlaceholder == nil {
		return nil
	}

	if startPlaceholder != nil {
		if err := work.SetStart(startPlaceholder, 0); err != nil {
			return err
		}
	}
	if endPlaceholder != nil {
		if err := work.SetEndAfter(endPlaceholder); err != nil {
			return err
		}
	}
	e.log.Debug("Selection extended to cover phrase",
		zap.Bool("start", startPlaceholder != nil), zap.Bool("end", endPlaceholder != nil), zap.Stringer("range", work))
	e.doc.Select(work)
	return nil
}
