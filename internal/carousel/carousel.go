// Package carousel tracks the item shown in a lightbox and steps through an
// ordered collection with wraparound.
package carousel

import "github.com/debemdeboas/the-gallery/internal/model"

// Navigator is not safe for concurrent use; owners serialise access.
type Navigator struct {
	selected model.ItemID
	open     bool
}

func (n *Navigator) Open(id model.ItemID) {
	n.selected = id
	n.open = true
}

func (n *Navigator) Close() {
	n.selected = 0
	n.open = false
}

// Selected reports the id in the lightbox, if any.
func (n *Navigator) Selected() (model.ItemID, bool) {
	return n.selected, n.open
}

// Next selects the id after the current one in ids, wrapping to the first.
func (n *Navigator) Next(ids []model.ItemID) {
	n.step(ids, 1)
}

// Previous selects the id before the current one in ids, wrapping to the last.
func (n *Navigator) Previous(ids []model.ItemID) {
	n.step(ids, -1)
}

func (n *Navigator) step(ids []model.ItemID, delta int) {
	if !n.open || len(ids) == 0 {
		return
	}
	pos := indexOf(ids, n.selected)
	if pos < 0 {
		return
	}
	pos = (pos + delta + len(ids)) % len(ids)
	n.selected = ids[pos]
}

func indexOf(ids []model.ItemID, id model.ItemID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
