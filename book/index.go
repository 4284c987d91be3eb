package book

// orderIndex maps a caller-visible order ID to the pool handle holding it,
// giving O(1) lookup for Cancel and Amend.
type orderIndex struct {
	byID map[uint64]Handle
}

func newOrderIndex() *orderIndex {
	return &orderIndex{byID: make(map[uint64]Handle)}
}

func (idx *orderIndex) has(id uint64) bool {
	_, ok := idx.byID[id]
	return ok
}

func (idx *orderIndex) get(id uint64) (Handle, bool) {
	h, ok := idx.byID[id]
	return h, ok
}

func (idx *orderIndex) put(id uint64, h Handle) {
	idx.byID[id] = h
}

func (idx *orderIndex) remove(id uint64) {
	delete(idx.byID, id)
}

func (idx *orderIndex) len() int {
	return len(idx.byID)
}
