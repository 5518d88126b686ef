package repository

// Filter is a store-agnostic query predicate. A nil Filter matches every
// document. Each backend translates the variants below into its own query
// dialect, so filter semantics stay decoupled from any particular store.
type Filter interface {
	isFilter()
}

// Equals matches documents whose field equals value.
type Equals struct {
	Field string
	Value any
}

// ContainsFold matches documents whose string field contains term,
// case-insensitively. The term is matched literally, never as a pattern.
type ContainsFold struct {
	Field string
	Term  string
}

// Or matches documents satisfying at least one sub-filter. Backends reject
// an empty Or as malformed.
type Or []Filter

func (Equals) isFilter()       {}
func (ContainsFold) isFilter() {}
func (Or) isFilter()           {}
