package ast

import (
	"github.com/walteh/gabcls/pkg/position"
)

// Header is one `name: value;` declaration.
type Header struct {
	Name       string
	Value      string
	Range      position.Range
	NameRange  position.Range
	ValueRange position.Range
}

// Headers is an insertion ordered header mapping. Every occurrence is kept so
// that duplicates can be reported; lookups return the last one, matching how
// the engraving tools resolve repeated headers.
type Headers struct {
	entries []Header
	byName  map[string][]int
	order   []string
}

func NewHeaders() *Headers {
	return &Headers{byName: make(map[string][]int)}
}

func (h *Headers) Add(header Header) {
	if _, ok := h.byName[header.Name]; !ok {
		h.order = append(h.order, header.Name)
	}
	h.byName[header.Name] = append(h.byName[header.Name], len(h.entries))
	h.entries = append(h.entries, header)
}

// Get returns the value of the last occurrence of name.
func (h *Headers) Get(name string) (string, bool) {
	hd, ok := h.Lookup(name)
	return hd.Value, ok
}

// Lookup returns the last occurrence of name.
func (h *Headers) Lookup(name string) (Header, bool) {
	if h == nil {
		return Header{}, false
	}
	idx, ok := h.byName[name]
	if !ok {
		return Header{}, false
	}
	return h.entries[idx[len(idx)-1]], true
}

// Occurrences returns every declaration of name in source order.
func (h *Headers) Occurrences(name string) []Header {
	if h == nil {
		return nil
	}
	idx := h.byName[name]
	out := make([]Header, 0, len(idx))
	for _, i := range idx {
		out = append(out, h.entries[i])
	}
	return out
}

// Names returns the distinct header names in first-seen order.
func (h *Headers) Names() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.order...)
}

// All returns every declaration in source order.
func (h *Headers) All() []Header {
	if h == nil {
		return nil
	}
	return append([]Header(nil), h.entries...)
}

// Len returns the number of distinct names.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.order)
}

// Duplicates returns the names declared more than once, in first-seen order.
func (h *Headers) Duplicates() []string {
	if h == nil {
		return nil
	}
	var out []string
	for _, name := range h.order {
		if len(h.byName[name]) > 1 {
			out = append(out, name)
		}
	}
	return out
}
