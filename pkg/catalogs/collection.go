package catalogs

// Collection is an ordered, read-only set of entries of one kind.
type Collection struct {
	kind    Kind
	entries []*Entry
	index   map[string]int
}

// NewCollection builds a collection preserving the given order. When two
// entries share a name, Lookup resolves to the first.
func NewCollection(kind Kind, entries []*Entry) *Collection {
	c := &Collection{
		kind:    kind,
		entries: make([]*Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)
	for i, e := range c.entries {
		if _, dup := c.index[e.Name]; !dup {
			c.index[e.Name] = i
		}
	}
	return c
}

// Kind returns the collection kind.
func (c *Collection) Kind() Kind {
	return c.kind
}

// Entries returns the entries in their original order. The returned slice
// is a copy; the entries it points to must be treated as read-only.
func (c *Collection) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Names returns entry names in order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an entry by name.
func (c *Collection) Lookup(name string) (*Entry, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i], true
}
