package model

// Item describes one downloadable media entry as reported by the engine
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Ext   string `json:"ext,omitempty"`
	URL   string `json:"url"`
}

// WithExt returns a copy of the item with its extension replaced
func (it Item) WithExt(ext string) Item {
	it.Ext = ext
	return it
}

// Metadata is the result of a no-download probe against the engine. It either
// describes a single item or a collection with ordered entries.
type Metadata struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Item    Item   `json:"item"`
	Entries []Item `json:"entries,omitempty"`
}

// IsCollection reports whether the metadata carries a non-empty item sequence
func (m *Metadata) IsCollection() bool {
	return m != nil && len(m.Entries) > 0
}
