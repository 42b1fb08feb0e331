package scriptweaver

// TocEntry mirrors one Heading block in the table of contents. Anchors are
// read from the already-assigned Heading.Anchor, never re-derived.
type TocEntry struct {
	Level    int
	Title    string
	Anchor   string
	Children []TocEntry
}

// buildTOC walks the assembled heading hierarchy and mirrors it, preserving
// document order and nesting exactly as built by the assembler.
func buildTOC(doc *Document) []TocEntry {
	return tocEntries(doc.Blocks)
}

func tocEntries(blocks []Block) []TocEntry {
	var entries []TocEntry
	for _, b := range blocks {
		h, ok := b.(*Heading)
		if !ok {
			continue
		}
		entries = append(entries, TocEntry{
			Level:    h.Level,
			Title:    h.Title,
			Anchor:   h.Anchor,
			Children: tocEntries(h.Children),
		})
	}
	return entries
}

// flattenTOC returns the entries in document order, children after their
// parent.
func flattenTOC(entries []TocEntry) []TocEntry {
	var flat []TocEntry
	for _, e := range entries {
		children := e.Children
		e.Children = nil
		flat = append(flat, e)
		flat = append(flat, flattenTOC(children)...)
	}
	return flat
}
