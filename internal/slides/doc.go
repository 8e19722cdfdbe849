// Package slides edits the text of shapes in a .pptx deck.
//
// A deck is kept as the list of its zip entries. Slide XML is rewritten in
// place by byte ranges, so everything the editor does not touch (styles,
// relationships, namespaces) is written back unchanged.
//
// Slides and shapes are addressed by zero-based index, in presentation order
// and shape-tree order respectively; group frames and the tree's own
// properties are not shapes.
package slides
