// Package atlas lays a tile sequence out on a fixed-column grid, writes the
// result as PNG, and renders the slot index that runtime consumers rely on.
//
// Slot numbering is 1-based: slot 0 means "no tile" to consumers and is never
// backed by pixels. Slot k lives in the grid cell of sequence position k-1.
package atlas
