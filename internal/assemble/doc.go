// Package assemble walks a manifest's groups in declared order, extracts and
// optionally filters each group's tiles, and concatenates them into the
// single tile sequence an atlas is composed from.
package assemble
