// Package config defines the format-agnostic manifest model: the ordered list
// of source groups an atlas is built from, plus the atlas geometry and output
// locations. It also defines the Loader interface implemented by format
// specific packages such as internal/hcl.
//
// The order of Model.Groups is a contract with runtime consumers that address
// tiles by slot number, so nothing in this package reorders groups.
package config
