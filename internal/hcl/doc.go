// Package hcl is the HCL implementation of config.Loader. It reads atlas
// manifests made of `locals`, `atlas`, `preview` and `group` blocks and
// translates them into the format-agnostic config.Model.
//
// Groups are collected in the order they are declared; when a directory is
// loaded its .hcl files are read in lexical path order.
package hcl
