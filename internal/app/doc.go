// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the build lifecycle (load manifest, assemble
// tiles, compose and save the atlas, print the index), decoupled from any
// specific entrypoint like a CLI.
package app
