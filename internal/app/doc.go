// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary build lifecycle: load the
// manifests, plan the graph, find stale artifacts and rebuild them. It is
// decoupled from any specific entrypoint like a CLI.
package app
