// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file parsing, evaluating expressions
// against the manifest's eval context, resolving `source.x` and `artifact.x`
// references, and translating the blocks into the format-agnostic model.
package hcl
