// Package config defines the format-agnostic manifest model for the
// application, along with the Loader interface implemented by each manifest
// format.
//
// The `config.Model` is the single source of truth for the `builder`
// package. Concrete loaders, such as for HCL and YAML, are provided in
// separate packages.
package config
