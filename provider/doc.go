// Package provider models lab providers as data rather than subclasses: a
// profile bundles the table configuration and anchor heuristics for one
// provider's layout, and a single shared parser drives the extraction engine
// with it. New providers are added by registering a profile, built-in or
// loaded from YAML, not by writing code.
package provider
