// Package template defines the engine-agnostic template contract used by the
// page renderers. The pongo2 implementation lives in the gotemplate
// subpackage.
package template
