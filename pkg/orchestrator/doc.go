// Package orchestrator serves a registration workflow through a renderer
// registry: it builds the schema, resolves the theme, renders the page and
// turns submissions into either an accepted outcome or a re-rendered form.
package orchestrator
