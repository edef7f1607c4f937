// Package uischema loads presentation overlays for registration forms and
// applies them as a schema decorator. An overlay relabels fields, picks their
// widget or attaches help text without touching the builder.
package uischema
