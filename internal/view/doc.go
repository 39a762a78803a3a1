// Package view renders the storefront onto a character-cell Surface.
//
// Views are plain functions from a props struct to a Block of styled lines.
// They hold no references to store state; the orchestrator builds props from
// notification payloads and store accessors, then composes the page and the
// optional modal onto a Surface with Compose.
//
// Two surfaces are provided: Terminal, backed by tcell, and Memory, an
// in-process grid used by tests.
package view
