// Package renderer turns teller accounts into markdown and HTML documents.
//
// Markdown is meant to be displayed by the terminal renderer of the tlr
// command, HTML is the export format.
package renderer
