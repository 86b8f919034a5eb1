// Package scanner locates component tags in markup source text.
//
// The scanner does not build a syntax tree. It finds "<Name" openings for a
// caller-supplied set of tag names and walks forward to the closing '>' of
// each opening tag with a small state machine that honors quoted strings and
// balanced "{...}" expression attributes. Closing tags ("</Name>") for the
// same set of names are reported in source order so callers can track the
// open element hierarchy.
package scanner
