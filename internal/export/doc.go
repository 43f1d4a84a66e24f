// Package export writes a document back out as markdown source or HTML.
//
// Headings become "#" prefixes, code blocks become fenced blocks and inline
// styles become emphasis markers. UNDERLINE has no markdown form and is
// written as plain text. HTML is produced by rendering the markdown with
// goldmark, so the output is what any CommonMark renderer would show.
package export
