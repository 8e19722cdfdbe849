// Package eml writes .emltpl documents: complete MIME messages without a
// sender that the staff mail client opens as drafts.
//
// Inline images are embedded under their content id, which doubles as the
// part's file name; the HTML body references them as cid:<id>.
package eml
