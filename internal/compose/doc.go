// Package compose renders the agency's email bodies.
//
// Each body is a templ.Component; Render turns one into a string for the
// mail providers and the .emltpl builder. Every interpolated value is HTML
// escaped. Subjects are built by the matching *Subject functions so that the
// preview, the sent message and the downloaded document always agree.
//
// Signatures are PNG files named Signature_<first-name>.png, chosen by the
// sender's address prefix (idir.hadjhamou@... uses Signature_idir.png) and
// inlined as data URIs.
package compose
