// Package desk implements the staff use cases: loading the roster from the
// drive, searching, matching tutors, and building or sending the four
// emails (introduction, proposal, mandat, profile results).
//
// The roster is an immutable snapshot replaced on Load. When the workbooks
// cannot be fetched or parsed, the demo roster is served and Status carries
// the reason for the UI banner.
package desk
