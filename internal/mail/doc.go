// Package mail delivers the desk's emails.
//
// A Message is provider-neutral. Three Sender implementations exist:
// GraphSender posts to Microsoft Graph from the staff member's own mailbox,
// PostmarkSender uses Postmark's transactional API, and DevSender writes
// each message to disk for local work.
//
// Only addresses listed in the sender Directory may send. The Dispatcher
// enforces that, optionally applies test mode (every message goes to a
// single test address, copies dropped, subject prefixed with "[TEST]"), and
// turns the outcome into a Result the UI can show. Each attempt is written
// to the send journal.
package mail
