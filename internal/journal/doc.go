// Package journal keeps the history of emails sent from the desk.
//
// Every delivery attempt, successful or not, becomes an Entry. MemoryStore
// keeps the most recent entries in process; PostgresStore persists them in
// the send_journal table, whose schema ships embedded in the binary.
package journal
