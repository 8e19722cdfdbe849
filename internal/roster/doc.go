// Package roster reads the agency's two workbooks into typed records and
// answers the lookups the desk needs.
//
// The follow-up workbook carries the "Suivi" sheet (one row per student) and
// the "Profils_élèves" sheet (learning-profile test scores). The tutor workbook
// carries the "Liste profs" sheet. Columns are located by header text, so
// reordering or inserting columns in the spreadsheet does not break parsing;
// a column that disappears simply yields empty values.
//
//	students, profiles, err := roster.ParseFollowUp(followUp)
//	tutors, err := roster.ParseTutors(tutorBook)
//	r := roster.New(students, tutors, profiles, roster.SourceDrive)
//	hits := r.SearchStudents("élo", "")
//
// Text comparison goes through Fold, which lower-cases and strips accents,
// so "Collège" and "college" compare equal.
package roster
