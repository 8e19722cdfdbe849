// Package binder fills request structs from query strings, form bodies and
// DataStar signals.
//
// Fields are matched by struct tag (`query:"student"`, `form:"student"`);
// a field without the tag uses its lowercased name and `-` skips it.
// Slices collect every value of a repeated parameter:
//
//	type sendRequest struct {
//		StudentID string   `query:"student" form:"student" json:"student"`
//		Emails    []string `query:"email" form:"email" json:"emails"`
//		Test      bool     `query:"test" form:"test" json:"test"`
//	}
//
// A binder that does not apply to a request returns ErrNotApplicable so
// callers can chain several of them.
package binder
