// Package matching selects the tutors who can take a given student.
//
// A run narrows the tutor list by teaching mode, activity status, school
// level and subject, then, for in-person students with a known address,
// ranks the survivors by public-transport time from the student's home.
// Tutors whose travel time is unknown sort last, in sheet order.
//
//	m := matching.New(matching.WithEstimator(est), matching.WithParallelism(4))
//	res, err := m.Run(ctx, student, tutors)
//	p, err := matching.NewProposal(student, []string{"a@x.fr", "b@x.fr"}, "Idir")
package matching
