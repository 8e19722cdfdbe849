package matching_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/internal/matching"
	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/internal/transit"
)

func TestLevelBucket(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Primaire":   "primaire",
		"6e":         "collège",
		" 3e ":       "collège",
		"Seconde":    "lycée",
		"Première":   "lycée",
		"premiere":   "lycée",
		"Terminale":  "lycée",
		"L1":         "supérieur",
		"":           "supérieur",
		"Prépa MPSI": "supérieur",
	}
	for in, want := range tests {
		assert.Equal(t, want, matching.LevelBucket(in), in)
	}
}

func TestDetectSubjects(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"maths", "physique"}, matching.DetectSubjects("Physique; Maths"))
	assert.Equal(t, []string{"svt"}, matching.DetectSubjects("Biologie"))
	assert.Equal(t, []string{"maths", "svt", "informatique"}, matching.DetectSubjects("['maths', 'SVT', 'Informatique']"))
	assert.Empty(t, matching.DetectSubjects("Français"))
	assert.Empty(t, matching.DetectSubjects("Mathématiques"), "only the short keyword is recognised")
}

func TestFormatSubjects(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a, b et c", matching.FormatSubjects("a; b; c"))
	assert.Equal(t, "maths et physique", matching.FormatSubjects(`["maths"; "physique"]`))
	assert.Equal(t, "SVT", matching.FormatSubjects(" 'SVT' "))
	assert.Equal(t, "", matching.FormatSubjects(" ; "))
}

func tutors() []roster.Tutor {
	return []roster.Tutor{
		{Email: "far@x.fr", Levels: "Collège, Lycée", Subjects: "Maths", Active: "2.Prof OK", Mode: "Présentiel", Address: "far"},
		{Email: "unknown@x.fr", Levels: "Collège", Subjects: "Maths, Physique", Active: "4.Prof potentiellement OK", Mode: "Présentiel et visio", Address: "nowhere"},
		{Email: "near@x.fr", Levels: "college", Subjects: "maths", Active: "2.Prof OK", Mode: "", Address: "near"},
		{Email: "visio-only@x.fr", Levels: "Collège", Subjects: "Maths", Active: "2.Prof OK", Mode: "Visio", Address: "near"},
		{Email: "inactive@x.fr", Levels: "Collège", Subjects: "Maths", Active: "1.A contacter", Mode: "Présentiel", Address: "near"},
		{Email: "lycee@x.fr", Levels: "Lycée", Subjects: "Maths", Active: "2.Prof OK", Mode: "Présentiel", Address: "near"},
		{Email: "french@x.fr", Levels: "Collège", Subjects: "Français", Active: "2.Prof OK", Mode: "Présentiel", Address: "near"},
	}
}

func emails(cs []matching.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Tutor.Email
	}
	return out
}

func TestRun_InPersonRankedByTransit(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		origins []string
		seenDep time.Time
	)
	est := transit.EstimatorFunc(func(_ context.Context, origin, dest string, dep time.Time) (int, error) {
		mu.Lock()
		origins = append(origins, origin)
		seenDep = dep
		mu.Unlock()
		switch dest {
		case "far":
			return 55, nil
		case "near":
			return 12, nil
		}
		return 0, errors.New("no route")
	})
	friday := time.Date(2026, 10, 23, 10, 0, 0, 0, time.UTC)

	m := matching.New(
		matching.WithEstimator(est),
		matching.WithParallelism(2),
		matching.WithClock(func() time.Time { return friday }),
		matching.WithLocation(time.UTC),
	)
	student := roster.Student{ID: "10", Level: "4e", Subjects: "Maths", Address: "home"}

	res := m.Run(context.Background(), student, tutors())

	assert.Equal(t, "collège", res.Bucket)
	assert.Equal(t, []string{"maths"}, res.Subjects)
	assert.True(t, res.Estimated)
	assert.Equal(t, time.Date(2026, 10, 26, 18, 0, 0, 0, time.UTC), res.Departure)
	assert.Equal(t, time.Date(2026, 10, 26, 18, 0, 0, 0, time.UTC), seenDep)
	assert.Equal(t, []string{"near@x.fr", "far@x.fr", "unknown@x.fr"}, emails(res.Candidates))
	require.NotNil(t, res.Candidates[0].Minutes)
	assert.Equal(t, 12, *res.Candidates[0].Minutes)
	assert.Nil(t, res.Candidates[2].Minutes, "failed lookups sort last")
	for _, o := range origins {
		assert.Equal(t, "home", o)
	}
}

func TestRun_RemoteSkipsTransit(t *testing.T) {
	t.Parallel()

	called := false
	est := transit.EstimatorFunc(func(context.Context, string, string, time.Time) (int, error) {
		called = true
		return 1, nil
	})
	m := matching.New(matching.WithEstimator(est))
	student := roster.Student{Level: "5e", Subjects: "maths", Remote: true, Address: "home"}

	res := m.Run(context.Background(), student, tutors())

	assert.False(t, called)
	assert.False(t, res.Estimated)
	assert.Equal(t, []string{"unknown@x.fr", "visio-only@x.fr"}, emails(res.Candidates), "sheet order is kept")
}

func TestRun_NoAddressOrEstimatorKeepsSheetOrder(t *testing.T) {
	t.Parallel()

	student := roster.Student{Level: "3e", Subjects: "Maths"}
	res := matching.New().Run(context.Background(), student, tutors())
	assert.Equal(t, []string{"far@x.fr", "unknown@x.fr", "near@x.fr"}, emails(res.Candidates))
	assert.False(t, res.Estimated)
}

func TestRun_NoSubjects(t *testing.T) {
	t.Parallel()

	res := matching.New().Run(context.Background(), roster.Student{Level: "4e", Subjects: "Français"}, tutors())
	assert.Empty(t, res.Candidates)
	assert.NotNil(t, res.Candidates)
	assert.Empty(t, res.Subjects)
}

func TestNewProposal(t *testing.T) {
	t.Parallel()

	student := roster.Student{
		FirstName:    "Anne Marie",
		Level:        "Première S",
		Subjects:     "maths; physique",
		Availability: "Samedi",
		Address:      "12 rue de Rivoli",
	}

	p, err := matching.NewProposal(context.Background(), student, []string{"a@x.fr", " ", "b@x.fr"}, "Idir")
	require.NoError(t, err)
	assert.Equal(t, "Proposition d'élève - Niveau Première S pour des cours de maths et physique", p.Subject)
	assert.Equal(t, []string{"a@x.fr", "b@x.fr"}, p.Bcc)
	assert.Equal(t, "Proposition_Anne_Marie_Première_S.emltpl", p.FileName)
	assert.Contains(t, p.HTMLBody, "• Adresse : 12 rue de Rivoli")

	student.Remote = true
	p, err = matching.NewProposal(context.Background(), student, []string{"a@x.fr"}, "Idir")
	require.NoError(t, err)
	assert.Contains(t, p.HTMLBody, "• Adresse : Visio")

	_, err = matching.NewProposal(context.Background(), student, nil, "Idir")
	assert.ErrorIs(t, err, matching.ErrNoRecipients)

	student.Subjects = "Anglais"
	_, err = matching.NewProposal(context.Background(), student, []string{"a@x.fr"}, "Idir")
	assert.ErrorIs(t, err, matching.ErrNoSubjects)
}
