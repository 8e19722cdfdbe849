package matching

import (
	"slices"
	"strings"

	"github.com/idir-jpg/study-success-matching/internal/roster"
)

// Level buckets as written in the tutor sheet.
const (
	BucketPrimary    = "primaire"
	BucketMiddle     = "collège"
	BucketHigh       = "lycée"
	BucketUniversity = "supérieur"
)

var levelBuckets = map[string]string{
	"primaire":  BucketPrimary,
	"6e":        BucketMiddle,
	"5e":        BucketMiddle,
	"4e":        BucketMiddle,
	"3e":        BucketMiddle,
	"seconde":   BucketHigh,
	"premiere":  BucketHigh,
	"terminale": BucketHigh,
}

// LevelBucket maps a class to the bucket tutors declare. Unknown classes
// are treated as higher education.
func LevelBucket(level string) string {
	if b, ok := levelBuckets[roster.Fold(level)]; ok {
		return b
	}
	return BucketUniversity
}

// subjectKeywords lists the keyword each subject is known by in the tutor
// sheet, with the request words that trigger it.
var subjectKeywords = []struct {
	keyword  string
	triggers []string
}{
	{"maths", []string{"maths"}},
	{"physique", []string{"physique"}},
	{"svt", []string{"svt", "biologie"}},
	{"informatique", []string{"informatique"}},
}

// DetectSubjects returns the known subject keywords found in a request, in
// a fixed order.
func DetectSubjects(subjects string) []string {
	low := roster.Fold(subjects)
	var out []string
	for _, s := range subjectKeywords {
		for _, trig := range s.triggers {
			if strings.Contains(low, trig) {
				out = append(out, s.keyword)
				break
			}
		}
	}
	return out
}

// ActiveStatuses are the tutor statuses eligible for new students.
var ActiveStatuses = []string{"2.Prof OK", "4.Prof potentiellement OK"}

func modeAllowed(remote bool, tutorMode string) bool {
	mode := roster.Fold(tutorMode)
	if remote {
		return strings.Contains(mode, "visio")
	}
	return mode != "visio"
}

func teaches(t roster.Tutor, bucket string, keywords []string) bool {
	if !slices.Contains(ActiveStatuses, strings.TrimSpace(t.Active)) {
		return false
	}
	if !roster.ContainsFold(t.Levels, bucket) {
		return false
	}
	subjects := roster.Fold(t.Subjects)
	return slices.ContainsFunc(keywords, func(k string) bool {
		return strings.Contains(subjects, k)
	})
}

var subjectNoise = strings.NewReplacer("[", "", "]", "", `"`, "", "'", "")

// FormatSubjects turns "a; b; c" into "a, b et c".
func FormatSubjects(s string) string {
	s = strings.TrimSpace(subjectNoise.Replace(s))
	var parts []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " et " + parts[len(parts)-1]
}
