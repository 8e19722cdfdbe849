package roster

import (
	"slices"
	"strings"
	"time"
)

// Source tells where a roster snapshot came from.
type Source string

const (
	SourceDrive Source = "drive"
	SourceDemo  Source = "demo"
)

// Roster is an immutable snapshot of students, tutors and learning profiles.
// It is safe for concurrent reads.
type Roster struct {
	Students []Student
	Tutors   []Tutor
	Profiles []LearningProfile
	LoadedAt time.Time
	Source   Source
}

func New(students []Student, tutors []Tutor, profiles []LearningProfile, source Source) *Roster {
	return &Roster{
		Students: students,
		Tutors:   tutors,
		Profiles: profiles,
		LoadedAt: time.Now(),
		Source:   source,
	}
}

// SearchStudents matches each non-empty criterion as a folded substring.
func (r *Roster) SearchStudents(first, last string) []Student {
	first, last = Fold(first), Fold(last)
	out := make([]Student, 0, len(r.Students))
	for _, s := range r.Students {
		if first != "" && !strings.Contains(Fold(s.FirstName), first) {
			continue
		}
		if last != "" && !strings.Contains(Fold(s.LastName), last) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SearchTutors keeps tutors whose level cell is one of levels and whose
// subject cell is one of subjects. An empty set does not filter.
func (r *Roster) SearchTutors(levels, subjects []string) []Tutor {
	out := make([]Tutor, 0, len(r.Tutors))
	for _, t := range r.Tutors {
		if len(levels) > 0 && !slices.Contains(levels, t.Levels) {
			continue
		}
		if len(subjects) > 0 && !slices.Contains(subjects, t.Subjects) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TutorLevels lists the distinct non-empty level cells, sorted.
func (r *Roster) TutorLevels() []string {
	return distinct(r.Tutors, func(t Tutor) string { return t.Levels })
}

// TutorSubjects lists the distinct non-empty subject cells, sorted.
func (r *Roster) TutorSubjects() []string {
	return distinct(r.Tutors, func(t Tutor) string { return t.Subjects })
}

func (r *Roster) Student(id string) (Student, error) {
	id = strings.TrimSpace(id)
	for _, s := range r.Students {
		if s.ID == id {
			return s, nil
		}
	}
	return Student{}, ErrStudentNotFound
}

// Tutor looks a tutor up by email, ignoring case.
func (r *Roster) Tutor(email string) (Tutor, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Tutor{}, ErrTutorNotFound
	}
	for _, t := range r.Tutors {
		if strings.EqualFold(t.Email, email) {
			return t, nil
		}
	}
	return Tutor{}, ErrTutorNotFound
}

func (r *Roster) Profile(id string) (LearningProfile, error) {
	id = strings.TrimSpace(id)
	for _, p := range r.Profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return LearningProfile{}, ErrProfileNotFound
}

// FindTutorByName returns the first tutor whose names contain both criteria.
func (r *Roster) FindTutorByName(first, last string) (Tutor, error) {
	first, last = Fold(first), Fold(last)
	for _, t := range r.Tutors {
		if strings.Contains(Fold(t.FirstName), first) && strings.Contains(Fold(t.LastName), last) {
			return t, nil
		}
	}
	return Tutor{}, ErrTutorNotFound
}

func distinct(tutors []Tutor, field func(Tutor) string) []string {
	seen := make(map[string]struct{}, len(tutors))
	out := make([]string, 0, len(tutors))
	for _, t := range tutors {
		v := field(t)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
