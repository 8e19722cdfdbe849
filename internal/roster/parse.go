package roster

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetFollowUp = "Suivi"
	SheetProfiles = "Profils_élèves"
	SheetTutors   = "Liste profs"
)

// ParseFollowUp reads the follow-up workbook. Only students with a tracked
// status are returned. A missing profile sheet yields no profiles.
func ParseFollowUp(r io.Reader) ([]Student, []LearningProfile, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Join(ErrOpenWorkbook, err)
	}
	defer f.Close()

	rows, err := sheetRows(f, SheetFollowUp)
	if err != nil {
		return nil, nil, err
	}
	students := parseStudents(rows)

	var profiles []LearningProfile
	rows, err = sheetRows(f, SheetProfiles)
	switch {
	case errors.Is(err, ErrSheetNotFound):
	case err != nil:
		return nil, nil, err
	default:
		if profiles, err = parseProfiles(rows); err != nil {
			return nil, nil, err
		}
	}

	return students, profiles, nil
}

// ParseTutors reads the tutor workbook.
func ParseTutors(r io.Reader) ([]Tutor, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Join(ErrOpenWorkbook, err)
	}
	defer f.Close()

	rows, err := sheetRows(f, SheetTutors)
	if err != nil {
		return nil, err
	}
	return parseTutors(rows), nil
}

// sheetRows finds a sheet by folded name.
func sheetRows(f *excelize.File, name string) ([][]string, error) {
	want := Fold(name)
	for _, sheet := range f.GetSheetList() {
		if Fold(sheet) != want {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.Join(ErrReadSheet, err)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// header maps folded column titles to their index.
type header map[string]int

func newHeader(titles []string) header {
	h := make(header, len(titles))
	for i, t := range titles {
		k := Fold(t)
		if _, dup := h[k]; !dup && k != "" {
			h[k] = i
		}
	}
	return h
}

func (h header) get(row []string, title string) string {
	i, ok := h[Fold(title)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// addressColumn prefers a header mentioning "adresse" but not "code".
func addressColumn(titles []string) string {
	var fallback string
	for _, t := range titles {
		k := Fold(t)
		if !strings.Contains(k, "adresse") {
			continue
		}
		if !strings.Contains(k, "code") {
			return t
		}
		if fallback == "" {
			fallback = t
		}
	}
	return fallback
}

func parseStudents(rows [][]string) []Student {
	if len(rows) == 0 {
		return nil
	}
	h := newHeader(rows[0])
	students := make([]Student, 0, len(rows)-1)
	for _, row := range rows[1:] {
		status := h.get(row, "Etat")
		if !isTracked(status) {
			continue
		}
		students = append(students, Student{
			ID:           h.get(row, "Id"),
			LastName:     strings.ToUpper(h.get(row, "Nom")),
			FirstName:    h.get(row, "Prénom"),
			Address:      h.get(row, "Adresse"),
			Level:        h.get(row, "Niveau"),
			Subjects:     h.get(row, "Matières enseignées"),
			Remote:       isRemote(h.get(row, "Visio ?")),
			Availability: h.get(row, "Dispo & Profil de l'élève"),
			ParentPhone:  h.get(row, "Téléphone parents"),
			Email:        h.get(row, "Mail"),
			Status:       status,
			Tutor:        h.get(row, "Professeur"),
			Manager:      h.get(row, "Gérant"),
			WaitTime:     h.get(row, "Tps attente"),
		})
	}
	return students
}

func parseTutors(rows [][]string) []Tutor {
	if len(rows) == 0 {
		return nil
	}
	h := newHeader(rows[0])
	addr := addressColumn(rows[0])
	tutors := make([]Tutor, 0, len(rows)-1)
	for _, row := range rows[1:] {
		t := Tutor{
			LastName:  h.get(row, "Nom"),
			FirstName: h.get(row, "Prénom"),
			Email:     h.get(row, "Mail"),
			Phone:     h.get(row, "Numéro"),
			Levels:    h.get(row, "Niveau"),
			Subjects:  h.get(row, "Matière"),
			Active:    h.get(row, "Actif"),
			Notes:     h.get(row, "Précisions sur la situation"),
			Mode:      h.get(row, "Présentiel ou Visio ?"),
		}
		if addr != "" {
			t.Address = h.get(row, addr)
		}
		if t.LastName == "" && t.FirstName == "" && t.Email == "" {
			continue
		}
		tutors = append(tutors, t)
	}
	return tutors
}

func parseProfiles(rows [][]string) ([]LearningProfile, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	h := newHeader(rows[0])
	profiles := make([]LearningProfile, 0, len(rows)-1)
	for n, row := range rows[1:] {
		id := h.get(row, "id")
		if id == "" {
			continue
		}
		p := LearningProfile{
			ID:        id,
			FirstName: h.get(row, "Prénom"),
			LastName:  h.get(row, "Nom"),
		}
		scores := []struct {
			title string
			dst   *float64
		}{
			{"Visuel", &p.Visual},
			{"Verbal", &p.Verbal},
			{"Sensoriel", &p.Sensing},
			{"Intuitif", &p.Intuitive},
			{"Actif", &p.Active},
			{"Réflexif", &p.Reflective},
			{"Séquentiel", &p.Sequential},
			{"Global", &p.Global},
		}
		for _, s := range scores {
			v, err := parseScore(h.get(row, s.title))
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %v", ErrReadSheet, n+2, s.title, err)
			}
			*s.dst = v
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func parseScore(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
}
