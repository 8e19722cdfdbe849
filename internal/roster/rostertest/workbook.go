// Package rostertest builds in-memory workbooks shaped like the agency's
// spreadsheets for tests.
package rostertest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type Sheet struct {
	Name string
	Rows [][]any
}

// Workbook returns the xlsx bytes of a workbook holding sheets in order.
func Workbook(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.Name))
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for r, row := range s.Rows {
			cell := fmt.Sprintf("A%d", r+1)
			require.NoError(t, f.SetSheetRow(s.Name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// FollowUpHeader is the "Suivi" header row in its usual column order.
func FollowUpHeader() []any {
	return []any{
		"Id", "Nom", "Prénom", "Adresse", "Niveau", "Matières enseignées", "Visio ?",
		"Dispo & Profil de l'élève", "Téléphone parents", "Mail", "Etat", "Professeur",
		"Gérant", "Tps attente",
	}
}

// TutorHeader is the "Liste profs" header row, with a postcode column ahead
// of the street address.
func TutorHeader() []any {
	return []any{
		"Nom", "Prénom", "Mail", "Numéro", "Niveau", "Matière", "Actif",
		"Précisions sur la situation", "Code postal adresse", "adresse", "Présentiel ou Visio ?",
	}
}

// ProfileHeader is the "Profils_élèves" header row.
func ProfileHeader() []any {
	return []any{
		"id", "Prénom", "Nom", "Visuel", "Verbal", "Sensoriel", "Intuitif",
		"Actif", "Réflexif", "Séquentiel", "Global",
	}
}
