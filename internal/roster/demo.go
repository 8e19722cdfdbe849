package roster

// Demo returns the fixed dataset shown when the workbooks cannot be loaded.
func Demo() *Roster {
	students := []Student{
		{
			ID:           "1",
			LastName:     "DUPONT",
			FirstName:    "Pierre",
			Address:      "Paris",
			Level:        "Collège",
			Subjects:     "Mathématiques",
			Remote:       true,
			Availability: "Flexible",
			ParentPhone:  "0123456789",
			Email:        "pierre.dupont@email.com",
			Status:       "1",
		},
		{
			ID:           "2",
			LastName:     "MARTIN",
			FirstName:    "Sophie",
			Address:      "Lyon",
			Level:        "Lycée",
			Subjects:     "Français",
			Availability: "Flexible",
			ParentPhone:  "0987654321",
			Email:        "sophie.martin@email.com",
			Status:       "2",
		},
	}
	tutors := []Tutor{
		{
			LastName:  "DUPONT",
			FirstName: "Jean",
			Email:     "jean.dupont@email.com",
			Phone:     "0123456789",
			Levels:    "Collège",
			Subjects:  "Mathématiques",
			Active:    "Oui",
			Address:   "Paris",
			Mode:      "Présentiel",
		},
		{
			LastName:  "MARTIN",
			FirstName: "Marie",
			Email:     "marie.martin@email.com",
			Phone:     "0987654321",
			Levels:    "Lycée",
			Subjects:  "Français",
			Active:    "Oui",
			Address:   "Lyon",
			Mode:      "Visio",
		},
	}
	return New(students, tutors, nil, SourceDemo)
}
