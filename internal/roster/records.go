package roster

import "strings"

// Student is one row of the follow-up sheet.
type Student struct {
	ID           string `json:"id"`
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	Address      string `json:"address"`
	Level        string `json:"level"`
	Subjects     string `json:"subjects"`
	Remote       bool   `json:"remote"`
	Availability string `json:"availability"`
	ParentPhone  string `json:"parent_phone"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	Tutor        string `json:"tutor"`
	Manager      string `json:"manager"`
	WaitTime     string `json:"wait_time"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Tutor is one row of the tutor list.
type Tutor struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Levels    string `json:"levels"`
	Subjects  string `json:"subjects"`
	Active    string `json:"active"`
	Notes     string `json:"notes"`
	Address   string `json:"address"`
	Mode      string `json:"mode"`
}

func (t Tutor) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// LearningProfile holds a student's scores on the four learning-style
// dichotomies.
type LearningProfile struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Visual     float64 `json:"visual"`
	Verbal     float64 `json:"verbal"`
	Sensing    float64 `json:"sensing"`
	Intuitive  float64 `json:"intuitive"`
	Active     float64 `json:"active"`
	Reflective float64 `json:"reflective"`
	Sequential float64 `json:"sequential"`
	Global     float64 `json:"global"`
}

// isRemote reads the "Visio ?" cell.
func isRemote(v string) bool {
	switch Fold(v) {
	case "visio", "oui":
		return true
	}
	return false
}

// isTracked keeps students whose status starts with 0, 1 or 2.
func isTracked(status string) bool {
	s := strings.TrimSpace(status)
	return s != "" && s[0] >= '0' && s[0] <= '2'
}
