package mail

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Staff is a mailbox allowed to send from the desk.
type Staff struct {
	Email string `yaml:"email" json:"email"`
	Name  string `yaml:"name" json:"name"`
}

// FirstName is the first word of Name, used to sign proposals.
func (s Staff) FirstName() string {
	first, _, _ := strings.Cut(strings.TrimSpace(s.Name), " ")
	return first
}

// Directory is the ordered sender whitelist.
type Directory struct {
	staff []Staff
}

func NewDirectory(staff ...Staff) *Directory {
	d := &Directory{}
	for _, s := range staff {
		s.Email = strings.TrimSpace(s.Email)
		if s.Email == "" {
			continue
		}
		if s.Name == "" {
			s.Name = s.Email
		}
		d.staff = append(d.staff, s)
	}
	return d
}

// DefaultDirectory lists the agency's four staff senders.
func DefaultDirectory() *Directory {
	return NewDirectory(
		Staff{Email: "idir.hadjhamou@study-success.fr", Name: "Idir HADJ HAMOU"},
		Staff{Email: "manon.curie@study-success.fr", Name: "Manon CURIE"},
		Staff{Email: "lucas.ledanois@study-success.fr", Name: "Lucas LE DANOIS"},
		Staff{Email: "mathilde.boher@study-success.fr", Name: "Agathe BOHER"},
	)
}

type directoryFile struct {
	Senders []Staff `yaml:"senders"`
}

// LoadDirectory reads a YAML file of the form
//
//	senders:
//	  - email: idir.hadjhamou@study-success.fr
//	    name: Idir HADJ HAMOU
func LoadDirectory(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrLoadDirectory, err)
	}
	var f directoryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Join(ErrLoadDirectory, err)
	}
	d := NewDirectory(f.Senders...)
	if len(d.staff) == 0 {
		return nil, fmt.Errorf("%w: %s lists no sender", ErrLoadDirectory, path)
	}
	return d, nil
}

// Lookup finds a sender by address, ignoring case.
func (d *Directory) Lookup(email string) (Staff, error) {
	email = strings.TrimSpace(email)
	for _, s := range d.staff {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return Staff{}, fmt.Errorf("%w: %s", ErrUnknownSender, email)
}

// Default is the first listed sender.
func (d *Directory) Default() Staff {
	if len(d.staff) == 0 {
		return Staff{}
	}
	return d.staff[0]
}

func (d *Directory) List() []Staff {
	out := make([]Staff, len(d.staff))
	copy(out, d.staff)
	return out
}
