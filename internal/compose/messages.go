package compose

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ProposalData feeds the matching proposal sent in blind copy to tutors.
type ProposalData struct {
	FirstName    string
	Level        string
	Subjects     string // already formatted, e.g. "maths et physique"
	Availability string
	Address      string // "Visio" for remote students
	Signer       string // sender's first name
}

func ProposalSubject(level, subjects string) string {
	return "Proposition d'élève - Niveau " + level + " pour des cours de " + subjects
}

func Proposal(d ProposalData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		signer := strings.TrimSpace(d.Signer)
		if signer == "" {
			signer = "l'équipe"
		}

		h := &htmlWriter{w: w}
		h.raw(`<html><body>Hello !<br><br>C'est `)
		h.text(signer)
		h.raw(` de Study Success, j'espère que tu vas bien ! 😊<br>`)
		h.raw(`Si tu reçois ce mail, c'est parce que tu corresponds parfaitement au profil recherché pour un(e) de nos élèves.<br><br>`)
		h.raw(`📌 <b>Élève : `)
		h.text(d.FirstName)
		h.raw(`</b><br>• Classe : `)
		h.text(d.Level)
		h.raw(`<br>• Matière : `)
		h.text(d.Subjects)
		h.raw(`<br>• Dispos : `)
		h.text(d.Availability)
		h.raw(`<br>• Adresse : `)
		h.text(d.Address)
		h.raw(`<br><br>Réponds simplement à ce mail si tu es dispo !<br><br>À très vite,<br>`)
		h.text(signer)
		h.raw(`</body></html>`)
		return h.err
	})
}

const (
	MandatSubject = "📄 Signature du mandat - Study Success"

	// MandatAttachmentName is the file name parents receive.
	MandatAttachmentName = "Mandat Study Success_ Particulier Employeur.pdf"

	MandatText = `Bonjour,

J'espère que vous allez bien.
Pour commencer les cours de manière légale, nous avons besoin que vous remplissiez et signiez le mandat ci-joint.

Comme expliqué, il ne vous engage à rien après cette première heure de cours.

Bien à vous,
L'équipe Study Success
`
)

// Mandat is the HTML rendition of MandatText.
func Mandat() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<html><body>`)
		for i, para := range strings.Split(strings.TrimSpace(MandatText), "\n\n") {
			if i > 0 {
				h.raw(`<br><br>`)
			}
			for j, line := range strings.Split(para, "\n") {
				if j > 0 {
					h.raw(`<br>`)
				}
				h.text(line)
			}
		}
		h.raw(`</body></html>`)
		return h.err
	})
}

func ProfileSubject(firstName string) string {
	return "Résultats test de profil de " + firstName
}

// ProfileResults announces the learning-profile results. imageCID names the
// inline "next steps" image; empty omits it.
func ProfileResults(imageCID string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<html><body>Bonjour,<br><br>`)
		h.raw(`Merci d'avoir complété le test de profil d'apprentissage de Study Success, voici les résultats :<br><br>`)
		h.raw(`Voici les prochaines étapes :<br><br>`)
		if imageCID != "" {
			h.raw(`<img src="cid:`)
			h.text(imageCID)
			h.raw(`"><br><br>`)
		}
		h.raw(`Merci pour votre confiance,<br>Excellente journée,</body></html>`)
		return h.err
	})
}
