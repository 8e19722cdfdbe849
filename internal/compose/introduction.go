package compose

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/idir-jpg/study-success-matching/internal/roster"
)

// IntroductionData feeds the tutor introduction email.
type IntroductionData struct {
	Student   roster.Student
	Tutor     roster.Tutor
	Signature string // data URI, may be empty
}

func IntroductionSubject(s roster.Student) string {
	return "Coordonnées Elèves: " + orNA(s.FirstName) + " " + orNA(s.LastName)
}

// IntroductionAddress is "Visio" for remote students, otherwise the tutor's
// address.
func IntroductionAddress(s roster.Student, t roster.Tutor) string {
	if s.Remote {
		return "Visio"
	}
	if t.Address == "" {
		return "Adresse non disponible"
	}
	return t.Address
}

// Introduction gives the tutor the student's coordinates for a first lesson.
func Introduction(d IntroductionData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s, t := d.Student, d.Tutor
		tutorFirst := t.FirstName
		if tutorFirst == "" {
			tutorFirst = "Professeur"
		}

		h := &htmlWriter{w: w}
		h.raw(`<html><body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">`)
		h.raw(`<p>Bonjour !<br><br>Comme convenu, voici toutes les informations pour organiser le premier cours d'essai avec `)
		h.text(orNA(s.FirstName))
		h.raw(` :<br><br></p>`)

		h.raw(`<p><b>📌 Informations de l'élève</b><br>`)
		h.raw(`• Prénom &amp; Nom : `)
		h.text(orNA(s.FirstName) + " " + orNA(s.LastName))
		h.raw(`<br>• Classe : `)
		h.text(orNA(s.Level))
		h.raw(`<br>• Dispo et profil de l'élève : `)
		h.text(orNA(s.Availability))
		h.raw(`<br>• Numéro de contact : `)
		h.text(orNA(s.ParentPhone))
		h.raw(`<br>• Adresse : `)
		h.text(IntroductionAddress(s, t))
		h.raw(`<br><br></p>`)

		h.raw(`<p><b>📌 Coordonnées du professeur</b><br>`)
		h.raw(`• Nom du professeur : `)
		h.text(orNA(t.FirstName) + " " + orNA(t.LastName))
		h.raw(`<br>• Numéro de téléphone : `)
		h.text(orNA(t.Phone))
		h.raw(`<br>• Adresse e-mail : `)
		h.text(orNA(t.Email))
		h.raw(`<br><br></p>`)

		h.raw(`<p><b>📌 Organisation du premier échange</b><br>`)
		h.text(tutorFirst)
		h.raw(`, je t'invite à contacter la famille afin de convenir ensemble d'un créneau pour le premier cours. `)
		h.raw(`Une fois l'échange téléphonique fait, merci de m'envoyer un SMS ou un mail pour me confirmer la date et l'heure du cours.<br><br></p>`)

		h.raw(`<p><b>📌 Rappels importants</b><br>`)
		h.raw(`• Le cours d'essai ne doit pas excéder 1h.<br>`)
		h.raw(`• Après ce premier cours, nous allons vous contacter pour un rapide point par téléphone afin d'échanger sur ce cours d'essai.<br><br></p>`)

		h.raw(`<p>N'hésitez surtout pas à me solliciter pour toute question.<br><br>A très bientôt !<br><br>`)
		if h.err != nil {
			return h.err
		}
		if err := Signature(d.Signature).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</p></body></html>`)
		return h.err
	})
}
