package web

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/idir-jpg/study-success-matching/internal/desk"
	"github.com/idir-jpg/study-success-matching/internal/journal"
	"github.com/idir-jpg/study-success-matching/internal/mail"
	"github.com/idir-jpg/study-success-matching/internal/matching"
	"github.com/idir-jpg/study-success-matching/internal/roster"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// html writes markup, keeping the first error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

// js quotes s as a JavaScript string literal for DataStar expressions.
func js(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

// page is the document shell around content.
func page(title string, content templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="fr"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><script type="module" src="`, datastarScript, `"></script>`)
		h.raw(`<style>body{font-family:Arial,sans-serif;margin:2rem;color:#333}table{border-collapse:collapse}td,th{padding:.25rem .5rem;border-bottom:1px solid #ddd;text-align:left}`)
		h.raw(`.warning{background:#fff3cd;padding:.5rem}.ok{color:#1e7e34}.ko{color:#c82333}section{margin-bottom:2rem}</style></head><body>`)
		h.raw(`<div id="toast"></div>`)
		h.render(ctx, content)
		h.raw(`</body></html>`)
	})
}

type dashboardData struct {
	Status      desk.Status
	Students    []roster.Student
	Tutors      []roster.Tutor
	Levels      []string
	Subjects    []string
	Senders     []mail.Staff
	TestAddress string
	History     []journal.Entry
}

func dashboardView(d dashboardData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		sender := ""
		if len(d.Senders) > 0 {
			sender = d.Senders[0].Email
		}
		signals := map[string]any{
			"first": "", "last": "", "student": "", "tutor": "", "emails": []string{},
			"sender": sender, "test": false, "levels": []string{}, "subjects": []string{},
		}
		raw, _ := json.Marshal(signals)

		h.raw(`<main data-signals="`)
		h.text(string(raw))
		h.raw(`"><header><h1>Study Success · Matching</h1>`)
		h.render(ctx, statusView(d.Status))
		h.raw(`<p><label>Expéditeur <select data-bind-sender>`)
		for _, s := range d.Senders {
			h.raw(`<option value="`)
			h.text(s.Email)
			h.raw(`">`)
			h.text(s.Name)
			h.raw(`</option>`)
		}
		h.raw(`</select></label> <label><input type="checkbox" data-bind-test> Mode test (envoi à `)
		h.text(d.TestAddress)
		h.raw(`)</label></p></header>`)

		h.raw(`<section><h2>Élèves</h2><p><input placeholder="Prénom" data-bind-first> <input placeholder="Nom" data-bind-last> `)
		h.raw(`<button data-on-click="@get('/students')">Rechercher</button></p>`)
		h.render(ctx, studentsView(d.Students))
		h.raw(`</section>`)

		h.raw(`<section><h2>Matching</h2><div id="matching"></div><div id="result"></div></section>`)
		h.raw(`<section><h2>Présentation</h2><div id="preview"></div></section>`)

		h.raw(`<section><h2>Professeurs</h2><p>`)
		filter(h, "levels", d.Levels)
		filter(h, "subjects", d.Subjects)
		h.raw(`<button data-on-click="@get('/tutors')">Filtrer</button></p>`)
		h.render(ctx, tutorsView(d.Tutors))
		h.raw(`</section>`)

		h.raw(`<section><h2>Historique</h2>`)
		h.render(ctx, historyView(d.History))
		h.raw(`</section></main>`)
	})
}

func filter(h *html, signal string, values []string) {
	h.raw(`<select multiple data-bind-`, signal, `>`)
	for _, v := range values {
		h.raw(`<option value="`)
		h.text(v)
		h.raw(`">`)
		h.text(v)
		h.raw(`</option>`)
	}
	h.raw(`</select> `)
}

func statusView(st desk.Status) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div id="status">`)
		if st.Warning != "" {
			h.raw(`<p class="warning">`)
			h.text(st.Warning)
			h.raw(`</p>`)
		}
		h.raw(`<p>`)
		h.text(strconv.Itoa(st.Students) + " élèves, " + strconv.Itoa(st.Tutors) + " professeurs, " + strconv.Itoa(st.Profiles) + " profils")
		if st.Source == roster.SourceDemo {
			h.raw(` (données de démonstration)`)
		} else if !st.LoadedAt.IsZero() {
			h.text(", chargés le " + st.LoadedAt.Format("02/01/2006 à 15:04"))
		}
		h.raw(` <button data-on-click="@post('/reload')">Recharger</button></p></div>`)
	})
}

func studentsView(students []roster.Student) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div id="students">`)
		if len(students) == 0 {
			h.raw(`<p>Aucun élève trouvé.</p></div>`)
			return
		}
		h.raw(`<table><thead><tr><th>Id</th><th>Élève</th><th>Niveau</th><th>Matières</th><th>Mode</th><th>État</th><th></th></tr></thead><tbody>`)
		for _, s := range students {
			id := js(s.ID)
			h.raw(`<tr><td>`)
			h.text(s.ID)
			h.raw(`</td><td>`)
			h.text(s.FullName())
			h.raw(`</td><td>`)
			h.text(s.Level)
			h.raw(`</td><td>`)
			h.text(s.Subjects)
			h.raw(`</td><td>`)
			h.text(modeLabel(s.Remote))
			h.raw(`</td><td>`)
			h.text(s.Status)
			h.raw(`</td><td>`)
			h.raw(`<button data-on-click="`)
			h.text(`$student = ` + id + `; $emails = []; @get('/matching')`)
			h.raw(`">Matcher</button> <button data-on-click="`)
			h.text(`$student = ` + id + `; $tutor = ''; @get('/preview')`)
			h.raw(`">Présentation</button> <button data-on-click="`)
			h.text(`$student = ` + id + `; @post('/mandat/send')`)
			h.raw(`">Mandat</button> <a href="/mandat/eml?student=`)
			h.text(s.ID)
			h.raw(`">.emltpl</a> <button data-on-click="`)
			h.text(`$student = ` + id + `; @post('/profile/send')`)
			h.raw(`">Profil</button> <a href="/profile/pptx?student=`)
			h.text(s.ID)
			h.raw(`">.pptx</a> <a href="/profile/eml?student=`)
			h.text(s.ID)
			h.raw(`">.emltpl</a></td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
	})
}

func modeLabel(remote bool) string {
	if remote {
		return "Visio"
	}
	return "Présentiel"
}

func tutorsView(tutors []roster.Tutor) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div id="tutors"><table><thead><tr><th>Professeur</th><th>Email</th><th>Niveaux</th><th>Matières</th><th>Statut</th><th>Mode</th></tr></thead><tbody>`)
		for _, t := range tutors {
			h.raw(`<tr><td>`)
			h.text(t.FullName())
			h.raw(`</td><td>`)
			h.text(t.Email)
			h.raw(`</td><td>`)
			h.text(t.Levels)
			h.raw(`</td><td>`)
			h.text(t.Subjects)
			h.raw(`</td><td>`)
			h.text(t.Active)
			h.raw(`</td><td>`)
			h.text(t.Mode)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
	})
}

func matchingView(s roster.Student, res matching.Result) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div id="matching"><h3>`)
		h.text(s.FullName() + " · " + s.Level + " · " + matching.FormatSubjects(s.Subjects) + " · " + modeLabel(s.Remote))
		h.raw(`</h3>`)
		if len(res.Candidates) == 0 {
			h.raw(`<p>Aucun professeur ne correspond.</p></div>`)
			return
		}
		if res.Estimated {
			h.raw(`<p>Trajets estimés en transports pour un départ le `)
			h.text(res.Departure.Format("02/01/2006 à 15:04"))
			h.raw(`.</p>`)
		}
		h.raw(`<form method="post" action="/matching/eml"><input type="hidden" name="student" value="`)
		h.text(s.ID)
		h.raw(`"><input type="hidden" name="sender" data-bind-sender>`)
		h.raw(`<table><thead><tr><th></th><th>Professeur</th><th>Email</th><th>Téléphone</th><th>Trajet</th><th></th></tr></thead><tbody>`)
		for _, c := range res.Candidates {
			h.raw(`<tr><td>`)
			if c.Tutor.Email != "" {
				h.raw(`<input type="checkbox" name="email" data-bind-emails value="`)
				h.text(c.Tutor.Email)
				h.raw(`">`)
			}
			h.raw(`</td><td>`)
			h.text(c.Tutor.FullName())
			h.raw(`</td><td>`)
			h.text(c.Tutor.Email)
			h.raw(`</td><td>`)
			h.text(c.Tutor.Phone)
			h.raw(`</td><td>`)
			h.text(minutesLabel(c.Minutes))
			h.raw(`</td><td>`)
			if c.Tutor.Email != "" {
				h.raw(`<button type="button" data-on-click="`)
				h.text(`$tutor = ` + js(c.Tutor.Email) + `; @get('/preview')`)
				h.raw(`">Présenter</button>`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table><p><button type="button" data-on-click="@post('/matching/send')">Envoyer la proposition</button> `)
		h.raw(`<button type="submit">Télécharger .emltpl</button></p></form></div>`)
	})
}

func minutesLabel(m *int) string {
	if m == nil {
		return "—"
	}
	return strconv.Itoa(*m) + " min"
}

func previewView(req actionRequest, m mail.Message) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div id="preview"><p><b>De :</b> `)
		h.text(m.From)
		h.raw(`<br><b>À :</b> `)
		h.text(strings.Join(m.To, ", "))
		h.raw(`<br><b>Cc :</b> `)
		h.text(strings.Join(m.Cc, ", "))
		h.raw(`<br><b>Objet :</b> `)
		h.text(m.Subject)
		for _, a := range m.Attachments {
			h.raw(`<br><b>Pièce jointe :</b> `)
			h.text(a.Name)
		}
		h.raw(`</p><iframe style="width:100%;height:28rem;border:1px solid #ddd" sandbox srcdoc="`)
		h.text(m.HTMLBody)
		h.raw(`"></iframe><p><button data-on-click="`)
		h.text(`$tutor = ` + js(req.TutorEmail) + `; @post('/introduction/send')`)
		h.raw(`">Envoyer</button> <a href="/introduction/eml?student=`)
		h.text(req.StudentID)
		h.raw(`&amp;tutor=`)
		h.text(req.TutorEmail)
		h.raw(`">Télécharger .emltpl</a></p></div>`)
	})
}

func resultView(res mail.Result) templ.Component {
	return component(func(_ context.Context, h *html) {
		class := "ko"
		if res.Success {
			class = "ok"
		}
		h.raw(`<div id="result" class="`, class, `">`)
		h.text(res.Message)
		h.raw(`</div>`)
	})
}

func historyView(entries []journal.Entry) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div id="history"><button data-on-click="@get('/history')">Actualiser</button>`)
		if len(entries) == 0 {
			h.raw(`<p>Aucun envoi.</p></div>`)
			return
		}
		h.raw(`<table><thead><tr><th>Date</th><th>Type</th><th>Expéditeur</th><th>Destinataires</th><th>Objet</th><th>Résultat</th></tr></thead><tbody>`)
		for _, e := range entries {
			h.raw(`<tr><td>`)
			h.text(e.CreatedAt.Format("02/01/2006 15:04"))
			h.raw(`</td><td>`)
			h.text(string(e.Kind))
			if e.Test {
				h.raw(` (test)`)
			}
			h.raw(`</td><td>`)
			h.text(e.Sender)
			h.raw(`</td><td>`)
			h.text(strings.Join(e.To, ", "))
			h.raw(`</td><td>`)
			h.text(e.Subject)
			class := "ko"
			if e.Success {
				class = "ok"
			}
			h.raw(`</td><td class="`, class, `">`)
			h.text(e.Message)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
	})
}

func toastView(info ErrorInfo, requestID string) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<p class="warning">`)
		h.text(info.Message)
		if requestID != "" {
			h.raw(` <small>(`)
			h.text(requestID)
			h.raw(`)</small>`)
		}
		h.raw(`</p>`)
	})
}

func errorView(info ErrorInfo, requestID string) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<main><h1>`)
		h.text(strconv.Itoa(info.StatusCode))
		h.raw(`</h1><p>`)
		h.text(info.Message)
		h.raw(`</p>`)
		if requestID != "" {
			h.raw(`<p><small>Référence : `)
			h.text(requestID)
			h.raw(`</small></p>`)
		}
		h.raw(`<p><a href="/">Retour</a></p></main>`)
	})
}
