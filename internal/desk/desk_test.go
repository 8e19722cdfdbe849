package desk_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/internal/compose"
	"github.com/idir-jpg/study-success-matching/internal/desk"
	"github.com/idir-jpg/study-success-matching/internal/drive"
	"github.com/idir-jpg/study-success-matching/internal/journal"
	"github.com/idir-jpg/study-success-matching/internal/mail"
	"github.com/idir-jpg/study-success-matching/internal/matching"
	"github.com/idir-jpg/study-success-matching/internal/profile"
	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/internal/roster/rostertest"
	"github.com/idir-jpg/study-success-matching/internal/slides"
	"github.com/idir-jpg/study-success-matching/internal/slides/slidestest"
)

const (
	manon      = "manon.curie@study-success.fr"
	resultsPDF = "GESTION QUOTIDIENNE/TEST DE MEMOIRE/Élodie résultat profil d'apprentissage.pdf"
)

var paths = drive.Paths{
	FollowUp:        "GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx",
	Tutors:          "GESTION QUOTIDIENNE/SCOPE PROFS/Contact_Profs.xlsx",
	Mandat:          "GESTION QUOTIDIENNE/DOCUMENTS UTILES/Mandats/Mandat Study Success_ Particulier Employeur.pdf",
	ProfileTemplate: "GESTION QUOTIDIENNE/TEST DE MEMOIRE/testNouveau_Résultat-test.pptx",
	ProfileResults:  "GESTION QUOTIDIENNE/TEST DE MEMOIRE",
}

type memDrive map[string][]byte

func (m memDrive) Fetch(_ context.Context, p string) ([]byte, error) {
	data, ok := m[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", drive.ErrFileNotFound, p)
	}
	return data, nil
}

type outbox struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (o *outbox) Send(_ context.Context, m mail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, m)
	return nil
}

func (o *outbox) last(t *testing.T) mail.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent)
	return o.sent[len(o.sent)-1]
}

func files(t *testing.T) memDrive {
	t.Helper()

	followUp := rostertest.Workbook(t,
		rostertest.Sheet{Name: roster.SheetFollowUp, Rows: [][]any{
			rostertest.FollowUpHeader(),
			{"10", "Durand", "Élodie", "12 rue de Rivoli, Paris", "4e", "Maths; Physique", "Non", "Mercredi", "0600000000", "parent@example.com", "1 - En recherche", "Jean Martin", "Manon", ""},
			{"11", "Petit", "Léo", "", "Terminale", "SVT", "visio", "Soir", "0611111111", "leo.parent@example.com", "2 - Démarré", "", "", ""},
			{"12", "Sans", "Mail", "", "3e", "Maths", "Non", "", "", "", "1", "", "", ""},
		}},
		rostertest.Sheet{Name: roster.SheetProfiles, Rows: [][]any{
			rostertest.ProfileHeader(),
			{"10", "Élodie", "Durand", 12, 8, "5,5", 7, 3, 3, 9, 1},
		}},
	)
	tutors := rostertest.Workbook(t,
		rostertest.Sheet{Name: roster.SheetTutors, Rows: [][]any{
			rostertest.TutorHeader(),
			{"Martin", "Jean", "jean.martin@example.com", "0601", "collège, lycée", "maths, physique", "2.Prof OK", "", "75001", "1 rue de la Paix, Paris", "Présentiel"},
			{"Bernard", "Alice", "alice.bernard@example.com", "0602", "lycée", "svt", "2.Prof OK", "", "", "", "visio"},
			{"Nomail", "Paul", "", "0603", "collège", "maths", "4.Prof potentiellement OK", "", "", "", "Présentiel"},
		}},
	)

	shapes := make([]string, 11)
	for i := range shapes {
		shapes[i] = slidestest.Shape("placeholder")
	}

	return memDrive{
		paths.FollowUp:        followUp,
		paths.Tutors:          tutors,
		paths.Mandat:          []byte("%PDF-mandat"),
		paths.ProfileTemplate: slidestest.Deck(t, shapes...),
		resultsPDF:            []byte("%PDF-results"),
	}
}

type fixture struct {
	svc   *desk.Service
	out   *outbox
	store *journal.MemoryStore
}

func newFixture(t *testing.T, src drive.Source) fixture {
	t.Helper()

	out := &outbox{}
	store := journal.NewMemoryStore(50)
	dispatcher := mail.NewDispatcher(out, mail.DefaultDirectory(), mail.WithJournal(store))
	assets := fstest.MapFS{
		"Signature_manon.png": {Data: []byte("sig")},
		desk.StepsImage:       {Data: []byte("png")},
	}
	svc := desk.New(src, paths, dispatcher, desk.WithJournal(store), desk.WithAssets(assets))
	return fixture{svc: svc, out: out, store: store}
}

func loaded(t *testing.T) fixture {
	t.Helper()
	f := newFixture(t, files(t))
	st := f.svc.Load(context.Background())
	require.Empty(t, st.Warning)
	return f
}

func TestService_Load(t *testing.T) {
	t.Parallel()

	f := newFixture(t, files(t))
	assert.Equal(t, roster.SourceDemo, f.svc.Status().Source, "demo until loaded")

	st := f.svc.Load(context.Background())
	assert.Equal(t, roster.SourceDrive, st.Source)
	assert.Equal(t, 3, st.Students)
	assert.Equal(t, 3, st.Tutors)
	assert.Equal(t, 1, st.Profiles)
	assert.Empty(t, st.Warning)

	found := f.svc.Students("elo", "")
	require.Len(t, found, 1)
	assert.Equal(t, "DURAND", found[0].LastName)

	levels, subjects := f.svc.TutorFilters()
	assert.Contains(t, levels, "lycée")
	assert.Contains(t, subjects, "svt")
	assert.Len(t, f.svc.Tutors([]string{"lycée"}, nil), 1)
	assert.Len(t, f.svc.Senders(), 4)
}

func TestService_LoadFallsBackToDemo(t *testing.T) {
	t.Parallel()

	src := drive.SourceFunc(func(context.Context, string) ([]byte, error) {
		return nil, drive.ErrAccessDenied
	})
	f := newFixture(t, src)
	st := f.svc.Load(context.Background())
	assert.Equal(t, roster.SourceDemo, st.Source)
	assert.Contains(t, st.Warning, "Impossible de charger les données SharePoint")
	assert.Len(t, f.svc.Students("", ""), len(roster.Demo().Students))

	noDrive := newFixture(t, nil).svc.Load(context.Background())
	assert.Equal(t, roster.SourceDemo, noDrive.Source)
	assert.NotEmpty(t, noDrive.Warning)
}

func TestService_FailedReloadKeepsDriveData(t *testing.T) {
	t.Parallel()

	m := files(t)
	f := newFixture(t, drive.SourceFunc(func(ctx context.Context, p string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return m.Fetch(ctx, p)
	}))
	st := f.svc.Load(context.Background())
	require.Equal(t, roster.SourceDrive, st.Source)
	require.Empty(t, st.Warning)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st = f.svc.Load(ctx)
	assert.Equal(t, roster.SourceDrive, st.Source)
	assert.Equal(t, 3, st.Students)
	assert.Contains(t, st.Warning, "Impossible de charger les données SharePoint")
	assert.Contains(t, st.Warning, context.Canceled.Error())
	assert.Len(t, f.svc.Students("elo", ""), 1)

	st = f.svc.Load(context.Background())
	assert.Empty(t, st.Warning, "a successful reload clears the banner")
}

func TestService_Match(t *testing.T) {
	t.Parallel()

	f := loaded(t)
	student, res, err := f.svc.Match(context.Background(), "10")
	require.NoError(t, err)
	assert.Equal(t, "Élodie", student.FirstName)
	assert.Equal(t, matching.BucketMiddle, res.Bucket)

	var emails []string
	for _, c := range res.Candidates {
		emails = append(emails, c.Tutor.Email)
	}
	assert.Equal(t, []string{"jean.martin@example.com", ""}, emails)

	_, _, err = f.svc.Match(context.Background(), "404")
	assert.ErrorIs(t, err, roster.ErrStudentNotFound)
}

func TestService_Introduction(t *testing.T) {
	t.Parallel()

	f := loaded(t)
	req := desk.Request{StudentID: "10", TutorEmail: "jean.martin@example.com", Sender: manon}

	preview, err := f.svc.PreviewIntroduction(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Coordonnées Elèves: Élodie DURAND", preview.Subject)
	assert.Equal(t, []string{"jean.martin@example.com"}, preview.To)
	assert.Equal(t, []string{"parent@example.com"}, preview.Cc)
	assert.Contains(t, preview.HTMLBody, "data:image/png;base64,")
	assert.Contains(t, preview.HTMLBody, "1 rue de la Paix, Paris")
	require.Len(t, preview.Attachments, 1)
	assert.Equal(t, "Élodie résultat profil d'apprentissage.pdf", preview.Attachments[0].Name)

	res, err := f.svc.SendIntroduction(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)
	sent := f.out.last(t)
	assert.Equal(t, manon, sent.From)
	assert.Equal(t, preview.Subject, sent.Subject)

	history, err := f.svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, journal.KindIntroduction, history[0].Kind)

	doc, err := f.svc.IntroductionDocument(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "email_coordonnees_prof.emltpl", doc.Name)
	assert.Contains(t, string(doc.Data), "jean.martin@example.com")
}

func TestService_IntroductionTutorResolution(t *testing.T) {
	t.Parallel()

	f := loaded(t)

	m, err := f.svc.PreviewIntroduction(context.Background(), desk.Request{StudentID: "10", Sender: manon})
	require.NoError(t, err)
	assert.Equal(t, []string{"jean.martin@example.com"}, m.To, "tutor named on the student row")

	_, err = f.svc.PreviewIntroduction(context.Background(), desk.Request{StudentID: "11", Sender: manon})
	assert.ErrorIs(t, err, desk.ErrNoTutorChosen)

	_, err = f.svc.PreviewIntroduction(context.Background(), desk.Request{StudentID: "11", TutorEmail: "nobody@example.com"})
	assert.ErrorIs(t, err, roster.ErrTutorNotFound)

	m, err = f.svc.PreviewIntroduction(context.Background(), desk.Request{StudentID: "11", TutorEmail: "alice.bernard@example.com"})
	require.NoError(t, err)
	assert.Contains(t, m.HTMLBody, "Adresse : Visio")
	assert.Empty(t, m.Attachments, "no results PDF for this student")
	assert.NotContains(t, m.HTMLBody, "data:image/png", "unknown sender has no signature")
}

func TestService_Proposal(t *testing.T) {
	t.Parallel()

	f := loaded(t)
	req := desk.Request{StudentID: "10", Emails: []string{"jean.martin@example.com", " ", "other@example.com"}, Sender: manon}

	doc, err := f.svc.Proposal(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Proposition_Élodie_4e.emltpl", doc.Name)
	assert.Equal(t, "message/rfc822", doc.ContentType)
	assert.Contains(t, string(doc.Data), "Bcc: jean.martin@example.com, other@example.com")

	req.Test = true
	res, err := f.svc.SendProposal(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)

	sent := f.out.last(t)
	assert.Equal(t, []string{f.svc.TestAddress()}, sent.To)
	assert.Empty(t, sent.Bcc)
	assert.True(t, strings.HasPrefix(sent.Subject, "[TEST] Proposition d'élève - Niveau 4e"))
	assert.Contains(t, sent.HTMLBody, "Manon")

	_, err = f.svc.SendProposal(context.Background(), desk.Request{StudentID: "10", Sender: manon})
	assert.Error(t, err)
}

func TestService_Mandat(t *testing.T) {
	t.Parallel()

	f := loaded(t)

	_, err := f.svc.MandatDocument(context.Background(), desk.Request{StudentID: "12"})
	assert.ErrorIs(t, err, desk.ErrMissingEmail)

	doc, err := f.svc.MandatDocument(context.Background(), desk.Request{StudentID: "10"})
	require.NoError(t, err)
	assert.Equal(t, "Mandat_10.emltpl", doc.Name)
	assert.NotContains(t, string(doc.Data), "text/html")

	res, err := f.svc.SendMandat(context.Background(), desk.Request{StudentID: "10", Sender: manon})
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)

	sent := f.out.last(t)
	assert.Equal(t, compose.MandatSubject, sent.Subject)
	assert.Equal(t, []string{"parent@example.com"}, sent.To)
	require.Len(t, sent.Attachments, 1)
	assert.Equal(t, compose.MandatAttachmentName, sent.Attachments[0].Name)
	assert.Equal(t, "%PDF-mandat", string(sent.Attachments[0].Data))
	assert.NotEmpty(t, sent.HTMLBody)

	res, err = f.svc.SendMandat(context.Background(), desk.Request{StudentID: "10", Sender: "someone@gmail.com"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Expéditeur non reconnu: someone@gmail.com", res.Message)
}

func TestService_Profile(t *testing.T) {
	t.Parallel()

	f := loaded(t)
	req := desk.Request{StudentID: "10", Sender: manon}

	deckDoc, err := f.svc.ProfileDeck(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Élodie_Durand_profil.pptx", deckDoc.Name)

	deck, err := slides.Open(deckDoc.Data)
	require.NoError(t, err)
	name, err := deck.ShapeText(0, profile.ShapeName)
	require.NoError(t, err)
	assert.Equal(t, "Élodie DURAND", name)
	pole, err := deck.ShapeText(0, profile.ShapeVisualVerbal)
	require.NoError(t, err)
	assert.Equal(t, "Visuel", pole)

	doc, err := f.svc.ProfileDocument(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "profil_Élodie_Durand.emltpl", doc.Name)

	res, err := f.svc.SendProfile(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)
	sent := f.out.last(t)
	assert.Equal(t, "Résultats test de profil de Élodie", sent.Subject)
	require.Len(t, sent.Attachments, 2)
	assert.Equal(t, profile.ContentTypePPTX, sent.Attachments[0].ContentType)
	assert.Equal(t, desk.StepsImage, sent.Attachments[1].ContentID)
	assert.Contains(t, sent.HTMLBody, "cid:"+desk.StepsImage)

	_, err = f.svc.ProfileDeck(context.Background(), desk.Request{StudentID: "11"})
	assert.ErrorIs(t, err, roster.ErrProfileNotFound)
}

func TestService_ProfileTemplateMissing(t *testing.T) {
	t.Parallel()

	src := files(t)
	delete(src, paths.ProfileTemplate)
	f := newFixture(t, src)
	f.svc.Load(context.Background())

	_, err := f.svc.ProfileDeck(context.Background(), desk.Request{StudentID: "10"})
	assert.ErrorIs(t, err, drive.ErrFileNotFound)
}
