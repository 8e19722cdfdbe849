package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/internal/profile"
	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/internal/slides"
	"github.com/idir-jpg/study-success-matching/internal/slides/slidestest"
)

func TestDominant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    roster.LearningProfile
		want profile.Result
	}{
		{
			name: "first poles win",
			p:    roster.LearningProfile{Visual: 8, Verbal: 3, Sensing: 7, Intuitive: 2, Active: 9, Reflective: 1, Sequential: 6, Global: 5},
			want: profile.Result{VisualVerbal: profile.Visual, SensingIntuitive: profile.Sensing, ActiveReflective: profile.Active, SequentialGlobal: profile.Sequential},
		},
		{
			name: "ties go to the second pole",
			p:    roster.LearningProfile{Visual: 5, Verbal: 5, Sensing: 4, Intuitive: 4, Active: 0, Reflective: 0, Sequential: 2.5, Global: 2.5},
			want: profile.Result{VisualVerbal: profile.Verbal, SensingIntuitive: profile.Intuitive, ActiveReflective: profile.Reflective, SequentialGlobal: profile.Global},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, profile.Dominant(tt.p))
		})
	}
}

func TestPole_Description(t *testing.T) {
	t.Parallel()

	for _, p := range []profile.Pole{profile.Visual, profile.Verbal, profile.Sensing, profile.Intuitive, profile.Active, profile.Reflective, profile.Sequential, profile.Global} {
		assert.NotEmpty(t, p.Description(), p)
	}
	assert.Equal(t, "Tu aimes prendre ton temps pour comprendre en profondeur.", profile.Reflective.Description())
}

func templateDeck(t *testing.T) *slides.Deck {
	t.Helper()
	shapes := make([]string, 11)
	for i := range shapes {
		shapes[i] = slidestest.Shape("placeholder")
	}
	shapes[8] = slidestest.Picture()
	deck, err := slides.Open(slidestest.Deck(t, shapes...))
	require.NoError(t, err)
	return deck
}

func TestFill(t *testing.T) {
	t.Parallel()

	p := roster.LearningProfile{
		ID: "S1", FirstName: "Léo", LastName: "Petit",
		Visual: 2, Verbal: 6, Sensing: 8, Intuitive: 1, Active: 3, Reflective: 3, Sequential: 9, Global: 4,
	}
	deck := templateDeck(t)
	res, err := profile.Fill(deck, p)
	require.NoError(t, err)
	assert.Equal(t, profile.Verbal, res.VisualVerbal)

	want := map[int]string{
		profile.ShapeName:                 "Léo PETIT",
		profile.ShapeVisualVerbal:         "Verbal",
		profile.ShapeSensingIntuitive:     "Sensoriel",
		profile.ShapeActiveReflective:     "Réflexif",
		profile.ShapeSequentialGlobal:     "Séquentiel",
		profile.ShapeVisualVerbalText:     profile.Verbal.Description(),
		profile.ShapeSensingIntuitiveText: profile.Sensing.Description(),
		profile.ShapeSequentialGlobalText: profile.Sequential.Description(),
		profile.ShapeActiveReflectiveText: profile.Reflective.Description(),
		0:                                 "placeholder",
	}
	for shape, text := range want {
		got, err := deck.ShapeText(0, shape)
		require.NoError(t, err)
		assert.Equal(t, text, got, "shape %d", shape)
	}
}

func TestFill_TemplateMismatch(t *testing.T) {
	t.Parallel()

	deck, err := slides.Open(slidestest.Deck(t, slidestest.Shape("only one")))
	require.NoError(t, err)
	_, err = profile.Fill(deck, roster.LearningProfile{FirstName: "Léo"})
	assert.ErrorIs(t, err, slides.ErrNoShape)
}

func TestFileNames(t *testing.T) {
	t.Parallel()

	p := roster.LearningProfile{FirstName: "Léo", LastName: "Petit"}
	assert.Equal(t, "Léo_Petit_profil.pptx", profile.DeckFileName(p))
	assert.Equal(t, "profil_Léo_Petit.emltpl", profile.DocumentFileName(p))
	assert.Equal(t, "Léo résultat profil d'apprentissage.pdf", profile.ResultsFileName("Léo"))
	assert.Equal(t, "Léo PETIT", profile.DisplayName(p))
}
