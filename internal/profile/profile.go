package profile

import (
	"fmt"
	"strings"

	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/internal/slides"
)

// Pole is one side of a learning-style dichotomy.
type Pole string

const (
	Visual     Pole = "Visuel"
	Verbal     Pole = "Verbal"
	Sensing    Pole = "Sensoriel"
	Intuitive  Pole = "Intuitif"
	Active     Pole = "Actif"
	Reflective Pole = "Réflexif"
	Sequential Pole = "Séquentiel"
	Global     Pole = "Global"
)

var descriptions = map[Pole]string{
	Visual:     "Ton super-pouvoir, c’est la mémoire des images ! Schémas, mindmaps, vidéos, couleurs…",
	Verbal:     "Si c’est expliqué à l’oral ou à l’écrit, tu captes vite !",
	Sensing:    "Tu as un esprit logique et concret. Tu n’aimes pas les imprévus...",
	Intuitive:  "La routine t’ennuie ! Tu aimes découvrir de nouvelles idées...",
	Active:     "Tu apprends en faisant : expérimenter, manipuler, discuter...",
	Reflective: "Tu aimes prendre ton temps pour comprendre en profondeur.",
	Sequential: "Tu préfères apprendre étape par étape, en suivant une logique.",
	Global:     "Tu as besoin de comprendre la vision d’ensemble avant les détails.",
}

// Description is the sentence printed under the pole on the deck.
func (p Pole) Description() string {
	return descriptions[p]
}

// Result holds the dominant pole of each dichotomy.
type Result struct {
	VisualVerbal     Pole `json:"visual_verbal"`
	SensingIntuitive Pole `json:"sensing_intuitive"`
	ActiveReflective Pole `json:"active_reflective"`
	SequentialGlobal Pole `json:"sequential_global"`
}

// Dominant picks the first pole only when its score is strictly greater;
// ties go to the second pole.
func Dominant(p roster.LearningProfile) Result {
	pick := func(a, b float64, first, second Pole) Pole {
		if a > b {
			return first
		}
		return second
	}
	return Result{
		VisualVerbal:     pick(p.Visual, p.Verbal, Visual, Verbal),
		SensingIntuitive: pick(p.Sensing, p.Intuitive, Sensing, Intuitive),
		ActiveReflective: pick(p.Active, p.Reflective, Active, Reflective),
		SequentialGlobal: pick(p.Sequential, p.Global, Sequential, Global),
	}
}

// Shape indexes on the first slide of the results template.
const (
	ShapeVisualVerbal         = 1
	ShapeSensingIntuitive     = 2
	ShapeActiveReflective     = 3
	ShapeVisualVerbalText     = 4
	ShapeSensingIntuitiveText = 5
	ShapeSequentialGlobalText = 6
	ShapeSequentialGlobal     = 7
	ShapeActiveReflectiveText = 9
	ShapeName                 = 10
)

// Fill writes the student's name and dominant poles into the first slide.
func Fill(deck *slides.Deck, p roster.LearningProfile) (Result, error) {
	r := Dominant(p)
	texts := []struct {
		shape int
		text  string
	}{
		{ShapeName, DisplayName(p)},
		{ShapeVisualVerbal, string(r.VisualVerbal)},
		{ShapeSensingIntuitive, string(r.SensingIntuitive)},
		{ShapeActiveReflective, string(r.ActiveReflective)},
		{ShapeSequentialGlobal, string(r.SequentialGlobal)},
		{ShapeVisualVerbalText, r.VisualVerbal.Description()},
		{ShapeSensingIntuitiveText, r.SensingIntuitive.Description()},
		{ShapeSequentialGlobalText, r.SequentialGlobal.Description()},
		{ShapeActiveReflectiveText, r.ActiveReflective.Description()},
	}
	for _, t := range texts {
		if err := deck.SetShapeText(0, t.shape, t.text); err != nil {
			return Result{}, err
		}
	}
	return r, nil
}

// DisplayName is "First LAST".
func DisplayName(p roster.LearningProfile) string {
	return strings.TrimSpace(p.FirstName + " " + strings.ToUpper(p.LastName))
}

// ContentTypePPTX is the MIME type of the filled deck.
const ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

func DeckFileName(p roster.LearningProfile) string {
	return fmt.Sprintf("%s_%s_profil.pptx", p.FirstName, p.LastName)
}

func DocumentFileName(p roster.LearningProfile) string {
	return fmt.Sprintf("profil_%s_%s.emltpl", p.FirstName, p.LastName)
}

// ResultsFileName is the PDF of profile results stored for a student,
// attached to the tutor introduction when present.
func ResultsFileName(firstName string) string {
	return firstName + " résultat profil d'apprentissage.pdf"
}
