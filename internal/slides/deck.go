package slides

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

const (
	presentationPath = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

type entry struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
}

// Deck is an opened presentation.
type Deck struct {
	entries []entry
	index   map[string]int
	slides  []string
}

// Open reads a deck from the bytes of a .pptx file.
func Open(data []byte) (*Deck, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Join(ErrInvalidDeck, err)
	}

	d := &Deck{index: make(map[string]int, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Join(ErrInvalidDeck, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Join(ErrInvalidDeck, err)
		}
		d.index[f.Name] = len(d.entries)
		d.entries = append(d.entries, entry{name: f.Name, method: f.Method, modified: f.Modified, data: raw})
	}

	if _, ok := d.index[presentationPath]; !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidDeck, presentationPath)
	}
	d.slides, err = d.slideOrder()
	if err != nil {
		return nil, err
	}
	return d, nil
}

// SlideCount returns the number of slides.
func (d *Deck) SlideCount() int {
	return len(d.slides)
}

// SetShapeText replaces the text of a shape. The first run of the first
// paragraph receives text; every other run is emptied. A first paragraph
// without runs gets one.
func (d *Deck) SetShapeText(slide, shape int, text string) error {
	i, err := d.slideEntry(slide)
	if err != nil {
		return err
	}
	src := d.entries[i].data
	spans, err := shapeSpans(src)
	if err != nil {
		return err
	}
	if shape < 0 || shape >= len(spans) {
		return fmt.Errorf("%w: slide %d has %d shapes, want index %d", ErrNoShape, slide, len(spans), shape)
	}

	sp := spans[shape]
	rewritten, err := replaceText(src[sp.start:sp.end], text)
	if err != nil {
		return fmt.Errorf("slide %d shape %d: %w", slide, shape, err)
	}

	out := make([]byte, 0, len(src)-int(sp.end-sp.start)+len(rewritten))
	out = append(out, src[:sp.start]...)
	out = append(out, rewritten...)
	out = append(out, src[sp.end:]...)
	d.entries[i].data = out
	return nil
}

// ShapeText returns the text of a shape, paragraphs joined by newlines.
func (d *Deck) ShapeText(slide, shape int) (string, error) {
	i, err := d.slideEntry(slide)
	if err != nil {
		return "", err
	}
	src := d.entries[i].data
	spans, err := shapeSpans(src)
	if err != nil {
		return "", err
	}
	if shape < 0 || shape >= len(spans) {
		return "", fmt.Errorf("%w: slide %d has %d shapes, want index %d", ErrNoShape, slide, len(spans), shape)
	}
	sp := spans[shape]
	return shapeText(src[sp.start:sp.end])
}

// Bytes writes the deck back to a .pptx archive, keeping entry order.
func (d *Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range d.entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: e.method, Modified: e.modified})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Deck) slideEntry(slide int) (int, error) {
	if slide < 0 || slide >= len(d.slides) {
		return 0, fmt.Errorf("%w: index %d of %d", ErrNoSlide, slide, len(d.slides))
	}
	i, ok := d.index[d.slides[slide]]
	if !ok {
		return 0, fmt.Errorf("%w: missing part %s", ErrNoSlide, d.slides[slide])
	}
	return i, nil
}

type presentationXML struct {
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// slideOrder resolves the slide part names in presentation order.
func (d *Deck) slideOrder() ([]string, error) {
	var pres presentationXML
	if err := xml.Unmarshal(d.entries[d.index[presentationPath]].data, &pres); err != nil {
		return nil, errors.Join(ErrInvalidDeck, err)
	}
	relsIdx, ok := d.index[presentationRels]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidDeck, presentationRels)
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(d.entries[relsIdx].data, &rels); err != nil {
		return nil, errors.Join(ErrInvalidDeck, err)
	}

	targets := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		target := r.Target
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join("ppt", target)
		}
		targets[r.ID] = target
	}

	order := make([]string, 0, len(pres.SlideIDs))
	for _, s := range pres.SlideIDs {
		target, ok := targets[s.RID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown slide relationship %q", ErrInvalidDeck, s.RID)
		}
		order = append(order, target)
	}
	return order, nil
}
