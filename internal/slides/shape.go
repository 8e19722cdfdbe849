package slides

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"
)

// shapeTags are the shape-tree children that count as shapes.
var shapeTags = []string{"sp", "grpSp", "graphicFrame", "cxnSp", "pic", "contentPart"}

type span struct {
	start, end int64
}

type paragraph struct {
	span
	prefix      string
	closeStart  int64
	endParaPr   int64
	selfClosing bool
	runs        []span
	texts       []string
}

type edit struct {
	span
	repl string
}

// shapeSpans returns the byte range of every shape in the first shape tree.
func shapeSpans(src []byte) ([]span, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))
	var (
		stack []string
		spans []span
		start int64
	)
	tree := -1
	for {
		off := dec.InputOffset()
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrMalformedXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			switch {
			case tree < 0 && t.Name.Local == "spTree":
				tree = len(stack)
			case tree >= 0 && len(stack) == tree+1 && slices.Contains(shapeTags, t.Name.Local):
				start = off
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, ErrMalformedXML
			}
			depth := len(stack)
			stack = stack[:depth-1]
			switch {
			case tree >= 0 && depth == tree:
				return spans, nil
			case tree >= 0 && depth == tree+1 && slices.Contains(shapeTags, t.Name.Local):
				spans = append(spans, span{start: start, end: dec.InputOffset()})
			}
		}
	}
	return spans, nil
}

// paragraphs scans the text body of one shape.
func paragraphs(shape []byte) ([]*paragraph, error) {
	dec := xml.NewDecoder(bytes.NewReader(shape))
	var (
		stack   []string
		paras   []*paragraph
		cur     *paragraph
		tStart  int64
		txBody  bool
		inText  bool
		textBuf strings.Builder
	)
	parent := func() string {
		if len(stack) < 2 {
			return ""
		}
		return stack[len(stack)-2]
	}
	for {
		off := dec.InputOffset()
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrMalformedXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			switch local, p := t.Name.Local, parent(); {
			case local == "txBody":
				txBody = true
			case local == "p" && p == "txBody":
				cur = &paragraph{span: span{start: off}, prefix: t.Name.Space, endParaPr: -1}
				paras = append(paras, cur)
			case cur != nil && local == "endParaRPr" && p == "p":
				cur.endParaPr = off
			case cur != nil && local == "t" && p == "r":
				tStart = off
				inText = true
				textBuf.Reset()
			}
		case xml.CharData:
			if inText {
				textBuf.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, ErrMalformedXML
			}
			local, p := t.Name.Local, parent()
			switch {
			case cur != nil && local == "t" && p == "r":
				cur.runs = append(cur.runs, span{start: tStart, end: dec.InputOffset()})
				cur.texts = append(cur.texts, textBuf.String())
				inText = false
			case cur != nil && local == "p" && p == "txBody":
				cur.closeStart = off
				cur.end = dec.InputOffset()
				cur.selfClosing = cur.closeStart == cur.end
				cur = nil
			}
			stack = stack[:len(stack)-1]
		}
	}
	if !txBody || len(paras) == 0 {
		return nil, ErrNoTextFrame
	}
	return paras, nil
}

func replaceText(shape []byte, text string) ([]byte, error) {
	paras, err := paragraphs(shape)
	if err != nil {
		return nil, err
	}

	var esc bytes.Buffer
	if err := xml.EscapeText(&esc, []byte(text)); err != nil {
		return nil, err
	}

	var edits []edit
	for i, p := range paras {
		tTag := qualify(p.prefix, "t")
		for j, r := range p.runs {
			content := ""
			if i == 0 && j == 0 {
				content = esc.String()
			}
			edits = append(edits, edit{span: r, repl: "<" + tTag + ">" + content + "</" + tTag + ">"})
		}
		if i > 0 || len(p.runs) > 0 {
			continue
		}

		run := "<" + qualify(p.prefix, "r") + "><" + tTag + ">" + esc.String() + "</" + tTag + "></" + qualify(p.prefix, "r") + ">"
		switch {
		case p.selfClosing:
			pTag := qualify(p.prefix, "p")
			edits = append(edits, edit{span: p.span, repl: "<" + pTag + ">" + run + "</" + pTag + ">"})
		case p.endParaPr >= 0:
			edits = append(edits, edit{span: span{p.endParaPr, p.endParaPr}, repl: run})
		default:
			edits = append(edits, edit{span: span{p.closeStart, p.closeStart}, repl: run})
		}
	}

	slices.SortFunc(edits, func(a, b edit) int { return int(b.start - a.start) })
	out := slices.Clone(shape)
	for _, e := range edits {
		out = slices.Concat(out[:e.start], []byte(e.repl), out[e.end:])
	}
	return out, nil
}

func shapeText(shape []byte) (string, error) {
	paras, err := paragraphs(shape)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(paras))
	for i, p := range paras {
		lines[i] = strings.Join(p.texts, "")
	}
	return strings.Join(lines, "\n"), nil
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
