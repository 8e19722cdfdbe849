package slides

import "errors"

var (
	ErrInvalidDeck  = errors.New("slides: invalid pptx file")
	ErrNoSlide      = errors.New("slides: slide not found")
	ErrNoShape      = errors.New("slides: shape not found")
	ErrNoTextFrame  = errors.New("slides: shape has no text frame")
	ErrMalformedXML = errors.New("slides: malformed slide xml")
)
