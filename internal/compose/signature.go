package compose

import (
	"context"
	"encoding/base64"
	"io"
	"io/fs"
	"strings"

	"github.com/a-h/templ"
)

// Signatures looks up signature images in a file system.
// A nil *Signatures or a nil file system yields no signatures.
type Signatures struct {
	fsys fs.FS
}

func NewSignatures(fsys fs.FS) *Signatures {
	return &Signatures{fsys: fsys}
}

// SignatureFile returns the image name used for sender.
func SignatureFile(sender string) string {
	prefix, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(sender)), ".")
	if prefix == "" {
		return ""
	}
	return "Signature_" + prefix + ".png"
}

// DataURI returns sender's signature as a PNG data URI, or "".
func (s *Signatures) DataURI(sender string) string {
	if s == nil || s.fsys == nil {
		return ""
	}
	name := SignatureFile(sender)
	if name == "" {
		return ""
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil || len(data) == 0 {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// Signature renders the dashed signature block, or nothing for an empty URI.
func Signature(dataURI string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if dataURI == "" {
			return nil
		}
		h := &htmlWriter{w: w}
		h.raw(`--<br><img src="`)
		h.text(dataURI)
		h.raw(`" style="max-width: 350px; margin-top: 10px;" alt="Signature">`)
		return h.err
	})
}
