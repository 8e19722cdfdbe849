package graph

// Message is the Graph message resource, limited to the fields the desk sets.
type Message struct {
	Subject       string           `json:"subject"`
	Body          ItemBody         `json:"body"`
	ToRecipients  []Recipient      `json:"toRecipients"`
	CcRecipients  []Recipient      `json:"ccRecipients,omitempty"`
	BccRecipients []Recipient      `json:"bccRecipients,omitempty"`
	Attachments   []FileAttachment `json:"attachments,omitempty"`
}

type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

type EmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// FileAttachment is sent inline in the sendMail payload; ContentBytes is
// base64 encoded by encoding/json.
type FileAttachment struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType,omitempty"`
	ContentBytes []byte `json:"contentBytes"`
	ContentID    string `json:"contentId,omitempty"`
	IsInline     bool   `json:"isInline,omitempty"`
}

const fileAttachmentType = "#microsoft.graph.fileAttachment"

// NewFileAttachment builds a file attachment; a non-empty contentID makes it
// inline.
func NewFileAttachment(name, contentType string, data []byte, contentID string) FileAttachment {
	return FileAttachment{
		ODataType:    fileAttachmentType,
		Name:         name,
		ContentType:  contentType,
		ContentBytes: data,
		ContentID:    contentID,
		IsInline:     contentID != "",
	}
}

// Recipients converts addresses to Graph recipients, never returning nil.
func Recipients(addrs []string) []Recipient {
	out := make([]Recipient, len(addrs))
	for i, a := range addrs {
		out[i] = Recipient{EmailAddress: EmailAddress{Address: a}}
	}
	return out
}

type sendMailRequest struct {
	Message         Message `json:"message"`
	SaveToSentItems bool    `json:"saveToSentItems"`
}
