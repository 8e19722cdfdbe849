package web

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// JSONResponse is the envelope of every JSON answer.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Meta  any          `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON wraps v in the data field with a 200 status.
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
}

// JSONWithMeta adds a meta object next to the data.
func JSONWithMeta(v, meta any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v, Meta: meta}}
}

// JSONError answers with the status and message classified from err.
func JSONError(err error) Response {
	info := classifyError(err)
	return jsonResponse{
		status: info.StatusCode,
		body:   JSONResponse{Error: &ErrorDetail{Code: info.Code, Message: info.Message}},
	}
}

type attachmentResponse struct {
	name        string
	contentType string
	data        []byte
}

func (a attachmentResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("Content-Disposition", contentDisposition(a.name))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(a.data)
	return err
}

// Attachment sends data as a file download named name.
func Attachment(name, contentType string, data []byte) Response {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return attachmentResponse{name: name, contentType: contentType, data: data}
}

// contentDisposition keeps non-ASCII file names intact through the
// RFC 2231 filename* parameter.
func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return fmt.Sprintf("attachment; filename=%q", "download")
}
