package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/pkg/binder"
)

type sendRequest struct {
	StudentID string   `query:"student" form:"student" json:"student"`
	Emails    []string `query:"email" form:"email" json:"emails"`
	Test      bool     `query:"test" form:"test" json:"test"`
	Limit     *int     `query:"limit" form:"-" json:"-"`
	ignored   string
}

func TestQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/matching?student=10&email=a@example.com&email=b@example.com&test=on&limit=5", nil)
	var req sendRequest
	require.NoError(t, binder.Query()(r, &req))
	assert.Equal(t, "10", req.StudentID)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, req.Emails)
	assert.True(t, req.Test)
	require.NotNil(t, req.Limit)
	assert.Equal(t, 5, *req.Limit)
	assert.Empty(t, req.ignored)

	t.Run("values containing commas stay whole", func(t *testing.T) {
		t.Parallel()
		var f struct {
			Levels []string `query:"level"`
		}
		r := httptest.NewRequest(http.MethodGet, "/tutors?level="+url.QueryEscape("collège, lycée"), nil)
		require.NoError(t, binder.Query()(r, &f))
		assert.Equal(t, []string{"collège, lycée"}, f.Levels)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/history?limit=abc", nil)
		var req sendRequest
		assert.ErrorIs(t, binder.Query()(r, &req), binder.ErrInvalidQuery)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		var s string
		assert.ErrorIs(t, binder.Query()(r, &s), binder.ErrInvalidTarget)
		assert.ErrorIs(t, binder.Query()(r, nil), binder.ErrInvalidTarget)
	})
}

func TestForm(t *testing.T) {
	t.Parallel()

	body := url.Values{"student": {"10"}, "email": {"a@example.com", "b@example.com"}, "test": {"oui"}}.Encode()
	r := httptest.NewRequest(http.MethodPost, "/matching/send", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var req sendRequest
	require.NoError(t, binder.Form()(r, &req))
	assert.Equal(t, "10", req.StudentID)
	assert.Len(t, req.Emails, 2)
	assert.True(t, req.Test)

	get := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.ErrorIs(t, binder.Form()(get, &req), binder.ErrNotApplicable)

	empty := httptest.NewRequest(http.MethodPost, "/reload", nil)
	assert.ErrorIs(t, binder.Form()(empty, &req), binder.ErrNotApplicable)

	xml := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<a/>"))
	xml.Header.Set("Content-Type", "application/xml")
	assert.ErrorIs(t, binder.Form()(xml, &req), binder.ErrUnsupportedMediaType)
}

func TestSignals(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/introduction/send", strings.NewReader(`{"student":"11","emails":["x@example.com"],"test":true}`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Datastar-Request", "true")

	var req sendRequest
	require.NoError(t, binder.Signals()(r, &req))
	assert.Equal(t, "11", req.StudentID)
	assert.Equal(t, []string{"x@example.com"}, req.Emails)
	assert.True(t, req.Test)

	plain := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, binder.Signals()(plain, &req), binder.ErrNotApplicable)
}

func TestChain(t *testing.T) {
	t.Parallel()

	body := url.Values{"email": {"a@example.com"}}.Encode()
	r := httptest.NewRequest(http.MethodPost, "/matching/send?student=12", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var req sendRequest
	require.NoError(t, binder.Chain(binder.Query(), binder.Form(), binder.Signals())(r, &req))
	assert.Equal(t, "12", req.StudentID)
	assert.Equal(t, []string{"a@example.com"}, req.Emails)
}
