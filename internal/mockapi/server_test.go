// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_CRUD(t *testing.T) {
	s := New(Sample(3)...)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 3)

	rec = do(t, h, http.MethodPost, "/todos", `{"title":"abc","completed":false}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "abc", created.Title)

	rec = do(t, h, http.MethodPut, "/todos/4", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.Todos()[3].Completed)
	assert.Equal(t, "abc", s.Todos()[3].Title)

	rec = do(t, h, http.MethodGet, "/todos/4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/todos/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, s.Todos(), 3)
	assert.Equal(t, 2, s.Todos()[0].ID)

	assert.Equal(t, 6, s.Requests())
}

func TestServer_NotFound(t *testing.T) {
	h := New(Sample(1)...).Handler()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/todos/99", ""},
		{http.MethodGet, "/todos/abc", ""},
		{http.MethodPut, "/todos/99", `{"completed":true}`},
		{http.MethodDelete, "/todos/99", ""},
	} {
		rec := do(t, h, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestServer_FailNext(t *testing.T) {
	s := New(Sample(2)...)
	h := s.Handler()
	s.FailNext(2)

	// Reads are never failed.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/todos", "").Code)

	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodDelete, "/todos/1", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodDelete, "/todos/1", "").Code)
	assert.Len(t, s.Todos(), 2)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/todos/1", "").Code)
	assert.Len(t, s.Todos(), 1)
}

func TestServer_BadBody(t *testing.T) {
	h := New().Handler()
	rec := do(t, h, http.MethodPost, "/todos", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSample(t *testing.T) {
	todos := Sample(25)
	assert.Len(t, todos, 25)
	assert.Equal(t, 1, todos[0].ID)
	assert.Equal(t, 2, todos[24].UserID)
	assert.True(t, todos[2].Completed)
}
