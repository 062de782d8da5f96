package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("gone")

func TestResponder_UsesMapperThenFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	responder := NewResponder(func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errGone) {
			return NewNotFoundProblem("order", 7), true
		}
		return ProblemDetail{}, false
	})

	router := gin.New()
	router.GET("/mapped", func(c *gin.Context) { responder.RespondError(c, errGone) })
	router.GET("/raw", func(c *gin.Context) { responder.RespondError(c, errors.New("boom")) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mapped", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeNotFound, body.Type)
	assert.Equal(t, "/mapped", body.Instance)
	assert.Contains(t, body.Detail, "'7'")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDecode(t *testing.T) {
	p, ok := Decode([]byte(`{"type":"/problems/validation-error","title":"Validation Error","status":400,"fields":{"title":"required"}}`))
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Equal(t, "required", p.Fields["title"])

	_, ok = Decode([]byte(`not json`))
	assert.False(t, ok)
	_, ok = Decode([]byte(`{"id":1}`))
	assert.False(t, ok)
}

func TestWithFieldCopies(t *testing.T) {
	base := ErrValidation.WithField("title", "required")
	next := base.WithField("price", "must be >= 0")
	assert.Len(t, base.Fields, 1)
	assert.Len(t, next.Fields, 2)
}
