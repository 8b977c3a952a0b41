package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslator struct {
	calls int32
	err   error
}

func (s *stubTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("%s:%s", target, text), nil
}

func TestTranslateTextEmptyShortCircuits(t *testing.T) {
	stub := &stubTranslator{}
	svc := NewTranslationService(stub, NewCache())

	got := svc.TranslateText(context.Background(), "", "ar", "")
	assert.Equal(t, "", got)
	assert.Zero(t, atomic.LoadInt32(&stub.calls))
}

func TestTranslateTextSameLanguageShortCircuits(t *testing.T) {
	stub := &stubTranslator{}
	svc := NewTranslationService(stub, NewCache())

	got := svc.TranslateText(context.Background(), "hi", "en", "en")
	assert.Equal(t, "hi", got)
	assert.Zero(t, atomic.LoadInt32(&stub.calls))
}

func TestTranslateTextFailureReturnsOriginal(t *testing.T) {
	stub := &stubTranslator{err: errors.New("endpoint down")}
	svc := NewTranslationService(stub, NewCache())

	got := svc.TranslateText(context.Background(), "Hello", "ar", "")
	assert.Equal(t, "Hello", got)
}

func TestTranslateTextCachesResult(t *testing.T) {
	stub := &stubTranslator{}
	svc := NewTranslationService(stub, NewCache())

	first := svc.TranslateText(context.Background(), "Hello", "ar", "en")
	second := svc.TranslateText(context.Background(), "Hello", "ar", "en")

	assert.Equal(t, "ar:Hello", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls))
	assert.Equal(t, 1, svc.CacheStats().Size)
}

func TestTranslateTextFailureNotCached(t *testing.T) {
	stub := &stubTranslator{err: errors.New("timeout")}
	svc := NewTranslationService(stub, NewCache())

	svc.TranslateText(context.Background(), "Hello", "ar", "en")
	assert.Equal(t, 0, svc.CacheStats().Size)

	// Endpoint recovers, the next call goes through.
	stub.err = nil
	got := svc.TranslateText(context.Background(), "Hello", "ar", "en")
	assert.Equal(t, "ar:Hello", got)
}

func TestTranslateTextsPreservesOrder(t *testing.T) {
	stub := &stubTranslator{}
	svc := NewTranslationService(stub, NewCache())

	got := svc.TranslateTexts(context.Background(), []string{"one", "", "three"}, "fr", "en")
	assert.Equal(t, []string{"fr:one", "", "fr:three"}, got)
}

func TestTranslateSolutions(t *testing.T) {
	stub := &stubTranslator{}
	svc := NewTranslationService(stub, NewCache())

	items := make([]SolutionText, 7)
	for i := range items {
		items[i] = SolutionText{
			Name:    fmt.Sprintf("name-%d", i),
			Summary: fmt.Sprintf("summary-%d", i),
		}
	}

	got := svc.TranslateSolutions(context.Background(), items, "ar", "en")
	require.Len(t, got, 7)
	for i, item := range got {
		assert.Equal(t, fmt.Sprintf("ar:name-%d", i), item.Name)
		assert.Equal(t, fmt.Sprintf("ar:summary-%d", i), item.Summary)
	}
}

func TestClientEndpointFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewTranslationService(NewClient(srv.URL), NewCache())
	got := svc.TranslateText(context.Background(), "Hello", "ar", "")
	assert.Equal(t, "Hello", got)
}

func TestClientTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)

		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text", req.Format)
		assert.Equal(t, "auto", req.Source)

		json.NewEncoder(w).Encode(translateResponse{TranslatedText: "مرحبا"})
	}))
	defer srv.Close()

	svc := NewTranslationService(NewClient(srv.URL), NewCache())
	got := svc.TranslateText(context.Background(), "Hello", "ar", "")
	assert.Equal(t, "مرحبا", got)
}
