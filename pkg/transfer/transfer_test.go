package transfer

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/pkg/display"
	"tally/pkg/progress"
)

func newSilentSession(t *testing.T) *progress.Session {
	t.Helper()
	s, err := progress.New(
		progress.WithSurface(display.NewPlain(&bytes.Buffer{})),
		progress.WithAutoRefresh(false),
		progress.WithRedirectLog(false),
	)
	require.NoError(t, err)
	return s
}

func TestFetch(t *testing.T) {
	content := []byte("some large content to test download")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(content)))
		w.WriteHeader(http.StatusOK)
		w.Write(content)
	}))
	defer srv.Close()

	session := newSilentSession(t)
	buf := &bytes.Buffer{}

	err := NewClient().Fetch(context.Background(), session, "blob", srv.URL, buf)
	require.NoError(t, err)
	assert.Equal(t, content, buf.Bytes())

	snap := session.Tasks().Snapshot()
	require.Len(t, snap, 1)
	task := snap[0]
	assert.Equal(t, "blob", task.Description)
	assert.True(t, task.HasTotal)
	assert.Equal(t, float64(len(content)), task.Completed)
	assert.True(t, task.Finished)
	assert.Equal(t, 100.0, task.Percentage)
}

func TestFetchWithoutContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "chunked ")
		flusher.Flush()
		fmt.Fprint(w, "body")
	}))
	defer srv.Close()

	session := newSilentSession(t)
	buf := &bytes.Buffer{}

	err := NewClient().Fetch(context.Background(), session, "blob", srv.URL, buf)
	require.NoError(t, err)
	assert.Equal(t, "chunked body", buf.String())

	snap := session.Tasks().Snapshot()
	require.Len(t, snap, 1)
	task := snap[0]
	assert.False(t, task.HasTotal, "unknown length means an indeterminate task")
	assert.Equal(t, float64(len("chunked body")), task.Completed)
	assert.False(t, task.StopTime.IsZero(), "task stopped once the copy ended")
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	session := newSilentSession(t)
	err := NewClient().Fetch(context.Background(), session, "blob", srv.URL, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
	assert.Empty(t, session.Tasks().Snapshot(), "no task created for a failed request")
}

func TestFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := newSilentSession(t)
	err := NewClient().Fetch(ctx, session, "blob", "http://127.0.0.1:0/nope", &bytes.Buffer{})
	require.Error(t, err)
}
