// Package transfer downloads remote resources while reporting progress into
// a tracking session. It is the canonical consumer of pkg/progress: one task
// per download, total taken from Content-Length when the server provides it.
package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"tally/pkg/progress"
)

// Immutable
type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 0, // handled by context
		},
	}
}

// Fetch retrieves uri and writes the body to w, tracking progress under a
// task named description. The task is created when the response arrives and
// stopped when the copy ends, whether it succeeded or not.
func (c *Client) Fetch(ctx context.Context, session *progress.Session, description, uri string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", uri, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: bad status: %s", uri, resp.Status)
	}

	opts := []progress.TaskOption{}
	if resp.ContentLength > 0 {
		opts = append(opts, progress.WithTotal(float64(resp.ContentLength)))
	}
	id := session.Add(description, opts...)
	defer session.StopTask(id)

	pw := &progressWriter{session: session, id: id}
	if _, err := io.Copy(io.MultiWriter(w, pw), resp.Body); err != nil {
		return fmt.Errorf("reading %s: %w", uri, err)
	}
	return nil
}

// progressWriter advances the task by every chunk that passes through.
//
// Mutable
type progressWriter struct {
	session *progress.Session
	id      progress.TaskID
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	if err := pw.session.Advance(pw.id, float64(n)); err != nil {
		return n, err
	}
	return n, nil
}
