package progress

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/pkg/display"
)

func TestLogRedirection(t *testing.T) {
	buf := &bytes.Buffer{}
	s, err := New(
		WithSurface(display.NewTerminal(buf)),
		WithAutoRefresh(false),
		WithRedirectLog(true),
	)
	require.NoError(t, err)
	s.Add("job", WithTotal(10))

	prev := log.Writer()
	require.NoError(t, s.Start())
	assert.NotEqual(t, prev, log.Writer(), "log output rerouted while running")

	log.SetFlags(0)
	defer log.SetFlags(log.LstdFlags)
	log.Print("interjected")

	assert.Contains(t, buf.String(), "interjected\n")

	s.Stop()
	assert.Equal(t, prev, log.Writer(), "log output restored on stop")
}

func TestStdoutRedirection(t *testing.T) {
	buf := &bytes.Buffer{}
	s, err := New(
		WithSurface(display.NewTerminal(buf)),
		WithAutoRefresh(false),
		WithRedirectLog(false),
		WithRedirectStdout(true),
	)
	require.NoError(t, err)
	s.Add("job", WithTotal(10))

	prev := os.Stdout
	require.NoError(t, s.Start())
	assert.NotEqual(t, prev, os.Stdout)

	fmt.Println("out of band")
	s.Stop() // drains the pipe before settling the final frame

	assert.Equal(t, prev, os.Stdout, "stdout restored on stop")
	assert.Contains(t, buf.String(), "out of band\n")

	// The line must sit above the final frame, not below it.
	out := buf.String()
	assert.Less(t, strings.LastIndex(out, "out of band"), strings.LastIndex(out, "job"))
}
