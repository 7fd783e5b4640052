package progress

import (
	"bufio"
	"log"
	"os"
	"strings"
)

// guardWriter routes writes through the session's interleaving guard, one
// line per Write call. The standard log package emits exactly one
// newline-terminated line per Output call, which fits this contract.
type guardWriter struct {
	s *Session
}

func (w *guardWriter) Write(p []byte) (int, error) {
	w.s.WriteLine(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func (s *Session) installRedirects() {
	if s.redirectLog {
		s.prevLogOut = log.Writer()
		log.SetOutput(&guardWriter{s: s})
	}
	if s.redirectStdout {
		r, w, err := os.Pipe()
		if err != nil {
			s.logger.Printf("progress: stdout redirect: %v", err)
			return
		}
		s.prevStdout = os.Stdout
		os.Stdout = w
		s.pipeW = w

		s.copyWG.Add(1)
		go func() {
			defer s.copyWG.Done()
			defer r.Close()
			sc := bufio.NewScanner(r)
			for sc.Scan() {
				s.WriteLine(sc.Text())
			}
		}()
	}
}

// restoreRedirects undoes installRedirects exactly, draining any output
// still in flight through the stdout pipe before returning.
func (s *Session) restoreRedirects() {
	if s.prevLogOut != nil {
		log.SetOutput(s.prevLogOut)
		s.prevLogOut = nil
	}
	if s.pipeW != nil {
		os.Stdout = s.prevStdout
		s.pipeW.Close()
		s.copyWG.Wait()
		s.pipeW = nil
		s.prevStdout = nil
	}
}
