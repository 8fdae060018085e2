package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/roster"
)

// Input reads one line after printing a prompt. It returns io.EOF when input
// is exhausted.
type Input interface {
	ReadLine(prompt string) (string, error)
}

// EncounterFunc produces a fresh roster whenever the session has none:
// at startup and after "newgame".
type EncounterFunc func(ctx context.Context) (*roster.Roster, error)

// Run drives the prompt loop until quit, bail, end of input or cancellation.
func (s *Session) Run(ctx context.Context, in Input, out io.Writer, next EncounterFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.Empty() {
			r, err := next(ctx)
			if errors.Is(err, ErrQuit) || errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			s.SetRoster(r)
			logger.Info("Session started", "entries", len(r.Entries), "xp", r.XP)
		}

		fmt.Fprintf(out, "\n\n%s", s.Listing())
		line, err := in.ReadLine("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		res := s.Execute(line)
		if len(res.Lines) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n\n%s\n", res)
		if res.Done {
			return nil
		}
	}
}
