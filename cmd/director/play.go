package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/saves"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/turn"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play a session on stdin and stdout.

Commands:
  /save [slot]   save the session, generating a slot name when omitted
  /load <slot>   restore a slot
  /saves         list slots
  /restart       start over
  /quit          exit`,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	s := &session{
		game:  a.game,
		saves: a.saves,
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
		render: func(md string) string {
			rendered, err := renderer.Render(md)
			if err != nil {
				return md + "\n"
			}
			return rendered
		},
	}
	return s.run(ctx)
}

var (
	playerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	systemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// session drives one terminal game
type session struct {
	game   turn.Service
	saves  saves.Service
	in     *bufio.Scanner
	out    io.Writer
	render func(markdown string) string

	// shown is the id of the last story entry printed
	shown int64
}

func (s *session) run(ctx context.Context) error {
	snap, err := s.game.GetSnapshot(ctx, &turn.GetSnapshotInput{})
	if err != nil {
		return err
	}

	if snap.State.Game.Phase == entities.PhaseOnboarding {
		st, err := s.onboard(ctx)
		if err != nil {
			return err
		}
		if st == nil {
			return nil
		}
		snap.State = st
	}
	s.printNew(snap.State)

	for {
		line, ok := s.prompt("> ")
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		quit, err := s.handle(ctx, line)
		if err != nil {
			s.printError(err)
		}
		if quit {
			return nil
		}
	}
}

// handle runs one line of input and reports whether the player quit
func (s *session) handle(ctx context.Context, line string) (bool, error) {
	if !strings.HasPrefix(line, "/") {
		out, err := s.game.SubmitPlayerAction(ctx, &turn.SubmitPlayerActionInput{Text: line})
		if err != nil {
			return false, err
		}
		s.printNew(out.State)
		return false, nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil

	case "/save":
		input := &saves.SaveGameInput{}
		if len(fields) > 1 {
			input.SlotID = fields[1]
		}
		out, err := s.saves.SaveGame(ctx, input)
		if err != nil {
			return false, err
		}
		s.system(fmt.Sprintf("Saved to %s.", out.Summary.ID))

	case "/load":
		if len(fields) < 2 {
			return false, errors.InvalidArgument("usage: /load <slot>")
		}
		out, err := s.saves.LoadGame(ctx, &saves.LoadGameInput{SlotID: fields[1]})
		if err != nil {
			return false, err
		}
		s.system(fmt.Sprintf("Loaded %s (%s, %d turns).", out.Summary.ID, out.Summary.CharacterName, out.Summary.Turns))
		s.shown = 0
		s.printNew(out.State)

	case "/saves":
		out, err := s.saves.ListSaves(ctx, &saves.ListSavesInput{})
		if err != nil {
			return false, err
		}
		if len(out.Summaries) == 0 {
			s.system("No saves.")
		}
		for _, sum := range out.Summaries {
			s.system(fmt.Sprintf("%s  %s  %d turns  %s", sum.ID, sum.CharacterName, sum.Turns, sum.SavedAt.Format("2006-01-02 15:04")))
		}

	case "/restart":
		if _, err := s.game.Restart(ctx, &turn.RestartInput{}); err != nil {
			return false, err
		}
		s.shown = 0
		st, err := s.onboard(ctx)
		if err != nil {
			return false, err
		}
		if st == nil {
			return true, nil
		}
		s.printNew(st)

	default:
		return false, errors.InvalidArgumentf("unknown command %s", fields[0])
	}

	return false, nil
}

// onboard asks for the setup answers and runs the opening turn. A nil state
// means input ended.
func (s *session) onboard(ctx context.Context) (*store.State, error) {
	name, ok := s.prompt("Character name: ")
	if !ok {
		return nil, nil
	}
	backstory, ok := s.prompt("Backstory: ")
	if !ok {
		return nil, nil
	}
	opening, ok := s.prompt("Opening scene: ")
	if !ok {
		return nil, nil
	}

	character := entities.NewCharacter()
	character.Name = name
	character.Backstory = backstory

	out, err := s.game.CompleteOnboarding(ctx, &turn.CompleteOnboardingInput{
		Character:     character,
		World:         entities.NewWorld(),
		OpeningPrompt: opening,
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Onboarding complete", "character", name)
	return out.State, nil
}

func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, playerStyle.Render(label))
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// printNew prints story entries newer than the last one shown
func (s *session) printNew(st *store.State) {
	for _, e := range st.Game.StoryLog {
		if e.ID <= s.shown {
			continue
		}
		s.shown = e.ID

		switch e.Kind {
		case entities.EntryPlayer:
			fmt.Fprintln(s.out, playerStyle.Render("> "+e.Text))
		default:
			fmt.Fprint(s.out, s.render(e.Text))
			if e.ImageURL != "" {
				s.system("[scene image]")
			}
		}
	}
}

func (s *session) system(msg string) {
	fmt.Fprintln(s.out, systemStyle.Render(msg))
}

func (s *session) printError(err error) {
	fmt.Fprintln(s.out, errorStyle.Render(fmt.Sprintf("%s: %s", errors.GetCode(err), errors.GetMessage(err))))
	if errors.IsUnavailable(err) {
		fmt.Fprintln(s.out, systemStyle.Render("The save store is unreachable. Your session is intact; try again."))
	}
}
