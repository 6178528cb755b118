package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

const (
	answerYes  = "y"
	answerSkip = "n"
	answerQuit = "q"
)

// TerminalPrompter implements repositories.Prompter for a human operator.
// On a TTY it renders a huh select form; otherwise it falls back to a
// plain "[y/N/q]" line read so piped input still works.
type TerminalPrompter struct {
	in    *bufio.Reader // shared across prompts so buffered answers survive
	out   io.Writer
	isTTY bool
}

// NewTerminalPrompter creates a prompter bound to the process stdin/stdout.
func NewTerminalPrompter() repositories.Prompter {
	return &TerminalPrompter{
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
		isTTY: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewTerminalPrompterWith creates a prompter over explicit streams.
// The form UI is disabled so scripted input drives the prompt.
func NewTerminalPrompterWith(in io.Reader, out io.Writer) repositories.Prompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out, isTTY: false}
}

// Confirm blocks until the operator answers for the given package.
func (it *TerminalPrompter) Confirm(pkg entities.PackageInfo) (entities.Decision, error) {
	if it.isTTY {
		return it.confirmForm(pkg)
	}
	return it.confirmLine(pkg)
}

// confirmForm renders the confirmation as a select form.
func (it *TerminalPrompter) confirmForm(pkg entities.PackageInfo) (entities.Decision, error) {
	choice := answerSkip

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf(
					"Update %s from %s to %s?",
					pkg.Name, pkg.CurrentVersion, pkg.LatestVersion,
				)).
				Description(pkg.FilePath).
				Options(
					huh.NewOption("update", answerYes),
					huh.NewOption("skip", answerSkip),
					huh.NewOption("quit", answerQuit),
				).
				Value(&choice),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return entities.DecisionQuit, nil
		}
		return entities.DecisionSkip, fmt.Errorf("failed to run prompt form: %w", err)
	}

	return parseAnswer(choice), nil
}

// confirmLine reads a single "[y/N/q]" answer from the input stream.
func (it *TerminalPrompter) confirmLine(pkg entities.PackageInfo) (entities.Decision, error) {
	fmt.Fprintf(it.out,
		"Update %s from %s to %s? [y/N/q]: ",
		pkg.Name, pkg.CurrentVersion, pkg.LatestVersion,
	)

	answer, err := it.in.ReadString('\n')
	if err != nil && answer == "" {
		if errors.Is(err, io.EOF) {
			// Closed stdin ends the interactive run the same way quit does.
			return entities.DecisionQuit, nil
		}
		return entities.DecisionSkip, fmt.Errorf("failed to read answer: %w", err)
	}

	return parseAnswer(answer), nil
}

// parseAnswer maps an operator answer onto a decision. Anything that is
// not an explicit yes or quit means skip.
func parseAnswer(answer string) entities.Decision {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case answerYes:
		return entities.DecisionApply
	case answerQuit:
		return entities.DecisionQuit
	default:
		return entities.DecisionSkip
	}
}
