package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// Prompter reads answers to prompts line by line. Human players and the
// interactive evaluator share one so they never race for input.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// Ask prints prompt and returns the next trimmed, lower-cased line.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.ToLower(strings.TrimSpace(p.in.Text())), nil
}

// Say prints one line.
func (p *Prompter) Say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// KnownAnswers scores guesses against secrets it was given.
type KnownAnswers struct {
	secrets []string
}

func NewKnownAnswers(secrets ...string) *KnownAnswers {
	return &KnownAnswers{secrets: append([]string(nil), secrets...)}
}

func (k *KnownAnswers) Evaluate(guess string) ([]feedback.Instance, error) {
	out := make([]feedback.Instance, 0, len(k.secrets))
	for _, s := range k.secrets {
		in, err := feedback.For(s, guess)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// AnswerFound drops the solved secret.
func (k *KnownAnswers) AnswerFound(guess string) {
	for i, s := range k.secrets {
		if s == guess {
			k.secrets = append(k.secrets[:i], k.secrets[i+1:]...)
			return
		}
	}
}

// Remaining returns the secrets not found yet.
func (k *KnownAnswers) Remaining() []string {
	return append([]string(nil), k.secrets...)
}

// InputEvaluator asks the user for the feedback of every open board, as
// digits (0 absent, 1 present, 2 correct) or glyphs (_ ? X).
type InputEvaluator struct {
	prompt *Prompter
	boards int
}

func NewInputEvaluator(p *Prompter, boards int) *InputEvaluator {
	return &InputEvaluator{prompt: p, boards: boards}
}

func (e *InputEvaluator) Evaluate(guess string) ([]feedback.Instance, error) {
	out := make([]feedback.Instance, 0, e.boards)
	for len(out) < e.boards {
		line, err := e.prompt.Ask("Result (0 for gray, 1 for yellow, 2 for green, no spaces): ")
		if err != nil {
			return nil, err
		}
		fb, err := feedback.Parse(line)
		if err == nil {
			var in feedback.Instance
			if in, err = feedback.NewInstance(fb, guess); err == nil {
				out = append(out, in)
				continue
			}
		}
		if !errors.Is(err, feedback.ErrInvalidFeedback) && !errors.Is(err, feedback.ErrInvalidWordLength) {
			return nil, err
		}
		e.prompt.Say("Not a valid result: %v", err)
	}
	return out, nil
}

// AnswerFound closes one board.
func (e *InputEvaluator) AnswerFound(string) {
	e.boards--
}
