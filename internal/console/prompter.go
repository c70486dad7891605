package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/storage"
	"github.com/san-kum/reactorsim/internal/viz"
)

// ErrNoInput is returned when the input ends while a prompt is waiting.
var ErrNoInput = errors.New("console: input ended")

// Prompter asks for parameters and slot choices over a line-oriented reader.
// Several answers may be given on one line, separated by spaces.
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	pending []string

	lines   chan readResult
	readErr error
}

type readResult struct {
	line string
	err  error
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLoop feeds lines to the prompter until the reader fails. It runs on
// its own goroutine so a waiting prompt can give up on ctx.
func (p *Prompter) readLoop() {
	for {
		line, err := p.in.ReadString('\n')
		p.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// readLine waits for the next input line or for ctx to be done. Once the
// reader has failed every later call reports the same error.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if p.readErr != nil {
		return "", p.readErr
	}
	if p.lines == nil {
		p.lines = make(chan readResult, 1)
		go p.readLoop()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.lines:
		if r.err != nil {
			p.readErr = r.err
		}
		return r.line, r.err
	}
}

// next returns the next answer token, reading more lines as needed.
func (p *Prompter) next(ctx context.Context) (string, error) {
	for len(p.pending) == 0 {
		line, err := p.readLine(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return "", err
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}

		if line = strings.TrimSpace(line); line != "" {
			tokens, splitErr := shellquote.Split(line)
			if splitErr != nil {
				p.warn(fmt.Sprintf("Could not read %q: %v", line, splitErr))
			} else {
				p.pending = tokens
			}
		}

		if len(p.pending) == 0 && err != nil {
			return "", ErrNoInput
		}
	}

	tok := p.pending[0]
	p.pending = p.pending[1:]
	return tok, nil
}

func (p *Prompter) say(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *Prompter) warn(s string) {
	fmt.Fprintln(p.out, viz.Warn.Render(s))
}

func (p *Prompter) yesNo(ctx context.Context, question string) (bool, error) {
	p.say(question)
	for {
		tok, err := p.next(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(tok) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.warn("Please answer Y or N.")
	}
}

// ReuseStored lists the filled slots and asks whether to use one of them.
func (p *Prompter) ReuseStored(ctx context.Context, slots storage.Slots) (bool, error) {
	WriteSlots(p.out, slots, false)
	return p.yesNo(ctx, "Would you like to use one of the stored data sets?(Y/N)")
}

// ChooseSlot asks for a slot number until a valid one is given. With
// requireFilled only filled slots are accepted; otherwise all slots are
// listed first and any of them may be picked for overwriting.
func (p *Prompter) ChooseSlot(ctx context.Context, slots storage.Slots, requireFilled bool) (int, error) {
	retry := fmt.Sprintf("Please re-enter a data set from 1-%d.", storage.Capacity)
	if requireFilled {
		p.say(fmt.Sprintf("Please choose a data set to use (1-%d).", storage.Capacity))
	} else {
		WriteSlots(p.out, slots, true)
		p.say(fmt.Sprintf("Please choose a data set to overwrite (1-%d).", storage.Capacity))
	}

	for {
		tok, err := p.next(ctx)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(tok)
		if err != nil || storage.CheckSlot(n) != nil {
			p.warn(retry)
			continue
		}
		if requireFilled && slots[n-1].IsEmpty() {
			p.warn(fmt.Sprintf("Data set %d is empty. %s", n, retry))
			continue
		}
		return n, nil
	}
}

var paramPrompts = []string{
	"Please enter a value for flow rate (m^3/min).",
	"Please enter a value for the concentration of the input pipe (mg/ m^3).",
	"Please enter the initial concentration of substance in reactor (mg/m^3).",
	"Please enter the volume of the reactor (m^3).",
	"Please enter the final time for transient response analysis in minutes.",
	"Please enter the time increment step in minutes.",
}

// ReadParams prompts for all six scalars and starts over until the set
// passes validation.
func (p *Prompter) ReadParams(ctx context.Context) (reactor.Params, error) {
	for {
		var values [6]float64
		for i, prompt := range paramPrompts {
			v, err := p.readFloat(ctx, prompt)
			if err != nil {
				return reactor.Params{}, err
			}
			values[i] = v
		}

		params := reactor.Params{
			FlowRate:             values[0],
			InletConcentration:   values[1],
			InitialConcentration: values[2],
			Volume:               values[3],
			FinalTime:            values[4],
			TimeStep:             values[5],
		}
		err := params.Validate()
		if err == nil {
			return params, nil
		}

		// stale answers typed ahead belong to the rejected set
		p.pending = nil
		p.warn(err.Error())
		p.warn("Please enter values again.")
	}
}

func (p *Prompter) readFloat(ctx context.Context, prompt string) (float64, error) {
	p.say(prompt)
	for {
		tok, err := p.next(ctx)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err == nil {
			return v, nil
		}
		p.warn(fmt.Sprintf("%q is not a number. %s", tok, prompt))
	}
}

func (p *Prompter) ConfirmSave(ctx context.Context) (bool, error) {
	return p.yesNo(ctx, "Would you like to save the new input values? (Y/N)")
}

// WriteSlots prints one line per filled slot. Empty slots are listed by
// number only when showEmpty is set.
func WriteSlots(w io.Writer, slots storage.Slots, showEmpty bool) {
	for i, s := range slots {
		params, ok := s.Params()
		if !ok {
			if showEmpty {
				fmt.Fprintf(w, "data set %d\n\n", i+1)
			}
			continue
		}
		fmt.Fprintf(w, "data set %d\tq = %.3f\tc in = %.3f\tc0 = %.3f\tvolume = %.3f\tfinal time = %.3f\ttime increment step = %.3f\n\n",
			i+1, params.FlowRate, params.InletConcentration, params.InitialConcentration,
			params.Volume, params.FinalTime, params.TimeStep)
	}
}
