package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/reactorsim/internal/analysis"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/solver"
	"github.com/san-kum/reactorsim/internal/storage"
	"github.com/san-kum/reactorsim/internal/viz"
)

var (
	// ErrNoStore indicates a session started without an open record store.
	ErrNoStore = errors.New("session: record store not open")
	// ErrConflictingSource is returned when both a preset and a slot are
	// preselected.
	ErrConflictingSource = errors.New("session: preset and slot are mutually exclusive")
)

// rule is the width of the separators between output sections.
const rule = 60

type State int

const (
	StateInit State = iota
	StateAcquire
	StateCompute
	StatePresent
	StateDecideSave
	StateSave
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAcquire:
		return "acquire"
	case StateCompute:
		return "compute"
	case StatePresent:
		return "present"
	case StateDecideSave:
		return "decide-save"
	case StateSave:
		return "save"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Input supplies the user's answers. Each call returns ctx.Err() if ctx is
// done before an answer arrives.
type Input interface {
	ReuseStored(ctx context.Context, slots storage.Slots) (bool, error)
	ChooseSlot(ctx context.Context, slots storage.Slots, requireFilled bool) (int, error)
	ReadParams(ctx context.Context) (reactor.Params, error)
	ConfirmSave(ctx context.Context) (bool, error)
}

// Store is the part of the record store a session needs.
type Store interface {
	Slots() storage.Slots
	Select(n int) (reactor.Params, error)
	Overwrite(n int, p reactor.Params) error
}

// Report describes what one run did.
type Report struct {
	Params    reactor.Params
	Source    string
	Bounds    analysis.Bounds
	Errors    analysis.ErrorStats
	SavedSlot int
	Trace     []State
}

type Option func(*Session)

// WithSlot uses stored slot n without prompting for parameters.
func WithSlot(n int) Option {
	return func(s *Session) { s.slot = n }
}

// WithPreset uses p without prompting for parameters.
func WithPreset(name string, p reactor.Params) Option {
	return func(s *Session) {
		s.presetName = name
		s.preset = &p
	}
}

func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// Session drives one acquire, compute, present and save cycle.
type Session struct {
	store    Store
	input    Input
	renderer viz.Renderer
	out      io.Writer

	slot       int
	preset     *reactor.Params
	presetName string
}

func New(store Store, input Input, renderer viz.Renderer, opts ...Option) *Session {
	s := &Session{
		store:    store,
		input:    input,
		renderer: renderer,
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run walks the states until done. Cancellation is honored between states.
func (s *Session) Run(ctx context.Context) (*Report, error) {
	rep := &Report{}
	var sol *solver.Solution

	state := StateInit
	for {
		rep.Trace = append(rep.Trace, state)
		if state == StateDone {
			return rep, nil
		}
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("%s: %w", state, err)
		}

		var err error
		switch state {
		case StateInit:
			if s.store == nil {
				return rep, ErrNoStore
			}
			if s.preset != nil && s.slot != 0 {
				return rep, fmt.Errorf("%w: preset %s, slot %d", ErrConflictingSource, s.presetName, s.slot)
			}
			state = StateAcquire

		case StateAcquire:
			rep.Params, rep.Source, err = s.acquire(ctx)
			state = StateCompute

		case StateCompute:
			sol, err = solver.Solve(rep.Params)
			state = StatePresent

		case StatePresent:
			err = s.present(sol, rep)
			state = StateDecideSave

		case StateDecideSave:
			var save bool
			save, err = s.input.ConfirmSave(ctx)
			state = StateDone
			if save {
				state = StateSave
			}

		case StateSave:
			rep.SavedSlot, err = s.save(ctx, rep.Params)
			if err == nil {
				sol.Reset()
			}
			state = StateDone
		}

		if err != nil {
			return rep, fmt.Errorf("%s: %w", rep.Trace[len(rep.Trace)-1], err)
		}
	}
}

func (s *Session) acquire(ctx context.Context) (reactor.Params, string, error) {
	switch {
	case s.preset != nil:
		return *s.preset, "preset " + s.presetName, nil
	case s.slot != 0:
		p, err := s.store.Select(s.slot)
		return p, fmt.Sprintf("slot %d", s.slot), err
	}

	slots := s.store.Slots()
	if slots.Any() {
		reuse, err := s.input.ReuseStored(ctx, slots)
		if err != nil {
			return reactor.Params{}, "", err
		}
		if reuse {
			n, err := s.input.ChooseSlot(ctx, slots, true)
			if err != nil {
				return reactor.Params{}, "", err
			}
			p, err := s.store.Select(n)
			return p, fmt.Sprintf("slot %d", n), err
		}
	}

	p, err := s.input.ReadParams(ctx)
	return p, "input", err
}

func (s *Session) present(sol *solver.Solution, rep *Report) error {
	b, err := analysis.AxisBounds(sol)
	if err != nil {
		return err
	}
	rep.Bounds = b
	rep.Errors = analysis.Compare(sol)

	if s.renderer != nil {
		if err := s.renderer.Render(viz.TransientChart(sol, b)); err != nil {
			return err
		}
	}
	fmt.Fprintln(s.out, viz.Separator(rule))
	fmt.Fprintln(s.out, viz.ParamsTable(sol.Params))
	fmt.Fprintln(s.out, viz.Separator(rule))
	fmt.Fprintln(s.out, viz.ErrorTable(rep.Errors))
	return nil
}

func (s *Session) save(ctx context.Context, p reactor.Params) (int, error) {
	n, err := s.input.ChooseSlot(ctx, s.store.Slots(), false)
	if err != nil {
		return 0, err
	}
	if err := s.store.Overwrite(n, p); err != nil {
		return 0, err
	}
	fmt.Fprintln(s.out, viz.Status.Render("The data has been saved."))
	return n, nil
}
