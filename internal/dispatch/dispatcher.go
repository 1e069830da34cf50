// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/uniassist-tui/internal/backend"
	"github.com/jeranaias/uniassist-tui/internal/model"
	"github.com/jeranaias/uniassist-tui/internal/offline"
	"github.com/jeranaias/uniassist-tui/internal/session"
	"github.com/jeranaias/uniassist-tui/internal/telemetry"
)

// Default delays applied before simulated replies.
const (
	DefaultSimulatedDelay = 1500 * time.Millisecond
	DefaultFallbackDelay  = 1000 * time.Millisecond
)

var (
	// ErrNoBackend is the failure reported when live mode has no client.
	ErrNoBackend = errors.New("no backend configured")

	// ErrBackendPanic wraps a panic raised while calling the backend.
	ErrBackendPanic = errors.New("backend call panicked")
)

// Backend sends one message to the assistant API.
type Backend interface {
	Chat(ctx context.Context, req backend.Request) (model.Reply, error)
}

// Recorder stores finished round trips.
type Recorder interface {
	Record(ctx context.Context, rt telemetry.RoundTrip) error
}

// Options configures a Dispatcher.
type Options struct {
	// SimulatedDelay is waited before a demo-mode reply.
	SimulatedDelay time.Duration

	// FallbackDelay is waited after a failure before the fallback reply.
	FallbackDelay time.Duration

	// RequestTimeout bounds one backend call. Zero means no bound beyond
	// the client's own.
	RequestTimeout time.Duration

	// StartSimulated starts the session in demo mode.
	StartSimulated bool

	Logger   zerolog.Logger
	Recorder Recorder

	// Responder produces simulated replies. Defaults to offline.Respond.
	Responder func(input string) model.Reply

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the standard delays with logging disabled.
func DefaultOptions() Options {
	return Options{
		SimulatedDelay: DefaultSimulatedDelay,
		FallbackDelay:  DefaultFallbackDelay,
		RequestTimeout: backend.DefaultTimeout,
		Logger:         zerolog.Nop(),
	}
}

// Dispatcher owns a conversation session.
type Dispatcher struct {
	state   session.State
	backend Backend
	opts    Options
	log     zerolog.Logger

	// ctx is the parent of every backend call; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Dispatcher. b may be nil, in which case every live request
// fails and the session falls back to simulated mode on first use.
func New(b Backend, opts Options) *Dispatcher {
	if opts.Responder == nil {
		opts.Responder = offline.Respond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		state:   session.New(opts.StartSimulated),
		backend: b,
		opts:    opts,
		log:     opts.Logger.With().Str("component", "dispatch").Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// State returns the current session snapshot.
func (d *Dispatcher) State() session.State {
	return d.state
}

// SetDelays updates the simulated and fallback delays for later requests.
func (d *Dispatcher) SetDelays(simulated, fallback time.Duration) {
	d.opts.SimulatedDelay = simulated
	d.opts.FallbackDelay = fallback
}

// Close cancels in-flight backend calls. Their results still arrive, as
// failures.
func (d *Dispatcher) Close() {
	d.cancel()
}

// =============================================================================
// USER ACTIONS
// =============================================================================

// Send submits text. It returns nil and changes nothing when text is blank
// or a request is already outstanding.
func (d *Dispatcher) Send(text string) tea.Cmd {
	history := d.state.History()

	next, ok := session.Submit(d.state, text, d.opts.Now())
	if !ok {
		return nil
	}
	d.state = next

	started := d.opts.Now()
	epoch := d.state.Epoch

	if d.state.Simulated {
		d.log.Debug().Uint64("epoch", epoch).Msg("dispatching simulated request")
		return d.simulate(epoch, text, SourceSimulated, d.opts.SimulatedDelay, started, nil)
	}

	d.log.Debug().Uint64("epoch", epoch).Int("history", len(history)).Msg("dispatching live request")
	return d.call(epoch, text, history, started)
}

// Reset clears the conversation. A request still in flight is not
// cancelled; its result will be discarded when it arrives.
func (d *Dispatcher) Reset() {
	d.state = session.Reset(d.state)
	d.log.Info().Uint64("epoch", d.state.Epoch).Bool("loading", d.state.Loading).Msg("session reset")
}

// Abandon stops waiting for the outstanding request, e.g. when the caller
// driving its commands gives up. The next Send is accepted; the abandoned
// result is discarded if it is ever delivered.
func (d *Dispatcher) Abandon() {
	if !d.state.Loading {
		return
	}
	d.state = session.Abandon(d.state)
	d.log.Info().Uint64("epoch", d.state.Epoch).Msg("request abandoned")
}

// ToggleSimulated switches between demo and live mode.
func (d *Dispatcher) ToggleSimulated() {
	d.state = session.ToggleSimulated(d.state)
	d.log.Info().Bool("simulated", d.state.Simulated).Msg("mode toggled")
}

// CompleteReveal marks a bot message as fully displayed.
func (d *Dispatcher) CompleteReveal(id string) {
	d.state = session.SettleTyping(d.state, id)
}

// =============================================================================
// RESULTS
// =============================================================================

// Update applies a ResultMsg and returns any follow-up command. Other
// messages are ignored.
func (d *Dispatcher) Update(msg tea.Msg) tea.Cmd {
	res, ok := msg.(ResultMsg)
	if !ok {
		return nil
	}

	if res.Epoch != d.state.Epoch {
		d.state = session.Discard(d.state, res.Failed())
		d.log.Info().
			Uint64("result_epoch", res.Epoch).
			Uint64("epoch", d.state.Epoch).
			Bool("failed", res.Failed()).
			Msg("discarding result from earlier session")
		return d.record(res, telemetry.OutcomeDiscarded)
	}

	if res.Failed() {
		d.log.Warn().Err(res.Err).Msg("backend request failed, switching to simulated mode")
		d.state = session.ApplyFailure(d.state, d.opts.Now())
		return d.simulate(res.Epoch, res.Input, SourceFallback, d.opts.FallbackDelay, res.Started, res.Err)
	}

	d.state = session.ApplyReply(d.state, res.Reply, d.opts.Now())
	d.log.Info().
		Str("source", string(res.Source)).
		Str("agent", d.state.CurrentAgent.String()).
		Int("tool_calls", len(res.Reply.ToolCalls)).
		Msg("reply received")

	switch res.Source {
	case SourceFallback:
		return d.record(res, telemetry.OutcomeFallback)
	case SourceSimulated:
		return d.record(res, telemetry.OutcomeSimulated)
	default:
		return d.record(res, telemetry.OutcomeOK)
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// call returns the command that performs the backend request. Panics in the
// backend are reported as failures so loading always ends.
func (d *Dispatcher) call(epoch uint64, text string, history []model.HistoryEntry, started time.Time) tea.Cmd {
	b := d.backend
	parent := d.ctx
	timeout := d.opts.RequestTimeout

	return func() (msg tea.Msg) {
		res := ResultMsg{Epoch: epoch, Input: text, Source: SourceLive, Started: started}
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("%w: %v", ErrBackendPanic, r)
				msg = res
			}
		}()

		if b == nil {
			res.Err = ErrNoBackend
			return res
		}

		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}

		res.Reply, res.Err = b.Chat(ctx, backend.Request{Message: text, History: history})
		return res
	}
}

// simulate returns a command that yields the local responder's reply after
// delay. cause is the failure being covered for, if any.
func (d *Dispatcher) simulate(epoch uint64, text string, source Source, delay time.Duration, started time.Time, cause error) tea.Cmd {
	respond := d.opts.Responder
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ResultMsg{
			Epoch:   epoch,
			Input:   text,
			Source:  source,
			Reply:   respond(text),
			Cause:   cause,
			Started: started,
		}
	})
}

// record returns a command that stores the round trip, or nil when no
// recorder is configured.
func (d *Dispatcher) record(res ResultMsg, outcome telemetry.Outcome) tea.Cmd {
	rec := d.opts.Recorder
	if rec == nil {
		return nil
	}

	mode := telemetry.ModeLive
	if res.Source == SourceSimulated {
		mode = telemetry.ModeSimulated
	}
	rt := telemetry.RoundTrip{
		StartedAt: res.Started,
		Latency:   d.opts.Now().Sub(res.Started),
		Mode:      mode,
		Outcome:   outcome,
		Agent:     res.Reply.Tag(),
		ToolCalls: len(res.Reply.ToolCalls),
		ErrorKind: errorKind(res.Err),
	}
	if res.Cause != nil {
		rt.ErrorKind = errorKind(res.Cause)
	}
	log := d.log

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rec.Record(ctx, rt); err != nil {
			log.Warn().Err(err).Msg("failed to record telemetry")
		}
		return nil
	}
}

// errorKind classifies err without including any message text.
func errorKind(err error) string {
	var statusErr *backend.StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("status_%d", statusErr.Status)
	case errors.Is(err, backend.ErrMalformedReply):
		return "malformed_reply"
	case errors.Is(err, ErrNoBackend):
		return "no_backend"
	case errors.Is(err, ErrBackendPanic):
		return "panic"
	default:
		return "transport"
	}
}
