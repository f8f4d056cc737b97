package validation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-hydrate/pkg/i18n"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// remote lookup is issued.
const DefaultDebounce = 500 * time.Millisecond

// State is the lifecycle position of a RemoteValidator request.
type State int

const (
	StateIdle State = iota
	StatePending
	StateResolved
	StateSuperseded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Field is the input a RemoteValidator reads from and annotates.
// *dom.Element satisfies it.
type Field interface {
	Value() string
	SetCustomValidity(message string)
}

// Transition describes a state change of a single request. Token is zero for
// transitions that happen before a request is issued.
type Transition struct {
	Token uint64
	Value string
	From  State
	To    State
	Taken bool
	Err   error
}

// RemoteOption configures a RemoteValidator.
type RemoteOption func(*RemoteValidator)

// WithDebounce overrides DefaultDebounce. Non-positive values are ignored.
func WithDebounce(d time.Duration) RemoteOption {
	return func(v *RemoteValidator) {
		if d > 0 {
			v.delay = d
		}
	}
}

// WithScheduler replaces the timer implementation.
func WithScheduler(s Scheduler) RemoteOption {
	return func(v *RemoteValidator) {
		if s != nil {
			v.scheduler = s
		}
	}
}

// WithResolver sets the resolver used to localize the taken message.
func WithResolver(r *i18n.Resolver) RemoteOption {
	return func(v *RemoteValidator) {
		v.resolver = r
	}
}

// WithTakenMessage overrides MsgUsernameTaken.
func WithTakenMessage(msg i18n.Message) RemoteOption {
	return func(v *RemoteValidator) {
		v.message = msg
	}
}

// WithRemoteLogger sets the logger.
func WithRemoteLogger(logger *zap.Logger) RemoteOption {
	return func(v *RemoteValidator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithTransitionHook registers fn to observe every state change. The hook is
// invoked without internal locks held.
func WithTransitionHook(fn func(Transition)) RemoteOption {
	return func(v *RemoteValidator) {
		v.onTransition = fn
	}
}

// RemoteValidator debounces input events and checks the latest value against
// a Lookup. Every issued lookup carries a monotonically increasing token and
// only the response holding the newest token may touch the field; older
// responses are dropped as superseded.
type RemoteValidator struct {
	lookup       Lookup
	delay        time.Duration
	scheduler    Scheduler
	resolver     *i18n.Resolver
	message      i18n.Message
	logger       *zap.Logger
	onTransition func(Transition)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	field    Field
	timer    Timer
	timerSeq uint64
	latest   uint64
	state    State
	closed   bool
}

// NewRemoteValidator builds a validator over lookup.
func NewRemoteValidator(lookup Lookup, options ...RemoteOption) *RemoteValidator {
	v := &RemoteValidator{
		lookup:    lookup,
		delay:     DefaultDebounce,
		scheduler: RealScheduler(),
		message:   MsgUsernameTaken,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	v.logger = v.logger.Named("validation.remote")
	v.ctx, v.cancel = context.WithCancel(context.Background())
	return v
}

// State returns the state of the most recent request.
func (v *RemoteValidator) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Token returns the newest issued token.
func (v *RemoteValidator) Token() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.latest
}

// Input records a keystroke on field. An empty value clears the field's
// validity immediately, cancels the pending timer and invalidates any lookup
// in flight. Otherwise the debounce timer is restarted.
func (v *RemoteValidator) Input(field Field) {
	if field == nil {
		return
	}
	value := field.Value()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.field = field
	v.stopTimerLocked()

	if value == "" {
		v.latest++
		from := v.state
		v.state = StateIdle
		field.SetCustomValidity("")
		v.mu.Unlock()
		v.emit(Transition{From: from, To: StateIdle})
		return
	}

	v.timerSeq++
	seq := v.timerSeq
	v.timer = v.scheduler.AfterFunc(v.delay, func() { v.fire(seq) })
	v.mu.Unlock()
}

// Close stops the timer, cancels lookups in flight and waits for them to
// return. Further input is ignored.
func (v *RemoteValidator) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.stopTimerLocked()
	v.mu.Unlock()

	v.cancel()
	v.wg.Wait()
}

func (v *RemoteValidator) stopTimerLocked() {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

func (v *RemoteValidator) fire(seq uint64) {
	v.mu.Lock()
	if v.closed || seq != v.timerSeq || v.field == nil {
		v.mu.Unlock()
		return
	}
	v.timer = nil
	field := v.field
	value := field.Value()
	if value == "" {
		v.mu.Unlock()
		return
	}

	v.latest++
	token := v.latest
	from := v.state
	v.state = StatePending
	v.wg.Add(1)
	v.mu.Unlock()

	v.emit(Transition{Token: token, Value: value, From: from, To: StatePending})
	go v.run(token, field, value)
}

func (v *RemoteValidator) run(token uint64, field Field, value string) {
	defer v.wg.Done()

	var taken bool
	var err error
	if v.lookup != nil {
		taken, err = v.lookup.Exists(v.ctx, value)
	}
	if err != nil {
		v.logger.Debug("lookup failed, treating value as available",
			zap.String("value", value),
			zap.Uint64("token", token),
			zap.Error(err),
		)
		taken = false
	}

	v.mu.Lock()
	if token != v.latest || v.closed {
		v.mu.Unlock()
		v.logger.Debug("dropping superseded lookup", zap.Uint64("token", token))
		v.emit(Transition{Token: token, Value: value, From: StatePending, To: StateSuperseded, Taken: taken, Err: err})
		return
	}
	v.state = StateResolved
	if taken {
		field.SetCustomValidity(v.resolver.Resolve(v.message, nil))
	} else {
		field.SetCustomValidity("")
	}
	v.mu.Unlock()

	v.emit(Transition{Token: token, Value: value, From: StatePending, To: StateResolved, Taken: taken, Err: err})
}

func (v *RemoteValidator) emit(t Transition) {
	if v.onTransition != nil {
		v.onTransition(t)
	}
}
