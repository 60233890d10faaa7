package trigger

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"timelapse/metrics"
	"timelapse/serialcomm"
)

const (
	DefaultSettleDelay  = time.Second
	DefaultCommandDelay = 100 * time.Millisecond
)

// State is the lifecycle position of a Session.
type State int

const (
	Fresh State = iota
	Staged
	Configured
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Staged:
		return "staged"
	case Configured:
		return "configured"
	default:
		return "unknown"
	}
}

type Option func(*Session)

// WithLogger sets the diagnostic sink. Applying it again replaces the
// previous logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

// WithSettleDelay sets how long NewSession waits before any traffic. Boards
// that reset when the port opens need about a second.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Session) {
		s.settleDelay = d
	}
}

// WithCommandDelay sets the pause after each SET written by Configure.
func WithCommandDelay(d time.Duration) Option {
	return func(s *Session) {
		s.commandDelay = d
	}
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Session) {
		s.metrics = r
	}
}

// Session owns the channel and the ordered trigger sequence for the lifetime
// of one serial connection.
type Session struct {
	channel      serialcomm.Channel
	triggers     []Definition
	configured   bool
	fingerprint  uint16
	sent         int
	settleDelay  time.Duration
	commandDelay time.Duration
	sleep        func(time.Duration)
	log          zerolog.Logger
	metrics      *metrics.Recorder
}

// NewSession takes ownership of an open channel and blocks for the settle
// delay before returning.
func NewSession(ch serialcomm.Channel, opts ...Option) *Session {
	s := &Session{
		channel:      ch,
		settleDelay:  DefaultSettleDelay,
		commandDelay: DefaultCommandDelay,
		sleep:        time.Sleep,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.settleDelay > 0 {
		s.log.Debug().Dur("delay", s.settleDelay).Msg("Waiting for device to settle")
		s.sleep(s.settleDelay)
	}
	s.metrics.TriggersStaged(0)
	s.metrics.Configured(false)
	return s
}

// AddTrigger validates and appends a trigger. No device I/O happens here.
// Triggers added after Configure are kept but not sent until Configure runs
// again; the session stays configured meanwhile (see InSync).
func (s *Session) AddTrigger(channel string, durationMS, motorPos int) error {
	def, err := NewDefinition(channel, durationMS, motorPos)
	if err != nil {
		return err
	}
	s.triggers = append(s.triggers, def)
	s.metrics.TriggersStaged(len(s.triggers))

	s.log.Info().
		Str("channel", def.Channel()).
		Int("id", def.ID()).
		Int("duration_ms", def.DurationMS()).
		Int("motor_pos", def.MotorPos()).
		Int("index", len(s.triggers)-1).
		Msg("Trigger recorded")
	return nil
}

// Configure sends one SET per trigger in insertion order and marks the
// session configured. Calling it again resends the whole sequence.
func (s *Session) Configure() error {
	if len(s.triggers) == 0 {
		return ErrNoTriggersConfigured
	}
	if len(s.triggers) > deviceTriggerSlots {
		s.log.Warn().
			Int("triggers", len(s.triggers)).
			Int("device_slots", deviceTriggerSlots).
			Msg("More triggers than the device stores, extra triggers will be ignored by the firmware")
	}

	lines := make([]string, 0, len(s.triggers))
	for _, def := range s.triggers {
		line := def.Command()
		if err := s.send("setup", CommandSet, line); err != nil {
			return err
		}
		s.log.Debug().Str("command", line).Msg("Trigger sent")
		lines = append(lines, line)
		if s.commandDelay > 0 {
			s.sleep(s.commandDelay)
		}
	}

	s.configured = true
	s.fingerprint = serialcomm.Fingerprint(lines)
	s.sent = len(lines)
	s.metrics.Configured(true)

	s.log.Info().
		Int("triggers", len(lines)).
		Uint16("fingerprint", s.fingerprint).
		Msg("Trigger sequence configured")
	return nil
}

// Acquire asks the device to run the configured sequence once. It does not
// wait for a reply.
func (s *Session) Acquire() error {
	if !s.configured {
		return ErrNotConfigured
	}
	if err := s.send("acquire", CommandAcquire, CommandAcquire); err != nil {
		return err
	}
	s.log.Info().Int("triggers", len(s.triggers)).Msg("Acquisition started")
	return nil
}

// QueryInfo sends INF and waits for one line, bounded by the channel read
// timeout. No reply within the timeout yields "" and a nil error.
func (s *Session) QueryInfo() (string, error) {
	// a reply that missed the previous timeout must not be taken for this one
	if err := s.channel.Discard(); err != nil {
		return "", &TransportError{Op: "discard", Err: err}
	}
	if err := s.send("info", CommandInfo, CommandInfo); err != nil {
		return "", err
	}

	line, err := s.channel.ReadLine()
	if errors.Is(err, serialcomm.ErrReadTimeout) {
		line, err = "", nil
	}
	if err != nil {
		return "", &TransportError{Op: "read", Err: err}
	}

	s.metrics.StatusRead(line != "")
	if line == "" {
		s.log.Debug().Msg("No status from device")
		return "", nil
	}
	s.log.Info().Str("status", line).Msg("Device status")
	return line, nil
}

func (s *Session) send(op, command, line string) error {
	if err := s.channel.WriteLine(line); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	s.metrics.CommandSent(command)
	return nil
}

// Triggers returns a copy of the trigger sequence.
func (s *Session) Triggers() []Definition {
	out := make([]Definition, len(s.triggers))
	copy(out, s.triggers)
	return out
}

func (s *Session) Len() int { return len(s.triggers) }

func (s *Session) IsConfigured() bool { return s.configured }

func (s *Session) State() State {
	switch {
	case s.configured:
		return Configured
	case len(s.triggers) > 0:
		return Staged
	default:
		return Fresh
	}
}

// InSync reports whether the device holds exactly the current sequence, i.e.
// the session is configured and nothing was added since.
func (s *Session) InSync() bool {
	if !s.configured || len(s.triggers) != s.sent {
		return false
	}
	lines := make([]string, len(s.triggers))
	for i, def := range s.triggers {
		lines[i] = def.Command()
	}
	return serialcomm.Fingerprint(lines) == s.fingerprint
}

// Clear drops every trigger and returns the session to Fresh. The device
// keeps its last configuration until the next Configure.
func (s *Session) Clear() {
	s.triggers = nil
	s.configured = false
	s.fingerprint = 0
	s.sent = 0
	s.metrics.TriggersStaged(0)
	s.metrics.Configured(false)
	s.log.Info().Msg("Triggers cleared")
}

func (s *Session) Close() error {
	if err := s.channel.Close(); err != nil {
		return &TransportError{Op: "close", Err: err}
	}
	return nil
}
