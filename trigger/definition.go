package trigger

import "fmt"

const (
	MinDuration = 0
	MaxDuration = 9999

	DefaultDuration = 100
	DefaultMotorPos = 0
)

// Definition is one validated trigger: a channel, an exposure duration in
// milliseconds and a filter wheel motor position. The zero value is not valid;
// use NewDefinition.
type Definition struct {
	channel    string
	id         int
	durationMS int
	motorPos   int
}

// NewDefinition validates channel then duration and returns the definition.
func NewDefinition(channel string, durationMS, motorPos int) (Definition, error) {
	id, ok := ChannelID(channel)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q (want one of %v)", ErrInvalidChannel, channel, Channels())
	}
	if durationMS < MinDuration || durationMS > MaxDuration {
		return Definition{}, fmt.Errorf("%w: %d ms not in [%d, %d]", ErrInvalidDuration, durationMS, MinDuration, MaxDuration)
	}
	return Definition{
		channel:    channel,
		id:         id,
		durationMS: durationMS,
		motorPos:   motorPos,
	}, nil
}

func (d Definition) Channel() string { return d.channel }
func (d Definition) ID() int { return d.id }
func (d Definition) DurationMS() int { return d.durationMS }
func (d Definition) MotorPos() int { return d.motorPos }

// Command renders the SET line for this definition.
func (d Definition) Command() string {
	return encodeSet(d)
}

func (d Definition) String() string {
	return fmt.Sprintf("%s(id=%d, %dms, motor=%d)", d.channel, d.id, d.durationMS, d.motorPos)
}
