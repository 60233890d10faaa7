package trigger

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire commands, one per line.
const (
	CommandInfo    = "INF"
	CommandSet     = "SET"
	CommandAcquire = "ACQ"
)

// deviceTriggerSlots is how many triggers the firmware keeps; extra SET
// commands are ignored on the device side.
const deviceTriggerSlots = 4

func encodeSet(d Definition) string {
	return fmt.Sprintf("%s,%d,%d,%d", CommandSet, d.id, d.durationMS, d.motorPos)
}

// Status is the decoded reply to INF. The firmware answers with the current
// motor position; anything else is kept only as Raw.
type Status struct {
	Raw              string
	MotorPosition    int
	HasMotorPosition bool
}

func ParseStatus(line string) Status {
	raw := strings.TrimSpace(line)
	st := Status{Raw: raw}
	if pos, err := strconv.Atoi(raw); err == nil {
		st.MotorPosition = pos
		st.HasMotorPosition = true
	}
	return st
}
