package trigger

// channels is the closed set of imaging channels understood by the firmware.
// A channel's index is its id on the wire, so the order must not change.
var channels = [...]string{"BF", "GFP", "RFP", "CFP"}

// Channels returns the recognized channel names in id order.
func Channels() []string {
	out := make([]string, len(channels))
	copy(out, channels[:])
	return out
}

// ChannelID returns the wire id of name.
func ChannelID(name string) (int, bool) {
	for i, c := range channels {
		if c == name {
			return i, true
		}
	}
	return -1, false
}
