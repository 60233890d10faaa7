// Package trigger manages the trigger sequence of a timelapse microscope
// controller. A Session accumulates validated trigger definitions, sends them
// to the microcontroller as SET commands, and drives the ACQ and INF request
// cycles over a serialcomm.Channel.
//
// Typical use from a single control loop:
//
//	s := trigger.NewSession(ch, trigger.WithLogger(logger))
//	_ = s.AddTrigger("BF", 50, 0)
//	if err := s.Configure(); err != nil { ... }
//	for {
//	    if err := s.Acquire(); err != nil { ... }
//	    status, err := s.QueryInfo()
//	    ...
//	}
//
// A Session is not safe for concurrent use.
package trigger
