package models

import (
	"errors"
	"math"
	"time"
)

// State represents the countdown lifecycle state
type State string

const (
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateDone    State = "done"
)

// DisplayMode controls how updates are laid out on the terminal
type DisplayMode int

const (
	// DisplayNewline prints every update on its own line
	DisplayNewline DisplayMode = iota
	// DisplayLine overwrites the current terminal line on every update
	DisplayLine
)

// ModeFor returns the display mode selected by the line-mode flag
func ModeFor(lineMode bool) DisplayMode {
	if lineMode {
		return DisplayLine
	}
	return DisplayNewline
}

// Prefix is written at the start of every update and of the done notice
func (m DisplayMode) Prefix() string {
	if m == DisplayLine {
		return "\r"
	}
	return ""
}

// Suffix terminates every update
func (m DisplayMode) Suffix() string {
	if m == DisplayLine {
		return ""
	}
	return "\n"
}

func (m DisplayMode) String() string {
	if m == DisplayLine {
		return "line"
	}
	return "newline"
}

// ErrDurationTooLong indicates that the requested duration does not fit into a time.Duration
var ErrDurationTooLong = errors.New("duration too long")

const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

// Settings holds the values parsed from the command line
type Settings struct {
	Hours    uint64
	Minutes  uint64
	Seconds  uint64
	LineMode bool
}

// Total returns seconds + 60*minutes + 3600*hours
func (s Settings) Total() (time.Duration, error) {
	if s.Hours > maxSeconds/3600 || s.Minutes > maxSeconds/60 || s.Seconds > maxSeconds {
		return 0, ErrDurationTooLong
	}
	total := s.Seconds + s.Minutes*60 + s.Hours*3600
	if total > maxSeconds {
		return 0, ErrDurationTooLong
	}
	return time.Duration(total) * time.Second, nil
}

// Mode returns the display mode selected by the settings
func (s Settings) Mode() DisplayMode {
	return ModeFor(s.LineMode)
}
