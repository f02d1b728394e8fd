package ui

import (
	"fmt"
	"strings"
)

// Mode is the --ui setting.
type Mode uint8

const (
	ModeAuto Mode = iota
	ModeOn
	ModeOff
)

func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return ModeAuto, nil
	case "on":
		return ModeOn, nil
	case "off":
		return ModeOff, nil
	}
	return ModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// Enabled decides whether to draw the progress view; auto follows the tty.
func (m Mode) Enabled(tty bool) bool {
	switch m {
	case ModeOn:
		return true
	case ModeOff:
		return false
	}
	return tty
}
