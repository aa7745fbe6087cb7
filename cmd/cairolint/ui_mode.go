package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// switchMode is the shared auto|on|off value of --ui and --color.
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

func readSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// resolve turns auto into a TTY check on stdout.
func (m switchMode) resolve() bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func readColor(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readSwitch("color", value)
	if err != nil {
		return false, err
	}
	return mode.resolve(), nil
}

// shouldUseTUI: прогресс только для pretty-вывода, json/sarif идут в stdout как есть
func shouldUseTUI(cmd *cobra.Command, format string) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return false, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readSwitch("ui", value)
	if err != nil {
		return false, err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet || (format != "pretty" && format != "short") {
		return false, nil
	}
	return mode.resolve(), nil
}
