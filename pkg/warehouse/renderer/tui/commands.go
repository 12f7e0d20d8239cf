package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	engineinput "stockmap/pkg/engine/input"
	"stockmap/pkg/i18n"
)

// CommandKind identifies a parsed operator command
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdIntent
	CmdLocate
	CmdSelect
	CmdClick
	CmdZoom
	CmdPan
	CmdReset
	CmdClear
	CmdHelp
	CmdQuit
)

// Command is one parsed line of operator input
type Command struct {
	Kind   CommandKind
	Intent engineinput.Intent // CmdIntent
	Arg    string             // item code or shelf id
	In     bool               // CmdZoom direction
	Col    int                // CmdClick, and CmdZoom when At is set
	Row    int
	At     bool
	DX, DY float64 // CmdPan, in canvas pixels
}

var errUsage = errors.New("usage")

// ParseCommand turns a line of input into a Command. Bound key codes (arrows,
// "+", "q" and so on) map to intents; a word that is not a command is taken
// as an item code to locate.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdNone}, nil
	}
	if len(fields) == 1 {
		intent := engineinput.MapToIntent(engineinput.DebouncedInput{Device: engineinput.DeviceTerminal, Code: fields[0]})
		if intent.Action != engineinput.ActionNone {
			return Command{Kind: CmdIntent, Intent: intent}, nil
		}
	}

	word, args := strings.ToLower(fields[0]), fields[1:]
	switch word {
	case "locate", "find", "l":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: locate <code>", errUsage)
		}
		return Command{Kind: CmdLocate, Arg: args[0]}, nil
	case "select", "shelf":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: select <shelf>", errUsage)
		}
		return Command{Kind: CmdSelect, Arg: args[0]}, nil
	case "click":
		col, row, err := parseCell(args)
		if err != nil {
			return Command{}, fmt.Errorf("%w: click <col> <row>", errUsage)
		}
		return Command{Kind: CmdClick, Col: col, Row: row}, nil
	case "zoom":
		if len(args) != 1 && len(args) != 3 {
			return Command{}, fmt.Errorf("%w: zoom in|out [<col> <row>]", errUsage)
		}
		cmd := Command{Kind: CmdZoom}
		switch strings.ToLower(args[0]) {
		case "in", "+":
			cmd.In = true
		case "out", "-":
		default:
			return Command{}, fmt.Errorf("%w: zoom in|out [<col> <row>]", errUsage)
		}
		if len(args) == 3 {
			col, row, err := parseCell(args[1:])
			if err != nil {
				return Command{}, fmt.Errorf("%w: zoom in|out [<col> <row>]", errUsage)
			}
			cmd.Col, cmd.Row, cmd.At = col, row, true
		}
		return cmd, nil
	case "pan":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: pan <dx> <dy>", errUsage)
		}
		dx, errX := strconv.ParseFloat(args[0], 64)
		dy, errY := strconv.ParseFloat(args[1], 64)
		if errX != nil || errY != nil {
			return Command{}, fmt.Errorf("%w: pan <dx> <dy>", errUsage)
		}
		return Command{Kind: CmdPan, DX: dx, DY: dy}, nil
	case "reset":
		return Command{Kind: CmdReset}, nil
	case "clear":
		return Command{Kind: CmdClear}, nil
	case "help":
		return Command{Kind: CmdHelp}, nil
	case "quit", "exit":
		return Command{Kind: CmdQuit}, nil
	}

	if len(fields) == 1 {
		return Command{Kind: CmdLocate, Arg: fields[0]}, nil
	}
	return Command{}, errors.New(i18n.Get("UNKNOWN_COMMAND", fields[0]))
}

func parseCell(args []string) (col, row int, err error) {
	if len(args) != 2 {
		return 0, 0, errUsage
	}
	if col, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, err
	}
	if row, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, err
	}
	return col, row, nil
}
