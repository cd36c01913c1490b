package session

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
	ErrBadArgument    = errors.New("invalid argument")
)

var commandNargs = map[string]int{
	"g": 0, // snapshot
	"o": 2, // reveal
	"c": 2, // contain
	"f": 2, // flip tool
	"m": 2, // weak measurement
	"p": 0, // probability cloud
	"i": 1, // inspector on|off
	"s": 0, // share code
	"b": 0, // text board
	"n": 0, // new game
}

type command struct {
	name string
	args []string
}

func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return command{}, fmt.Errorf("%w: %q takes %d", ErrArgCount, parts[0], nargs)
	}
	return command{name: parts[0], args: parts[1:]}, nil
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("%w: first argument must be an int", ErrBadArgument)
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("%w: second argument must be an int", ErrBadArgument)
		return
	}
	return
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", ErrBadArgument, s)
}

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
