// Package epd parses book lines: a FEN position, optionally followed by a
// bracketed game-result marker and a signed centipawn evaluation, e.g.
//
//	r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3 [0.5] -11
package epd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	dragon "github.com/dylhunn/dragontoothmg"
)

// ErrParse wraps every malformed-line and malformed-position error.
var ErrParse = errors.New("parse failure")

// Result is the game outcome from the annotation, encoded the way the
// training format stores it.
type Result uint8

const (
	ResultLoss Result = 0
	ResultDraw Result = 1
	ResultWin  Result = 2
)

func (r Result) Marker() string {
	switch r {
	case ResultLoss:
		return "[0.0]"
	case ResultDraw:
		return "[0.5]"
	case ResultWin:
		return "[1.0]"
	}
	return "[?]"
}

type Line struct {
	Fen    string
	Result Result
	Eval   int
	Raw    string
}

// Parse tokenizes one annotated line in a single pass. Exactly one result
// marker must be present, immediately followed by the integer evaluation.
// A line carrying more than one marker is rejected rather than resolved by
// scan order.
func Parse(raw string) (Line, error) {
	var text = strings.TrimSpace(raw)

	var open = strings.IndexByte(text, '[')
	if open < 0 {
		return Line{}, fmt.Errorf("%w: no result marker", ErrParse)
	}
	var end = strings.IndexByte(text[open:], ']')
	if end < 0 {
		return Line{}, fmt.Errorf("%w: unterminated result marker", ErrParse)
	}
	end += open

	var result Result
	switch text[open : end+1] {
	case "[0.0]":
		result = ResultLoss
	case "[0.5]":
		result = ResultDraw
	case "[1.0]":
		result = ResultWin
	default:
		return Line{}, fmt.Errorf("%w: bad result marker %q", ErrParse, text[open:end+1])
	}

	var tail = text[end+1:]
	if strings.IndexByte(tail, '[') >= 0 {
		return Line{}, fmt.Errorf("%w: multiple result markers", ErrParse)
	}

	var fields = strings.Fields(tail)
	if len(fields) == 0 {
		return Line{}, fmt.Errorf("%w: missing evaluation", ErrParse)
	}
	var eval, err = strconv.Atoi(fields[0])
	if err != nil {
		return Line{}, fmt.Errorf("%w: bad evaluation %q", ErrParse, fields[0])
	}

	return Line{
		Fen:    strings.TrimSpace(text[:open]),
		Result: result,
		Eval:   eval,
		Raw:    raw,
	}, nil
}

// FenPrefix returns the position part of a possibly annotated line.
func FenPrefix(raw string) string {
	if open := strings.IndexByte(raw, '['); open >= 0 {
		return strings.TrimSpace(raw[:open])
	}
	return strings.TrimSpace(raw)
}

// ParseBoard reconstructs a position from a FEN string. The underlying
// parser panics on malformed input, so it is fenced with a light validation
// pass and a recover.
func ParseBoard(fen string) (board dragon.Board, err error) {
	fen = strings.TrimSpace(fen)
	var fields = strings.Fields(fen)
	if len(fields) < 4 {
		return board, fmt.Errorf("%w: fen %q: want at least 4 fields", ErrParse, fen)
	}
	if strings.Count(fields[0], "/") != 7 {
		return board, fmt.Errorf("%w: fen %q: want 8 ranks", ErrParse, fen)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: fen %q: %v", ErrParse, fen, r)
		}
	}()
	board = dragon.ParseFen(fen)

	if board.White.Kings == 0 || board.Black.Kings == 0 {
		return board, fmt.Errorf("%w: fen %q: missing king", ErrParse, fen)
	}
	return board, nil
}
