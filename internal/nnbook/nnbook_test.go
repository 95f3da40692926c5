package nnbook

import (
	"bytes"
	"math/bits"
	"strings"
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"

	"marmot/internal/epd"
)

func TestRecordExactBytes(t *testing.T) {
	// White Ka1 and Qg1, black Ka8, white to move. Squares 0, 6 and 56 in
	// ascending order give codes king=5, queen=4, black king=13; the odd
	// final nibble must stay zero.
	board, err := epd.ParseBoard("k7/8/8/8/8/8/8/K5Q1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := FromBoard(&board, epd.ResultDraw, -25)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := rec.Write(&buf); err != nil {
		t.Fatal(err)
	}

	var want = []byte{
		0x41, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, // occupancy bits 0, 6, 56
		0xE7, 0xFF, // eval -25
		0x01,       // draw
		0x00,       // white to move
		0x00,       // white king a1
		0x38,       // black king a8
		0x03,       // three pieces
		0x54, 0xD0, // packed codes
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("record bytes = % X, want % X", buf.Bytes(), want)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	board, err := epd.ParseBoard(dragon.Startpos)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := FromBoard(&board, epd.ResultWin, 31)
	if err != nil {
		t.Fatal(err)
	}

	if rec.Count != 32 {
		t.Errorf("count = %v, want 32", rec.Count)
	}
	if int(rec.Count) != bits.OnesCount64(rec.Occupancy) {
		t.Errorf("count %v != popcount(occupancy) %v", rec.Count, bits.OnesCount64(rec.Occupancy))
	}
	if len(rec.Packed) != 16 {
		t.Errorf("packed length = %v, want 16", len(rec.Packed))
	}
	if rec.WhiteKing != 4 || rec.BlackKing != 60 {
		t.Errorf("king squares = %v, %v, want 4, 60", rec.WhiteKing, rec.BlackKing)
	}

	var buf bytes.Buffer
	if err := rec.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 15+16 {
		t.Errorf("record size = %v, want 31", buf.Len())
	}

	got, err := ReadRecord(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.header != rec.header {
		t.Errorf("header = %+v, want %+v", got.header, rec.header)
	}
	if !bytes.Equal(got.Packed, rec.Packed) {
		t.Errorf("packed = % X, want % X", got.Packed, rec.Packed)
	}
}

func TestRecordTurn(t *testing.T) {
	board, err := epd.ParseBoard("k7/8/8/8/8/8/8/K5Q1 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := FromBoard(&board, epd.ResultLoss, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Turn != colorBlack {
		t.Errorf("turn = %v, want %v", rec.Turn, colorBlack)
	}
	if rec.Result != uint8(epd.ResultLoss) {
		t.Errorf("result = %v, want %v", rec.Result, epd.ResultLoss)
	}
}

func TestFromBoardEvalRange(t *testing.T) {
	board, err := epd.ParseBoard(dragon.Startpos)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromBoard(&board, epd.ResultDraw, 40000); err == nil {
		t.Error("evaluation above int16 range accepted")
	}
	if _, err := FromBoard(&board, epd.ResultDraw, -40000); err == nil {
		t.Error("evaluation below int16 range accepted")
	}
}

func TestBuild(t *testing.T) {
	var in = strings.Join([]string{
		dragon.Startpos + " [0.5] 10",
		"",
		"k7/8/8/8/8/8/8/K5Q1 w - - 0 1 [1.0] 700",
	}, "\n")

	var out bytes.Buffer
	written, err := Build(strings.NewReader(in), &out, false)
	if err != nil {
		t.Fatal(err)
	}
	if written != 2 {
		t.Errorf("written = %v, want 2", written)
	}
	// 31 bytes for the full board, 17 for the three-piece one, no framing.
	if out.Len() != 31+17 {
		t.Errorf("output size = %v, want 48", out.Len())
	}
}

func TestBuildMalformedLine(t *testing.T) {
	var in = strings.Join([]string{
		dragon.Startpos + " [0.5] 10",
		"not a position",
		dragon.Startpos + " [1.0] 20",
	}, "\n")

	var out bytes.Buffer
	_, err := Build(strings.NewReader(in), &out, false)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want a line 2 failure", err)
	}

	out.Reset()
	written, err := Build(strings.NewReader(in), &out, true)
	if err != nil {
		t.Fatal(err)
	}
	if written != 2 {
		t.Errorf("written = %v, want 2 with skipping on", written)
	}
}
