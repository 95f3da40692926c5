// Package nnbook writes the binary training corpus: a flat concatenation
// of fixed-header, variable-body records with no framing. A reader must
// decode the header of each record to know where the next one starts.
package nnbook

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"math/bits"
	"os"

	dragon "github.com/dylhunn/dragontoothmg"

	"marmot/internal/epd"
)

const (
	colorWhite = 0
	colorBlack = 1
)

// 4-bit piece codes: 8*color + type, pawn=0 .. king=5.
const (
	typePawn = iota
	typeKnight
	typeBishop
	typeRook
	typeQueen
	typeKing
)

// header is the fixed 15-byte prefix of every record, written
// little-endian field by field.
type header struct {
	Occupancy uint64
	Eval      int16
	Result    uint8
	Turn      uint8
	WhiteKing uint8
	BlackKing uint8
	Count     uint8
}

// Record is one training position. Packed holds ceil(Count/2) bytes of
// 4-bit piece codes in ascending square order, high nibble first; an odd
// final nibble is zero.
type Record struct {
	header
	Packed []byte
}

// FromBoard encodes a position with its annotation. The invariant
// Count == popcount(Occupancy) holds by construction.
func FromBoard(b *dragon.Board, result epd.Result, eval int) (Record, error) {
	if eval > math.MaxInt16 || eval < math.MinInt16 {
		return Record{}, fmt.Errorf("%w: evaluation %d out of range", epd.ErrParse, eval)
	}

	var occupancy = b.White.All | b.Black.All
	var count = bits.OnesCount64(occupancy)

	var turn uint8
	if !b.Wtomove {
		turn = colorBlack
	}

	var rec = Record{
		header: header{
			Occupancy: occupancy,
			Eval:      int16(eval),
			Result:    uint8(result),
			Turn:      turn,
			WhiteKing: uint8(bits.TrailingZeros64(b.White.Kings)),
			BlackKing: uint8(bits.TrailingZeros64(b.Black.Kings)),
			Count:     uint8(count),
		},
		Packed: make([]byte, (count+1)/2),
	}

	var i int
	for x := occupancy; x != 0; x &= x - 1 {
		var sqBit = x & -x
		var code = pieceCode(b, sqBit)
		if i%2 == 0 {
			rec.Packed[i/2] = code << 4
		} else {
			rec.Packed[i/2] |= code
		}
		i++
	}
	return rec, nil
}

func pieceCode(b *dragon.Board, sqBit uint64) byte {
	var side = &b.White
	var code = byte(8 * colorWhite)
	if b.Black.All&sqBit != 0 {
		side = &b.Black
		code = byte(8 * colorBlack)
	}
	switch {
	case side.Pawns&sqBit != 0:
		code += typePawn
	case side.Knights&sqBit != 0:
		code += typeKnight
	case side.Bishops&sqBit != 0:
		code += typeBishop
	case side.Rooks&sqBit != 0:
		code += typeRook
	case side.Queens&sqBit != 0:
		code += typeQueen
	default:
		code += typeKing
	}
	return code
}

func (r *Record) Write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, r.header); err != nil {
		return err
	}
	_, err := w.Write(r.Packed)
	return err
}

// ReadRecord decodes one record: fixed header first, then the body length
// implied by the piece count.
func ReadRecord(rd io.Reader) (Record, error) {
	var rec Record
	if err := binary.Read(rd, binary.LittleEndian, &rec.header); err != nil {
		return rec, err
	}
	rec.Packed = make([]byte, (int(rec.Count)+1)/2)
	if _, err := io.ReadFull(rd, rec.Packed); err != nil {
		return rec, err
	}
	return rec, nil
}

type Config struct {
	BookPath string
	OutPath  string
	// SkipMalformed skips lines that fail to parse instead of aborting;
	// skipped lines are logged with their line number either way.
	SkipMalformed bool
}

// Run streams annotated lines from the book and appends one record per
// line, in input order, to the output file.
func Run(cfg Config) error {
	in, err := os.Open(cfg.BookPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(cfg.OutPath)
	if err != nil {
		return err
	}
	defer out.Close()

	var w = bufio.NewWriter(out)
	var written, err2 = Build(in, w, cfg.SkipMalformed)
	if err2 != nil {
		return err2
	}
	if err := w.Flush(); err != nil {
		return err
	}

	log.Println("nnbook finished",
		"input", cfg.BookPath,
		"output", cfg.OutPath,
		"records", written)
	return nil
}

// Build encodes every line of in onto out and reports how many records
// were written.
func Build(in io.Reader, out io.Writer, skipMalformed bool) (int, error) {
	var sc = bufio.NewScanner(in)
	var lineNum, written int
	for sc.Scan() {
		lineNum++
		var text = sc.Text()
		if len(text) == 0 {
			continue
		}
		rec, err := encodeLine(text)
		if err != nil {
			if skipMalformed {
				log.Println("nnbook skip line", lineNum, err)
				continue
			}
			return written, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if err := rec.Write(out); err != nil {
			return written, err
		}
		written++
	}
	return written, sc.Err()
}

func encodeLine(text string) (Record, error) {
	line, err := epd.Parse(text)
	if err != nil {
		return Record{}, err
	}
	board, err := epd.ParseBoard(line.Fen)
	if err != nil {
		return Record{}, err
	}
	return FromBoard(&board, line.Result, line.Eval)
}
