package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/etchsim/internal/etch"
)

var gridMagic = [8]byte{'E', 'T', 'C', 'H', 'G', 'R', 'D', '1'}

var ErrCorruptGrid = errors.New("storage: corrupt grid snapshot")

type gridHeader struct {
	Magic [8]byte
	NX    uint32
	NY    uint32
}

// writeGrid stores a column-major grid as a zstd stream: a little-endian
// header followed by every cell as a float64.
func writeGrid(path string, grid [][]float64) error {
	nx := len(grid)
	ny := 0
	if nx > 0 {
		ny = len(grid[0])
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	hdr := gridHeader{Magic: gridMagic, NX: uint32(nx), NY: uint32(ny)}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		enc.Close()
		return err
	}

	var buf [8]byte
	for x := range grid {
		if len(grid[x]) != ny {
			enc.Close()
			return fmt.Errorf("column %d has %d cells, want %d", x, len(grid[x]), ny)
		}
		for _, v := range grid[x] {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			if _, err := bw.Write(buf[:]); err != nil {
				enc.Close()
				return err
			}
		}
	}

	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

func readGrid(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	var hdr gridHeader
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorruptGrid, err)
	}
	if hdr.Magic != gridMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptGrid, hdr.Magic[:])
	}
	cells := uint64(hdr.NX) * uint64(hdr.NY)
	if cells > etch.MaxCells {
		return nil, fmt.Errorf("%w: %dx%d grid exceeds %d cells", ErrCorruptGrid, hdr.NX, hdr.NY, etch.MaxCells)
	}

	nx, ny := int(hdr.NX), int(hdr.NY)
	backing := make([]float64, nx*ny)
	var buf [8]byte
	for i := range backing {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", ErrCorruptGrid, i, err)
		}
		backing[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
	}

	grid := make([][]float64, nx)
	for x := range grid {
		grid[x] = backing[x*ny : (x+1)*ny : (x+1)*ny]
	}
	return grid, nil
}
