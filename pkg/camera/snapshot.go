package camera

import (
	"bytes"
	"encoding/binary"
	"io"
)

// BitmapHeaderLength is the size of the snapshot file header.
const BitmapHeaderLength = 62

// bitmapHeader is a BMP file header for a bottom-up 1-bit
// 128x64 image with a black/white palette.
type bitmapHeader struct {
	Magic      [2]byte
	FileSize   uint32
	Reserved   uint32
	DataOffset uint32

	InfoSize     uint32
	Width        int32
	Height       int32
	Planes       uint16
	BitCount     uint16
	Compression  uint32
	ImageSize    uint32
	XPelsPerM    int32
	YPelsPerM    int32
	ColorsUsed   uint32
	ColorsImport uint32

	Palette [2][4]byte
}

// BitmapHeader is the fixed header written before the snapshot rows.
var BitmapHeader = func() []byte {
	h := bitmapHeader{
		Magic:      [2]byte{'B', 'M'},
		FileSize:   BitmapHeaderLength + FrameLength,
		DataOffset: BitmapHeaderLength,
		InfoSize:   40,
		Width:      RowLength * 8,
		Height:     RowCount,
		Planes:     1,
		BitCount:   1,
		ImageSize:  FrameLength,
		ColorsUsed: 2,
		Palette:    [2][4]byte{{0, 0, 0, 0}, {0xff, 0xff, 0xff, 0}},
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		panic(err)
	}
	return buf.Bytes()
}()

// EncodeSnapshot writes the frame as a bitmap, last row first.
func EncodeSnapshot(w io.Writer, f *Frame) error {
	if _, err := w.Write(BitmapHeader); err != nil {
		return err
	}
	for n := RowCount - 1; n >= 0; n-- {
		if _, err := w.Write(f.Row(n)); err != nil {
			return err
		}
	}
	return nil
}
