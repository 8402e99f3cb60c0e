// Package wad reads Doom's data archives, also known as WAD files. It parses
// the header and lump directory, classifies lumps by name, tracks which lumps
// belong to which map and decodes the fixed-width map lumps.
// The file format is documented in The Unofficial DOOM Specs:
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html

package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log"
	"os"

	"github.com/zeebo/errs"
	"golang.org/x/exp/constraints"
)

var logger *log.Logger = log.New(io.Discard, "", log.LstdFlags)

// SetLogger sets the logger used for progress messages. Messages are
// discarded until this is called.
func SetLogger(l *log.Logger) {
	logger = l
}

// Kind is the archive type named by the header magic.
type Kind int

const (
	KindUnknown Kind = iota
	KindIWAD
	KindPWAD
)

func (k Kind) String() string {
	switch k {
	case KindIWAD:
		return "IWAD"
	case KindPWAD:
		return "PWAD"
	}
	return "UNKNOWN"
}

func kindOf(magic [4]byte) Kind {
	switch string(magic[:]) {
	case "IWAD":
		return KindIWAD
	case "PWAD":
		return KindPWAD
	}
	return KindUnknown
}

// Header is the 12 byte block at the start of every WAD.
type Header struct {
	Kind         Kind
	Magic        [4]byte
	NumLumps     int32
	InfoTableOfs int32
}

const (
	headerSize   = 12
	lumpInfoSize = 16
)

// LumpInfo is one directory entry. It is decoded directly from its 16 byte
// on-disk form.
type LumpInfo struct {
	Filepos int32
	Size    int32
	Name    String8
}

// End returns the offset one past the last byte of the lump.
func (l LumpInfo) End() int64 {
	return int64(l.Filepos) + int64(l.Size)
}

// WAD eight-character string type. Null-terminated for short strings.
type String8 [8]byte

// NewString8 copies at most eight bytes of s into a String8.
func NewString8(s string) String8 {
	var n String8
	copy(n[:], s)
	return n
}

// String converts String8 to string
func (s String8) String() string {
	i := bytes.IndexByte(s[:], 0)
	if i == -1 {
		i = len(s)
	}
	return string(s[0:i])
}

// ReadHeader reads the WAD header from r. Magic values other than IWAD and
// PWAD are reported as KindUnknown rather than rejected.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if _, err := io.ReadFull(r, h.Magic[:]); err != nil {
		return h, readError(&FormatError, err)
	}
	h.Kind = kindOf(h.Magic)

	var counts struct {
		NumLumps     int32
		InfoTableOfs int32
	}
	if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
		return h, readError(&TruncatedRead, err)
	}
	h.NumLumps = counts.NumLumps
	h.InfoTableOfs = counts.InfoTableOfs
	return h, nil
}

// ReadDirectory seeks to the directory and reads up to h.NumLumps entries in
// directory order. A directory that starts outside the source is OutOfRange.
// Reading stops early, without error, if the source ends on an entry
// boundary after the first entry. A partial entry is a TruncatedRead.
func ReadDirectory(r io.ReadSeeker, h Header) ([]LumpInfo, error) {
	logger.Println("Reading directory ...")
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	need := int32(0)
	if h.NumLumps > 0 {
		need = lumpInfoSize
	}
	if !inBounds(h.InfoTableOfs, need, size) {
		return nil, OutOfRange.New("directory offset %d exceeds source size %d", h.InfoTableOfs, size)
	}
	if err := seek(r, int64(h.InfoTableOfs)); err != nil {
		return nil, err
	}

	var lumps []LumpInfo
	for i := int32(0); i < h.NumLumps; i++ {
		var info LumpInfo
		err := binary.Read(r, binary.LittleEndian, &info)
		if errors.Is(err, io.EOF) {
			logger.Printf("Directory ends after %v of %v lumps", i, h.NumLumps)
			break
		}
		if err != nil {
			return nil, readError(&TruncatedRead, err)
		}
		lumps = append(lumps, info)
	}
	logger.Printf("Read %v lumps", len(lumps))
	return lumps, nil
}

// WAD is an opened archive: its header, its directory, and the source the
// lump payloads are read from.
type WAD struct {
	Header Header
	Lumps  []LumpInfo
	src    io.ReadSeeker
	size   int64
	closer io.Closer
}

// NewReader reads the header and directory from src. The length of src is
// found by seeking to its end.
func NewReader(src io.ReadSeeker) (*WAD, error) {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	if err := seek(src, 0); err != nil {
		return nil, err
	}

	header, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}
	lumps, err := ReadDirectory(src, header)
	if err != nil {
		return nil, err
	}
	return &WAD{Header: header, Lumps: lumps, src: src, size: size}, nil
}

// Open opens the named file and reads its header and directory.
func Open(filename string) (*WAD, error) {
	logger.Printf("Opening %v", filename)
	file, err := os.Open(filename)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	w, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	w.closer = file
	return w, nil
}

// Close closes the underlying file if the WAD was opened with Open.
func (w *WAD) Close() error {
	if w.closer == nil {
		return nil
	}
	return errs.Wrap(w.closer.Close())
}

// Size returns the length of the source in bytes.
func (w *WAD) Size() int64 {
	return w.size
}

// ReadLump reads the entire payload of a lump. A lump that does not lie
// within the source is an OutOfRange error.
func (w *WAD) ReadLump(l LumpInfo) ([]byte, error) {
	if !inBounds(l.Filepos, l.Size, w.size) {
		return nil, OutOfRange.New("lump %q at %d size %d exceeds source size %d",
			l.Name.String(), l.Filepos, l.Size, w.size)
	}
	if err := seek(w.src, int64(l.Filepos)); err != nil {
		return nil, err
	}
	lump := make([]byte, l.Size)
	if _, err := io.ReadFull(w.src, lump); err != nil {
		return nil, readError(&TruncatedRead, err)
	}
	return lump, nil
}

// seek
func seek(r io.Seeker, offset int64) error {
	off, err := r.Seek(offset, io.SeekStart)
	if err != nil {
		return errs.Wrap(err)
	}
	if off != offset {
		return errs.New("seek to %d landed at %d", offset, off)
	}
	return nil
}

// readError classifies end-of-data as class and wraps anything else as is.
func readError(class *errs.Class, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return class.Wrap(err)
	}
	return errs.Wrap(err)
}

// inBounds reports whether [off, off+n) lies within a source of the given size.
func inBounds[T constraints.Integer](off, n T, size int64) bool {
	o, l := int64(off), int64(n)
	return o >= 0 && l >= 0 && o+l <= size
}
