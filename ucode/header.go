package ucode

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MIMEType is reported for a recognised
	// microcode update when MIME output is
	// requested.
	MIMEType = "application/x-intel-ucode"

	headerVersion = 0x1
	loaderVersion = 0x1
)

var (
	// HeaderSize defines the raw size, in bytes,
	// of a RawHeader at the start of an update.
	HeaderSize = binary.Size(RawHeader{})
)

// RawHeader defines the fixed data
// structure at the start of every
// microcode update blob.
type RawHeader struct {
	// HeaderVersion specifies the layout
	// of this header, only version 1 exists.
	HeaderVersion uint32

	// UpdateVersion specifies the revision
	// of the microcode carried in the update.
	UpdateVersion uint32

	// Year, Month and Day specify the release
	// date of the update as packed BCD.
	Year  uint16
	Month uint8
	Day   uint8

	// ProcessorSignature specifies the CPUID
	// signature the update targets.
	ProcessorSignature uint32

	Checksum      uint32
	LoaderVersion uint32
}

// DecodeHeader copies a RawHeader out of
// the start of src.
//
// src is never modified, a short src
// results in io.ErrUnexpectedEOF.
func DecodeHeader(src []byte) (RawHeader, error) {
	var hdr RawHeader

	if len(src) < HeaderSize {
		return hdr, fmt.Errorf("header needs %d bytes, have %d: %w", HeaderSize, len(src), io.ErrUnexpectedEOF)
	}

	if _, err := binary.Decode(src[:HeaderSize], binary.LittleEndian, &hdr); err != nil {
		return hdr, fmt.Errorf("decode raw header: %w", err)
	}

	return hdr, nil
}

// Encode returns the raw little-endian
// form of this header.
func (hdr RawHeader) Encode() []byte {
	raw := make([]byte, 0, HeaderSize)
	raw, _ = binary.Append(raw, binary.LittleEndian, hdr)
	return raw
}
