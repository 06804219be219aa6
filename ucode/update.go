package ucode

import (
	"errors"
	"fmt"
)

var (
	ErrHeaderVersion     = errors.New("unsupported header version")
	ErrLoaderVersion     = errors.New("unsupported loader version")
	ErrInvalidDate       = errors.New("invalid release date")
	ErrUnsupportedFamily = errors.New("unsupported processor family")
)

// Date is the release date of an update.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (date Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", date.Year, date.Month, date.Day)
}

// Update is the result of successfully
// validating a RawHeader, every call to
// Validate produces its own Update.
type Update struct {
	Header    RawHeader
	Signature Signature
	Date      Date
}

// Validate checks hdr is the header of a
// family 6 microcode update and returns
// its decoded fields.
//
// The returned error explains why the
// header was rejected, it is one of the
// package Err values, possibly wrapped.
func Validate(hdr RawHeader) (Update, error) {
	update := Update{Header: hdr}

	switch {
	case hdr.HeaderVersion != headerVersion:
		return Update{}, fmt.Errorf("0x%x != 0x%x: %w", hdr.HeaderVersion, headerVersion, ErrHeaderVersion)

	case hdr.LoaderVersion != loaderVersion:
		return Update{}, fmt.Errorf("0x%x != 0x%x: %w", hdr.LoaderVersion, loaderVersion, ErrLoaderVersion)
	}

	var yearOk, monthOk, dayOk bool
	update.Date.Year, yearOk = DecodeYear(hdr.Year)
	update.Date.Month, monthOk = DecodeMonth(hdr.Month)
	update.Date.Day, dayOk = DecodeDay(hdr.Day)

	switch {
	case !yearOk:
		return Update{}, fmt.Errorf("year 0x%04x: %w", hdr.Year, ErrInvalidDate)

	case !monthOk:
		return Update{}, fmt.Errorf("month 0x%02x: %w", hdr.Month, ErrInvalidDate)

	case !dayOk:
		return Update{}, fmt.Errorf("day 0x%02x: %w", hdr.Day, ErrInvalidDate)
	}

	update.Signature = DecodeSignature(hdr.ProcessorSignature)
	if update.Signature.Family != FamilyP6 {
		return Update{}, fmt.Errorf("family %d: %w", update.Signature.Family, ErrUnsupportedFamily)
	}

	return update, nil
}

// String returns the single line
// description of this update.
func (update Update) String() string {
	return fmt.Sprintf("CPU microcode for f/m/s %d/%d/%d version 0x%02x (%s)",
		update.Signature.Family, update.Signature.Model, update.Signature.Stepping,
		update.Header.UpdateVersion, update.Date)
}
