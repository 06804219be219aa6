package magic

import (
	"fmt"
	"strings"
)

// Flag is the set of options a caller passes
// to every sniffer to control how content is
// inspected and how a match is reported.
type Flag uint32

const (
	FlagNone         Flag = 0x0000000 /* no flags set */
	FlagDebug        Flag = 0x0000001 /* emit reasons for rejected candidates */
	FlagCompress     Flag = 0x0000004 /* look inside compressed content */
	FlagMIMEType     Flag = 0x0000010 /* report a MIME type instead of a description */
	FlagMIMEEncoding Flag = 0x0000400 /* report a MIME encoding */
	FlagApple        Flag = 0x0000800 /* report an Apple creator/type (resource fork pass) */
	FlagExtension    Flag = 0x1000000 /* report a list of file extensions */

	FlagMIME = FlagMIMEType | FlagMIMEEncoding

	// FlagSkipContent covers the passes where
	// content sniffers must decline without
	// looking at the buffer.
	FlagSkipContent = FlagApple | FlagExtension
)

var flagToName = []struct {
	flag Flag
	name string
}{
	{FlagDebug, "debug"},
	{FlagCompress, "compress"},
	{FlagMIMEType, "mime_type"},
	{FlagMIMEEncoding, "mime_encoding"},
	{FlagApple, "apple"},
	{FlagExtension, "extension"},
}

// MIME reports if the caller asked for
// MIME output rather than a description.
func (flags Flag) MIME() bool {
	return flags&FlagMIME != 0
}

// Skip reports if content sniffers should
// decline this pass.
func (flags Flag) Skip() bool {
	return flags&FlagSkipContent != 0
}

func (flags Flag) String() string {
	if flags == FlagNone {
		return fmt.Sprintf("0x%x (none)", uint32(flags))
	}

	var flagNames []string
	for _, known := range flagToName {
		if flags&known.flag == known.flag {
			flagNames = append(flagNames, known.name)
		}
	}

	return fmt.Sprintf("0x%x (%s)", uint32(flags), strings.Join(flagNames, ","))
}
