package magic

import (
	"fmt"
	"sync"
)

const (
	// FallbackDescription is written when no
	// registered sniffer recognises a buffer.
	FallbackDescription = "data"

	// FallbackMIMEType is the MIME counterpart
	// of FallbackDescription.
	FallbackMIMEType = "application/octet-stream"
)

type (
	// SniffFunc defines the function signature
	// for a content sniffer. It returns true
	// after writing its result to out when the
	// buffer is recognised, false when it is not.
	//
	// An error is only returned for faults of the
	// environment, never for unrecognised input.
	SniffFunc func(buf *Buffer, flags Flag, out *Output) (bool, error)

	// SnifferMetadata describes a content
	// sniffer registered with this package.
	SnifferMetadata struct {
		// Name specifies a unique name for the
		// sniffer, used in reports and errors.
		Name string

		// MIMEType specifies the MIME type the
		// sniffer reports when it matches.
		MIMEType string

		// Sniff specifies the function invoked
		// to inspect a buffer.
		Sniff SniffFunc
	}
)

var (
	registryLock sync.RWMutex
	registry     []*SnifferMetadata
)

// RegisterSniffer adds a sniffer to the
// end of the identification order and
// returns its name.
//
// If a sniffer with the same name has
// already been registered this function
// will panic.
func RegisterSniffer(metadata SnifferMetadata) string {
	registryLock.Lock()
	defer registryLock.Unlock()

	if metadata.Sniff == nil {
		panic(fmt.Sprintf("sniffer '%s' registered without a sniff function", metadata.Name))
	}

	for _, meta := range registry {
		if meta.Name == metadata.Name {
			panic(fmt.Sprintf("sniffer '%s' already registered", metadata.Name))
		}
	}

	registry = append(registry, &metadata)
	return metadata.Name
}

// Sniffers returns the registered sniffers
// in the order they are tried.
func Sniffers() []*SnifferMetadata {
	registryLock.RLock()
	defer registryLock.RUnlock()

	return append([]*SnifferMetadata(nil), registry...)
}

// Lookup returns the sniffer registered
// under name, or nil.
func Lookup(name string) *SnifferMetadata {
	registryLock.RLock()
	defer registryLock.RUnlock()

	for _, meta := range registry {
		if meta.Name == name {
			return meta
		}
	}

	return nil
}

// Identify runs every registered sniffer
// against buf, in registration order, and
// returns the first one that matched.
//
// When nothing matches the fallback result
// is written to out and nil is returned.
func Identify(buf *Buffer, flags Flag, out *Output) (*SnifferMetadata, error) {
	for _, meta := range Sniffers() {
		matched, err := meta.Sniff(buf, flags, out)
		switch {
		case err != nil:
			return nil, fmt.Errorf("sniff with '%s': %w", meta.Name, err)

		case matched:
			return meta, nil
		}
	}

	fallback := FallbackDescription
	if flags.MIME() {
		fallback = FallbackMIMEType
	}

	if err := out.Printf("%s", fallback); err != nil {
		return nil, fmt.Errorf("write fallback result: %w", err)
	}

	return nil, nil
}
