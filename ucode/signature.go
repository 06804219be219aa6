package ucode

import "fmt"

const (
	// FamilyP6 is the only processor family
	// whose update header format is recognised.
	FamilyP6 = 0x6

	familyExtendedEscape = 0xf
)

// Signature holds the processor identification
// decoded from a packed CPUID signature.
type Signature struct {
	Family   uint32
	Model    uint32
	Stepping uint32
}

// DecodeSignature splits a packed CPUID
// signature into family, model and stepping.
//
//	bits  0-3   stepping
//	bits  4-7   model
//	bits  8-11  family
//	bits 16-19  extended model (family >= 6)
//	bits 20-27  extended family (family == 0xf)
func DecodeSignature(sig uint32) Signature {
	var decoded Signature

	decoded.Stepping = sig & 0xf

	decoded.Family = (sig >> 8) & 0xf
	if decoded.Family == familyExtendedEscape {
		decoded.Family += (sig >> 20) & 0xff
	}

	decoded.Model = (sig >> 4) & 0xf
	if decoded.Family >= FamilyP6 {
		decoded.Model += ((sig >> 16) & 0xf) << 4
	}

	return decoded
}

// Encode packs this Signature back into the
// CPUID layout read by DecodeSignature.
//
// Values that cannot be represented by the
// layout are truncated to their bit fields.
func (sig Signature) Encode() uint32 {
	var (
		family    = sig.Family
		extFamily uint32
		extModel  uint32
	)

	if family >= familyExtendedEscape {
		extFamily = family - familyExtendedEscape
		family = familyExtendedEscape
	}

	if sig.Family >= FamilyP6 {
		extModel = sig.Model >> 4
	}

	return sig.Stepping&0xf |
		(sig.Model&0xf)<<4 |
		(family&0xf)<<8 |
		(extModel&0xf)<<16 |
		(extFamily&0xff)<<20
}

func (sig Signature) String() string {
	return fmt.Sprintf("%d/%d/%d", sig.Family, sig.Model, sig.Stepping)
}
