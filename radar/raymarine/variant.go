package raymarine

import "github.com/mayara-radar/mayara/radar/controldefs"

// Variant selects one of two disjoint command codecs sharing the same
// state machine and transport. It is fixed at construction
// time from the locator's beacon subtype byte / model name — never
// inferred at runtime.
type Variant int

const (
	VariantRD Variant = iota
	VariantQuantum
)

// shape is the Quantum wire-value width for a one-operation command.
type shape int

const (
	shapeOneByte shape = iota
	shapeTwoByte
)

type quantumOp struct {
	opLo, opHi byte
	shape      shape
}

// quantumTable indexes control id -> (op-code, shape) for the Quantum
// `[op_lo, op_hi, 0x28, 0x00, 0x00, value...]` frame family.
var quantumTable = map[string]quantumOp{
	controldefs.Power:                 {0x00, 0x00, shapeOneByte},
	controldefs.Range:                 {0x03, 0x00, shapeTwoByte},
	controldefs.Gain:                  {0x06, 0x00, shapeOneByte},
	controldefs.Sea:                   {0x07, 0x00, shapeOneByte},
	controldefs.Rain:                  {0x08, 0x00, shapeOneByte},
	controldefs.IR:                    {0x09, 0x00, shapeOneByte},
	controldefs.BearingAlignment:      {0x0A, 0x00, shapeTwoByte},
	controldefs.AntennaHeight:         {0x0B, 0x00, shapeTwoByte},
	controldefs.DopplerMode:           {0x0E, 0x00, shapeOneByte},
	controldefs.DopplerSpeedThreshold: {0x0F, 0x00, shapeTwoByte},
}

// rdKind is the RD `[0x00, 0xC1, lead_bytes..., value, 0x00, ...]` value
// shape: a plain value byte/word, or a boolean on_off byte.
type rdKind int

const (
	rdKindStandard rdKind = iota
	rdKindOnOff
)

type rdOp struct {
	lead1, lead2 byte
	kind         rdKind
}

// rdTable indexes control id -> (lead bytes, shape) for the RD frame
// family. RD's standard shape carries a 4-byte LE value, wide enough for
// this brand's largest field (range in meters) without a second encoding.
var rdTable = map[string]rdOp{
	controldefs.Power:            {0x01, 0x00, rdKindOnOff},
	controldefs.Range:             {0x02, 0x00, rdKindStandard},
	controldefs.Gain:              {0x03, 0x00, rdKindStandard},
	controldefs.Sea:               {0x04, 0x00, rdKindStandard},
	controldefs.Rain:              {0x05, 0x00, rdKindStandard},
	controldefs.IR:                {0x06, 0x00, rdKindStandard},
	controldefs.BearingAlignment:  {0x07, 0x00, rdKindStandard},
	controldefs.AntennaHeight:     {0x08, 0x00, rdKindStandard},
}
