package model

// BinKind identifies one of the two compartments of a smart bin.
type BinKind int

const (
	BinWet BinKind = iota
	BinDry
)

// String returns the wire name of the compartment.
func (b BinKind) String() string {
	switch b {
	case BinWet:
		return "wet"
	case BinDry:
		return "dry"
	default:
		return "unknown"
	}
}

// MarshalText encodes the compartment using its wire name.
func (b BinKind) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
