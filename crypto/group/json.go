package group

// Elements encode as fixed width hex strings. Implementing the text interfaces
// means encoding/json (and toml, and anything else that knows about them) does
// the right thing without every container type needing custom marshalling code.
//
// Unmarshalling checks bounds, there is no unchecked path for external input.

func (e *ElementModP) MarshalText() ([]byte, error) {
	return []byte(e.Hex()), nil
}

func (e *ElementModP) UnmarshalText(b []byte) error {
	v, err := parseHex(string(b))
	if err != nil {
		return err
	}
	if err := checkBounds(v, pInt, "P"); err != nil {
		return err
	}
	e.v = v
	return nil
}

func (e *ElementModQ) MarshalText() ([]byte, error) {
	return []byte(e.Hex()), nil
}

func (e *ElementModQ) UnmarshalText(b []byte) error {
	v, err := parseHex(string(b))
	if err != nil {
		return err
	}
	if err := checkBounds(v, qInt, "Q"); err != nil {
		return err
	}
	e.v = v
	return nil
}
