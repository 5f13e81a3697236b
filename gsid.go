package finsec

import "strconv"

// GSID is the Global Security ID, a caller-assigned non-negative integer that is the identity of
// a security. Callers are responsible for never reusing a GSID for a different instrument: two
// securities sharing a GSID are Equal whatever their other fields.
type GSID int64

// NewGSID validates v and returns it as a GSID.
func NewGSID(v int64) (GSID, error) {
	g := GSID(v)
	if err := g.validate(); err != nil {
		return 0, err
	}
	return g, nil
}

func (g GSID) validate() error {
	if g < 0 {
		return invalid("gsid", nil, "must be non-negative, got %d", int64(g))
	}
	return nil
}

func (g GSID) String() string { return strconv.FormatInt(int64(g), 10) }
