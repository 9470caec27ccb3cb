package qrtext

import (
	"errors"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ErrNoData is returned by ExtractText when codes is empty.
var ErrNoData = errors.New("qrtext: no code data")

// fnc1Separator is the GS1 application-data separator substituted for
// a bare '%' escape in Alnum mode, the standard convention for
// carrying the FNC1 codeword through an 8-bit-clean string.
const fnc1Separator = 0x1D

// groupState carries the encoding context across the codes of a single
// structured-append group: the active ECI (if any) and the auto-detect
// candidate order, both of which persist from one code to the next
// unless a GLI reset or FNC1 flag says otherwise.
type groupState struct {
	haveECI bool
	eci     uint32
	list    []candidate
	fnc1    bool
}

func newGroupState() *groupState {
	return &groupState{list: defaultCandidates()}
}

// ExtractText groups codes by structured-append placement and decodes
// each group's entries into one or more text strings. When
// allowPartialSA is false, a group missing any member is dropped
// entirely; when true, the present members are decoded as separate
// contiguous runs, with a decode failure ending that group's
// remaining runs (strings already produced for earlier runs in the
// group are kept).
func ExtractText(codes []CodeData, allowPartialSA bool) ([]string, error) {
	if len(codes) == 0 {
		return nil, ErrNoData
	}

	mark := make([]bool, len(codes))
	var out []string

	for i := range codes {
		if mark[i] {
			continue
		}
		group, complete := collectGroup(codes, mark, i)
		if !complete && !allowPartialSA {
			continue
		}
		out = append(out, decodeGroup(group)...)
	}
	return out, nil
}

// collectGroup gathers every code sharing i's structured-append size
// and parity into a slice indexed by SAIndex (nil where a member is
// missing), marking each claimed code so it is not processed again. A
// singleton (SASize == 0) group is always reported complete.
func collectGroup(codes []CodeData, mark []bool, i int) ([]*CodeData, bool) {
	if codes[i].SASize == 0 {
		mark[i] = true
		return []*CodeData{&codes[i]}, true
	}

	size := codes[i].SASize
	parity := codes[i].SAParity
	group := make([]*CodeData, size)
	for j := i; j < len(codes); j++ {
		if mark[j] || codes[j].SASize != size || codes[j].SAParity != parity {
			continue
		}
		idx := codes[j].SAIndex
		if idx < 0 || idx >= size || group[idx] != nil {
			continue
		}
		group[idx] = &codes[j]
		mark[j] = true
	}

	complete := true
	for _, c := range group {
		if c == nil {
			complete = false
			break
		}
	}
	return group, complete
}

// groupHasFNC1 reports whether any member of group carries an
// FNC1First/FNC1Second entry, mirroring qrdectxt.c's upfront Step 1
// pass over every entry in the whole structured-append group before
// Step 2 converts any of them: the escape applies to every ALNUM
// entry in the group, including ones that appear earlier in scan
// order than the code the marker itself lives in.
func groupHasFNC1(group []*CodeData) bool {
	for _, c := range group {
		if c == nil {
			continue
		}
		for _, e := range c.Entries {
			if e.Mode == FNC1First || e.Mode == FNC1Second {
				return true
			}
		}
	}
	return false
}

// decodeGroup walks group in order, decoding contiguous runs of
// present codes into separate output strings and skipping runs of
// missing ones. Encoding state (active ECI, candidate order, FNC1
// flag) carries across the whole group except where a code's own
// entries reset it.
func decodeGroup(group []*CodeData) []string {
	var out []string
	st := newGroupState()
	st.fnc1 = groupHasFNC1(group)

	j := 0
	for j < len(group) && group[j] == nil {
		j++
	}
	if j >= len(group) {
		return nil
	}

	var buf []byte
	started := false
	for j < len(group) {
		if group[j] == nil {
			if started {
				out = append(out, string(buf))
				buf = nil
				started = false
			}
			for j < len(group) && group[j] == nil {
				j++
			}
			continue
		}

		started = true
		ok := true
		for _, e := range group[j].Entries {
			if !applyEntry(e, st, &buf) {
				ok = false
				break
			}
		}
		if !ok {
			return out
		}
		if st.haveECI && eciResets(st.eci) {
			st.haveECI = false
		}
		j++
	}
	if started {
		out = append(out, string(buf))
	}
	return out
}

// applyEntry decodes one entry into buf, updating st. It reports
// false on an unrecoverable decode failure (the entry's bytes do not
// fit the active or auto-detected charset).
func applyEntry(e Entry, st *groupState, buf *[]byte) bool {
	switch e.Mode {
	case Num:
		*buf = append(*buf, e.Data...)
		return true

	case Alnum:
		appendAlnum(buf, e.Data, st.fnc1)
		return true

	case Kanji:
		out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), e.Data)
		if err != nil {
			return false
		}
		*buf = append(*buf, out...)
		return true

	case Byte:
		if st.haveECI {
			enc, _ := eciEncoding(st.eci) // always resolvable once haveECI is set, see ECI below
			out, _, err := transform.Bytes(enc.NewDecoder(), e.Data)
			if err != nil {
				return false
			}
			*buf = append(*buf, out...)
			return true
		}
		s, list, ok := decodeByteEntry(e.Data, st.list)
		if !ok {
			return false
		}
		st.list = list
		*buf = append(*buf, s...)
		return true

	case ECI:
		// An unrecognised designator leaves the active encoding (ECI
		// or auto-detect) exactly as it was, matching qrdectxt.c's
		// silent `continue` on an out-of-range cur_eci.
		if _, ok := eciEncoding(e.Value); ok {
			st.haveECI = true
			st.eci = e.Value
		}
		return true

	case FNC1First, FNC1Second:
		st.fnc1 = true
		return true

	default:
		return false
	}
}

// appendAlnum copies the alphanumeric charset through unchanged,
// except that when fnc1 is set a literal '%' is written for a "%%"
// pair and a lone '%' is rewritten to the GS1 separator byte, the
// escape convention QR uses to smuggle FNC1 through 8-bit-clean text.
func appendAlnum(buf *[]byte, data []byte, fnc1 bool) {
	if !fnc1 {
		*buf = append(*buf, data...)
		return
	}
	for i := 0; i < len(data); i++ {
		if data[i] != '%' {
			*buf = append(*buf, data[i])
			continue
		}
		if i+1 < len(data) && data[i+1] == '%' {
			*buf = append(*buf, '%')
			i++
			continue
		}
		*buf = append(*buf, fnc1Separator)
	}
}
