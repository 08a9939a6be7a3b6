package asm

import (
	"strings"
)

// DirectiveRecord is the closed set of materialized directive kinds.
type DirectiveRecord interface {
	isDirectiveRecord()
	Addr() uint32
}

// DCRecord is a "Define Constant" directive's materialized bytes.
type DCRecord struct {
	Data    []byte
	Address uint32
}

func (r DCRecord) isDirectiveRecord() {}
func (r DCRecord) Addr() uint32       { return r.Address }

// DSRecord is a "Define Storage" (zero-filled) directive's bytes.
type DSRecord struct {
	Data    []byte
	Address uint32
}

func (r DSRecord) isDirectiveRecord() {}
func (r DSRecord) Addr() uint32       { return r.Address }

// DCBRecord is a "Define Constant Block" (repeated value) directive's bytes.
type DCBRecord struct {
	Data    []byte
	Address uint32
}

func (r DCBRecord) isDirectiveRecord() {}
func (r DCBRecord) Addr() uint32       { return r.Address }

// OtherRecord covers ORG and EQU, which produce no bytes.
type OtherRecord struct {
	Address uint32
}

func (r OtherRecord) isDirectiveRecord() {}
func (r OtherRecord) Addr() uint32       { return r.Address }

// materializeDirectives emits big-endian byte vectors for DC/DS/DCB, given
// each directive line's assigned address and the completed label map.
func materializeDirectives(lines []SourceLine, addrs []uint32, labels map[string]Label) ([]DirectiveRecord, []Diagnostic) {
	exprLabels := labelsToExprLabels(labels)
	var records []DirectiveRecord
	var diags []Diagnostic

	for i, line := range lines {
		d, ok := line.Lexed.(DirectiveLexed)
		if !ok {
			continue
		}

		switch d.Name {
		case "dc":
			size := effectiveSize(d.Size)
			var buf []byte
			failed := false
			for _, arg := range d.RawArgs {
				if isStringLiteral(arg) {
					buf = append(buf, paddedStringBytes(arg, size)...)
					continue
				}
				val, err := evalExpr(arg, exprLabels)
				if err != nil {
					diags = append(diags, diagFor(line, err.Error()))
					failed = true
					break
				}
				buf = append(buf, bigEndian(val, size.Bytes())...)
			}
			if !failed {
				records = append(records, DCRecord{Data: buf, Address: addrs[i]})
			}

		case "ds":
			size := effectiveSize(d.Size)
			if len(d.RawArgs) != 1 {
				continue
			}
			count, err := evalExpr(d.RawArgs[0], exprLabels)
			if err != nil {
				diags = append(diags, diagFor(line, err.Error()))
				continue
			}
			records = append(records, DSRecord{Data: make([]byte, int(count)*size.Bytes()), Address: addrs[i]})

		case "dcb":
			size := effectiveSize(d.Size)
			if len(d.RawArgs) != 2 {
				continue
			}
			count, err := evalExpr(d.RawArgs[0], exprLabels)
			if err != nil {
				diags = append(diags, diagFor(line, err.Error()))
				continue
			}
			value, err := evalExpr(d.RawArgs[1], exprLabels)
			if err != nil {
				diags = append(diags, diagFor(line, err.Error()))
				continue
			}
			unit := bigEndian(value, size.Bytes())
			buf := make([]byte, 0, int(count)*size.Bytes())
			for i := uint32(0); i < count; i++ {
				buf = append(buf, unit...)
			}
			records = append(records, DCBRecord{Data: buf, Address: addrs[i]})

		case "org", "equ":
			records = append(records, OtherRecord{Address: addrs[i]})
		}
	}

	return records, diags
}

func bigEndian(val uint32, size int) []byte {
	switch size {
	case 1:
		return []byte{byte(val)}
	case 2:
		return []byte{byte(val >> 8), byte(val)}
	default:
		return []byte{byte(val >> 24), byte(val >> 16), byte(val >> 8), byte(val)}
	}
}

func paddedStringBytes(literal string, size interface{ Bytes() int }) []byte {
	raw := strings.Trim(literal, "'")
	unit := size.Bytes()
	units := (len(raw) + unit - 1) / unit
	if units == 0 {
		units = 1
	}
	buf := make([]byte, units*unit)
	copy(buf, raw)
	return buf
}
