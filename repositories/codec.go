package repositories

import (
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Records are stored as protobuf wire format so the on-disk layout stays
// readable by any protobuf tooling and tolerant to added fields.

type recordWriter struct {
	b []byte
}

func (w *recordWriter) text(num protowire.Number, s string) {
	if s == "" {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.BytesType)
	w.b = protowire.AppendString(w.b, s)
}

func (w *recordWriter) varint(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.VarintType)
	w.b = protowire.AppendVarint(w.b, v)
}

func (w *recordWriter) boolean(num protowire.Number, v bool) {
	w.varint(num, protowire.EncodeBool(v))
}

func (w *recordWriter) double(num protowire.Number, f float64) {
	if f == 0 {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.Fixed64Type)
	w.b = protowire.AppendFixed64(w.b, math.Float64bits(f))
}

func (w *recordWriter) time(num protowire.Number, t time.Time) {
	if t.IsZero() {
		return
	}
	w.varint(num, uint64(t.UnixNano()))
}

func (w *recordWriter) bytes() []byte { return w.b }

type wireField struct {
	num protowire.Number
	typ protowire.Type
	raw []byte
}

func (f wireField) text() string {
	s, _ := protowire.ConsumeString(f.raw)
	return s
}

func (f wireField) varint() uint64 {
	v, _ := protowire.ConsumeVarint(f.raw)
	return v
}

func (f wireField) boolean() bool { return protowire.DecodeBool(f.varint()) }

func (f wireField) double() float64 {
	v, _ := protowire.ConsumeFixed64(f.raw)
	return math.Float64frombits(v)
}

func (f wireField) time() time.Time {
	return time.Unix(0, int64(f.varint())).UTC()
}

// decodeRecord walks every field of a record. Unknown fields are handed to
// visit as well and simply ignored by the callers.
func decodeRecord(b []byte, visit func(f wireField)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return protowire.ParseError(m)
		}
		visit(wireField{num: num, typ: typ, raw: b[:m]})
		b = b[m:]
	}
	return nil
}
