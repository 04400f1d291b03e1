package datum

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/avroidx/binary"
	"github.com/signadot/avroidx/schema"
)

// sentinel is appended after every encoded value so tests can tell that a
// traversal stopped exactly at the value's end.
const sentinel = 0xEE

func reader(b []byte) *binary.Reader {
	buf := make([]byte, len(b)+1)
	copy(buf, b)
	buf[len(b)] = sentinel
	return binary.NewReader(bytes.NewReader(buf))
}

func longs(vs ...int64) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.AppendLong(b, v)
	}
	return b
}

// longArray encodes a plain single-block long array. An empty array is
// just the terminator.
func longArray(vs ...int64) []byte {
	if len(vs) == 0 {
		return binary.AppendBlockHeader(nil, 0)
	}
	b := binary.AppendBlockHeader(nil, int64(len(vs)))
	b = append(b, longs(vs...)...)
	return binary.AppendBlockHeader(b, 0)
}

// countingDecoder counts SkipLong calls, which is how long items
// are consumed.
type countingDecoder struct {
	*binary.Reader
	longs int
}

func (c *countingDecoder) SkipLong() error {
	c.longs++
	return c.Reader.SkipLong()
}

type valueCase struct {
	name   string
	schema schema.Schema
	data   []byte
}

func valueCases() []valueCase {
	movie := &schema.Record{
		Name: schema.Name{Name: "Movie"},
		Fields: []*schema.Field{
			{Name: "id", Schema: schema.Long()},
			{Name: "title", Schema: schema.String()},
			{Name: "scores", Schema: &schema.Array{Items: schema.Double()}},
			{Name: "meta", Schema: &schema.Map{Values: schema.String()}},
			{Name: "rating", Schema: &schema.Union{Branches: []schema.Schema{schema.Null(), schema.Float()}}},
		},
	}
	var movieData []byte
	movieData = binary.AppendLong(movieData, 42)
	movieData = binary.AppendString(movieData, "Heat")
	movieData = binary.AppendBlockHeader(movieData, 2)
	movieData = binary.AppendDouble(movieData, 7.5)
	movieData = binary.AppendDouble(movieData, 8.0)
	movieData = binary.AppendBlockHeader(movieData, 0)
	movieData = binary.AppendBlockHeader(movieData, 1)
	movieData = binary.AppendString(movieData, "lang")
	movieData = binary.AppendString(movieData, "en")
	movieData = binary.AppendBlockHeader(movieData, 0)
	movieData = binary.AppendLong(movieData, 1)
	movieData = binary.AppendFloat(movieData, 4.5)

	list := &schema.Record{Name: schema.Name{Name: "LongList"}}
	list.Fields = []*schema.Field{
		{Name: "value", Schema: schema.Long()},
		{Name: "next", Schema: &schema.Union{Branches: []schema.Schema{
			schema.Null(),
			&schema.Link{Name: list.Name, Target: list},
		}}},
	}
	// 1 -> 2 -> 3 -> null
	listData := longs(1, 1, 2, 1, 3, 0)

	sizedMap := binary.AppendSizedBlockHeader(nil, 2, 6)
	sizedMap = binary.AppendString(sizedMap, "a")
	sizedMap = binary.AppendInt(sizedMap, 1)
	sizedMap = binary.AppendString(sizedMap, "b")
	sizedMap = binary.AppendInt(sizedMap, -1)
	sizedMap = binary.AppendBlockHeader(sizedMap, 0)

	return []valueCase{
		{"null", schema.Null(), nil},
		{"boolean", schema.Boolean(), binary.AppendBoolean(nil, true)},
		{"int", schema.Int(), binary.AppendInt(nil, -70000)},
		{"long", schema.Long(), binary.AppendLong(nil, math.MaxInt64)},
		{"float", schema.Float(), binary.AppendFloat(nil, 3.25)},
		{"double", schema.Double(), binary.AppendDouble(nil, 3.25)},
		{"string", schema.String(), binary.AppendString(nil, "hello, world")},
		{"bytes", schema.Bytes(), binary.AppendBytes(nil, []byte{1, 2, 3, 4})},
		{"fixed", &schema.Fixed{Name: schema.Name{Name: "F"}, Size: 5}, []byte{1, 2, 3, 4, 5}},
		{"enum", &schema.Enum{Name: schema.Name{Name: "E"}, Symbols: []string{"A", "B", "C"}}, binary.AppendLong(nil, 2)},
		{"empty array", &schema.Array{Items: schema.Long()}, longArray()},
		{"array", &schema.Array{Items: schema.Long()}, longArray(1, -2, 300)},
		{"sized map", &schema.Map{Values: schema.Int()}, sizedMap},
		{"union null", &schema.Union{Branches: []schema.Schema{schema.Null(), schema.Long()}}, longs(0)},
		{"union long", &schema.Union{Branches: []schema.Schema{schema.Null(), schema.Long()}}, longs(1, 99)},
		{"record", movie, movieData},
		{"recursive record", list, listData},
		{"link", &schema.Link{Name: list.Name, Target: list}, listData},
		{"array of records", &schema.Array{Items: movie}, append(append(binary.AppendBlockHeader(nil, 2), append(movieData, movieData...)...), 0)},
	}
}

func TestSkipConsumesExactly(t *testing.T) {
	for _, tc := range valueCases() {
		t.Run(tc.name, func(t *testing.T) {
			r := reader(tc.data)
			if err := Skip(r, tc.schema); err != nil {
				t.Fatalf("Skip failed: %v", err)
			}
			if r.Position() != int64(len(tc.data)) {
				t.Errorf("Skip stopped at %d, want %d", r.Position(), len(tc.data))
			}
		})
	}
}

func TestSkipEmptyArray(t *testing.T) {
	data := longArray()
	if diff := cmp.Diff([]byte{0}, data); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	r := reader(data)
	if err := Skip(r, &schema.Array{Items: schema.Long()}); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if r.Position() != 1 {
		t.Errorf("Skip stopped at %d, want 1", r.Position())
	}
}

func TestSkipArraySingleBlock(t *testing.T) {
	a := &schema.Array{Items: schema.Long()}
	data := longArray(5, 6, 7, 8)
	d := &countingDecoder{Reader: reader(data)}
	if err := Skip(d, a); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if d.longs != 4 {
		t.Errorf("decoded %d items, want 4", d.longs)
	}
	if d.Position() != int64(len(data)) {
		t.Errorf("position %d, want %d", d.Position(), len(data))
	}
}

func TestSkipMapEntries(t *testing.T) {
	m := &schema.Map{Values: schema.Long()}
	data := binary.AppendBlockHeader(nil, 3)
	for i, k := range []string{"x", "y", "z"} {
		data = binary.AppendString(data, k)
		data = binary.AppendLong(data, int64(i))
	}
	data = binary.AppendBlockHeader(data, 0)
	d := &countingDecoder{Reader: reader(data)}
	if err := Skip(d, m); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if d.longs != 3 {
		t.Errorf("decoded %d values, want 3", d.longs)
	}
	if d.Position() != int64(len(data)) {
		t.Errorf("position %d, want %d", d.Position(), len(data))
	}
}

func TestSkipSizedBlockDecodesItems(t *testing.T) {
	a := &schema.Array{Items: schema.Long()}
	// the byte size hint is deliberately wrong: Skip must not use it
	data := binary.AppendSizedBlockHeader(nil, 3, 1000)
	data = append(data, longs(1, 2, 3)...)
	data = binary.AppendBlockHeader(data, 0)

	d := &countingDecoder{Reader: reader(data)}
	if err := Skip(d, a); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if d.longs != 3 {
		t.Errorf("decoded %d items, want 3", d.longs)
	}
	if d.Position() != int64(len(data)) {
		t.Errorf("position %d, want %d", d.Position(), len(data))
	}
}

func TestSkipSizedUsesHint(t *testing.T) {
	a := &schema.Array{Items: schema.String()}
	// items are not valid strings; only the size is trusted
	garbage := []byte{0x7f, 0x7f, 0x7f, 0x7f}
	data := binary.AppendSizedBlockHeader(nil, 2, int64(len(garbage)))
	data = append(data, garbage...)
	data = binary.AppendBlockHeader(data, 1)
	data = binary.AppendString(data, "ok")
	data = binary.AppendBlockHeader(data, 0)

	r := reader(data)
	if err := SkipSized(r, a); err != nil {
		t.Fatalf("SkipSized failed: %v", err)
	}
	if r.Position() != int64(len(data)) {
		t.Errorf("position %d, want %d", r.Position(), len(data))
	}
	if err := Skip(reader(data), a); err == nil {
		t.Error("Skip should decode the garbage items and fail")
	}
}

func TestSkipSizedMatchesSkip(t *testing.T) {
	for _, tc := range valueCases() {
		t.Run(tc.name, func(t *testing.T) {
			r := reader(tc.data)
			if err := SkipSized(r, tc.schema); err != nil {
				t.Fatalf("SkipSized failed: %v", err)
			}
			if r.Position() != int64(len(tc.data)) {
				t.Errorf("SkipSized stopped at %d, want %d", r.Position(), len(tc.data))
			}
		})
	}
}

func TestUnionDiscriminant(t *testing.T) {
	u := &schema.Union{Branches: []schema.Schema{schema.Null(), schema.Long()}}

	d := &countingDecoder{Reader: reader(longs(1, 12345))}
	if err := Skip(d, u); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if d.longs != 1 {
		t.Errorf("expected the long branch to be decoded")
	}

	for _, idx := range []int64{2, -1} {
		err := Skip(reader(longs(idx)), u)
		var de *InvalidDiscriminantError
		if !errors.As(err, &de) {
			t.Fatalf("discriminant %d: expected InvalidDiscriminantError, got %v", idx, err)
		}
		want := &InvalidDiscriminantError{Index: idx, BranchCount: 2}
		if diff := cmp.Diff(want, de); diff != "" {
			t.Errorf("discriminant %d (-want +got):\n%s", idx, diff)
		}
		if KindOf(err) != KindInvalidUnionDiscriminant {
			t.Errorf("kind %v", KindOf(err))
		}
		_, mapErr := Map(reader(longs(idx)), u)
		if !errors.As(mapErr, &de) {
			t.Errorf("Map: expected InvalidDiscriminantError, got %v", mapErr)
		}
	}
}

func TestSkipErrorContext(t *testing.T) {
	rec := &schema.Record{
		Name: schema.Name{Name: "R"},
		Fields: []*schema.Field{
			{Name: "id", Schema: schema.Long()},
			{Name: "tags", Schema: &schema.Map{Values: &schema.Array{Items: schema.String()}}},
		},
	}
	data := binary.AppendLong(nil, 1)
	data = binary.AppendBlockHeader(data, 1)
	data = binary.AppendString(data, "k")
	data = binary.AppendBlockHeader(data, 2)
	data = binary.AppendString(data, "first")
	data = binary.AppendLong(data, 10) // second string claims 10 bytes

	tests := []struct {
		name string
		run  func(d Decoder) error
	}{
		{"skip", func(d Decoder) error { return Skip(d, rec) }},
		{"map", func(d Decoder) error { _, err := Map(d, rec); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(binary.NewReader(bytes.NewReader(data)))
			if !errors.Is(err, binary.ErrTruncated) {
				t.Fatalf("expected ErrTruncated, got %v", err)
			}
			if KindOf(err) != KindTruncatedStream {
				t.Errorf("kind %v", KindOf(err))
			}
			want := []string{`record field "tags"`, "map value 0", "array element 1"}
			if diff := cmp.Diff(want, Path(err)); diff != "" {
				t.Errorf("path (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMalformedBlockCount(t *testing.T) {
	a := &schema.Array{Items: schema.Long()}
	err := Skip(reader(longs(math.MinInt64)), a)
	if KindOf(err) != KindMalformedVarint {
		t.Errorf("expected KindMalformedVarint, got %v (%v)", KindOf(err), err)
	}
	err = Skip(reader(bytes.Repeat([]byte{0xff}, 10)), a)
	if KindOf(err) != KindMalformedVarint {
		t.Errorf("expected KindMalformedVarint, got %v (%v)", KindOf(err), err)
	}
	if diff := cmp.Diff([]string{"array block 0 count"}, Path(err)); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
}

func TestNegativeStringLength(t *testing.T) {
	err := Skip(reader(longs(-4)), schema.String())
	if KindOf(err) != KindMalformedVarint {
		t.Errorf("expected KindMalformedVarint, got %v", KindOf(err))
	}
}

func TestUnusableSchema(t *testing.T) {
	for _, s := range []schema.Schema{nil, &schema.Link{Name: schema.Name{Name: "Dangling"}}, &schema.Primitive{T: schema.RecordType}} {
		err := Skip(reader(nil), s)
		if KindOf(err) != KindSchemaMismatch {
			t.Errorf("%T: expected KindSchemaMismatch, got %v", s, err)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindIO.String() != "IoError" || KindSchemaMismatch.String() != "SchemaMismatch" {
		t.Error("unexpected kind names")
	}
	if KindOf(errors.New("disk on fire")) != KindIO {
		t.Error("unrelated errors should be KindIO")
	}
}
