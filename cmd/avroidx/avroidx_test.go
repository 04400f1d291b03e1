package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/avroidx/binary"
	"github.com/signadot/avroidx/container"
	"github.com/signadot/avroidx/datum"
	"github.com/signadot/avroidx/schema"
)

const tagsSchema = `{"type": "record", "name": "T", "fields": [
  {"name": "id", "type": "long"},
  {"name": "tags", "type": {"type": "array", "items": "string"}}
]}`

func tagsValue(id int64, tags ...string) []byte {
	b := binary.AppendLong(nil, id)
	if len(tags) > 0 {
		b = binary.AppendBlockHeader(b, int64(len(tags)))
		for _, t := range tags {
			b = binary.AppendString(b, t)
		}
	}
	return binary.AppendBlockHeader(b, 0)
}

func writeTemp(t *testing.T, name string, d []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, d, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSkipRawFile(t *testing.T) {
	s, err := schema.Parse([]byte(tagsSchema))
	if err != nil {
		t.Fatal(err)
	}
	data := append(tagsValue(1, "a", "b"), tagsValue(2)...)
	file := writeTemp(t, "values.bin", data)
	for _, sized := range []bool{false, true} {
		cfg := &SkipConfig{MainConfig: &MainConfig{}, Sized: sized}
		got, err := skipFile(cfg, s, file)
		if err != nil {
			t.Fatal(err)
		}
		want := &skipResult{File: file, Values: 2, Bytes: int64(len(data))}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("sized=%t (-want +got):\n%s", sized, diff)
		}
	}
}

func TestSkipRawFileTruncated(t *testing.T) {
	s, err := schema.Parse([]byte(tagsSchema))
	if err != nil {
		t.Fatal(err)
	}
	data := tagsValue(1, "abc")
	file := writeTemp(t, "values.bin", data[:len(data)-2])
	_, err = skipFile(&SkipConfig{MainConfig: &MainConfig{}}, s, file)
	if got := datum.KindOf(err); got != datum.KindTruncatedStream {
		t.Errorf("got kind %s, err %v", got, err)
	}
}

func TestMapRawFile(t *testing.T) {
	s, err := schema.Parse([]byte(tagsSchema))
	if err != nil {
		t.Fatal(err)
	}
	v0 := tagsValue(1, "a", "b", "c")
	file := writeTemp(t, "values.bin", append(v0, tagsValue(2)...))
	cfg := &MapConfig{MainConfig: &MainConfig{J: true}, Chunk: 2}
	idx, err := mapFile(cfg, s, file)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := cfg.encode(buf, idx); err != nil {
		t.Fatal(err)
	}
	// id, then the block count at 1; items at 2, 4, 6; end at 8
	want := `[{"__offset": 0, "tags": [2, 6, 8]}, {"__offset": 9, "tags": []}]`
	if diff := cmp.Diff(compact(want), compact(buf.String())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestContainerCommands(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := container.NewWriter(buf, []byte(tagsSchema), container.WithCodec(container.DeflateCodec), container.WithMeta("owner", []byte("me")))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBlock(2, append(tagsValue(1, "x"), tagsValue(2, "y", "z")...)); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBlock(1, tagsValue(3)); err != nil {
		t.Fatal(err)
	}
	w.Close()
	file := writeTemp(t, "values.avro", buf.Bytes())

	res, err := skipFile(&SkipConfig{MainConfig: &MainConfig{}, Container: true}, nil, file)
	if err != nil {
		t.Fatal(err)
	}
	if res.Values != 3 || res.Blocks != 2 {
		t.Errorf("got %+v", res)
	}

	info, err := blocksFile(&BlocksConfig{MainConfig: &MainConfig{}, Check: true}, file)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"owner": "me"}, info.Meta); diff != "" {
		t.Errorf("meta (-want +got):\n%s", diff)
	}
	if info.Codec != container.DeflateCodec || info.Schema != schema.RecordType || len(info.Blocks) != 2 {
		t.Errorf("got %+v", info)
	}
	if got := info.Blocks[1].Start; got != info.Blocks[0].Offset+info.Blocks[0].Size+container.SyncSize {
		t.Errorf("block 1 starts at %d", got)
	}

	idx, err := mapFile(&MapConfig{MainConfig: &MainConfig{}, Container: true}, nil, file)
	if err != nil {
		t.Fatal(err)
	}
	blocks := idx.([]blockIndex)
	if len(blocks) != 2 || blocks[0].Absolute || len(blocks[0].Values) != 2 {
		t.Errorf("got %+v", blocks)
	}
}

func TestLoadSchemaUsage(t *testing.T) {
	if _, err := loadSchema("", false); err == nil {
		t.Error("raw input without a schema")
	}
	if _, err := loadSchema("s.avsc", true); err == nil {
		t.Error("container input with a schema")
	}
	if s, err := loadSchema("", true); s != nil || err != nil {
		t.Errorf("got %v, %v", s, err)
	}
}

func compact(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\n', '\t':
			continue
		}
		b = append(b, s[i])
	}
	return string(b)
}

func TestZeroWidthSchema(t *testing.T) {
	empty := &schema.Record{Name: schema.Name{Name: "Empty"}}
	file := writeTemp(t, "values.bin", []byte{0x00, 0x00})
	for _, s := range []schema.Schema{schema.Null(), empty, &schema.Fixed{Name: schema.Name{Name: "F"}}} {
		if _, err := skipFile(&SkipConfig{MainConfig: &MainConfig{}}, s, file); !errors.Is(err, errZeroWidth) {
			t.Errorf("skip %s: got %v", s.Type(), err)
		}
		if _, err := mapFile(&MapConfig{MainConfig: &MainConfig{}}, s, file); !errors.Is(err, errZeroWidth) {
			t.Errorf("map %s: got %v", s.Type(), err)
		}
	}

	// no input, no values
	file = writeTemp(t, "empty.bin", nil)
	res, err := skipFile(&SkipConfig{MainConfig: &MainConfig{}}, schema.Null(), file)
	if err != nil {
		t.Fatal(err)
	}
	if res.Values != 0 {
		t.Errorf("got %d values", res.Values)
	}
}

func TestFileLog(t *testing.T) {
	old := theLog
	defer func() { theLog = old }()
	buf := &bytes.Buffer{}
	theLog = slog.New(slog.NewTextHandler(buf, nil))

	fileLog("values.bin").Info("skipped block", "block", 3)
	if got := buf.String(); !strings.Contains(got, "file=values.bin block=3") {
		t.Errorf("got %q", got)
	}
}
