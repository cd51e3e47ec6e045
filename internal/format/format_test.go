package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"rotodendron/internal/model"
)

func sampleRecords() []model.Record {
	pid := int64(1)
	return []model.Record{
		{NodeText: "A", CreationTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Depth: 1, NodeID: 1},
		{NodeText: "B <b>", ParentText: "A", CreationTime: time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC), Depth: 2, NodeID: 2, ParentID: &pid},
	}
}

func TestWriteJSON_DoesNotEscapeHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, sampleRecords(), "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"nodeText":"B <b>"`) {
		t.Fatalf("expected raw text in output, got %s", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single compact line, got %q", out)
	}
}

func TestWriteEDN_Records(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, sampleRecords()[:1], "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `[{:creation-time #inst "2024-03-01T12:00:00.000000000Z" :depth 1 :node-id 1 :node-text "A" :parent-text ""}]` + "\n"
	if buf.String() != want {
		t.Fatalf("edn:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	v := map[string]any{"outer": []any{1, map[string]any{}}, "ok": true, "none": nil}
	if err := WriteEDN(&buf, v, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :none nil\n  :ok true\n  :outer [\n    1\n    {}\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("pretty edn:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Write(&bytes.Buffer{}, 1, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestKeyword(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"nodeId":      "node-id",
		"parent_text": "parent-text",
		"depth":       "depth",
	}
	for in, want := range cases {
		if got := keyword(in); got != want {
			t.Fatalf("keyword(%q) = %q, want %q", in, got, want)
		}
	}
}
