package chat

import (
	"strings"
	"testing"
)

func TestApproxDecodedSize(t *testing.T) {
	cases := []struct {
		encoded string
		want    int64
	}{
		{"", 0},
		{"QUJD", 3},
		{strings.Repeat("A", 100), 75},
		{strings.Repeat("A", 7), 5},
	}
	for _, c := range cases {
		if got := ApproxDecodedSize(c.encoded); got != c.want {
			t.Errorf("ApproxDecodedSize(len %d) = %d, want %d", len(c.encoded), got, c.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "unknown size"},
		{-1, "unknown size"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{15 * 1024 * 1024, "15 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, c := range cases {
		if got := FormatFileSize(c.bytes); got != c.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", c.bytes, got, c.want)
		}
	}
}

func TestBuildParts_MessageOnly(t *testing.T) {
	parts := BuildParts("Hello", nil)
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0].Text != "Hello" {
		t.Fatalf("unexpected text: %q", parts[0].Text)
	}
}

func TestBuildParts_AttachmentWithData(t *testing.T) {
	att := &Attachment{Name: "report.pdf", Type: "application/pdf", Size: 2048, Data: "QUJD"}
	parts := BuildParts("summarize this", att)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if !strings.Contains(parts[1].Text, `"report.pdf"`) {
		t.Errorf("note should name the attachment: %q", parts[1].Text)
	}
	if !strings.Contains(parts[1].Text, "2.0 KB") {
		t.Errorf("note should include the formatted size: %q", parts[1].Text)
	}
	if parts[2].InlineData == nil {
		t.Fatal("expected inline data part")
	}
	if parts[2].InlineData.MIMEType != "application/pdf" || parts[2].InlineData.Data != "QUJD" {
		t.Errorf("unexpected inline data: %+v", parts[2].InlineData)
	}
}

func TestBuildParts_AttachmentDefaults(t *testing.T) {
	att := &Attachment{Data: "QUJD"}
	parts := BuildParts("", att)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if !strings.Contains(parts[0].Text, `"attachment"`) {
		t.Errorf("nameless attachment should fall back to a generic name: %q", parts[0].Text)
	}
	if parts[1].InlineData.MIMEType != "application/octet-stream" {
		t.Errorf("typeless attachment should default its MIME type, got %q", parts[1].InlineData.MIMEType)
	}
}

func TestBuildParts_MetadataOnly(t *testing.T) {
	att := &Attachment{Name: "notes.txt", Type: "text/plain", Size: 100}
	parts := BuildParts("", att)
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if !strings.Contains(parts[0].Text, "contents were unavailable") {
		t.Errorf("expected unavailable-contents note, got %q", parts[0].Text)
	}
}

func TestBuildParts_NothingProvided(t *testing.T) {
	parts := BuildParts("", nil)
	if len(parts) != 1 {
		t.Fatalf("expected 1 fallback part, got %d", len(parts))
	}
	if !strings.Contains(parts[0].Text, "no prompt text or attachment") {
		t.Errorf("unexpected fallback text: %q", parts[0].Text)
	}
}
