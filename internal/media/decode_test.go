package media

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestDecode_DataURI(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name  string
		field string
		want  string
	}{
		{
			name:  "with data prefix",
			field: "data:image/png;base64," + encoded,
			want:  "image/png",
		},
		{
			name:  "without data prefix",
			field: "image/png;base64," + encoded,
			want:  "image/png",
		},
		{
			name:  "document marker",
			field: "data:application/pdf;base64," + encoded,
			want:  "application/pdf",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mimeType, data, err := Decode(tc.field, KindImage)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if mimeType != tc.want {
				t.Errorf("mime type = %q, want %q", mimeType, tc.want)
			}
			if !bytes.Equal(data, raw) {
				t.Errorf("decoded bytes = %v, want %v", data, raw)
			}
		})
	}
}

func TestDecode_DefaultMimeTypes(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("hello"))

	mimeType, _, err := Decode(encoded, KindImage)
	if err != nil {
		t.Fatalf("Decode image failed: %v", err)
	}
	if mimeType != "image/jpeg" {
		t.Errorf("image default = %q, want image/jpeg", mimeType)
	}

	mimeType, _, err = Decode(encoded, KindDocument)
	if err != nil {
		t.Fatalf("Decode document failed: %v", err)
	}
	if mimeType != "application/pdf" {
		t.Errorf("document default = %q, want application/pdf", mimeType)
	}
}

func TestDecode_ZipSignatureOverridesDocumentDefault(t *testing.T) {
	// Base64 of a zip local file header, as produced for DOCX files.
	encoded := base64.StdEncoding.EncodeToString([]byte("PK\x03\x04\x0a\x00"))
	if encoded[:5] != "UEsDB" {
		t.Fatalf("test payload does not start with zip signature: %q", encoded)
	}

	mimeType, _, err := Decode(encoded, KindDocument)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	if mimeType != want {
		t.Errorf("mime type = %q, want %q", mimeType, want)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, _, err := Decode("", KindImage); err == nil {
		t.Error("expected error for empty attachment")
	}
	if _, _, err := Decode("data:image/png;base64,!!!notbase64!!!", KindImage); err == nil {
		t.Error("expected error for invalid base64 payload")
	}
}
