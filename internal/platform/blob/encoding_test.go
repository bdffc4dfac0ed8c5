package blob

import "testing"

func TestDecodeTextUTF8(t *testing.T) {
	content, err := DecodeText([]byte("Golv;Parkett;355,8 m²;1;F1"))
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if content != "Golv;Parkett;355,8 m²;1;F1" {
		t.Errorf("content = %q", content)
	}
}

func TestDecodeTextStripsUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Door;Door W;2")...)
	content, err := DecodeText(data)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if content != "Door;Door W;2" {
		t.Errorf("content = %q", content)
	}
}

func TestDecodeTextUTF16LE(t *testing.T) {
	data := []byte{0xFF, 0xFE, 'T', 0, 'a', 0, 'k', 0}
	content, err := DecodeText(data)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if content != "Tak" {
		t.Errorf("content = %q, want Tak", content)
	}
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	// "Vägg" in Latin-1: 0xE4 is not valid UTF-8 on its own.
	data := []byte{'V', 0xE4, 'g', 'g'}
	content, err := DecodeText(data)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if content != "Vägg" {
		t.Errorf("content = %q, want Vägg", content)
	}
}

func TestDecodeTextEmpty(t *testing.T) {
	content, err := DecodeText(nil)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if content != "" {
		t.Errorf("content = %q, want empty", content)
	}
}
