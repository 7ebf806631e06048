package encryption

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mattetti/filebuffer"
)

func testKey(seed byte) Key {
	var key Key
	for i := range key {
		key[i] = seed + byte(i)
	}

	return key
}

func mustCipher(t *testing.T, key Key) *Cipher {
	t.Helper()

	c, err := NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	return c
}

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	key := testKey(1)
	c := mustCipher(t, key)
	fp := FingerprintOf(key)

	out := filebuffer.New(nil)
	if err := writeHeader(fp, c, out); err != nil {
		t.Fatalf("writeHeader: %v", err)
	}

	raw := out.Buff.Bytes()
	if len(raw) != HeaderSize {
		t.Fatalf("header is %d bytes, want %d", len(raw), HeaderSize)
	}

	if bytes.Equal(raw, fp[:]) {
		t.Fatal("fingerprint was written in the clear")
	}

	// Each half is enciphered on its own.
	second := Block(fp[BlockSize:])
	c.EncryptBlock(&second)

	if !bytes.Equal(raw[BlockSize:], second[:]) {
		t.Error("second header block depends on the first")
	}

	got, err := readHeader(c, filebuffer.New(raw))
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}

	if got != fp {
		t.Fatal("fingerprint did not survive the round trip")
	}

	if err := verify(key, got); err != nil {
		t.Errorf("verify: %v", err)
	}
}

func TestHeaderWrongKey(t *testing.T) {
	t.Parallel()

	key := testKey(1)
	other := testKey(2)

	var buf bytes.Buffer
	if err := writeHeader(FingerprintOf(key), mustCipher(t, key), &buf); err != nil {
		t.Fatalf("writeHeader: %v", err)
	}

	got, err := readHeader(mustCipher(t, other), &buf)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}

	if err := verify(other, got); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("got %v, want %v", err, ErrInvalidKey)
	}
}

func TestHeaderTruncated(t *testing.T) {
	t.Parallel()

	c := mustCipher(t, testKey(1))

	for _, size := range []int{0, 1, BlockSize, HeaderSize - 1} {
		if _, err := readHeader(c, bytes.NewReader(make([]byte, size))); !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("%d header bytes: got %v, want %v", size, err, ErrUnexpectedEOF)
		}
	}
}
