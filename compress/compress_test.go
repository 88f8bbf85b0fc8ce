package compress

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestLZH1RoundTrip(t *testing.T) {
	var codec LZH1
	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		[]byte("the quick brown fox jumps over the lazy dog the quick brown fox"),
	}
	for _, c := range cases {
		compressed, err := codec.Compress(c)
		if err != nil {
			t.Fatalf("Compress(%q): %v", c, err)
		}
		got, err := codec.Decompress(compressed, len(c))
		if err != nil {
			t.Fatalf("Decompress(%q): %v", c, err)
		}
		if !bytes.Equal(got, c) {
			t.Fatalf("round trip mismatch: got %q want %q", got, c)
		}
	}
}

func TestLZH1RoundTripRandom(t *testing.T) {
	var codec LZH1
	rng := rand.New(rand.NewSource(1))
	buf := make([]byte, 2000)
	for i := range buf {
		buf[i] = byte(rng.Intn(6))
	}
	compressed, err := codec.Compress(buf)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got, err := codec.Decompress(compressed, len(buf))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, buf) {
		t.Fatal("round trip mismatch on random data")
	}
}

func TestLZH1DecodedLengthMismatch(t *testing.T) {
	var codec LZH1
	compressed, _ := codec.Compress([]byte("hello world hello world"))
	if _, err := codec.Decompress(compressed, 3); err == nil {
		t.Fatal("expected decoded-length mismatch error")
	}
}

func TestLZORoundTrip(t *testing.T) {
	var codec LZO
	data := []byte("mississippi mississippi mississippi river river river")
	compressed, err := codec.Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got, err := codec.Decompress(compressed, len(data))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %q want %q", got, data)
	}
}

func TestLZOEmptyRoundTrip(t *testing.T) {
	var codec LZO
	compressed, err := codec.Compress(nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got, err := codec.Decompress(compressed, 0)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}
