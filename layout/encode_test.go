package layout

import (
	"bytes"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/romgen/errors"
)

func testPayload() []byte {
	p := make([]byte, MaxSize)
	for i := range p {
		p[i] = byte(i*37 + 11)
	}
	return p
}

func mustEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := NewEncoder(DefaultGeometry())
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	return enc
}

func TestEncodeDeterministic(t *testing.T) {
	enc := mustEncoder(t)
	a, err := enc.Encode(testPayload())
	if err != nil {
		t.Fatal(err)
	}
	b, err := enc.Encode(testPayload())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two encodes of the same payload differ")
	}
}

func TestEncodeOrderAndCount(t *testing.T) {
	enc := mustEncoder(t)
	ps, err := enc.Encode(testPayload())
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != MaxSize*BitsPerByte {
		t.Fatalf("got %d placements, want %d", len(ps), MaxSize*BitsPerByte)
	}
	for n, p := range ps {
		want := BitAddress{Byte: n / BitsPerByte, Bit: n % BitsPerByte}
		if p.Addr != want {
			t.Fatalf("placement %d has address %v, want %v", n, p.Addr, want)
		}
	}
}

func TestEncodeBitFidelity(t *testing.T) {
	enc := mustEncoder(t)
	payload := testPayload()
	ps, err := enc.Encode(payload)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range ps {
		bit := payload[p.Addr.Byte] >> uint(p.Addr.Bit) & 1
		if (bit == 1) != (p.State == Set) {
			t.Fatalf("%v: state %v, bit %d", p.Addr, p.State, bit)
		}
	}

	got, err := enc.Geometry().Decode(Index(ps).Lookup)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("decoded payload differs from input")
	}
}

func TestEncodeBoundaryPayloads(t *testing.T) {
	enc := mustEncoder(t)

	t.Run("all zero", func(t *testing.T) {
		ps, err := enc.Encode(make([]byte, MaxSize))
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range ps {
			if p.State != Clear {
				t.Fatalf("%v is %v", p.Addr, p.State)
			}
		}
	})

	t.Run("all ones", func(t *testing.T) {
		ps, err := enc.Encode(bytes.Repeat([]byte{0xFF}, MaxSize))
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range ps {
			if p.State != Set {
				t.Fatalf("%v is %v", p.Addr, p.State)
			}
		}
	})

	t.Run("single low bit", func(t *testing.T) {
		payload := make([]byte, MaxSize)
		payload[0] = 0x01
		ps, err := enc.Encode(payload)
		if err != nil {
			t.Fatal(err)
		}
		set := 0
		for _, p := range ps {
			if p.State == Set {
				set++
				if p.Addr != (BitAddress{0, 0}) {
					t.Errorf("unexpected SET at %v", p.Addr)
				}
			}
		}
		if set != 1 {
			t.Errorf("got %d SET placements, want 1", set)
		}
	})
}

func TestEncodeRejectsWrongLength(t *testing.T) {
	enc := mustEncoder(t)
	for _, n := range []int{0, MaxSize - 1, MaxSize + 1} {
		ps, err := enc.Encode(make([]byte, n))
		if err == nil {
			t.Errorf("len %d: expected error", n)
		}
		if ps != nil {
			t.Errorf("len %d: got %d placements on error", n, len(ps))
		}
		var re *errors.Error
		if !stderrors.As(err, &re) || re.Kind != errors.KindInvalidData {
			t.Errorf("len %d: got %v, want invalid_data", n, err)
		}
	}
}

func TestNewEncoderRejectsInvalidGeometry(t *testing.T) {
	g := DefaultGeometry()
	g.PlaneWrap = 0
	if _, err := NewEncoder(g); err == nil {
		t.Error("expected error for zero plane wrap")
	}
}

func TestDecodeMissingBlock(t *testing.T) {
	enc := mustEncoder(t)
	ps, err := enc.Encode(testPayload())
	if err != nil {
		t.Fatal(err)
	}
	m := Index(ps)
	delete(m, enc.Geometry().AddressOf(100, 3))
	if _, err := enc.Geometry().Decode(m.Lookup); err == nil {
		t.Error("expected error for missing coordinate")
	}
}

func TestStateOf(t *testing.T) {
	for b := 0; b < BitsPerByte; b++ {
		if StateOf(1<<uint(b), b) != Set {
			t.Errorf("bit %d of 0x%02x should be set", b, 1<<uint(b))
		}
		if StateOf(^byte(1<<uint(b)), b) != Clear {
			t.Errorf("bit %d should be clear", b)
		}
	}
	if Set.String() != "SET" || Clear.String() != "CLEAR" {
		t.Errorf("String: %q %q", Set, Clear)
	}
}
