package packet

import (
	"bytes"
	"errors"
	"testing"
)

func TestReader_Scalars(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(0xFE)
	w.WriteInt8(-3)
	w.WriteUint16(0xBEEF)
	w.WriteInt16(-12345)
	w.WriteUint24(0xABCDEF)
	w.WriteUint32(0xDEADBEEF)
	w.WriteInt32(-2_000_000_000)
	w.WriteUint64(0x1122334455667788)
	w.WriteInt64(-9_000_000_000)
	w.WriteFloat32(3.25)
	w.WriteFloat64(-0.5)
	w.WriteBool(true)
	w.WriteBool(false)

	r := NewReader(w.Bytes())

	if v, err := r.ReadUint8(); err != nil || v != 0xFE {
		t.Fatalf("ReadUint8 = %v, %v", v, err)
	}
	if v, err := r.ReadInt8(); err != nil || v != -3 {
		t.Fatalf("ReadInt8 = %v, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0xBEEF {
		t.Fatalf("ReadUint16 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt16(); err != nil || v != -12345 {
		t.Fatalf("ReadInt16 = %v, %v", v, err)
	}
	if v, err := r.ReadUint24(); err != nil || v != 0xABCDEF {
		t.Fatalf("ReadUint24 = %#x, %v", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("ReadUint32 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt32(); err != nil || v != -2_000_000_000 {
		t.Fatalf("ReadInt32 = %v, %v", v, err)
	}
	if v, err := r.ReadUint64(); err != nil || v != 0x1122334455667788 {
		t.Fatalf("ReadUint64 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != -9_000_000_000 {
		t.Fatalf("ReadInt64 = %v, %v", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 3.25 {
		t.Fatalf("ReadFloat32 = %v, %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != -0.5 {
		t.Fatalf("ReadFloat64 = %v, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || !v {
		t.Fatalf("ReadBool = %v, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v {
		t.Fatalf("ReadBool = %v, %v", v, err)
	}
	if !r.EOF() {
		t.Fatalf("reader not at EOF, %d bytes left", r.Remaining())
	}
}

func TestReader_String(t *testing.T) {
	w := NewWriter()
	w.WriteString("hi")

	want := []byte{0x0B, 0x02, 0x68, 0x69}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("encoded %x, want %x", got, want)
	}

	r := NewReader(w.Bytes())
	s, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != "hi" {
		t.Fatalf("ReadString = %q, want %q", s, "hi")
	}
}

func TestReader_EmptyString(t *testing.T) {
	w := NewWriter()
	w.WriteString("")

	if got := w.Bytes(); !bytes.Equal(got, []byte{0x00}) {
		t.Fatalf("encoded %x, want 00", got)
	}

	s, err := NewReader(w.Bytes()).ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != "" {
		t.Fatalf("ReadString = %q, want empty", s)
	}
}

func TestReader_StringUnicode(t *testing.T) {
	const text = "пример テキスト"
	w := NewWriter()
	w.WriteString(text)

	s, err := NewReader(w.Bytes()).ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != text {
		t.Fatalf("ReadString = %q, want %q", s, text)
	}
}

func TestReader_StringBadLeadByte(t *testing.T) {
	_, err := NewReader([]byte{0x05, 0x01, 0x41}).ReadString()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}

func TestReader_StringTruncated(t *testing.T) {
	// Declares 10 bytes but only carries 2.
	_, err := NewReader([]byte{0x0B, 0x0A, 0x68, 0x69}).ReadString()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}

func TestReader_Uleb128(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 40}
	for _, v := range values {
		w := NewWriter()
		w.WriteUleb128(v)

		got, err := NewReader(w.Bytes()).ReadUleb128()
		if err != nil {
			t.Fatalf("ReadUleb128(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("ReadUleb128 = %d, want %d", got, v)
		}
	}
}

func TestReader_Uleb128MultiByte(t *testing.T) {
	// 300 = 0xAC 0x02
	v, err := NewReader([]byte{0xAC, 0x02}).ReadUleb128()
	if err != nil {
		t.Fatalf("ReadUleb128: %v", err)
	}
	if v != 300 {
		t.Fatalf("ReadUleb128 = %d, want 300", v)
	}
}

func TestReader_Uleb128Overflow(t *testing.T) {
	data := bytes.Repeat([]byte{0x80}, 11)
	_, err := NewReader(data).ReadUleb128()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}

func TestReader_IntList(t *testing.T) {
	list := []int32{7, -9, 2_000_000}
	w := NewWriter()
	w.WriteIntList(list)

	got, err := NewReader(w.Bytes()).ReadIntList()
	if err != nil {
		t.Fatalf("ReadIntList: %v", err)
	}
	if len(got) != len(list) {
		t.Fatalf("ReadIntList len = %d, want %d", len(got), len(list))
	}
	for i := range list {
		if got[i] != list[i] {
			t.Fatalf("ReadIntList[%d] = %d, want %d", i, got[i], list[i])
		}
	}
}

func TestReader_IntListEmpty(t *testing.T) {
	w := NewWriter()
	w.WriteIntList(nil)

	got, err := NewReader(w.Bytes()).ReadIntList()
	if err != nil {
		t.Fatalf("ReadIntList: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ReadIntList len = %d, want 0", len(got))
	}
}

func TestReader_IntListNegativeCount(t *testing.T) {
	_, err := NewReader([]byte{0xFF, 0xFF}).ReadIntList()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}

func TestReader_IntListTruncated(t *testing.T) {
	// Count says 2 but only one int32 follows.
	_, err := NewReader([]byte{0x02, 0x00, 0x01, 0x00, 0x00, 0x00}).ReadIntList()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}

func TestReader_ShortRead(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.ReadUint32(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}

func TestReader_ReadAll(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	if _, err := r.ReadUint8(); err != nil {
		t.Fatal(err)
	}
	rest := r.ReadAll()
	if !bytes.Equal(rest, []byte{0x02, 0x03}) {
		t.Fatalf("ReadAll = %x, want 0203", rest)
	}
	if !r.EOF() {
		t.Fatal("reader must be at EOF after ReadAll")
	}
}
