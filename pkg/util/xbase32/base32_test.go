package xbase32

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustHex 将 32 个十六进制字符转换为 16 字节数组。
func mustHex(t *testing.T, s string) [DecodedLen]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, DecodedLen)
	var out [DecodedLen]byte
	copy(out[:], b)
	return out
}

func TestEncode_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want string
	}{
		{"zero", "00000000000000000000000000000000", "00000000000000000000000000"},
		{"one", "00000000000000000000000000000001", "00000000000000000000000001"},
		{"max", "ffffffffffffffffffffffffffffffff", "7zzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"high bit", "80000000000000000000000000000000", "40000000000000000000000000"},
		{"sequential bytes", "000102030405060708090a0b0c0d0e0f", "00041061050r3gg28a1c60t3gf"},
		{"uuidv7", "01890a5dac96774bbcceb302099a8057", "01h455vb4pex5vsknk084sn02q"},
		{"uuidv7 second", "0188bac7a8b4711ca9e1d2b1c9fc3b1b", "01h2xcfa5me4eakrejp74zrerv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := mustHex(t, tt.hex)
			assert.Equal(t, tt.want, EncodeToString(src))

			enc := Encode(src)
			assert.Equal(t, tt.want, string(enc[:]))

			got, err := Decode(tt.want)
			require.NoError(t, err)
			assert.Equal(t, src, got)
		})
	}
}

func TestEncode_FirstCharacterBounded(t *testing.T) {
	// 130 位中最高 2 位恒为 0，首字符只能是 0-7
	for range 1000 {
		var src [DecodedLen]byte
		_, err := rand.Read(src[:])
		require.NoError(t, err)
		s := EncodeToString(src)
		assert.LessOrEqual(t, s[0], byte('7'), "encoded %q", s)
	}
}

func TestDecode_RoundTripRandom(t *testing.T) {
	for range 1000 {
		var src [DecodedLen]byte
		_, err := rand.Read(src[:])
		require.NoError(t, err)
		got, err := Decode(EncodeToString(src))
		require.NoError(t, err)
		assert.Equal(t, src, got)
	}
}

func TestDecode_InvalidLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"25 chars", strings.Repeat("0", 25)},
		{"27 chars", strings.Repeat("0", 27)},
		{"uuid string", "01890a5d-ac96-774b-bcce-b302099a8057"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			assert.ErrorIs(t, err, ErrInvalidLength)
			assert.NotErrorIs(t, err, ErrInvalidCharacter)
		})
	}
}

func TestDecode_InvalidCharacter(t *testing.T) {
	base := "01h455vb4pex5vsknk084sn02q"
	for _, c := range []byte{'i', 'l', 'o', 'u', 'I', 'L', 'O', 'U', 'A', 'Z', '-', '_', ' ', 0x00, 0x80, 0xFF} {
		for _, pos := range []int{0, 13, 25} {
			b := []byte(base)
			b[pos] = c
			_, err := DecodeBytes(b)
			assert.ErrorIs(t, err, ErrInvalidCharacter, "char %q at %d", c, pos)
		}
	}
}

func TestDecode_UppercaseRejected(t *testing.T) {
	_, err := Decode("01H455VB4PEX5VSKNK084SN02Q")
	assert.ErrorIs(t, err, ErrInvalidCharacter)
}

func TestDecode_OverflowBitsDropped(t *testing.T) {
	// 编解码层不检查首字符范围，超出 128 位的高位直接丢弃
	got, err := Decode("8zzzzzzzzzzzzzzzzzzzzzzzzz")
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "1fffffffffffffffffffffffffffffff"), got)
}

func TestIndex(t *testing.T) {
	for i := range len(Alphabet) {
		idx, ok := Index(Alphabet[i])
		require.True(t, ok)
		assert.Equal(t, uint8(i), idx)
	}

	for _, c := range []byte{'i', 'l', 'o', 'u', 'A', '-', '_', 0x00, 0xFF} {
		_, ok := Index(c)
		assert.False(t, ok, "char %q", c)
	}
}

func TestValidString(t *testing.T) {
	assert.True(t, ValidString("01h455vb4pex5vsknk084sn02q"))
	assert.True(t, ValidString("8zzzzzzzzzzzzzzzzzzzzzzzzz"))
	assert.False(t, ValidString(""))
	assert.False(t, ValidString("01h455vb4pex5vsknk084sn02"))
	assert.False(t, ValidString("01h455vb4pex5vsknk084sn0iq"))
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 32)
	assert.NotContains(t, Alphabet, "i")
	assert.NotContains(t, Alphabet, "l")
	assert.NotContains(t, Alphabet, "o")
	assert.NotContains(t, Alphabet, "u")

	seen := make(map[rune]bool)
	for _, c := range Alphabet {
		assert.False(t, seen[c], "duplicate %q", c)
		seen[c] = true
	}
}
