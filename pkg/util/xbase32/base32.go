package xbase32

import (
	"encoding/binary"
	"fmt"
)

const (
	// Alphabet 编码字母表。
	Alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

	// EncodedLen 编码结果的固定长度。
	EncodedLen = 26

	// DecodedLen 解码结果的固定长度。
	DecodedLen = 16

	// invalid 查找表中非字母表字符的哨兵值。
	invalid = 0xFF
)

// decodeTable 字节值到字母表索引的映射，非字母表字符为 invalid。
var decodeTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalid
	}
	for i := range len(Alphabet) {
		t[Alphabet[i]] = byte(i)
	}
	return t
}()

// Encode 将 16 字节编码为 26 个字符。
//
// 所有字节组合都是合法输入，不会失败。
func Encode(src [DecodedLen]byte) [EncodedLen]byte {
	var dst [EncodedLen]byte
	hi := binary.BigEndian.Uint64(src[:8])
	lo := binary.BigEndian.Uint64(src[8:])
	// 从最低位开始每次取 5 位，25 次移位后 hi 只剩最高 3 位，落在 dst[0]
	for i := EncodedLen - 1; i >= 0; i-- {
		dst[i] = Alphabet[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return dst
}

// EncodeToString 与 [Encode] 相同，返回字符串形式。
func EncodeToString(src [DecodedLen]byte) string {
	dst := Encode(src)
	return string(dst[:])
}

// Decode 将 26 个字符解码为 16 字节。
//
// 长度不为 26 返回 [ErrInvalidLength]，含非字母表字符返回 [ErrInvalidCharacter]。
// 首字符索引大于 7 时超出 128 位的部分被丢弃，不报错。
func Decode(s string) ([DecodedLen]byte, error) {
	if len(s) != EncodedLen {
		return [DecodedLen]byte{}, fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidLength, EncodedLen, len(s))
	}
	var hi, lo uint64
	for i := range EncodedLen {
		v := decodeTable[s[i]]
		if v == invalid {
			return [DecodedLen]byte{}, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, s[i], i)
		}
		hi = hi<<5 | lo>>59
		lo = lo<<5 | uint64(v)
	}
	var dst [DecodedLen]byte
	binary.BigEndian.PutUint64(dst[:8], hi)
	binary.BigEndian.PutUint64(dst[8:], lo)
	return dst, nil
}

// DecodeBytes 与 [Decode] 相同，接受字节切片输入。
func DecodeBytes(b []byte) ([DecodedLen]byte, error) {
	return Decode(string(b))
}

// Index 返回字符 c 在字母表中的索引。
// c 不在字母表中时 ok 为 false。
func Index(c byte) (idx uint8, ok bool) {
	v := decodeTable[c]
	if v == invalid {
		return 0, false
	}
	return v, true
}

// ValidString 报告 s 是否为 26 个字母表字符组成的字符串。
// 不检查首字符范围。
func ValidString(s string) bool {
	if len(s) != EncodedLen {
		return false
	}
	for i := range EncodedLen {
		if decodeTable[s[i]] == invalid {
			return false
		}
	}
	return true
}
