package xtypeid

import "github.com/omeyang/xtypeid/pkg/util/xbase32"

// MaxEncodedLen 规范字符串的最大长度：63 字符前缀 + 分隔符 + 26 字符后缀。
const MaxEncodedLen = MaxPrefixLen + 1 + SuffixLen

// Suffix 返回 26 字符的 base32 后缀。
func (t TypeID) Suffix() string {
	return xbase32.EncodeToString(t.id)
}

// Len 返回规范字符串的字节长度。
func (t TypeID) Len() int {
	if t.prefix == "" {
		return SuffixLen
	}
	return len(t.prefix) + 1 + SuffixLen
}

// String 返回规范字符串：前缀非空时为 "prefix_suffix"，否则为裸后缀。
func (t TypeID) String() string {
	var buf [MaxEncodedLen]byte
	n, _ := t.Encode(buf[:]) //nolint:errcheck // buf 容量为 MaxEncodedLen，不会失败
	return string(buf[:n])
}

// Encode 把规范字符串写入 dst，返回写入的字节数。
//
// dst 容量不足时返回 [ErrBufferTooSmall]，不做截断，也不分配内存。
// 使用 [MaxEncodedLen] 大小的缓冲区总能成功。
func (t TypeID) Encode(dst []byte) (int, error) {
	if len(dst) < t.Len() {
		return 0, ErrBufferTooSmall
	}
	n := copy(dst, t.prefix)
	if t.prefix != "" {
		dst[n] = separator
		n++
	}
	suffix := xbase32.Encode(t.id)
	n += copy(dst[n:], suffix[:])
	return n, nil
}

// AppendTo 把规范字符串追加到 dst 并返回扩展后的切片。
func (t TypeID) AppendTo(dst []byte) []byte {
	dst = append(dst, t.prefix...)
	if t.prefix != "" {
		dst = append(dst, separator)
	}
	suffix := xbase32.Encode(t.id)
	return append(dst, suffix[:]...)
}
