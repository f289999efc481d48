// Package xbase32 提供 16 字节与 26 字符之间的定长 base32 编解码。
//
// 字母表为 "0123456789abcdefghjkmnpqrstvwxyz"：数字 0-9 加小写字母，
// 去掉易混淆的 i、l、o、u（Crockford 风格，但只接受小写）。
//
// # 位布局
//
// 128 位输入按大端顺序每 5 位映射为一个字符。26 个字符共 130 位，
// 最高 2 位恒为 0，因此合法编码的首字符只可能是 0-7。
//
// 解码不校验首字符范围：首字符索引大于 7 时超出 128 位的高位会被丢弃。
// 该约束属于调用方的协议（见 xtypeid），编解码层对此不做假设。
//
// # 快速示例
//
//	var raw [16]byte
//	s := xbase32.EncodeToString(raw) // "00000000000000000000000000"
//
//	b, err := xbase32.Decode("01h455vb4pex5vsknk084sn02q")
//	if errors.Is(err, xbase32.ErrInvalidCharacter) {
//	    // 非字母表字符
//	}
//
// # 设计决策
//
//   - 输入输出使用定长数组（[16]byte / [26]byte）：长度由类型系统保证，Encode 无错误路径
//   - 解码使用 256 项查找表，非法字符映射为哨兵值
//   - 查找表与字母表只读，可被多个 goroutine 并发使用
//   - 未使用 [encoding/base32]：标准库按 40 位分组并需要填充，无法表达 26 字符定长且首字符只取 3 位的布局
package xbase32
