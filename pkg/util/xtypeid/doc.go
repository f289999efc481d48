// Package xtypeid 提供带类型前缀、可按时间排序的标识符（TypeID）。
//
// TypeID 由小写类型前缀和 26 字符的 base32 后缀组成，例如：
//
//	user_01h455vb4pex5vsknk084sn02q
//
// 后缀编码一个 xid 布局（UUIDv7）的 128 位值，因此 TypeID 可按生成时间排序，
// 也可以与标准 UUID 互相转换。前缀防止 user ID 被误当作 post ID 使用。
//
// # 字符串格式
//
//	^(?:[a-z]([a-z_]*[a-z])?_)?[0-7][0-9a-hjkmnp-tv-z]{25}$
//
//   - 前缀 0-63 个字符，只能包含 a-z 和 '_'，不能以 '_' 开头或结尾
//   - 前缀为空时字符串只有后缀，没有分隔符
//   - 后缀首字符必须是 0-7，否则解码值超过 128 位
//
// 解析时以最后一个 '_' 分割，前缀内部可以包含 '_'。
//
// # 快速示例
//
// 生成：
//
//	id, err := xtypeid.New("user")
//	fmt.Println(id) // user_01h455vb4pex5vsknk084sn02q
//
// 热点路径为每个 goroutine 创建独立生成器：
//
//	gen, _ := xid.NewGenerator()
//	id, err := xtypeid.NewWithSource(gen, "user")
//
// 解析与转换：
//
//	id, err := xtypeid.Parse("prefix_01h455vb4pex5vsknk084sn02q")
//	id.Prefix() // prefix
//	id.UUID()   // 01890a5d-ac96-774b-bcce-b302099a8057
//
// 编译期类型区分：
//
//	type userPrefix struct{}
//	func (userPrefix) Prefix() string { return "user" }
//	type UserID = xtypeid.Typed[userPrefix]
//
//	uid, err := xtypeid.NewTyped[userPrefix]()
//
// # 错误
//
// 每条语法规则对应一个独立的错误（[ErrInvalidPrefixLength]、[ErrInvalidSuffixOverflow] 等），
// 校验在第一个违反的规则处返回。Text/JSON/SQL/BSON 适配器额外包装 [ErrInvalidValue]。
//
// # 设计决策
//
//   - 后缀以 [uuid.UUID] 存储：值语义、可比较、可作为 map key，字符串按需编码
//   - [TypeID.Encode] 写入调用方缓冲区，不分配内存，容量不足返回 [ErrBufferTooSmall]
//   - [New] 使用 xid 全局共享生成器，所有调用被同一把锁串行化；
//     需要吞吐时使用 [NewWithSource] 搭配每个 goroutine 独立的 [xid.Generator]
package xtypeid
