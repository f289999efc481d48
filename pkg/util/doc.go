// Package util 提供 TypeID 相关的子包。
//
// 子包列表：
//   - xbase32: 16 字节与 26 字符之间的定长 base32 编解码，自定义字母表
//   - xid: 时间有序的 128 位 ID 生成器（UUIDv7 布局），单实例严格递增
//   - xtypeid: 带类型前缀的 TypeID，构造、解析、校验、格式化与序列化适配
//
// 依赖方向：xtypeid 依赖 xbase32 和 xid，后两者互不依赖。
package util
