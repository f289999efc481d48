// typeidctl 是 TypeID 的命令行工具。
//
// 用法:
//
//	typeidctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（.yaml/.yml/.json）
//	    --prefix      默认前缀（new/encode 未指定前缀时使用）
//	    --log-level   日志级别 (debug/info/warn/error，默认 warn)
//	    --log-format  日志格式 (text/json)
//	    --log-file    日志文件路径，按大小轮转；未设置时输出到 stderr
//
// 命令:
//
//	new [prefix]             生成 TypeID（-n 数量，-w 并发 worker 数）
//	parse <typeid>...        解析并打印各组成部分（--json 输出 JSON）
//	encode [prefix] <uuid>   UUID 转 TypeID
//	decode <typeid>          TypeID 转 UUID
//	validate <typeid>...     校验，遇到第一个无效输入即失败
//
// 配置优先级：命令行参数 > 配置文件 > 默认值。
//
// 退出码:
//
//	0: 成功
//	1: 执行失败（输入无效、生成失败等）
//	2: 参数错误（参数个数错误、未知 flag、配置无效等）
//
// 示例:
//
//	typeidctl new user                    # user_01h455vb4pex5vsknk084sn02q
//	typeidctl new -n 1000 -w 4 order      # 4 个 worker 各自持有生成器
//	typeidctl parse --json user_01h455vb4pex5vsknk084sn02q
//	typeidctl encode user 01890a5d-ac96-774b-bcce-b302099a8057
//	typeidctl -c typeidctl.yaml new
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	return execute(ctx, os.Args, os.Stdout, os.Stderr)
}

// execute 运行 CLI 并把错误映射为退出码。
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	if err := a.command().Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// flag 解析器已向 stderr 输出错误详情，此处仅设置退出码
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// isCLIUsageError 识别 urfave/cli 产生的参数错误。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"flag provided but not defined",
		"invalid value",
		"No help topic for",
		"Required flag",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// setupSignalHandler 设置信号处理。
// 第一次信号取消 context（批量生成会尽快停止），第二次信号强制退出（130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
