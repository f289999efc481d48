package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xtypeid/pkg/util/xtypeid"
)

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// app 保存一次运行的输出目标与解析后的配置。
type app struct {
	out    io.Writer
	errOut io.Writer

	cfg      config
	logger   *slog.Logger
	closeLog func() error
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		cfg:    defaultConfig(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// command 创建 CLI 应用。
func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "typeidctl",
		Usage:     "生成、解析、校验 TypeID",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    a.out,
		ErrWriter: a.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "默认前缀",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 (text/json)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志文件路径（按大小轮转）",
			},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			a.newCommand(),
			a.parseCommand(),
			a.encodeCommand(),
			a.decodeCommand(),
			a.validateCommand(),
		},
		// 禁止 urfave/cli 直接调用 os.Exit，由 execute 统一映射退出码。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(a.errOut, err)
			}
		},
	}
}

// before 合并配置：命令行参数 > 配置文件 > 默认值。
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return ctx, &usageError{msg: err.Error()}
	}
	if cmd.IsSet("prefix") {
		cfg.Prefix = cmd.String("prefix")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}
	if err := cfg.validate(); err != nil {
		return ctx, &usageError{msg: err.Error()}
	}

	logger, closeLog, err := newLogger(cfg.Log, a.errOut)
	if err != nil {
		return ctx, &usageError{msg: err.Error()}
	}
	a.cfg, a.logger, a.closeLog = cfg, logger, closeLog
	a.logger.Debug("config loaded", "config", cmd.String("config"), "prefix", cfg.Prefix)
	return ctx, nil
}

func (a *app) after(_ context.Context, _ *cli.Command) error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

func (a *app) newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Aliases:   []string{"n"},
		Usage:     "生成 TypeID",
		ArgsUsage: "[prefix]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "生成数量",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "并发 worker 数，每个 worker 持有独立生成器",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 1 {
				return usagef("new 最多接受 1 个参数（prefix），收到 %d 个", cmd.NArg())
			}
			prefix := a.cfg.Prefix
			if cmd.NArg() == 1 {
				prefix = cmd.Args().First()
			}
			if err := xtypeid.ValidatePrefix(prefix); err != nil {
				return usagef("无效前缀 %q: %v", prefix, err)
			}
			count, workers := a.cfg.Count, a.cfg.Workers
			if cmd.IsSet("count") {
				count = cmd.Int("count")
			}
			if cmd.IsSet("workers") {
				workers = cmd.Int("workers")
			}
			if count < 1 || workers < 1 {
				return usagef("count 和 workers 必须为正数（count=%d, workers=%d）", count, workers)
			}
			return a.cmdNew(ctx, prefix, count, workers)
		},
	}
}

func (a *app) cmdNew(ctx context.Context, prefix string, count, workers int) error {
	start := time.Now()
	ids, err := generate(ctx, prefix, count, workers, a.cfg.Generator.options())
	if err != nil {
		a.logger.Error("generate failed", "prefix", prefix, "error", err)
		return err
	}
	a.logger.Debug("generated", "prefix", prefix, "count", count, "workers", workers, "elapsed", time.Since(start))

	w := bufio.NewWriter(a.out)
	var buf [xtypeid.MaxEncodedLen + 1]byte
	for _, id := range ids {
		n, err := id.Encode(buf[:])
		if err != nil {
			return err
		}
		buf[n] = '\n'
		if _, err := w.Write(buf[:n+1]); err != nil {
			return err
		}
	}
	return w.Flush()
}

// parseResult parse 命令的 JSON 输出。
type parseResult struct {
	TypeID xtypeid.TypeID `json:"typeid"`
	Prefix string         `json:"prefix"`
	Suffix string         `json:"suffix"`
	UUID   string         `json:"uuid"`
	Time   *time.Time     `json:"time,omitempty"`
}

func newParseResult(id xtypeid.TypeID) parseResult {
	r := parseResult{
		TypeID: id,
		Prefix: id.Prefix(),
		Suffix: id.Suffix(),
		UUID:   id.UUID(),
	}
	if ts := id.Time(); !ts.IsZero() {
		r.Time = &ts
	}
	return r
}

func (a *app) parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Aliases:   []string{"p"},
		Usage:     "解析 TypeID 并打印各组成部分",
		ArgsUsage: "<typeid>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "以 JSON 输出（每行一个对象）",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return usagef("parse 需要至少 1 个参数")
			}
			return a.cmdParse(cmd.Args().Slice(), cmd.Bool("json"))
		},
	}
}

func (a *app) cmdParse(inputs []string, asJSON bool) error {
	enc := json.NewEncoder(a.out)
	for i, s := range inputs {
		id, err := xtypeid.Parse(s)
		if err != nil {
			return fmt.Errorf("%q: %w", s, err)
		}
		r := newParseResult(id)
		if asJSON {
			if err := enc.Encode(r); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		ts := "-"
		if r.Time != nil {
			ts = r.Time.Format(time.RFC3339Nano)
		}
		fmt.Fprintf(a.out, "typeid  %s\nprefix  %s\nsuffix  %s\nuuid    %s\ntime    %s\n",
			id, r.Prefix, r.Suffix, r.UUID, ts)
	}
	return nil
}

func (a *app) encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Aliases:   []string{"e"},
		Usage:     "UUID 转 TypeID",
		ArgsUsage: "[prefix] <uuid>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			var prefix, u string
			switch cmd.NArg() {
			case 1:
				prefix, u = a.cfg.Prefix, cmd.Args().Get(0)
			case 2:
				prefix, u = cmd.Args().Get(0), cmd.Args().Get(1)
			default:
				return usagef("encode 需要 1 或 2 个参数，收到 %d 个", cmd.NArg())
			}
			id, err := xtypeid.FromUUID(prefix, u)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, id)
			return nil
		},
	}
}

func (a *app) decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Aliases:   []string{"d"},
		Usage:     "TypeID 转 UUID",
		ArgsUsage: "<typeid>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return usagef("decode 需要 1 个参数，收到 %d 个", cmd.NArg())
			}
			id, err := xtypeid.Parse(cmd.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, id.UUID())
			return nil
		},
	}
}

func (a *app) validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "校验 TypeID，遇到第一个无效输入即失败",
		ArgsUsage: "<typeid>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return usagef("validate 需要至少 1 个参数")
			}
			for _, s := range cmd.Args().Slice() {
				if _, err := xtypeid.Parse(s); err != nil {
					a.logger.Warn("invalid typeid", "input", s, "error", err)
					fmt.Fprintf(a.errOut, "%s: %v\n", s, err)
					return &exitError{code: 1}
				}
				fmt.Fprintf(a.out, "%s: ok\n", s)
			}
			return nil
		},
	}
}
