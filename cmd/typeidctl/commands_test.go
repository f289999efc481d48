package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xtypeid/pkg/util/xtypeid"
)

// runCLI 执行一次命令，返回 stdout、stderr 和退出码。
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(context.Background(), append([]string{"typeidctl"}, args...), &out, &errOut)
	return out.String(), errOut.String(), code
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestNew_Default(t *testing.T) {
	out, _, code := runCLI(t, "new", "user")
	require.Equal(t, 0, code)

	id, err := xtypeid.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user", id.Prefix())
}

func TestNew_NoPrefix(t *testing.T) {
	out, _, code := runCLI(t, "new")
	require.Equal(t, 0, code)
	assert.Len(t, strings.TrimSpace(out), xtypeid.SuffixLen)
}

func TestNew_GlobalPrefix(t *testing.T) {
	out, _, code := runCLI(t, "--prefix", "order", "new")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "order_"))
}

func TestNew_CountAndWorkers(t *testing.T) {
	out, _, code := runCLI(t, "new", "-n", "100", "-w", "4", "job")
	require.Equal(t, 0, code)

	got := lines(out)
	require.Len(t, got, 100)
	seen := make(map[string]struct{}, len(got))
	for _, s := range got {
		id, err := xtypeid.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, "job", id.Prefix())
		seen[s] = struct{}{}
	}
	assert.Len(t, seen, 100)

	// 每个 worker 25 个，段内严格递增
	for w := range 4 {
		seg := got[w*25 : (w+1)*25]
		for i := 1; i < len(seg); i++ {
			assert.Less(t, seg[i-1], seg[i])
		}
	}
}

func TestNew_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid prefix", []string{"new", "User"}},
		{"too many args", []string{"new", "a", "b"}},
		{"zero count", []string{"new", "-n", "0", "a"}},
		{"zero workers", []string{"new", "-w", "0", "a"}},
		{"invalid global prefix", []string{"--prefix", "_a", "new"}},
		{"invalid log level", []string{"--log-level", "loud", "new"}},
		{"invalid log format", []string{"--log-format", "xml", "new"}},
		{"unknown flag", []string{"new", "--bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, code := runCLI(t, tt.args...)
			assert.Equal(t, 2, code)
		})
	}
}

func TestParse_Text(t *testing.T) {
	out, _, code := runCLI(t, "parse", "prefix_01h455vb4pex5vsknk084sn02q")
	require.Equal(t, 0, code)
	assert.Equal(t, "typeid  prefix_01h455vb4pex5vsknk084sn02q\n"+
		"prefix  prefix\n"+
		"suffix  01h455vb4pex5vsknk084sn02q\n"+
		"uuid    01890a5d-ac96-774b-bcce-b302099a8057\n"+
		"time    2023-06-30T03:34:18.518Z\n", out)
}

func TestParse_JSON(t *testing.T) {
	out, _, code := runCLI(t, "parse", "--json",
		"prefix_01h455vb4pex5vsknk084sn02q",
		"00000000000000000000000000",
	)
	require.Equal(t, 0, code)

	got := lines(out)
	require.Len(t, got, 2)
	assert.JSONEq(t, `{
		"typeid": "prefix_01h455vb4pex5vsknk084sn02q",
		"prefix": "prefix",
		"suffix": "01h455vb4pex5vsknk084sn02q",
		"uuid": "01890a5d-ac96-774b-bcce-b302099a8057",
		"time": "2023-06-30T03:34:18.518Z"
	}`, got[0])

	var zero parseResult
	require.NoError(t, json.Unmarshal([]byte(got[1]), &zero))
	assert.True(t, zero.TypeID.IsZero())
	assert.Nil(t, zero.Time)
}

func TestParse_Invalid(t *testing.T) {
	_, errOut, code := runCLI(t, "parse", "prefix_8zzzzzzzzzzzzzzzzzzzzzzzzz")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, xtypeid.ErrInvalidSuffixOverflow.Error())

	_, _, code = runCLI(t, "parse")
	assert.Equal(t, 2, code)
}

func TestEncode(t *testing.T) {
	out, _, code := runCLI(t, "encode", "prefix", "01890a5d-ac96-774b-bcce-b302099a8057")
	require.Equal(t, 0, code)
	assert.Equal(t, "prefix_01h455vb4pex5vsknk084sn02q\n", out)

	out, _, code = runCLI(t, "--prefix", "user", "encode", "0188bac7-a8b4-711c-a9e1-d2b1c9fc3b1b")
	require.Equal(t, 0, code)
	assert.Equal(t, "user_01h2xcfa5me4eakrejp74zrerv\n", out)

	_, errOut, code := runCLI(t, "encode", "prefix", "not-a-uuid")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid uuid")

	_, _, code = runCLI(t, "encode")
	assert.Equal(t, 2, code)
}

func TestDecode(t *testing.T) {
	out, _, code := runCLI(t, "decode", "prefix_01h455vb4pex5vsknk084sn02q")
	require.Equal(t, 0, code)
	assert.Equal(t, "01890a5d-ac96-774b-bcce-b302099a8057\n", out)

	_, _, code = runCLI(t, "decode", "_01h455vb4pex5vsknk084sn02q")
	assert.Equal(t, 1, code)

	_, _, code = runCLI(t, "decode", "a", "b")
	assert.Equal(t, 2, code)
}

func TestValidate(t *testing.T) {
	out, _, code := runCLI(t, "validate",
		"prefix_01h455vb4pex5vsknk084sn02q",
		"pre_fix_00000000000000000000000000",
	)
	require.Equal(t, 0, code)
	assert.Equal(t, "prefix_01h455vb4pex5vsknk084sn02q: ok\npre_fix_00000000000000000000000000: ok\n", out)

	out, errOut, code := runCLI(t, "validate",
		"prefix_01h455vb4pex5vsknk084sn02q",
		"PREFIX_01h455vb4pex5vsknk084sn02q",
		"never_checked",
	)
	assert.Equal(t, 1, code)
	assert.Equal(t, "prefix_01h455vb4pex5vsknk084sn02q: ok\n", out)
	assert.Contains(t, errOut, "PREFIX_01h455vb4pex5vsknk084sn02q: "+xtypeid.ErrInvalidPrefixChars.Error())
	assert.NotContains(t, errOut, "never_checked")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typeidctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: acct\ncount: 3\n"), 0o600))

	out, _, code := runCLI(t, "-c", path, "new")
	require.Equal(t, 0, code)
	got := lines(out)
	require.Len(t, got, 3)
	for _, s := range got {
		assert.True(t, strings.HasPrefix(s, "acct_"), s)
	}

	// 命令行参数覆盖配置文件
	out, _, code = runCLI(t, "-c", path, "new", "-n", "1", "team")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "team_"))

	_, _, code = runCLI(t, "-c", filepath.Join(dir, "missing.yaml"), "new")
	assert.Equal(t, 2, code)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "typeidctl.log")

	_, errOut, code := runCLI(t, "--log-level", "debug", "--log-format", "json", "--log-file", path, "new", "-n", "2", "x")
	require.Equal(t, 0, code)
	// 日志写入文件而非 stderr
	assert.Empty(t, errOut)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"generated"`)
	assert.Contains(t, string(data), `"count":2`)
}

func TestIsCLIUsageError(t *testing.T) {
	assert.True(t, isCLIUsageError(assertError("flag provided but not defined: -x")))
	assert.True(t, isCLIUsageError(assertError(`invalid value "a" for flag -n`)))
	assert.False(t, isCLIUsageError(assertError("boom")))
}

type assertError string

func (e assertError) Error() string { return string(e) }
