package deployer

import (
	"context"
	"fmt"
	"os"

	"github.com/wangdayong228/lw3punks-client/internal/infra/oscmdexec"
	"github.com/wangdayong228/lw3punks-client/internal/utils/commonutil"
)

// Compiler 在部署前执行 `npx hardhat compile` 以刷新编译产物。
// 通过注入 Runner，便于在测试中 mock 命令执行。
type Compiler struct {
	Runner oscmdexec.Runner
}

func NewCompiler(runner oscmdexec.Runner) *Compiler {
	return &Compiler{Runner: runner}
}

func DefaultCompiler() *Compiler {
	return &Compiler{Runner: oscmdexec.DefaultRunner}
}

func (c *Compiler) Compile(ctx context.Context, hardhatDir string) error {
	dir, err := commonutil.ResolveHardhatDir(hardhatDir)
	if err != nil {
		return err
	}

	// 非交互环境下跳过 hardhat 的遥测询问
	env := commonutil.EnvOverride(os.Environ(), "HARDHAT_DISABLE_TELEMETRY_PROMPT", "true")

	spec := oscmdexec.Spec{
		Name: "npx",
		Args: []string{"hardhat", "compile"},
		Dir:  dir,
		Env:  env,
	}

	runner := c.Runner
	if runner == nil {
		runner = oscmdexec.DefaultRunner
	}
	if err := runner(ctx, spec); err != nil {
		return fmt.Errorf("hardhat compile 失败: %w", err)
	}
	return nil
}
