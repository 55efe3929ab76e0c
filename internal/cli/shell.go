package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"jeongsql/internal/terminal"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func runShell(cmd *cobra.Command, opts *options) error {
	cfg, err := clientConfig(cmd, opts)
	if err != nil {
		return err
	}

	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".jsql_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          terminal.Prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	return terminal.NewSession(cmd.Context(), cfg, rl, rl.Stdout()).Run(cmd.Context())
}
