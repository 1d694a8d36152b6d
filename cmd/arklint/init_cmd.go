package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default arklint.toml to the current directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

const defaultConfigTOML = `[output]
format = "text"
color = true

[exclude]
patterns = ["*.test.ets", "*.test.ts", "*.d.ts"]
dirs = ["node_modules", "oh_modules", ".git", "build", "dist"]
gitignore = true

[rules.fragment-clone]
enabled = true
severity = "warning"
[rules.fragment-clone.options]
minimumTokens = 100
normalizeIdentifiers = true
normalizeLiterals = false

[rules.method-clone-type1]
enabled = true
severity = "warning"
[rules.method-clone-type1.options]
minStmts = 5
ignoreLogs = true

[rules.method-clone-type2]
enabled = true
severity = "warning"
[rules.method-clone-type2.options]
minStmts = 5
ignoreLogs = true
ignoreLiterals = false

[rules.code-smells]
enabled = true
severity = "warning"
[rules.code-smells.options]
maxStmts = 50
maxLines = 100
maxUIStmtsSoft = 30
maxUIStmtsHard = 60
minCases = 10
`

func runInit(cmd *cobra.Command, args []string) error {
	const path = "arklint.toml"

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTOML), 0644); err != nil {
		return err
	}
	color.Green("Wrote %s", path)
	return nil
}
