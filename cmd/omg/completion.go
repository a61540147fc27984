package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for omg.

To load completions:

Bash:
  $ source <(omg completion bash)
  # To load permanently:
  $ omg completion bash > /etc/bash_completion.d/omg

Zsh:
  $ omg completion zsh > "${fpath[1]}/_omg"
  $ compinit

Fish:
  $ omg completion fish | source
  # To load permanently:
  $ omg completion fish > ~/.config/fish/completions/omg.fish

PowerShell:
  PS> omg completion powershell | Out-String | Invoke-Expression
`,
	ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
	// Replaced by the command above.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
