package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Plot kinds, styles
// and colormaps complete dynamically.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for betterplot.

To load completions:

Bash:
  $ source <(betterplot completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ betterplot completion bash > /etc/bash_completion.d/betterplot
  # macOS:
  $ betterplot completion bash > $(brew --prefix)/etc/bash_completion.d/betterplot

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ betterplot completion zsh > "${fpath[1]}/_betterplot"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ betterplot completion fish | source

  # To load completions for each session, execute once:
  $ betterplot completion fish > ~/.config/fish/completions/betterplot.fish

PowerShell:
  PS> betterplot completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> betterplot completion powershell > betterplot.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.Out, true)
			case "zsh":
				return root.GenZshCompletion(c.Out)
			case "fish":
				return root.GenFishCompletion(c.Out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(c.Out)
			}
		},
	}
}

// completeFrom returns a cobra completion function offering names.
func completeFrom(names func() []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names(), cobra.ShellCompDirectiveNoFileComp
	}
}
