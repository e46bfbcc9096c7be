package main

import (
	"context"
	"fmt"
	"os"

	"kube2helm/ai"
	"kube2helm/generator"
	"kube2helm/logger"
	"kube2helm/utils"

	"github.com/spf13/cobra"
)

const longHelp = `Kube2helm converts Kubernetes manifest files to a Helm Chart skeleton.

It extracts names, namespaces, replica counts, container images, resources,
ConfigMap/Secret data and Service ports into values.yaml, and rewrites the
manifests as templates whose placeholders default to the original values.

Each [command] and subcommand has got an "help" and "--help" flag to show more information.
`

const banner = `
 _          _          ____  _          _
| | ___   _| |__   ___|___ \| |__   ___| |_ __ ___
| |/ / | | | '_ \ / _ \ __) | '_ \ / _ \ | '_ ` + "`" + ` _ \
|   <| |_| | |_) |  __// __/| | | |  __/ | | | | | |
|_|\_\\__,_|_.__/ \___|_____|_| |_|\___|_|_| |_| |_|
`

func main() {
	rootCmd := buildRootCmd()
	rootCmd.Execute()
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kube2helm",
		Long:  longHelp,
		Short: "Kube2helm is a tool to convert Kubernetes manifests to Helm Charts",
	}
	rootCmd.Example = `  kube2helm convert -i ./manifests -o ./chart`

	rootCmd.Version = generator.GetVersion()
	rootCmd.CompletionOptions.DisableDescriptions = false
	rootCmd.CompletionOptions.DisableNoDescFlag = false

	rootCmd.AddCommand(
		generateCompletionCommand(rootCmd.Name()),
		generateVersionCommand(),
		generateConvertCommand(),
		generateChatCommand(),
		generateSetupCommand(),
	)

	return rootCmd
}

const completionHelp = `To load completions:

Bash:
  # Add this line in your ~/.bashrc or ~/.bash_profile file
  $ source <(%[1]s completion bash)

  # Or, you can load completions for each users session. Execute once:
  # Linux:
  $ %[1]s completion bash > /etc/bash_completion.d/%[1]s
  # macOS:
  $ %[1]s completion bash > $(brew --prefix)/etc/bash_completion.d/%[1]s

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"

  # You will need to start a new shell for this setup to take effect.

fish:
  $ %[1]s completion fish | source

  # To load completions for each session, execute once:
  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish

PowerShell:
  PS> %[1]s completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> %[1]s completion powershell > %[1]s.ps1
  # and source this file from your PowerShell profile.
`

func generateCompletionCommand(name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "completion",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Short:                 "Generates completion scripts",
		Long:                  fmt.Sprintf(completionHelp, name),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				cmd.Help()
				return
			}
			switch args[0] {
			case "bash":
				cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				cmd.Root().GenPowerShellCompletion(os.Stdout)
			}
		},
	}
	return cmd
}

func generateConvertCommand() *cobra.Command {
	force := false
	dryRun := false
	useAI := false
	inputPath := ""
	outputDir := "./chart"
	chartName := ""
	chartVersion := "0.1.0"
	appVersion := "1.0.0"

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Converts Kubernetes manifests to a Helm Chart",
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()

			var assistant *ai.Client
			if useAI {
				client, err := ai.NewClient("")
				if err != nil {
					utils.Warn("AI assistance disabled: ", err)
				} else {
					assistant = client
					fmt.Println(utils.IconChat, "AI assistant ready, ask your questions after the conversion")
				}
			}

			err := generator.Convert(generator.ConvertOptions{
				InputPath:    inputPath,
				OutputDir:    outputDir,
				ChartName:    chartName,
				ChartVersion: chartVersion,
				AppVersion:   appVersion,
				DryRun:       dryRun,
				Force:        force,
			})
			if err != nil {
				fmt.Println(utils.IconFailure, err)
				os.Exit(1)
			}

			if assistant != nil {
				ai.RunSession(context.Background(), assistant, os.Stdin, os.Stdout)
			}
		},
	}

	convertCmd.Flags().StringVarP(&inputPath, "input", "i", inputPath, "Input file or directory containing Kubernetes YAML files")
	convertCmd.Flags().StringVarP(&outputDir, "output", "o", outputDir, "Output directory for the generated Helm chart")
	convertCmd.Flags().BoolVarP(&useAI, "use-ai", "a", useAI, "Start an AI assistant session about the generated chart")
	convertCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", dryRun, "Preview the generated Helm chart without writing files")
	convertCmd.Flags().BoolVarP(&force, "force", "f", force, "Force the overwrite of the chart directory")
	convertCmd.Flags().StringVarP(&chartName, "chart-name", "n", chartName, "Specify the chart name (defaults to the output directory name)")
	convertCmd.Flags().StringVarP(&chartVersion, "chart-version", "v", chartVersion, "Specify the chart version (in Chart.yaml)")
	convertCmd.Flags().StringVar(&appVersion, "app-version", appVersion, "Specify the app version (in Chart.yaml)")
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")

	return convertCmd
}

func generateChatCommand() *cobra.Command {
	systemPrompt := ""
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session with the AI assistant",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := ai.NewClient(systemPrompt)
			if err != nil {
				fmt.Println(utils.IconFailure, "chat initialization error:", err)
				os.Exit(1)
			}
			fmt.Println(utils.IconChat, "Initialized chat with", client.APIURL)
			ai.RunSession(context.Background(), client, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().StringVarP(&systemPrompt, "system-prompt", "s", systemPrompt, "Override the assistant system prompt")
	return cmd
}

// projectDirs are created by the setup command.
var projectDirs = []string{"manifests", "output", "docs"}

func generateSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the project working directories",
		Run: func(cmd *cobra.Command, args []string) {
			for _, dir := range projectDirs {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					fmt.Println(utils.IconFailure, err)
					os.Exit(1)
				}
			}
			fmt.Println(utils.IconSuccess, "Project directories created successfully")
		},
	}
}

func generateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kube2helm",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(generator.GetVersion())
		},
	}
}

func printBanner() {
	logger.ActivateColors = true
	logger.Blue(banner)
	logger.Green("Convert Kubernetes YAML manifests to Helm charts with ease")
	logger.ActivateColors = false
}
