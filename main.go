package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hexseal/hexseal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(ctx, os.Args[2:])
	case "seal":
		runSeal(ctx, os.Args[2:])
	case "open":
		runOpen(ctx, os.Args[2:])
	case "rm":
		runRm(ctx, os.Args[2:])
	case "ls", "status":
		runStatus(ctx, os.Args[2:])
	case "passwd":
		runPasswd(ctx, os.Args[2:])
	case "compact":
		runCompact(ctx, os.Args[2:])
	case "keyring":
		runKeyring(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runInit(_ context.Context, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Init()
}

func runSeal(_ context.Context, args []string) {
	fs := flag.NewFlagSet("seal", flag.ExitOnError)
	force := fs.Bool("force", false, "Replace an existing secret without confirmation")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: hexseal seal [--force] <name>")
		os.Exit(1)
	}

	cmd.Seal(fs.Args()[0], *force)
}

func runOpen(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	export := fs.Bool("export", false, "Print 'export NAME=value' lines for shell eval")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Open(ctx, fs.Args(), *export)
}

func runRm(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Remove(ctx, fs.Args())
}

func runStatus(_ context.Context, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status()
}

func runPasswd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Passwd(ctx)
}

func runCompact(_ context.Context, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Compact()
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hexseal completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func runKeyring(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hexseal keyring <enable|disable|status>")
		os.Exit(1)
	}

	switch args[0] {
	case "enable":
		cmd.KeyringSave()
	case "disable":
		cmd.KeyringDelete()
	case "status":
		cmd.KeyringStatus()
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring subcommand: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: hexseal keyring <enable|disable|status>")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("hexseal - Password-based secret encryption for the command line")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  hexseal <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create a .hexseal vault in current directory")
	fmt.Println("  seal        Encrypt a named secret into the vault")
	fmt.Println("  open        Decrypt secrets and print them")
	fmt.Println("  rm          Remove secrets from the vault")
	fmt.Println("  ls, status  Show vault status and secret list")
	fmt.Println("  passwd      Change vault password")
	fmt.Println("  compact     Compact vault to reclaim disk space")
	fmt.Println("  keyring     Cache the vault password in the OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  hexseal init                      # Create new vault")
	fmt.Println("  hexseal seal API_KEY              # Seal a secret (prompts for value)")
	fmt.Println("  cat key.pem | hexseal seal CERT   # Seal piped data")
	fmt.Println("  hexseal open API_KEY              # Print one secret")
	fmt.Println("  eval \"$(hexseal open --export)\"   # Export all secrets into the shell")
	fmt.Println()
	fmt.Println("Use 'hexseal help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("hexseal init")
		fmt.Println()
		fmt.Println("Creates a .hexseal vault file in the current directory.")
		fmt.Println("Prompts for a password that will be used for encryption.")
		fmt.Println("The password is not stored anywhere - you must remember it.")
	case "seal":
		fmt.Println("hexseal seal [--force] <name>")
		fmt.Println()
		fmt.Println("Encrypts a named secret into the vault.")
		fmt.Println("The value is read from stdin when piped, otherwise from a hidden prompt.")
		fmt.Println("Replacing an existing secret shows a diff and asks for confirmation.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --force    Replace without showing a diff or asking")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  hexseal seal API_KEY")
		fmt.Println("  openssl rand -hex 32 | hexseal seal SESSION_SECRET")
	case "open":
		fmt.Println("hexseal open [--export] [<name> [name...]]")
		fmt.Println()
		fmt.Println("Decrypts secrets and prints them to stdout.")
		fmt.Println("A single name prints the raw value; several names or none print")
		fmt.Println("NAME=value lines.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --export   Prefix each line with 'export ' for shell eval")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  hexseal open API_KEY")
		fmt.Println("  eval \"$(hexseal open --export)\"")
	case "rm":
		fmt.Println("hexseal rm <name> [name...]")
		fmt.Println()
		fmt.Println("Removes secrets from the vault. Requires the vault password.")
	case "ls", "status":
		fmt.Println("hexseal status")
		fmt.Println()
		fmt.Println("Shows secret names, sizes, and vault state.")
		fmt.Println("Does not require a password.")
	case "passwd":
		fmt.Println("hexseal passwd")
		fmt.Println()
		fmt.Println("Changes the vault password.")
		fmt.Println("Re-encrypts all secrets with the new password.")
	case "compact":
		fmt.Println("hexseal compact")
		fmt.Println()
		fmt.Println("Compacts the .hexseal database to reclaim unused disk space.")
		fmt.Println("This is automatically done after 'rm' and 'passwd' commands,")
		fmt.Println("but can be run manually if needed.")
		fmt.Println()
		fmt.Println("Does not require a password.")
	case "completion":
		fmt.Println("hexseal completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(hexseal completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(hexseal completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  hexseal completion fish | source")
	case "keyring":
		fmt.Println("hexseal keyring <enable|disable|status>")
		fmt.Println()
		fmt.Println("Caches the vault password in the OS keyring so commands stop")
		fmt.Println("prompting. 'disable' removes the cached entry.")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
