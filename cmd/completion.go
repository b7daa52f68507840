package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_hexseal() {
    local cur prev words cword
    _init_completion || return

    local commands="init seal open rm ls status passwd compact keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        seal)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--force" -- "$cur"))
            fi
            ;;
        open)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--export" -- "$cur"))
            else
                local names
                names=$(hexseal ls 2>/dev/null | sed -n 's/^  \([A-Za-z0-9_.-]*\) (.*/\1/p')
                COMPREPLY=($(compgen -W "$names" -- "$cur"))
            fi
            ;;
        rm)
            local names
            names=$(hexseal ls 2>/dev/null | sed -n 's/^  \([A-Za-z0-9_.-]*\) (.*/\1/p')
            COMPREPLY=($(compgen -W "$names" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "enable disable status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _hexseal hexseal
`

const zshCompletion = `#compdef hexseal

_hexseal() {
    local -a commands
    commands=(
        'init:Create a .hexseal vault in current directory'
        'seal:Encrypt a named secret into the vault'
        'open:Decrypt secrets and print them'
        'rm:Remove secrets from the vault'
        'ls:Show vault status'
        'status:Show vault status'
        'passwd:Change vault password'
        'compact:Compact vault to reclaim disk space'
        'keyring:Cache password in OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'hexseal commands' commands
            ;;
        args)
            case "${words[2]}" in
                seal)
                    _arguments '--force[Replace without confirmation]' '*:name:_hexseal_secrets'
                    ;;
                open)
                    _arguments '--export[Print export lines for shell eval]' '*:name:_hexseal_secrets'
                    ;;
                rm)
                    _arguments '*:name:_hexseal_secrets'
                    ;;
                keyring)
                    _values 'subcommand' enable disable status
                    ;;
                help)
                    _describe -t commands 'hexseal commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_hexseal_secrets() {
    local -a names
    names=(${(f)"$(hexseal ls 2>/dev/null | sed -n 's/^  \([A-Za-z0-9_.-]*\) (.*/\1/p')"})
    _describe -t names 'secrets' names
}

_hexseal "$@"
`

const fishCompletion = `# hexseal fish completions

set -l commands init seal open rm ls status passwd compact keyring help completion

complete -c hexseal -f

# Commands
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a .hexseal vault'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a seal -d 'Encrypt a named secret'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a open -d 'Decrypt and print secrets'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove secrets from vault'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a ls -d 'Show vault status'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a passwd -d 'Change vault password'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact vault'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Cache password in OS keyring'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c hexseal -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# seal flags
complete -c hexseal -n "__fish_seen_subcommand_from seal" -l force -d 'Replace without confirmation'

# open flags
complete -c hexseal -n "__fish_seen_subcommand_from open" -l export -d 'Print export lines'

# keyring subcommands
complete -c hexseal -n "__fish_seen_subcommand_from keyring" -a "enable disable status"

# help completions
complete -c hexseal -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c hexseal -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
