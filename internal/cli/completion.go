package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/threadsum/internal/config"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell generators read flagRegistry, so adding a flag only requires
// appending to it.
type FlagCompletion struct {
	Long   string   // long flag name without "--"
	Short  string   // short flag without "-"
	Help   string   // description text
	Values []string // suggested completion values (nil = no suggestions)
	IsFile bool     // true if the flag takes a file path
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "threads", Short: "t", Help: "Number of workers", Values: []string{"1", "2", "4", "8", "10", "16"}},
	{Long: "samples", Short: "s", Help: "Samples drawn by each worker", Values: []string{"10", "100", "1000", "1000000"}},
	{Long: "min", Help: "Inclusive lower bound (>= 0)"},
	{Long: "max", Help: "Inclusive upper bound"},
	{Long: "format", Short: "f", Help: "Output format", Values: config.Formats()},
	{Long: "output", Short: "o", Help: "Also write the report to a file", IsFile: true},
	{Long: "metrics-file", Help: "Write Prometheus metrics to a file", IsFile: true},
	{Long: "quiet", Short: "q", Help: "Print only the winner"},
	{Long: "details", Short: "d", Help: "Show durations and memory statistics"},
	{Long: "verbose", Short: "v", Help: "Enable debug logging"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "completion", Help: "Generate completion script", Values: Shells()},
}

// Shells lists the shells GenerateCompletion supports.
func Shells() []string {
	return []string{"bash", "zsh", "fish"}
}

// GenerateCompletion writes a completion script for shell to out.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells(), ", "))
	}
}

func generateBashCompletion(out io.Writer) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, "--"+f.Long)
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var b strings.Builder
	b.WriteString("# bash completion for threadsum\n")
	b.WriteString("_threadsum() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range flagRegistry {
		if len(f.Values) == 0 && !f.IsFile {
			continue
		}
		patterns := "--" + f.Long
		if f.Short != "" {
			patterns += "|-" + f.Short
		}
		if f.IsFile {
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", patterns)
			continue
		}
		fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
			patterns, strings.Join(f.Values, " "))
	}
	b.WriteString("    esac\n\n")
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(opts, " "))
	b.WriteString("}\n")
	b.WriteString("complete -F _threadsum threadsum\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func generateZshCompletion(out io.Writer) error {
	var b strings.Builder
	b.WriteString("#compdef threadsum\n\n")
	b.WriteString("_arguments \\\n")
	for i, f := range flagRegistry {
		action := ""
		switch {
		case f.IsFile:
			action = ":file:_files"
		case len(f.Values) > 0:
			action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
		}
		spec := fmt.Sprintf("'--%s[%s]%s'", f.Long, f.Help, action)
		if f.Short != "" {
			spec = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, action)
		}
		sep := " \\\n"
		if i == len(flagRegistry)-1 {
			sep = "\n"
		}
		b.WriteString("    " + spec + sep)
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func generateFishCompletion(out io.Writer) error {
	var b strings.Builder
	b.WriteString("# fish completion for threadsum\n")
	for _, f := range flagRegistry {
		line := "complete -c threadsum -l " + f.Long
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch {
		case f.IsFile:
			line += " -r -F"
		case len(f.Values) > 0:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
		}
		line += fmt.Sprintf(" -d '%s'\n", f.Help)
		b.WriteString(line)
	}

	_, err := io.WriteString(out, b.String())
	return err
}
