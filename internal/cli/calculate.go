package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/threadsum/internal/config"
	"github.com/agbru/threadsum/internal/ui"
)

// PrintExecutionConfig displays the run parameters and the environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Running %s%d%s workers, %s%d%s samples each in [%d, %d].\n",
		ui.ColorMagenta(), cfg.Threads, ui.ColorReset(),
		ui.ColorMagenta(), cfg.Samples, ui.ColorReset(),
		cfg.Min, cfg.Max)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, GOMAXPROCS=%d, Go %s%s%s.\n\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), runtime.GOMAXPROCS(0),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}
