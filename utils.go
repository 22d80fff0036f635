package launcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/acarl005/stripansi"

	"github.com/testinfra/suite-launcher/types"
)

// getResultString returns a short string representing the run result
func getResultString(status types.RunStatus) string {
	if status == types.RunStatusPass {
		return "✓ pass"
	}
	return "✗ fail"
}

// Helper function to format duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// firstErrorLine extracts a single display line from a failure cause.
// External runners often emit ANSI color codes; those are stripped first.
func firstErrorLine(err error) string {
	if err == nil {
		return ""
	}

	errStr := stripansi.Strip(err.Error())
	if idx := strings.Index(errStr, "\n"); idx != -1 {
		errStr = errStr[:idx]
	}
	if len(errStr) > 80 {
		return errStr[:70] + "..."
	}
	return errStr
}
