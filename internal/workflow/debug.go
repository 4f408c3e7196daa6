package workflow

import (
	"fmt"
	"os"
)

// Debug logging (enable by setting PDFLATE_DEBUG=1)
var debugLog *os.File

func init() {
	if os.Getenv("PDFLATE_DEBUG") == "1" {
		debugLog, _ = os.OpenFile("/tmp/pdflate-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		fmt.Fprintf(debugLog, format+"\n", args...)
		debugLog.Sync()
	}
}
