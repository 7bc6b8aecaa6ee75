package display

import "strings"

// IgnorableCode splits X errors into the ones worth surfacing and the
// ones a destroy/unmap race produces. The event dispatcher must keep
// running after BadWindow/BadAccess/BadDrawable/BadMatch against a client
// that already vanished, so those are classified ignorable.
type IgnorableCode int

const (
	ErrorSevere IgnorableCode = iota
	ErrorIgnorable
)

// classifyNames lists the X error names (as formatted in xgb/xgbutil
// error Strings) that a destroy/unmap race can legitimately produce.
var classifyNames = []string{"BadWindow", "BadAccess", "BadDrawable", "BadMatch", "BadValue"}

// Classify inspects an error returned by a Display method and reports
// whether it's the kind of race a concurrently-closing client produces
// versus a severe, unexpected failure that deserves louder logging.
func Classify(err error) IgnorableCode {
	if err == nil {
		return ErrorIgnorable
	}
	msg := err.Error()
	for _, name := range classifyNames {
		if strings.Contains(msg, name) {
			return ErrorIgnorable
		}
	}
	return ErrorSevere
}
