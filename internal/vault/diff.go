package vault

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// UnifiedDiff renders the change between a secret's current and new value
// as a unified diff. Returns an empty string if the values are identical,
// and a short notice for values that are not valid UTF-8 text.
func UnifiedDiff(name string, oldValue, newValue []byte) string {
	if string(oldValue) == string(newValue) {
		return ""
	}

	if !utf8.Valid(oldValue) || !utf8.Valid(newValue) {
		return fmt.Sprintf("Binary secret %s has changed\n", name)
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	oldStr, newStr := string(oldValue), string(newValue)
	a, b, lineArray := dmp.DiffLinesToChars(oldStr, newStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(oldStr, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- a/%s\n", name))
	result.WriteString(fmt.Sprintf("+++ b/%s\n", name))
	result.WriteString(dmp.PatchToText(patches))

	return result.String()
}
