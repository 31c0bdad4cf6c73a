package scanner

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// addedLineNumbers line-diffs two reconstructed texts and returns the
// new-version line numbers introduced by the change.
func addedLineNumbers(oldText, newText string) map[int]struct{} {
	dmp := diffmatchpatch.New()
	oldChars, newChars, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lineArray)

	added := make(map[int]struct{})
	newLine := 1
	for _, d := range diffs {
		count := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			newLine += count
		case diffmatchpatch.DiffInsert:
			for i := 0; i < count; i++ {
				added[newLine] = struct{}{}
				newLine++
			}
		case diffmatchpatch.DiffDelete:
			// Old side only; new-version numbering is unaffected.
		}
	}
	return added
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	count := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		count++
	}
	return count
}
