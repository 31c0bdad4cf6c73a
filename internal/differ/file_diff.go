package differ

import (
	"context"
	"strings"

	"depthcharge/internal/models"

	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// fileDiff turns one tree change into a FileDiff, or nil when the change
// produces nothing to scan (deletions, filtered paths, oversized or plain
// binary blobs).
func (d *DiffExtractor) fileDiff(ctx context.Context, change *object.Change) (*models.FileDiff, []models.Warning) {
	action, err := change.Action()
	if err != nil {
		return nil, []models.Warning{{
			Kind:    models.WarningBlobUnreadable,
			Subject: change.To.Name,
			Detail:  "cannot determine change action: " + err.Error(),
		}}
	}

	// Removed content introduces no new risk; it only fed the rename
	// heuristic, which already ran.
	if action == merkletrie.Delete {
		return nil, nil
	}

	toPath := change.To.Name
	if !d.pathIncluded(toPath) {
		return nil, nil
	}

	diff := &models.FileDiff{
		Path:         toPath,
		FromPath:     change.From.Name,
		BlobHash:     change.To.TreeEntry.Hash.String(),
		WholeBlobNew: action == merkletrie.Insert,
	}
	if change.From.Name != "" {
		diff.FromBlobHash = change.From.TreeEntry.Hash.String()
	}

	// Cache artifacts are not diffed line-by-line here; the scanner routes
	// their blobs through the decompilation adapter and filters verdicts
	// against the parent-side artifact instead.
	if d.matcher.Matches(toPath) {
		diff.IsArtifact = true
		return diff, nil
	}

	_, toFile, err := change.Files()
	if err != nil || toFile == nil {
		return nil, []models.Warning{{
			Kind:    models.WarningBlobUnreadable,
			Subject: diff.BlobHash,
			Detail:  "cannot load file for " + toPath,
		}}
	}

	if d.maxFileBytes > 0 && toFile.Size > d.maxFileBytes {
		d.logger.Debug().Str("path", toPath).Int64("size", toFile.Size).Msg("Skipping oversized file")
		return nil, nil
	}

	if binary, err := toFile.IsBinary(); err != nil || binary {
		// Binary content outside of the artifact convention is simply not
		// scanned. Normal operation, not an error.
		return nil, nil
	}

	patch, err := change.PatchContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil
		}
		return nil, []models.Warning{{
			Kind:    models.WarningBlobUnreadable,
			Subject: diff.BlobHash,
			Detail:  "patch failed for " + toPath + ": " + err.Error(),
		}}
	}

	for _, filePatch := range patch.FilePatches() {
		if filePatch.IsBinary() {
			continue
		}
		added, removed := lineChanges(toPath, change.From.Name, filePatch.Chunks())
		diff.Added = append(diff.Added, added...)
		diff.Removed = append(diff.Removed, removed...)
	}

	if len(diff.Added) == 0 && !diff.WholeBlobNew {
		return nil, nil
	}
	return diff, nil
}

// lineChanges walks patch chunks tracking line numbers on both sides. Added
// lines carry new-version numbers, removed lines old-version numbers.
func lineChanges(path, fromPath string, chunks []fdiff.Chunk) (added, removed []models.LineChange) {
	newLine, oldLine := 1, 1
	if fromPath == "" {
		fromPath = path
	}

	for _, chunk := range chunks {
		lines := splitChunkLines(chunk.Content())
		switch chunk.Type() {
		case fdiff.Equal:
			newLine += len(lines)
			oldLine += len(lines)
		case fdiff.Add:
			for _, line := range lines {
				added = append(added, models.LineChange{
					FilePath:   path,
					LineNumber: newLine,
					Content:    line,
					Kind:       models.ChangeKindAdded,
				})
				newLine++
			}
		case fdiff.Delete:
			for _, line := range lines {
				removed = append(removed, models.LineChange{
					FilePath:   fromPath,
					LineNumber: oldLine,
					Content:    line,
					Kind:       models.ChangeKindRemoved,
				})
				oldLine++
			}
		}
	}
	return added, removed
}

func splitChunkLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
