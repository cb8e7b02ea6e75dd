package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
)

// FileFailure records why one file could not be translated
type FileFailure struct {
	Path string
	Err  error
}

// Report summarizes a translate run. It is safe for concurrent updates.
type Report struct {
	mu             sync.Mutex
	Processed      int
	Skipped        int
	Unsupported    int
	Copied         int
	Failed         int
	BytesRead      int64
	Outputs        int
	Segments       int
	FailedSegments int
	Failures       []FileFailure
	Duration       time.Duration
}

func (r *Report) addResult(result *interfaces.TranslationResult, size int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Outputs += len(result.Outputs)
	if result.Skipped {
		r.Skipped++
		return
	}
	r.Processed++
	r.BytesRead += size
	r.Segments += result.Segments
	r.FailedSegments += result.FailedSegments
}

func (r *Report) addFailure(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failed++
	r.Failures = append(r.Failures, FileFailure{Path: path, Err: err})
}

func (r *Report) addUnsupported(copied bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if copied {
		r.Copied++
		return
	}
	r.Unsupported++
}

// Summary returns a one-line human readable summary
func (r *Report) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	parts := []string{
		fmt.Sprintf("%s translated", humanize.Comma(int64(r.Processed))),
		fmt.Sprintf("%s skipped", humanize.Comma(int64(r.Skipped))),
		fmt.Sprintf("%s failed", humanize.Comma(int64(r.Failed))),
	}
	if r.Unsupported > 0 {
		parts = append(parts, fmt.Sprintf("%s unsupported", humanize.Comma(int64(r.Unsupported))))
	}
	if r.Copied > 0 {
		parts = append(parts, fmt.Sprintf("%s copied", humanize.Comma(int64(r.Copied))))
	}
	return fmt.Sprintf("%s (%s read, %s segments, %s)",
		strings.Join(parts, ", "),
		humanize.Bytes(uint64(r.BytesRead)),
		humanize.Comma(int64(r.Segments)),
		r.Duration.Round(time.Millisecond))
}

// Print writes the summary and every failure
func (r *Report) Print(log *logger.Logger) {
	log.ProgressAlways("📊", "%s", r.Summary())

	r.mu.Lock()
	failures := append([]FileFailure(nil), r.Failures...)
	failedSegments := r.FailedSegments
	r.mu.Unlock()

	if failedSegments > 0 {
		log.ProgressAlways("⚠️", "%s segments could not be translated and were left out", humanize.Comma(int64(failedSegments)))
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	for _, failure := range failures {
		log.ProgressAlways("❌", "%s: %v", failure.Path, failure.Err)
	}
}
