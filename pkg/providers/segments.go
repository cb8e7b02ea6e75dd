package providers

import (
	"context"
	"fmt"

	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// segmentTranslator translates the segments of one file in order
type segmentTranslator struct {
	translator interfaces.Translator
	logger     *logger.Logger
}

// segmentResult holds translated segments; failed ones are left out
type segmentResult struct {
	Translated []string
	Total      int
	Failed     int
}

// translateAll translates every segment, logging and skipping failures.
// It fails only when the context ends or every segment failed.
func (s *segmentTranslator) translateAll(ctx context.Context, source string, segments []string) (*segmentResult, error) {
	result := &segmentResult{Total: len(segments)}
	var lastErr error

	for i, segment := range segments {
		if err := ctx.Err(); err != nil {
			return nil, utils.WrapError(err, utils.ErrorTypeTimeout, "translation cancelled")
		}

		translated, err := s.translator.Translate(ctx, segment)
		if err != nil {
			if ctx.Err() != nil {
				return nil, utils.WrapError(ctx.Err(), utils.ErrorTypeTimeout, "translation cancelled")
			}
			result.Failed++
			lastErr = err
			s.logger.Warn("Skipping segment %d of %s: %v", i+1, source, err)
			continue
		}
		result.Translated = append(result.Translated, translated)
	}

	if result.Total > 0 && result.Failed == result.Total {
		return result, utils.WrapError(lastErr, "", fmt.Sprintf("all %d segments of %s failed to translate", result.Total, source))
	}
	return result, nil
}
