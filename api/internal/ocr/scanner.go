package ocr

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cardscan/api/internal/metrics"
	"cardscan/api/internal/ocr/types"
	"cardscan/api/internal/prompt"
)

// Scanner runs the card pipeline against one engine: classify (fail-open),
// extract, then parse (fail-soft). Each stage calls the model at most once.
type Scanner struct {
	engine Engine
	log    *zap.Logger
}

func NewScanner(engine Engine, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{
		engine: engine,
		log:    log.With(zap.String("engine", engine.Name()), zap.String("model", engine.GetModel())),
	}
}

// Classify asks whether img shows a business card. When the model cannot be
// reached it returns Unknown and a KindClassification error.
func (s *Scanner) Classify(ctx context.Context, img types.EncodedImage) (Classification, error) {
	start := time.Now()
	answer, err := s.engine.Complete(ctx, prompt.Classification(img))
	metrics.ObserveLLM(s.engine.Name(), prompt.CLASSIFY, time.Since(start))
	if err != nil {
		metrics.RecordClassification(s.engine.Name(), Unknown.String())
		return Unknown, &Error{Kind: KindClassification, Message: "classification failed", Err: err}
	}
	c := InterpretClassification(answer)
	metrics.RecordClassification(s.engine.Name(), c.String())
	s.log.Debug("classified", zap.String("answer", answer), zap.Stringer("result", c))
	return c, nil
}

// Extract transcribes img into a contact record. Transport and provider failures
// are KindExtraction errors; an unparseable answer yields the placeholder record.
func (s *Scanner) Extract(ctx context.Context, img types.EncodedImage) (types.ContactRecord, error) {
	start := time.Now()
	raw, err := s.engine.Complete(ctx, prompt.Extraction(img))
	metrics.ObserveLLM(s.engine.Name(), prompt.EXTRACT, time.Since(start))
	if err != nil {
		metrics.RecordExtraction(s.engine.Name(), metrics.ExtractionFailed)
		return types.ContactRecord{}, &Error{
			Kind:    KindExtraction,
			Message: "Error extracting business card information",
			Err:     err,
		}
	}

	rec, err := ParseExtractionResponse(raw)
	if err != nil {
		metrics.RecordExtraction(s.engine.Name(), metrics.ExtractionPlaceholder)
		s.log.Warn("extraction answer is not JSON, using placeholder",
			zap.Error(err), zap.Int("answer_len", len(raw)))
		return rec, nil
	}
	metrics.RecordExtraction(s.engine.Name(), metrics.ExtractionOK)
	return rec, nil
}

// Scan classifies then extracts. A classifier outage never blocks extraction.
func (s *Scanner) Scan(ctx context.Context, img types.EncodedImage) (types.ContactRecord, error) {
	c, err := s.Classify(ctx, img)
	if err != nil {
		s.log.Warn("classification error, continuing with extraction", zap.Error(err))
	}
	if c == NotCard {
		return types.ContactRecord{}, ErrNotBusinessCard
	}
	return s.Extract(ctx, img)
}
