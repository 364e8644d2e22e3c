// internal/puzzle/generator.go
//
// Batch pipeline: words → filter → segmentation → threshold → records.
// Responsibilities:
//   - Run the minimal segmentation for every eligible word.
//   - Keep decompositions with at least Policy.MinCodes codes.
//   - Count what happened to each word (Stats) and log a summary.
//
// Notes:
//   - Words are processed one after another in input order, so the output
//     order matches the word list.
//   - A malformed word is logged and skipped; it never aborts the run.
//     Only an unusable lexicon does.
//   - ctx is checked between words.

package puzzle

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/TVLuke/kennzeichen-buch/internal/lexicon"
	"github.com/TVLuke/kennzeichen-buch/internal/segment"
)

const progressEvery = 10

// Generate builds puzzle records for words using the codes of lex.
func Generate(ctx context.Context, words []string, lex *lexicon.Lexicon, policy Policy) (*Result, error) {
	if lex.Len() == 0 {
		return nil, fmt.Errorf("puzzle: generate: %w", lexicon.ErrEmptyLexicon)
	}

	res := &Result{Records: []Record{}}
	res.Stats.Candidates = len(words)

	eligible := policy.SelectEligibleWords(words)
	res.Stats.Eligible = len(eligible)

	for i, w := range eligible {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 && i%progressEvery == 0 {
			log.Debug().Int("done", i).Int("total", len(eligible)).Int("accepted", res.Stats.Accepted).Msg("generate progress")
		}

		d, ok, err := segment.FindMinimal(w, lex)
		if err != nil {
			if errors.Is(err, segment.ErrInvalidWord) {
				res.Stats.Invalid++
				log.Warn().Str("word", w).Err(err).Msg("skipping malformed word")
				continue
			}
			return nil, err
		}
		res.Stats.Attempted++
		if !ok {
			log.Debug().Str("word", w).Msg("no decomposition")
			continue
		}
		res.Stats.Decomposed++
		if !policy.AcceptDecomposition(d) {
			log.Debug().Str("word", w).Str("codes", d.String()).Msg("too few codes")
			continue
		}
		res.Records = append(res.Records, BuildRecord(w, d, lex))
		res.Stats.Accepted++
	}

	log.Info().
		Int("candidates", res.Stats.Candidates).
		Int("attempted", res.Stats.Attempted).
		Int("accepted", res.Stats.Accepted).
		Int("invalid", res.Stats.Invalid).
		Msg("generation finished")
	return res, nil
}
