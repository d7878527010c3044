package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/TheApexWu/BloodMeridianNLP/internal/common"
	"github.com/TheApexWu/BloodMeridianNLP/internal/evaluate"
	"github.com/TheApexWu/BloodMeridianNLP/internal/lexicon"
	"github.com/TheApexWu/BloodMeridianNLP/internal/scan"
)

// Stage names used for timings and metrics.
const (
	StageLoad     = "load"
	StageEvaluate = "evaluate"
	StageTrain    = "train"
	StageRead     = "read"
	StageScan     = "scan"
	StageWrite    = "write"
)

// Training is the outcome of the first phase.
type Training struct {
	Lexicon *lexicon.Lexicon
	// Evaluation is nil when evaluation is disabled.
	Evaluation *evaluate.Evaluation
	// Model is the production model, fitted on every sample.
	Model  *classifier.Model
	Stages []common.Stage
}

// Result is the outcome of a full run.
type Result struct {
	Training
	Words    []string
	Dialogue []string
}

// Train loads the lexicon, optionally evaluates on a held-out split and
// refits on all samples.
func (p *Pipeline) Train(ctx context.Context) (*Training, error) {
	sw := common.NewStopwatch()
	t, err := p.train(ctx, sw)
	if err != nil {
		return nil, err
	}
	t.Stages = sw.Stages()
	return t, nil
}

func (p *Pipeline) train(ctx context.Context, sw *common.Stopwatch) (*Training, error) {
	t := &Training{}

	err := p.stage(ctx, sw, StageLoad, func() error {
		lex, err := lexicon.Load(p.cfg.SpanishPath, p.cfg.EnglishPath, p.cfg.Lexicon)
		if err != nil {
			return err
		}
		t.Lexicon = lex
		for _, l := range classifier.Labels {
			p.recorder.RecordSamples(l, lex.Count(l))
		}
		p.logger.Info("Lexicon loaded", "spanish", len(lex.Spanish), "english", len(lex.English))
		return nil
	})
	if err != nil {
		return nil, err
	}
	samples := t.Lexicon.Samples()

	if p.cfg.Evaluate {
		err = p.stage(ctx, sw, StageEvaluate, func() error {
			ev, err := evaluate.Run(samples, p.cfg.EvaluationOptions())
			if err != nil {
				return fmt.Errorf("evaluation: %w", err)
			}
			t.Evaluation = ev
			p.recorder.RecordEvaluation(ev.Report)
			p.recorder.RecordVocabulary("evaluation", ev.Model.VocabularySize())
			p.logger.Info("Evaluation completed",
				"train_size", ev.TrainSize,
				"test_size", ev.TestSize,
				"accuracy", ev.Report.Accuracy,
				"seed", ev.Seed)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	err = p.stage(ctx, sw, StageTrain, func() error {
		m, err := classifier.Train(samples, p.cfg.Classifier)
		if err != nil {
			return fmt.Errorf("training production model: %w", err)
		}
		t.Model = m
		p.recorder.RecordVocabulary("production", m.VocabularySize())
		p.logger.Info("Production model trained", "samples", m.SampleCount(), "vocabulary", m.VocabularySize())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Run performs both phases and writes the artifacts. Nothing is written unless
// scanning completes.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	sw := common.NewStopwatch()
	t, err := p.train(ctx, sw)
	if err != nil {
		return nil, err
	}
	res := &Result{Training: *t}

	var document string
	err = p.stage(ctx, sw, StageRead, func() error {
		data, err := os.ReadFile(p.cfg.DocumentPath)
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		document = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, sw, StageScan, func() error {
		s, err := scan.New(res.Model, p.cfg.Scan)
		if err != nil {
			return err
		}
		res.Words = s.ExtractWords(document)
		res.Dialogue = s.ExtractDialogue(document)
		p.recordScan(s, document, len(res.Dialogue))
		p.logger.Info("Document scanned",
			"words", len(res.Words),
			"dialogue_lines", len(res.Dialogue),
			"distinct_tokens", s.CachedWords())
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, sw, StageWrite, func() error {
		err := WriteArtifacts(
			Artifact{Path: p.cfg.WordsPath, Content: scan.JoinWords(res.Words)},
			Artifact{Path: p.cfg.DialoguePath, Content: scan.JoinDialogue(res.Dialogue)},
		)
		if err != nil {
			return err
		}
		p.logger.Info("Artifacts written", "words_path", p.cfg.WordsPath, "dialogue_path", p.cfg.DialoguePath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Stages = sw.Stages()

	if p.cfg.MetricsFile != "" {
		if err := p.recorder.WriteTextfile(p.cfg.MetricsFile); err != nil {
			return nil, err
		}
		p.logger.Debug("Metrics written", "path", p.cfg.MetricsFile)
	}
	return res, nil
}

// stage aborts before fn when ctx is done, then times fn.
func (p *Pipeline) stage(ctx context.Context, sw *common.Stopwatch, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("aborted before %s: %w", name, err)
	}
	p.logger.Debug("Starting stage", "stage", name)
	err := sw.Time(name, fn)
	stages := sw.Stages()
	p.recorder.ObserveStage(name, stages[len(stages)-1].Duration)
	return err
}

func (p *Pipeline) recordScan(s *scan.Scanner, document string, retained int) {
	scanned := 0
	for _, line := range scan.SplitLines(document) {
		toks := scan.Tokenize(line)
		if len(toks) > 0 {
			scanned++
		}
		for _, tok := range toks {
			p.recorder.RecordToken(s.Label(tok))
		}
	}
	p.recorder.RecordLines(scanned, retained)
}
