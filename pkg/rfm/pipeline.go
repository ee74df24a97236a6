package rfm

import (
	"fmt"
	"log"
	"time"

	"rfm-analysis/pkg/models"

	"github.com/schollz/progressbar/v3"
)

// Result est la sortie d'un run complet du pipeline.
type Result struct {
	Users        []models.SegmentedUser
	AnalysisDate time.Time
	Thresholds   models.Thresholds
	RowsIn       int // lignes brutes reçues
	RowsDropped  int // lignes écartées pour null
	RowsFiltered int // lignes retirées par le filtre d'outliers
}

const pipelineSteps = 5

// Run enchaîne les cinq étapes : normalisation, filtre d'outliers (optionnel),
// agrégation, scoring, segmentation. Calcul synchrone, mono-thread, sans état
// entre deux invocations : même entrée + même configuration ⇒ même résultat.
func Run(table models.RawTable, cfg models.Config) (*Result, error) {
	cfg = withDefaults(cfg)

	var bar *progressbar.ProgressBar
	if cfg.Verbose {
		bar = progressbar.Default(pipelineSteps)
	} else {
		bar = progressbar.DefaultSilent(pipelineSteps)
	}

	txs, err := Normalize(table)
	if err != nil {
		return nil, fmt.Errorf("normalisation: %w", err)
	}
	res := &Result{
		RowsIn:      len(table.Rows),
		RowsDropped: len(table.Rows) - len(txs),
	}
	_ = bar.Add(1)
	if cfg.Verbose {
		log.Printf("[INFO] normalisation: lignes=%d écartées=%d", len(txs), res.RowsDropped)
	}

	if cfg.RemoveOutliers {
		kept := RemoveOutliersPercentile(txs, cfg.LowerPercentile, cfg.UpperPercentile)
		res.RowsFiltered = len(txs) - len(kept)
		txs = kept
		if cfg.Verbose {
			log.Printf("[INFO] filtre outliers [%g;%g]: retirées=%d", cfg.LowerPercentile, cfg.UpperPercentile, res.RowsFiltered)
		}
	}
	_ = bar.Add(1)

	users, analysisDate := Transform(txs)
	res.AnalysisDate = analysisDate
	_ = bar.Add(1)
	if cfg.Verbose {
		log.Printf("[INFO] agrégation: utilisateurs=%d analysis_date=%s", len(users), analysisDate.Format("2006-01-02"))
	}

	res.Thresholds = ComputeThresholds(users)
	scored := Score(users, res.Thresholds)
	_ = bar.Add(1)

	segmented, err := Classify(scored)
	if err != nil {
		return nil, fmt.Errorf("segmentation: %w", err)
	}
	res.Users = segmented
	_ = bar.Add(1)
	if cfg.Verbose {
		log.Printf("[INFO] segmentation: segments=%d", len(SummarizeSegments(segmented)))
	}
	return res, nil
}

// withDefaults applique les valeurs par défaut de la configuration.
func withDefaults(cfg models.Config) models.Config {
	if cfg.LowerPercentile == 0 {
		cfg.LowerPercentile = 0.01
	}
	if cfg.UpperPercentile == 0 {
		cfg.UpperPercentile = 0.99
	}
	if cfg.Variant == "" {
		cfg.Variant = models.VariantMonetary
	}
	return cfg
}
