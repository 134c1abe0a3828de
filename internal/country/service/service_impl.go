package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/slethware/atlas/internal/clock"
	"github.com/slethware/atlas/internal/country/domain"
	"github.com/slethware/atlas/internal/country/enrich"
	"github.com/slethware/atlas/internal/source"
	"github.com/slethware/atlas/internal/summary"
	"github.com/slethware/atlas/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const topCountries = 5

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Source  source.Client
	Summary summary.Generator
	Draw    enrich.Multiplier
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	source  source.Client
	summary summary.Generator
	draw    enrich.Multiplier
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("country.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		source:  p.Source,
		summary: p.Summary,
		draw:    p.Draw,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListCountriesRequest) ([]domain.Country, error) {
	filter := domain.ListFilter{
		Region:       strings.TrimSpace(req.Region),
		CurrencyCode: strings.TrimSpace(req.Currency),
		Sort:         domain.ParseSortMode(req.Sort),
	}

	countries, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	s.log.Debug("listed countries",
		zap.String("region", filter.Region),
		zap.String("currency", filter.CurrencyCode),
		zap.String("sort", string(filter.Sort)),
		zap.Int("count", len(countries)),
	)
	return countries, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (domain.Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Country{}, domain.ErrInvalidName
	}

	country, err := s.repo.FindByNameIgnoreCase(ctx, s.db, name)
	if err != nil {
		return domain.Country{}, err
	}
	if country == nil {
		return domain.Country{}, domain.ErrNotFound
	}
	return *country, nil
}

func (s *Service) DeleteByName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidName
	}

	country, err := s.repo.FindByNameIgnoreCase(ctx, s.db, name)
	if err != nil {
		return err
	}
	if country == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, country); err != nil {
		return err
	}
	s.log.Info("deleted country", zap.String("name", country.Name))
	return nil
}

// Refresh fetches both upstream datasets and reconciles them into the
// catalog. Either fetch failing aborts before any write; per-record failures
// are logged and skipped without aborting the batch.
func (s *Service) Refresh(ctx context.Context) (domain.RefreshResult, error) {
	s.log.Info("starting country refresh")

	samples, err := s.source.FetchCountries(ctx)
	if err != nil {
		refreshRuns.WithLabelValues("source_error").Inc()
		return domain.RefreshResult{}, err
	}
	rates, err := s.source.FetchRates(ctx)
	if err != nil {
		refreshRuns.WithLabelValues("source_error").Inc()
		return domain.RefreshResult{}, err
	}

	now := s.clock.Now()
	var result domain.RefreshResult

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, sample := range samples {
			if err := s.reconcile(ctx, tx, sample, rates, now, &result); err != nil {
				s.log.Warn("skipping country record",
					zap.String("name", sample.Name),
					zap.Error(err),
				)
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		refreshRuns.WithLabelValues("error").Inc()
		return domain.RefreshResult{}, err
	}

	refreshRuns.WithLabelValues("ok").Inc()
	refreshRecords.WithLabelValues("inserted").Add(float64(result.Inserted))
	refreshRecords.WithLabelValues("updated").Add(float64(result.Updated))
	refreshRecords.WithLabelValues("skipped").Add(float64(result.Skipped))

	s.log.Info("refresh completed",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)

	s.generateSummary(ctx)

	return result, nil
}

// reconcile upserts one raw sample. Processing order follows the source's
// listed order so each record's random draw stays reproducible under a
// seeded multiplier.
func (s *Service) reconcile(
	ctx context.Context,
	tx *gorm.DB,
	sample source.RawCountry,
	rates source.RateTable,
	now time.Time,
	result *domain.RefreshResult,
) error {
	record, err := enrich.Normalize(sample, rates, now, s.draw)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByNameIgnoreCase(ctx, tx, record.Name)
	if err != nil {
		return err
	}

	if existing != nil {
		applyUpdate(existing, record)
		if err := s.repo.Save(ctx, tx, existing); err != nil {
			return err
		}
		result.Updated++
		s.log.Debug("updated country", zap.String("name", existing.Name))
		return nil
	}

	record.ID = s.genID.Generate()
	record.CreatedAt = now

	// The insert runs in a savepoint so a unique-name violation does not
	// poison the surrounding transaction on postgres.
	saveErr := tx.Transaction(func(inner *gorm.DB) error {
		return s.repo.Save(ctx, inner, &record)
	})
	if saveErr != nil {
		if !db.IsDuplicateKeyErr(saveErr) {
			return saveErr
		}
		return s.updateAfterInsertCollision(ctx, tx, record, result, saveErr)
	}
	result.Inserted++
	s.log.Debug("inserted country", zap.String("name", record.Name))
	return nil
}

// updateAfterInsertCollision handles a concurrent refresh inserting the same
// name between our lookup and save. The row exists now, so the record is
// re-fetched and applied as an update instead.
func (s *Service) updateAfterInsertCollision(
	ctx context.Context,
	tx *gorm.DB,
	record domain.Country,
	result *domain.RefreshResult,
	saveErr error,
) error {
	existing, err := s.repo.FindByNameIgnoreCase(ctx, tx, record.Name)
	if err != nil {
		return err
	}
	if existing == nil {
		return saveErr
	}

	applyUpdate(existing, record)
	if err := s.repo.Save(ctx, tx, existing); err != nil {
		return err
	}
	result.Updated++
	s.log.Debug("updated country after insert collision", zap.String("name", existing.Name))
	return nil
}

// applyUpdate overwrites every mutable field in place. ID and CreatedAt are
// never touched after first insert.
func applyUpdate(existing *domain.Country, updated domain.Country) {
	existing.Name = updated.Name
	existing.Capital = updated.Capital
	existing.Region = updated.Region
	existing.Population = updated.Population
	existing.CurrencyCode = updated.CurrencyCode
	existing.ExchangeRate = updated.ExchangeRate
	existing.EstimatedGDP = updated.EstimatedGDP
	existing.FlagURL = updated.FlagURL
	existing.LastRefreshedAt = updated.LastRefreshedAt
}

func (s *Service) Status(ctx context.Context) (domain.StatusResponse, error) {
	total, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return domain.StatusResponse{}, err
	}
	last, err := s.repo.MaxLastRefreshedAt(ctx, s.db)
	if err != nil {
		return domain.StatusResponse{}, err
	}
	return domain.StatusResponse{
		TotalCountries:  total,
		LastRefreshedAt: last,
	}, nil
}

// generateSummary re-renders the summary card after a refresh. Best effort:
// failures are logged and never affect the refresh outcome.
func (s *Service) generateSummary(ctx context.Context) {
	total, err := s.repo.Count(ctx, s.db)
	if err != nil {
		s.log.Error("summary stats failed", zap.Error(err))
		return
	}
	top, err := s.repo.TopByEstimatedGDP(ctx, s.db, topCountries)
	if err != nil {
		s.log.Error("summary stats failed", zap.Error(err))
		return
	}
	last, err := s.repo.MaxLastRefreshedAt(ctx, s.db)
	if err != nil {
		s.log.Error("summary stats failed", zap.Error(err))
		return
	}

	if err := s.summary.Generate(ctx, top, total, last); err != nil {
		s.log.Error("summary image generation failed", zap.Error(err))
		return
	}
	s.log.Info("summary image generated")
}
