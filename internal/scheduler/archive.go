package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/streetball/internal/season"
)

const (
	archiveJobName    = "champion_archive"
	archiveJobTimeout = time.Minute
)

// ChampionArchiver stores the season champion in the hall of fame.
type ChampionArchiver interface {
	ArchiveChampion(ctx context.Context) (season.HallOfFameEntry, bool, error)
}

// RegisterArchiveJob periodically archives the champion. Scoring the final
// already archives it, so the job only catches results written elsewhere.
func RegisterArchiveJob(s *Service, archiver ChampionArchiver, cronExpr string) error {
	if archiver == nil {
		return fmt.Errorf("archive job requires an archiver")
	}

	jobLogger := log.With().
		Str("component", "champion_archive_job").
		Str("job_name", archiveJobName).
		Str("cron", cronExpr).
		Logger()

	_, err := s.AddJob(archiveJobName, cronExpr, func() {
		runArchive(context.Background(), archiver, jobLogger)
	})
	return err
}

func runArchive(parent context.Context, archiver ChampionArchiver, logger zerolog.Logger) bool {
	ctx, cancel := context.WithTimeout(parent, archiveJobTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx)

	entry, archived, err := archiver.ArchiveChampion(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to archive champion")
		return false
	}
	if !archived {
		logger.Debug().Msg("No champion to archive")
		return false
	}
	logger.Info().
		Str("season_id", entry.SeasonID).
		Str("champion", entry.Champion.Name).
		Msg("Champion archived by scheduler")
	return true
}
