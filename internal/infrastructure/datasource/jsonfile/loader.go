// Package jsonfile loads a tournament dataset from the static JSON exports
// (Teams.json, Fixtures.json, ...) kept in one directory.
package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

const (
	TeamsFile    = "Teams.json"
	FixturesFile = "Fixtures.json"
	PlayersFile  = "Players.json"
	VenuesFile   = "Venues.json"
	StagesFile   = "Tournament_Stages.json"
	SummaryFile  = "Tournament_Summary.json"
)

var datasetFiles = []string{TeamsFile, FixturesFile, PlayersFile, VenuesFile, StagesFile, SummaryFile}

type Source struct {
	dir       string
	validator *validator.Validate
	logger    *logging.Logger
	now       func() time.Time
}

func NewSource(dir string, logger *logging.Logger) *Source {
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{
		dir:       dir,
		validator: validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Source) Name() string {
	return "file:" + s.dir
}

// Load reads every dataset file concurrently. Read failures are returned as
// is; malformed content is marked with ErrInvalidData.
func (s *Source) Load(ctx context.Context) (dataset.Dataset, error) {
	raw := make([][]byte, len(datasetFiles))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, name := range datasetFiles {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(filepath.Join(s.dir, name))
			if err != nil {
				return crerr.Wrapf(err, "read %s", name)
			}
			raw[i] = content
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return dataset.Dataset{}, err
	}

	out := dataset.Dataset{LoadedAt: s.now().UTC()}
	var err error
	if out.Teams, err = decodeTeams(ctx, s.validator, raw[0]); err != nil {
		return dataset.Dataset{}, markInvalid(err, TeamsFile)
	}
	if out.Fixtures, err = decodeFixtures(ctx, s.validator, raw[1]); err != nil {
		return dataset.Dataset{}, markInvalid(err, FixturesFile)
	}
	if out.Players, err = decodePlayers(ctx, s.validator, raw[2]); err != nil {
		return dataset.Dataset{}, markInvalid(err, PlayersFile)
	}
	if out.Venues, err = decodeVenues(ctx, s.validator, raw[3]); err != nil {
		return dataset.Dataset{}, markInvalid(err, VenuesFile)
	}
	if out.Stages, err = decodeStages(ctx, s.validator, raw[4]); err != nil {
		return dataset.Dataset{}, markInvalid(err, StagesFile)
	}
	if out.Summary, err = decodeSummary(raw[5]); err != nil {
		return dataset.Dataset{}, markInvalid(err, SummaryFile)
	}

	digest := xxhash.New()
	for _, content := range raw {
		_, _ = digest.Write(content)
	}
	out.Version = strconv.FormatUint(digest.Sum64(), 16)

	s.logger.DebugContext(ctx, "dataset files decoded",
		"dir", s.dir,
		"version", out.Version,
		"teams", len(out.Teams),
		"fixtures", len(out.Fixtures),
	)

	return out, nil
}

func markInvalid(err error, file string) error {
	return crerr.Mark(crerr.Wrapf(err, "decode %s", file), ErrInvalidData)
}

func decodeList[T any](ctx context.Context, v *validator.Validate, content []byte) ([]T, error) {
	var records []T
	if err := sonic.Unmarshal(content, &records); err != nil {
		return nil, crerr.Wrap(err, "unmarshal")
	}
	for i := range records {
		if err := v.StructCtx(ctx, records[i]); err != nil {
			return nil, crerr.Wrapf(err, "record %d", i)
		}
	}
	return records, nil
}

func decodeTeams(ctx context.Context, v *validator.Validate, content []byte) ([]team.Team, error) {
	records, err := decodeList[teamRecord](ctx, v, content)
	if err != nil {
		return nil, err
	}
	out := make([]team.Team, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func decodeFixtures(ctx context.Context, v *validator.Validate, content []byte) ([]fixture.Fixture, error) {
	records, err := decodeList[fixtureRecord](ctx, v, content)
	if err != nil {
		return nil, err
	}
	out := make([]fixture.Fixture, 0, len(records))
	for i, r := range records {
		item, err := r.toDomain()
		if err != nil {
			return nil, crerr.Wrapf(err, "record %d fixture=%d", i, r.FixtureID)
		}
		out = append(out, item)
	}
	return out, nil
}

func decodePlayers(ctx context.Context, v *validator.Validate, content []byte) ([]player.Player, error) {
	records, err := decodeList[playerRecord](ctx, v, content)
	if err != nil {
		return nil, err
	}
	out := make([]player.Player, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func decodeVenues(ctx context.Context, v *validator.Validate, content []byte) ([]venue.Venue, error) {
	records, err := decodeList[venueRecord](ctx, v, content)
	if err != nil {
		return nil, err
	}
	out := make([]venue.Venue, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func decodeStages(ctx context.Context, v *validator.Validate, content []byte) ([]stage.Stage, error) {
	records, err := decodeList[stageRecord](ctx, v, content)
	if err != nil {
		return nil, err
	}
	out := make([]stage.Stage, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// decodeSummary takes the first row of the summary export. Unknown columns are
// kept as attributes.
func decodeSummary(content []byte) (summary.Summary, error) {
	var rows []map[string]any
	if err := sonic.Unmarshal(content, &rows); err != nil {
		return summary.Summary{}, crerr.Wrap(err, "unmarshal")
	}
	if len(rows) == 0 {
		return summary.Summary{}, nil
	}

	out := summary.Summary{Attributes: make(map[string]string, len(rows[0]))}
	for key, value := range rows[0] {
		text := summaryValue(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "tournament_name", "name":
			out.Name = text
		case "edition", "year", "season":
			out.Edition = text
		case "host_country", "host":
			out.HostCountry = text
		case "start_date":
			out.StartDate = parseSummaryDate(text)
		case "end_date":
			out.EndDate = parseSummaryDate(text)
		case "total_teams":
			out.TotalTeams, _ = strconv.Atoi(text)
		case "total_groups":
			out.TotalGroups, _ = strconv.Atoi(text)
		case "champion", "winner":
			out.Champion = text
		default:
			out.Attributes[key] = text
		}
	}
	return out, nil
}

func parseSummaryDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range kickoffLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}

var _ dataset.Source = (*Source)(nil)
