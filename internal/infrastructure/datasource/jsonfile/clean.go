package jsonfile

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
)

var (
	// ErrInvalidData marks failures that retrying cannot fix.
	ErrInvalidData = dataset.ErrInvalidData

	errMissingKickoff = crerr.New("fixture has no kickoff date")
)

func errUnparsableKickoff(value string) error {
	return crerr.Newf("unparsable kickoff %q", value)
}

// cleanString strips one pair of wrapping quotes and unescapes \" sequences
// left behind by spreadsheet exports.
func cleanString(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return strings.ReplaceAll(value, `\"`, `"`)
}

// summaryValue renders a decoded JSON scalar as display text.
func summaryValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return cleanString(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}
