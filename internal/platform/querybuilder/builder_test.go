package querybuilder

import (
	"database/sql"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("fixture_id", "home_team_id").
		From("fixtures").
		OrderBy("kickoff_at", "fixture_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT fixture_id, home_team_id FROM fixtures ORDER BY kickoff_at, fixture_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_Validation(t *testing.T) {
	if _, _, err := Select("team_id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
	if _, _, err := Select().From("teams").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("team_id").From("teams; DROP TABLE teams").ToSQL(); err == nil {
		t.Fatalf("expected error for table name with statement separator")
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("team_id", "team_name").Values(int64(1)).ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestDeleteAll(t *testing.T) {
	query, err := DeleteAll("fixtures")
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM fixtures" {
		t.Fatalf("unexpected query: %s", query)
	}
	if _, err := DeleteAll(" "); err == nil {
		t.Fatalf("expected error for empty table")
	}
}

type venueRow struct {
	VenueID  int64         `db:"venue_id"`
	Name     string        `db:"venue_name"`
	Capacity sql.NullInt64 `db:"capacity"`
	internal string
	Ignored  string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	rows := []venueRow{
		{VenueID: 1, Name: "Stade A", Capacity: sql.NullInt64{Int64: 45000, Valid: true}},
		{VenueID: 2, Name: "Stade B"},
	}

	query, args, err := InsertModels("venues", rows)
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO venues (venue_id, venue_name, capacity) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[0] != int64(1) || args[4] != "Stade B" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[venueRow]("venues", nil); err == nil {
		t.Fatalf("expected error for empty model list")
	}
}

func TestColumnsOf(t *testing.T) {
	cols := ColumnsOf(&venueRow{})
	if len(cols) != 3 || cols[0] != "venue_id" || cols[2] != "capacity" {
		t.Fatalf("unexpected columns: %v", cols)
	}
}
