package querybuilder

import (
	"strings"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "document").
		From("games").
		Where(Eq("id", "g1")).
		OrderBy("seq").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, document FROM games WHERE id = $1 ORDER BY seq"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "g1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("games").
		Columns("id", "document").
		Values("g1", "{}").
		Suffix("ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO games (id, document) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "g1" || args[1] != "{}" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultipleRows(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("id", "position").
		Values("t1", 0).
		Values("t2", 1).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	if query != "INSERT INTO teams (id, position) VALUES ($1, $2), ($3, $4)" || len(args) != 4 {
		t.Fatalf("unexpected query: %s %+v", query, args)
	}

	if _, _, err := InsertInto("teams").Columns("id", "position").Values("t1").ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		internal string
		Skipped  string `db:"-"`
	}

	query, args, err := InsertModel("teams", row{ID: "t1", Name: "Hawks", internal: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	if query != "INSERT INTO teams (id, name) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != "Hawks" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("teams", struct{}{}, ""); err == nil {
		t.Fatalf("expected error for model without db columns")
	}
}

func TestUpsertModel(t *testing.T) {
	type row struct {
		ID        string `db:"id"`
		Name      string `db:"name"`
		CreatedAt string `db:"created_at,noupdate"`
	}

	query, args, err := UpsertModel("teams", &row{ID: "t1", Name: "Hawks", CreatedAt: "now"}, "id")
	if err != nil {
		t.Fatalf("build upsert model query: %v", err)
	}
	want := "INSERT INTO teams (id, name, created_at) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}

	type keyOnly struct {
		ID string `db:"id"`
	}
	query, _, err = UpsertModel("teams", keyOnly{ID: "t1"}, "id")
	if err != nil {
		t.Fatalf("build key-only upsert: %v", err)
	}
	if !strings.HasSuffix(query, "ON CONFLICT (id) DO NOTHING") {
		t.Fatalf("unexpected query: %s", query)
	}

	if _, _, err := UpsertModel("teams", row{}); err == nil {
		t.Fatalf("expected error without conflict columns")
	}
}

func TestDeleteBuilder(t *testing.T) {
	t.Run("with condition", func(t *testing.T) {
		query, args, err := DeleteFrom("teams").Where(NotIn("id", []any{"t1", "t2"})).ToSQL()
		if err != nil {
			t.Fatalf("build delete query: %v", err)
		}
		if query != "DELETE FROM teams WHERE id NOT IN ($1, $2)" {
			t.Fatalf("unexpected query: %s", query)
		}
		if len(args) != 2 {
			t.Fatalf("unexpected args: %+v", args)
		}
	})

	t.Run("empty not-in matches everything", func(t *testing.T) {
		query, args, err := DeleteFrom("teams").Where(NotIn("id", nil)).ToSQL()
		if err != nil {
			t.Fatalf("build delete query: %v", err)
		}
		if query != "DELETE FROM teams WHERE 1=1" || len(args) != 0 {
			t.Fatalf("unexpected query: %s %+v", query, args)
		}
	})
}
