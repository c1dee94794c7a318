// Package integration exercises the full shelf stack end to end: schema
// definition, validated CRUD, sorting, and persistence round-trips through
// each backend.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/shelfdb/pkg/store"
	"github.com/dukaforge/shelfdb/pkg/types"
)

var backends = []string{types.BackendJSON, types.BackendSQLite}

func attach(t *testing.T, backend, dir string) types.Store {
	t.Helper()
	s, err := store.New(backend)
	require.NoError(t, err)
	require.NoError(t, s.Attach(types.Config{
		Backend:  backend,
		DataDir:  dir,
		Database: "integration",
	}))
	return s
}

func catalogSchema(t *testing.T) *types.Schema {
	t.Helper()
	schema, err := types.NewSchema([]types.Column{
		{Name: "id", Type: types.TypeInteger},
		{Name: "price", Type: types.TypeReal},
		{Name: "flag", Type: types.TypeChar},
		{Name: "title", Type: types.TypeString},
		{Name: "body", Type: types.TypeHTMLFile},
		{Name: "shelf", Type: types.TypeStringInterval},
	})
	require.NoError(t, err)
	return schema
}

func TestFullLifecyclePerBackend(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()

			s := attach(t, backend, dir)
			db, err := s.Database()
			require.NoError(t, err)

			table, err := db.CreateTable("books", catalogSchema(t))
			require.NoError(t, err)

			rows := []map[string]any{
				{"id": "3", "price": "12.5", "flag": "n", "title": "gamma",
					"body": "<p>g</p>", "shelf": types.Interval{Low: "g", High: "h"}},
				{"id": "1", "price": "7.25", "flag": "y", "title": "alpha",
					"body": "<p>a</p>", "shelf": types.Interval{Low: "a", High: "b"}},
				{"id": "2", "price": "99", "flag": "y", "title": "beta",
					"body": "<p>b</p>", "shelf": types.Interval{Low: "b", High: "c"}},
			}
			for _, raw := range rows {
				_, err := table.Insert(raw)
				require.NoError(t, err)
			}

			// A bad update must not disturb the stored record.
			err = table.Update(1, map[string]any{
				"id": "x", "price": "7.25", "flag": "y", "title": "alpha",
				"body": "<p>a</p>", "shelf": types.Interval{Low: "a", High: "b"}})
			var verrs types.ValidationErrors
			require.ErrorAs(t, err, &verrs)

			require.NoError(t, table.SortBy("id", true))
			require.NoError(t, s.Detach())

			// Reload and verify schema, order, and values survived.
			s2 := attach(t, backend, dir)
			defer s2.Detach()
			db2, err := s2.Database()
			require.NoError(t, err)
			table2, err := db2.GetTable("books")
			require.NoError(t, err)
			require.Equal(t, 3, table2.Len())

			var titles []string
			for _, rec := range table2.All() {
				v, err := rec.Get("title")
				require.NoError(t, err)
				titles = append(titles, v.Text())
			}
			assert.Equal(t, []string{"alpha", "beta", "gamma"}, titles)

			rec, err := table2.Read(0)
			require.NoError(t, err)
			shelf, err := rec.Get("shelf")
			require.NoError(t, err)
			assert.Equal(t, types.Interval{Low: "a", High: "b"}, shelf.Interval())
			price, err := rec.Get("price")
			require.NoError(t, err)
			assert.Equal(t, 7.25, price.Real())
		})
	}
}

func TestDeleteShiftSurvivesReload(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()

			s := attach(t, backend, dir)
			db, err := s.Database()
			require.NoError(t, err)
			schema, err := types.NewSchema([]types.Column{{Name: "n", Type: types.TypeInteger}})
			require.NoError(t, err)
			table, err := db.CreateTable("nums", schema)
			require.NoError(t, err)
			for _, n := range []string{"10", "20", "30"} {
				_, err := table.Insert(map[string]any{"n": n})
				require.NoError(t, err)
			}
			require.NoError(t, table.Delete(1))
			require.NoError(t, s.Detach())

			s2 := attach(t, backend, dir)
			defer s2.Detach()
			db2, err := s2.Database()
			require.NoError(t, err)
			table2, err := db2.GetTable("nums")
			require.NoError(t, err)

			rec, err := table2.Read(1)
			require.NoError(t, err)
			v, err := rec.Get("n")
			require.NoError(t, err)
			assert.Equal(t, int64(30), v.Int(), "record after the deleted one shifted down")

			_, err = table2.Read(2)
			var oor *types.OutOfRangeError
			require.ErrorAs(t, err, &oor)
		})
	}
}

func TestBackendsProduceEqualDatabases(t *testing.T) {
	build := func(backend, dir string) *types.Database {
		s := attach(t, backend, dir)
		db, err := s.Database()
		require.NoError(t, err)
		table, err := db.CreateTable("t", catalogSchema(t))
		require.NoError(t, err)
		_, err = table.Insert(map[string]any{
			"id": "1", "price": "0.1", "flag": "x", "title": "one",
			"body": "<b>1</b>", "shelf": types.Interval{Low: "l", High: "r"}})
		require.NoError(t, err)
		require.NoError(t, s.Detach())

		s2 := attach(t, backend, dir)
		defer s2.Detach()
		db2, err := s2.Database()
		require.NoError(t, err)
		return db2
	}

	jsonDB := build(types.BackendJSON, t.TempDir())
	sqliteDB := build(types.BackendSQLite, t.TempDir())

	jt, err := jsonDB.GetTable("t")
	require.NoError(t, err)
	st, err := sqliteDB.GetTable("t")
	require.NoError(t, err)
	require.Equal(t, jt.Len(), st.Len())
	for i := range jt.All() {
		assert.True(t, jt.All()[i].Equal(st.All()[i]),
			"record %d differs between backends", i)
	}
}
