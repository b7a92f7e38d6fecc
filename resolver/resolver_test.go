package resolver

import (
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"testing"
)

func tasks() (*fakeTable, []host.Record) {
	table := newTable("Tasks", "Name", "Status", "Points", "Owner")
	return table, records(
		rec("r1", map[string]string{"Name": "Docs", "Status": "Done", "Points": "3", "Owner": "Ann"}),
		rec("r2", map[string]string{"Name": "Ship", "Status": "Open", "Points": "10", "Owner": "Bob"}),
		rec("r3", map[string]string{"Name": "Test", "Status": "Open", "Points": "2", "Owner": "ann marie"}),
	)
}

func TestResolveUnconfigured(t *testing.T) {
	table, rs := tasks()

	result := Resolve(nil, table, rs)
	assert.False(t, result.Configured)
	assert.Empty(t, result.Records)
	assert.NotNil(t, result.Records)

	result = Resolve(&types.DataRef{FieldName: "Name"}, table, rs)
	assert.False(t, result.Configured)
	assert.Empty(t, result.Records)
}

func TestResolveMissingTable(t *testing.T) {
	result := Resolve(&types.DataRef{TableName: "Ghost", FieldName: "Y"}, nil, nil)
	assert.True(t, result.Configured)
	assert.Equal(t, TableNotFound, result.Value)
	assert.Empty(t, result.Records)
}

func TestResolveEmptyTable(t *testing.T) {
	table := newTable("X", "Y")
	result := Resolve(&types.DataRef{TableName: "X", FieldName: "Y"}, table, []host.Record{})
	assert.Equal(t, Empty, result.Value)
	assert.Empty(t, result.Records)

	result = Resolve(&types.DataRef{TableName: "X", FieldName: "Y"}, table, nil)
	assert.Equal(t, Empty, result.Value)
}

func TestResolveDefaultsToFirstRecord(t *testing.T) {
	table, rs := tasks()
	result := Resolve(&types.DataRef{TableName: "Tasks", FieldName: "Name"}, table, rs)
	assert.True(t, result.Configured)
	assert.Equal(t, "Docs", result.Value)
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(result.Records))
}

func TestFilterOperators(t *testing.T) {
	table, rs := tasks()
	tests := []struct {
		name   string
		filter types.FilterClause
		want   []string
	}{
		{"eq", types.FilterClause{Field: "Status", Op: types.OpEq, Value: types.StringValue("Open")}, []string{"r2", "r3"}},
		{"eq is case sensitive", types.FilterClause{Field: "Status", Op: types.OpEq, Value: types.StringValue("open")}, []string{}},
		{"eq number", types.FilterClause{Field: "Points", Op: types.OpEq, Value: types.NumberValue(10)}, []string{"r2"}},
		{"neq", types.FilterClause{Field: "Status", Op: types.OpNeq, Value: types.StringValue("Open")}, []string{"r1"}},
		{"contains ignores case", types.FilterClause{Field: "Owner", Op: types.OpContains, Value: types.StringValue("ANN")}, []string{"r1", "r3"}},
		{"gt", types.FilterClause{Field: "Points", Op: types.OpGt, Value: types.NumberValue(2)}, []string{"r1", "r2"}},
		{"gte", types.FilterClause{Field: "Points", Op: types.OpGte, Value: types.NumberValue(3)}, []string{"r1", "r2"}},
		{"lt", types.FilterClause{Field: "Points", Op: types.OpLt, Value: types.NumberValue(3)}, []string{"r3"}},
		{"lte numeric text", types.FilterClause{Field: "Points", Op: types.OpLte, Value: types.StringValue("3")}, []string{}},
		{"gt numeric text", types.FilterClause{Field: "Points", Op: types.OpGt, Value: types.StringValue("2")}, []string{}},
		{"numeric op on text", types.FilterClause{Field: "Name", Op: types.OpGt, Value: types.NumberValue(0)}, []string{}},
		{"missing field passes", types.FilterClause{Field: "Nope", Op: types.OpEq, Value: types.StringValue("x")}, []string{"r1", "r2", "r3"}},
		{"unknown op passes", types.FilterClause{Field: "Name", Op: "like", Value: types.StringValue("x")}, []string{"r1", "r2", "r3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Resolve(&types.DataRef{
				TableName: "Tasks",
				FieldName: "Name",
				Filters:   []types.FilterClause{tt.filter},
			}, table, rs)
			if diff := cmp.Diff(tt.want, ids(result.Records)); diff != "" {
				t.Errorf("filtered records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFiltersAreANDed(t *testing.T) {
	table, rs := tasks()
	result := Resolve(&types.DataRef{
		TableName: "Tasks",
		FieldName: "Name",
		Filters: []types.FilterClause{
			{Field: "Status", Op: types.OpEq, Value: types.StringValue("Open")},
			{Field: "Owner", Op: types.OpContains, Value: types.StringValue("ann")},
		},
	}, table, rs)
	assert.Equal(t, []string{"r3"}, ids(result.Records))
	assert.Equal(t, "Test", result.Value)
}

func TestFilterFailsOpenOnExtractionError(t *testing.T) {
	table := newTable("T", "A")
	rs := records(
		rec("ok", map[string]string{"A": "x"}),
		rec("broken", nil, "A"),
	)
	result := Resolve(&types.DataRef{
		TableName: "T",
		FieldName: "A",
		Filters:   []types.FilterClause{{Field: "A", Op: types.OpEq, Value: types.StringValue("nothing")}},
	}, table, rs)
	assert.Equal(t, []string{"broken"}, ids(result.Records))
	assert.Equal(t, Error, result.Value)
}

func TestNothingSurvivesFiltering(t *testing.T) {
	table, rs := tasks()
	result := Resolve(&types.DataRef{
		TableName: "Tasks",
		FieldName: "Name",
		Filters:   []types.FilterClause{{Field: "Status", Op: types.OpEq, Value: types.StringValue("Archived")}},
		Pick:      &types.PickStrategy{Type: types.PickMaxBy, Field: "Points"},
	}, table, rs)
	assert.True(t, result.Configured)
	assert.Equal(t, Empty, result.Value)
	assert.Empty(t, result.Records)
}

func TestSortIsStable(t *testing.T) {
	table := newTable("T", "k", "i")
	rs := records(
		rec("0", map[string]string{"k": "b", "i": "0"}),
		rec("1", map[string]string{"k": "a", "i": "1"}),
		rec("2", map[string]string{"k": "a", "i": "2"}),
	)
	result := Resolve(&types.DataRef{
		TableName: "T",
		FieldName: "i",
		Sort:      []types.SortClause{{Field: "k", Direction: types.Asc}},
	}, table, rs)
	assert.Equal(t, []string{"1", "2", "0"}, ids(result.Records))
	assert.Equal(t, "1", result.Value)

	result = Resolve(&types.DataRef{
		TableName: "T",
		FieldName: "i",
		Sort:      []types.SortClause{{Field: "k", Direction: types.Desc}},
	}, table, rs)
	assert.Equal(t, []string{"0", "1", "2"}, ids(result.Records))
}

func TestSortIsLexicographic(t *testing.T) {
	table, rs := tasks()
	result := Resolve(&types.DataRef{
		TableName: "Tasks",
		FieldName: "Points",
		Sort:      []types.SortClause{{Field: "Points", Direction: types.Asc}},
	}, table, rs)
	assert.Equal(t, []string{"r2", "r3", "r1"}, ids(result.Records))
	assert.Equal(t, "10", result.Value)
}

func TestSortMultiKey(t *testing.T) {
	table, rs := tasks()
	result := Resolve(&types.DataRef{
		TableName: "Tasks",
		FieldName: "Name",
		Sort: []types.SortClause{
			{Field: "Missing", Direction: types.Asc},
			{Field: "Status", Direction: types.Desc},
			{Field: "Name", Direction: types.Desc},
		},
	}, table, rs)
	assert.Equal(t, []string{"r3", "r2", "r1"}, ids(result.Records))
}

func TestSortTreatsExtractionErrorAsTie(t *testing.T) {
	table := newTable("T", "a", "b")
	rs := records(
		rec("x", map[string]string{"b": "2"}, "a"),
		rec("y", map[string]string{"a": "1", "b": "1"}),
	)
	result := Resolve(&types.DataRef{
		TableName: "T",
		FieldName: "b",
		Sort: []types.SortClause{
			{Field: "a", Direction: types.Asc},
			{Field: "b", Direction: types.Asc},
		},
	}, table, rs)
	assert.Equal(t, []string{"y", "x"}, ids(result.Records))
}

func TestPickStrategies(t *testing.T) {
	table, rs := tasks()
	tests := []struct {
		name string
		pick *types.PickStrategy
		want string
	}{
		{"default", nil, "Docs"},
		{"empty type", &types.PickStrategy{}, "Docs"},
		{"first", &types.PickStrategy{Type: types.PickFirst}, "Docs"},
		{"last", &types.PickStrategy{Type: types.PickLast}, "Test"},
		{"maxBy", &types.PickStrategy{Type: types.PickMaxBy, Field: "Points"}, "Ship"},
		{"minBy", &types.PickStrategy{Type: types.PickMinBy, Field: "Points"}, "Test"},
		{"maxBy without field", &types.PickStrategy{Type: types.PickMaxBy}, "Docs"},
		{"minBy on missing field", &types.PickStrategy{Type: types.PickMinBy, Field: "Nope"}, "Docs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Resolve(&types.DataRef{TableName: "Tasks", FieldName: "Name", Pick: tt.pick}, table, rs)
			assert.Equal(t, tt.want, result.Value)
			// Pick never changes the exposed record set
			assert.Equal(t, []string{"r1", "r2", "r3"}, ids(result.Records))
		})
	}
}

func TestPickUnparseableNeverWins(t *testing.T) {
	table := newTable("T", "n")
	rs := records(
		rec("text", map[string]string{"n": "n/a"}),
		rec("low", map[string]string{"n": "-5"}),
		rec("broken", nil, "n"),
		rec("high", map[string]string{"n": "7kg"}),
		rec("blank", map[string]string{"n": ""}),
	)

	maxRef := &types.DataRef{TableName: "T", FieldName: "n", Pick: &types.PickStrategy{Type: types.PickMaxBy, Field: "n"}}
	assert.Equal(t, "7kg", Resolve(maxRef, table, rs).Value)

	minRef := &types.DataRef{TableName: "T", FieldName: "n", Pick: &types.PickStrategy{Type: types.PickMinBy, Field: "n"}}
	assert.Equal(t, "-5", Resolve(minRef, table, rs).Value)

	only := records(rec("only", map[string]string{"n": "n/a"}))
	assert.Equal(t, "n/a", Resolve(maxRef, table, only).Value)
	assert.Equal(t, "n/a", Resolve(minRef, table, only).Value)
}

func TestPickTiesKeepEarliest(t *testing.T) {
	table := newTable("T", "id", "n")
	rs := records(
		rec("a", map[string]string{"id": "a", "n": "1"}),
		rec("b", map[string]string{"id": "b", "n": "5"}),
		rec("c", map[string]string{"id": "c", "n": "5"}),
		rec("d", map[string]string{"id": "d", "n": "1"}),
	)
	maxRef := &types.DataRef{TableName: "T", FieldName: "id", Pick: &types.PickStrategy{Type: types.PickMaxBy, Field: "n"}}
	assert.Equal(t, "b", Resolve(maxRef, table, rs).Value)
	minRef := &types.DataRef{TableName: "T", FieldName: "id", Pick: &types.PickStrategy{Type: types.PickMinBy, Field: "n"}}
	assert.Equal(t, "a", Resolve(minRef, table, rs).Value)
}

func TestProjection(t *testing.T) {
	table := newTable("T", "Name", "Note")
	rs := records(rec("r1", map[string]string{"Name": "x"}, "Note"))

	assert.Equal(t, Empty, Resolve(&types.DataRef{TableName: "T"}, table, rs).Value)
	assert.Equal(t, FieldNotFound, Resolve(&types.DataRef{TableName: "T", FieldName: "Ghost"}, table, rs).Value)
	assert.Equal(t, Error, Resolve(&types.DataRef{TableName: "T", FieldName: "Note"}, table, rs).Value)
	assert.Equal(t, "x", Resolve(&types.DataRef{TableName: "T", FieldName: "Name"}, table, rs).Value)

	blank := records(rec("r2", map[string]string{"Name": ""}))
	assert.Equal(t, Empty, Resolve(&types.DataRef{TableName: "T", FieldName: "Name"}, table, blank).Value)
}

func TestResolveIsPure(t *testing.T) {
	table, rs := tasks()
	ref := &types.DataRef{
		TableName: "Tasks",
		FieldName: "Owner",
		Filters:   []types.FilterClause{{Field: "Points", Op: types.OpGte, Value: types.NumberValue(2)}},
		Sort:      []types.SortClause{{Field: "Name", Direction: types.Desc}},
		Pick:      &types.PickStrategy{Type: types.PickLast},
	}
	before := ids(rs)

	first := ToResolutionResult(Resolve(ref, table, rs), table)
	second := ToResolutionResult(Resolve(ref, table, rs), table)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated resolution differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, before, ids(rs))
	assert.Equal(t, "Owner", ref.FieldName)
	assert.Len(t, ref.Sort, 1)
}

func TestToResolutionResult(t *testing.T) {
	table, rs := tasks()
	wire := ToResolutionResult(Resolve(&types.DataRef{
		TableName: "Tasks",
		FieldName: "Name",
		Filters:   []types.FilterClause{{Field: "Status", Op: types.OpEq, Value: types.StringValue("Done")}},
	}, table, rs), table)

	if assert.NotNil(t, wire.Value) {
		assert.Equal(t, "Docs", *wire.Value)
	}
	assert.True(t, wire.Configured)
	assert.Equal(t, []types.RecordValues{{
		ID:    "r1",
		Cells: map[string]string{"Name": "Docs", "Status": "Done", "Points": "3", "Owner": "Ann"},
	}}, wire.Records)

	unconfigured := ToResolutionResult(Resolve(nil, nil, nil), nil)
	assert.Nil(t, unconfigured.Value)
	assert.False(t, unconfigured.Configured)
	assert.Empty(t, unconfigured.Records)
}

func TestSortDirectionOtherThanAscIsDescending(t *testing.T) {
	table, rs := tasks()
	result := Resolve(&types.DataRef{
		TableName: "Tasks",
		FieldName: "Name",
		Sort:      []types.SortClause{{Field: "Points", Direction: "down"}},
	}, table, rs)
	assert.Equal(t, []string{"r1", "r3", "r2"}, ids(result.Records))
}

func TestSortComparesUTF16CodeUnits(t *testing.T) {
	assert.Equal(t, 0, compareText("abc", "abc"))
	assert.Equal(t, -1, compareText("ab", "abc"))
	// U+1F600 is a surrogate pair starting at 0xD83D, below U+FF21
	assert.Equal(t, -1, compareText("\U0001F600", "Ａ"))
	assert.Equal(t, 1, compareText("Ａ", "\U0001F600"))
}
