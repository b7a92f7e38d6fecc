package aggregate

import (
	"errors"
	"github.com/datastax/page-data-blocks/host"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		values []float64
		kind   StatKind
		want   string
	}{
		{[]float64{1, 2, 3}, Sum, "6.00"},
		{[]float64{1, 2, 3, 4}, Median, "2.50"},
		{[]float64{1, 2, 3}, Median, "2.00"},
		{[]float64{3, 1, 2}, Median, "2.00"},
		{[]float64{1, 2}, Average, "1.50"},
		{[]float64{1, 2, 2}, Average, "1.67"},
		{[]float64{4, -2.5, 7}, Min, "-2.50"},
		{[]float64{4, -2.5, 7}, Max, "7.00"},
		{[]float64{4, -2.5, 7}, Range, "9.50"},
		{[]float64{5}, Range, "0.00"},
		{[]float64{0.1, 0.2}, Sum, "0.30"},
		{[]float64{1, 2, 3}, "mode", Empty},
		{[]float64{}, Sum, Empty},
		{nil, Median, Empty},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Aggregate(tt.values, tt.kind), "%s of %v", tt.kind, tt.values)
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{9, 1, 5, 3}
	assert.Equal(t, "4.00", Aggregate(values, Median))
	assert.Equal(t, []float64{9, 1, 5, 3}, values)
}

func TestAggregateUnknownKind(t *testing.T) {
	assert.Equal(t, Empty, Aggregate([]float64{1, 2}, StatKind("mode")))
	assert.Equal(t, Empty, Aggregate([]float64{1, 2}, StatKind("")))
}

type cell struct {
	value string
	err   error
}

type fakeRecord map[string]cell

func (r fakeRecord) ID() string { return "" }

func (r fakeRecord) CellValueAsString(field host.Field) (string, error) {
	c := r[field.Name]
	return c.value, c.err
}

func TestNumbers(t *testing.T) {
	field := host.Field{Name: "Amount", Type: host.Number}
	records := []host.Record{
		fakeRecord{"Amount": {value: "10"}},
		fakeRecord{"Amount": {value: "n/a"}},
		fakeRecord{"Amount": {value: ""}},
		fakeRecord{"Amount": {value: "2.5 kg"}},
		fakeRecord{"Amount": {err: errors.New("lookup failed")}},
		fakeRecord{"Amount": {value: "-1e2"}},
	}

	values := Numbers(field, records)
	assert.Equal(t, []float64{10, 2.5, -100}, values)
	assert.Equal(t, "-87.50", Aggregate(values, Sum))

	assert.Empty(t, Numbers(field, nil))
}
