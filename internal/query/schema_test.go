package query

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

const (
	statusActive   status = "Active"
	statusInactive status = "Inactive"
)

type person struct {
	ID      int64
	Name    string
	Age     int
	Balance decimal.Decimal
	Score   float64
	VIP     bool
	Status  status
	Joined  time.Time
	Note    string
}

var personSchema = NewSchema(
	Int("id", "id", func(p person) int64 { return p.ID }),
	String("name", "name", func(p person) string { return p.Name }),
	Int("age", "age", func(p person) int { return p.Age }),
	Decimal("balance", "balance", func(p person) decimal.Decimal { return p.Balance }),
	Float("score", "score", func(p person) float64 { return p.Score }),
	Bool("vip", "is_vip", func(p person) bool { return p.VIP }),
	Enum("status", "status", func(p person) status { return p.Status }, statusActive, statusInactive),
	Time("joined", "joined_at", func(p person) time.Time { return p.Joined }),
	String("note", "", func(p person) string { return p.Note }),
).WithDefaultOrder("id ASC")

func people() []person {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return []person{
		{ID: 1, Name: "Alice", Age: 25, Balance: decimal.RequireFromString("10.50"), Score: 1.5, VIP: true, Status: statusActive, Joined: day(1), Note: "a"},
		{ID: 2, Name: "Bob", Age: 30, Balance: decimal.RequireFromString("99.99"), Score: 2.5, Status: statusInactive, Joined: day(2), Note: "b"},
		{ID: 3, Name: "Charlie", Age: 35, Balance: decimal.RequireFromString("0"), Score: 3.5, VIP: true, Status: statusActive, Joined: day(3), Note: "c"},
		{ID: 4, Name: "Alice", Age: 40, Balance: decimal.RequireFromString("250"), Score: 0.5, Status: statusActive, Joined: day(4), Note: "d"},
	}
}

func ids(ps []person) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyEqualityAndRangeFilter(t *testing.T) {
	got := personSchema.Apply(people(), "", map[string]string{"Name": "Alice", "_minAge": "30"})
	assert.Equal(t, []int64{4}, ids(got))
}

func TestApplyOrderDesc(t *testing.T) {
	got := personSchema.Apply(people(), "Age desc", nil)
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(got))
}

func TestApplyFiltersBeforeSorting(t *testing.T) {
	got := personSchema.Apply(people(), "Age asc", map[string]string{"Name": "Alice"})
	assert.Equal(t, []int64{1, 4}, ids(got))
}

func TestApplyPassThrough(t *testing.T) {
	in := people()
	got := personSchema.Apply(in, "", nil)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := people()
	_ = personSchema.Apply(in, "Age desc", map[string]string{"Name": "Alice"})
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(in))
}

func TestApplyMultiKeyStableSort(t *testing.T) {
	got := personSchema.Apply(people(), "name asc, age desc", nil)
	assert.Equal(t, []int64{4, 1, 2, 3}, ids(got))

	// equal keys keep their relative input order
	got = personSchema.Apply(people(), "vip desc", nil)
	assert.Equal(t, []int64{1, 3, 2, 4}, ids(got))
}

func TestApplyUnknownFieldsAreIgnored(t *testing.T) {
	got := personSchema.Apply(people(), "shoeSize desc, age desc", map[string]string{"shoeSize": "42"})
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(got))
}

func TestApplyFieldNamesIgnoreCase(t *testing.T) {
	got := personSchema.Apply(people(), "AGE DESC", map[string]string{"NAME": "Alice"})
	assert.Equal(t, []int64{4, 1}, ids(got))
}

func TestApplyRangePrefixesIgnoreCase(t *testing.T) {
	got := personSchema.Apply(people(), "", map[string]string{"_MinAge": "30", "_MAXAGE": "35"})
	assert.Equal(t, []int64{2, 3}, ids(got))
}

func TestApplyStringValuesAreCaseSensitive(t *testing.T) {
	got := personSchema.Apply(people(), "", map[string]string{"name": "alice"})
	assert.Empty(t, got)
}

func TestApplyUnparseableValueMatchesNothing(t *testing.T) {
	assert.Empty(t, personSchema.Apply(people(), "", map[string]string{"age": "thirty"}))
	assert.Empty(t, personSchema.Apply(people(), "", map[string]string{"_maxBalance": "lots"}))
	assert.Empty(t, personSchema.Apply(people(), "", map[string]string{"vip": "maybe"}))
	assert.Empty(t, personSchema.Apply(people(), "", map[string]string{"status": "Deleted"}))
}

func TestApplyWildcards(t *testing.T) {
	assert.Equal(t, []int64{3}, ids(personSchema.Apply(people(), "", map[string]string{"name": "Ch*"})))
	assert.Equal(t, []int64{1, 3, 4}, ids(personSchema.Apply(people(), "", map[string]string{"name": "*e"})))
	assert.Equal(t, []int64{1, 3, 4}, ids(personSchema.Apply(people(), "", map[string]string{"name": "*li*"})))
}

func TestApplyTypedFilters(t *testing.T) {
	assert.Equal(t, []int64{2, 4}, ids(personSchema.Apply(people(), "", map[string]string{"_minBalance": "99.99"})))
	assert.Equal(t, []int64{1, 3}, ids(personSchema.Apply(people(), "", map[string]string{"vip": "true"})))
	assert.Equal(t, []int64{2}, ids(personSchema.Apply(people(), "", map[string]string{"status": "inactive"})))
	assert.Equal(t, []int64{2, 3}, ids(personSchema.Apply(people(), "", map[string]string{"_minJoined": "2024-01-02", "_maxJoined": "2024-01-03"})))
	assert.Equal(t, []int64{1, 2}, ids(personSchema.Apply(people(), "", map[string]string{"_maxScore": "2.5", "_minScore": "1"})))
}

func TestApplyReservedKeysAreNotFilters(t *testing.T) {
	got := personSchema.Apply(people(), "", map[string]string{"_page": "2", "_size": "1", "_order": "age desc"})
	assert.Len(t, got, 4)
}

func TestApplyEmptyInput(t *testing.T) {
	got := personSchema.Apply(nil, "age", map[string]string{"name": "Alice"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}
