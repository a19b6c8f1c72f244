package repositories

import (
	"math"
	"regexp"
	"testing"
	"time"

	"gemstone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildGemFilter(t *testing.T) {
	assert.Empty(t, buildGemFilter(models.DefaultGemQuery()))

	q := models.DefaultGemQuery()
	q.Type = "Ruby"
	q.Search = "gold"
	filter := buildGemFilter(q)

	typeRe, ok := filter["type"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "^Ruby$", typeRe.Pattern)
	assert.Equal(t, "i", typeRe.Options)

	nameRe, ok := filter["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "gold", nameRe.Pattern)
	assert.Equal(t, "i", nameRe.Options)

	// the anchored pattern must behave like a case-insensitive full match
	re := regexp.MustCompile("(?i)" + typeRe.Pattern)
	assert.True(t, re.MatchString("ruby"))
	assert.False(t, re.MatchString("Rubellite"))
}

func TestBuildGemFilter_QuotesInput(t *testing.T) {
	q := models.DefaultGemQuery()
	q.Type = "a.b"
	q.Search = "(x+"
	filter := buildGemFilter(q)

	assert.Equal(t, `^a\.b$`, filter["type"].(primitive.Regex).Pattern)
	assert.Equal(t, `\(x\+`, filter["name"].(primitive.Regex).Pattern)
}

func TestBuildGemFindOptions(t *testing.T) {
	q := models.GemQuery{Page: 3, Limit: 10, SortBy: "weight", SortOrder: "desc"}
	opts := buildGemFindOptions(q)

	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "weight", Value: -1}, {Key: "_id", Value: 1}}, opts.Sort)

	opts = buildGemFindOptions(models.DefaultGemQuery())
	assert.Equal(t, int64(0), *opts.Skip)
	assert.Equal(t, bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
}

func TestBuildGemFindOptions_HugePageSkipIsNonNegative(t *testing.T) {
	q := models.GemQuery{Page: 92233720368547760, Limit: 100, SortBy: "price", SortOrder: "asc"}
	opts := buildGemFindOptions(q)

	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(math.MaxInt), *opts.Skip)
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "sg-1", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := parseObjectID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestGemDocument_RoundTrip(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gem := models.SampleGems()[1]
	gem.CreatedAt, gem.UpdatedAt = now, now
	gem.Gallery = nil

	doc := newGemDocument(&gem)
	assert.NotNil(t, doc.Gallery)
	assert.True(t, doc.ID.IsZero(), "id is assigned by the database")

	doc.ID = primitive.NewObjectID()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded gemDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	out := decoded.toModel()
	assert.Equal(t, doc.ID.Hex(), out.ID)
	assert.Equal(t, gem.Name, out.Name)
	assert.Equal(t, []string{}, out.Gallery)
	assert.True(t, out.CreatedAt.Equal(now))
}

func TestGemDocument_IntegerNumbersDecode(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":     primitive.NewObjectID(),
		"name":    "Imperial Ruby",
		"type":    "Ruby",
		"weight":  2.5,
		"price":   int32(12500),
		"gallery": nil,
	})
	require.NoError(t, err)

	var doc gemDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	gem := doc.toModel()
	assert.Equal(t, 12500.0, gem.Price)
	assert.NotNil(t, gem.Gallery)
}
