package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2008, time.July, 18)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2008-07-18"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2010-07-16"`), &parsed))
	assert.Equal(t, NewDate(2010, time.July, 16), parsed)

	var ptr *Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &ptr))
	assert.Nil(t, ptr)

	assert.Error(t, json.Unmarshal([]byte(`"16/07/2010"`), &parsed))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2014, time.November, 7, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2014-11-07", d.String())

	require.NoError(t, d.Scan("2017-12-01 00:00:00+00:00"))
	assert.Equal(t, "2017-12-01", d.String())

	require.NoError(t, d.Scan([]byte("1994-09-23")))
	assert.Equal(t, "1994-09-23", d.String())

	assert.Error(t, d.Scan("1994"))
	assert.Error(t, d.Scan(42))
}

func TestCastList(t *testing.T) {
	v, err := CastList{"Christian Bale", "Heath Ledger"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"Christian Bale","Heath Ledger"}`, v)

	var cast CastList
	require.NoError(t, cast.Scan([]byte(`{"Leonardo DiCaprio","Elliot Page"}`)))
	assert.Equal(t, CastList{"Leonardo DiCaprio", "Elliot Page"}, cast)

	v, err = CastList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestParseContentKind(t *testing.T) {
	kind, ok := ParseContentKind("tv_show")
	assert.True(t, ok)
	assert.Equal(t, KindTVShow, kind)

	_, ok = ParseContentKind("book")
	assert.False(t, ok)
}

func TestContentRefColumns(t *testing.T) {
	var w UserWatchlist
	w.SetContent(TVShowRef(9))
	assert.Nil(t, w.MovieID)
	require.NotNil(t, w.TVShowID)
	assert.Equal(t, TVShowRef(9), w.Content())
	assert.Equal(t, "tv_show:9", w.Content().String())
}
