package timeseries

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/matryer/is"
)

func TestFetchCurrentValueReturnsLastNonNullBucket(t *testing.T) {
	is, ctx := testSetup(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(responseWithTrailingNulls))
	}))
	defer srv.Close()

	value, ok := New(0).FetchCurrentValue(ctx, datasource(srv.URL), query())

	is.True(ok)
	is.Equal(23.5, value)
}

func TestFetchCurrentValueSendsBasicAuthAndQuery(t *testing.T) {
	is, ctx := testSetup(t)

	var user, pass, db, q string
	var hasAuth bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, hasAuth = r.BasicAuth()
		db = r.URL.Query().Get("db")
		q = r.URL.Query().Get("q")
		w.Write([]byte(responseWithTrailingNulls))
	}))
	defer srv.Close()

	_, ok := New(0).FetchCurrentValue(ctx, datasource(srv.URL), query())

	is.True(ok)
	is.True(hasAuth)
	is.Equal("monitor", user)
	is.Equal("secret", pass)
	is.Equal("iot", db)
	is.True(strings.Contains(q, `SELECT mean("value") AS "current_value" FROM "temperature"`))
	is.True(strings.Contains(q, `"device" = 'device-01'`))
	is.True(strings.Contains(q, "GROUP BY time(2m) fill(null)"))
	is.True(strings.Contains(q, "now() - 1h"))
}

func TestFetchCurrentValueEmptySeriesMeansNoData(t *testing.T) {
	is, ctx := testSetup(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{}]}`))
	}))
	defer srv.Close()

	_, ok := New(0).FetchCurrentValue(ctx, datasource(srv.URL), query())
	is.True(!ok)
}

func TestFetchCurrentValueAllNullWindowMeansNoData(t *testing.T) {
	is, ctx := testSetup(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"series":[{"columns":["time","current_value"],"values":[["2024-01-01T00:00:00Z",null],["2024-01-01T00:02:00Z",null]]}]}]}`))
	}))
	defer srv.Close()

	_, ok := New(0).FetchCurrentValue(ctx, datasource(srv.URL), query())
	is.True(!ok)
}

func TestFetchCurrentValueServerErrorMeansNoData(t *testing.T) {
	is, ctx := testSetup(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, ok := New(0).FetchCurrentValue(ctx, datasource(srv.URL), query())
	is.True(!ok)
}

func TestFetchCurrentValueMalformedBodyMeansNoData(t *testing.T) {
	is, ctx := testSetup(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	_, ok := New(0).FetchCurrentValue(ctx, datasource(srv.URL), query())
	is.True(!ok)
}

func TestFetchCurrentValueUnreachableStoreMeansNoData(t *testing.T) {
	is, ctx := testSetup(t)

	ds := datasource("http://127.0.0.1:1")

	_, ok := New(time.Second).FetchCurrentValue(ctx, ds, query())
	is.True(!ok)
}

func TestFormatDuration(t *testing.T) {
	is := is.New(t)

	is.Equal("1h", formatDuration(time.Hour))
	is.Equal("90m", formatDuration(90*time.Minute))
	is.Equal("2m", formatDuration(2*time.Minute))
	is.Equal("30s", formatDuration(30*time.Second))
}

func testSetup(t *testing.T) (*is.I, context.Context) {
	return is.New(t), context.Background()
}

func datasource(url string) types.Datasource {
	return types.Datasource{
		ID:       "influx-default",
		Tenant:   "default",
		URL:      url,
		Database: "iot",
		Username: "monitor",
		Password: "secret",
	}
}

func query() SeriesQuery {
	return SeriesQuery{
		Measurement:  "temperature",
		Field:        "value",
		DeviceColumn: "device",
		DeviceID:     "device-01",
		Window:       time.Hour,
		Bucket:       2 * time.Minute,
	}
}

const responseWithTrailingNulls string = `{
	"results": [
		{
			"series": [
				{
					"name": "temperature",
					"columns": ["time", "current_value"],
					"values": [
						["2024-01-01T00:00:00Z", 22.1],
						["2024-01-01T00:02:00Z", 23.5],
						["2024-01-01T00:04:00Z", null],
						["2024-01-01T00:06:00Z", null]
					]
				}
			]
		}
	]
}`
