package nativelib_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/nativelib"
	"github.com/ponos-lang/ponos/lang/value"
)

func TestHTTPGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ponos", "да")
		w.WriteHeader(200)
		w.Write([]byte(`{"привет":"мир"}`))
	}))
	defer srv.Close()

	globals := newGlobals(t, &bytes.Buffer{}, nil)
	resp, err := call(t, globals, "http::получить", value.NewString(srv.URL))
	require.NoError(t, err)

	d, ok := resp.(*value.Dict)
	require.True(t, ok)
	statusKey, _ := value.ToKey(value.NewString("статус"))
	status, _ := d.Get(statusKey)
	assert.Equal(t, value.Number(200), status)

	jsonKey, _ := value.ToKey(value.NewString("json"))
	jsonVal, _ := d.Get(jsonKey)
	dd, ok := jsonVal.(*value.Dict)
	require.True(t, ok)
	k, _ := value.ToKey(value.NewString("привет"))
	v, found := dd.Get(k)
	require.True(t, found)
	assert.Equal(t, "мир", v.String())
}

func TestHTTPPostJSON(t *testing.T) {
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		w.WriteHeader(201)
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	globals := newGlobals(t, &bytes.Buffer{}, nil)
	d := value.NewDict(1)
	k, _ := value.ToKey(value.NewString("х"))
	d.Set(k, value.Number(5))

	resp, err := call(t, globals, "http::отправитьJSON", value.NewString(srv.URL), d)
	require.NoError(t, err)

	rd, ok := resp.(*value.Dict)
	require.True(t, ok)
	statusKey, _ := value.ToKey(value.NewString("статус"))
	status, _ := rd.Get(statusKey)
	assert.Equal(t, value.Number(201), status)
	assert.Contains(t, received, `"х":5`)
}
