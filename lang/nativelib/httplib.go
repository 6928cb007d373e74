package nativelib

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ponos-lang/ponos/lang/value"
)

// registerHTTP wires http::получить (GET) and http::отправитьJSON (POST
// with a JSON body), both returning a Dict {статус, заголовки, тело, json}
// (spec.md §6 "HTTP request/get/post-json returning a Dict"). net/http is
// the stdlib choice here: no ecosystem HTTP client appears anywhere in
// the reference pack (see DESIGN.md).
func registerHTTP(def func(string, value.NativeFunc)) {
	client := &http.Client{Timeout: 30 * time.Second}

	def("http::получить", func(args []value.Value) (value.Value, error) {
		url, err := stringArg("http::получить", args, 0)
		if err != nil {
			return nativeErrv(err)
		}
		resp, err := client.Get(url)
		if err != nil {
			return nativeErr("http::получить: %v", err)
		}
		defer resp.Body.Close()
		return responseToDict(resp)
	})

	def("http::отправитьJSON", func(args []value.Value) (value.Value, error) {
		url, err := stringArg("http::отправитьJSON", args, 0)
		if err != nil {
			return nativeErrv(err)
		}
		if len(args) < 2 {
			return nativeErr("http::отправитьJSON: ожидается тело запроса")
		}
		doc, err := toJSONDoc(args[1])
		if err != nil {
			return nativeErrv(err)
		}
		resp, err := client.Post(url, "application/json", bytes.NewBufferString(doc))
		if err != nil {
			return nativeErr("http::отправитьJSON: %v", err)
		}
		defer resp.Body.Close()
		return responseToDict(resp)
	})
}

func responseToDict(resp *http.Response) (value.Value, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nativeErr("http: чтение тела ответа: %v", err)
	}
	headers := value.NewDict(len(resp.Header))
	for k := range resp.Header {
		key, _ := value.ToKey(value.NewString(k))
		headers.Set(key, value.NewString(resp.Header.Get(k)))
	}
	d := value.NewDict(4)
	statusKey, _ := value.ToKey(value.NewString("статус"))
	headersKey, _ := value.ToKey(value.NewString("заголовки"))
	bodyKey, _ := value.ToKey(value.NewString("тело"))
	jsonKey, _ := value.ToKey(value.NewString("json"))
	d.Set(statusKey, value.Number(resp.StatusCode))
	d.Set(headersKey, headers)
	d.Set(bodyKey, value.NewString(string(body)))
	if gjson.ValidBytes(body) {
		d.Set(jsonKey, fromGJSON(gjson.ParseBytes(body)))
	} else {
		d.Set(jsonKey, value.NilValue)
	}
	return d, nil
}
