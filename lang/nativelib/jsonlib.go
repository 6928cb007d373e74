package nativelib

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/ponos-lang/ponos/lang/value"
)

// registerJSON wires json::разобрать (parse) and json::записать
// (stringify), restricted to the JSON-representable subset of Value
// (spec.md §6 "JSON parse/stringify ... restricted to the
// JSON-representable subset").
func registerJSON(def func(string, value.NativeFunc)) {
	def("json::разобрать", func(args []value.Value) (value.Value, error) {
		s, err := stringArg("json::разобрать", args, 0)
		if err != nil {
			return nativeErrv(err)
		}
		if !gjson.Valid(s) {
			return nativeErr("json::разобрать: недопустимый JSON")
		}
		return fromGJSON(gjson.Parse(s)), nil
	})

	def("json::записать", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nativeErr("json::записать: ожидается один аргумент")
		}
		doc, err := toJSONDoc(args[0])
		if err != nil {
			return nativeErrv(err)
		}
		return value.NewString(doc), nil
	})
}

// fromGJSON walks a gjson.Result tree into the equivalent Value,
// recursing into objects and arrays via ForEach.
func fromGJSON(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.NilValue
	case gjson.True:
		return value.Boolean(true)
	case gjson.False:
		return value.Boolean(false)
	case gjson.Number:
		return value.Number(r.Num)
	case gjson.String:
		return value.NewString(r.Str)
	default: // gjson.JSON: array or object
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromGJSON(v))
				return true
			})
			return value.NewArray(elems)
		}
		d := value.NewDict(8)
		r.ForEach(func(k, v gjson.Result) bool {
			key, _ := value.ToKey(value.NewString(k.String()))
			d.Set(key, fromGJSON(v))
			return true
		})
		return d
	}
}

// toJSONDoc encodes v as a JSON text, building composite documents
// incrementally with sjson.SetRaw (objects and arrays) and round-tripping
// scalars through a throwaway sjson.Set/gjson.Get pair so their escaping
// always matches what the object/array builder already emits.
func toJSONDoc(v value.Value) (string, error) {
	switch v := v.(type) {
	case value.Nil:
		return "null", nil
	case value.Boolean:
		return scalarRaw(bool(v))
	case value.Number:
		return scalarRaw(float64(v))
	case value.String:
		return scalarRaw(v.String())
	case *value.Array:
		doc := "[]"
		for _, el := range v.Elems {
			raw, err := toJSONDoc(el)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, "-1", raw)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	case *value.Dict:
		doc := "{}"
		var outerErr error
		v.Each(func(k value.Key, val value.Value) bool {
			raw, err := toJSONDoc(val)
			if err != nil {
				outerErr = err
				return false
			}
			doc, err = sjson.SetRaw(doc, escapeSjsonPath(k.String()), raw)
			if err != nil {
				outerErr = err
				return false
			}
			return true
		})
		if outerErr != nil {
			return "", outerErr
		}
		return doc, nil
	default:
		return "", fmt.Errorf("json::записать: значение типа %s не представимо в JSON", v.Type())
	}
}

// escapeSjsonPath escapes the characters sjson's path syntax treats
// specially (dot-separated nesting, * and ? wildcards) so an arbitrary
// Dict key is always treated as one literal path segment.
func escapeSjsonPath(key string) string {
	var b []byte
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\':
			b = append(b, '\\')
		}
		b = append(b, string(r)...)
	}
	return string(b)
}

func scalarRaw(v any) (string, error) {
	doc, err := sjson.Set("{}", "x", v)
	if err != nil {
		return "", err
	}
	return gjson.Get(doc, "x").Raw, nil
}
