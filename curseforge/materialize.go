package curseforge

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

var timeType = reflect.TypeOf(time.Time{})

// dateHook reconciles the date upgrade with the declared field types: a
// time.Time landing in a string field is written back as RFC 3339, and a
// string landing in a time.Time field is parsed (empty means zero).
func dateHook(from, to reflect.Type, data any) (any, error) {
	switch {
	case from == timeType && to.Kind() == reflect.String:
		return data.(time.Time).Format(time.RFC3339Nano), nil
	case from.Kind() == reflect.String && to == timeType:
		s := reflect.ValueOf(data).String()
		if s == "" {
			return time.Time{}, nil
		}
		if t, ok := parseDate(s); ok {
			return t, nil
		}
		return time.Parse(time.RFC3339, s)
	}
	return data, nil
}

// decodeInto copies a normalized JSON tree into out, matching on json tags.
func decodeInto(raw any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: dateHook,
		Result:     out,
		TagName:    "json",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return &DecodeError{Type: fmt.Sprintf("%T", out), Err: err}
	}
	return nil
}

// decodeAs is decodeInto for plain records that carry no client handle.
func decodeAs[T any](raw any) (T, error) {
	var v T
	err := decodeInto(raw, &v)
	return v, err
}

// constructor builds one domain object from a raw record.
type constructor[T any] func(c *Client, raw any) (T, error)

// materializeArray builds one object per raw record, keeping order and count.
// A JSON null is treated as an empty list.
func materializeArray[T any](c *Client, raw any, ctor constructor[T]) ([]T, error) {
	if raw == nil {
		return []T{}, nil
	}
	records, ok := raw.([]any)
	if !ok {
		return nil, &DecodeError{Type: "array", Err: fmt.Errorf("expected array, got %T", raw)}
	}

	out := make([]T, 0, len(records))
	for i, record := range records {
		v, err := ctor(c, record)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// materializePage splits a {data, pagination} envelope. Pagination is passed
// through as sent; its resultCount is not checked against the data length.
func materializePage[T any](c *Client, envelope any, ctor constructor[T]) (*Page[T], error) {
	rawPagination, err := field(envelope, "pagination")
	if err != nil {
		return nil, err
	}
	rawData, err := field(envelope, "data")
	if err != nil {
		return nil, err
	}

	var page Page[T]
	if err := decodeInto(rawPagination, &page.Pagination); err != nil {
		return nil, err
	}
	if page.Data, err = materializeArray(c, rawData, ctor); err != nil {
		return nil, err
	}
	return &page, nil
}

// plain adapts decodeAs to the constructor signature for client-less types.
func plain[T any](_ *Client, raw any) (T, error) {
	return decodeAs[T](raw)
}
