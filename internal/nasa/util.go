package nasa

import (
	"fmt"
	"net/url"
	"strconv"
)

// toValues flattens loosely typed parameters, as they arrive from a decoded
// JSON body, into query values. Slices become repeated keys and nil values
// are dropped.
func toValues(params map[string]any) url.Values {
	values := url.Values{}
	for key, value := range params {
		addValue(values, key, value)
	}
	return values
}

func addValue(values url.Values, key string, value any) {
	switch v := value.(type) {
	case nil:
	case []any:
		for _, item := range v {
			addValue(values, key, item)
		}
	case []string:
		for _, item := range v {
			values.Add(key, item)
		}
	default:
		if s, ok := primitiveString(v); ok {
			values.Add(key, s)
		} else {
			values.Add(key, fmt.Sprint(v))
		}
	}
}

func formValues(body any) (url.Values, error) {
	switch b := body.(type) {
	case url.Values:
		return b, nil
	case map[string]string:
		values := url.Values{}
		for k, v := range b {
			values.Set(k, v)
		}
		return values, nil
	case map[string]any:
		return toValues(b), nil
	default:
		return nil, fmt.Errorf("nasa: cannot form encode body of type %T", body)
	}
}

func primitiveString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	default:
		return "", false
	}
}
