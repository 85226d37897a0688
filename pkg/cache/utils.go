package cache

import "fmt"

// GenerateKeyWithParams builds a colon-joined cache key from a prefix and
// any number of parameters, e.g. "series:AAPL:2y".
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}
