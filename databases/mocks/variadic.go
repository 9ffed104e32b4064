package mocks

import "reflect"

// variadic expands a trailing options slice into individual call arguments,
// matching mockery's generated behaviour: expectations only see options that
// were actually passed.
func variadic(args ...interface{}) []interface{} {
	out := append([]interface{}{}, args[:len(args)-1]...)
	last := reflect.ValueOf(args[len(args)-1])
	if last.Kind() != reflect.Slice {
		return append(out, args[len(args)-1])
	}
	for i := 0; i < last.Len(); i++ {
		out = append(out, last.Index(i).Interface())
	}
	return out
}
