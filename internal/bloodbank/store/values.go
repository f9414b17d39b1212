package store

// plainValue turns raw column bytes into a string so loosely typed columns
// serialize as text rather than base64.
func plainValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
