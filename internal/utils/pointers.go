package utils

// StringOrDefault returns the fallback when the string is empty.
func StringOrDefault(s, defaultVal string) string {
	if s == "" {
		return defaultVal
	}
	return s
}
