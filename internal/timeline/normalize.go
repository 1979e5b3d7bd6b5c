package timeline

func ToMillis(sec int64) int64 {
	return sec * 1000
}

// ResolveMillis substitutes fallbackMS when the value is absent.
func ResolveMillis(sec *int64, fallbackMS int64) int64 {
	if sec == nil {
		return fallbackMS
	}
	return ToMillis(*sec)
}
