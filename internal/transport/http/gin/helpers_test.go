package httpgin

import "fmt"

func path(format string, id uint64) string {
	return fmt.Sprintf(format, id)
}

func u64(v uint64) *uint64 {
	return &v
}
