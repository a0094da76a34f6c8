package ui

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renato0307/maint/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func decimalOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(2)
}

func timeOrDash(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// statusLabel turns "in_progress" into "in progress"
func statusLabel(status domain.TaskStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}

func accommodationCode(task domain.Task) string {
	if task.Accommodation == nil {
		return "-"
	}
	return task.Accommodation.Code
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
