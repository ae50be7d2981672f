package views

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	nbsp      = "\u00a0"
	rubSymbol = "₽"
)

var weekdays = [...]string{
	time.Sunday:    "воскресенье",
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
}

// genitive, as used after a day number
var months = [...]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

// FormatRUB formats an amount of rubles the ru-RU way: "1 234,57 ₽".
// Amounts are rounded to kopecks half away from zero.
func FormatRUB(v float64) string {
	sign := ""
	if math.Signbit(v) {
		sign = "-"
	}

	var number string
	switch {
	case math.IsNaN(v):
		sign, number = "", "не число"
	case math.IsInf(v, 0):
		number = "∞"
	default:
		fixed := decimal.NewFromFloat(math.Abs(v)).StringFixed(2)
		whole, frac, _ := strings.Cut(fixed, ".")
		number = groupThousands(whole) + "," + frac
	}

	return sign + number + nbsp + rubSymbol
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(nbsp)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDateTime renders t in loc as a full ru-RU date with a long time,
// e.g. "четверг, 15 октября 2026 г. в 14:03:05 GMT+3".
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}

	return fmt.Sprintf("%s, %d %s %d г. в %02d:%02d:%02d %s",
		weekdays[t.Weekday()],
		t.Day(),
		months[t.Month()],
		t.Year(),
		t.Hour(), t.Minute(), t.Second(),
		gmtOffset(t),
	)
}

// utcZones are labelled "UTC"; other zones at offset zero, such as
// Europe/London in winter, are labelled "GMT".
var utcZones = map[string]bool{
	"UTC":           true,
	"Etc/UTC":       true,
	"Etc/GMT":       true,
	"Etc/UCT":       true,
	"Etc/Universal": true,
	"Etc/Zulu":      true,
}

func gmtOffset(t time.Time) string {
	name, offset := t.Zone()
	if offset == 0 {
		if name == "UTC" || utcZones[t.Location().String()] {
			return "UTC"
		}
		return "GMT"
	}

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	hours, minutes := offset/3600, offset%3600/60
	if minutes == 0 {
		return fmt.Sprintf("GMT%s%d", sign, hours)
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, hours, minutes)
}
