package newsletter

import (
	"fmt"
	"time"
)

var hijriMonths = [12]string{
	"محرم", "صفر", "ربيع الأول", "ربيع الآخر", "جمادى الأولى", "جمادى الآخرة",
	"رجب", "شعبان", "رمضان", "شوال", "ذو القعدة", "ذو الحجة",
}

var gregorianMonthsAr = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// julianDayNumber converts a Gregorian calendar date to its Julian day number.
func julianDayNumber(t time.Time) int {
	y, m, d := t.Year(), int(t.Month()), t.Day()
	a := (14 - m) / 12
	y = y + 4800 - a
	m = m + 12*a - 3
	return d + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// hijriDate formats a date in the tabular (arithmetic) Islamic calendar, e.g.
// "18 ربيع الأول 1448". Tabular dates can drift a day from the observed
// calendar, which is fine for a newsletter masthead.
func hijriDate(t time.Time) string {
	jd := julianDayNumber(t)

	l := jd - 1948440 + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30

	return fmt.Sprintf("%d %s %d", day, hijriMonths[month-1], year)
}

// gregorianArabic formats a Gregorian date with Arabic month names, e.g.
// "1 سبتمبر 2026".
func gregorianArabic(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), gregorianMonthsAr[int(t.Month())-1], t.Year())
}
