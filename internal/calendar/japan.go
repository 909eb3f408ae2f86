package calendar

import "time"

const (
	japanFirstYear = 1980
	japanLastYear  = 2099
)

// one-off holidays proclaimed by special acts
var japanSpecialDays = map[string]string{
	"1989-02-24": "昭和天皇の大喪の礼",
	"1990-11-12": "即位礼正殿の儀",
	"1993-06-09": "皇太子徳仁親王の結婚の儀",
	"2019-05-01": "天皇の即位の日",
	"2019-10-22": "即位礼正殿の儀",
}

// JapanHolidays computes Japanese national holidays from the statutory rules,
// including substitute holidays and citizens' holidays. Years outside
// 1980-2099 have no holidays.
type JapanHolidays struct{}

// NewJapanHolidays returns the built-in Japanese holiday table
func NewJapanHolidays() JapanHolidays {
	return JapanHolidays{}
}

// NameFor implements HolidayLookup
func (JapanHolidays) NameFor(date time.Time) (string, bool) {
	y, m, d := date.Date()
	if y < japanFirstYear || y > japanLastYear {
		return "", false
	}

	if name, ok := statutoryHoliday(y, m, d); ok {
		return name, true
	}
	if substituteHoliday(y, m, d) {
		return "振替休日", true
	}
	if citizensHoliday(y, m, d) {
		return "国民の休日", true
	}
	return "", false
}

// statutoryHoliday covers holidays named in the national holidays act
// plus the special one-off days.
func statutoryHoliday(y int, m time.Month, d int) (string, bool) {
	key := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	if name, ok := japanSpecialDays[key]; ok {
		return name, true
	}

	switch m {
	case time.January:
		if d == 1 {
			return "元日", true
		}
		if y < 2000 && d == 15 {
			return "成人の日", true
		}
		if y >= 2000 && d == nthWeekday(y, m, 2, time.Monday) {
			return "成人の日", true
		}
	case time.February:
		if d == 11 {
			return "建国記念の日", true
		}
		if y >= 2020 && d == 23 {
			return "天皇誕生日", true
		}
	case time.March:
		if d == vernalEquinox(y) {
			return "春分の日", true
		}
	case time.April:
		if d == 29 {
			switch {
			case y >= 2007:
				return "昭和の日", true
			case y >= 1989:
				return "みどりの日", true
			default:
				return "天皇誕生日", true
			}
		}
	case time.May:
		switch d {
		case 3:
			return "憲法記念日", true
		case 4:
			if y >= 2007 {
				return "みどりの日", true
			}
		case 5:
			return "こどもの日", true
		}
	case time.July:
		switch {
		case y == 2020:
			if d == 23 {
				return "海の日", true
			}
			if d == 24 {
				return "スポーツの日", true
			}
		case y == 2021:
			if d == 22 {
				return "海の日", true
			}
			if d == 23 {
				return "スポーツの日", true
			}
		case y >= 2003:
			if d == nthWeekday(y, m, 3, time.Monday) {
				return "海の日", true
			}
		case y >= 1996:
			if d == 20 {
				return "海の日", true
			}
		}
	case time.August:
		switch {
		case y == 2020:
			if d == 10 {
				return "山の日", true
			}
		case y == 2021:
			if d == 8 {
				return "山の日", true
			}
		case y >= 2016:
			if d == 11 {
				return "山の日", true
			}
		}
	case time.September:
		if y >= 2003 && d == nthWeekday(y, m, 3, time.Monday) {
			return "敬老の日", true
		}
		if y < 2003 && d == 15 {
			return "敬老の日", true
		}
		if d == autumnalEquinox(y) {
			return "秋分の日", true
		}
	case time.October:
		switch {
		case y == 2020 || y == 2021:
			// moved to July for the Olympics
		case y >= 2020:
			if d == nthWeekday(y, m, 2, time.Monday) {
				return "スポーツの日", true
			}
		case y >= 2000:
			if d == nthWeekday(y, m, 2, time.Monday) {
				return "体育の日", true
			}
		default:
			if d == 10 {
				return "体育の日", true
			}
		}
	case time.November:
		if d == 3 {
			return "文化の日", true
		}
		if d == 23 {
			return "勤労感謝の日", true
		}
	case time.December:
		if y >= 1989 && y <= 2018 && d == 23 {
			return "天皇誕生日", true
		}
	}
	return "", false
}

// substituteHoliday: a holiday falling on Sunday moves to the next day.
// Since 2007 it moves to the first following day that is not a holiday.
func substituteHoliday(y int, m time.Month, d int) bool {
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if y < 2007 {
		prev := day.AddDate(0, 0, -1)
		return day.Weekday() == time.Monday && isStatutory(prev)
	}

	for prev := day.AddDate(0, 0, -1); isStatutory(prev); prev = prev.AddDate(0, 0, -1) {
		if prev.Weekday() == time.Sunday {
			return true
		}
	}
	return false
}

// citizensHoliday: an ordinary day sandwiched between two holidays.
// Before 2007 Sundays were excluded.
func citizensHoliday(y int, m time.Month, d int) bool {
	if y < 1986 {
		return false
	}
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if y < 2007 && day.Weekday() == time.Sunday {
		return false
	}
	return isStatutory(day.AddDate(0, 0, -1)) && isStatutory(day.AddDate(0, 0, 1))
}

func isStatutory(t time.Time) bool {
	y, m, d := t.Date()
	_, ok := statutoryHoliday(y, m, d)
	return ok
}

// nthWeekday returns the day-of-month of the n-th given weekday
func nthWeekday(y int, m time.Month, n int, wd time.Weekday) int {
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).Weekday()
	offset := (int(wd) - int(first) + 7) % 7
	return 1 + offset + (n-1)*7
}

// equinox approximations published for 1980-2099
func vernalEquinox(y int) int {
	return int(20.8431 + 0.242194*float64(y-1980) - float64((y-1980)/4))
}

func autumnalEquinox(y int) int {
	return int(23.2488 + 0.242194*float64(y-1980) - float64((y-1980)/4))
}
