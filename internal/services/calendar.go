package services

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/au"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/jp"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/us"
)

// CalendarService answers "is this a business day" per country. Used to
// keep the stale-test digest quiet on weekends and public holidays.
type CalendarService struct {
	calendars map[string]*cal.BusinessCalendar
}

func NewCalendarService() *CalendarService {
	s := &CalendarService{
		calendars: make(map[string]*cal.BusinessCalendar),
	}
	s.add("US", "United States", us.Holidays...)
	s.add("GB", "United Kingdom", gb.Holidays...)
	s.add("DE", "Germany", de.Holidays...)
	s.add("FR", "France", fr.Holidays...)
	s.add("JP", "Japan", jp.Holidays...)
	s.add("AU", "Australia", au.HolidaysNSW...)
	s.add("CA", "Canada", ca.Holidays...)
	s.add("NL", "Netherlands", nl.Holidays...)
	return s
}

func (s *CalendarService) add(code, name string, holidays ...*cal.Holiday) {
	c := cal.NewBusinessCalendar()
	c.Name = name
	c.AddHoliday(holidays...)
	s.calendars[code] = c
}

// IsBusinessDay reports whether t is a working day in the given country.
// "NONE" and unknown codes fall back to a plain weekday check.
func (s *CalendarService) IsBusinessDay(t time.Time, countryCode string) bool {
	c, ok := s.calendars[countryCode]
	if !ok {
		return !cal.IsWeekend(t)
	}
	return c.IsWorkday(t)
}
