// Package extract implements the deterministic pattern-extraction tier.
//
// Extraction runs over the raw text (not the normalized key) so titles
// keep their casing. The extractor order is fixed policy: time-of-day,
// then dates, then tags, then priority markers, then title cleanup. Each
// matched span is removed from the working text so a later extractor can
// never re-consume it, and whatever survives becomes the title.
package extract

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.jot.dev/jot/internal/core/domain"
)

var (
	ampmTimeRe  = regexp.MustCompile(`(?i)(?:\bat\s+)?\b(\d{1,2})(?::([0-5]\d))?\s*(am|pm)\b`)
	clockTimeRe = regexp.MustCompile(`(?i)(?:\bat\s+)?\b([01]?\d|2[0-3]):([0-5]\d)\b`)

	dayAfterTomorrowRe = regexp.MustCompile(`(?i)\bday\s+after\s+tomorrow\b`)
	tomorrowRe         = regexp.MustCompile(`(?i)\btomorrow\b`)
	todayRe            = regexp.MustCompile(`(?i)\btoday\b`)
	nextWeekdayRe      = regexp.MustCompile(`(?i)\bnext\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	isoDateRe          = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	businessRe         = regexp.MustCompile(`(?i)\b(eod|cob)\b`)
	inDurationRe       = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(minutes?|mins?|hours?|hrs?|days?)\b`)

	tagRe           = regexp.MustCompile(`#([A-Za-z0-9_-]+)`)
	bangRe          = regexp.MustCompile(`(!+)`)
	namedPriorityRe = regexp.MustCompile(`(?i)\bpriority:?\s*(low|medium|high|urgent)\b`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

const (
	// defaultHour is applied to dates extracted without a time-of-day.
	defaultHour = 9
	// businessCloseHour is the instant eod/cob resolve to.
	businessCloseHour = 17
	// quantum rounds "in N minutes" deadlines up to the next slot.
	quantum = 15 * time.Minute
)

// Engine is the ordered deterministic extractor.
type Engine struct {
	minTitleLen int
	now         func() time.Time
}

// NewEngine creates an engine. minTitleLen is the sufficiency cutoff for
// inputs where no field was extracted; non-positive falls back to the default.
func NewEngine(minTitleLen int) *Engine {
	if minTitleLen <= 0 {
		minTitleLen = domain.DefaultConfig().Cache.MinTitleLen
	}
	return &Engine{minTitleLen: minTitleLen, now: time.Now}
}

// WithClock overrides the time source. Used in tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Extract runs the fixed extractor order over raw and returns a pattern
// result with full confidence. Callers decide sufficiency via Sufficient
// and downgrade the confidence on the degraded path.
func (e *Engine) Extract(raw string) domain.ParsedResult {
	now := e.now()
	rest := raw

	// 1. Time-of-day.
	hour, minute, hasClock := 0, 0, false
	if m := ampmTimeRe.FindStringSubmatchIndex(rest); m != nil {
		h, _ := strconv.Atoi(substr(rest, m, 1))
		if h >= 1 && h <= 12 {
			if s := substr(rest, m, 2); s != "" {
				minute, _ = strconv.Atoi(s)
			}
			hour = resolve12h(h, strings.EqualFold(substr(rest, m, 3), "pm"))
			hasClock = true
			rest = cut(rest, m[0], m[1])
		}
	}
	if !hasClock {
		if m := clockTimeRe.FindStringSubmatchIndex(rest); m != nil {
			hour, _ = strconv.Atoi(substr(rest, m, 1))
			minute, _ = strconv.Atoi(substr(rest, m, 2))
			hasClock = true
			rest = cut(rest, m[0], m[1])
		}
	}

	// 2. Date.
	var due *time.Time
	rest, due = e.extractDate(rest, now, hour, minute, hasClock)
	if due == nil && hasClock {
		// A bare time-of-day means today at that time.
		t := atClock(now, hour, minute)
		due = &t
	}

	// 3. Tags.
	var tags []string
	for _, m := range tagRe.FindAllStringSubmatch(rest, -1) {
		tags = append(tags, strings.ToLower(m[1]))
	}
	rest = tagRe.ReplaceAllString(rest, " ")
	slices.Sort(tags)
	tags = slices.Compact(tags)

	// 4. Priority markers.
	priority, explicit := domain.PriorityMedium, false
	if m := namedPriorityRe.FindStringSubmatch(rest); m != nil {
		priority, _ = domain.ParsePriority(strings.ToLower(m[1]))
		explicit = true
		rest = namedPriorityRe.ReplaceAllString(rest, " ")
	} else if m := bangRe.FindStringSubmatch(rest); m != nil {
		switch len(m[1]) {
		case 1:
			priority = domain.PriorityMedium
		case 2:
			priority = domain.PriorityHigh
		default:
			priority = domain.PriorityUrgent
		}
		explicit = true
		rest = bangRe.ReplaceAllString(rest, " ")
	}

	// 5. Title cleanup: everything the extractors consumed is gone,
	// residual whitespace collapses.
	title := strings.Join(strings.Fields(rest), " ")

	return domain.ParsedResult{
		Title:            title,
		Due:              due,
		Priority:         priority,
		PriorityExplicit: explicit,
		Tags:             tags,
		Tier:             domain.TierPattern,
		Confidence:       domain.ConfidenceFull,
	}
}

// Sufficient reports whether a pattern result needs no fallback: at least
// one of date/time, tag or priority marker was found, or the title is
// non-trivial.
func (e *Engine) Sufficient(res domain.ParsedResult) bool {
	if res.FieldCount() > 0 {
		return true
	}
	return len([]rune(res.Title)) >= e.minTitleLen
}

// extractDate tries the date forms in fixed order and resolves the first
// match against now, folding in an already-extracted time-of-day.
func (e *Engine) extractDate(rest string, now time.Time, hour, minute int, hasClock bool) (string, *time.Time) {
	clock := func(day time.Time) *time.Time {
		h, m := defaultHour, 0
		if hasClock {
			h, m = hour, minute
		}
		t := atClock(day, h, m)
		return &t
	}

	if m := dayAfterTomorrowRe.FindStringIndex(rest); m != nil {
		return cut(rest, m[0], m[1]), clock(now.AddDate(0, 0, 2))
	}
	if m := tomorrowRe.FindStringIndex(rest); m != nil {
		return cut(rest, m[0], m[1]), clock(now.AddDate(0, 0, 1))
	}
	if m := todayRe.FindStringIndex(rest); m != nil {
		return cut(rest, m[0], m[1]), clock(now)
	}
	if m := nextWeekdayRe.FindStringSubmatchIndex(rest); m != nil {
		target := weekdays[strings.ToLower(substr(rest, m, 1))]
		days := (int(target) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return cut(rest, m[0], m[1]), clock(now.AddDate(0, 0, days))
	}
	if m := isoDateRe.FindStringSubmatchIndex(rest); m != nil {
		year, _ := strconv.Atoi(substr(rest, m, 1))
		month, _ := strconv.Atoi(substr(rest, m, 2))
		day, _ := strconv.Atoi(substr(rest, m, 3))
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
			return cut(rest, m[0], m[1]), clock(date)
		}
	}
	if m := businessRe.FindStringIndex(rest); m != nil {
		t := atClock(now, businessCloseHour, 0)
		if hasClock {
			t = atClock(now, hour, minute)
		}
		return cut(rest, m[0], m[1]), &t
	}
	if m := inDurationRe.FindStringSubmatchIndex(rest); m != nil {
		amount, _ := strconv.Atoi(substr(rest, m, 1))
		unit := strings.ToLower(substr(rest, m, 2))
		var dur time.Duration
		switch {
		case strings.HasPrefix(unit, "min"):
			dur = time.Duration(amount) * time.Minute
		case strings.HasPrefix(unit, "h"):
			dur = time.Duration(amount) * time.Hour
		default:
			dur = time.Duration(amount) * 24 * time.Hour
		}
		t := quantizeUp(now.Add(dur), quantum)
		return cut(rest, m[0], m[1]), &t
	}
	return rest, nil
}

// atClock returns day's date at the given wall-clock time.
func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// resolve12h converts a 12-hour clock reading to 24-hour.
func resolve12h(hour int, pm bool) int {
	switch {
	case hour == 12 && pm:
		return 12
	case hour == 12:
		return 0
	case pm:
		return hour + 12
	default:
		return hour
	}
}

// quantizeUp rounds t up to the next multiple of q.
func quantizeUp(t time.Time, q time.Duration) time.Time {
	t = t.Truncate(time.Second)
	rounded := t.Truncate(q)
	if rounded.Equal(t) {
		return t
	}
	return rounded.Add(q)
}

// substr extracts submatch i from the index pairs returned by
// FindStringSubmatchIndex, empty if the group did not participate.
func substr(s string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}

// cut removes s[start:end], leaving a single space so word boundaries
// survive until the final whitespace collapse.
func cut(s string, start, end int) string {
	return s[:start] + " " + s[end:]
}
