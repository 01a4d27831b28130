package timer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

// MaxCustom bounds custom countdowns.
const MaxCustom = 120*time.Minute + 59*time.Second

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration reads a custom countdown length. It accepts Go durations
// ("25m", "1h30m"), ISO 8601 durations ("PT25M"), clock form ("MM:SS") and
// a bare number of minutes.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, model.Invalid("duration", "empty duration")
	}

	d, err := parse(s)
	if err != nil {
		return 0, model.Invalid("duration", "%q: %v", s, err)
	}
	if d <= 0 {
		return 0, model.Invalid("duration", "%q is not a positive duration", s)
	}
	if d > MaxCustom {
		return 0, model.Invalid("duration", "%q is longer than %s", s, MaxCustom)
	}
	return d, nil
}

func parse(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Minute, nil
	}

	if m := isoDuration.FindStringSubmatch(strings.ToUpper(s)); m != nil {
		if m[1] == "" && m[2] == "" && m[3] == "" {
			return 0, fmt.Errorf("no duration components")
		}
		var total time.Duration
		for i, unit := range []time.Duration{time.Hour, time.Minute, time.Second} {
			if m[i+1] == "" {
				continue
			}
			n, err := strconv.Atoi(m[i+1])
			if err != nil {
				return 0, err
			}
			total += time.Duration(n) * unit
		}
		return total, nil
	}

	if mm, ss, ok := strings.Cut(s, ":"); ok {
		m, err := strconv.Atoi(mm)
		if err != nil {
			return 0, fmt.Errorf("bad minutes: %w", err)
		}
		sc, err := strconv.Atoi(ss)
		if err != nil {
			return 0, fmt.Errorf("bad seconds: %w", err)
		}
		if m < 0 || sc < 0 || sc > 59 {
			return 0, fmt.Errorf("out of range")
		}
		return time.Duration(m)*time.Minute + time.Duration(sc)*time.Second, nil
	}

	return time.ParseDuration(s)
}
