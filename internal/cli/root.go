package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/termhq/termplan/internal/backup"
	"github.com/termhq/termplan/internal/engine"
	"github.com/termhq/termplan/internal/logger"
	"github.com/termhq/termplan/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Engine *engine.Engine
}

// Group returns the class group commands operate on.
func (c *Context) Group() string {
	return c.Engine.Group()
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseWeekday parses a weekday name or number (0=Sunday, 6=Saturday)
func ParseWeekday(s string) (time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	key := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[key]; ok {
		return wd, nil
	}

	num, err := strconv.Atoi(key)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %s", s)
}

// SplitList splits a comma-separated argument, trimming whitespace and
// dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
