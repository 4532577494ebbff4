package tui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sadopc/greenconnect/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewLog
	viewCommunity
)

var viewNames = []string{"Dashboard", "Log Activity", "Community"}

const (
	routeDashboard = "/"
	routeLog       = "/log"
	routeCommunity = "/community"
)

var viewRoutes = []string{routeDashboard, routeLog, routeCommunity}

// parseRoute maps a route key to a view. The community route accepts a
// topic query parameter. Anything unrecognized opens the dashboard.
func parseRoute(raw string) (viewState, string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return viewDashboard, ""
	}
	path := strings.TrimRight(u.Path, "/")
	switch path {
	case routeLog:
		return viewLog, ""
	case routeCommunity:
		return viewCommunity, u.Query().Get("topic")
	}
	return viewDashboard, ""
}

// routeFor is the inverse of parseRoute.
func routeFor(v viewState, topic string) string {
	if v == viewCommunity && topic != "" {
		return routeCommunity + "?" + url.Values{"topic": {topic}}.Encode()
	}
	if int(v) >= 0 && int(v) < len(viewRoutes) {
		return viewRoutes[v]
	}
	return routeDashboard
}

// --- Messages ---

type navigateMsg struct {
	route string
}

type entryAddedMsg struct {
	id string
}

type entryDeletedMsg struct {
	id string
}

type adviceMsg struct {
	text string
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatImpact(score int) string {
	return fmt.Sprintf("%d/10", score)
}

// formatAgo renders how long ago t was, relative to now.
func formatAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return t.Local().Format("Jan 02")
}

// impactBar renders a 10-cell meter for an impact score.
func impactBar(score int) string {
	filled := max(0, min(score, store.MaxImpact))
	return strings.Repeat("█", filled) + strings.Repeat("░", store.MaxImpact-filled)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
