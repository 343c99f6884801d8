package domain

import (
	"errors"
	"fmt"
	"strings"

	"hyprfocus/internal/platform/markers"
)

// RegionID names one of the two managed sections of the hosts file.
type RegionID string

const (
	RegionGoal RegionID = "goal"
	RegionAds  RegionID = "ads"
)

// Marker text is shared with every other tool that edits these sections and
// must match byte for byte.
const (
	GoalStartMarker = "# --- HYPRFOCUS BLOCK START ---"
	GoalEndMarker   = "# --- HYPRFOCUS BLOCK END ---"
	AdsStartMarker  = "# --- HYPRFOCUS ADS START ---"
	AdsEndMarker    = "# --- HYPRFOCUS ADS END ---"

	RedirectIP = "127.0.0.1"
	BlockIP    = "0.0.0.0"
)

var (
	ErrUnknownRegion     = errors.New("unknown block region")
	ErrAdListUnavailable = errors.New("ad list unavailable")
	goalRegion           = markers.Region{Start: GoalStartMarker, End: GoalEndMarker}
	adsRegion            = markers.Region{Start: AdsStartMarker, End: AdsEndMarker}
)

func (r RegionID) Markers() (markers.Region, error) {
	switch r {
	case RegionGoal:
		return goalRegion, nil
	case RegionAds:
		return adsRegion, nil
	default:
		return markers.Region{}, fmt.Errorf("%w: %s", ErrUnknownRegion, r)
	}
}

// Rule is one hosts-file redirect line.
type Rule struct {
	IP     string
	Domain string
}

func (r Rule) Line() string {
	return r.IP + " " + r.Domain
}

// GoalRules expands requested domains into loopback redirects. Every domain
// is paired with its www. counterpart: "www.x" adds "x", "x" adds "www.x".
func GoalRules(domains []string) []Rule {
	seen := map[string]struct{}{}
	out := make([]Rule, 0, len(domains)*2)
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, Rule{IP: RedirectIP, Domain: name})
	}
	for _, raw := range domains {
		name := CleanDomain(raw)
		if name == "" {
			continue
		}
		if bare, ok := strings.CutPrefix(name, "www."); ok {
			add(bare)
			add(name)
			continue
		}
		add(name)
		add("www." + name)
	}
	return out
}

// CleanDomain reduces user input such as "https://Example.com/path" to a
// bare lower-case host name.
func CleanDomain(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[i+3:]
	}
	if i := strings.IndexAny(name, "/?#"); i >= 0 {
		name = name[:i]
	}
	return strings.Trim(name, ".")
}

// FilterAdList keeps the entries of a hosts-format list that point at the
// block address, dropping the self-referential "0.0.0.0 0.0.0.0" entry and
// trailing comments.
func FilterAdList(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != BlockIP || fields[1] == BlockIP {
			continue
		}
		out = append(out, Rule{IP: BlockIP, Domain: fields[1]}.Line())
	}
	return out
}

// Rewrite produces the new hosts content with target's region replaced by
// body. Both regions are stripped, unrelated lines keep their order, and the
// untouched region is re-appended as it was. Goal comes before ads; an empty
// region is omitted entirely.
func Rewrite(content string, target RegionID, body []string) (string, error) {
	if _, err := target.Markers(); err != nil {
		return "", err
	}
	lines := markers.SplitLines(content)
	clean := adsRegion.Strip(goalRegion.Strip(lines))

	var goal, ads []string
	if target == RegionGoal {
		goal = goalRegion.Wrap(body)
		ads = adsRegion.Extract(lines)
	} else {
		goal = goalRegion.Extract(lines)
		ads = adsRegion.Wrap(body)
	}

	if len(goal)+len(ads) > 0 && len(clean) > 0 {
		clean[len(clean)-1] = markers.Terminate(clean[len(clean)-1])
	}
	var b strings.Builder
	for _, part := range [][]string{clean, goal, ads} {
		for _, line := range part {
			b.WriteString(line)
		}
	}
	return b.String(), nil
}

// Status summarizes the managed regions of a hosts file.
type Status struct {
	GoalDomains []string
	AdRules     int
	AdsEnabled  bool
}

func Inspect(content string) Status {
	lines := markers.SplitLines(content)
	status := Status{}
	for _, line := range goalRegion.Body(lines) {
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			status.GoalDomains = append(status.GoalDomains, fields[1])
		}
	}
	status.AdsEnabled = len(adsRegion.Extract(lines)) > 0
	for _, line := range adsRegion.Body(lines) {
		if len(strings.Fields(line)) >= 2 {
			status.AdRules++
		}
	}
	return status
}

func Lines(rules []Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Line())
	}
	return out
}
