package mediameta

import (
	"strconv"
	"strings"
)

// TranslateProfile normalizes a video profile name for codec. Already
// canonical names are returned unchanged.
func TranslateProfile(codec, profile string) string {
	profile = strings.ToLower(profile)
	switch {
	case strings.Contains(profile, "advanced simple"):
		return "asp"
	case codec == "mpeg4" && profile == "simple":
		return "sp"
	case profile == "asp" || profile == "sp":
		return profile
	case strings.HasPrefix(profile, "m"):
		return "main"
	case strings.HasPrefix(profile, "s"):
		return "simple"
	case strings.HasPrefix(profile, "a"):
		return "advanced"
	}
	return profile
}

// TranslateLevel normalizes a level token: "L3.1" becomes "31", "LM" and
// "Medium" become "medium", and so on.
func TranslateLevel(level string) string {
	level = strings.ToLower(strings.ReplaceAll(level, ".", ""))
	switch {
	case strings.HasPrefix(level, "l"):
		if n, err := strconv.Atoi(level[1:]); err == nil && n != 0 {
			return strconv.Itoa(n)
		}
		switch {
		case strings.HasPrefix(level, "lm"):
			return "medium"
		case strings.HasPrefix(level, "lh"):
			return "high"
		}
		return "low"
	case strings.HasPrefix(level, "m"):
		return "medium"
	case strings.HasPrefix(level, "h"):
		return "high"
	}
	return level
}

// splitProfile parses a raw "Profile@Level" value. Levels that do not
// reduce to a number leave level at zero.
func splitProfile(codec, raw string) (profile string, level int) {
	raw = strings.ToLower(raw)
	at := strings.Index(raw, "@")
	if at <= 0 {
		return TranslateProfile(codec, raw), 0
	}
	profile = TranslateProfile(codec, raw[:at])
	if n, err := strconv.Atoi(TranslateLevel(raw[at+1:])); err == nil {
		level = n
	}
	return profile, level
}
