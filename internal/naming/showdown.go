package naming

import (
	"regexp"
	"strings"
)

// showdownReplacements map regional and boosted form words to the team
// builder's spelling. Each replaces its first occurrence only.
var showdownReplacements = []struct{ from, to string }{
	{"Alolan", "Alola"},
	{"Galarian", "Galar"},
	{"Hisuian", "Hisui"},
	{"Gigantamax", "Gmax"},
}

// showdownRemovals are form suffixes the team builder treats as the base
// species.
var showdownRemovals = regexp.MustCompile(`-(` + strings.Join([]string{
	`M$`, `F$`,
	`Normal`,
	`Standard`, `Pirouette`,
	`Blade`, `Active`,
	`Solo`, `School`, `Core`, `Busted`,
	`Gulping`, `Gorging`, `Ice`, `Noice`, `Hangry`, `Hero`, `Single-Strike`, `Rider`,
}, "|") + `)`)

// ShowdownName converts a display name into the species name accepted by the
// Showdown team builder import format.
func ShowdownName(name string) string {
	for _, r := range showdownReplacements {
		name = strings.Replace(name, r.from, r.to, 1)
	}
	return showdownRemovals.ReplaceAllString(name, "")
}
