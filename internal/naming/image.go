package naming

import (
	"regexp"
	"strings"
)

const spriteBaseURL = "https://img.pokemondb.net/sprites/home/"

// imageReplacements are display names whose sprite file name cannot be
// derived mechanically.
var imageReplacements = map[string]string{
	"Combee":         "combee-f",
	"Dialga-Altered": "dialga",
	"Palkia-Altered": "palkia",
	"Meowstic-M":     "meowstic-male",
	"Meowstic-F":     "meowstic-female",
	"Indeedee-M":     "indeedee-male",
	"Indeedee-F":     "indeedee-female",
	"Urshifu":        "urshifu-single-strike",
	"Zacian":         "zacian-hero",
	"Zamazenta":      "zamazenta-hero",
	"Basculegion-M":  "basculegion-male",
	"Basculegion-F":  "basculegion-female",
}

var imageSpecial = regexp.MustCompile(`['.:♀♂é ]|-m$`)

var imageSpecialMap = map[string]string{
	"'":  "",
	".":  "",
	":":  "",
	" ":  "-",
	"-m": "",
	"♀":  "-f",
	"♂":  "-m",
	"é":  "e",
}

// ImageName returns the sprite file stem for a display name.
func ImageName(name string) string {
	if r, ok := imageReplacements[name]; ok {
		return r
	}
	return imageSpecial.ReplaceAllStringFunc(strings.ToLower(name), func(m string) string {
		return imageSpecialMap[m]
	})
}

// ImageURL returns the home-style sprite URL for a display name.
func ImageURL(name string, shiny bool) string {
	variant := "normal"
	if shiny {
		variant = "shiny"
		name = shinyAlcremie(name)
	}
	return spriteBaseURL + variant + "/" + ImageName(name) + ".png"
}

// shinyAlcremie maps a collapsed shiny Alcremie name onto the one cream whose
// sprite exists for shinies. Gigantamax Alcremie is left alone.
func shinyAlcremie(name string) string {
	const prefix = "Alcremie-"
	for offset := 0; ; {
		i := strings.Index(name[offset:], prefix)
		if i < 0 {
			return name
		}
		i += offset
		rest := name[i+len(prefix):]
		if !strings.HasPrefix(rest, "Gigantamax") {
			return name[:i] + "alcremie-Ruby-Cream-" + rest
		}
		offset = i + len(prefix)
	}
}
