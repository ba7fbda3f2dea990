package naming

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/papapumpkin/dexline/internal/catalog"
)

const apiBaseURL = "https://pokeapi.co/api/v2/pokemon"

// StatNames lists base stats in the order the data API reports them.
var StatNames = []string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed"}

// apiRewrite is one step of the display-name to API-name pipeline.
type apiRewrite func(string) string

// first replaces the first occurrence of a literal.
func first(from, to string) apiRewrite {
	return func(s string) string { return strings.Replace(s, from, to, 1) }
}

// every rewrites every match of a pattern.
func every(pattern string, fn func(string) string) apiRewrite {
	re := regexp.MustCompile(pattern)
	return func(s string) string { return re.ReplaceAllStringFunc(s, fn) }
}

func beforeDash(m string) string {
	if i := strings.Index(m, "-"); i >= 0 {
		return m[:i]
	}
	return m
}

var genderedForm = regexp.MustCompile(`^(meowstic|indeedee|basculegion)-(.+)$`)

// apiRewrites run in order over the lower-cased "name-form" string.
var apiRewrites = []apiRewrite{
	every(`['.]`, func(string) string { return "" }),
	first(" ", "-"),

	// Regional variants.
	first("alolan", "alola"),
	first("galarian", "galar"),
	first("hisuian", "hisui"),

	first("gigantamax", "gmax"),

	// Altered Dialga and Palkia are the base resources.
	every(`(dialga|palkia)-altered`, beforeDash),

	first("meteor", "red-meteor"),
	first("toxtricity-gmax", "toxtricity-amped-gmax"),
	every(`flabébé-.+`, func(string) string { return "flabebe" }),

	// Form names the API does not carry.
	every(`-(confined|core|mane|wings|hero)`, func(string) string { return "" }),

	// Galarian Darmanitan is "<form>-galar".
	every(`galar-.+`, func(m string) string {
		parts := strings.Split(m, "-")
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
		return strings.Join(parts, "-")
	}),

	func(s string) string {
		m := genderedForm.FindStringSubmatch(s)
		if m == nil {
			return s
		}
		if m[2] == "f" {
			return m[1] + "-female"
		}
		return m[1] + "-male"
	},

	// Species whose stats do not vary across forms use the base resource.
	every(`(unown|burmy|cherrim|shellos|gastrodon|arceus|unfezant|deerling|sawsbuck|frillish|jellicent|genesect|vivillon|pyroar|floette|florges|furfrou|xerneas|silvally|cramorant|morpeko|zarude)-.+`, beforeDash),
}

// APIName returns the data-API resource name for a species presented as the
// named form.
func APIName(speciesName, formName string) string {
	name := strings.ToLower(speciesName + "-" + formName)
	for _, rw := range apiRewrites {
		name = rw(name)
	}
	return name
}

// APIURL returns the data-API resource URL for s presented as f. The default
// presentation is addressed by catalog number.
func APIURL(s *catalog.Species, f *catalog.Form) string {
	if f == nil || f.IsDefault() {
		return apiBaseURL + "/" + strconv.Itoa(s.Number)
	}
	return apiBaseURL + "/" + APIName(s.Name, f.Name)
}
