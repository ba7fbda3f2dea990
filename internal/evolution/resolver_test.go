package evolution

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/dexline/internal/catalog"
)

// nationalCatalog loads the shared fixture used by the catalog package.
func nationalCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load("../catalog/testdata/catalog.toml")
	if err != nil {
		t.Fatalf("load fixture catalog: %v", err)
	}
	return c
}

func buildCatalog(t *testing.T, species ...catalog.Species) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(species, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func edge(t *testing.T, s string) catalog.Transition {
	t.Helper()
	tr, err := catalog.ParseTransition(s)
	if err != nil {
		t.Fatalf("ParseTransition(%q): %v", s, err)
	}
	return tr
}

// lookup returns the species with the given name and, if non-empty, its form.
func lookup(t *testing.T, c *catalog.Catalog, name, form string) (*catalog.Species, *catalog.Form) {
	t.Helper()
	s, ok := c.ByName(name)
	if !ok {
		t.Fatalf("species %q not in catalog", name)
	}
	if form == "" {
		return s, nil
	}
	f := s.Form(form)
	if f == nil {
		t.Fatalf("%s has no form %q", name, form)
	}
	return s, f
}

func evoName(e Evolution) string {
	if e.Form == nil {
		return e.Species.Name
	}
	return e.Species.Name + "-" + e.Form.Name
}

// describeStages flattens stages into names; a branch becomes one row with
// several entries.
func describeStages(stages []Stage) [][]string {
	out := make([][]string, 0, len(stages))
	for _, st := range stages {
		row := make([]string, 0, st.Len())
		for _, e := range st.Members() {
			row = append(row, evoName(e))
		}
		out = append(out, row)
	}
	return out
}

func describeEvos(evos []Evolution) []string {
	out := make([]string, 0, len(evos))
	for _, e := range evos {
		out = append(out, evoName(e))
	}
	return out
}

func TestNext_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("single successor", func(t *testing.T) {
		t.Parallel()
		c := buildCatalog(t,
			catalog.Species{Number: 1, Name: "One", EvolvesTo: edge(t, "2")},
			catalog.Species{Number: 2, Name: "Two"},
		)
		s, _ := c.Species(1)
		got, err := New(c, DefaultRules()).Next(s, nil)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		two, _ := c.Species(2)
		if len(got) != 1 || got[0].Branch() || got[0].Single().Species != two || got[0].Single().Form != nil {
			t.Errorf("Next = %v, want [Two]", describeStages(got))
		}
	})

	t.Run("form successor continues through the form", func(t *testing.T) {
		t.Parallel()
		c := buildCatalog(t,
			catalog.Species{Number: 4, Name: "Four", EvolvesTo: edge(t, "5-alpha")},
			catalog.Species{Number: 5, Name: "Five", Forms: []catalog.Form{
				{Name: "default"},
				{Name: "alpha", EvolvesTo: edge(t, "6")},
			}},
			catalog.Species{Number: 6, Name: "Six"},
		)
		s, _ := c.Species(4)
		got, err := New(c, DefaultRules()).Next(s, nil)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		five, _ := c.Species(5)
		if len(got) != 2 || got[0].Single().Form != five.Form("alpha") {
			t.Fatalf("Next = %v, want [Five-alpha Six]", describeStages(got))
		}
		want := [][]string{{"Five-alpha"}, {"Six"}}
		if diff := cmp.Diff(want, describeStages(got)); diff != "" {
			t.Errorf("Next mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("dead-end branch has no next row", func(t *testing.T) {
		t.Parallel()
		c := buildCatalog(t,
			catalog.Species{Number: 9, Name: "Nine", EvolvesTo: edge(t, "10 11")},
			catalog.Species{Number: 10, Name: "Ten"},
			catalog.Species{Number: 11, Name: "Eleven"},
		)
		s, _ := c.Species(9)
		got, err := New(c, DefaultRules()).Next(s, nil)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if len(got) != 1 || !got[0].Branch() {
			t.Fatalf("Next = %v, want one branch stage", describeStages(got))
		}
		if diff := cmp.Diff([][]string{{"Ten", "Eleven"}}, describeStages(got)); diff != "" {
			t.Errorf("Next mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("uneven branch is padded", func(t *testing.T) {
		t.Parallel()
		c := buildCatalog(t,
			catalog.Species{Number: 9, Name: "Nine", EvolvesTo: edge(t, "10 11")},
			catalog.Species{Number: 10, Name: "Ten", EvolvesTo: edge(t, "12")},
			catalog.Species{Number: 11, Name: "Eleven"},
			catalog.Species{Number: 12, Name: "Twelve"},
		)
		s, _ := c.Species(9)
		got, err := New(c, DefaultRules()).Next(s, nil)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if len(got) != 2 || !got[1].Branch() {
			t.Fatalf("Next = %v, want two branch stages", describeStages(got))
		}
		row := got[1].Members()
		if row[0].Species.Name != "Twelve" || !row[1].IsUnresolved() {
			t.Errorf("next row = %v, want [Twelve MissingNo.]", describeEvos(row))
		}
	})
}

func TestNext_NationalCatalog(t *testing.T) {
	t.Parallel()
	c := nationalCatalog(t)
	r := New(c, DefaultRules())

	tests := []struct {
		species string
		form    string
		want    [][]string
	}{
		{"Bulbasaur", "", [][]string{{"Ivysaur"}, {"Venusaur"}, {"Venusaur-Mega", "Venusaur-Gigantamax"}}},
		{"Venusaur", "", [][]string{{"Venusaur-Mega", "Venusaur-Gigantamax"}}},
		{"Venusaur", "default", [][]string{{"Venusaur-Mega", "Venusaur-Gigantamax"}}},
		{"Venusaur", "Mega", [][]string{}},
		{"Rattata", "Alolan", [][]string{{"Raticate-Alolan"}}},
		{"Rattata", "", [][]string{{"Raticate"}}},
		{"Eevee", "", [][]string{{"Vaporeon", "Jolteon", "Flareon", "Eevee-Gigantamax"}}},
		{"Eevee", "Gigantamax", [][]string{}},
		{"Ralts", "", [][]string{{"Kirlia"}, {"Gardevoir", "Gallade"}, {"Gardevoir-Mega", "Gallade-Mega"}}},
		{"Snorunt", "", [][]string{{"Glalie", "Froslass"}, {"Glalie-Mega", "MissingNo."}}},
		{"Toxel", "", [][]string{{"Toxtricity"}, {"Toxtricity-Gigantamax"}}},
		{"Toxtricity", "Amped", [][]string{{"Toxtricity-Gigantamax"}}},
		{"Toxtricity", "Low-Key", [][]string{{"Toxtricity-Gigantamax"}}},
		{"Kubfu", "", [][]string{{"Urshifu-Single-Strike", "Urshifu-Rapid-Strike"}}},
		{"Urshifu", "Rapid-Strike", [][]string{{"Urshifu-Rapid-Strike-Gigantamax"}}},
		{"Urshifu", "Rapid-Strike-Gigantamax", [][]string{}},
		{"Urshifu", "", [][]string{}},
		{"Cherubi", "", [][]string{{"Cherrim"}}},
		{"Flareon", "", [][]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.species+"/"+tt.form, func(t *testing.T) {
			t.Parallel()
			s, f := lookup(t, c, tt.species, tt.form)
			got, err := r.Next(s, f)
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if diff := cmp.Diff(tt.want, describeStages(got)); diff != "" {
				t.Errorf("Next(%s) mismatch (-want +got):\n%s", evoName(Evolution{s, f}), diff)
			}
		})
	}
}

func TestPrev_NationalCatalog(t *testing.T) {
	t.Parallel()
	c := nationalCatalog(t)
	r := New(c, DefaultRules())

	tests := []struct {
		species string
		form    string
		want    []string
	}{
		{"Bulbasaur", "", []string{}},
		{"Venusaur", "", []string{"Bulbasaur", "Ivysaur"}},
		{"Venusaur", "Mega", []string{"Bulbasaur", "Ivysaur", "Venusaur-default"}},
		{"Raticate", "Alolan", []string{"Rattata-Alolan"}},
		{"Raticate", "", []string{"Rattata-default"}},
		{"Jolteon", "", []string{"Eevee-default"}},
		{"Eevee", "Gigantamax", []string{"Eevee-default"}},
		{"Gallade", "Mega", []string{"Ralts", "Kirlia", "Gallade-default"}},
		{"Cherrim", "Sunshine", []string{"Cherubi"}},
		{"Toxtricity", "Low-Key", []string{"Toxel"}},
		{"Toxtricity", "Gigantamax", []string{"Toxel", "Toxtricity"}},
		{"Urshifu", "Single-Strike", []string{"Kubfu"}},
		{"Urshifu", "Single-Strike-Gigantamax", []string{"Kubfu", "Urshifu-Single-Strike"}},
		{"Kubfu", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.species+"/"+tt.form, func(t *testing.T) {
			t.Parallel()
			s, f := lookup(t, c, tt.species, tt.form)
			got, err := r.Prev(s, f)
			if err != nil {
				t.Fatalf("Prev: %v", err)
			}
			if diff := cmp.Diff(tt.want, describeEvos(got)); diff != "" {
				t.Errorf("Prev(%s) mismatch (-want +got):\n%s", evoName(Evolution{s, f}), diff)
			}
		})
	}
}

// sameStage treats a missing form and the default form as one presentation,
// and ignores forms entirely for species whose forms never affect matching.
func sameStage(rules Rules, a, b Evolution) bool {
	if a.Species != b.Species {
		return false
	}
	if rules.ignoresForm(a.Species.Name) {
		return true
	}
	name := func(f *catalog.Form) string {
		if f == nil {
			return catalog.DefaultForm
		}
		return f.Name
	}
	return name(a.Form) == name(b.Form)
}

func TestRoundTripAdjacency(t *testing.T) {
	t.Parallel()
	c := nationalCatalog(t)
	r := New(c, DefaultRules())

	var starts []Evolution
	for _, s := range c.All() {
		starts = append(starts, Evolution{Species: s})
		for i := range s.Forms {
			starts = append(starts, Evolution{Species: s, Form: &s.Forms[i]})
		}
	}

	checked := 0
	for _, start := range starts {
		stages, err := r.Next(start.Species, start.Form)
		if err != nil {
			t.Fatalf("Next(%s): %v", evoName(start), err)
		}
		if len(stages) == 0 || stages[0].Branch() {
			continue
		}
		succ := stages[0].Single()
		prev, err := r.Prev(succ.Species, succ.Form)
		if err != nil {
			t.Fatalf("Prev(%s): %v", evoName(succ), err)
		}
		if len(prev) == 0 || !sameStage(r.Rules(), prev[len(prev)-1], start) {
			t.Errorf("Prev(%s) = %v, want it to end with %s", evoName(succ), describeEvos(prev), evoName(start))
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no single-successor pairs checked")
	}
}

func TestBranchAlignment(t *testing.T) {
	t.Parallel()
	c := nationalCatalog(t)
	r := New(c, DefaultRules())

	for _, s := range c.All() {
		stages, err := r.Next(s, nil)
		if err != nil {
			t.Fatalf("Next(%s): %v", s.Name, err)
		}
		for i := 0; i+1 < len(stages); i++ {
			if stages[i].Branch() && stages[i+1].Len() != stages[i].Len() {
				t.Errorf("Next(%s): branch of %d followed by row of %d",
					s.Name, stages[i].Len(), stages[i+1].Len())
			}
		}
	}
}

func TestFirstStagesHaveNoPredecessors(t *testing.T) {
	t.Parallel()
	c := nationalCatalog(t)
	r := New(c, DefaultRules())

	referenced := make(map[int]bool)
	for _, s := range c.All() {
		for _, tg := range s.EvolvesTo.Targets() {
			referenced[tg.Number] = true
		}
		for _, f := range s.Forms {
			for _, tg := range f.EvolvesTo.Targets() {
				referenced[tg.Number] = true
			}
		}
	}

	for _, s := range c.All() {
		if referenced[s.Number] {
			continue
		}
		if _, dual := r.Rules().DualStyle[s.Name]; dual {
			continue
		}
		prev, err := r.Prev(s, nil)
		if err != nil {
			t.Fatalf("Prev(%s): %v", s.Name, err)
		}
		if len(prev) != 0 {
			t.Errorf("Prev(%s) = %v, want empty", s.Name, describeEvos(prev))
		}
	}
}

func TestCycleDetected(t *testing.T) {
	t.Parallel()
	c := buildCatalog(t,
		catalog.Species{Number: 1, Name: "Ouro", EvolvesTo: edge(t, "2")},
		catalog.Species{Number: 2, Name: "Boros", EvolvesTo: edge(t, "1")},
	)
	r := New(c, DefaultRules())
	s, _ := c.Species(1)

	if _, err := r.Next(s, nil); !errors.Is(err, ErrCycleDetected) {
		t.Errorf("Next error = %v, want ErrCycleDetected", err)
	}
	if _, err := r.Prev(s, nil); !errors.Is(err, ErrCycleDetected) {
		t.Errorf("Prev error = %v, want ErrCycleDetected", err)
	}
}

func TestFormMismatch(t *testing.T) {
	t.Parallel()
	c := nationalCatalog(t)
	r := New(c, DefaultRules())
	eevee, _ := lookup(t, c, "Eevee", "")
	_, mega := lookup(t, c, "Gardevoir", "Mega")

	if _, err := r.Next(eevee, mega); !errors.Is(err, ErrFormMismatch) {
		t.Errorf("Next error = %v, want ErrFormMismatch", err)
	}
	if _, err := r.Prev(eevee, mega); !errors.Is(err, ErrFormMismatch) {
		t.Errorf("Prev error = %v, want ErrFormMismatch", err)
	}

	// Glalie has a Mega form of its own, but not Gardevoir's.
	glalie, _ := lookup(t, c, "Glalie", "")
	if _, err := r.Next(glalie, mega); !errors.Is(err, ErrFormMismatch) {
		t.Errorf("Next(Glalie, Gardevoir-Mega) error = %v, want ErrFormMismatch", err)
	}
	if _, err := r.Prev(glalie, mega); !errors.Is(err, ErrFormMismatch) {
		t.Errorf("Prev(Glalie, Gardevoir-Mega) error = %v, want ErrFormMismatch", err)
	}
	if _, err := r.Next(nil, nil); !errors.Is(err, ErrNoSpecies) {
		t.Errorf("Next(nil) error = %v, want ErrNoSpecies", err)
	}
}

func TestDualStyleMissingBase(t *testing.T) {
	t.Parallel()
	c := buildCatalog(t, catalog.Species{Number: 892, Name: "Urshifu", Forms: []catalog.Form{{Name: "Single-Strike"}}})
	s, _ := c.Species(892)
	if _, err := New(c, DefaultRules()).Prev(s, nil); !errors.Is(err, catalog.ErrUnresolvableReference) {
		t.Errorf("Prev error = %v, want ErrUnresolvableReference", err)
	}
}

func TestCustomRules(t *testing.T) {
	t.Parallel()
	c := buildCatalog(t,
		catalog.Species{Number: 1, Name: "Base", Forms: []catalog.Form{{Name: "default"}, {Name: "Awakened"}}},
	)
	s, _ := c.Species(1)

	stages, err := New(c, DefaultRules()).Next(s, nil)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(stages) != 0 {
		t.Errorf("default rules: Next = %v, want empty", describeStages(stages))
	}

	rules := DefaultRules()
	rules.ExtraFormMarkers = append(rules.ExtraFormMarkers, "Awakened")
	stages, err = New(c, rules).Next(s, nil)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if diff := cmp.Diff([][]string{{"Base-Awakened"}}, describeStages(stages)); diff != "" {
		t.Errorf("custom rules: Next mismatch (-want +got):\n%s", diff)
	}
}

func TestLine(t *testing.T) {
	t.Parallel()
	c := nationalCatalog(t)
	s, f := lookup(t, c, "Kirlia", "")

	line, err := New(c, DefaultRules()).Line(s, f)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if diff := cmp.Diff([]string{"Ralts"}, describeEvos(line.Prev)); diff != "" {
		t.Errorf("Prev mismatch (-want +got):\n%s", diff)
	}
	if line.Current.Species != s {
		t.Errorf("Current = %s, want Kirlia", evoName(line.Current))
	}
	if len(line.Next) != 2 {
		t.Errorf("Next = %v, want two stages", describeStages(line.Next))
	}
}
