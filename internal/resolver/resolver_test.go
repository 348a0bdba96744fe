package resolver

import (
	"reflect"
	"testing"

	"github.com/armature-labs/armature/internal/template"
)

func mod(name string, priority int, includes, excludes []string) template.Module {
	return template.Module{
		Name:     name,
		Path:     "modules/" + name + ".json",
		Priority: priority,
		Includes: includes,
		Excludes: excludes,
	}
}

func names(modules []template.Module) []string {
	out := make([]string, len(modules))
	for i, m := range modules {
		out[i] = m.Name
	}
	return out
}

func TestResolveSelectionOnly(t *testing.T) {
	catalog := []template.Module{
		mod("a", 0, nil, nil),
		mod("b", 0, nil, nil),
		mod("c", 0, nil, nil),
	}

	res := Resolve(catalog[:2], catalog)

	if got, want := names(res.Modules), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
	if len(res.Included) != 0 {
		t.Errorf("Included = %v, want none", res.Included)
	}
	if len(res.Excluded) != 0 {
		t.Errorf("Excluded = %v, want none", res.Excluded)
	}
}

func TestResolveTransitiveIncludes(t *testing.T) {
	catalog := []template.Module{
		mod("a", 0, []string{"b"}, nil),
		mod("b", 0, []string{"c"}, nil),
		mod("c", 0, nil, nil),
	}

	res := Resolve(catalog[:1], catalog)

	if got, want := names(res.Modules), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
	if got, want := res.Included, []string{"b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Included = %v, want %v", got, want)
	}
}

func TestResolveCyclicIncludesTerminates(t *testing.T) {
	catalog := []template.Module{
		mod("a", 0, []string{"b"}, nil),
		mod("b", 0, []string{"a"}, nil),
	}

	res := Resolve(catalog[:1], catalog)

	// Least fixed point: selection plus everything transitively included,
	// no duplicates.
	if got, want := names(res.Modules), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
}

func TestResolveSelfIncludeIsNoop(t *testing.T) {
	catalog := []template.Module{
		mod("a", 0, []string{"a"}, nil),
	}

	res := Resolve(catalog, catalog)
	if got, want := names(res.Modules), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
}

func TestResolveExclusionDropsModule(t *testing.T) {
	// Scenario: X excludes Y, user selects both. Only X survives, with a
	// diagnostic naming Y.
	catalog := []template.Module{
		mod("x", 0, nil, []string{"y"}),
		mod("y", 0, nil, nil),
	}

	res := Resolve(catalog, catalog)

	if got, want := names(res.Modules), []string{"x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
	if len(res.Excluded) != 1 {
		t.Fatalf("Excluded = %v, want one entry", res.Excluded)
	}
	if res.Excluded[0].Module != "y" || res.Excluded[0].ExcludedBy != "x" {
		t.Errorf("Excluded[0] = %+v, want y excluded by x", res.Excluded[0])
	}
}

func TestResolveMutualExclusionDropsBoth(t *testing.T) {
	catalog := []template.Module{
		mod("a", 0, nil, []string{"b"}),
		mod("b", 0, nil, []string{"a"}),
	}

	res := Resolve(catalog, catalog)

	if len(res.Modules) != 0 {
		t.Errorf("Modules = %v, want empty (nothing to install)", names(res.Modules))
	}
	if len(res.Excluded) != 2 {
		t.Errorf("Excluded = %v, want both a and b diagnosed", res.Excluded)
	}
}

func TestResolveExcludeUnselectedIsNoop(t *testing.T) {
	catalog := []template.Module{
		mod("a", 0, nil, []string{"ghost"}),
		mod("ghost", 0, nil, nil),
	}

	res := Resolve(catalog[:1], catalog)

	if got, want := names(res.Modules), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
	if len(res.Excluded) != 0 {
		t.Errorf("Excluded = %v, want none (ghost was never in the closure)", res.Excluded)
	}
}

func TestResolveExclusionOfIncludedModule(t *testing.T) {
	// b arrives via a's includes, then c's excludes removes it.
	catalog := []template.Module{
		mod("a", 0, []string{"b"}, nil),
		mod("b", 0, nil, nil),
		mod("c", 0, nil, []string{"b"}),
	}

	res := Resolve([]template.Module{catalog[0], catalog[2]}, catalog)

	if got, want := names(res.Modules), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
}

func TestResolvePriorityOrdering(t *testing.T) {
	catalog := []template.Module{
		mod("low", -5, nil, nil),
		mod("none", 0, nil, nil),
		mod("high", 10, nil, nil),
	}

	res := Resolve(catalog, catalog)

	if got, want := names(res.Modules), []string{"high", "none", "low"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
}

func TestResolveStableSortKeepsSelectionOrder(t *testing.T) {
	catalog := []template.Module{
		mod("first", 1, nil, nil),
		mod("second", 1, nil, nil),
		mod("third", 1, nil, nil),
	}

	res := Resolve(catalog, catalog)

	if got, want := names(res.Modules), []string{"first", "second", "third"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v (equal priority keeps selection order)", got, want)
	}
}

func TestResolveMissingInclude(t *testing.T) {
	catalog := []template.Module{
		mod("a", 0, []string{"nonexistent"}, nil),
	}

	res := Resolve(catalog, catalog)

	if got, want := names(res.Modules), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
	if got, want := res.Missing, []string{"nonexistent"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Missing = %v, want %v", got, want)
	}
}

func TestResolveEmptySelection(t *testing.T) {
	catalog := []template.Module{mod("a", 0, nil, nil)}

	res := Resolve(nil, catalog)
	if len(res.Modules) != 0 {
		t.Errorf("Modules = %v, want empty", names(res.Modules))
	}
}

func TestSelectByName(t *testing.T) {
	catalog := []template.Module{
		mod("a", 0, nil, nil),
		mod("b", 0, nil, nil),
	}

	selected, unknown := SelectByName([]string{"b", "a", "zzz"}, catalog)

	if got, want := names(selected), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("selected = %v, want %v", got, want)
	}
	if got, want := unknown, []string{"zzz"}; !reflect.DeepEqual(got, want) {
		t.Errorf("unknown = %v, want %v", got, want)
	}
}
