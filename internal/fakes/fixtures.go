package fakes

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"strings"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// fixtures maps "<family>/<name>" to a decoded canned body. Each file in
// fixtures/ is an object whose members are the named bodies of one family.
var fixtures = loadFixtures()

func loadFixtures() map[string]any {
	entries, err := fixtureFS.ReadDir("fixtures")
	if err != nil {
		panic(fmt.Sprintf("fakes: read fixtures: %v", err))
	}

	out := make(map[string]any)
	for _, entry := range entries {
		data, err := fixtureFS.ReadFile(path.Join("fixtures", entry.Name()))
		if err != nil {
			panic(fmt.Sprintf("fakes: read fixture %s: %v", entry.Name(), err))
		}
		var named map[string]any
		if err := json.Unmarshal(data, &named); err != nil {
			panic(fmt.Sprintf("fakes: decode fixture %s: %v", entry.Name(), err))
		}
		family := strings.TrimSuffix(entry.Name(), ".json")
		for name, body := range named {
			out[family+"/"+name] = body
		}
	}
	return out
}

// fixture returns the named canned body. Missing names are programming
// errors in the handler table and panic.
func fixture(name string) any {
	body, ok := fixtures[name]
	if !ok {
		panic("fakes: missing fixture " + name)
	}
	return body
}

// pluck walks into the named fixture: string steps index objects, int
// steps index arrays.
func pluck(name string, steps ...any) any {
	cur := fixture(name)
	for _, step := range steps {
		switch s := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				panic(fmt.Sprintf("fakes: fixture %s: %q applied to %T", name, s, cur))
			}
			cur = obj[s]
		case int:
			arr, ok := cur.([]any)
			if !ok || s >= len(arr) {
				panic(fmt.Sprintf("fakes: fixture %s: index %d out of range", name, s))
			}
			cur = arr[s]
		default:
			panic(fmt.Sprintf("fakes: bad pluck step %T", step))
		}
	}
	return cur
}

// records returns the array at name/listKey as shallow object copies that
// a handler may modify.
func records(name, listKey string) []map[string]any {
	arr, _ := pluck(name, listKey).([]any)
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		obj, _ := v.(map[string]any)
		out = append(out, maps.Clone(obj))
	}
	return out
}

// wrap builds {key: value}.
func wrap(key string, value any) map[string]any {
	return map[string]any{key: value}
}
