package main

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// LoadJSONAlmanac reads the JSON form:
//
//	{"seeds": [79, 14], "maps": [{"name": "seed-to-soil", "rules": [[50, 98, 2]]}]}
func LoadJSONAlmanac(doc string) (*Almanac, error) {
	if !gjson.Valid(doc) {
		return nil, &ParseError{Msg: "invalid JSON"}
	}
	root := gjson.Parse(doc)
	return almanacFromJSON(root)
}

// LoadJSONAlmanacFile reads a JSON almanac from path.
func LoadJSONAlmanacFile(path string) (*Almanac, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadJSONAlmanac(string(data))
}

func almanacFromJSON(root gjson.Result) (*Almanac, error) {
	a := &Almanac{}

	seeds := root.Get("seeds")
	if !seeds.IsArray() {
		return nil, &ParseError{Msg: `"seeds" must be an array`}
	}
	var perr error
	a.Seeds = make([]int64, 0, len(seeds.Array()))
	seeds.ForEach(func(k, v gjson.Result) bool {
		n, ok := readInt(v)
		if !ok {
			perr = &ParseError{Msg: fmt.Sprintf("seeds[%d]: invalid integer %s", k.Int(), v.Raw)}
			return false
		}
		a.Seeds = append(a.Seeds, n)
		return true
	})
	if perr != nil {
		return nil, perr
	}

	maps := root.Get("maps")
	if !maps.IsArray() {
		return nil, &ParseError{Msg: `"maps" must be an array`}
	}
	maps.ForEach(func(mi, m gjson.Result) bool {
		t := RangeTable{Name: m.Get("name").String()}
		rules := m.Get("rules")
		if rules.Exists() && !rules.IsArray() {
			perr = &ParseError{Msg: fmt.Sprintf(`maps[%d]: "rules" must be an array`, mi.Int())}
			return false
		}
		rules.ForEach(func(ri, r gjson.Result) bool {
			if !r.IsArray() {
				perr = &ParseError{Msg: fmt.Sprintf("maps[%d].rules[%d]: want an array of 3 values", mi.Int(), ri.Int())}
				return false
			}
			vals := r.Array()
			if len(vals) != 3 {
				perr = &ParseError{Msg: fmt.Sprintf("maps[%d].rules[%d]: want 3 values, got %d", mi.Int(), ri.Int(), len(vals))}
				return false
			}
			var rule [3]int64
			for i, v := range vals {
				n, ok := readInt(v)
				if !ok {
					perr = &ParseError{Msg: fmt.Sprintf("maps[%d].rules[%d]: invalid integer %s", mi.Int(), ri.Int(), v.Raw)}
					return false
				}
				rule[i] = n
			}
			t.Rules = append(t.Rules, Rule{Destination: rule[0], Source: rule[1], Length: rule[2]})
			return true
		})
		if perr != nil {
			return false
		}
		a.Tables = append(a.Tables, t)
		return true
	})
	if perr != nil {
		return nil, perr
	}

	if err := a.check(); err != nil {
		return nil, err
	}
	return a, nil
}

// readInt accepts JSON numbers with no fractional part.
func readInt(v gjson.Result) (int64, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	n := v.Int()
	if v.Raw != fmt.Sprint(n) {
		return 0, false
	}
	return n, true
}
