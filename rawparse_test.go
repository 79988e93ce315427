package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleAlmanacJSON = `{
  "seeds": [79, 14, 55, 13],
  "maps": [
    {"name": "seed-to-soil", "rules": [[50, 98, 2], [52, 50, 48]]},
    {"name": "soil-to-fertilizer", "rules": [[0, 15, 37], [37, 52, 2], [39, 0, 15]]},
    {"name": "fertilizer-to-water", "rules": [[49, 53, 8], [0, 11, 42], [42, 0, 7], [57, 7, 4]]},
    {"name": "water-to-light", "rules": [[88, 18, 7], [18, 25, 70]]},
    {"name": "light-to-temperature", "rules": [[45, 77, 23], [81, 45, 19], [68, 64, 13]]},
    {"name": "temperature-to-humidity", "rules": [[0, 69, 1], [1, 0, 69]]},
    {"name": "humidity-to-location", "rules": [[60, 56, 37], [56, 93, 4]]}
  ]
}`

func TestLoadJSONAlmanacMatchesText(t *testing.T) {
	got, err := LoadJSONAlmanac(exampleAlmanacJSON)
	require.NoError(t, err)
	assert.Equal(t, mustParseExample(t), got)
}

func TestLoadJSONAlmanacFile(t *testing.T) {
	path := writeInput(t, "a.json", exampleAlmanacJSON)
	got, err := LoadJSONAlmanacFile(path)
	require.NoError(t, err)
	assert.Equal(t, []int64{79, 14, 55, 13}, got.Seeds)

	_, err = LoadJSONAlmanacFile(path + ".missing")
	assert.Error(t, err)
}

func TestLoadJSONAlmanacErrors(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"seeds": [1, 2]`,
		"seeds missing":   `{"maps": []}`,
		"seeds not array": strings.Replace(exampleAlmanacJSON, "[79, 14, 55, 13]", `"79 14"`, 1),
		"fractional seed": strings.Replace(exampleAlmanacJSON, "[79, 14, 55, 13]", "[79.5, 14]", 1),
		"string seed":     strings.Replace(exampleAlmanacJSON, "[79, 14, 55, 13]", `["79", 14]`, 1),
		"short rule":      strings.Replace(exampleAlmanacJSON, "[50, 98, 2]", "[50, 98]", 1),
		"string in rule":  strings.Replace(exampleAlmanacJSON, "[50, 98, 2]", `[50, "x", 2]`, 1),
		"rules object":    strings.Replace(exampleAlmanacJSON, `"rules": [[50, 98, 2], [52, 50, 48]]`, `"rules": {"a": [50, 98, 2]}`, 1),
		"rules string":    strings.Replace(exampleAlmanacJSON, `"rules": [[50, 98, 2], [52, 50, 48]]`, `"rules": "50 98 2"`, 1),
		"rule object":     strings.Replace(exampleAlmanacJSON, "[50, 98, 2]", `{"d": 50, "s": 98, "l": 2}`, 1),
		"maps missing":    `{"seeds": [1, 2]}`,
		"too few maps":    strings.Replace(exampleAlmanacJSON, `,
    {"name": "humidity-to-location", "rules": [[60, 56, 37], [56, 93, 4]]}`, "", 1),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadJSONAlmanac(doc)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestLoadJSONAlmanacMapWithoutRules(t *testing.T) {
	doc := strings.Replace(exampleAlmanacJSON, `"rules": [[0, 69, 1], [1, 0, 69]]`, `"rules": []`, 1)
	doc = strings.Replace(doc, `, "rules": [[60, 56, 37], [56, 93, 4]]`, "", 1)
	a, err := LoadJSONAlmanac(doc)
	require.NoError(t, err)
	assert.Empty(t, a.Tables[5].Rules)
	assert.Empty(t, a.Tables[6].Rules)
	assert.Equal(t, "humidity-to-location", a.Tables[6].Name)
}
