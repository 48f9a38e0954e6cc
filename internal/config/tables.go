package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/reconcile-cli/internal/classify"
	"github.com/sells-group/reconcile-cli/internal/cnpj"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

// Tables are the static lookup tables: government legal-nature codes,
// identifiers always treated as government, and per-source column maps.
type Tables struct {
	GovCodes      []int                    `yaml:"gov_codes"`
	GovExceptions []string                 `yaml:"gov_exceptions"`
	Schemas       map[string]schema.Schema `yaml:"schemas"`
}

// DefaultTables returns the built-in tables.
func DefaultTables() Tables {
	return Tables{
		GovCodes: []int{
			1015, 1023, 1031, 1040, 1058, 1066, 1074, 1082, 1104, 1112,
			1120, 1139, 1147, 1155, 1163, 1171, 1180, 1198, 1201, 1210,
			1228, 1236, 1244, 1252, 1260, 1279, 1287, 1295, 1309, 1317,
			1325, 1333, 2038, 3077,
		},
		GovExceptions: []string{
			"06981180000116",
			"06981176000158",
			"39244595000166",
			"06067608000110",
		},
		Schemas: map[string]schema.Schema{
			schema.Active.Name:        schema.Active,
			schema.CancelSuspend.Name: schema.CancelSuspend,
			schema.Canonical.Name:     schema.Canonical,
		},
	}
}

// LoadTables returns the built-in tables overlaid with the YAML file at path.
// Lists in the file replace the defaults; a schema named in the file replaces
// the built-in schema of that name and the others are kept.
// An empty path returns the defaults.
func LoadTables(path string) (Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, eris.Wrapf(err, "config: read tables %s", path)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, eris.Wrapf(err, "config: parse tables %s", path)
	}

	for name, s := range t.Schemas {
		if s.Name == "" {
			s.Name = name
			t.Schemas[name] = s
		}
		if err := s.Validate(); err != nil {
			return Tables{}, eris.Wrapf(err, "config: tables %s", path)
		}
	}
	return t, nil
}

// Schema returns the named column map.
func (t Tables) Schema(name string) (schema.Schema, error) {
	s, ok := t.Schemas[name]
	if !ok {
		return schema.Schema{}, eris.Errorf("config: no schema named %q", name)
	}
	return s, nil
}

// Rules converts the tables into classification rules. Exception
// identifiers are normalized.
func (t Tables) Rules() classify.Rules {
	r := classify.Rules{
		GovCodes:   make(map[int]struct{}, len(t.GovCodes)),
		Exceptions: make(map[string]struct{}, len(t.GovExceptions)),
	}
	for _, c := range t.GovCodes {
		r.GovCodes[c] = struct{}{}
	}
	for _, id := range t.GovExceptions {
		r.Exceptions[cnpj.Normalize(id)] = struct{}{}
	}
	return r
}
