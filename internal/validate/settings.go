package validate

import "encoding/json"

// settingRule checks one known setting key. Unknown keys accept any
// JSON-serializable value.
type settingRule func(v any) (any, error)

var settingRules = map[string]settingRule{
	"theme": func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, errf("theme", "must be a string")
		}
		switch s {
		case "light", "dark", "system":
			return s, nil
		}
		return nil, errf("theme", "must be one of: light, dark, system")
	},
	"sidebar_collapsed": func(v any) (any, error) {
		return Bool(v, "sidebar_collapsed", false)
	},
	"show_completed": func(v any) (any, error) {
		return Bool(v, "show_completed", true)
	},
	"hide_sensitive_notes": func(v any) (any, error) {
		return Bool(v, "hide_sensitive_notes", true)
	},
	"last_selected_project": func(v any) (any, error) {
		return OptionalID(v, "last_selected_project")
	},
}

// SettingValue validates a setting value against the per-key rules.
func SettingValue(key string, v any) (any, error) {
	if rule, ok := settingRules[key]; ok {
		return rule(v)
	}
	if _, err := json.Marshal(v); err != nil {
		return nil, errf(key, "must be JSON-serializable")
	}
	return v, nil
}
