package dico

// RenameKey returns a hook moving a projection key to a new name. Missing
// keys are left alone. Output renaming is exclusively hook-pipeline work;
// field aliases only ever affect ingestion.
func RenameKey(from, to string) Hook {
	return Hook{
		Name: "rename " + from + " -> " + to,
		Apply: func(m map[string]any) (map[string]any, error) {
			if v, ok := m[from]; ok {
				m[to] = v
				delete(m, from)
			}
			return m, nil
		},
	}
}

// DropKeys returns a hook removing the given keys from a projection.
func DropKeys(keys ...string) Hook {
	return Hook{
		Name: "drop keys",
		Apply: func(m map[string]any) (map[string]any, error) {
			for _, k := range keys {
				delete(m, k)
			}
			return m, nil
		},
	}
}
