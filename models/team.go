// File: models/team.go
package models

// Team is an entry in the read-only team roster used to populate the
// team selects on the results and schedule pages.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamNames returns the distinct roster names in roster order.
func TeamNames(teams []Team) []string {
	seen := make(map[string]bool, len(teams))
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		if t.Name == "" || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		names = append(names, t.Name)
	}
	return names
}
