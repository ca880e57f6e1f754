// Package probe checks whether the interpreters the launcher spawns are
// installed.
package probe

import "sort"

// Capability is the availability of one language's interpreter.
type Capability struct {
	Language  string   `json:"language"`
	Present   bool     `json:"present"`
	Command   []string `json:"command"`
	Path      string   `json:"path,omitempty"`
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
}

// LanguageDetector maps a file name to its language.
type LanguageDetector interface {
	LanguageForFile(filename string) (string, bool)
}

// DetectLanguagePresence reports which of languages appear among paths.
func DetectLanguagePresence(paths []string, languages []string, detector LanguageDetector) map[string]bool {
	presence := make(map[string]bool, len(languages))
	for _, language := range languages {
		presence[language] = false
	}
	for _, path := range paths {
		if language, ok := detector.LanguageForFile(path); ok {
			presence[language] = true
		}
	}
	return presence
}

// ProbeInterpretersWithLookPath resolves the first word of each interpreter
// command. Results are sorted by language.
func ProbeInterpretersWithLookPath(interpreters map[string][]string, presence map[string]bool, lookPath func(file string) (string, error)) []Capability {
	capabilities := make([]Capability, 0, len(interpreters))
	for language, command := range interpreters {
		capability := Capability{
			Language: language,
			Present:  presence[language],
			Command:  append([]string(nil), command...),
		}

		switch {
		case len(command) == 0:
			capability.Reason = "not_configured"
		default:
			if path, err := lookPath(command[0]); err == nil {
				capability.Available = true
				capability.Path = path
			} else {
				capability.Reason = "command_not_found"
			}
		}
		capabilities = append(capabilities, capability)
	}

	sort.Slice(capabilities, func(i, j int) bool {
		return capabilities[i].Language < capabilities[j].Language
	})
	return capabilities
}
