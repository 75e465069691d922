package runner

import "os/exec"

// Capability records whether the tools a feature needs are installed.
type Capability struct {
	Present   bool   `json:"present"`
	Tool      string `json:"tool"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ProbeTools checks, for every feature in required, whether all of its tools
// resolve on PATH. Features absent from present are reported but not probed.
func ProbeTools(required map[string][]string, present map[string]bool) map[string]Capability {
	return ProbeToolsWithLookPath(required, present, exec.LookPath)
}

func ProbeToolsWithLookPath(required map[string][]string, present map[string]bool, lookPath func(file string) (string, error)) map[string]Capability {
	capabilities := make(map[string]Capability, len(required))
	for feature, tools := range required {
		capability := Capability{Present: present[feature]}
		if len(tools) > 0 {
			capability.Tool = tools[0]
		}

		if !capability.Present {
			capability.Reason = "not_present"
			capabilities[feature] = capability
			continue
		}

		capability.Available = true
		for _, tool := range tools {
			if _, err := lookPath(tool); err != nil {
				capability.Available = false
				capability.Tool = tool
				capability.Reason = "tool_not_found"
				break
			}
		}
		capabilities[feature] = capability
	}
	return capabilities
}
