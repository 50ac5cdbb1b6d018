// Completion: 100% - Device target identification complete
package backend

import (
	"fmt"
	"strings"
)

// Target is a device code-generation target.
type Target int

const (
	TargetUnknown Target = iota
	TargetOpenCL
	TargetPTX
	TargetSPIRV
)

func (t Target) String() string {
	switch t {
	case TargetOpenCL:
		return "opencl"
	case TargetPTX:
		return "ptx"
	case TargetSPIRV:
		return "spirv"
	case TargetUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// ParseTarget parses a device target name.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(s) {
	case "opencl", "ocl", "cl":
		return TargetOpenCL, nil
	case "ptx", "cuda", "nvidia":
		return TargetPTX, nil
	case "spirv", "spir-v", "levelzero":
		return TargetSPIRV, nil
	default:
		return 0, fmt.Errorf("unsupported device target: %s (supported: opencl, ptx, spirv)", s)
	}
}

// Targets returns every supported device target.
func Targets() []Target {
	return []Target{TargetOpenCL, TargetPTX, TargetSPIRV}
}
