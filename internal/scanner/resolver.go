package scanner

import "runtime"

// clamscan ships at a fixed location on Windows; everywhere else the binary
// is expected on PATH. No filesystem probing happens here: if the engine is
// missing, the invocation fails and surfaces as a scan failure.
const windowsEnginePath = `C:\Program Files\ClamAV\clamscan.exe`

func EnginePathFor(goos string) string {
	switch goos {
	case "windows":
		return windowsEnginePath
	default:
		return "clamscan"
	}
}

func DefaultEnginePath() string {
	return EnginePathFor(runtime.GOOS)
}
