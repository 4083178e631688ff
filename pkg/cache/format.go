package cache

import "fmt"

// Summary renders a cleaning result for the terminal.
func (r *CleanResult) Summary() string {
	if r.TotalFreed == 0 {
		return "No files were removed from the cache."
	}
	msg := fmt.Sprintf("Freed %s of disk space.", FormatBytes(r.TotalFreed))
	if r.DownloadsFreed > 0 {
		msg += fmt.Sprintf("\n- Downloads: %s", FormatBytes(r.DownloadsFreed))
	}
	if r.MetadataFreed > 0 {
		msg += fmt.Sprintf("\n- Source metadata: %s", FormatBytes(r.MetadataFreed))
	}
	return msg
}

// FormatBytes converts bytes to a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
