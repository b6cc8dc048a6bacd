package instance

import "os"

// GetID identifies this process in logs. RECEIPTS_INSTANCE_ID wins, then the
// platform supplied DYNO and HOSTNAME, then "local".
func GetID() string {
	for _, key := range []string{"RECEIPTS_INSTANCE_ID", "DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
