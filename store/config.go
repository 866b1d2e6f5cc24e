package store

// Config holds configuration for DynamoStore.
type Config struct {
	// TableName is the DynamoDB table holding items, keyed by the string attribute "id".
	// Default: "items"
	TableName string

	// EventuallyConsistentReads lets Get use eventually consistent reads.
	// When false, Get is strongly consistent and sees an item immediately
	// after the write that created it.
	// Default: false
	EventuallyConsistentReads bool

	// ScanPageSize caps the number of items evaluated per Scan page.
	// 0 leaves the page size to DynamoDB (1 MB of data per page).
	// Max: 1000
	ScanPageSize int32
}

// DefaultConfig returns sensible defaults for a single items table.
func DefaultConfig() Config {
	return Config{
		TableName: "items",
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = "items"
	}
	if c.ScanPageSize < 0 {
		c.ScanPageSize = 0
	}
	if c.ScanPageSize > 1000 {
		c.ScanPageSize = 1000
	}
}
