package storage

// Row is one logged interaction. Rows are appended in chronological order and
// never mutated or deleted after write.
type Row struct {
	Timestamp    string  `json:"timestamp"`
	Original     string  `json:"original"`
	DetectedCode string  `json:"detected_code"`
	DetectedName string  `json:"detected_name"`
	DetectedConf float64 `json:"detected_conf"`
	Translation  string  `json:"translation"`
	Notes        string  `json:"notes"`
	Reply        string  `json:"reply"`
	Rating       int     `json:"rating"`
}

// Recorder abstracts persistence of interaction rows.
// Implementations can be file-based, database, etc.
// Load should return rows in chronological order.
// Append should atomically append a new row.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Append(row Row) error
	Load() ([]Row, error)
}
