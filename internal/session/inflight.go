package session

// Guard keys for mutating actions
const (
	UploadKey       = "upload"
	CreateBucketKey = "create-bucket"
)

// DeleteBucketKey is the guard key for deleting bucket
func DeleteBucketKey(bucket string) string {
	return "delete-bucket:" + bucket
}

// DeleteFileKey is the guard key for deleting key from bucket
func DeleteFileKey(bucket, key string) string {
	return "delete-file:" + bucket + "/" + key
}

// Inflight tracks which action targets have a call outstanding. Each key
// moves idle -> in flight -> idle. It is owned by the update loop and is not
// safe for concurrent use.
type Inflight struct {
	busy map[string]struct{}
}

// NewInflight creates an empty guard
func NewInflight() *Inflight {
	return &Inflight{busy: make(map[string]struct{})}
}

// Begin marks key in flight. It returns false, changing nothing, when key is
// already in flight.
func (f *Inflight) Begin(key string) bool {
	if f.busy == nil {
		f.busy = make(map[string]struct{})
	}
	if _, ok := f.busy[key]; ok {
		return false
	}
	f.busy[key] = struct{}{}
	return true
}

// End returns key to idle
func (f *Inflight) End(key string) {
	delete(f.busy, key)
}

// Busy reports whether key is in flight
func (f *Inflight) Busy(key string) bool {
	_, ok := f.busy[key]
	return ok
}

// Len returns the number of calls outstanding
func (f *Inflight) Len() int {
	return len(f.busy)
}
