package api

// HealthInfo is the body returned by GET /health
type HealthInfo struct {
	Message   string     `json:"message"`
	Endpoints []Endpoint `json:"endpoints,omitempty"`
}

// Endpoint describes one route advertised by the health check
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// BucketsResponse is the body returned by GET /buckets
type BucketsResponse struct {
	Buckets []string `json:"buckets"`
}

// ObjectsResponse is the body returned by GET /list/{bucket}
type ObjectsResponse struct {
	Bucket string   `json:"bucket,omitempty"`
	Files  []string `json:"files"`
}

// UploadResult is the body returned by a successful PUT /upload/{bucket}
type UploadResult struct {
	Message  string `json:"message,omitempty"`
	Bucket   string `json:"bucket,omitempty"`
	Key      string `json:"key"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mimetype,omitempty"`
}

// MessageResponse is the acknowledgement body of create/delete calls
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateBucketRequest is the JSON body of POST /buckets
type CreateBucketRequest struct {
	Name string `json:"name"`
}

// errorResponse is the optional JSON body of a rejected call
type errorResponse struct {
	Error string `json:"error"`
}
