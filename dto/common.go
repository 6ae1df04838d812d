package dto

// IDResponse is returned by endpoints that only report what they touched.
type IDResponse struct {
	ID uint `json:"id"`
}
