package lib

// ImageState is the lifecycle state of an AMI as reported by
// DescribeImages.
type ImageState string

const (
	// ImagePending is the initial state of a freshly created AMI.
	ImagePending ImageState = "pending"
	// ImageAvailable is the terminal success state.
	ImageAvailable ImageState = "available"
	// ImageFailed is the terminal error state.
	ImageFailed ImageState = "failed"
)

// ImageHandle is an AMI id plus its last observed lifecycle state.
// Handles for caller-supplied images start out available; handles
// for freshly created images start out pending and are advanced
// only by polling the provider.
type ImageHandle struct {
	ImageID string     `json:"image_id"`
	State   ImageState `json:"state"`
}
