package lib

import (
	"fmt"
	"time"
)

// NotFoundError means the source instance id did not resolve to an
// existing instance.
type NotFoundError struct {
	InstanceID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("instance %q not found", e.InstanceID)
}

// ProviderError wraps a transport, authorization, or API failure
// from an EC2 control plane call, recording which call failed.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("ec2 %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ImageCreationFailedError means the AMI reached the terminal
// "failed" state while we were waiting for it.
type ImageCreationFailedError struct {
	ImageID string
	Reason  string
}

func (e *ImageCreationFailedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("image %s failed to become available", e.ImageID)
	}
	return fmt.Sprintf("image %s failed to become available: %s", e.ImageID, e.Reason)
}

// ProvisionTimeoutError means the AMI did not reach a terminal state
// within the configured poll timeout.
type ProvisionTimeoutError struct {
	ImageID string
	Waited  time.Duration
}

func (e *ProvisionTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for image %s", e.Waited, e.ImageID)
}

// MalformedOverrideError means a command line override entry could
// not be split into a key=value pair.
type MalformedOverrideError struct {
	Entry string
}

func (e *MalformedOverrideError) Error() string {
	return fmt.Sprintf("malformed override %q, expected key=value", e.Entry)
}

// UnsupportedOverrideError means an override key is outside the
// supported set. Unknown keys are rejected rather than ignored so
// that no caller intent is silently dropped before launch.
type UnsupportedOverrideError struct {
	Key string
}

func (e *UnsupportedOverrideError) Error() string {
	return fmt.Sprintf("unsupported override key %q, supported keys are %s", e.Key, SupportedOverrideKeys())
}
