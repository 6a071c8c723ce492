package cloner

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/gorilla/feeds"
	"github.com/sirupsen/logrus"

	"github.com/hamfist/ec2-clone/lib"
)

// imageProvisioner creates an AMI from the source instance and waits
// for it to become available, unless the caller supplied an image id
// in which case provisioning is bypassed entirely.
type imageProvisioner struct {
	ec2      ec2API
	interval time.Duration
	timeout  time.Duration

	// sleep is swapped out in tests to avoid wall-clock waits
	sleep func(context.Context, time.Duration) error
}

func newImageProvisioner(conn ec2API, interval, timeout time.Duration) *imageProvisioner {
	return &imageProvisioner{
		ec2:      conn,
		interval: interval,
		timeout:  timeout,
		sleep:    sleepContext,
	}
}

// EnsureImage returns an available ImageHandle for the clone. A
// non-empty override short-circuits: the handle references the given
// image and CreateImage is never called. Otherwise a fresh AMI is
// created from the source instance and polled until it reaches a
// terminal state.
func (ip *imageProvisioner) EnsureImage(ctx context.Context, sourceInstanceID, override string) (*lib.ImageHandle, error) {
	if override != "" {
		log.WithFields(logrus.Fields{
			"image_id": override,
		}).Info("image id supplied, skipping ami creation")
		return &lib.ImageHandle{ImageID: override, State: lib.ImageAvailable}, nil
	}

	name := fmt.Sprintf("%s-%s", sourceInstanceID, feeds.NewUUID().String())

	log.WithFields(logrus.Fields{
		"instance_id": sourceInstanceID,
		"name":        name,
	}).Info("creating ami from source instance")

	resp, err := ip.ec2.CreateImageWithContext(ctx, &ec2.CreateImageInput{
		InstanceId: aws.String(sourceInstanceID),
		Name:       aws.String(name),
	})
	if err != nil {
		return nil, &lib.ProviderError{Op: "create image", Err: err}
	}

	handle := &lib.ImageHandle{
		ImageID: aws.StringValue(resp.ImageId),
		State:   lib.ImagePending,
	}

	return ip.waitForImage(ctx, handle)
}

// waitForImage polls DescribeImages at a fixed interval until the
// image reaches a terminal state. The wait is unbounded unless a
// poll timeout was configured.
func (ip *imageProvisioner) waitForImage(ctx context.Context, handle *lib.ImageHandle) (*lib.ImageHandle, error) {
	var waited time.Duration

	for {
		state, reason, err := ip.describeImage(ctx, handle.ImageID)
		if err != nil {
			return nil, err
		}

		switch state {
		case lib.ImageAvailable:
			handle.State = lib.ImageAvailable
			log.WithFields(logrus.Fields{
				"image_id": handle.ImageID,
			}).Info("ami is available")
			return handle, nil
		case lib.ImageFailed:
			handle.State = lib.ImageFailed
			return nil, &lib.ImageCreationFailedError{ImageID: handle.ImageID, Reason: reason}
		}

		log.WithFields(logrus.Fields{
			"image_id": handle.ImageID,
			"state":    state,
		}).Debug("still waiting for ami to become available")

		if ip.timeout > 0 && waited >= ip.timeout {
			return nil, &lib.ProvisionTimeoutError{ImageID: handle.ImageID, Waited: waited}
		}

		if err := ip.sleep(ctx, ip.interval); err != nil {
			return nil, err
		}
		waited += ip.interval
	}
}

func (ip *imageProvisioner) describeImage(ctx context.Context, imageID string) (lib.ImageState, string, error) {
	resp, err := ip.ec2.DescribeImagesWithContext(ctx, &ec2.DescribeImagesInput{
		ImageIds: []*string{aws.String(imageID)},
	})
	if err != nil {
		return "", "", &lib.ProviderError{Op: "describe images", Err: err}
	}
	if len(resp.Images) == 0 {
		return "", "", &lib.ProviderError{
			Op:  "describe images",
			Err: fmt.Errorf("image %s missing from describe response", imageID),
		}
	}

	img := resp.Images[0]
	reason := ""
	if img.StateReason != nil {
		reason = aws.StringValue(img.StateReason.Message)
	}
	return lib.ImageState(aws.StringValue(img.State)), reason, nil
}

// sleepContext blocks for d or until ctx is cancelled, whichever
// comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
