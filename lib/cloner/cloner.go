package cloner

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hamfist/ec2-clone/lib"
)

const (
	cloneMethodTag = "CloneMethod"
	cloneSourceTag = "CloneSource"
	cloneMethod    = "ec2-clone"
)

// cloner sequences one clone run: inspect the source instance,
// ensure an available image, merge overrides, launch.
type cloner struct {
	ec2         ec2API
	inspector   *instanceInspector
	provisioner *imageProvisioner

	source    string
	overrides lib.OverrideSet
}

func newCloner(conn ec2API, cfg *Config) (*cloner, error) {
	// Overrides are validated before anything touches the provider,
	// so bad input can never leave a half-provisioned clone behind.
	overrides, err := lib.ParseOverrides(cfg.RawOverrides)
	if err != nil {
		return nil, err
	}

	return &cloner{
		ec2:         conn,
		inspector:   newInstanceInspector(conn),
		provisioner: newImageProvisioner(conn, cfg.PollInterval, cfg.PollTimeout),
		source:      cfg.SourceInstanceID,
		overrides:   overrides,
	}, nil
}

// Clone runs the workflow and returns the new instance id. Any
// failure before RunInstances aborts the run with nothing launched;
// an AMI created along the way is left in place.
func (c *cloner) Clone(ctx context.Context) (string, error) {
	var (
		desc   *lib.InstanceDescriptor
		handle *lib.ImageHandle
	)

	// No data dependency between inspect and provision; run both,
	// first error cancels the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		desc, err = c.inspector.Describe(gctx, c.source)
		return err
	})
	g.Go(func() error {
		var err error
		handle, err = c.provisioner.EnsureImage(gctx, c.source, c.overrides.ImageID())
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	spec := c.overrides.Apply(desc)
	// Both paths converge: with an ImageId override the handle
	// already references it, otherwise the freshly provisioned AMI
	// replaces the source's original image id.
	spec.ImageID = handle.ImageID

	return c.runInstance(ctx, spec)
}

func (c *cloner) runInstance(ctx context.Context, spec *lib.LaunchSpec) (string, error) {
	log.WithFields(logrus.Fields{
		"image_id":      spec.ImageID,
		"instance_type": spec.InstanceType,
		"subnet_id":     spec.SubnetID,
	}).Info("launching new instance")

	resp, err := c.ec2.RunInstancesWithContext(ctx, runInstancesInput(c.source, spec))
	if err != nil {
		return "", &lib.ProviderError{Op: "run instances", Err: err}
	}
	if len(resp.Instances) == 0 {
		return "", &lib.ProviderError{
			Op:  "run instances",
			Err: fmt.Errorf("no instances in reservation"),
		}
	}

	return aws.StringValue(resp.Instances[0].InstanceId), nil
}

func runInstancesInput(source string, spec *lib.LaunchSpec) *ec2.RunInstancesInput {
	input := &ec2.RunInstancesInput{
		ImageId:      aws.String(spec.ImageID),
		InstanceType: aws.String(spec.InstanceType),
		MinCount:     aws.Int64(1),
		MaxCount:     aws.Int64(1),
		EbsOptimized: aws.Bool(spec.EbsOptimized),
		TagSpecifications: []*ec2.TagSpecification{
			{
				ResourceType: aws.String(ec2.ResourceTypeInstance),
				Tags:         launchTags(source, spec),
			},
		},
	}

	if spec.KeyName != "" {
		input.KeyName = aws.String(spec.KeyName)
	}
	if spec.SubnetID != "" {
		input.SubnetId = aws.String(spec.SubnetID)
	}
	if len(spec.SecurityGroupIDs) > 0 {
		input.SecurityGroupIds = aws.StringSlice(spec.SecurityGroupIDs)
	}
	if spec.IamInstanceProfile != "" {
		input.IamInstanceProfile = &ec2.IamInstanceProfileSpecification{
			Arn: aws.String(spec.IamInstanceProfile),
		}
	}

	return input
}

// launchTags carries the source instance tags over to the clone and
// marks how and from what it was made. Meta tags win on collision.
func launchTags(source string, spec *lib.LaunchSpec) []*ec2.Tag {
	merged := map[string]string{}
	for key, value := range spec.Tags {
		merged[key] = value
	}
	merged[cloneMethodTag] = cloneMethod
	merged[cloneSourceTag] = source

	keys := []string{}
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tags := []*ec2.Tag{}
	for _, key := range keys {
		tags = append(tags, &ec2.Tag{
			Key:   aws.String(key),
			Value: aws.String(merged[key]),
		})
	}
	return tags
}
